package services

import (
	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/app/repositories"
	"github.com/pmin574/pc-diamond-edge/pkg/apperr"
	"github.com/pmin574/pc-diamond-edge/pkg/notification"
	"github.com/pmin574/pc-diamond-edge/pkg/orm"
	"github.com/pmin574/pc-diamond-edge/pkg/validate"
)

// ContactService stores contact form submissions and forwards them to
// the sales inbox.
type ContactService struct {
	repo *repositories.ContactRepository
}

func NewContactService() *ContactService {
	return &ContactService{repo: repositories.NewContactRepository()}
}

// ContactInput is the contact form payload.
type ContactInput struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Email   string `json:"email"   validate:"required,email"`
	Company string `json:"company" validate:"nullable,max=255"`
	Subject string `json:"subject" validate:"nullable,max=255"`
	Message string `json:"message" validate:"required,max=10000"`
}

// Submit validates and stores the inquiry, then notifies sales in the
// background. A notification failure never fails the submission.
func (s *ContactService) Submit(in ContactInput) (models.ContactMessage, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.ContactMessage{}, apperr.Validation(errs)
	}

	msg := models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Company: in.Company,
		Subject: in.Subject,
		Message: in.Message,
	}
	if err := s.repo.Create(&msg); err != nil {
		return models.ContactMessage{}, apperr.Store("create contact message", err)
	}

	notification.SendAsync(msg.Email, &ContactMessageNotification{Message: msg})
	return msg, nil
}

// Messages returns one page of inquiries for the admin console.
func (s *ContactService) Messages(page, limit int) ([]models.ContactMessage, orm.Pagination, error) {
	msgs, pagination, err := s.repo.All(page, limit)
	return msgs, pagination, apperr.Store("list contact messages", err)
}

// MarkHandled flags an inquiry as dealt with.
func (s *ContactService) MarkHandled(id uint) (models.ContactMessage, error) {
	msg, err := s.repo.Find(id)
	if err != nil {
		return models.ContactMessage{}, apperr.Store("find contact message", err)
	}
	if err := s.repo.MarkHandled(&msg); err != nil {
		return models.ContactMessage{}, apperr.Store("update contact message", err)
	}
	return msg, nil
}

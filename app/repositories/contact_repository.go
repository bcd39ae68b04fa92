package repositories

import (
	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/pkg/orm"
)

// ContactRepository handles database operations for contact messages.
type ContactRepository struct{}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{}
}

// Create persists a new contact message.
func (r *ContactRepository) Create(msg *models.ContactMessage) error {
	return orm.DB().Create(msg)
}

// All returns one page of messages, newest first.
func (r *ContactRepository) All(page, limit int) ([]models.ContactMessage, orm.Pagination, error) {
	var msgs []models.ContactMessage
	pagination, err := orm.DB().Model(&models.ContactMessage{}).
		Order("created_at desc").
		GetWithPagination(&msgs, page, limit)
	return msgs, pagination, err
}

// Find looks up a message by primary key.
func (r *ContactRepository) Find(id uint) (models.ContactMessage, error) {
	var msg models.ContactMessage
	err := orm.DB().Model(&models.ContactMessage{}).Where("id = ?", id).First(&msg)
	return msg, err
}

// MarkHandled flags a message as dealt with.
func (r *ContactRepository) MarkHandled(msg *models.ContactMessage) error {
	msg.Handled = true
	return orm.DB().Save(msg)
}

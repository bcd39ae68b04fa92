package services

import (
	"errors"

	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/app/repositories"
	"github.com/pmin574/pc-diamond-edge/pkg/apperr"
	"github.com/pmin574/pc-diamond-edge/pkg/logger"
	"github.com/pmin574/pc-diamond-edge/pkg/orm"
	"gorm.io/gorm"
)

// UserService implements account listing and role management.
type UserService struct {
	repo *repositories.UserRepository
}

func NewUserService() *UserService {
	return &UserService{repo: repositories.NewUserRepository()}
}

// UserWithRole is a user plus their resolved role, for the admin listing.
type UserWithRole struct {
	models.User
	Role string `json:"role"`
}

// Users returns one page of users with their roles resolved.
func (s *UserService) Users(page, limit int) ([]UserWithRole, orm.Pagination, error) {
	users, pagination, err := s.repo.All(page, limit)
	if err != nil {
		return nil, orm.Pagination{}, apperr.Store("list users", err)
	}

	out := make([]UserWithRole, 0, len(users))
	for _, u := range users {
		out = append(out, UserWithRole{User: u, Role: s.RoleOf(u.ID)})
	}
	return out, pagination, nil
}

// RoleOf resolves a user's role. A missing role row means customer.
func (s *UserService) RoleOf(userID uint) string {
	role, err := s.repo.FindRole(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("users: role lookup failed", "user_id", userID, "error", err)
		}
		return models.RoleCustomer
	}
	return role.Role
}

// IsAdmin reports whether the user holds the admin role.
func (s *UserService) IsAdmin(userID uint) bool {
	return s.RoleOf(userID) == models.RoleAdmin
}

// SetRole assigns a role to a user, inserting or updating the role row.
func (s *UserService) SetRole(userID uint, role string) error {
	if !models.ValidRole(role) {
		return apperr.ValidationField("role", "The selected role is invalid.")
	}

	if _, err := s.repo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Reference("user", userID)
		}
		return apperr.Store("find user", err)
	}

	existing, err := s.repo.FindRole(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.repo.CreateRole(&models.UserRole{UserID: userID, Role: role}); err != nil {
			return apperr.Store("create role", err)
		}
		return nil
	}
	if err != nil {
		return apperr.Store("find role", err)
	}

	existing.Role = role
	if err := s.repo.SaveRole(&existing); err != nil {
		return apperr.Store("update role", err)
	}
	return nil
}

// User returns one user with their role resolved.
func (s *UserService) User(id uint) (UserWithRole, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return UserWithRole{}, apperr.Store("find user", err)
	}
	return UserWithRole{User: u, Role: s.RoleOf(u.ID)}, nil
}

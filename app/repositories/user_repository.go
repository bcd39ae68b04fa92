package repositories

import (
	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/pkg/orm"
)

// UserRepository handles database operations for User and UserRole.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// All returns one page of users.
func (r *UserRepository) All(page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := orm.DB().Model(&models.User{}).GetWithPagination(&users, page, limit)
	return users, pagination, err
}

// FindRole returns the role row for a user, if one exists.
func (r *UserRepository) FindRole(userID uint) (models.UserRole, error) {
	var role models.UserRole
	err := orm.DB().Model(&models.UserRole{}).Where("user_id = ?", userID).First(&role)
	return role, err
}

// SaveRole inserts or updates the role row for a user.
func (r *UserRepository) SaveRole(role *models.UserRole) error {
	return orm.DB().Save(role)
}

// CreateRole inserts a new role row.
func (r *UserRepository) CreateRole(role *models.UserRole) error {
	return orm.DB().Create(role)
}

package models

import "gorm.io/gorm"

// Roles assignable to a user. Everyone is a customer unless an admin
// row says otherwise.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// ValidRole reports whether role is one of the defined roles.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin
}

// User is an account holder.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"             json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null"             json:"-"` // hashed, never serialised
}

// UserRole is the role assignment for a user. Kept in its own table so
// a missing row simply means "customer".
type UserRole struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Role   string `gorm:"size:50;not null"     json:"role"`
}

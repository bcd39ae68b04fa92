package services

import (
	"errors"

	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/app/repositories"
	"github.com/pmin574/pc-diamond-edge/pkg/apperr"
	"github.com/pmin574/pc-diamond-edge/pkg/auth"
	"github.com/pmin574/pc-diamond-edge/pkg/validate"
	"gorm.io/gorm"
)

// AuthService implements registration and login.
type AuthService struct {
	users *UserService
	repo  *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{
		users: NewUserService(),
		repo:  repositories.NewUserRepository(),
	}
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// LoginInput is the payload for logging in.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is the issued credential set.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	Role         string `json:"role"`
}

// Register creates an account. New accounts are customers; admin is
// granted separately through role management.
func (s *AuthService) Register(in RegisterInput) (models.User, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.User{}, apperr.Validation(errs)
	}

	if _, err := s.repo.FindByEmail(in.Email); err == nil {
		return models.User{}, apperr.ValidationField("email", "The email is already registered.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, apperr.Store("check email", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, apperr.Store("hash password", err)
	}

	user := models.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := s.repo.Create(&user); err != nil {
		return models.User{}, apperr.Store("create user", err)
	}
	return user, nil
}

// Login verifies credentials and issues a token pair carrying the
// user's resolved role.
func (s *AuthService) Login(in LoginInput) (TokenPair, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return TokenPair{}, apperr.Validation(errs)
	}

	user, err := s.repo.FindByEmail(in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPair{}, apperr.ValidationField("email", "These credentials do not match our records.")
		}
		return TokenPair{}, apperr.Store("find user", err)
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		return TokenPair{}, apperr.ValidationField("email", "These credentials do not match our records.")
	}

	role := s.users.RoleOf(user.ID)

	token, err := auth.GenerateToken(user.ID, role)
	if err != nil {
		return TokenPair{}, apperr.Store("issue token", err)
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, role)
	if err != nil {
		return TokenPair{}, apperr.Store("issue refresh token", err)
	}

	return TokenPair{Token: token, RefreshToken: refresh, Role: role}, nil
}

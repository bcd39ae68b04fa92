package controllers

import (
	"net/http"

	"github.com/pmin574/pc-diamond-edge/app/services"
	"github.com/pmin574/pc-diamond-edge/pkg/bind"
	"github.com/pmin574/pc-diamond-edge/pkg/response"
)

// AuthController exposes registration and login.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Register(in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, user)
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	tokens, err := c.service.Login(in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, tokens)
}

package controllers

import (
	"net/http"

	"github.com/pmin574/pc-diamond-edge/app/services"
	"github.com/pmin574/pc-diamond-edge/pkg/bind"
	"github.com/pmin574/pc-diamond-edge/pkg/response"
)

// UsersController exposes user and role management for the admin console.
type UsersController struct {
	service *services.UserService
}

func NewUsersController() *UsersController {
	return &UsersController{service: services.NewUserService()}
}

// List handles GET /api/admin/users.
func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	users, pagination, err := c.service.Users(page, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Paginated(w, users, pagination)
}

// Get handles GET /api/admin/users/{id}.
func (c *UsersController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	user, err := c.service.User(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, user)
}

// SetRole handles PATCH /api/admin/users/{id}/role. Only reachable
// through the admin route group, so a customer can never grant roles.
func (c *UsersController) SetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var body struct {
		Role string `json:"role" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.service.SetRole(id, body.Role); err != nil {
		response.FromError(w, err)
		return
	}

	user, err := c.service.User(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, user)
}

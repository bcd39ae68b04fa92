package controllers

import (
	"net/http"

	"github.com/pmin574/pc-diamond-edge/app/services"
	"github.com/pmin574/pc-diamond-edge/pkg/bind"
	"github.com/pmin574/pc-diamond-edge/pkg/response"
)

// ContactController exposes the public contact form and the admin-side
// inquiry listing.
type ContactController struct {
	service *services.ContactService
}

func NewContactController() *ContactController {
	return &ContactController{service: services.NewContactService()}
}

// Submit handles POST /api/contact.
func (c *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	var in services.ContactInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	msg, err := c.service.Submit(in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, msg)
}

// List handles GET /api/admin/contact.
func (c *ContactController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	msgs, pagination, err := c.service.Messages(page, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Paginated(w, msgs, pagination)
}

// MarkHandled handles PATCH /api/admin/contact/{id}/handled.
func (c *ContactController) MarkHandled(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	msg, err := c.service.MarkHandled(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, msg)
}

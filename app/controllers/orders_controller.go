package controllers

import (
	"net/http"

	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/app/services"
	"github.com/pmin574/pc-diamond-edge/pkg/bind"
	"github.com/pmin574/pc-diamond-edge/pkg/middleware"
	"github.com/pmin574/pc-diamond-edge/pkg/response"
	"github.com/pmin574/pc-diamond-edge/pkg/ws"
)

// OrdersController exposes checkout for the storefront and order
// management for the admin console.
type OrdersController struct {
	service *services.OrderService
}

func NewOrdersController(hub *ws.Hub) *OrdersController {
	return &OrdersController{service: services.NewOrderService(hub)}
}

// Checkout handles POST /api/checkout. Works for both guests and
// logged-in customers; a valid token links the order to the account.
func (c *OrdersController) Checkout(w http.ResponseWriter, r *http.Request) {
	var in services.CheckoutInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	var customerID *uint
	if id, ok := middleware.UserIDFromCtx(r); ok {
		customerID = &id
	}

	order, err := c.service.PlaceOrder(in, customerID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, order)
}

// MyOrders handles GET /api/orders (authenticated customer).
func (c *OrdersController) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orders, err := c.service.OrdersByCustomer(userID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, orders)
}

// List handles GET /api/admin/orders with an optional ?status= filter.
func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	if status := r.URL.Query().Get("status"); status != "" {
		orders, pagination, err := c.service.OrdersByStatus(models.OrderStatus(status), page, limit)
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.Paginated(w, orders, pagination)
		return
	}

	orders, pagination, err := c.service.Orders(page, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Paginated(w, orders, pagination)
}

// Get handles GET /api/admin/orders/{id}.
func (c *OrdersController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	order, err := c.service.Order(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, order)
}

// SetStatus handles PATCH /api/admin/orders/{id}/status.
func (c *OrdersController) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.SetStatus(id, models.OrderStatus(body.Status))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, order)
}

// SetPaymentStatus handles PATCH /api/admin/orders/{id}/payment.
func (c *OrdersController) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var body struct {
		PaymentStatus string `json:"payment_status" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.SetPaymentStatus(id, models.PaymentStatus(body.PaymentStatus))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, order)
}

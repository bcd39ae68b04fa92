package services

import (
	"errors"
	"fmt"

	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/app/repositories"
	"github.com/pmin574/pc-diamond-edge/pkg/apperr"
	"github.com/pmin574/pc-diamond-edge/pkg/metrics"
	"github.com/pmin574/pc-diamond-edge/pkg/notification"
	"github.com/pmin574/pc-diamond-edge/pkg/orm"
	"github.com/pmin574/pc-diamond-edge/pkg/validate"
	"github.com/pmin574/pc-diamond-edge/pkg/ws"
	"gorm.io/gorm"
)

// OrderService implements checkout and the order status lifecycle.
// hub may be nil (tests, CLI commands); events are then skipped.
type OrderService struct {
	repo    *repositories.OrderRepository
	catalog *repositories.CatalogRepository
	hub     *ws.Hub
}

func NewOrderService(hub *ws.Hub) *OrderService {
	return &OrderService{
		repo:    repositories.NewOrderRepository(),
		catalog: repositories.NewCatalogRepository(),
		hub:     hub,
	}
}

// CheckoutItem is one requested line in a checkout.
type CheckoutItem struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"required,gte=1,lte=10000"`
}

// CheckoutInput is the payload for placing an order.
type CheckoutInput struct {
	CustomerName  string         `json:"customer_name"    validate:"required,max=255"`
	CustomerEmail string         `json:"customer_email"   validate:"required,email"`
	CustomerPhone string         `json:"customer_phone"   validate:"nullable,max=50"`
	ShippingAddr  string         `json:"shipping_address" validate:"required,max=2000"`
	Note          string         `json:"note"             validate:"nullable,max=2000"`
	Items         []CheckoutItem `json:"items"            validate:"required"`
}

// orderEvent is the payload broadcast to connected admin dashboards.
type orderEvent struct {
	Type          string  `json:"type"`
	OrderID       uint    `json:"order_id"`
	Status        string  `json:"status,omitempty"`
	PaymentStatus string  `json:"payment_status,omitempty"`
	Total         float64 `json:"total,omitempty"`
}

// Orders returns one page of all orders, newest first.
func (s *OrderService) Orders(page, limit int) ([]models.Order, orm.Pagination, error) {
	orders, pagination, err := s.repo.All(page, limit)
	return orders, pagination, apperr.Store("list orders", err)
}

// OrdersByStatus returns one page of orders in the given fulfilment state.
func (s *OrderService) OrdersByStatus(status models.OrderStatus, page, limit int) ([]models.Order, orm.Pagination, error) {
	if !status.Valid() {
		return nil, orm.Pagination{}, apperr.ValidationField("status", "The selected status is invalid.")
	}
	orders, pagination, err := s.repo.ByStatus(status, page, limit)
	return orders, pagination, apperr.Store("list orders", err)
}

// OrdersByCustomer returns every order a customer has placed.
func (s *OrderService) OrdersByCustomer(customerID uint) ([]models.Order, error) {
	orders, err := s.repo.ByCustomer(customerID)
	return orders, apperr.Store("list orders", err)
}

// Order returns one order with its items.
func (s *OrderService) Order(id uint) (models.Order, error) {
	order, err := s.repo.Find(id)
	return order, apperr.Store("find order", err)
}

// SetStatus moves an order to any valid fulfilment status. Transitions
// are unrestricted: an admin may move an order between any two states,
// including backwards, to correct mistakes.
func (s *OrderService) SetStatus(id uint, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, apperr.ValidationField("status", "The selected status is invalid.")
	}

	order, err := s.repo.Find(id)
	if err != nil {
		return models.Order{}, apperr.Store("find order", err)
	}

	order.Status = status
	if err := s.repo.Save(&order); err != nil {
		return models.Order{}, apperr.Store("update order status", err)
	}

	metrics.OrderStatusChanges.WithLabelValues(string(status)).Inc()
	s.broadcast(orderEvent{Type: "order.status", OrderID: order.ID, Status: string(status)})
	return order, nil
}

// SetPaymentStatus moves an order to any valid payment status,
// independently of the fulfilment status.
func (s *OrderService) SetPaymentStatus(id uint, status models.PaymentStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, apperr.ValidationField("payment_status", "The selected payment status is invalid.")
	}

	order, err := s.repo.Find(id)
	if err != nil {
		return models.Order{}, apperr.Store("find order", err)
	}

	order.PaymentStatus = status
	if err := s.repo.Save(&order); err != nil {
		return models.Order{}, apperr.Store("update payment status", err)
	}

	metrics.PaymentStatusChanges.WithLabelValues(string(status)).Inc()
	s.broadcast(orderEvent{Type: "order.payment", OrderID: order.ID, PaymentStatus: string(status)})
	return order, nil
}

// PlaceOrder creates an order from a checkout. Every line captures a
// snapshot of the product as sold, inventory is decremented, and the
// whole thing commits or rolls back as one transaction. customerID is
// nil for guest checkouts.
func (s *OrderService) PlaceOrder(in CheckoutInput, customerID *uint) (models.Order, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Order{}, apperr.Validation(errs)
	}
	if len(in.Items) == 0 {
		return models.Order{}, apperr.ValidationField("items", "The items field is required.")
	}
	for _, item := range in.Items {
		if errs := validate.Struct(item); validate.HasErrors(errs) {
			return models.Order{}, apperr.Validation(errs)
		}
	}

	order := models.Order{
		CustomerID:    customerID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		ShippingAddr:  in.ShippingAddr,
		Note:          in.Note,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentPending,
	}

	err := orm.Transaction(func(tx *orm.Query) error {
		for _, item := range in.Items {
			var p models.Product
			err := tx.Gorm().Where("id = ?", item.ProductID).First(&p).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Reference("product", item.ProductID)
			}
			if err != nil {
				return err
			}
			if !p.IsActive {
				return apperr.ValidationField("items",
					fmt.Sprintf("Product %s is no longer available.", p.ArticleNumber))
			}
			if p.InventoryCount < item.Quantity {
				return apperr.ValidationField("items",
					fmt.Sprintf("Only %d of %s in stock.", p.InventoryCount, p.ArticleNumber))
			}

			p.InventoryCount -= item.Quantity
			if err := tx.Gorm().Save(&p).Error; err != nil {
				return err
			}

			productID := p.ID
			order.Items = append(order.Items, models.OrderItem{
				ProductID: &productID,
				Quantity:  item.Quantity,
				UnitPrice: p.Price,
				ProductSnapshot: models.ProductSnapshot{
					Name:          p.Name,
					ArticleNumber: p.ArticleNumber,
					Price:         p.Price,
					ImageURL:      p.ImageURL,
				},
			})
			order.Total += p.Price * float64(item.Quantity)
		}

		return tx.Gorm().Create(&order).Error
	})
	if err != nil {
		if apperr.IsValidation(err) || apperr.IsReference(err) {
			return models.Order{}, err
		}
		return models.Order{}, apperr.Store("place order", err)
	}

	metrics.OrderStatusChanges.WithLabelValues(string(models.OrderPending)).Inc()
	s.broadcast(orderEvent{Type: "order.placed", OrderID: order.ID, Total: order.Total})
	notification.SendAsync(order.CustomerEmail, &OrderPlacedNotification{Order: order})
	return order, nil
}

func (s *OrderService) broadcast(ev orderEvent) {
	if s.hub != nil {
		s.hub.BroadcastJSON(ev)
	}
}

package repositories

import (
	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/pkg/orm"
)

// OrderRepository handles database operations for orders.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// All returns one page of orders, newest first, with items preloaded.
func (r *OrderRepository) All(page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Order("created_at desc").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// ByStatus returns one page of orders filtered by fulfilment status.
func (r *OrderRepository) ByStatus(status models.OrderStatus, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Where("status = ?", status).
		Order("created_at desc").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// ByCustomer returns all orders placed by a customer, newest first.
func (r *OrderRepository) ByCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Get(&orders)
	return orders, err
}

// Find loads an order with its items.
func (r *OrderRepository) Find(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// Save persists changes to an existing order.
func (r *OrderRepository) Save(order *models.Order) error {
	return orm.DB().Save(order)
}

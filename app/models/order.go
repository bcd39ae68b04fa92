package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

// PaymentStatus is the payment state of an order, tracked independently
// of fulfilment.
type PaymentStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"

	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid reports whether s is one of the defined order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Valid reports whether s is one of the defined payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// OrderStatuses lists every valid order status, in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}
}

// PaymentStatuses lists every valid payment status.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded}
}

// Order is a customer order. CustomerID is nullable so guest checkouts
// survive account deletion.
type Order struct {
	gorm.Model
	CustomerID    *uint         `gorm:"index"                       json:"customer_id"`
	CustomerName  string        `gorm:"size:255;not null"           json:"customer_name"`
	CustomerEmail string        `gorm:"size:255;not null;index"     json:"customer_email"`
	CustomerPhone string        `gorm:"size:50"                     json:"customer_phone"`
	ShippingAddr  string        `gorm:"type:text"                   json:"shipping_address"`
	Status        OrderStatus   `gorm:"size:20;not null;default:pending;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null;default:pending;index" json:"payment_status"`
	Total         float64       `gorm:"not null;default:0"          json:"total"`
	Note          string        `gorm:"type:text"                   json:"note"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem is one line of an order. ProductID is nullable and the
// snapshot is authoritative: the line stays intact if the product is
// later edited or removed from the catalog.
type OrderItem struct {
	gorm.Model
	OrderID         uint            `gorm:"not null;index" json:"order_id"`
	ProductID       *uint           `gorm:"index"          json:"product_id"`
	Quantity        int             `gorm:"not null"       json:"quantity"`
	UnitPrice       float64         `gorm:"not null"       json:"unit_price"`
	ProductSnapshot ProductSnapshot `gorm:"type:text"      json:"product_snapshot"`
}

// ProductSnapshot captures the product as sold.
type ProductSnapshot struct {
	Name          string  `json:"name"`
	ArticleNumber string  `json:"article_number"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"image_url,omitempty"`
}

// Value implements driver.Valuer.
func (s ProductSnapshot) Value() (driver.Value, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (s *ProductSnapshot) Scan(src interface{}) error {
	if src == nil {
		*s = ProductSnapshot{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("models: cannot scan %T into ProductSnapshot", src)
	}
	if len(raw) == 0 {
		*s = ProductSnapshot{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/pkg/apperr"
)

func checkout(p models.Product, qty int) CheckoutInput {
	return CheckoutInput{
		CustomerName:  "Jordan Mills",
		CustomerEmail: "jordan@example.com",
		ShippingAddr:  "1 Factory Road",
		Items:         []CheckoutItem{{ProductID: p.ID, Quantity: qty}},
	}
}

func TestPlaceOrderSnapshotsProduct(t *testing.T) {
	setupDB(t)
	_, _, p := seedHierarchy(t)

	orders := NewOrderService(nil)
	order, err := orders.PlaceOrder(checkout(p, 2), nil)
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, 2*p.Price, order.Total)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, p.Price, item.UnitPrice)
	assert.Equal(t, p.Name, item.ProductSnapshot.Name)
	assert.Equal(t, p.ArticleNumber, item.ProductSnapshot.ArticleNumber)

	// Inventory was decremented.
	fresh, err := NewCatalogService().Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.InventoryCount-2, fresh.InventoryCount)
}

func TestPlaceOrderSurvivesProductDeletion(t *testing.T) {
	setupDB(t)
	m, _, p := seedHierarchy(t)

	orders := NewOrderService(nil)
	placed, err := orders.PlaceOrder(checkout(p, 1), nil)
	require.NoError(t, err)

	// Deleting the whole material afterwards leaves the order intact.
	require.NoError(t, NewCatalogService().DeleteMaterial(m.ID))

	got, err := orders.Order(placed.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, p.ArticleNumber, got.Items[0].ProductSnapshot.ArticleNumber)
	assert.Equal(t, p.Price, got.Items[0].UnitPrice)
}

func TestPlaceOrderRejectsInsufficientStock(t *testing.T) {
	setupDB(t)
	_, _, p := seedHierarchy(t)

	orders := NewOrderService(nil)
	_, err := orders.PlaceOrder(checkout(p, p.InventoryCount+1), nil)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	// The failed checkout must not touch inventory.
	fresh, err := NewCatalogService().Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.InventoryCount, fresh.InventoryCount)
}

func TestPlaceOrderRejectsInactiveProduct(t *testing.T) {
	setupDB(t)
	_, _, p := seedHierarchy(t)

	_, err := NewCatalogService().ToggleProductActive(p.ID)
	require.NoError(t, err)

	orders := NewOrderService(nil)
	_, err = orders.PlaceOrder(checkout(p, 1), nil)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestPlaceOrderRejectsMissingProduct(t *testing.T) {
	setupDB(t)

	orders := NewOrderService(nil)
	_, err := orders.PlaceOrder(CheckoutInput{
		CustomerName:  "Ghost",
		CustomerEmail: "ghost@example.com",
		ShippingAddr:  "Nowhere",
		Items:         []CheckoutItem{{ProductID: 404, Quantity: 1}},
	}, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsReference(err))
}

func TestSetStatusAcceptsAnyTransition(t *testing.T) {
	setupDB(t)
	_, _, p := seedHierarchy(t)

	orders := NewOrderService(nil)
	order, err := orders.PlaceOrder(checkout(p, 1), nil)
	require.NoError(t, err)

	// Forward, backward, and repeated moves are all legal.
	transitions := []models.OrderStatus{
		models.OrderDelivered,
		models.OrderPending,
		models.OrderCancelled,
		models.OrderShipped,
		models.OrderShipped,
	}
	for _, status := range transitions {
		updated, err := orders.SetStatus(order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	setupDB(t)
	_, _, p := seedHierarchy(t)

	orders := NewOrderService(nil)
	order, err := orders.PlaceOrder(checkout(p, 1), nil)
	require.NoError(t, err)

	_, err = orders.SetStatus(order.ID, models.OrderStatus("misplaced"))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	// The stored status is untouched.
	got, err := orders.Order(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, got.Status)
}

func TestSetPaymentStatusIndependentOfFulfilment(t *testing.T) {
	setupDB(t)
	_, _, p := seedHierarchy(t)

	orders := NewOrderService(nil)
	order, err := orders.PlaceOrder(checkout(p, 1), nil)
	require.NoError(t, err)

	updated, err := orders.SetPaymentStatus(order.ID, models.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, models.OrderPending, updated.Status)

	refunded, err := orders.SetPaymentStatus(order.ID, models.PaymentRefunded)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, refunded.PaymentStatus)
}

func TestSetStatusOrderNotFound(t *testing.T) {
	setupDB(t)

	orders := NewOrderService(nil)
	_, err := orders.SetStatus(9999, models.OrderShipped)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestOrdersByStatusFilter(t *testing.T) {
	setupDB(t)
	_, _, p := seedHierarchy(t)

	orders := NewOrderService(nil)

	first, err := orders.PlaceOrder(checkout(p, 1), nil)
	require.NoError(t, err)
	_, err = orders.PlaceOrder(checkout(p, 1), nil)
	require.NoError(t, err)

	_, err = orders.SetStatus(first.ID, models.OrderShipped)
	require.NoError(t, err)

	shipped, _, err := orders.OrdersByStatus(models.OrderShipped, 1, 20)
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	assert.Equal(t, first.ID, shipped[0].ID)

	pending, _, err := orders.OrdersByStatus(models.OrderPending, 1, 20)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

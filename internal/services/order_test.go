package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/storage"
)

func newOrderFixture(t *testing.T) (*OrderService, *CartService, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	carts := NewCartService(store)
	return NewOrderService(store, carts), carts, store
}

func TestOrderFromEmptyCartFails(t *testing.T) {
	orders, _, store := newOrderFixture(t)

	_, err := orders.CreateFromCart(1, "12 MG Road, Bengaluru", "")
	assert.ErrorIs(t, err, ErrEmptyCart)

	all, err := store.GetAllOrders()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOrderRequiresDeliveryAddress(t *testing.T) {
	orders, carts, store := newOrderFixture(t)
	pizza := seedFoodItem(t, store, "Margherita Pizza", 250, true)
	_, err := carts.AddItem(1, pizza.ID, 1)
	require.NoError(t, err)

	_, err = orders.CreateFromCart(1, "   ", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderSnapshotsCartAndClearsIt(t *testing.T) {
	orders, carts, store := newOrderFixture(t)
	pizza := seedFoodItem(t, store, "Margherita Pizza", 100, true)
	coke := seedFoodItem(t, store, "Cola", 50, true)

	_, err := carts.AddItem(1, pizza.ID, 2)
	require.NoError(t, err)
	_, err = carts.AddItem(1, coke.ID, 1)
	require.NoError(t, err)

	order, err := orders.CreateFromCart(1, "12 MG Road, Bengaluru", "No onions")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderID, "ORD"))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, 250.0, order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 100.0, order.Items[0].UnitPrice)
	assert.Equal(t, 1, order.Items[1].Quantity)
	assert.Equal(t, 50.0, order.Items[1].UnitPrice)

	// Checkout emptied the cart
	cart, err := carts.GetOrCreate(1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestOrderStatusWorkflow(t *testing.T) {
	orders, carts, store := newOrderFixture(t)
	pizza := seedFoodItem(t, store, "Margherita Pizza", 250, true)
	_, err := carts.AddItem(1, pizza.ID, 1)
	require.NoError(t, err)

	order, err := orders.CreateFromCart(1, "12 MG Road, Bengaluru", "")
	require.NoError(t, err)

	// The happy path walks every state in sequence
	for _, next := range []models.OrderStatus{
		models.OrderStatusConfirmed,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusOutForDelivery,
		models.OrderStatusDelivered,
	} {
		order, err = orders.UpdateStatus(order.OrderID, next)
		require.NoError(t, err)
		assert.Equal(t, next, order.Status)
	}

	// Delivered is terminal
	_, err = orders.UpdateStatus(order.OrderID, models.OrderStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = orders.UpdateStatus(order.OrderID, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderIllegalJumpsRejected(t *testing.T) {
	orders, carts, store := newOrderFixture(t)
	pizza := seedFoodItem(t, store, "Margherita Pizza", 250, true)
	_, err := carts.AddItem(1, pizza.ID, 1)
	require.NoError(t, err)

	order, err := orders.CreateFromCart(1, "12 MG Road, Bengaluru", "")
	require.NoError(t, err)

	_, err = orders.UpdateStatus(order.OrderID, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = orders.UpdateStatus(order.OrderID, models.OrderStatusOutForDelivery)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// The failed attempts left the order untouched
	got, err := orders.GetByOrderID(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

func TestOrderCancellation(t *testing.T) {
	orders, carts, store := newOrderFixture(t)
	pizza := seedFoodItem(t, store, "Margherita Pizza", 250, true)
	_, err := carts.AddItem(1, pizza.ID, 1)
	require.NoError(t, err)

	order, err := orders.CreateFromCart(1, "12 MG Road, Bengaluru", "")
	require.NoError(t, err)

	order, err = orders.UpdateStatus(order.OrderID, models.OrderStatusCancelled)
	require.NoError(t, err)

	// Cancelled is terminal too
	_, err = orders.UpdateStatus(order.OrderID, models.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderEstimatedTime(t *testing.T) {
	orders, carts, store := newOrderFixture(t)
	pizza := seedFoodItem(t, store, "Margherita Pizza", 250, true)
	_, err := carts.AddItem(1, pizza.ID, 1)
	require.NoError(t, err)

	order, err := orders.CreateFromCart(1, "12 MG Road, Bengaluru", "")
	require.NoError(t, err)

	order, err = orders.SetEstimatedTime(order.OrderID, 35)
	require.NoError(t, err)
	assert.Equal(t, 35, order.EstimatedTimeMinutes)
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("out_for_delivery")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusOutForDelivery, status)

	status, err = ParseOrderStatus(" CONFIRMED ")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, status)

	_, err = ParseOrderStatus("SHIPPED")
	assert.ErrorIs(t, err, ErrValidation)
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/storage"
	"github.com/fooddash-app/fooddash-backend/internal/utils"
)

// orderIDAttempts bounds retries when a generated order id collides
const orderIDAttempts = 3

// statusTransitions is the legal forward workflow. Anything not listed is
// rejected with ErrInvalidTransition.
var statusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:        {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:      {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing:      {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:          {models.OrderStatusOutForDelivery},
	models.OrderStatusOutForDelivery: {models.OrderStatusDelivered},
}

// OrderService converts carts into immutable orders and manages workflow
// state
type OrderService struct {
	store storage.Store
	carts *CartService
}

// NewOrderService creates a new order service
func NewOrderService(store storage.Store, carts *CartService) *OrderService {
	return &OrderService{store: store, carts: carts}
}

// CreateFromCart snapshots the user's cart into a new order and clears the
// cart, atomically. TotalAmount is summed here once and never recomputed.
func (s *OrderService) CreateFromCart(userID uint, deliveryAddress string, specialInstructions string) (*models.Order, error) {
	if strings.TrimSpace(deliveryAddress) == "" {
		return nil, fmt.Errorf("%w: delivery address is required", ErrValidation)
	}

	cart, err := s.carts.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		UserID:              userID,
		DeliveryAddress:     deliveryAddress,
		SpecialInstructions: specialInstructions,
		Status:              models.OrderStatusPending,
		PaymentStatus:       models.PaymentStatusPending,
	}
	for i := range cart.Items {
		line := cart.Items[i]
		order.Items = append(order.Items, models.OrderItem{
			FoodItemID: line.FoodItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		})
		order.TotalAmount += line.TotalPrice()
	}

	// The order id carries a random suffix; the unique index catches the
	// (vanishingly rare) collision and we retry with a fresh id.
	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		order.OrderID = utils.GenerateOrderID()
		created, err := s.store.CreateOrderFromCart(order, cart.ID)
		if errors.Is(err, storage.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		return created, nil
	}
	return nil, fmt.Errorf("%w: could not allocate a unique order id", ErrConflict)
}

// GetByOrderID fetches an order by its opaque id
func (s *OrderService) GetByOrderID(orderID string) (*models.Order, error) {
	order, err := s.store.GetOrderByOrderID(orderID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}
	return order, err
}

// ListForUser returns the user's orders, newest first
func (s *OrderService) ListForUser(userID uint) ([]*models.Order, error) {
	return s.store.GetOrdersByUser(userID)
}

// ListAll returns every order (admin dashboard)
func (s *OrderService) ListAll() ([]*models.Order, error) {
	return s.store.GetAllOrders()
}

// ListByStatus returns orders in one workflow state
func (s *OrderService) ListByStatus(status models.OrderStatus) ([]*models.Order, error) {
	return s.store.GetOrdersByStatus(status)
}

// UpdateStatus moves an order along the workflow. Illegal transitions
// (including any move out of a terminal state) fail with
// ErrInvalidTransition.
func (s *OrderService) UpdateStatus(orderID string, next models.OrderStatus) (*models.Order, error) {
	order, err := s.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}

	if !canTransition(order.Status, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	order.Status = next
	if err := s.store.UpdateOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetEstimatedTime records the kitchen's delivery estimate in minutes
func (s *OrderService) SetEstimatedTime(orderID string, minutes int) (*models.Order, error) {
	order, err := s.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}

	order.EstimatedTimeMinutes = minutes
	if err := s.store.UpdateOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

func canTransition(from, to models.OrderStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ParseOrderStatus validates a status string from the API
func ParseOrderStatus(raw string) (models.OrderStatus, error) {
	status := models.OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch status {
	case models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusPreparing,
		models.OrderStatusReady, models.OrderStatusOutForDelivery,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown order status %q", ErrValidation, raw)
	}
}

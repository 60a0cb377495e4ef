package services

import (
	"errors"
	"fmt"

	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/storage"
)

// CartService manages the per-user basket
type CartService struct {
	store storage.Store
}

// NewCartService creates a new cart service
func NewCartService(store storage.Store) *CartService {
	return &CartService{store: store}
}

// GetOrCreate returns the user's cart, creating an empty one on first
// access. The storage layer enforces one cart per user; if a concurrent
// request wins the creation race we read back the winner's row.
func (s *CartService) GetOrCreate(userID uint) (*models.Cart, error) {
	cart, err := s.store.GetCartByUser(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	cart, err = s.store.CreateCart(userID)
	if errors.Is(err, storage.ErrDuplicate) {
		return s.store.GetCartByUser(userID)
	}
	return cart, err
}

// AddItem appends a line for the food item or bumps the quantity of an
// existing line. The unit price is snapshotted from the item's current
// price at add time.
func (s *CartService) AddItem(userID uint, foodItemID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	cart, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.store.GetFoodItem(foodItemID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: food item %d", ErrNotFound, foodItemID)
	}
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}

	// Same item already in the cart: merge quantities instead of adding
	// a second line
	for i := range cart.Items {
		if cart.Items[i].FoodItemID == foodItemID {
			line := cart.Items[i]
			line.Quantity += quantity
			if err := s.store.SaveCartItem(&line); err != nil {
				return nil, err
			}
			return s.store.GetCartByUser(userID)
		}
	}

	line := &models.CartItem{
		CartID:     cart.ID,
		FoodItemID: foodItemID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
	}
	if err := s.store.SaveCartItem(line); err != nil {
		return nil, err
	}
	return s.store.GetCartByUser(userID)
}

// UpdateQuantity overwrites a line's quantity; zero or negative removes the
// line. Ownership is checked against the cart, not the user directly, so a
// forged cart item id from another user's cart is rejected.
func (s *CartService) UpdateQuantity(userID uint, cartItemID uint, quantity int) (*models.Cart, error) {
	cart, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	line, err := s.store.GetCartItem(cartItemID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, cartItemID)
	}
	if err != nil {
		return nil, err
	}
	if line.CartID != cart.ID {
		return nil, ErrNotOwned
	}

	if quantity <= 0 {
		if err := s.store.DeleteCartItem(line.ID); err != nil {
			return nil, err
		}
	} else {
		line.Quantity = quantity
		if err := s.store.SaveCartItem(line); err != nil {
			return nil, err
		}
	}
	return s.store.GetCartByUser(userID)
}

// RemoveItem deletes a line outright
func (s *CartService) RemoveItem(userID uint, cartItemID uint) (*models.Cart, error) {
	return s.UpdateQuantity(userID, cartItemID, 0)
}

// Clear empties the cart. Only order creation calls this; it is not exposed
// as a standalone destructive endpoint.
func (s *CartService) Clear(userID uint) error {
	cart, err := s.GetOrCreate(userID)
	if err != nil {
		return err
	}
	return s.store.ClearCart(cart.ID)
}

// Total sums the line totals of a cart
func (s *CartService) Total(cart *models.Cart) float64 {
	var total float64
	for i := range cart.Items {
		total += cart.Items[i].TotalPrice()
	}
	return total
}

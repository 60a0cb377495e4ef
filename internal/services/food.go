package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/storage"
)

// FoodService manages the menu
type FoodService struct {
	store storage.Store
}

// NewFoodService creates a new food service
func NewFoodService(store storage.Store) *FoodService {
	return &FoodService{store: store}
}

// ListAvailable returns every item currently orderable
func (s *FoodService) ListAvailable() ([]*models.FoodItem, error) {
	return s.store.GetAvailableFoodItems()
}

// Search finds available items matching the query; a blank query returns
// the full available menu
func (s *FoodService) Search(query string) ([]*models.FoodItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListAvailable()
	}
	return s.store.SearchFoodItems(query)
}

// ListByCategory returns items in one category
func (s *FoodService) ListByCategory(category string) ([]*models.FoodItem, error) {
	return s.store.GetFoodItemsByCategory(category)
}

// GetByID fetches a single item
func (s *FoodService) GetByID(id uint) (*models.FoodItem, error) {
	item, err := s.store.GetFoodItem(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: food item %d", ErrNotFound, id)
	}
	return item, err
}

// Create adds a menu item
func (s *FoodService) Create(item *models.FoodItem) (*models.FoodItem, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if item.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	return s.store.CreateFoodItem(item)
}

// Update saves changes to an existing item
func (s *FoodService) Update(item *models.FoodItem) error {
	if _, err := s.GetByID(item.ID); err != nil {
		return err
	}
	return s.store.UpdateFoodItem(item)
}

// Delete removes an item from the menu
func (s *FoodService) Delete(id uint) error {
	err := s.store.DeleteFoodItem(id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: food item %d", ErrNotFound, id)
	}
	return err
}

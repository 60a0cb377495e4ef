package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/storage"
)

func seedFoodItem(t *testing.T, store storage.Store, name string, price float64, available bool) *models.FoodItem {
	t.Helper()
	item, err := store.CreateFoodItem(&models.FoodItem{
		Name:      name,
		Category:  "Mains",
		Price:     price,
		Available: available,
	})
	require.NoError(t, err)
	return item
}

func TestCartGetOrCreateIsIdempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	carts := NewCartService(store)

	first, err := carts.GetOrCreate(1)
	require.NoError(t, err)
	second, err := carts.GetOrCreate(1)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Empty(t, second.Items)
}

func TestCartConcurrentFirstAccessYieldsOneCart(t *testing.T) {
	store := storage.NewMemoryStore()
	carts := NewCartService(store)

	const workers = 8
	results := make(chan uint, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cart, err := carts.GetOrCreate(7)
			if assert.NoError(t, err) {
				results <- cart.ID
			}
		}()
	}
	wg.Wait()
	close(results)

	first := <-results
	for id := range results {
		assert.Equal(t, first, id)
	}
}

func TestCartAddItemMergesQuantities(t *testing.T) {
	store := storage.NewMemoryStore()
	carts := NewCartService(store)
	pizza := seedFoodItem(t, store, "Margherita Pizza", 299, true)

	_, err := carts.AddItem(1, pizza.ID, 2)
	require.NoError(t, err)
	cart, err := carts.AddItem(1, pizza.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 299.0, cart.Items[0].UnitPrice)
	assert.Equal(t, 1495.0, carts.Total(cart))
}

func TestCartAddItemRejectsBadInput(t *testing.T) {
	store := storage.NewMemoryStore()
	carts := NewCartService(store)
	burger := seedFoodItem(t, store, "Veg Burger", 149, true)
	offMenu := seedFoodItem(t, store, "Seasonal Special", 499, false)

	_, err := carts.AddItem(1, burger.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = carts.AddItem(1, burger.ID, -2)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = carts.AddItem(1, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = carts.AddItem(1, offMenu.ID, 1)
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestCartPriceSnapshotSurvivesMenuChange(t *testing.T) {
	store := storage.NewMemoryStore()
	carts := NewCartService(store)
	pizza := seedFoodItem(t, store, "Margherita Pizza", 299, true)

	cart, err := carts.AddItem(1, pizza.ID, 1)
	require.NoError(t, err)

	// Menu price changes after the item entered the cart
	pizza.Price = 399
	require.NoError(t, store.UpdateFoodItem(pizza))

	cart, err = carts.GetOrCreate(1)
	require.NoError(t, err)
	assert.Equal(t, 299.0, cart.Items[0].UnitPrice)
	assert.Equal(t, 299.0, carts.Total(cart))
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	store := storage.NewMemoryStore()
	carts := NewCartService(store)
	pizza := seedFoodItem(t, store, "Margherita Pizza", 299, true)

	cart, err := carts.AddItem(1, pizza.ID, 2)
	require.NoError(t, err)
	lineID := cart.Items[0].ID

	cart, err = carts.UpdateQuantity(1, lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartUpdateQuantityNegativeRemovesLine(t *testing.T) {
	store := storage.NewMemoryStore()
	carts := NewCartService(store)
	pizza := seedFoodItem(t, store, "Margherita Pizza", 299, true)

	cart, err := carts.AddItem(1, pizza.ID, 2)
	require.NoError(t, err)

	cart, err = carts.UpdateQuantity(1, cart.Items[0].ID, -1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartRejectsForeignCartItem(t *testing.T) {
	store := storage.NewMemoryStore()
	carts := NewCartService(store)
	pizza := seedFoodItem(t, store, "Margherita Pizza", 299, true)

	// User 1 owns the line, user 2 tries to touch it
	cart, err := carts.AddItem(1, pizza.ID, 1)
	require.NoError(t, err)

	_, err = carts.UpdateQuantity(2, cart.Items[0].ID, 5)
	assert.ErrorIs(t, err, ErrNotOwned)

	_, err = carts.RemoveItem(2, cart.Items[0].ID)
	assert.ErrorIs(t, err, ErrNotOwned)

	// The victim's line is untouched
	cart, err = carts.GetOrCreate(1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

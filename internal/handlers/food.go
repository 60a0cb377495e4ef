package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/services"
)

// FoodHandler exposes the public menu and the admin menu editor
type FoodHandler struct {
	foods *services.FoodService
	ai    *services.AIService
}

// NewFoodHandler creates a new food handler
func NewFoodHandler(foods *services.FoodService, ai *services.AIService) *FoodHandler {
	return &FoodHandler{foods: foods, ai: ai}
}

// List returns the available menu, filtered by ?category= or ?q= when given
func (h *FoodHandler) List(c *fiber.Ctx) error {
	var (
		items []*models.FoodItem
		err   error
	)
	switch {
	case c.Query("q") != "":
		items, err = h.foods.Search(c.Query("q"))
	case c.Query("category") != "":
		items, err = h.foods.ListByCategory(c.Query("category"))
	default:
		items, err = h.foods.ListAvailable()
	}
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"items":   items,
		"count":   len(items),
	})
}

// Get returns one menu item
func (h *FoodHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("itemID")
	if err != nil || id <= 0 {
		return fail(c, fiber.StatusBadRequest, "Invalid food item id")
	}

	item, err := h.foods.GetByID(uint(id))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"item":    item,
	})
}

type foodItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Available   *bool   `json:"available"`
}

// Create adds a menu item (admin)
func (h *FoodHandler) Create(c *fiber.Ctx) error {
	var req foodItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	item := &models.FoodItem{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	item, err := h.foods.Create(item)
	if err != nil {
		return serviceError(c, err)
	}

	log.Printf("🍔 Menu item created: %s (₹%.2f)", item.Name, item.Price)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Food item created",
		"item":    item,
	})
}

// Update saves changes to a menu item (admin)
func (h *FoodHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("itemID")
	if err != nil || id <= 0 {
		return fail(c, fiber.StatusBadRequest, "Invalid food item id")
	}

	item, err := h.foods.GetByID(uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	var req foodItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Price > 0 {
		item.Price = req.Price
	}
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := h.foods.Update(item); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Food item updated",
		"item":    item,
	})
}

// Delete removes a menu item (admin)
func (h *FoodHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("itemID")
	if err != nil || id <= 0 {
		return fail(c, fiber.StatusBadRequest, "Invalid food item id")
	}

	if err := h.foods.Delete(uint(id)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Food item deleted",
	})
}

type suggestRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Suggest generates menu copy for the admin editor. This endpoint never
// fails; on any AI trouble it serves canned content.
func (h *FoodHandler) Suggest(c *fiber.Ctx) error {
	var req suggestRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" {
		return fail(c, fiber.StatusBadRequest, "Name is required")
	}

	suggestion := h.ai.Suggest(c.Context(), req.Name, req.Category)
	return c.JSON(fiber.Map{
		"success":    true,
		"suggestion": suggestion,
	})
}

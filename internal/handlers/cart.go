package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fooddash-app/fooddash-backend/internal/middleware"
	"github.com/fooddash-app/fooddash-backend/internal/services"
)

// CartHandler exposes the logged-in user's basket
type CartHandler struct {
	carts *services.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get returns the cart, creating an empty one on first access
func (h *CartHandler) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	cart, err := h.carts.GetOrCreate(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"cart":    cart,
		"total":   h.carts.Total(cart),
	})
}

type addCartItemRequest struct {
	FoodItemID uint `json:"foodItemId"`
	Quantity   int  `json:"quantity"`
}

// AddItem adds a menu item to the cart, merging with an existing line
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req addCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.AddItem(user.ID, req.FoodItemID, req.Quantity)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item added to cart",
		"cart":    cart,
		"total":   h.carts.Total(cart),
	})
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem overwrites a line's quantity; zero removes the line
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var req updateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	itemID, err := c.ParamsInt("itemID")
	if err != nil || itemID <= 0 {
		return fail(c, fiber.StatusBadRequest, "Invalid cart item id")
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.UpdateQuantity(user.ID, uint(itemID), req.Quantity)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart updated",
		"cart":    cart,
		"total":   h.carts.Total(cart),
	})
}

// RemoveItem deletes a line outright
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("itemID")
	if err != nil || itemID <= 0 {
		return fail(c, fiber.StatusBadRequest, "Invalid cart item id")
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.RemoveItem(user.ID, uint(itemID))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item removed from cart",
		"cart":    cart,
		"total":   h.carts.Total(cart),
	})
}

package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/fooddash-app/fooddash-backend/internal/middleware"
	"github.com/fooddash-app/fooddash-backend/internal/services"
)

// OrderHandler exposes checkout and order history for customers
type OrderHandler struct {
	orders *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeOrderRequest struct {
	DeliveryAddress     string `json:"deliveryAddress"`
	SpecialInstructions string `json:"specialInstructions"`
}

// Place snapshots the cart into a new order and empties the cart
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user := middleware.CurrentUser(c)
	order, err := h.orders.CreateFromCart(user.ID, req.DeliveryAddress, req.SpecialInstructions)
	if err != nil {
		return serviceError(c, err)
	}

	log.Printf("🛒 Order %s placed by user %d for ₹%.2f", order.OrderID, user.ID, order.TotalAmount)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order placed",
		"order":   order,
	})
}

// List returns the user's orders, newest first
func (h *OrderHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	orders, err := h.orders.ListForUser(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"orders":  orders,
		"count":   len(orders),
	})
}

// Get returns one of the user's orders. Someone else's order id answers 404,
// not 403, so ids cannot be probed.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	order, err := h.orders.GetByOrderID(c.Params("orderID"))
	if err != nil {
		return serviceError(c, err)
	}
	if order.UserID != user.ID {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"order":   order,
	})
}

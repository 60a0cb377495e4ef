package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/fooddash-app/fooddash-backend/internal/middleware"
	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/services"
	"github.com/fooddash-app/fooddash-backend/internal/utils"
)

// PaymentHandler creates gateway orders for checkout and receives the signed
// confirmation callback
type PaymentHandler struct {
	payments        *services.PaymentService
	orders          *services.OrderService
	subscriptionFee float64
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *services.PaymentService, orders *services.OrderService, subscriptionFee float64) *PaymentHandler {
	return &PaymentHandler{
		payments:        payments,
		orders:          orders,
		subscriptionFee: subscriptionFee,
	}
}

type createOrderPaymentRequest struct {
	OrderID string `json:"orderId"`
}

// CreateOrderPayment opens a gateway order for one of the user's food orders
func (h *PaymentHandler) CreateOrderPayment(c *fiber.Ctx) error {
	var req createOrderPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user := middleware.CurrentUser(c)
	order, err := h.orders.GetByOrderID(req.OrderID)
	if err != nil {
		return serviceError(c, err)
	}
	if order.UserID != user.ID {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	if order.PaymentStatus == models.PaymentStatusCompleted {
		return fail(c, fiber.StatusConflict, "Order is already paid")
	}

	result, err := h.payments.CreateGatewayOrder(order.TotalAmount, order.OrderID, models.PurposeFoodOrder, 0)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"payment": result,
	})
}

// CreateSubscriptionOrder opens a gateway order for the monthly admin
// subscription fee
func (h *PaymentHandler) CreateSubscriptionOrder(c *fiber.Ctx) error {
	admin := middleware.CurrentAdmin(c)

	result, err := h.payments.CreateGatewayOrder(
		h.subscriptionFee,
		utils.GenerateSubscriptionOrderID(),
		models.PurposeAdminSubscription,
		admin.ID,
	)
	if err != nil {
		return serviceError(c, err)
	}

	log.Printf("💳 Subscription payment initiated for admin %s", admin.AdminID)
	return c.JSON(fiber.Map{
		"success": true,
		"payment": result,
	})
}

// VerifyPayment is the checkout callback. The signature decides the outcome;
// both outcomes are recorded, and only then does the client get an answer.
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	var req services.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" {
		return fail(c, fiber.StatusBadRequest, "Payment ids are required")
	}

	valid := h.payments.VerifySignature(req)
	if err := h.payments.Finalize(req, valid); err != nil {
		log.Printf("❌ Payment finalization failed for %s: %v", req.RazorpayOrderID, err)
		return serviceError(c, err)
	}

	if !valid {
		log.Printf("⚠️  Invalid payment signature for gateway order %s", req.RazorpayOrderID)
		return fail(c, fiber.StatusBadRequest, "Invalid signature")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment Success",
	})
}

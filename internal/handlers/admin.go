package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fooddash-app/fooddash-backend/internal/middleware"
	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/services"
	"github.com/fooddash-app/fooddash-backend/internal/utils"
)

// AdminHandler drives admin registration, login, password reset, the order
// dashboard and subscription status
type AdminHandler struct {
	admins    *services.AdminService
	orders    *services.OrderService
	otps      *services.OTPService
	jwtSecret string
	jwtTTL    time.Duration
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admins *services.AdminService, orders *services.OrderService, otps *services.OTPService, jwtSecret string, jwtTTL time.Duration) *AdminHandler {
	return &AdminHandler{
		admins:    admins,
		orders:    orders,
		otps:      otps,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

// SendRegistrationOTP issues an admin email verification code
func (h *AdminHandler) SendRegistrationOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	email := normalizeEmail(req.Email)
	if email == "" {
		return fail(c, fiber.StatusBadRequest, "Email is required")
	}

	exists, err := h.admins.EmailExists(email)
	if err != nil {
		return serviceError(c, err)
	}
	if exists {
		return fail(c, fiber.StatusConflict, "Email already registered")
	}

	if _, err := h.otps.Issue(email, models.OTPPurposeAdminEmail); err != nil {
		log.Printf("❌ Failed to issue admin registration OTP: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP sent to " + email,
	})
}

type registerAdminRequest struct {
	services.AdminRegistration
	OTP string `json:"otp"`
}

// Register verifies the OTP and creates the admin account
func (h *AdminHandler) Register(c *fiber.Ctx) error {
	var req registerAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return fail(c, fiber.StatusBadRequest, "Full name, email and password are required")
	}

	if !h.otps.Verify(req.Email, req.OTP, models.OTPPurposeAdminEmail) {
		return fail(c, fiber.StatusBadRequest, "Invalid or expired OTP")
	}

	admin, err := h.admins.Register(req.AdminRegistration)
	if err != nil {
		return serviceError(c, err)
	}

	log.Printf("✅ New admin registered: %s (%s)", admin.Email, admin.AdminID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registration successful",
		"admin":   admin,
	})
}

// Login checks admin credentials and returns a bearer token
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	admin, err := h.admins.Authenticate(normalizeEmail(req.Email), req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	token, err := utils.GenerateAccessToken(admin.ID, utils.RoleAdmin, h.jwtSecret, h.jwtTTL)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":            true,
		"message":            "Login successful",
		"token":              token,
		"admin":              admin,
		"subscriptionActive": h.admins.DashboardAccessible(admin),
	})
}

// ForgotPassword issues an admin reset code without revealing whether the
// email exists
func (h *AdminHandler) ForgotPassword(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	email := normalizeEmail(req.Email)
	if email == "" {
		return fail(c, fiber.StatusBadRequest, "Email is required")
	}

	exists, err := h.admins.EmailExists(email)
	if err != nil {
		return serviceError(c, err)
	}
	if exists {
		if _, err := h.otps.Issue(email, models.OTPPurposeAdminResetPassword); err != nil {
			log.Printf("❌ Failed to issue admin reset OTP: %v", err)
		}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "If the email is registered, an OTP has been sent",
	})
}

// ResetPassword verifies the reset OTP and replaces the admin password
func (h *AdminHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	email := normalizeEmail(req.Email)
	if email == "" || req.NewPassword == "" {
		return fail(c, fiber.StatusBadRequest, "Email and new password are required")
	}

	if !h.otps.Verify(email, req.OTP, models.OTPPurposeAdminResetPassword) {
		return fail(c, fiber.StatusBadRequest, "Invalid or expired OTP")
	}

	if err := h.admins.ResetPassword(email, req.NewPassword); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password reset successful",
	})
}

// SubscriptionStatus reports whether the dashboard is unlocked for the
// logged-in admin
func (h *AdminHandler) SubscriptionStatus(c *fiber.Ctx) error {
	admin := middleware.CurrentAdmin(c)
	return c.JSON(fiber.Map{
		"success":            true,
		"subscriptionActive": h.admins.DashboardAccessible(admin),
		"paid":               admin.Paid,
		"planType":           admin.PlanType,
		"subscriptionExpiry": admin.SubscriptionExpiry,
	})
}

// ListOrders returns all orders, optionally filtered by ?status=
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	if raw := c.Query("status"); raw != "" {
		status, err := services.ParseOrderStatus(raw)
		if err != nil {
			return serviceError(c, err)
		}
		orders, err := h.orders.ListByStatus(status)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"orders":  orders,
			"count":   len(orders),
		})
	}

	orders, err := h.orders.ListAll()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"orders":  orders,
		"count":   len(orders),
	})
}

// GetOrder returns one order by its opaque id
func (h *AdminHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.orders.GetByOrderID(c.Params("orderID"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"order":   order,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus moves an order along the workflow. Illegal transitions
// answer 409.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	status, err := services.ParseOrderStatus(req.Status)
	if err != nil {
		return serviceError(c, err)
	}

	order, err := h.orders.UpdateStatus(c.Params("orderID"), status)
	if err != nil {
		return serviceError(c, err)
	}

	log.Printf("📦 Order %s moved to %s", order.OrderID, order.Status)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order status updated",
		"order":   order,
	})
}

type estimatedTimeRequest struct {
	Minutes int `json:"minutes"`
}

// SetEstimatedTime records the kitchen's delivery estimate
func (h *AdminHandler) SetEstimatedTime(c *fiber.Ctx) error {
	var req estimatedTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Minutes <= 0 {
		return fail(c, fiber.StatusBadRequest, "Minutes must be positive")
	}

	order, err := h.orders.SetEstimatedTime(c.Params("orderID"), req.Minutes)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Estimated time updated",
		"order":   order,
	})
}

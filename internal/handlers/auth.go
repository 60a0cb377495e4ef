package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/services"
	"github.com/fooddash-app/fooddash-backend/internal/utils"
)

// AuthHandler drives customer registration, login and password reset
type AuthHandler struct {
	users     *services.UserService
	otps      *services.OTPService
	jwtSecret string
	jwtTTL    time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *services.UserService, otps *services.OTPService, jwtSecret string, jwtTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		users:     users,
		otps:      otps,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

// SendRegistrationOTP issues an email verification code for a new account.
// Replays for an already-registered email are rejected up front.
func (h *AuthHandler) SendRegistrationOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	email := normalizeEmail(req.Email)
	if email == "" {
		return fail(c, fiber.StatusBadRequest, "Email is required")
	}

	exists, err := h.users.EmailExists(email)
	if err != nil {
		return serviceError(c, err)
	}
	if exists {
		return fail(c, fiber.StatusConflict, "Email already registered")
	}

	if _, err := h.otps.Issue(email, models.OTPPurposeEmail); err != nil {
		log.Printf("❌ Failed to issue registration OTP: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP sent to " + email,
	})
}

type registerUserRequest struct {
	services.UserRegistration
	OTP string `json:"otp"`
}

// Register verifies the OTP and creates the account in one call
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return fail(c, fiber.StatusBadRequest, "Full name, email and password are required")
	}

	if !h.otps.Verify(req.Email, req.OTP, models.OTPPurposeEmail) {
		return fail(c, fiber.StatusBadRequest, "Invalid or expired OTP")
	}

	user, err := h.users.Register(req.UserRegistration)
	if err != nil {
		return serviceError(c, err)
	}

	log.Printf("✅ New user registered: %s", user.Email)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registration successful",
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and returns a bearer token carrying only the
// account identity
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.users.Authenticate(normalizeEmail(req.Email), req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	token, err := utils.GenerateAccessToken(user.ID, utils.RoleUser, h.jwtSecret, h.jwtTTL)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// ForgotPassword issues a reset code when the account exists. The response
// is identical either way so the endpoint cannot be used to probe emails.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	email := normalizeEmail(req.Email)
	if email == "" {
		return fail(c, fiber.StatusBadRequest, "Email is required")
	}

	exists, err := h.users.EmailExists(email)
	if err != nil {
		return serviceError(c, err)
	}
	if exists {
		if _, err := h.otps.Issue(email, models.OTPPurposeResetPassword); err != nil {
			log.Printf("❌ Failed to issue reset OTP: %v", err)
		}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "If the email is registered, an OTP has been sent",
	})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword verifies the reset OTP and replaces the password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	email := normalizeEmail(req.Email)
	if email == "" || req.NewPassword == "" {
		return fail(c, fiber.StatusBadRequest, "Email and new password are required")
	}

	if !h.otps.Verify(email, req.OTP, models.OTPPurposeResetPassword) {
		return fail(c, fiber.StatusBadRequest, "Invalid or expired OTP")
	}

	if err := h.users.ResetPassword(email, req.NewPassword); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password reset successful",
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

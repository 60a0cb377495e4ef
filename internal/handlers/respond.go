package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fooddash-app/fooddash-backend/internal/services"
)

// fail renders the uniform failure envelope
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// serviceError maps the service error taxonomy onto HTTP responses. Every
// mutating endpoint answers with a success flag and message, never a stack
// trace.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrNotOwned):
		return fail(c, fiber.StatusForbidden, "Cart item does not belong to your cart")
	case errors.Is(err, services.ErrEmptyCart):
		return fail(c, fiber.StatusBadRequest, "Cart is empty")
	case errors.Is(err, services.ErrItemUnavailable):
		return fail(c, fiber.StatusBadRequest, "Food item is not available")
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrConflict):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrGateway):
		return fail(c, fiber.StatusBadGateway, err.Error())
	default:
		return fail(c, fiber.StatusInternalServerError, "Something went wrong")
	}
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/services"
	"github.com/fooddash-app/fooddash-backend/internal/storage"
	"github.com/fooddash-app/fooddash-backend/internal/utils"
)

// Locals keys set by the auth middleware
const (
	LocalUser  = "user"
	LocalAdmin = "admin"
)

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success":  false,
		"message":  message,
		"redirect": "/login",
	})
}

// RequireUser authenticates a customer token and loads the authoritative
// user row for the request. Only the identity travels in the token; the
// entity is always re-fetched so stale session copies cannot leak through.
func RequireUser(secret string, store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, "Please login")
		}

		claims, id, err := utils.ParseAccessToken(token, secret)
		if err != nil || claims.Role != utils.RoleUser {
			return unauthorized(c, "Please login")
		}

		user, err := store.GetUserByID(id)
		if err != nil || !user.Enabled {
			return unauthorized(c, "Please login")
		}

		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// RequireAdmin authenticates an admin token and loads the admin row
func RequireAdmin(secret string, store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, "Please login as admin")
		}

		claims, id, err := utils.ParseAccessToken(token, secret)
		if err != nil || claims.Role != utils.RoleAdmin {
			return unauthorized(c, "Please login as admin")
		}

		admin, err := store.GetAdminByID(id)
		if err != nil || !admin.Active {
			return unauthorized(c, "Please login as admin")
		}

		c.Locals(LocalAdmin, admin)
		return c.Next()
	}
}

// RequireActiveSubscription gates the admin dashboard behind a paid
// subscription. Privileged emails (configuration) pass through. Must run
// after RequireAdmin.
func RequireActiveSubscription(admins *services.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, _ := c.Locals(LocalAdmin).(*models.Admin)
		if admin == nil {
			return unauthorized(c, "Please login as admin")
		}
		if !admins.DashboardAccessible(admin) {
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"success":  false,
				"message":  "Active subscription required",
				"redirect": "/admin/pay",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the user loaded by RequireUser
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(LocalUser).(*models.User)
	return user
}

// CurrentAdmin returns the admin loaded by RequireAdmin
func CurrentAdmin(c *fiber.Ctx) *models.Admin {
	admin, _ := c.Locals(LocalAdmin).(*models.Admin)
	return admin
}

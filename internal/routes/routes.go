package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fooddash-app/fooddash-backend/internal/handlers"
)

// Handlers bundles everything SetupRoutes wires into the app
type Handlers struct {
	Auth    *handlers.AuthHandler
	Admin   *handlers.AdminHandler
	Cart    *handlers.CartHandler
	Order   *handlers.OrderHandler
	Payment *handlers.PaymentHandler
	Food    *handlers.FoodHandler
	Health  *handlers.HealthHandler
}

// Middleware bundles the auth guards used by the route groups
type Middleware struct {
	RequireUser         fiber.Handler
	RequireAdmin        fiber.Handler
	RequireSubscription fiber.Handler
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, h Handlers, mw Middleware) {

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to FoodDash Backend!",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health": "/health",
				"api":    "/api",
			},
		})
	})

	app.Get("/health", h.Health.Check)
	app.Get("/health/detail", h.Health.Detail)

	api := app.Group("/api")

	// Customer auth
	auth := api.Group("/auth")
	auth.Post("/send-otp", h.Auth.SendRegistrationOTP)
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/forgot-password", h.Auth.ForgotPassword)
	auth.Post("/reset-password", h.Auth.ResetPassword)

	// Public menu
	foods := api.Group("/foods")
	foods.Get("/", h.Food.List)
	foods.Get("/:itemID", h.Food.Get)

	// Cart, owned by the logged-in user
	cart := api.Group("/cart", mw.RequireUser)
	cart.Get("/", h.Cart.Get)
	cart.Post("/items", h.Cart.AddItem)
	cart.Put("/items/:itemID", h.Cart.UpdateItem)
	cart.Delete("/items/:itemID", h.Cart.RemoveItem)

	// Orders
	orders := api.Group("/orders", mw.RequireUser)
	orders.Post("/", h.Order.Place)
	orders.Get("/", h.Order.List)
	orders.Get("/:orderID", h.Order.Get)

	// Payments. The verify callback is unauthenticated: the HMAC signature
	// is the trust boundary, not a session.
	payments := api.Group("/payments")
	payments.Post("/order", mw.RequireUser, h.Payment.CreateOrderPayment)
	payments.Post("/verify", h.Payment.VerifyPayment)

	// Admin auth
	adminAuth := api.Group("/admin/auth")
	adminAuth.Post("/send-otp", h.Admin.SendRegistrationOTP)
	adminAuth.Post("/register", h.Admin.Register)
	adminAuth.Post("/login", h.Admin.Login)
	adminAuth.Post("/forgot-password", h.Admin.ForgotPassword)
	adminAuth.Post("/reset-password", h.Admin.ResetPassword)

	// Admin subscription: status and checkout stay reachable without an
	// active subscription, otherwise a lapsed admin could never pay
	admin := api.Group("/admin", mw.RequireAdmin)
	admin.Get("/subscription", h.Admin.SubscriptionStatus)
	admin.Post("/subscription/pay", h.Payment.CreateSubscriptionOrder)

	// Admin dashboard, gated on the subscription
	dashboard := api.Group("/admin", mw.RequireAdmin, mw.RequireSubscription)
	dashboard.Get("/orders", h.Admin.ListOrders)
	dashboard.Get("/orders/:orderID", h.Admin.GetOrder)
	dashboard.Put("/orders/:orderID/status", h.Admin.UpdateOrderStatus)
	dashboard.Put("/orders/:orderID/estimated-time", h.Admin.SetEstimatedTime)
	dashboard.Post("/foods", h.Food.Create)
	dashboard.Put("/foods/:itemID", h.Food.Update)
	dashboard.Delete("/foods/:itemID", h.Food.Delete)
	dashboard.Post("/foods/ai-suggest", h.Food.Suggest)
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fooddash-app/fooddash-backend/internal/config"
	"github.com/fooddash-app/fooddash-backend/internal/handlers"
	"github.com/fooddash-app/fooddash-backend/internal/middleware"
	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/routes"
	"github.com/fooddash-app/fooddash-backend/internal/services"
	"github.com/fooddash-app/fooddash-backend/internal/storage"
)

type nullSender struct{}

func (nullSender) Send(to, subject, body string) error { return nil }

type stubGateway struct{ calls int }

func (g *stubGateway) CreateOrder(amountPaise int64, currency string, receipt string, notes map[string]interface{}) (string, error) {
	g.calls++
	return fmt.Sprintf("order_stub%04d", g.calls), nil
}

type testEnv struct {
	app   *fiber.App
	store storage.Store
	otps  *services.OTPService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := storage.NewMemoryStore()
	otps := services.NewOTPService(store, nullSender{}, 10*time.Minute, 6)
	users := services.NewUserService(store)
	admins := services.NewAdminService(store, func(string) bool { return false })
	carts := services.NewCartService(store)
	orders := services.NewOrderService(store, carts)
	foods := services.NewFoodService(store)
	ai := services.NewAIService(config.OpenAIConfig{})
	payments := services.NewPaymentService(store, &stubGateway{}, "rzp_test_key", "test_secret", "INR")
	payments.RegisterHook(models.PurposeAdminSubscription, admins.ActivateMonthlySubscription)

	const secret = "test-jwt-secret"
	app := fiber.New()
	routes.SetupRoutes(app,
		routes.Handlers{
			Auth:    handlers.NewAuthHandler(users, otps, secret, time.Hour),
			Admin:   handlers.NewAdminHandler(admins, orders, otps, secret, time.Hour),
			Cart:    handlers.NewCartHandler(carts),
			Order:   handlers.NewOrderHandler(orders),
			Payment: handlers.NewPaymentHandler(payments, orders, 499.00),
			Food:    handlers.NewFoodHandler(foods, ai),
			Health:  handlers.NewHealthHandler(store, "test"),
		},
		routes.Middleware{
			RequireUser:         middleware.RequireUser(secret, store),
			RequireAdmin:        middleware.RequireAdmin(secret, store),
			RequireSubscription: middleware.RequireActiveSubscription(admins),
		},
	)
	return &testEnv{app: app, store: store, otps: otps}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp.StatusCode, parsed
}

// registerUser walks the OTP flow and returns a login token
func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()

	code, _ := e.request(t, http.MethodPost, "/api/auth/send-otp", "", fiber.Map{"email": email})
	require.Equal(t, http.StatusOK, code)

	otp, err := e.store.GetLatestOTP(email, models.OTPPurposeEmail)
	require.NoError(t, err)

	code, _ = e.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"fullName": "Test User",
		"email":    email,
		"password": "hunter22",
		"address":  "12 MG Road, Bengaluru",
		"otp":      otp.Code,
	})
	require.Equal(t, http.StatusCreated, code)

	code, body := e.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, code)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (e *testEnv) registerAdmin(t *testing.T, email string) string {
	t.Helper()

	code, _ := e.request(t, http.MethodPost, "/api/admin/auth/send-otp", "", fiber.Map{"email": email})
	require.Equal(t, http.StatusOK, code)

	otp, err := e.store.GetLatestOTP(email, models.OTPPurposeAdminEmail)
	require.NoError(t, err)

	code, _ = e.request(t, http.MethodPost, "/api/admin/auth/register", "", fiber.Map{
		"fullName": "Test Admin",
		"email":    email,
		"password": "secret123",
		"otp":      otp.Code,
	})
	require.Equal(t, http.StatusCreated, code)

	code, body := e.request(t, http.MethodPost, "/api/admin/auth/login", "", fiber.Map{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, code)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)
	code, body := env.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body["status"])
}

func TestRegistrationRejectsWrongOTP(t *testing.T) {
	env := newTestEnv(t)

	code, _ := env.request(t, http.MethodPost, "/api/auth/send-otp", "", fiber.Map{"email": "a@example.com"})
	require.Equal(t, http.StatusOK, code)

	code, body := env.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"fullName": "Test User",
		"email":    "a@example.com",
		"password": "hunter22",
		"otp":      "999999x", // can never match a numeric code
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
}

func TestCartRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	code, body := env.request(t, http.MethodGet, "/api/cart/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "/login", body["redirect"])
}

func TestCartAndCheckoutFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "buyer@example.com")

	item, err := env.store.CreateFoodItem(&models.FoodItem{
		Name: "Margherita Pizza", Category: "Pizza", Price: 299, Available: true,
	})
	require.NoError(t, err)

	code, body := env.request(t, http.MethodPost, "/api/cart/items", token, fiber.Map{
		"foodItemId": item.ID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 598.0, body["total"])

	code, body = env.request(t, http.MethodPost, "/api/orders/", token, fiber.Map{
		"deliveryAddress": "12 MG Road, Bengaluru",
	})
	require.Equal(t, http.StatusCreated, code)
	order := body["order"].(map[string]interface{})
	orderID := order["order_id"].(string)
	assert.Equal(t, "PENDING", order["status"])

	// The cart is empty after checkout
	code, body = env.request(t, http.MethodGet, "/api/cart/", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0.0, body["total"])

	// Placing a second order with an empty cart fails
	code, _ = env.request(t, http.MethodPost, "/api/orders/", token, fiber.Map{
		"deliveryAddress": "12 MG Road, Bengaluru",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	// Open a gateway order for checkout
	code, body = env.request(t, http.MethodPost, "/api/payments/order", token, fiber.Map{
		"orderId": orderID,
	})
	require.Equal(t, http.StatusOK, code)
	payment := body["payment"].(map[string]interface{})
	assert.Equal(t, "rzp_test_key", payment["razorpayKeyId"])
	assert.Equal(t, 59800.0, payment["amountInPaise"])
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.request(t, http.MethodPost, "/api/payments/verify", "", fiber.Map{
		"razorpayOrderId":   "order_stub0001",
		"razorpayPaymentId": "pay_x",
		"razorpaySignature": "garbage",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid signature", body["message"])
}

func TestAdminDashboardGatedBySubscription(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAdmin(t, "owner@example.com")

	// Without a subscription the dashboard answers 402 with a pay redirect
	code, body := env.request(t, http.MethodGet, "/api/admin/orders", token, nil)
	assert.Equal(t, http.StatusPaymentRequired, code)
	assert.Equal(t, "/admin/pay", body["redirect"])

	// Subscription status itself stays reachable
	code, body = env.request(t, http.MethodGet, "/api/admin/subscription", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["subscriptionActive"])

	// As does the subscription checkout
	code, body = env.request(t, http.MethodPost, "/api/admin/subscription/pay", token, nil)
	require.Equal(t, http.StatusOK, code)
	payment := body["payment"].(map[string]interface{})
	assert.Equal(t, 49900.0, payment["amountInPaise"])
}

func TestOrderStatusUpdateViaAdmin(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.registerUser(t, "buyer@example.com")
	adminToken := env.registerAdmin(t, "owner@example.com")

	// Unlock the dashboard directly through the store
	admin, err := env.store.GetAdminByEmail("owner@example.com")
	require.NoError(t, err)
	expiry := time.Now().AddDate(0, 1, 0)
	admin.Paid = true
	admin.SubscriptionExpiry = &expiry
	require.NoError(t, env.store.UpdateAdmin(admin))

	item, err := env.store.CreateFoodItem(&models.FoodItem{
		Name: "Veg Burger", Category: "Burgers", Price: 149, Available: true,
	})
	require.NoError(t, err)

	code, _ := env.request(t, http.MethodPost, "/api/cart/items", userToken, fiber.Map{
		"foodItemId": item.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusOK, code)
	code, body := env.request(t, http.MethodPost, "/api/orders/", userToken, fiber.Map{
		"deliveryAddress": "12 MG Road, Bengaluru",
	})
	require.Equal(t, http.StatusCreated, code)
	orderID := body["order"].(map[string]interface{})["order_id"].(string)

	code, _ = env.request(t, http.MethodPut, "/api/admin/orders/"+orderID+"/status", adminToken, fiber.Map{
		"status": "CONFIRMED",
	})
	assert.Equal(t, http.StatusOK, code)

	// An illegal jump answers 409
	code, _ = env.request(t, http.MethodPut, "/api/admin/orders/"+orderID+"/status", adminToken, fiber.Map{
		"status": "DELIVERED",
	})
	assert.Equal(t, http.StatusConflict, code)

	// Users cannot reach admin routes
	code, _ = env.request(t, http.MethodGet, "/api/admin/orders", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestMenuCRUDAndSuggest(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t, "owner@example.com")

	admin, err := env.store.GetAdminByEmail("owner@example.com")
	require.NoError(t, err)
	expiry := time.Now().AddDate(0, 1, 0)
	admin.Paid = true
	admin.SubscriptionExpiry = &expiry
	require.NoError(t, env.store.UpdateAdmin(admin))

	code, body := env.request(t, http.MethodPost, "/api/admin/foods", adminToken, fiber.Map{
		"name":     "Paneer Tikka",
		"category": "Starters",
		"price":    220,
	})
	require.Equal(t, http.StatusCreated, code)
	itemID := body["item"].(map[string]interface{})["ID"].(float64)

	// Public menu sees it
	code, body = env.request(t, http.MethodGet, "/api/foods/", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1.0, body["count"])

	// AI suggest serves fallback copy with no API key configured
	code, body = env.request(t, http.MethodPost, "/api/admin/foods/ai-suggest", adminToken, fiber.Map{
		"name": "Paneer Tikka", "category": "Starters",
	})
	require.Equal(t, http.StatusOK, code)
	suggestion := body["suggestion"].(map[string]interface{})
	assert.Contains(t, suggestion["description"], "Paneer Tikka")

	code, _ = env.request(t, http.MethodDelete, fmt.Sprintf("/api/admin/foods/%.0f", itemID), adminToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, body = env.request(t, http.MethodGet, "/api/foods/", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0.0, body["count"])
}

package storage

import (
	"errors"
	"time"

	"github.com/fooddash-app/fooddash-backend/internal/models"
)

// Sentinel errors shared by all implementations
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Store defines the interface for storage operations
type Store interface {
	// User operations
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UserEmailExists(email string) (bool, error)
	UpdateUser(user *models.User) error

	// Admin operations
	CreateAdmin(admin *models.Admin) (*models.Admin, error)
	GetAdminByID(id uint) (*models.Admin, error)
	GetAdminByEmail(email string) (*models.Admin, error)
	AdminEmailExists(email string) (bool, error)
	AdminCodeExists(adminID string) (bool, error)
	UpdateAdmin(admin *models.Admin) error

	// Food item operations
	CreateFoodItem(item *models.FoodItem) (*models.FoodItem, error)
	GetFoodItem(id uint) (*models.FoodItem, error)
	GetAvailableFoodItems() ([]*models.FoodItem, error)
	SearchFoodItems(query string) ([]*models.FoodItem, error)
	GetFoodItemsByCategory(category string) ([]*models.FoodItem, error)
	UpdateFoodItem(item *models.FoodItem) error
	DeleteFoodItem(id uint) error

	// Cart operations
	GetCartByUser(userID uint) (*models.Cart, error)
	CreateCart(userID uint) (*models.Cart, error)
	GetCartItem(id uint) (*models.CartItem, error)
	SaveCartItem(item *models.CartItem) error
	DeleteCartItem(id uint) error
	ClearCart(cartID uint) error

	// Order operations. CreateOrderFromCart persists the order with its
	// items and empties the cart as one atomic unit.
	CreateOrderFromCart(order *models.Order, cartID uint) (*models.Order, error)
	GetOrderByOrderID(orderID string) (*models.Order, error)
	GetOrdersByUser(userID uint) ([]*models.Order, error)
	GetAllOrders() ([]*models.Order, error)
	GetOrdersByStatus(status models.OrderStatus) ([]*models.Order, error)
	UpdateOrder(order *models.Order) error

	// Payment operations (one payment per order)
	GetPaymentByOrder(orderDBID uint) (*models.Payment, error)
	SavePayment(payment *models.Payment) error

	// Gateway order operations
	CreateGatewayOrder(ref *models.GatewayOrder) (*models.GatewayOrder, error)
	GetGatewayOrder(gatewayOrderID string) (*models.GatewayOrder, error)

	// OTP operations
	CreateOTP(otp *models.OTP) (*models.OTP, error)
	GetLatestOTP(identifier string, purpose models.OTPPurpose) (*models.OTP, error)
	SupersedeOTPs(identifier string, purpose models.OTPPurpose) error
	UpdateOTP(otp *models.OTP) error
	DeleteExpiredOTPs(expiredBefore time.Time) (int64, error)
}

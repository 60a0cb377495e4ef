package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fooddash-app/fooddash-backend/internal/models"
)

// DatabaseStore implements Store on top of GORM/PostgreSQL
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// translate maps GORM errors onto the store sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// ===== User operations =====

func (s *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	if err := s.db.Create(user).Error; err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *DatabaseStore) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *DatabaseStore) UserEmailExists(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *DatabaseStore) UpdateUser(user *models.User) error {
	return translate(s.db.Save(user).Error)
}

// ===== Admin operations =====

func (s *DatabaseStore) CreateAdmin(admin *models.Admin) (*models.Admin, error) {
	if err := s.db.Create(admin).Error; err != nil {
		return nil, translate(err)
	}
	return admin, nil
}

func (s *DatabaseStore) GetAdminByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.First(&admin, id).Error; err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (s *DatabaseStore) GetAdminByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (s *DatabaseStore) AdminEmailExists(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *DatabaseStore) AdminCodeExists(adminID string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Admin{}).Where("admin_id = ?", adminID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *DatabaseStore) UpdateAdmin(admin *models.Admin) error {
	return translate(s.db.Save(admin).Error)
}

// ===== Food item operations =====

func (s *DatabaseStore) CreateFoodItem(item *models.FoodItem) (*models.FoodItem, error) {
	if err := s.db.Create(item).Error; err != nil {
		return nil, translate(err)
	}
	return item, nil
}

func (s *DatabaseStore) GetFoodItem(id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *DatabaseStore) GetAvailableFoodItems() ([]*models.FoodItem, error) {
	var items []*models.FoodItem
	if err := s.db.Where("available = ?", true).Order("category, name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *DatabaseStore) SearchFoodItems(query string) ([]*models.FoodItem, error) {
	var items []*models.FoodItem
	pattern := fmt.Sprintf("%%%s%%", query)
	err := s.db.
		Where("available = ?", true).
		Where("name ILIKE ? OR description ILIKE ? OR category ILIKE ?", pattern, pattern, pattern).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *DatabaseStore) GetFoodItemsByCategory(category string) ([]*models.FoodItem, error) {
	var items []*models.FoodItem
	if err := s.db.Where("category = ?", category).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *DatabaseStore) UpdateFoodItem(item *models.FoodItem) error {
	return translate(s.db.Save(item).Error)
}

func (s *DatabaseStore) DeleteFoodItem(id uint) error {
	result := s.db.Delete(&models.FoodItem{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ===== Cart operations =====

func (s *DatabaseStore) GetCartByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (s *DatabaseStore) CreateCart(userID uint) (*models.Cart, error) {
	cart := &models.Cart{UserID: userID}
	if err := s.db.Create(cart).Error; err != nil {
		return nil, translate(err)
	}
	return cart, nil
}

func (s *DatabaseStore) GetCartItem(id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *DatabaseStore) SaveCartItem(item *models.CartItem) error {
	return translate(s.db.Save(item).Error)
}

func (s *DatabaseStore) DeleteCartItem(id uint) error {
	return translate(s.db.Delete(&models.CartItem{}, id).Error)
}

func (s *DatabaseStore) ClearCart(cartID uint) error {
	return translate(s.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error)
}

// ===== Order operations =====

func (s *DatabaseStore) CreateOrderFromCart(order *models.Order, cartID uint) (*models.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return order, nil
}

func (s *DatabaseStore) GetOrderByOrderID(orderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Where("order_id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *DatabaseStore) GetOrdersByUser(userID uint) ([]*models.Order, error) {
	var orders []*models.Order
	err := s.db.Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *DatabaseStore) GetAllOrders() ([]*models.Order, error) {
	var orders []*models.Order
	if err := s.db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *DatabaseStore) GetOrdersByStatus(status models.OrderStatus) ([]*models.Order, error) {
	var orders []*models.Order
	err := s.db.Preload("Items").Where("status = ?", status).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *DatabaseStore) UpdateOrder(order *models.Order) error {
	return translate(s.db.Save(order).Error)
}

// ===== Payment operations =====

func (s *DatabaseStore) GetPaymentByOrder(orderDBID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Where("order_id = ?", orderDBID).First(&payment).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (s *DatabaseStore) SavePayment(payment *models.Payment) error {
	return translate(s.db.Save(payment).Error)
}

// ===== Gateway order operations =====

func (s *DatabaseStore) CreateGatewayOrder(ref *models.GatewayOrder) (*models.GatewayOrder, error) {
	if err := s.db.Create(ref).Error; err != nil {
		return nil, translate(err)
	}
	return ref, nil
}

func (s *DatabaseStore) GetGatewayOrder(gatewayOrderID string) (*models.GatewayOrder, error) {
	var ref models.GatewayOrder
	if err := s.db.Where("gateway_order_id = ?", gatewayOrderID).First(&ref).Error; err != nil {
		return nil, translate(err)
	}
	return &ref, nil
}

// ===== OTP operations =====

func (s *DatabaseStore) CreateOTP(otp *models.OTP) (*models.OTP, error) {
	if err := s.db.Create(otp).Error; err != nil {
		return nil, translate(err)
	}
	return otp, nil
}

func (s *DatabaseStore) GetLatestOTP(identifier string, purpose models.OTPPurpose) (*models.OTP, error) {
	var otp models.OTP
	err := s.db.
		Where("identifier = ? AND purpose = ?", identifier, purpose).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, translate(err)
	}
	return &otp, nil
}

func (s *DatabaseStore) SupersedeOTPs(identifier string, purpose models.OTPPurpose) error {
	return s.db.Model(&models.OTP{}).
		Where("identifier = ? AND purpose = ? AND verified = ? AND superseded = ?",
			identifier, purpose, false, false).
		Update("superseded", true).Error
}

func (s *DatabaseStore) UpdateOTP(otp *models.OTP) error {
	return translate(s.db.Save(otp).Error)
}

func (s *DatabaseStore) DeleteExpiredOTPs(expiredBefore time.Time) (int64, error) {
	result := s.db.Unscoped().Where("expires_at < ?", expiredBefore).Delete(&models.OTP{})
	return result.RowsAffected, result.Error
}

package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fooddash-app/fooddash-backend/internal/models"
)

// MemoryStore holds all data in memory. Used for tests and local development
// (USE_MEMORY_STORE=true); not for production.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[uint]*models.User
	admins        map[uint]*models.Admin
	foodItems     map[uint]*models.FoodItem
	carts         map[uint]*models.Cart // keyed by cart id
	cartItems     map[uint]*models.CartItem
	orders        map[uint]*models.Order
	payments      map[uint]*models.Payment // keyed by payment id
	gatewayOrders map[string]*models.GatewayOrder
	otps          map[uint]*models.OTP

	nextID uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[uint]*models.User),
		admins:        make(map[uint]*models.Admin),
		foodItems:     make(map[uint]*models.FoodItem),
		carts:         make(map[uint]*models.Cart),
		cartItems:     make(map[uint]*models.CartItem),
		orders:        make(map[uint]*models.Order),
		payments:      make(map[uint]*models.Payment),
		gatewayOrders: make(map[string]*models.GatewayOrder),
		otps:          make(map[uint]*models.OTP),
	}
}

// next allocates an id; caller must hold mu
func (m *MemoryStore) next() uint {
	m.nextID++
	return m.nextID
}

// ===== User operations =====

func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, ErrDuplicate
		}
	}
	user.ID = m.next()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) GetUserByID(id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UserEmailExists(email string) (bool, error) {
	_, err := m.GetUserByEmail(email)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *MemoryStore) UpdateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

// ===== Admin operations =====

func (m *MemoryStore) CreateAdmin(admin *models.Admin) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.admins {
		if strings.EqualFold(a.Email, admin.Email) || a.AdminID == admin.AdminID {
			return nil, ErrDuplicate
		}
	}
	admin.ID = m.next()
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = time.Now()
	m.admins[admin.ID] = admin
	return admin, nil
}

func (m *MemoryStore) GetAdminByID(id uint) (*models.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	admin, ok := m.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	return admin, nil
}

func (m *MemoryStore) GetAdminByEmail(email string) (*models.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.admins {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) AdminEmailExists(email string) (bool, error) {
	_, err := m.GetAdminByEmail(email)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *MemoryStore) AdminCodeExists(adminID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.admins {
		if a.AdminID == adminID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) UpdateAdmin(admin *models.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.admins[admin.ID]; !ok {
		return ErrNotFound
	}
	admin.UpdatedAt = time.Now()
	m.admins[admin.ID] = admin
	return nil
}

// ===== Food item operations =====

func (m *MemoryStore) CreateFoodItem(item *models.FoodItem) (*models.FoodItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item.ID = m.next()
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	m.foodItems[item.ID] = item
	return item, nil
}

func (m *MemoryStore) GetFoodItem(id uint) (*models.FoodItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.foodItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	return item, nil
}

func (m *MemoryStore) GetAvailableFoodItems() ([]*models.FoodItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var items []*models.FoodItem
	for _, item := range m.foodItems {
		if item.Available {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *MemoryStore) SearchFoodItems(query string) ([]*models.FoodItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(query)
	var items []*models.FoodItem
	for _, item := range m.foodItems {
		if !item.Available {
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Description), q) ||
			strings.Contains(strings.ToLower(item.Category), q) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *MemoryStore) GetFoodItemsByCategory(category string) ([]*models.FoodItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var items []*models.FoodItem
	for _, item := range m.foodItems {
		if strings.EqualFold(item.Category, category) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *MemoryStore) UpdateFoodItem(item *models.FoodItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.foodItems[item.ID]; !ok {
		return ErrNotFound
	}
	item.UpdatedAt = time.Now()
	m.foodItems[item.ID] = item
	return nil
}

func (m *MemoryStore) DeleteFoodItem(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.foodItems[id]; !ok {
		return ErrNotFound
	}
	delete(m.foodItems, id)
	return nil
}

// ===== Cart operations =====

// loadCartItems populates cart.Items; caller must hold mu
func (m *MemoryStore) loadCartItems(cart *models.Cart) {
	cart.Items = cart.Items[:0]
	var ids []uint
	for id, item := range m.cartItems {
		if item.CartID == cart.ID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		cart.Items = append(cart.Items, *m.cartItems[id])
	}
}

func (m *MemoryStore) GetCartByUser(userID uint) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cart := range m.carts {
		if cart.UserID == userID {
			m.loadCartItems(cart)
			return cart, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateCart(userID uint) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cart := range m.carts {
		if cart.UserID == userID {
			return nil, ErrDuplicate
		}
	}
	cart := &models.Cart{UserID: userID}
	cart.ID = m.next()
	cart.CreatedAt = time.Now()
	cart.UpdatedAt = time.Now()
	m.carts[cart.ID] = cart
	return cart, nil
}

func (m *MemoryStore) GetCartItem(id uint) (*models.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.cartItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	return item, nil
}

func (m *MemoryStore) SaveCartItem(item *models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item.ID == 0 {
		item.ID = m.next()
		item.CreatedAt = time.Now()
	}
	item.UpdatedAt = time.Now()
	m.cartItems[item.ID] = item
	return nil
}

func (m *MemoryStore) DeleteCartItem(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.cartItems, id)
	return nil
}

func (m *MemoryStore) ClearCart(cartID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearCartLocked(cartID)
	return nil
}

func (m *MemoryStore) clearCartLocked(cartID uint) {
	for id, item := range m.cartItems {
		if item.CartID == cartID {
			delete(m.cartItems, id)
		}
	}
}

// ===== Order operations =====

func (m *MemoryStore) CreateOrderFromCart(order *models.Order, cartID uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.orders {
		if existing.OrderID == order.OrderID {
			return nil, ErrDuplicate
		}
	}

	order.ID = m.next()
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].ID = m.next()
		order.Items[i].OrderID = order.ID
		order.Items[i].CreatedAt = time.Now()
	}
	m.orders[order.ID] = order
	m.clearCartLocked(cartID)
	return order, nil
}

func (m *MemoryStore) GetOrderByOrderID(orderID string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, order := range m.orders {
		if order.OrderID == orderID {
			return order, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetOrdersByUser(userID uint) ([]*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var orders []*models.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

func (m *MemoryStore) GetAllOrders() ([]*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var orders []*models.Order
	for _, order := range m.orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

func (m *MemoryStore) GetOrdersByStatus(status models.OrderStatus) ([]*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var orders []*models.Order
	for _, order := range m.orders {
		if order.Status == status {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

func (m *MemoryStore) UpdateOrder(order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orders[order.ID]; !ok {
		return ErrNotFound
	}
	order.UpdatedAt = time.Now()
	m.orders[order.ID] = order
	return nil
}

// ===== Payment operations =====

func (m *MemoryStore) GetPaymentByOrder(orderDBID uint) (*models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, payment := range m.payments {
		if payment.OrderID == orderDBID {
			return payment, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) SavePayment(payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if payment.ID == 0 {
		for _, existing := range m.payments {
			if existing.OrderID == payment.OrderID {
				return ErrDuplicate
			}
		}
		payment.ID = m.next()
		payment.CreatedAt = time.Now()
	}
	payment.UpdatedAt = time.Now()
	m.payments[payment.ID] = payment
	return nil
}

// ===== Gateway order operations =====

func (m *MemoryStore) CreateGatewayOrder(ref *models.GatewayOrder) (*models.GatewayOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.gatewayOrders[ref.GatewayOrderID]; ok {
		return nil, ErrDuplicate
	}
	ref.ID = m.next()
	ref.CreatedAt = time.Now()
	m.gatewayOrders[ref.GatewayOrderID] = ref
	return ref, nil
}

func (m *MemoryStore) GetGatewayOrder(gatewayOrderID string) (*models.GatewayOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ref, ok := m.gatewayOrders[gatewayOrderID]
	if !ok {
		return nil, ErrNotFound
	}
	return ref, nil
}

// ===== OTP operations =====

func (m *MemoryStore) CreateOTP(otp *models.OTP) (*models.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	otp.ID = m.next()
	otp.CreatedAt = time.Now()
	otp.UpdatedAt = time.Now()
	m.otps[otp.ID] = otp
	return otp, nil
}

func (m *MemoryStore) GetLatestOTP(identifier string, purpose models.OTPPurpose) (*models.OTP, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest *models.OTP
	for _, otp := range m.otps {
		if otp.Identifier != identifier || otp.Purpose != purpose {
			continue
		}
		// ids are monotonic, so the highest id is the newest row
		if latest == nil || otp.ID > latest.ID {
			latest = otp
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (m *MemoryStore) SupersedeOTPs(identifier string, purpose models.OTPPurpose) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, otp := range m.otps {
		if otp.Identifier == identifier && otp.Purpose == purpose && !otp.Verified {
			otp.Superseded = true
		}
	}
	return nil
}

func (m *MemoryStore) UpdateOTP(otp *models.OTP) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.otps[otp.ID]; !ok {
		return ErrNotFound
	}
	otp.UpdatedAt = time.Now()
	m.otps[otp.ID] = otp
	return nil
}

func (m *MemoryStore) DeleteExpiredOTPs(expiredBefore time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for id, otp := range m.otps {
		if otp.ExpiresAt.Before(expiredBefore) {
			delete(m.otps, id)
			deleted++
		}
	}
	return deleted, nil
}

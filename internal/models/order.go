package models

import "gorm.io/gorm"

// OrderStatus is the kitchen/delivery workflow state
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusReady          OrderStatus = "READY"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// PaymentStatus tracks money state, written only by the payment reconciler
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

// Order is an immutable snapshot of a cart at checkout time. TotalAmount is
// summed once at creation and never recomputed.
type Order struct {
	gorm.Model
	OrderID string `gorm:"uniqueIndex;not null" json:"order_id"` // opaque, e.g. ORD8F2A91C40D7B
	UserID  uint   `gorm:"index;not null" json:"user_id"`

	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`

	Status        OrderStatus   `gorm:"not null;default:PENDING" json:"status"`
	PaymentStatus PaymentStatus `gorm:"not null;default:PENDING" json:"payment_status"`

	DeliveryAddress      string `gorm:"not null" json:"delivery_address"`
	SpecialInstructions  string `json:"special_instructions"`
	EstimatedTimeMinutes int    `json:"estimated_time_minutes"`

	// Gateway linkage, filled during payment reconciliation
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"-"`
}

// OrderItem is one frozen line of an order. OrderID here is the parent
// order's database id, not its opaque order code.
type OrderItem struct {
	gorm.Model
	OrderID    uint    `gorm:"index;not null" json:"order_id"`
	FoodItemID uint    `gorm:"not null" json:"food_item_id"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unit_price"`
}

// TotalPrice of a single line
func (oi *OrderItem) TotalPrice() float64 {
	return oi.UnitPrice * float64(oi.Quantity)
}

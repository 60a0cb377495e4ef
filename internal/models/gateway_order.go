package models

import "gorm.io/gorm"

// PaymentPurpose tags what a gateway order pays for, set at creation time.
// Post-payment actions dispatch on this tag instead of sniffing id strings.
type PaymentPurpose string

const (
	PurposeFoodOrder         PaymentPurpose = "FOOD_ORDER"
	PurposeAdminSubscription PaymentPurpose = "ADMIN_SUBSCRIPTION"
)

// GatewayOrder records a payment intent created on the gateway and ties it
// back to what it pays for.
type GatewayOrder struct {
	gorm.Model
	GatewayOrderID string         `gorm:"uniqueIndex;not null" json:"gateway_order_id"`
	AppOrderID     string         `gorm:"index" json:"app_order_id"` // Order.OrderID for food orders, opaque for subscriptions
	Purpose        PaymentPurpose `gorm:"not null" json:"purpose"`
	ReferenceID    uint           `json:"reference_id"` // admin db id for subscriptions, 0 otherwise
	AmountPaise    int64          `gorm:"not null" json:"amount_paise"`
}

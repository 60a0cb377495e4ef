package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentMethod identifies the channel money came through
type PaymentMethod string

const (
	PaymentMethodRazorpay PaymentMethod = "RAZORPAY"
	PaymentMethodQRCode   PaymentMethod = "QR_CODE"
)

// Payment is the single money record for an order (upserted by OrderID, so
// duplicate gateway callbacks never produce duplicate rows).
type Payment struct {
	gorm.Model
	TransactionID string        `gorm:"uniqueIndex" json:"transaction_id"` // gateway payment id
	OrderID       uint          `gorm:"uniqueIndex;not null" json:"order_id"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Method        PaymentMethod `gorm:"not null" json:"method"`
	Status        PaymentStatus `gorm:"not null;default:PENDING" json:"status"`
	PaymentDate   *time.Time    `json:"payment_date"`
}

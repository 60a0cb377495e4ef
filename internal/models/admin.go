package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription plan types
const (
	PlanTypeMonthly = "MONTHLY"
	PlanTypeYearly  = "YEARLY"
)

// Admin is a restaurant-side account. Dashboard access is gated on an
// active subscription unless the email is in the privileged set.
type Admin struct {
	gorm.Model
	AdminID       string `gorm:"uniqueIndex;not null" json:"admin_id"` // e.g. ADM3F9A21BC
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber   string `json:"phone_number"`
	Password      string `gorm:"not null" json:"-"`
	FullName      string `json:"full_name"`
	EmailVerified bool   `gorm:"default:false" json:"email_verified"`
	Active        bool   `gorm:"default:true" json:"active"`

	// Subscription state, written only by the payment reconciler
	Paid               bool       `gorm:"default:false" json:"paid"`
	PlanType           string     `json:"plan_type"`
	SubscriptionExpiry *time.Time `json:"subscription_expiry"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// OTPPurpose scopes a code to one flow
type OTPPurpose string

const (
	OTPPurposeEmail              OTPPurpose = "EMAIL"                // user email verification
	OTPPurposeAdminEmail         OTPPurpose = "ADMIN_EMAIL"          // admin email verification
	OTPPurposeResetPassword      OTPPurpose = "RESET_PASSWORD"       // user forgot-password flow
	OTPPurposeAdminResetPassword OTPPurpose = "ADMIN_RESET_PASSWORD" // admin forgot-password flow
)

// OTP is one issued code. Rows are only ever mutated to mark Verified or
// Superseded, and expire by time. Re-issuing marks older unverified rows for
// the same (identifier, purpose) superseded.
type OTP struct {
	gorm.Model
	Identifier string     `gorm:"index;not null"` // email address
	Code       string     `gorm:"not null"`
	Purpose    OTPPurpose `gorm:"not null"`
	ExpiresAt  time.Time  `gorm:"not null;index"`
	Verified   bool       `gorm:"default:false"`
	Superseded bool       `gorm:"default:false"`
}

// Expired reports whether the code's TTL has elapsed
func (o *OTP) Expired(now time.Time) bool {
	return o.ExpiresAt.Before(now)
}

package models

import (
	"gorm.io/gorm"
)

// User is a customer account. Email is the login identifier and must be
// verified via OTP before the row exists.
type User struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber   string `json:"phone_number"` // optional, never verified
	Password      string `gorm:"not null" json:"-"`
	FullName      string `json:"full_name"`
	Address       string `json:"address"`
	EmailVerified bool   `gorm:"default:false" json:"email_verified"`
	Enabled       bool   `gorm:"default:true" json:"enabled"`

	// Owned aggregates, removed with the user
	Cart   *Cart   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Orders []Order `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

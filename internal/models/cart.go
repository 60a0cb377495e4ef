package models

import "gorm.io/gorm"

// Cart is the per-user basket. The unique index on UserID makes concurrent
// first-time creation safe: the second writer fails and re-reads the winner.
type Cart struct {
	gorm.Model
	UserID uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

// CartItem is one line in a cart. UnitPrice is snapshotted from the food
// item at add time and never refreshed.
type CartItem struct {
	gorm.Model
	CartID     uint    `gorm:"index;not null" json:"cart_id"`
	FoodItemID uint    `gorm:"not null" json:"food_item_id"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unit_price"`
}

// TotalPrice is derived, never stored
func (ci *CartItem) TotalPrice() float64 {
	return ci.UnitPrice * float64(ci.Quantity)
}

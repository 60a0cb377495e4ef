package models

import "gorm.io/gorm"

// FoodItem is a menu entry managed by admins
type FoodItem struct {
	gorm.Model
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Category    string  `gorm:"index" json:"category"`
	Price       float64 `gorm:"not null" json:"price"`
	ImageURL    string  `json:"image_url"`
	Available   bool    `gorm:"default:true" json:"available"`
}

package models

import "time"

type WishlistPriority string

const (
	PriorityHigh   WishlistPriority = "High"
	PriorityMedium WishlistPriority = "Medium"
	PriorityLow    WishlistPriority = "Low"
)

type WishlistItem struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	UserID      string           `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID   string           `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	Name        string           `gorm:"not null" json:"name"`
	Price       float64          `gorm:"not null" json:"price"`
	Image       string           `json:"image"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Priority    WishlistPriority `gorm:"type:VARCHAR(10);default:'Medium'" json:"priority"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

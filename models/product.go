package models

import "time"

// Product is a catalog entry managed through the admin dashboard. Cart and
// wishlist rows reference it by ProductRef, the stable business identifier.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductRef  string    `gorm:"uniqueIndex;not null" json:"product_ref"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Category    string    `gorm:"index" json:"category"`
	Price       float64   `gorm:"not null" json:"price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

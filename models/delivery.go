package models

import (
	"time"

	"gorm.io/gorm"
)

type DeliveryType string
type DeliveryService string
type DeliveryStatus string

const (
	DeliveryTypeCOD    DeliveryType = "Cash on Delivery"
	DeliveryTypeOnline DeliveryType = "Online Payment"

	DeliveryServiceUber   DeliveryService = "Uber"
	DeliveryServicePickMe DeliveryService = "PickMe"

	DeliveryStatusPending        DeliveryStatus = "Pending"
	DeliveryStatusPickedUp       DeliveryStatus = "Picked Up"
	DeliveryStatusOutForDelivery DeliveryStatus = "Out for Delivery"
	DeliveryStatusDelivered      DeliveryStatus = "Delivered"
	DeliveryStatusCancelled      DeliveryStatus = "Cancelled"
)

type DeliveryDetail struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          string          `gorm:"index;not null" json:"user_id"`
	CustomerName    string          `gorm:"not null" json:"customer_name"`
	PhoneNo         string          `gorm:"not null" json:"phone_no"`
	Email           string          `gorm:"not null" json:"email"`
	Address         string          `gorm:"not null" json:"address"`
	PostalCode      string          `json:"postal_code"`
	District        string          `json:"district"`
	DeliveryType    DeliveryType    `gorm:"type:VARCHAR(20);not null" json:"delivery_type"`
	DeliveryService DeliveryService `gorm:"type:VARCHAR(20);not null" json:"delivery_service"`
	Amount          float64         `gorm:"not null" json:"amount"`
	DeliveryCharge  float64         `gorm:"not null" json:"delivery_charge"`
	TotalAmount     float64         `json:"total_amount"`
	Status          DeliveryStatus  `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	EstimatedTime   string          `json:"estimated_time"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BeforeSave recomputes the total so the client-sent value is never trusted.
func (d *DeliveryDetail) BeforeSave(tx *gorm.DB) error {
	d.TotalAmount = d.Amount + d.DeliveryCharge
	return nil
}

package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // awaiting payment confirmation
	OrderStatusProcessing OrderStatus = "processing" // awaiting manual settlement (bank slip)
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusExpired    OrderStatus = "expired" // abandoned checkout, swept

	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusCODPending PaymentStatus = "cod_pending" // collect on delivery
)

const (
	PaymentMethodCard     = "card"
	PaymentMethodCOD      = "cod"
	PaymentMethodBankSlip = "bankslip"
)

type Order struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	OrderRef          string        `gorm:"uniqueIndex;not null" json:"order_ref"` // business id, carried in processor metadata
	UserID            string        `gorm:"index;not null" json:"user_id"`
	DeliveryDetailID  uint          `gorm:"index" json:"delivery_detail_id"`
	Items             []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount       float64       `json:"total_amount"`
	Status            OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus     PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod     string        `gorm:"type:VARCHAR(20)" json:"payment_method"`
	PaymentIntentRef  string        `json:"payment_intent_ref"`
	CheckoutSessionID string        `json:"checkout_session_id"`
	IdempotencyKey    *string       `gorm:"uniqueIndex" json:"-"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// OrderItem is a by-value snapshot of a cart line at checkout time.
// Later cart mutations never touch it.
type OrderItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	OrderID  uint    `gorm:"index" json:"order_id"`
	Name     string  `gorm:"not null" json:"name"`
	Price    float64 `gorm:"not null" json:"price"`
	Quantity int     `gorm:"not null;default:1" json:"quantity"`
}

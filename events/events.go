package events

import (
	"encoding/json"
	"time"
)

const (
	TopicOrders = "fruitstore.orders"

	EventOrderPlaced      = "OrderPlaced"
	EventPaymentCompleted = "PaymentCompleted"
	EventOrderExpired     = "OrderExpired"
)

type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	OrderRef   string          `json:"order_ref"`
	Payload    json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderRef      string  `json:"order_ref"`
	UserID        string  `json:"user_id"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method"`
}

type PaymentCompletedPayload struct {
	OrderRef         string `json:"order_ref"`
	UserID           string `json:"user_id"`
	PaymentIntentRef string `json:"payment_intent_ref"`
}

type OrderExpiredPayload struct {
	OrderRef string `json:"order_ref"`
	UserID   string `json:"user_id"`
}

package paymentControllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/202320020818/Fruit-and-sweets-1/cache"
	cartControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/cart"
	orderControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/order"
	"github.com/202320020818/Fruit-and-sweets-1/events"
	"github.com/202320020818/Fruit-and-sweets-1/metrics"
	"github.com/202320020818/Fruit-and-sweets-1/middleware"
	"github.com/202320020818/Fruit-and-sweets-1/models"
)

type ConfirmPaymentInput struct {
	SessionID string `json:"session_id" binding:"required"`
}

// finalizeOrder transitions an order to completed exactly once and clears
// the owner's cart in the same transaction. A repeat call for an
// already-completed order reports already=true and changes nothing, so the
// webhook and the synchronous confirmation can race or repeat safely.
func finalizeOrder(db *gorm.DB, orderRef, paymentIntent string) (models.Order, bool, error) {
	var order models.Order
	var already bool
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_ref = ?", orderRef).First(&order).Error; err != nil {
			return err
		}
		if order.Status == models.OrderStatusCompleted {
			already = true
			return nil
		}
		updates := map[string]interface{}{
			"status":         models.OrderStatusCompleted,
			"payment_status": models.PaymentStatusPaid,
		}
		if paymentIntent != "" {
			updates["payment_intent_ref"] = paymentIntent
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}
		return cartControllers.ClearCartItems(tx, order.UserID)
	})
	return order, already, err
}

func announceCompletion(rdb *redis.Client, producer *events.Producer, c *gin.Context, order models.Order) {
	metrics.OrdersFinalized.Inc()
	cache.SetOrderStatus(c.Request.Context(), rdb, order.OrderRef, string(models.OrderStatusCompleted))
	producer.PublishEvent(events.EventPaymentCompleted, order.OrderRef, events.PaymentCompletedPayload{
		OrderRef:         order.OrderRef,
		UserID:           order.UserID,
		PaymentIntentRef: order.PaymentIntentRef,
	})
	orderControllers.BroadcastOrderUpdate(order)
}

// POST /api/payment/confirm-payment
// Synchronous confirmation: the client lands back from the processor and
// asks us to verify. On anything but a paid session the order stays pending
// and the call is retryable.
func ConfirmPayment(db *gorm.DB, rdb *redis.Client, producer *events.Producer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ConfirmPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "session_id is required", "error": err.Error()})
			return
		}

		session, err := RetrieveProcessorSession(input.SessionID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Failed to verify payment with processor", "error": err.Error()})
			return
		}

		if session.PaymentStatus != "paid" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":        false,
				"message":        "Payment not completed",
				"payment_status": session.PaymentStatus,
			})
			return
		}

		orderRef := session.Metadata["orderId"]
		if orderRef == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Session is missing order metadata"})
			return
		}

		order, already, err := finalizeOrder(db, orderRef, session.PaymentIntent)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			log.Printf("confirm-payment: failed to finalize order %s: %v", orderRef, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating order"})
			return
		}
		if !already {
			announceCompletion(rdb, producer, c, order)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment confirmed", "data": order})
	}
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string            `json:"id"`
			PaymentStatus string            `json:"payment_status"`
			PaymentIntent string            `json:"payment_intent"`
			Metadata      map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// POST /api/payment/stripe-webhook
// Runs behind middleware.StripeWebhookAuth; the signature has already been
// checked against the raw body by the time this executes. Storage failures
// are acknowledged anyway: the processor redelivering forever does not help,
// the log line is what gets reconciled manually.
func StripeWebhookHandler(db *gorm.DB, rdb *redis.Client, producer *events.Producer) gin.HandlerFunc {
	return func(c *gin.Context) {
		payloadVal, ok := c.Get(middleware.WebhookPayloadKey)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "missing webhook payload"})
			return
		}
		payload := payloadVal.([]byte)

		var event webhookEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			metrics.WebhookEvents.WithLabelValues("malformed").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid webhook payload", "error": err.Error()})
			return
		}

		if event.Type != "checkout.session.completed" {
			metrics.WebhookEvents.WithLabelValues("ignored").Inc()
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		orderRef := event.Data.Object.Metadata["orderId"]
		if orderRef == "" {
			log.Printf("webhook: completed session %s has no orderId metadata", event.Data.Object.ID)
			metrics.WebhookEvents.WithLabelValues("unmatched").Inc()
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		order, already, err := finalizeOrder(db, orderRef, event.Data.Object.PaymentIntent)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Permanently unmatchable; acknowledge so the processor
				// stops redelivering.
				log.Printf("webhook: no matching order for orderId %s", orderRef)
				metrics.WebhookEvents.WithLabelValues("unmatched").Inc()
				c.JSON(http.StatusOK, gin.H{"received": true})
				return
			}
			log.Printf("webhook: failed to finalize order %s: %v", orderRef, err)
			metrics.WebhookEvents.WithLabelValues("error").Inc()
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		if already {
			metrics.WebhookEvents.WithLabelValues("duplicate").Inc()
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		metrics.WebhookEvents.WithLabelValues("completed").Inc()
		announceCompletion(rdb, producer, c, order)
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

package orderControllers

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/202320020818/Fruit-and-sweets-1/events"
	"github.com/202320020818/Fruit-and-sweets-1/models"
)

// MarkStalePendingOrders expires card orders whose checkout was abandoned:
// still pending after maxAge with no payment confirmation. Offline orders
// never sit in pending so only card orders qualify. Returns the orders that
// were expired by this pass.
func MarkStalePendingOrders(db *gorm.DB, maxAge time.Duration) ([]models.Order, error) {
	cutoff := time.Now().Add(-maxAge)

	var stale []models.Order
	if err := db.
		Where("status = ? AND payment_method = ? AND created_at < ?",
			models.OrderStatusPending, models.PaymentMethodCard, cutoff).
		Find(&stale).Error; err != nil {
		return nil, err
	}
	if len(stale) == 0 {
		return nil, nil
	}

	refs := make([]string, 0, len(stale))
	for _, o := range stale {
		refs = append(refs, o.OrderRef)
	}
	result := db.Model(&models.Order{}).
		Where("order_ref IN ? AND status = ?", refs, models.OrderStatusPending).
		Update("status", models.OrderStatusExpired)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	// The UPDATE re-checks status, so an order confirmed since the Find was
	// skipped; report only the rows that actually flipped.
	var expired []models.Order
	if err := db.
		Where("order_ref IN ? AND status = ?", refs, models.OrderStatusExpired).
		Find(&expired).Error; err != nil {
		return nil, err
	}
	return expired, nil
}

// StartPendingOrderSweep runs the expiry pass on a fixed interval.
// Started from main as a background goroutine.
func StartPendingOrderSweep(db *gorm.DB, producer *events.Producer, interval, maxAge time.Duration) {
	for {
		time.Sleep(interval)

		expired, err := MarkStalePendingOrders(db, maxAge)
		if err != nil {
			log.Printf("❌ Pending order sweep failed: %v", err)
			continue
		}
		if len(expired) == 0 {
			continue
		}
		log.Printf("🧹 Expired %d abandoned pending order(s)", len(expired))
		for _, o := range expired {
			producer.PublishEvent(events.EventOrderExpired, o.OrderRef, events.OrderExpiredPayload{
				OrderRef: o.OrderRef,
				UserID:   o.UserID,
			})
		}
	}
}

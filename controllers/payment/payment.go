package paymentControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/202320020818/Fruit-and-sweets-1/cache"
	cartControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/cart"
	orderControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/order"
	"github.com/202320020818/Fruit-and-sweets-1/events"
	"github.com/202320020818/Fruit-and-sweets-1/metrics"
	"github.com/202320020818/Fruit-and-sweets-1/models"
)

// Processor minimum chargeable amount, in minor units.
const minimumChargeMinorUnits = 50

// IdempotencyHeader carries the client-generated token that makes a checkout
// attempt resubmittable without creating a duplicate order.
const IdempotencyHeader = "Idempotency-Key"

type CheckoutItemInput struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
}

type CheckoutSessionInput struct {
	Items             []CheckoutItemInput `json:"items" binding:"required,min=1,dive"`
	DeliveryDetailsID uint                `json:"delivery_details_id"`
	PaymentMethod     string              `json:"payment_method"`
}

// POST /api/payment/create-checkout-session
//
// card     -> processor session + pending order, cart kept until confirmation
// cod      -> order completed immediately, payment collected on delivery
// bankslip -> order parked as processing until an admin approves the slip
func CreateCheckoutSession(db *gorm.DB, rdb *redis.Client, producer *events.Producer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CheckoutSessionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No items found", "error": err.Error()})
			return
		}

		method := strings.ToLower(input.PaymentMethod)
		if method == "" {
			method = models.PaymentMethodCard
		}
		if method != models.PaymentMethodCard && method != models.PaymentMethodCOD && method != models.PaymentMethodBankSlip {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment method"})
			return
		}
		metrics.CheckoutAttempts.WithLabelValues(method).Inc()

		totalMinor := sumMinorUnits(input.Items)
		if totalMinor < minimumChargeMinorUnits {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Total amount is below the minimum chargeable amount"})
			return
		}
		totalAmount, _ := decimal.NewFromInt(totalMinor).Div(decimal.NewFromInt(100)).Float64()

		if input.DeliveryDetailsID != 0 {
			var delivery models.DeliveryDetail
			if err := db.First(&delivery, input.DeliveryDetailsID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Delivery details not found"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error validating delivery details", "error": err.Error()})
				return
			}
			if delivery.UserID != userID {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Delivery details belong to another user"})
				return
			}
		}

		orderRef := uuid.NewString()

		// Idempotency: the unique column on orders is the source of truth,
		// Redis is only a fast path.
		idemKey := strings.TrimSpace(c.GetHeader(IdempotencyHeader))
		if idemKey != "" {
			existingRef, fresh, err := cache.ReserveCheckoutKey(c.Request.Context(), rdb, idemKey, orderRef)
			if err != nil {
				log.Printf("checkout: idempotency cache unavailable, falling back to DB: %v", err)
			}
			if !fresh && existingRef != "" {
				if replayCheckoutByRef(c, db, existingRef) {
					return
				}
			}
			if replayCheckoutByKey(c, db, idemKey) {
				return
			}
		}

		orderItems := make([]models.OrderItem, 0, len(input.Items))
		for _, item := range input.Items {
			orderItems = append(orderItems, models.OrderItem{
				Name:     item.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
			})
		}

		order := models.Order{
			OrderRef:         orderRef,
			UserID:           userID,
			DeliveryDetailID: input.DeliveryDetailsID,
			Items:            orderItems,
			TotalAmount:      totalAmount,
			PaymentMethod:    method,
		}
		if idemKey != "" {
			order.IdempotencyKey = &idemKey
		}

		switch method {
		case models.PaymentMethodCOD:
			order.Status = models.OrderStatusCompleted
			order.PaymentStatus = models.PaymentStatusCODPending
		case models.PaymentMethodBankSlip:
			order.Status = models.OrderStatusProcessing
			order.PaymentStatus = models.PaymentStatusPending
		default:
			order.Status = models.OrderStatusPending
			order.PaymentStatus = models.PaymentStatusPending
		}

		if method == models.PaymentMethodCard {
			session, err := CreateProcessorSession(input.Items, orderRef, userID, strconv.FormatUint(uint64(input.DeliveryDetailsID), 10))
			if err != nil {
				cache.ReleaseCheckoutKey(c.Request.Context(), rdb, idemKey)
				c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Failed to create payment session", "error": err.Error()})
				return
			}
			order.CheckoutSessionID = session.ID
			order.PaymentIntentRef = session.PaymentIntent

			if err := db.Create(&order).Error; err != nil {
				// concurrent request with the same key won the unique index;
				// answer with its order and leave its reservation alone
				if idemKey != "" && isDuplicateKey(err) && replayCheckoutByKey(c, db, idemKey) {
					return
				}
				cache.ReleaseCheckoutKey(c.Request.Context(), rdb, idemKey)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating order", "error": err.Error()})
				return
			}

			// Cart is NOT cleared here; that happens on payment confirmation.
			cache.SetOrderStatus(c.Request.Context(), rdb, orderRef, string(order.Status))
			producer.PublishEvent(events.EventOrderPlaced, orderRef, events.OrderPlacedPayload{
				OrderRef:      orderRef,
				UserID:        userID,
				TotalAmount:   totalAmount,
				PaymentMethod: method,
			})

			c.JSON(http.StatusOK, gin.H{"success": true, "id": session.ID, "url": session.URL, "order_ref": orderRef})
			return
		}

		// Offline methods: there is no later confirmation step for the cart,
		// so order create and cart clear commit together.
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			return cartControllers.ClearCartItems(tx, userID)
		})
		if err != nil {
			if idemKey != "" && isDuplicateKey(err) && replayCheckoutByKey(c, db, idemKey) {
				return
			}
			cache.ReleaseCheckoutKey(c.Request.Context(), rdb, idemKey)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating order", "error": err.Error()})
			return
		}

		cache.SetOrderStatus(c.Request.Context(), rdb, orderRef, string(order.Status))
		producer.PublishEvent(events.EventOrderPlaced, orderRef, events.OrderPlacedPayload{
			OrderRef:      orderRef,
			UserID:        userID,
			TotalAmount:   totalAmount,
			PaymentMethod: method,
		})
		orderControllers.BroadcastOrderUpdate(order)

		cfg, cfgErr := getProcessorConfig()
		redirectURL := ""
		if cfgErr == nil {
			redirectURL = cfg.successURL
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Order placed successfully",
			"order_ref": orderRef,
			"redirect":  redirectURL,
		})
	}
}

// replayCheckoutByRef answers a repeated idempotency key from the cached
// order ref. Returns false when the ref no longer resolves, in which case
// the caller falls through to the DB lookup.
func replayCheckoutByRef(c *gin.Context, db *gorm.DB, orderRef string) bool {
	var order models.Order
	if err := db.Preload("Items").Where("order_ref = ?", orderRef).First(&order).Error; err != nil {
		return false
	}
	respondCheckoutReplay(c, order)
	return true
}

// replayCheckoutByKey answers a repeated idempotency key from the order that
// holds it in the database. Returns false when no order carries the key yet.
func replayCheckoutByKey(c *gin.Context, db *gorm.DB, idemKey string) bool {
	var order models.Order
	if err := db.Preload("Items").Where("idempotency_key = ?", idemKey).First(&order).Error; err != nil {
		return false
	}
	respondCheckoutReplay(c, order)
	return true
}

// isDuplicateKey reports whether err is a unique index violation.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

func respondCheckoutReplay(c *gin.Context, order models.Order) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Checkout already processed for this idempotency key",
		"id":        order.CheckoutSessionID,
		"order_ref": order.OrderRef,
		"data":      order,
	})
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	paymentControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/payment"
	"github.com/202320020818/Fruit-and-sweets-1/events"
	"github.com/202320020818/Fruit-and-sweets-1/middleware"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, producer *events.Producer) {
	payment := r.Group("/api/payment")
	{
		payment.POST("/create-checkout-session",
			middleware.ValidateToken,
			paymentControllers.CreateCheckoutSession(db, rdb, producer),
		)
		payment.POST("/confirm-payment",
			middleware.ValidateToken,
			paymentControllers.ConfirmPayment(db, rdb, producer),
		)

		// Processor-initiated; authenticated by signature, not by JWT.
		// The middleware needs the raw body for the signature check.
		payment.POST("/stripe-webhook",
			middleware.StripeWebhookAuth(),
			paymentControllers.StripeWebhookHandler(db, rdb, producer),
		)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/202320020818/Fruit-and-sweets-1/events"
)

// SetupRoutes is the single entry point that wires up the user-facing API
// groups, the payment endpoints and the admin dashboard routes.
func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, producer *events.Producer) {
	// JWT-protected user API
	SetupCartRoutes(r, db)
	SetupWishlistRoutes(r, db)
	SetupDeliveryRoutes(r, db)
	SetupOrderRoutes(r, db)
	SetupUserRoutes(r, db)
	SetupCommentRoutes(r, db)
	SetupBankSlipRoutes(r, db)

	// Public catalog
	SetupInventoryRoutes(r, db)

	// Checkout + processor callbacks
	SetupPaymentRoutes(r, db, rdb, producer)

	// API-key-protected admin dashboard
	SetupAdminRoutes(r, db)
}

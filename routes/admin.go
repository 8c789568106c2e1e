package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	bankSlipControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/bankslip"
	cartControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/cart"
	commentControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/comment"
	deliveryControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/delivery"
	inventoryControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/inventory"
	orderControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/order"
	userControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/user"
	"github.com/202320020818/Fruit-and-sweets-1/middleware"
)

// SetupAdminRoutes registers all "/admin/*" dashboard endpoints. Requires
// API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(db))

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
		}

		// ─────────── Delivery Management ───────────
		deliveryAdmin := adminGroup.Group("/deliveries")
		{
			deliveryAdmin.GET("", deliveryControllers.GetAllDeliveries(db))
			deliveryAdmin.GET("/cancelled", deliveryControllers.GetCancelledDeliveries(db))
		}

		// ─────────── Inventory Management ───────────
		inventoryAdmin := adminGroup.Group("/inventory")
		{
			inventoryAdmin.GET("", inventoryControllers.GetProducts(db))
			inventoryAdmin.POST("", inventoryControllers.CreateProduct(db))
			inventoryAdmin.PUT("/:id", inventoryControllers.UpdateProduct(db))
			inventoryAdmin.DELETE("/:id", inventoryControllers.DeleteProduct(db))
		}

		// ─────────── Bank Slip Review ───────────
		slipAdmin := adminGroup.Group("/bankslips")
		{
			slipAdmin.GET("", bankSlipControllers.GetBankSlips(db))
			slipAdmin.PUT("/:id/status", bankSlipControllers.UpdateBankSlipStatus(db))
		}

		// ─────────── Comment Moderation ───────────
		commentAdmin := adminGroup.Group("/comments")
		{
			commentAdmin.GET("", commentControllers.GetAllComments(db))
			commentAdmin.DELETE("/:id", commentControllers.AdminDeleteComment(db))
		}
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	deliveryControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/delivery"
	"github.com/202320020818/Fruit-and-sweets-1/middleware"
)

func SetupDeliveryRoutes(r *gin.Engine, db *gorm.DB) {
	delivery := r.Group("/api/delivery")
	delivery.Use(middleware.ValidateToken)
	{
		delivery.POST("/saveDeliveryDetails", deliveryControllers.SaveDeliveryDetails(db))
		delivery.GET("/user", deliveryControllers.GetUserDeliveries(db))
		delivery.GET("/:id", deliveryControllers.GetDeliveryByID(db))
		delivery.PUT("/:id", deliveryControllers.UpdateDeliveryDetails(db))
		delivery.PUT("/:id/status", deliveryControllers.UpdateDeliveryStatus(db))
		delivery.DELETE("/:id", deliveryControllers.DeleteDelivery(db))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/order"
	"github.com/202320020818/Fruit-and-sweets-1/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/api/order")
	orders.Use(middleware.ValidateToken)
	{
		orders.GET("/user", orderControllers.GetUserOrdersHandler(db))
		orders.GET("/completed-orders", orderControllers.GetCompletedOrdersHandler(db))
		orders.GET("/:orderRef", orderControllers.GetOrderByRefHandler(db))
	}

	// websocket endpoint for real-time order updates (admin dashboard)
	r.GET("/api/order/ws", orderControllers.OrderWebSocketHandler)
}

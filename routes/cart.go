package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/cart"
	"github.com/202320020818/Fruit-and-sweets-1/middleware"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/api/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.POST("/add-to-cart", cartControllers.AddToCart(db))
		cart.GET("/items", cartControllers.GetCartItems(db))
		cart.PUT("/item/:itemId", cartControllers.UpdateCartItemQuantity(db))
		cart.DELETE("/item/:itemId", cartControllers.DeleteCartItem(db))
		cart.DELETE("/", cartControllers.ClearUserCart(db))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	wishlistControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/wishlist"
	"github.com/202320020818/Fruit-and-sweets-1/middleware"
)

func SetupWishlistRoutes(r *gin.Engine, db *gorm.DB) {
	wishlist := r.Group("/api/wishlist")
	wishlist.Use(middleware.ValidateToken)
	{
		wishlist.POST("/add", wishlistControllers.AddToWishlist(db))
		wishlist.GET("/", wishlistControllers.GetWishlist(db))
		wishlist.DELETE("/:itemId", wishlistControllers.RemoveFromWishlist(db))
		wishlist.POST("/move-to-cart/:itemId", wishlistControllers.MoveToCart(db))
	}
}

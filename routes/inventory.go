package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	inventoryControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/inventory"
)

// SetupInventoryRoutes registers the public catalog reads. Writes live under
// the admin dashboard group.
func SetupInventoryRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/api/products")
	{
		products.GET("", inventoryControllers.GetProducts(db))
		products.GET("/:id", inventoryControllers.GetProductByID(db))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/user"
	"github.com/202320020818/Fruit-and-sweets-1/middleware"
)

func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	user := r.Group("/api/user")
	user.Use(middleware.ValidateToken)
	{
		user.GET("/", userControllers.GetUser(db))
		user.PUT("/", userControllers.UpdateUser(db))
	}
}

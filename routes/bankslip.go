package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	bankSlipControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/bankslip"
	"github.com/202320020818/Fruit-and-sweets-1/middleware"
)

func SetupBankSlipRoutes(r *gin.Engine, db *gorm.DB) {
	bankslip := r.Group("/api/bankslip")
	bankslip.Use(middleware.ValidateToken)
	{
		bankslip.POST("/upload", bankSlipControllers.UploadBankSlip(db))
		bankslip.GET("/:id", bankSlipControllers.GetBankSlipByID(db))
	}
}

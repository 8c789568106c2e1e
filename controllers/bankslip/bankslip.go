package bankSlipControllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/202320020818/Fruit-and-sweets-1/models"
)

type UpdateBankSlipStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func slipUploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return filepath.Join(dir, "bank_slips")
	}
	return filepath.Join("uploads", "bank_slips")
}

func allowedSlipExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".pdf":
		return true
	}
	return false
}

func mapBankSlipStatus(s string) (models.BankSlipStatus, error) {
	switch strings.ToLower(s) {
	case "approved":
		return models.BankSlipStatusApproved, nil
	case "rejected":
		return models.BankSlipStatusRejected, nil
	case "pending":
		return models.BankSlipStatusPending, nil
	default:
		return "", errors.New("invalid bank slip status")
	}
}

// POST /api/bankslip/upload
// Multipart upload of the transfer slip, cross-referenced by business order
// ref. The ref must resolve to one of the caller's own orders. Settlement
// stays a manual admin step.
func UploadBankSlip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		file, fileHeader, err := c.Request.FormFile("slip")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No slip uploaded"})
			return
		}
		defer file.Close()

		orderRef := strings.TrimSpace(c.PostForm("order_ref"))
		if orderRef == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "order_ref is required"})
			return
		}

		ext := filepath.Ext(fileHeader.Filename)
		if !allowedSlipExt(ext) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only jpg, jpeg, png and pdf files are allowed"})
			return
		}

		var order models.Order
		if err := db.Where("order_ref = ? AND user_id = ?", orderRef, userID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error validating order", "error": err.Error()})
			return
		}

		dir := slipUploadDir()
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create upload folder"})
			return
		}

		// Timestamped filename avoids collisions between uploads.
		newFileName := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
		savePath := filepath.Join(dir, newFileName)
		if err := c.SaveUploadedFile(fileHeader, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save file"})
			return
		}

		slip := models.BankSlip{
			OrderRef:   orderRef,
			FilePath:   savePath,
			UploadedAt: time.Now(),
			Status:     models.BankSlipStatusPending,
		}
		if err := db.Create(&slip).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error saving bank slip", "error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Bank slip uploaded successfully", "data": slip})
	}
}

// GET /api/bankslip/:id
// Owner-scoped through the linked order; a slip on someone else's order is
// a 404, not a 403, so slip ids cannot be enumerated.
func GetBankSlipByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid bank slip ID format"})
			return
		}

		var slip models.BankSlip
		if err := db.First(&slip, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Bank slip not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching bank slip", "error": err.Error()})
			return
		}

		var order models.Order
		if err := db.Where("order_ref = ? AND user_id = ?", slip.OrderRef, userID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Bank slip not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": slip})
	}
}

// GET /admin/bankslips?status=Pending
func GetBankSlips(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("uploaded_at DESC")
		if statusParam := c.Query("status"); statusParam != "" {
			status, err := mapBankSlipStatus(statusParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			query = query.Where("status = ?", status)
		}

		var slips []models.BankSlip
		if err := query.Find(&slips).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching bank slips", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": slips})
	}
}

// PUT /admin/bankslips/:id/status
// Approving or rejecting a slip never touches the linked order; settlement
// of the order is a separate, explicit admin action.
func UpdateBankSlipStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid bank slip ID format"})
			return
		}

		var input UpdateBankSlipStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "status is required", "error": err.Error()})
			return
		}
		status, err := mapBankSlipStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		result := db.Model(&models.BankSlip{}).Where("id = ?", id).Update("status", status)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating bank slip", "error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Bank slip not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Bank slip status updated successfully"})
	}
}

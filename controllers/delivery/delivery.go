package deliveryControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/202320020818/Fruit-and-sweets-1/models"
)

type SaveDeliveryInput struct {
	CustomerName    string  `json:"customer_name" binding:"required"`
	PhoneNo         string  `json:"phone_no" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Address         string  `json:"address" binding:"required"`
	PostalCode      string  `json:"postal_code"`
	District        string  `json:"district"`
	DeliveryType    string  `json:"delivery_type" binding:"required"`
	DeliveryService string  `json:"delivery_service" binding:"required"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	DeliveryCharge  float64 `json:"delivery_charge" binding:"required,gte=0"`
}

type UpdateDeliveryStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func mapDeliveryType(t string) (models.DeliveryType, error) {
	switch strings.ToLower(t) {
	case strings.ToLower(string(models.DeliveryTypeCOD)):
		return models.DeliveryTypeCOD, nil
	case strings.ToLower(string(models.DeliveryTypeOnline)):
		return models.DeliveryTypeOnline, nil
	default:
		return "", errors.New("invalid delivery type")
	}
}

func mapDeliveryService(s string) (models.DeliveryService, error) {
	switch strings.ToLower(s) {
	case "uber":
		return models.DeliveryServiceUber, nil
	case "pickme":
		return models.DeliveryServicePickMe, nil
	default:
		return "", errors.New("invalid delivery service")
	}
}

func mapDeliveryStatus(s string) (models.DeliveryStatus, error) {
	switch strings.ToLower(s) {
	case "pending":
		return models.DeliveryStatusPending, nil
	case "picked up":
		return models.DeliveryStatusPickedUp, nil
	case "out for delivery":
		return models.DeliveryStatusOutForDelivery, nil
	case "delivered":
		return models.DeliveryStatusDelivered, nil
	case "cancelled":
		return models.DeliveryStatusCancelled, nil
	default:
		return "", errors.New("invalid delivery status")
	}
}

// parseDeliveryID distinguishes a malformed id (400) from an absent one (404).
func parseDeliveryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid delivery ID format"})
		return 0, false
	}
	return uint(id), true
}

// POST /api/delivery/saveDeliveryDetails
// The total is recomputed in the model's BeforeSave hook; whatever the
// client sent for it is ignored.
func SaveDeliveryDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input SaveDeliveryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required", "error": err.Error()})
			return
		}

		deliveryType, err := mapDeliveryType(input.DeliveryType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		deliveryService, err := mapDeliveryService(input.DeliveryService)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		delivery := models.DeliveryDetail{
			UserID:          userID,
			CustomerName:    input.CustomerName,
			PhoneNo:         input.PhoneNo,
			Email:           input.Email,
			Address:         input.Address,
			PostalCode:      input.PostalCode,
			District:        input.District,
			DeliveryType:    deliveryType,
			DeliveryService: deliveryService,
			Amount:          input.Amount,
			DeliveryCharge:  input.DeliveryCharge,
			Status:          models.DeliveryStatusPending,
		}

		if err := db.Create(&delivery).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating delivery", "error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Delivery created successfully", "data": delivery})
	}
}

// GET /api/delivery/user
func GetUserDeliveries(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var deliveries []models.DeliveryDetail
		if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&deliveries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching deliveries", "error": err.Error()})
			return
		}
		if deliveries == nil {
			deliveries = []models.DeliveryDetail{}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": deliveries})
	}
}

// GET /api/delivery/:id
func GetDeliveryByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseDeliveryID(c)
		if !ok {
			return
		}

		var delivery models.DeliveryDetail
		if err := db.First(&delivery, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Delivery not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching delivery", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": delivery})
	}
}

// PUT /api/delivery/:id
// Full update; the total is re-derived in BeforeSave like on create.
func UpdateDeliveryDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		id, ok := parseDeliveryID(c)
		if !ok {
			return
		}

		var input SaveDeliveryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required", "error": err.Error()})
			return
		}
		deliveryType, err := mapDeliveryType(input.DeliveryType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		deliveryService, err := mapDeliveryService(input.DeliveryService)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var delivery models.DeliveryDetail
		if err := db.Where("id = ? AND user_id = ?", id, userID).First(&delivery).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Delivery not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching delivery", "error": err.Error()})
			return
		}

		delivery.CustomerName = input.CustomerName
		delivery.PhoneNo = input.PhoneNo
		delivery.Email = input.Email
		delivery.Address = input.Address
		delivery.PostalCode = input.PostalCode
		delivery.District = input.District
		delivery.DeliveryType = deliveryType
		delivery.DeliveryService = deliveryService
		delivery.Amount = input.Amount
		delivery.DeliveryCharge = input.DeliveryCharge

		if err := db.Save(&delivery).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating delivery", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Delivery updated successfully", "data": delivery})
	}
}

// PUT /api/delivery/:id/status
func UpdateDeliveryStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseDeliveryID(c)
		if !ok {
			return
		}

		var input UpdateDeliveryStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "status is required", "error": err.Error()})
			return
		}
		status, err := mapDeliveryStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		result := db.Model(&models.DeliveryDetail{}).Where("id = ?", id).Update("status", status)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating delivery", "error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Delivery not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Delivery status updated successfully"})
	}
}

// DELETE /api/delivery/:id
func DeleteDelivery(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseDeliveryID(c)
		if !ok {
			return
		}

		result := db.Delete(&models.DeliveryDetail{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting delivery", "error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Delivery not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Delivery deleted successfully"})
	}
}

// GET /admin/deliveries
func GetAllDeliveries(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var deliveries []models.DeliveryDetail
		if err := db.Order("created_at DESC").Find(&deliveries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching deliveries", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": deliveries})
	}
}

// GET /admin/deliveries/cancelled
func GetCancelledDeliveries(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var deliveries []models.DeliveryDetail
		if err := db.Where("status = ?", models.DeliveryStatusCancelled).Find(&deliveries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching cancelled deliveries", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": deliveries})
	}
}

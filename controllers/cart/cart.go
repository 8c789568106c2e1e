package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/202320020818/Fruit-and-sweets-1/models"
)

type AddToCartInput struct {
	ItemName    string  `json:"item_name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// POST /api/cart/add-to-cart
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input", "error": err.Error()})
			return
		}
		if input.Quantity < 1 {
			input.Quantity = 1
		}

		item := models.CartItem{
			UserID:      userID,
			ItemID:      uuid.NewString(),
			Name:        input.ItemName,
			Price:       input.Price,
			Image:       input.Image,
			Description: input.Description,
			Category:    input.Category,
			Quantity:    input.Quantity,
			CreatedBy:   userID,
			UpdatedBy:   userID,
		}

		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error adding item to cart", "error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Item added to cart successfully", "data": item})
	}
}

// GET /api/cart/items
// An empty cart is a valid result, not an error.
func GetCartItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var items []models.CartItem
		if err := db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching cart items", "error": err.Error()})
			return
		}
		if items == nil {
			items = []models.CartItem{}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart items retrieved successfully", "data": items})
	}
}

// PUT /api/cart/item/:itemId
// Owner-scoped: a user can only change quantities on their own lines.
func UpdateCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		itemID := c.Param("itemId")

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity must be at least 1", "error": err.Error()})
			return
		}

		result := db.Model(&models.CartItem{}).
			Where("user_id = ? AND item_id = ?", userID, itemID).
			Updates(map[string]interface{}{"quantity": input.Quantity, "updated_by": userID})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating item quantity", "error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found in cart"})
			return
		}

		var item models.CartItem
		if err := db.Where("user_id = ? AND item_id = ?", userID, itemID).First(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching updated item", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item quantity updated successfully", "data": item})
	}
}

// DELETE /api/cart/item/:itemId
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		itemID := c.Param("itemId")

		result := db.Where("user_id = ? AND item_id = ?", userID, itemID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting item from cart", "error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found in cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item deleted from cart successfully"})
	}
}

// DELETE /api/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		if err := ClearCartItems(db, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error clearing cart", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
	}
}

// ClearCartItems removes every line for a user. Idempotent; clearing an
// already-empty cart is a no-op. Also runs after payment confirmation.
func ClearCartItems(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "user_id is required"})
			return
		}

		var items []models.CartItem
		if err := db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching cart items", "error": err.Error()})
			return
		}
		if items == nil {
			items = []models.CartItem{}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
	}
}

package wishlistControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/202320020818/Fruit-and-sweets-1/models"
)

type AddToWishlistInput struct {
	ProductID   string  `json:"product_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Priority    string  `json:"priority"`
}

func mapPriority(p string) (models.WishlistPriority, error) {
	switch strings.ToLower(p) {
	case "", "medium":
		return models.PriorityMedium, nil
	case "high":
		return models.PriorityHigh, nil
	case "low":
		return models.PriorityLow, nil
	default:
		return "", errors.New("invalid priority")
	}
}

// POST /api/wishlist/add
// One wishlist entry per (user, product); a duplicate add is a conflict.
func AddToWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input AddToWishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields", "error": err.Error()})
			return
		}

		priority, err := mapPriority(input.Priority)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid priority, must be High, Medium or Low"})
			return
		}

		var existing models.WishlistItem
		err = db.Where("user_id = ? AND product_id = ?", userID, input.ProductID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Item already in wishlist"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error adding to wishlist", "error": err.Error()})
			return
		}

		item := models.WishlistItem{
			UserID:      userID,
			ProductID:   input.ProductID,
			Name:        input.Name,
			Price:       input.Price,
			Image:       input.Image,
			Description: input.Description,
			Category:    input.Category,
			Priority:    priority,
		}
		if err := db.Create(&item).Error; err != nil {
			// unique index race: a concurrent add wins, report conflict
			if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Item already in wishlist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error adding to wishlist", "error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Item added to wishlist successfully", "data": item})
	}
}

// GET /api/wishlist
// High before Medium before Low, newest first within a priority.
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var items []models.WishlistItem
		if err := db.Where("user_id = ?", userID).
			Order("CASE priority WHEN 'High' THEN 0 WHEN 'Medium' THEN 1 ELSE 2 END, created_at DESC").
			Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching wishlist items", "error": err.Error()})
			return
		}
		if items == nil {
			items = []models.WishlistItem{}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Wishlist items retrieved successfully", "data": items})
	}
}

// DELETE /api/wishlist/:itemId
func RemoveFromWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid wishlist item ID format"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.WishlistItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error removing from wishlist", "error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found in wishlist"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed from wishlist successfully"})
	}
}

// POST /api/wishlist/move-to-cart/:itemId
// Creates the cart line first, then deletes the wishlist entry. If the
// delete fails the entry stays behind; an extra wishlist row is acceptable,
// a lost cart item is not.
func MoveToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid wishlist item ID format"})
			return
		}

		var wishlistItem models.WishlistItem
		if err := db.Where("id = ? AND user_id = ?", itemID, userID).First(&wishlistItem).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found in wishlist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error moving item to cart", "error": err.Error()})
			return
		}

		cartItem := models.CartItem{
			UserID:      userID,
			ItemID:      uuid.NewString(),
			Name:        wishlistItem.Name,
			Price:       wishlistItem.Price,
			Image:       wishlistItem.Image,
			Description: wishlistItem.Description,
			Category:    wishlistItem.Category,
			Quantity:    1,
			CreatedBy:   userID,
			UpdatedBy:   userID,
		}
		if err := db.Create(&cartItem).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error moving item to cart", "error": err.Error()})
			return
		}

		if err := db.Delete(&wishlistItem).Error; err != nil {
			log.Printf("move-to-cart: cart item %s created but wishlist entry %d not removed: %v", cartItem.ItemID, wishlistItem.ID, err)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item moved to cart successfully", "data": cartItem})
	}
}

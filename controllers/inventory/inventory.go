package inventoryControllers

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

func productUploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return filepath.Join(dir, "products")
	}
	return filepath.Join("uploads", "products")
}

func allowedImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

func isDuplicateRef(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// saveProductImage stores the uploaded file under the product upload dir and
// returns the public URL served by the /uploads static route.
func saveProductImage(c *gin.Context) (string, int, string) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", http.StatusBadRequest, "Product image is required"
	}
	ext := filepath.Ext(file.Filename)
	if !allowedImageExt(ext) {
		return "", http.StatusBadRequest, "Only jpg, jpeg, png and webp images are allowed"
	}

	dir := productUploadDir()
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", http.StatusInternalServerError, "Failed to create upload folder"
	}
	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), strings.ToLower(ext))
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", http.StatusInternalServerError, "Failed to save image"
	}
	return "/uploads/products/" + filename, 0, ""
}

// POST /admin/inventory
// Multipart create. All fields are required, image included.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productRef := strings.TrimSpace(c.PostForm("product_ref"))
		name := strings.TrimSpace(c.PostForm("name"))
		description := c.PostForm("description")
		category := c.PostForm("category")
		priceStr := c.PostForm("price")
		quantityStr := c.PostForm("quantity")

		if productRef == "" || name == "" || description == "" || category == "" || priceStr == "" || quantityStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "product_ref, name, description, category, price and quantity are required"})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "price must be a number greater than zero"})
			return
		}
		quantity, err := strconv.Atoi(quantityStr)
		if err != nil || quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "quantity must be a non-negative number"})
			return
		}

		imageURL, status, msg := saveProductImage(c)
		if msg != "" {
			c.JSON(status, gin.H{"success": false, "message": msg})
			return
		}

		product := models.Product{
			ProductRef:  productRef,
			Name:        name,
			Description: description,
			Category:    category,
			Price:       price,
			Quantity:    quantity,
			Image:       imageURL,
		}
		if err := db.Create(&product).Error; err != nil {
			if isDuplicateRef(err) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "A product with this product_ref already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating product", "error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product created successfully", "data": product})
	}
}

// GET /api/products
// Optional filters: category, search (name/description), min_price, max_price.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{})

		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if search := c.Query("search"); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		}
		if minStr := c.Query("min_price"); minStr != "" {
			min, err := strconv.ParseFloat(minStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid min_price"})
				return
			}
			query = query.Where("price >= ?", min)
		}
		if maxStr := c.Query("max_price"); maxStr != "" {
			max, err := strconv.ParseFloat(maxStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid max_price"})
				return
			}
			query = query.Where("price <= ?", max)
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching products", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
	}
}

// GET /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID format"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching product", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}

// PUT /admin/inventory/:id
// Multipart update. Every field is optional; a new image replaces the old
// URL, otherwise the stored one is kept.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID format"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching product", "error": err.Error()})
			return
		}

		if v := strings.TrimSpace(c.PostForm("name")); v != "" {
			product.Name = v
		}
		if v := c.PostForm("description"); v != "" {
			product.Description = v
		}
		if v := c.PostForm("category"); v != "" {
			product.Category = v
		}
		if v := c.PostForm("price"); v != "" {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil || price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "price must be a number greater than zero"})
				return
			}
			product.Price = price
		}
		if v := c.PostForm("quantity"); v != "" {
			quantity, err := strconv.Atoi(v)
			if err != nil || quantity < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "quantity must be a non-negative number"})
				return
			}
			product.Quantity = quantity
		}

		if _, err := c.FormFile("image"); err == nil {
			imageURL, status, msg := saveProductImage(c)
			if msg != "" {
				c.JSON(status, gin.H{"success": false, "message": msg})
				return
			}
			product.Image = imageURL
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating product", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated successfully", "data": product})
	}
}

// DELETE /admin/inventory/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID format"})
			return
		}

		result := db.Delete(&models.Product{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting product", "error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
	}
}

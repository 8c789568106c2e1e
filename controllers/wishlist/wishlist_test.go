package wishlistControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/202320020818/Fruit-and-sweets-1/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.WishlistItem{}, &models.CartItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/wishlist")
	api.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	api.POST("/add", AddToWishlist(db))
	api.GET("", GetWishlist(db))
	api.DELETE("/:itemId", RemoveFromWishlist(db))
	api.POST("/move-to-cart/:itemId", MoveToCart(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddToWishlistDuplicateIsConflict(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, "user-1")

	body := gin.H{"product_id": "prod-1", "name": "Baklava", "price": 12.0}
	w := doJSON(t, r, "POST", "/api/wishlist/add", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("first add: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, "POST", "/api/wishlist/add", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate add: expected 409, got %d", w.Code)
	}

	var count int64
	db.Model(&models.WishlistItem{}).Where("user_id = ? AND product_id = ?", "user-1", "prod-1").Count(&count)
	if count != 1 {
		t.Errorf("expected a single wishlist entry, got %d", count)
	}
}

func TestAddToWishlistSameProductDifferentUsers(t *testing.T) {
	db := setupTestDB(t)
	body := gin.H{"product_id": "prod-1", "name": "Baklava", "price": 12.0}

	for _, user := range []string{"user-1", "user-2"} {
		w := doJSON(t, setupRouter(db, user), "POST", "/api/wishlist/add", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("add for %s: expected 201, got %d", user, w.Code)
		}
	}
}

func TestGetWishlistPriorityOrdering(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	seed := []models.WishlistItem{
		{UserID: "user-1", ProductID: "p-low", Name: "Low", Price: 1, Priority: models.PriorityLow, CreatedAt: now.Add(-1 * time.Minute)},
		{UserID: "user-1", ProductID: "p-high-old", Name: "HighOld", Price: 1, Priority: models.PriorityHigh, CreatedAt: now.Add(-2 * time.Hour)},
		{UserID: "user-1", ProductID: "p-med", Name: "Med", Price: 1, Priority: models.PriorityMedium, CreatedAt: now.Add(-5 * time.Minute)},
		{UserID: "user-1", ProductID: "p-high-new", Name: "HighNew", Price: 1, Priority: models.PriorityHigh, CreatedAt: now},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	w := doJSON(t, setupRouter(db, "user-1"), "GET", "/api/wishlist", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data []models.WishlistItem `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	got := make([]string, 0, len(resp.Data))
	for _, item := range resp.Data {
		got = append(got, item.ProductID)
	}
	want := []string{"p-high-new", "p-high-old", "p-med", "p-low"}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestRemoveFromWishlistInvalidID(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, "user-1")

	w := doJSON(t, r, "DELETE", "/api/wishlist/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}

	w = doJSON(t, r, "DELETE", "/api/wishlist/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing id, got %d", w.Code)
	}
}

func TestMoveToCart(t *testing.T) {
	db := setupTestDB(t)
	item := models.WishlistItem{UserID: "user-1", ProductID: "prod-1", Name: "Baklava", Price: 12.0, Priority: models.PriorityMedium}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	r := setupRouter(db, "user-1")

	w := doJSON(t, r, "POST", fmt.Sprintf("/api/wishlist/move-to-cart/%d", item.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var cartItem models.CartItem
	if err := db.Where("user_id = ? AND name = ?", "user-1", "Baklava").First(&cartItem).Error; err != nil {
		t.Fatalf("cart line not created: %v", err)
	}
	if cartItem.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", cartItem.Quantity)
	}

	var count int64
	db.Model(&models.WishlistItem{}).Where("id = ?", item.ID).Count(&count)
	if count != 0 {
		t.Error("wishlist entry should be removed after the move")
	}
}

func TestMoveToCartForeignItem(t *testing.T) {
	db := setupTestDB(t)
	item := models.WishlistItem{UserID: "user-1", ProductID: "prod-1", Name: "Baklava", Price: 12.0, Priority: models.PriorityMedium}
	db.Create(&item)

	w := doJSON(t, setupRouter(db, "user-2"), "POST", fmt.Sprintf("/api/wishlist/move-to-cart/%d", item.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign wishlist item, got %d", w.Code)
	}
}

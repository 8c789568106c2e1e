package deliveryControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

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
	if err := db.AutoMigrate(&models.DeliveryDetail{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/delivery")
	api.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	api.POST("/saveDeliveryDetails", SaveDeliveryDetails(db))
	api.GET("/user", GetUserDeliveries(db))
	api.GET("/:id", GetDeliveryByID(db))
	api.PUT("/:id", UpdateDeliveryDetails(db))
	api.PUT("/:id/status", UpdateDeliveryStatus(db))
	api.DELETE("/:id", DeleteDelivery(db))
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

func TestSaveDeliveryDerivesTotal(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, "user-1")

	w := doJSON(t, r, "POST", "/api/delivery/saveDeliveryDetails", gin.H{
		"customer_name":    "Jane Doe",
		"phone_no":         "0771234567",
		"email":            "jane@example.com",
		"address":          "12 Temple Road",
		"district":         "Colombo",
		"delivery_type":    "Cash on Delivery",
		"delivery_service": "Uber",
		"amount":           100.0,
		"delivery_charge":  20.0,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var delivery models.DeliveryDetail
	if err := db.Where("user_id = ?", "user-1").First(&delivery).Error; err != nil {
		t.Fatalf("delivery not stored: %v", err)
	}
	if delivery.TotalAmount != 120.0 {
		t.Errorf("expected derived total 120, got %v", delivery.TotalAmount)
	}
	if delivery.Status != models.DeliveryStatusPending {
		t.Errorf("expected initial status Pending, got %q", delivery.Status)
	}
}

func TestSaveDeliveryIgnoresClientTotal(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, "user-1")

	// A client-sent total_amount has no input field, the hook wins.
	w := doJSON(t, r, "POST", "/api/delivery/saveDeliveryDetails", gin.H{
		"customer_name":    "Jane Doe",
		"phone_no":         "0771234567",
		"email":            "jane@example.com",
		"address":          "12 Temple Road",
		"delivery_type":    "Online Payment",
		"delivery_service": "PickMe",
		"amount":           50.0,
		"delivery_charge":  5.0,
		"total_amount":     1.0,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var delivery models.DeliveryDetail
	db.Where("user_id = ?", "user-1").First(&delivery)
	if delivery.TotalAmount != 55.0 {
		t.Errorf("expected recomputed total 55, got %v", delivery.TotalAmount)
	}
}

func TestSaveDeliveryInvalidType(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, "user-1")

	w := doJSON(t, r, "POST", "/api/delivery/saveDeliveryDetails", gin.H{
		"customer_name":    "Jane Doe",
		"phone_no":         "0771234567",
		"email":            "jane@example.com",
		"address":          "12 Temple Road",
		"delivery_type":    "Carrier Pigeon",
		"delivery_service": "Uber",
		"amount":           100.0,
		"delivery_charge":  20.0,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetDeliveryByIDMalformedVsMissing(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, "user-1")

	w := doJSON(t, r, "GET", "/api/delivery/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed id: expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, "GET", "/api/delivery/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing id: expected 404, got %d", w.Code)
	}
}

func TestUpdateDeliveryStatus(t *testing.T) {
	db := setupTestDB(t)
	delivery := models.DeliveryDetail{
		UserID: "user-1", CustomerName: "Jane", PhoneNo: "077", Email: "j@e.com",
		Address: "addr", DeliveryType: models.DeliveryTypeCOD,
		DeliveryService: models.DeliveryServiceUber, Amount: 10, DeliveryCharge: 2,
		Status: models.DeliveryStatusPending,
	}
	if err := db.Create(&delivery).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	r := setupRouter(db, "user-1")

	w := doJSON(t, r, "PUT", fmt.Sprintf("/api/delivery/%d/status", delivery.ID), gin.H{"status": "Out for Delivery"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.DeliveryDetail
	db.First(&updated, delivery.ID)
	if updated.Status != models.DeliveryStatusOutForDelivery {
		t.Errorf("expected status %q, got %q", models.DeliveryStatusOutForDelivery, updated.Status)
	}

	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/delivery/%d/status", delivery.ID), gin.H{"status": "teleported"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: expected 400, got %d", w.Code)
	}
}

func TestUpdateDeliveryRederivesTotal(t *testing.T) {
	db := setupTestDB(t)
	delivery := models.DeliveryDetail{
		UserID: "user-1", CustomerName: "Jane", PhoneNo: "077", Email: "j@e.com",
		Address: "addr", DeliveryType: models.DeliveryTypeCOD,
		DeliveryService: models.DeliveryServiceUber, Amount: 100, DeliveryCharge: 20,
		Status: models.DeliveryStatusPending,
	}
	if err := db.Create(&delivery).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	r := setupRouter(db, "user-1")

	w := doJSON(t, r, "PUT", fmt.Sprintf("/api/delivery/%d", delivery.ID), gin.H{
		"customer_name":    "Jane Doe",
		"phone_no":         "0771234567",
		"email":            "jane@example.com",
		"address":          "14 Temple Road",
		"delivery_type":    "Online Payment",
		"delivery_service": "PickMe",
		"amount":           200.0,
		"delivery_charge":  30.0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.DeliveryDetail
	db.First(&updated, delivery.ID)
	if updated.TotalAmount != 230.0 {
		t.Errorf("expected re-derived total 230, got %v", updated.TotalAmount)
	}
	if updated.DeliveryService != models.DeliveryServicePickMe {
		t.Errorf("service not updated, got %q", updated.DeliveryService)
	}

	// Another user cannot update it.
	w = doJSON(t, setupRouter(db, "user-2"), "PUT", fmt.Sprintf("/api/delivery/%d", delivery.ID), gin.H{
		"customer_name":    "Mallory",
		"phone_no":         "000",
		"email":            "m@example.com",
		"address":          "elsewhere",
		"delivery_type":    "Online Payment",
		"delivery_service": "PickMe",
		"amount":           1.0,
		"delivery_charge":  1.0,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign update: expected 404, got %d", w.Code)
	}
}

func TestDeleteDelivery(t *testing.T) {
	db := setupTestDB(t)
	delivery := models.DeliveryDetail{
		UserID: "user-1", CustomerName: "Jane", PhoneNo: "077", Email: "j@e.com",
		Address: "addr", DeliveryType: models.DeliveryTypeOnline,
		DeliveryService: models.DeliveryServicePickMe, Amount: 10, DeliveryCharge: 2,
		Status: models.DeliveryStatusPending,
	}
	db.Create(&delivery)
	r := setupRouter(db, "user-1")

	w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/delivery/%d", delivery.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/delivery/%d", delivery.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", w.Code)
	}
}

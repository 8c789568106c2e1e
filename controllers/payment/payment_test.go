package paymentControllers

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
	if err := db.AutoMigrate(&models.CartItem{}, &models.DeliveryDetail{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupCheckoutRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/payment")
	api.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	api.POST("/create-checkout-session", CreateCheckoutSession(db, nil, nil))
	api.POST("/confirm-payment", ConfirmPayment(db, nil, nil))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// stubProcessor fakes the hosted checkout API: session creation and
// retrieval, with the retrieval outcome controlled by the test.
func stubProcessor(t *testing.T, retrieved *CheckoutSession) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(CheckoutSession{
				ID:            "cs_test_1",
				URL:           "https://checkout.example/cs_test_1",
				PaymentStatus: "unpaid",
			})
			return
		}
		if retrieved == nil {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":{"message":"no such session"}}`)
			return
		}
		json.NewEncoder(w).Encode(retrieved)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("STRIPE_API_URL", srv.URL)
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	return srv
}

func seedCart(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	items := []models.CartItem{
		{UserID: userID, ItemID: "line-1", Name: "Mango", Price: 3.5, Quantity: 2},
		{UserID: userID, ItemID: "line-2", Name: "Baklava", Price: 12.0, Quantity: 1},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("seed cart failed: %v", err)
		}
	}
}

func checkoutBody(method string) gin.H {
	return gin.H{
		"items": []gin.H{
			{"name": "Mango", "price": 3.5, "quantity": 2},
			{"name": "Baklava", "price": 12.0, "quantity": 1},
		},
		"payment_method": method,
	}
}

func TestCashOrderCompletesAndClearsCart(t *testing.T) {
	db := setupTestDB(t)
	seedCart(t, db, "user-1")
	r := setupCheckoutRouter(db, "user-1")

	w := doJSON(t, r, "POST", "/api/payment/create-checkout-session", checkoutBody("cod"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	if err := db.Preload("Items").Where("user_id = ?", "user-1").First(&order).Error; err != nil {
		t.Fatalf("order not created: %v", err)
	}
	if order.Status != models.OrderStatusCompleted {
		t.Errorf("expected completed order, got %q", order.Status)
	}
	if order.PaymentStatus != models.PaymentStatusCODPending {
		t.Errorf("expected cod_pending payment status, got %q", order.PaymentStatus)
	}
	if order.TotalAmount != 19.0 {
		t.Errorf("expected total 19.0, got %v", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Errorf("expected 2 order items, got %d", len(order.Items))
	}

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&cartCount)
	if cartCount != 0 {
		t.Errorf("cart should be cleared for an offline order, %d lines left", cartCount)
	}
}

func TestCardCheckoutKeepsCartUntilConfirmation(t *testing.T) {
	db := setupTestDB(t)
	stubProcessor(t, nil)
	seedCart(t, db, "user-1")
	r := setupCheckoutRouter(db, "user-1")

	w := doJSON(t, r, "POST", "/api/payment/create-checkout-session", checkoutBody("card"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID       string `json:"id"`
		URL      string `json:"url"`
		OrderRef string `json:"order_ref"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.ID != "cs_test_1" || resp.URL == "" || resp.OrderRef == "" {
		t.Fatalf("unexpected session response: %+v", resp)
	}

	var order models.Order
	if err := db.Where("order_ref = ?", resp.OrderRef).First(&order).Error; err != nil {
		t.Fatalf("pending order not created: %v", err)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("expected pending order, got %q", order.Status)
	}
	if order.CheckoutSessionID != "cs_test_1" {
		t.Errorf("session id not stored on order, got %q", order.CheckoutSessionID)
	}

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&cartCount)
	if cartCount != 2 {
		t.Errorf("cart must survive until payment confirmation, %d lines left", cartCount)
	}
}

func TestCheckoutBelowMinimumCharge(t *testing.T) {
	db := setupTestDB(t)
	r := setupCheckoutRouter(db, "user-1")

	w := doJSON(t, r, "POST", "/api/payment/create-checkout-session", gin.H{
		"items":          []gin.H{{"name": "Gum", "price": 0.10, "quantity": 1}},
		"payment_method": "cod",
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 below minimum charge, got %d", w.Code)
	}
}

func TestCheckoutRejectsForeignDeliveryDetails(t *testing.T) {
	db := setupTestDB(t)
	delivery := models.DeliveryDetail{
		UserID: "user-2", CustomerName: "Other", PhoneNo: "077", Email: "o@e.com",
		Address: "addr", DeliveryType: models.DeliveryTypeCOD,
		DeliveryService: models.DeliveryServiceUber, Amount: 10, DeliveryCharge: 2,
		Status: models.DeliveryStatusPending,
	}
	if err := db.Create(&delivery).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	r := setupCheckoutRouter(db, "user-1")

	body := checkoutBody("cod")
	body["delivery_details_id"] = delivery.ID
	w := doJSON(t, r, "POST", "/api/payment/create-checkout-session", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for foreign delivery details, got %d", w.Code)
	}
}

func TestCheckoutIdempotencyKeyReplays(t *testing.T) {
	db := setupTestDB(t)
	seedCart(t, db, "user-1")
	r := setupCheckoutRouter(db, "user-1")
	headers := map[string]string{IdempotencyHeader: "retry-token-1"}

	w := doJSON(t, r, "POST", "/api/payment/create-checkout-session", checkoutBody("cod"), headers)
	if w.Code != http.StatusOK {
		t.Fatalf("first attempt: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var first struct {
		OrderRef string `json:"order_ref"`
	}
	json.Unmarshal(w.Body.Bytes(), &first)

	// Resubmitting the same key must not create a second order.
	w = doJSON(t, r, "POST", "/api/payment/create-checkout-session", checkoutBody("cod"), headers)
	if w.Code != http.StatusOK {
		t.Fatalf("retry: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var second struct {
		OrderRef string `json:"order_ref"`
	}
	json.Unmarshal(w.Body.Bytes(), &second)
	if second.OrderRef != first.OrderRef {
		t.Errorf("replay returned a different order: %q vs %q", second.OrderRef, first.OrderRef)
	}

	var count int64
	db.Model(&models.Order{}).Where("user_id = ?", "user-1").Count(&count)
	if count != 1 {
		t.Errorf("expected a single order, got %d", count)
	}
}

func TestCheckoutIdempotencyKeyConcurrentDuplicate(t *testing.T) {
	db := setupTestDB(t)
	seedCart(t, db, "user-1")
	r := setupCheckoutRouter(db, "user-1")

	// Reproduce two requests racing on one key: both miss the DB lookup, so
	// a competing order claims the key right before this request's insert.
	idemKey := "race-token-1"
	var injected bool
	err := db.Callback().Create().Before("gorm:create").Register("inject_competing_checkout", func(tx *gorm.DB) {
		if injected {
			return
		}
		if _, ok := tx.Statement.Dest.(*models.Order); !ok {
			return
		}
		injected = true
		winner := models.Order{
			OrderRef:       "winner-ref",
			UserID:         "user-1",
			Items:          []models.OrderItem{{Name: "Mango", Price: 3.5, Quantity: 2}},
			TotalAmount:    19.0,
			Status:         models.OrderStatusCompleted,
			PaymentStatus:  models.PaymentStatusCODPending,
			PaymentMethod:  models.PaymentMethodCOD,
			IdempotencyKey: &idemKey,
		}
		if err := db.Session(&gorm.Session{NewDB: true}).Create(&winner).Error; err != nil {
			t.Errorf("failed to inject competing order: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}

	w := doJSON(t, r, "POST", "/api/payment/create-checkout-session", checkoutBody("cod"),
		map[string]string{IdempotencyHeader: idemKey})
	if w.Code != http.StatusOK {
		t.Fatalf("loser must replay the winner, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		OrderRef string `json:"order_ref"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.OrderRef != "winner-ref" {
		t.Errorf("expected the winner's order ref, got %q", resp.OrderRef)
	}

	var count int64
	db.Model(&models.Order{}).Where("idempotency_key = ?", idemKey).Count(&count)
	if count != 1 {
		t.Errorf("expected a single order for the key, got %d", count)
	}
}

func TestOrderItemsAreSnapshots(t *testing.T) {
	db := setupTestDB(t)
	seedCart(t, db, "user-1")
	stubProcessor(t, nil)
	r := setupCheckoutRouter(db, "user-1")

	w := doJSON(t, r, "POST", "/api/payment/create-checkout-session", checkoutBody("card"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		OrderRef string `json:"order_ref"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	// Mutate the cart after checkout; the order snapshot must not move.
	db.Model(&models.CartItem{}).Where("user_id = ? AND item_id = ?", "user-1", "line-1").Update("quantity", 99)
	db.Where("user_id = ? AND item_id = ?", "user-1", "line-2").Delete(&models.CartItem{})

	var order models.Order
	if err := db.Preload("Items").Where("order_ref = ?", resp.OrderRef).First(&order).Error; err != nil {
		t.Fatalf("order not found: %v", err)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 snapshot items, got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.Name == "Mango" && item.Quantity != 2 {
			t.Errorf("snapshot quantity changed with the cart: got %d", item.Quantity)
		}
	}
	if order.TotalAmount != 19.0 {
		t.Errorf("snapshot total changed, got %v", order.TotalAmount)
	}
}

func TestCheckoutInvalidPaymentMethod(t *testing.T) {
	db := setupTestDB(t)
	r := setupCheckoutRouter(db, "user-1")

	w := doJSON(t, r, "POST", "/api/payment/create-checkout-session", checkoutBody("barter"), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBankSlipOrderParksAsProcessing(t *testing.T) {
	db := setupTestDB(t)
	seedCart(t, db, "user-1")
	r := setupCheckoutRouter(db, "user-1")

	w := doJSON(t, r, "POST", "/api/payment/create-checkout-session", checkoutBody("bankslip"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	if err := db.Where("user_id = ?", "user-1").First(&order).Error; err != nil {
		t.Fatalf("order not created: %v", err)
	}
	if order.Status != models.OrderStatusProcessing {
		t.Errorf("expected processing order, got %q", order.Status)
	}
	if order.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("expected pending payment status, got %q", order.PaymentStatus)
	}
}

package paymentControllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CheckoutSession is the slice of the processor's session object we use.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

type processorErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type processorConfig struct {
	secretKey  string
	apiURL     string
	currency   string
	successURL string
	cancelURL  string
}

func getProcessorConfig() (processorConfig, error) {
	cfg := processorConfig{
		secretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		apiURL:     os.Getenv("STRIPE_API_URL"),
		currency:   os.Getenv("STRIPE_CURRENCY"),
		successURL: os.Getenv("CHECKOUT_SUCCESS_URL"),
		cancelURL:  os.Getenv("CHECKOUT_CANCEL_URL"),
	}
	if cfg.apiURL == "" {
		cfg.apiURL = "https://api.stripe.com"
	}
	if cfg.currency == "" {
		cfg.currency = "usd"
	}
	if cfg.successURL == "" {
		cfg.successURL = "http://localhost:5173/payment-success"
	}
	if cfg.cancelURL == "" {
		cfg.cancelURL = "http://localhost:5173/payment-failed"
	}
	if cfg.secretKey == "" {
		return cfg, fmt.Errorf("payment processor configuration missing")
	}
	return cfg, nil
}

// toMinorUnits converts a price to the processor's minor currency unit
// without float cent drift.
func toMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// sumMinorUnits totals the checkout lines in minor units.
func sumMinorUnits(items []CheckoutItemInput) int64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CreateProcessorSession opens a hosted checkout session listing each line
// item, with the business order ref carried in the session metadata so the
// webhook can correlate the completion back to our order.
func CreateProcessorSession(items []CheckoutItemInput, orderRef, userID, deliveryDetailsID string) (*CheckoutSession, error) {
	cfg, err := getProcessorConfig()
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", cfg.successURL)
	form.Set("cancel_url", cfg.cancelURL)
	form.Set("metadata[orderId]", orderRef)
	form.Set("metadata[userId]", userID)
	form.Set("metadata[deliveryDetailsId]", deliveryDetailsID)
	for i, item := range items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", cfg.currency)
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(toMinorUnits(item.Price), 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
	}

	req, err := http.NewRequest("POST", cfg.apiURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+cfg.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return doProcessorRequest(req)
}

// RetrieveProcessorSession fetches a session, used by the synchronous
// confirmation path to check the payment outcome.
func RetrieveProcessorSession(sessionID string) (*CheckoutSession, error) {
	cfg, err := getProcessorConfig()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("GET", cfg.apiURL+"/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+cfg.secretKey)

	return doProcessorRequest(req)
}

func doProcessorRequest(req *http.Request) (*CheckoutSession, error) {
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment processor: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var procErr processorErrorResponse
		if err := json.Unmarshal(body, &procErr); err == nil && procErr.Error.Message != "" {
			return nil, fmt.Errorf("processor error: %s", procErr.Error.Message)
		}
		return nil, fmt.Errorf("processor API error (%d): %s", resp.StatusCode, string(body))
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse processor response: %v", err)
	}
	if session.ID == "" {
		return nil, fmt.Errorf("processor returned empty session id")
	}
	return &session, nil
}

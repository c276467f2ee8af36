package cryptomus

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buxzona/buxzona-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func TestCreatePayment_Success(t *testing.T) {
	var gotMerchant, gotSign string
	var gotBody []byte

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotMerchant = r.Header.Get("merchant")
		gotSign = r.Header.Get("sign")
		gotBody, _ = io.ReadAll(r.Body)

		json.NewEncoder(w).Encode(map[string]any{
			"state":  0,
			"result": map[string]string{"url": "https://pay.example/invoice/1"},
		})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "merchant-1", "test-api-key")
	url, err := c.CreatePayment(context.Background(), Invoice{
		Amount:      decimal.NewFromFloat(10.5),
		Currency:    "usd",
		OrderID:     "ord-1",
		CallbackURL: "https://shop.example/payment-notification",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if url != "https://pay.example/invoice/1" {
		t.Errorf("unexpected payment url %s", url)
	}

	if gotMerchant != "merchant-1" {
		t.Errorf("expected merchant header, got %q", gotMerchant)
	}
	// Signature must cover the exact bytes we sent.
	if gotSign != c.Sign(gotBody) {
		t.Error("sign header does not match signature of transmitted body")
	}

	var sent paymentRequest
	if err := json.Unmarshal(gotBody, &sent); err != nil {
		t.Fatalf("failed to decode sent body: %v", err)
	}
	if sent.Amount != "10.50" {
		t.Errorf("expected amount 10.50, got %s", sent.Amount)
	}
	if sent.Currency != "USD" {
		t.Errorf("expected uppercased currency, got %s", sent.Currency)
	}
	if sent.OrderID != "ord-1" || sent.URLCallback == "" {
		t.Errorf("unexpected payload: %+v", sent)
	}
}

func TestCreatePayment_GatewayRejects(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"state": 1, "message": "invalid amount"})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "merchant-1", "test-api-key")
	_, err := c.CreatePayment(context.Background(), Invoice{
		Amount:   decimal.NewFromInt(5),
		Currency: "USD",
		OrderID:  "ord-2",
	})
	if !errors.Is(err, domain.ErrPaymentCreationFailed) {
		t.Errorf("expected ErrPaymentCreationFailed, got %v", err)
	}
}

func TestCreatePayment_MissingCredentials(t *testing.T) {
	c := NewClient("https://gateway.example", "", "")

	_, err := c.CreatePayment(context.Background(), Invoice{
		Amount:   decimal.NewFromInt(5),
		Currency: "USD",
		OrderID:  "ord-3",
	})
	if !errors.Is(err, domain.ErrConfigurationMissing) {
		t.Errorf("expected ErrConfigurationMissing, got %v", err)
	}
}

func TestCreatePayment_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // refuse connections

	c := NewClient(ts.URL, "merchant-1", "test-api-key")
	_, err := c.CreatePayment(context.Background(), Invoice{
		Amount:   decimal.NewFromInt(5),
		Currency: "USD",
		OrderID:  "ord-4",
	})
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

package cryptomus

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/buxzona/buxzona-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Client talks to the Cryptomus merchant API. The gateway signs and expects
// signatures of the form hex(md5(base64(rawJSONBody) + apiKey)), which makes
// the exact request/webhook bytes part of the contract.
type Client struct {
	baseURL    string
	merchantID string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, merchantID, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		merchantID: merchantID,
		apiKey:     apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) Configured() bool {
	return c.merchantID != "" && c.apiKey != ""
}

// Sign computes the gateway signature over the exact body bytes.
func (c *Client) Sign(body []byte) string {
	encoded := base64.StdEncoding.EncodeToString(body)
	sum := md5.Sum([]byte(encoded + c.apiKey))
	return hex.EncodeToString(sum[:])
}

type paymentRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	OrderID     string `json:"order_id"`
	URLCallback string `json:"url_callback"`
}

type paymentResult struct {
	UUID    string `json:"uuid"`
	OrderID string `json:"order_id"`
	URL     string `json:"url"`
}

type paymentResponse struct {
	State   int            `json:"state"`
	Result  *paymentResult `json:"result"`
	Message string         `json:"message"`
}

type Invoice struct {
	Amount      decimal.Decimal
	Currency    string
	OrderID     string
	CallbackURL string
}

// CreatePayment submits a signed payment request and returns the hosted
// payment page URL.
func (c *Client) CreatePayment(ctx context.Context, inv Invoice) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("%w: gateway merchant id or api key not set", domain.ErrConfigurationMissing)
	}

	body, err := json.Marshal(paymentRequest{
		Amount:      inv.Amount.StringFixed(2),
		Currency:    strings.ToUpper(inv.Currency),
		OrderID:     inv.OrderID,
		URLCallback: inv.CallbackURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("merchant", c.merchantID)
	// Signed over the same bytes the gateway receives.
	req.Header.Set("sign", c.Sign(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: gateway request failed: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gateway response: %w", err)
	}

	var parsed paymentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed gateway response: %v", domain.ErrPaymentCreationFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || parsed.State != 0 || parsed.Result == nil || parsed.Result.URL == "" {
		return "", fmt.Errorf("%w: gateway returned state=%d status=%d message=%q",
			domain.ErrPaymentCreationFailed, parsed.State, resp.StatusCode, parsed.Message)
	}

	return parsed.Result.URL, nil
}

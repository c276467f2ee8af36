package dto

import "encoding/json"

type ErrorResponse struct {
	Error string `json:"error"`
}

type VerifyGamepassRequest struct {
	ListingURL     string `json:"listingUrl"`
	ExpectedAmount int64  `json:"expectedAmount"`
}

type VerifyGamepassResponse struct {
	Success      bool   `json:"success"`
	ActualAmount int64  `json:"actualAmount,omitempty"`
	Error        string `json:"error,omitempty"`
}

type LoginRequest struct {
	Cookie string `json:"cookie"`
}

// CreatePaymentRequest is the untagged wire form of the delivery union.
// DeliveryMethod picks which of the method fields must be present; the
// handler validates the union before anything reaches the orchestrator.
type CreatePaymentRequest struct {
	Amount         json.Number `json:"amount"`
	Currency       string      `json:"currency"`
	AmountRobux    int64       `json:"robuxAmount"`
	DeliveryMethod string      `json:"deliveryMethod"`
	ContactHandle  string      `json:"contact"`

	// direct-credit
	RecipientID   int64  `json:"recipientId,omitempty"`
	RecipientName string `json:"recipientName,omitempty"`
	Cookie        string `json:"cookie,omitempty"`

	// listing-purchase
	GamepassURL string `json:"gamepassUrl,omitempty"`
}

type CreatePaymentResponse struct {
	PaymentURL string `json:"paymentUrl"`
}

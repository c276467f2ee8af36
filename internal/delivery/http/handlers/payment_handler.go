package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/buxzona/buxzona-backend/internal/delivery/http/dto"
	"github.com/buxzona/buxzona-backend/internal/domain"
	"github.com/buxzona/buxzona-backend/internal/usecase"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	payments        usecase.PaymentUsecase
	callbackBaseURL string
}

func NewPaymentHandler(payments usecase.PaymentUsecase, callbackBaseURL string) *PaymentHandler {
	return &PaymentHandler{
		payments:        payments,
		callbackBaseURL: strings.TrimRight(callbackBaseURL, "/"),
	}
}

// CreatePayment validates the delivery union at the boundary and hands a
// typed input to the orchestrator.
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	input, err := h.buildInput(&req, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	payURL, err := h.payments.CreatePayment(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrConfigurationMissing) {
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "payment gateway is not configured"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to create payment"})
		return
	}

	writeJSON(w, http.StatusOK, dto.CreatePaymentResponse{PaymentURL: payURL})
}

// HandleWebhook keeps the raw body: the signature is computed over the exact
// bytes the gateway sent, so nothing may be re-serialized before the check.
func (h *PaymentHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to read body"})
		return
	}

	if err := h.payments.HandleWebhook(r.Context(), rawBody); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingSignature):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "missing signature"})
		case errors.Is(err, domain.ErrInvalidSignature):
			writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "invalid signature"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to process notification"})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *PaymentHandler) buildInput(req *dto.CreatePaymentRequest, r *http.Request) (*usecase.CreatePaymentInput, error) {
	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil || !amount.IsPositive() {
		return nil, errors.New("amount must be a positive number")
	}
	if req.Currency == "" {
		return nil, errors.New("currency is required")
	}
	if req.AmountRobux <= 0 {
		return nil, errors.New("robuxAmount must be positive")
	}

	input := &usecase.CreatePaymentInput{
		Amount:        amount,
		Currency:      req.Currency,
		AmountRobux:   req.AmountRobux,
		ContactHandle: req.ContactHandle,
		CallbackURL:   h.callbackURL(r),
	}

	switch domain.DeliveryMethod(req.DeliveryMethod) {
	case domain.DeliveryDirectCredit:
		if req.RecipientID == 0 || req.Cookie == "" {
			return nil, errors.New("recipientId and cookie are required for direct-credit")
		}
		input.Method = domain.DeliveryDirectCredit
		input.DirectCredit = &domain.DirectCreditDetails{
			RecipientID:   req.RecipientID,
			RecipientName: req.RecipientName,
			SessionCookie: req.Cookie,
		}
	case domain.DeliveryGamepassPurchase:
		if req.GamepassURL == "" {
			return nil, errors.New("gamepassUrl is required for listing-purchase")
		}
		input.Method = domain.DeliveryGamepassPurchase
		input.GamepassPurchase = &domain.GamepassPurchaseDetails{
			GamepassURL: req.GamepassURL,
		}
	default:
		return nil, fmt.Errorf("unknown delivery method %q", req.DeliveryMethod)
	}

	return input, nil
}

// callbackURL prefers the configured public base URL. Deriving it from the
// inbound Host header is a spoofing vector, so the fallback logs a warning.
func (h *PaymentHandler) callbackURL(r *http.Request) string {
	if h.callbackBaseURL != "" {
		return h.callbackBaseURL + "/payment-notification"
	}

	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	slog.Warn("callback base URL not configured, deriving from request host", "host", r.Host)
	return fmt.Sprintf("%s://%s/payment-notification", scheme, r.Host)
}

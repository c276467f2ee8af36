package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/buxzona/buxzona-backend/internal/domain"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/cryptomus"
	publisher "github.com/buxzona/buxzona-backend/internal/infrastructure/kafka"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/metrics"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

type PaymentGateway interface {
	CreatePayment(ctx context.Context, inv cryptomus.Invoice) (string, error)
	ParseWebhook(raw []byte) (*cryptomus.WebhookEvent, error)
}

type OrderNotifier interface {
	NotifyOrderPaid(order *domain.PendingOrder, paidAmount, paidCurrency string)
}

type CreatePaymentInput struct {
	Amount           decimal.Decimal
	Currency         string
	AmountRobux      int64
	ContactHandle    string
	Method           domain.DeliveryMethod
	DirectCredit     *domain.DirectCreditDetails
	GamepassPurchase *domain.GamepassPurchaseDetails
	CallbackURL      string
}

type PaymentUsecase interface {
	CreatePayment(ctx context.Context, input *CreatePaymentInput) (string, error)
	HandleWebhook(ctx context.Context, rawBody []byte) error
}

type DefaultPaymentUsecase struct {
	gateway    PaymentGateway
	store      domain.OrderStore
	notifier   OrderNotifier
	publisher  domain.EventPublisher
	topic      string
	metrics    *metrics.ServiceMetrics
	newOrderID func() string
}

func NewDefaultPaymentUsecase(
	gateway PaymentGateway,
	store domain.OrderStore,
	notifier OrderNotifier,
	pub domain.EventPublisher,
	topic string,
	m *metrics.ServiceMetrics,
) (*DefaultPaymentUsecase, error) {
	// Gateway order ids must be unguessable; nanoid draws from crypto/rand.
	gen, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("failed to init order id generator: %w", err)
	}
	return &DefaultPaymentUsecase{
		gateway:    gateway,
		store:      store,
		notifier:   notifier,
		publisher:  pub,
		topic:      topic,
		metrics:    m,
		newOrderID: gen,
	}, nil
}

// CreatePayment submits the invoice to the gateway and, only after the
// gateway accepts it, records the pending order. Nothing is persisted on
// failure.
func (uc *DefaultPaymentUsecase) CreatePayment(ctx context.Context, input *CreatePaymentInput) (string, error) {
	if err := validateDelivery(input); err != nil {
		return "", err
	}

	orderID := uc.newOrderID()

	payURL, err := uc.gateway.CreatePayment(ctx, cryptomus.Invoice{
		Amount:      input.Amount,
		Currency:    input.Currency,
		OrderID:     orderID,
		CallbackURL: input.CallbackURL,
	})
	if err != nil {
		uc.metrics.RecordPaymentError(errorType(err))
		slog.Error("payment creation failed", "order_id", orderID, "error", err.Error())
		return "", err
	}

	order := &domain.PendingOrder{
		ID:               orderID,
		Method:           input.Method,
		AmountRobux:      input.AmountRobux,
		ContactHandle:    input.ContactHandle,
		DirectCredit:     input.DirectCredit,
		GamepassPurchase: input.GamepassPurchase,
		CreatedAt:        time.Now(),
	}
	uc.store.Put(order)
	uc.metrics.RecordPaymentCreated(string(input.Method), input.Currency)

	go func(event publisher.OrderEvent) {
		if err := publisher.PublishOrder(uc.publisher, uc.topic, event); err != nil {
			slog.Error("failed to publish order created event", "error", err.Error())
		}
	}(publisher.OrderEvent{
		OrderID:        orderID,
		Status:         "created",
		DeliveryMethod: string(input.Method),
		AmountRobux:    input.AmountRobux,
	})

	slog.Info("payment created", "order_id", orderID, "method", input.Method, "amount_robux", input.AmountRobux)
	return payURL, nil
}

// HandleWebhook verifies the signature against the raw body, then settles a
// matching order. An unmatched order id or a non-final status is a no-op:
// the gateway only stops retrying on acknowledgment, so after a valid
// signature the answer is always success.
func (uc *DefaultPaymentUsecase) HandleWebhook(ctx context.Context, rawBody []byte) error {
	event, err := uc.gateway.ParseWebhook(rawBody)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingSignature):
			uc.metrics.RecordWebhookRejected("missing_signature")
		case errors.Is(err, domain.ErrInvalidSignature):
			uc.metrics.RecordWebhookRejected("invalid_signature")
			slog.Warn("webhook signature mismatch, possible tampering", "body_len", len(rawBody))
		default:
			uc.metrics.RecordWebhookRejected("malformed")
		}
		return err
	}

	uc.metrics.RecordWebhookReceived(string(event.Status))

	if !event.Status.Settled() {
		slog.Info("webhook ignored: non-final status", "order_id", event.OrderID, "status", event.Status)
		return nil
	}

	// Atomic check-and-remove: redelivered webhooks find nothing to take.
	order := uc.store.Take(event.OrderID)
	if order == nil {
		slog.Info("webhook for unknown or already settled order", "order_id", event.OrderID)
		return nil
	}

	uc.notifier.NotifyOrderPaid(order, event.PaymentAmount, event.Currency)
	uc.metrics.RecordPaymentSettled(string(order.Method))

	go func(event publisher.OrderEvent) {
		if err := publisher.PublishOrder(uc.publisher, uc.topic, event); err != nil {
			slog.Error("failed to publish order settled event", "error", err.Error())
		}
	}(publisher.OrderEvent{
		OrderID:        order.ID,
		Status:         "settled",
		DeliveryMethod: string(order.Method),
		AmountRobux:    order.AmountRobux,
		PaidAmount:     event.PaymentAmount,
		PaidCurrency:   event.Currency,
	})

	slog.Info("order settled", "order_id", order.ID, "method", order.Method,
		"paid_amount", event.PaymentAmount, "paid_currency", event.Currency)
	return nil
}

func validateDelivery(input *CreatePaymentInput) error {
	switch input.Method {
	case domain.DeliveryDirectCredit:
		if input.DirectCredit == nil {
			return fmt.Errorf("%w: direct-credit payload required", domain.ErrPaymentCreationFailed)
		}
	case domain.DeliveryGamepassPurchase:
		if input.GamepassPurchase == nil {
			return fmt.Errorf("%w: listing-purchase payload required", domain.ErrPaymentCreationFailed)
		}
	default:
		return fmt.Errorf("%w: unknown delivery method %q", domain.ErrPaymentCreationFailed, input.Method)
	}
	if !input.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", domain.ErrPaymentCreationFailed)
	}
	return nil
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrConfigurationMissing):
		return "configuration_missing"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "gateway_unavailable"
	default:
		return "creation_failed"
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ServiceMetrics covers the three flows: pricing refresh, payment lifecycle
// and webhook handling.
type ServiceMetrics struct {
	PaymentsCreatedTotal  prometheus.CounterVec
	PaymentsSettledTotal  prometheus.CounterVec
	PaymentErrorsTotal    prometheus.CounterVec
	WebhooksReceivedTotal prometheus.CounterVec
	WebhooksRejectedTotal prometheus.CounterVec
	PendingOrdersGauge    prometheus.Gauge

	PriceRefreshTotal    prometheus.CounterVec
	PriceRefreshDuration prometheus.Histogram

	VerificationsTotal prometheus.CounterVec
	LoginsTotal        prometheus.CounterVec
}

func NewServiceMetrics() *ServiceMetrics {
	return &ServiceMetrics{
		PaymentsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_created_total",
				Help: "Payment requests accepted by the gateway",
			},
			[]string{"delivery_method", "currency"},
		),

		PaymentsSettledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_settled_total",
				Help: "Orders settled by a paid/paid_over webhook",
			},
			[]string{"delivery_method"},
		),

		PaymentErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_errors_total",
				Help: "Payment creation failures by kind",
			},
			[]string{"error_type"},
		),

		WebhooksReceivedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhooks_received_total",
				Help: "Gateway webhooks received by reported status",
			},
			[]string{"status"},
		),

		WebhooksRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhooks_rejected_total",
				Help: "Webhooks rejected before processing",
			},
			[]string{"reason"},
		),

		PendingOrdersGauge: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pending_orders",
				Help: "Orders awaiting a gateway webhook",
			},
		),

		PriceRefreshTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "price_refresh_total",
				Help: "Price table refresh attempts by outcome",
			},
			[]string{"outcome"},
		),

		PriceRefreshDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "price_refresh_duration_seconds",
				Help:    "Time spent refreshing the price table",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
			},
		),

		VerificationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamepass_verifications_total",
				Help: "Gamepass price verifications by outcome",
			},
			[]string{"outcome"},
		),

		LoginsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cookie_logins_total",
				Help: "Cookie login attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (m *ServiceMetrics) RecordPaymentCreated(deliveryMethod, currency string) {
	m.PaymentsCreatedTotal.WithLabelValues(deliveryMethod, currency).Inc()
	m.PendingOrdersGauge.Inc()
}

func (m *ServiceMetrics) RecordPaymentSettled(deliveryMethod string) {
	m.PaymentsSettledTotal.WithLabelValues(deliveryMethod).Inc()
	m.PendingOrdersGauge.Dec()
}

func (m *ServiceMetrics) RecordPaymentError(errorType string) {
	m.PaymentErrorsTotal.WithLabelValues(errorType).Inc()
}

func (m *ServiceMetrics) RecordWebhookReceived(status string) {
	m.WebhooksReceivedTotal.WithLabelValues(status).Inc()
}

func (m *ServiceMetrics) RecordWebhookRejected(reason string) {
	m.WebhooksRejectedTotal.WithLabelValues(reason).Inc()
}

func (m *ServiceMetrics) RecordPriceRefresh(outcome string, durationSeconds float64) {
	m.PriceRefreshTotal.WithLabelValues(outcome).Inc()
	m.PriceRefreshDuration.Observe(durationSeconds)
}

func (m *ServiceMetrics) RecordVerification(outcome string) {
	m.VerificationsTotal.WithLabelValues(outcome).Inc()
}

func (m *ServiceMetrics) RecordLogin(outcome string) {
	m.LoginsTotal.WithLabelValues(outcome).Inc()
}

package usecase

import (
	"context"
	"sync/atomic"

	"github.com/buxzona/buxzona-backend/internal/domain"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/cryptomus"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/metrics"
)

// promauto registers against the default registry; a single shared instance
// keeps the test binary from double-registering collectors.
var testMetrics = metrics.NewServiceMetrics()

type fakeGateway struct {
	payURL    string
	createErr error
	event     *cryptomus.WebhookEvent
	parseErr  error
	created   atomic.Int64
}

func (g *fakeGateway) CreatePayment(ctx context.Context, inv cryptomus.Invoice) (string, error) {
	g.created.Add(1)
	if g.createErr != nil {
		return "", g.createErr
	}
	return g.payURL, nil
}

func (g *fakeGateway) ParseWebhook(raw []byte) (*cryptomus.WebhookEvent, error) {
	if g.parseErr != nil {
		return nil, g.parseErr
	}
	return g.event, nil
}

type fakeNotifier struct {
	calls atomic.Int64
}

func (n *fakeNotifier) NotifyOrderPaid(order *domain.PendingOrder, paidAmount, paidCurrency string) {
	n.calls.Add(1)
}

type fakePriceFetcher struct {
	price int64
	err   error
}

func (f *fakePriceFetcher) GamepassPrice(ctx context.Context, gamepassURL string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.price, nil
}

type fakeResolver struct {
	identity *domain.UserIdentity
	err      error
}

func (r *fakeResolver) ResolveIdentity(ctx context.Context, cookie string) (*domain.UserIdentity, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.identity, nil
}

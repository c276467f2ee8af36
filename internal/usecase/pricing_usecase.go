package usecase

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/buxzona/buxzona-backend/internal/domain"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/metrics"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/pricing"
)

// PricingUsecase serves price snapshots and owns the refresh cycle. The read
// path never triggers side effects; refresh runs from the background task.
type PricingUsecase interface {
	GetPrices() domain.PriceTable
	RefreshIfStale(ctx context.Context)
}

type DefaultPricingUsecase struct {
	cache      *pricing.Cache
	fetcher    *pricing.Fetcher
	metrics    *metrics.ServiceMetrics
	staleness  time.Duration
	refreshing atomic.Bool
}

func NewDefaultPricingUsecase(
	cache *pricing.Cache,
	fetcher *pricing.Fetcher,
	m *metrics.ServiceMetrics,
	staleness time.Duration,
) *DefaultPricingUsecase {
	return &DefaultPricingUsecase{
		cache:     cache,
		fetcher:   fetcher,
		metrics:   m,
		staleness: staleness,
	}
}

func (uc *DefaultPricingUsecase) GetPrices() domain.PriceTable {
	return uc.cache.Snapshot()
}

// RefreshIfStale refreshes the table when the staleness threshold has
// passed. Overlapping calls are coalesced so only one outbound fetch is in
// flight at a time. Failures leave the cached table and the staleness clock
// untouched.
func (uc *DefaultPricingUsecase) RefreshIfStale(ctx context.Context) {
	if !uc.cache.Stale(time.Now(), uc.staleness) {
		return
	}
	if !uc.refreshing.CompareAndSwap(false, true) {
		return
	}
	defer uc.refreshing.Store(false)

	start := time.Now()
	table, err := uc.fetcher.FetchTable(ctx)
	elapsed := time.Since(start)

	if err != nil {
		uc.metrics.RecordPriceRefresh("failure", elapsed.Seconds())
		slog.Error("price refresh failed, keeping previous table", "error", err.Error())
		return
	}

	uc.cache.Replace(table, time.Now())
	uc.metrics.RecordPriceRefresh("success", elapsed.Seconds())
	slog.Info("price table refreshed",
		"usd_rate", table.USD.Rate,
		"rub_rate", table.RUB.Rate,
		"elapsed", elapsed,
	)
}

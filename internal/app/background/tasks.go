package background

import (
	"context"
	"time"

	"github.com/buxzona/buxzona-backend/internal/config"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/memstore"
	"github.com/buxzona/buxzona-backend/internal/usecase"
)

// BackgroundTasks owns the periodic work: price refresh and pending-order
// eviction. Read handlers only take snapshots; side effects live here.
type BackgroundTasks struct {
	Pricing    usecase.PricingUsecase
	OrderStore *memstore.MemoryOrderStore
	StoreCfg   config.OrderStore
}

func NewBackgroundTasks(pricing usecase.PricingUsecase, store *memstore.MemoryOrderStore, storeCfg config.OrderStore) *BackgroundTasks {
	return &BackgroundTasks{
		Pricing:    pricing,
		OrderStore: store,
		StoreCfg:   storeCfg,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startPriceRefresh(ctx)
	bt.OrderStore.StartSweeper(ctx, bt.StoreCfg.SweepInterval)
}

func (bt *BackgroundTasks) startPriceRefresh(ctx context.Context) {
	// First attempt right after startup, then staleness-gated on a ticker.
	bt.Pricing.RefreshIfStale(ctx)

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.Pricing.RefreshIfStale(ctx)
		}
	}
}

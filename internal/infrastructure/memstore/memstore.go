package memstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/buxzona/buxzona-backend/internal/domain"
)

// MemoryOrderStore keeps pending orders in process memory. Orders for which
// no webhook ever arrives would otherwise sit in the map forever, so a
// sweeper evicts entries older than the configured TTL.
type MemoryOrderStore struct {
	mu   sync.RWMutex
	data map[string]*domain.PendingOrder
	ttl  time.Duration
}

func NewMemoryOrderStore(ttl time.Duration) *MemoryOrderStore {
	return &MemoryOrderStore{
		data: make(map[string]*domain.PendingOrder),
		ttl:  ttl,
	}
}

func (ms *MemoryOrderStore) Put(order *domain.PendingOrder) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.data[order.ID] = order
}

func (ms *MemoryOrderStore) Get(id string) *domain.PendingOrder {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.data[id]
}

// Take removes and returns the order in one critical section. Concurrent
// Take calls for the same id hand the order to exactly one caller, so a
// redelivered webhook settles an order at most once.
func (ms *MemoryOrderStore) Take(id string) *domain.PendingOrder {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	order, exists := ms.data[id]
	if !exists {
		return nil
	}
	delete(ms.data, id)
	return order
}

func (ms *MemoryOrderStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.data)
}

// StartSweeper runs TTL eviction until ctx is cancelled.
func (ms *MemoryOrderStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ms.sweep(time.Now())
			}
		}
	}()
}

func (ms *MemoryOrderStore) sweep(now time.Time) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	evicted := 0
	for id, order := range ms.data {
		if now.Sub(order.CreatedAt) > ms.ttl {
			delete(ms.data, id)
			evicted++
		}
	}

	if evicted > 0 {
		slog.Warn("swept abandoned pending orders", "evicted", evicted, "remaining", len(ms.data))
	}
}

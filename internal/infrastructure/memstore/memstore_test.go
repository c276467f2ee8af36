package memstore

import (
	"sync"
	"testing"
	"time"

	"github.com/buxzona/buxzona-backend/internal/domain"
)

func makeOrder(id string) *domain.PendingOrder {
	return &domain.PendingOrder{
		ID:          id,
		Method:      domain.DeliveryGamepassPurchase,
		AmountRobux: 500,
		GamepassPurchase: &domain.GamepassPurchaseDetails{
			GamepassURL: "https://www.roblox.com/game-pass/1",
		},
		CreatedAt: time.Now(),
	}
}

func TestGet_ReturnsNilForUnknownID(t *testing.T) {
	s := NewMemoryOrderStore(time.Hour)
	if s.Get("missing") != nil {
		t.Error("expected nil for unknown order id")
	}
}

func TestPut_ThenGet(t *testing.T) {
	s := NewMemoryOrderStore(time.Hour)
	s.Put(makeOrder("ord-1"))

	order := s.Get("ord-1")
	if order == nil {
		t.Fatal("expected order, got nil")
	}
	if order.AmountRobux != 500 {
		t.Errorf("expected 500 robux, got %d", order.AmountRobux)
	}
	if s.Len() != 1 {
		t.Errorf("expected len 1, got %d", s.Len())
	}
}

func TestTake_RemovesEntry(t *testing.T) {
	s := NewMemoryOrderStore(time.Hour)
	s.Put(makeOrder("ord-1"))

	if s.Take("ord-1") == nil {
		t.Fatal("expected first Take to return the order")
	}
	if s.Take("ord-1") != nil {
		t.Error("expected second Take to return nil")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got len %d", s.Len())
	}
}

func TestTake_ConcurrentDeliversOnce(t *testing.T) {
	// Redelivered webhooks race Take for the same id; exactly one caller
	// may win. Run with -race.
	s := NewMemoryOrderStore(time.Hour)
	s.Put(makeOrder("ord-hot"))

	const attempts = 50
	var wg sync.WaitGroup
	results := make(chan *domain.PendingOrder, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.Take("ord-hot")
		}()
	}
	wg.Wait()
	close(results)

	won := 0
	for order := range results {
		if order != nil {
			won++
		}
	}
	if won != 1 {
		t.Errorf("expected exactly one winner, got %d", won)
	}
}

func TestSweep_EvictsExpiredOrders(t *testing.T) {
	s := NewMemoryOrderStore(time.Hour)

	old := makeOrder("ord-old")
	old.CreatedAt = time.Now().Add(-2 * time.Hour)
	s.Put(old)
	s.Put(makeOrder("ord-fresh"))

	s.sweep(time.Now())

	if s.Get("ord-old") != nil {
		t.Error("expected expired order to be evicted")
	}
	if s.Get("ord-fresh") == nil {
		t.Error("expected fresh order to survive the sweep")
	}
}

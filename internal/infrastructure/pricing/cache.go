package pricing

import (
	"sync"
	"time"

	"github.com/buxzona/buxzona-backend/internal/domain"
)

// BackupTable is served from process start until the first successful
// refresh, so the read path always has prices to offer.
var BackupTable = domain.PriceTable{
	USD: domain.PriceEntry{Rate: 0.0043, Symbol: "$", MinCharge: 2.0, MaxCharge: 500},
	RUB: domain.PriceEntry{Rate: 0.344, Symbol: "₽", MinCharge: 160, MaxCharge: 40000},
}

// Cache holds the last successfully computed table. The table is replaced
// wholesale; readers get a snapshot and never block on a refresh.
type Cache struct {
	mu    sync.RWMutex
	table domain.PriceTable
	state domain.FetchState
}

func NewCache() *Cache {
	return &Cache{table: BackupTable}
}

func (c *Cache) Snapshot() domain.PriceTable {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table
}

// Replace installs a new table and marks the refresh successful. Only
// success moves the staleness clock.
func (c *Cache) Replace(table domain.PriceTable, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = table
	c.state.LastSuccess = now
}

func (c *Cache) Stale(now time.Time, threshold time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Stale(now, threshold)
}

func (c *Cache) LastSuccess() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.LastSuccess
}

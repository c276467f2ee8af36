package domain

import "time"

// PriceEntry is the quote for one fiat currency: local-currency units per
// 1 Robux plus the charge bounds shown to the client.
type PriceEntry struct {
	Rate      float64 `json:"rate"`
	Symbol    string  `json:"symbol"`
	MinCharge float64 `json:"min"`
	MaxCharge float64 `json:"max"`
}

// PriceTable is replaced wholesale on every successful refresh, never
// patched field by field.
type PriceTable struct {
	USD PriceEntry `json:"usd"`
	RUB PriceEntry `json:"rub"`
}

// FetchState tracks the last successful refresh. A failed attempt leaves
// LastSuccess untouched so failures neither thrash nor extend the cooldown.
type FetchState struct {
	LastSuccess time.Time
}

func (s FetchState) Stale(now time.Time, threshold time.Duration) bool {
	return now.Sub(s.LastSuccess) > threshold
}

package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/buxzona/buxzona-backend/internal/config"
	"github.com/buxzona/buxzona-backend/internal/domain"
)

// Fetcher builds a fresh price table from the scraped reseller page and the
// open exchange-rate API.
type Fetcher struct {
	cfg    config.Pricing
	client *http.Client
}

func NewFetcher(cfg config.Pricing) *Fetcher {
	return &Fetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type rateResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// FetchTable fetches, parses and combines both sources. Any failure returns
// an error and no table; the caller keeps whatever it already had.
func (f *Fetcher) FetchTable(ctx context.Context) (domain.PriceTable, error) {
	basePrice, err := f.fetchBasePrice(ctx)
	if err != nil {
		return domain.PriceTable{}, err
	}

	usdToRub, err := f.fetchUSDToRUB(ctx)
	if err != nil {
		return domain.PriceTable{}, err
	}

	finalUSD := basePrice + f.cfg.MarkupUSD
	finalRUB := finalUSD * usdToRub
	quote := float64(f.cfg.QuoteRobux)

	return domain.PriceTable{
		USD: domain.PriceEntry{
			Rate:      finalUSD / quote,
			Symbol:    "$",
			MinCharge: f.cfg.MinChargeUSD,
			MaxCharge: f.cfg.MaxChargeUSD,
		},
		RUB: domain.PriceEntry{
			Rate:      finalRUB / quote,
			Symbol:    "₽",
			MinCharge: math.Round(f.cfg.MinChargeUSD * usdToRub),
			MaxCharge: math.Round(f.cfg.MaxChargeUSD * usdToRub),
		},
	}, nil
}

// fetchBasePrice scrapes the per-1000-Robux price off the reseller page.
// The source blocks clients without a browser user-agent.
func (f *Fetcher) fetchBasePrice(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.SourceURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: price source: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: price source returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to parse price page: %v", domain.ErrParse, err)
	}

	text := doc.Find(f.cfg.PriceSelector).First().Text()
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "$"))

	price, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: base price not found at selector %q", domain.ErrParse, f.cfg.PriceSelector)
	}

	return price, nil
}

func (f *Fetcher) fetchUSDToRUB(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.RateAPIURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: rate API: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: rate API returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read rate response: %w", err)
	}

	var rates rateResponse
	if err := json.Unmarshal(body, &rates); err != nil {
		return 0, fmt.Errorf("%w: malformed rate response: %v", domain.ErrRateUnavailable, err)
	}

	rub, ok := rates.Rates["RUB"]
	if !ok || rub <= 0 {
		return 0, fmt.Errorf("%w: RUB rate missing from response", domain.ErrRateUnavailable)
	}

	return rub, nil
}

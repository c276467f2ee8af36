package usecase

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/buxzona/buxzona-backend/internal/config"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/pricing"
)

func pricingConfig(sourceURL, rateURL string) config.Pricing {
	return config.Pricing{
		SourceURL:     sourceURL,
		PriceSelector: ".price-tag",
		RateAPIURL:    rateURL,
		UserAgent:     "Mozilla/5.0 test",
		MarkupUSD:     1.70,
		QuoteRobux:    1000,
		MinChargeUSD:  2.0,
		MaxChargeUSD:  500.0,
	}
}

func TestRefreshIfStale_ReplacesTableOnSuccess(t *testing.T) {
	priceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="price-tag">$5.30</div></body></html>`)
	}))
	defer priceSrv.Close()

	rateSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"rates":{"RUB":95.0}}`)
	}))
	defer rateSrv.Close()

	cache := pricing.NewCache()
	fetcher := pricing.NewFetcher(pricingConfig(priceSrv.URL, rateSrv.URL))
	uc := NewDefaultPricingUsecase(cache, fetcher, testMetrics, 10*time.Minute)

	uc.RefreshIfStale(context.Background())

	table := uc.GetPrices()
	if table == pricing.BackupTable {
		t.Fatal("expected the fetched table to replace the backup")
	}
	if table.USD.Rate != 0.007 {
		t.Errorf("expected usd rate 0.007, got %v", table.USD.Rate)
	}
}

func TestRefreshIfStale_FailureKeepsServingPreviousTable(t *testing.T) {
	priceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer priceSrv.Close()

	cache := pricing.NewCache()
	fetcher := pricing.NewFetcher(pricingConfig(priceSrv.URL, priceSrv.URL))
	uc := NewDefaultPricingUsecase(cache, fetcher, testMetrics, 10*time.Minute)

	uc.RefreshIfStale(context.Background())

	if uc.GetPrices() != pricing.BackupTable {
		t.Error("a failed refresh must leave the previous table in place")
	}
	if !cache.Stale(time.Now(), 10*time.Minute) {
		t.Error("a failed refresh must not move the staleness clock")
	}
}

func TestRefreshIfStale_SkipsWhenFresh(t *testing.T) {
	var hits atomic.Int64
	priceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `<html><body><div class="price-tag">$5.30</div></body></html>`)
	}))
	defer priceSrv.Close()

	rateSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"rates":{"RUB":95.0}}`)
	}))
	defer rateSrv.Close()

	cache := pricing.NewCache()
	fetcher := pricing.NewFetcher(pricingConfig(priceSrv.URL, rateSrv.URL))
	uc := NewDefaultPricingUsecase(cache, fetcher, testMetrics, 10*time.Minute)

	uc.RefreshIfStale(context.Background())
	uc.RefreshIfStale(context.Background())

	if hits.Load() != 1 {
		t.Errorf("a fresh cache must not trigger another fetch, got %d hits", hits.Load())
	}
}

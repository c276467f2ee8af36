package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/buxzona/buxzona-backend/internal/domain"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/metrics"
)

type GamepassPriceFetcher interface {
	GamepassPrice(ctx context.Context, gamepassURL string) (int64, error)
}

type VerifyResult struct {
	OK      bool
	Actual  int64
	Message string
}

type VerificationUsecase interface {
	VerifyGamepass(ctx context.Context, gamepassURL string, expected int64) (*VerifyResult, error)
}

type DefaultVerificationUsecase struct {
	fetcher GamepassPriceFetcher
	metrics *metrics.ServiceMetrics
}

func NewDefaultVerificationUsecase(fetcher GamepassPriceFetcher, m *metrics.ServiceMetrics) *DefaultVerificationUsecase {
	return &DefaultVerificationUsecase{fetcher: fetcher, metrics: m}
}

// VerifyGamepass compares the listed price against the expected amount.
// "Price differs" comes back as a result; "could not check" comes back as an
// error, so callers can tell the two apart.
func (uc *DefaultVerificationUsecase) VerifyGamepass(ctx context.Context, gamepassURL string, expected int64) (*VerifyResult, error) {
	actual, err := uc.fetcher.GamepassPrice(ctx, gamepassURL)
	if err != nil {
		uc.metrics.RecordVerification("unavailable")
		slog.Error("gamepass verification unavailable", "url", gamepassURL, "error", err.Error())
		return nil, fmt.Errorf("%w: %w", domain.ErrVerificationUnavailable, err)
	}

	if actual != expected {
		uc.metrics.RecordVerification("mismatch")
		return &VerifyResult{
			OK:      false,
			Actual:  actual,
			Message: fmt.Sprintf("gamepass price is %d Robux, expected %d", actual, expected),
		}, nil
	}

	uc.metrics.RecordVerification("match")
	return &VerifyResult{OK: true, Actual: actual}, nil
}

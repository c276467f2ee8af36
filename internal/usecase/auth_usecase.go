package usecase

import (
	"context"
	"log/slog"

	"github.com/buxzona/buxzona-backend/internal/domain"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/metrics"
)

type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, cookie string) (*domain.UserIdentity, error)
}

type AuthUsecase interface {
	LoginWithCookie(ctx context.Context, cookie string) (*domain.UserIdentity, error)
}

type DefaultAuthUsecase struct {
	resolver IdentityResolver
	metrics  *metrics.ServiceMetrics
}

func NewDefaultAuthUsecase(resolver IdentityResolver, m *metrics.ServiceMetrics) *DefaultAuthUsecase {
	return &DefaultAuthUsecase{resolver: resolver, metrics: m}
}

func (uc *DefaultAuthUsecase) LoginWithCookie(ctx context.Context, cookie string) (*domain.UserIdentity, error) {
	identity, err := uc.resolver.ResolveIdentity(ctx, cookie)
	if err != nil {
		uc.metrics.RecordLogin("failure")
		slog.Info("cookie login rejected")
		return nil, err
	}

	uc.metrics.RecordLogin("success")
	slog.Info("cookie login succeeded", "user_id", identity.ID)
	return identity, nil
}

package handlers

import (
	"context"

	"github.com/buxzona/buxzona-backend/internal/domain"
	"github.com/buxzona/buxzona-backend/internal/usecase"
)

type fakePayments struct {
	payURL     string
	createErr  error
	webhookErr error
	lastInput  *usecase.CreatePaymentInput
}

func (f *fakePayments) CreatePayment(ctx context.Context, input *usecase.CreatePaymentInput) (string, error) {
	f.lastInput = input
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.payURL, nil
}

func (f *fakePayments) HandleWebhook(ctx context.Context, rawBody []byte) error {
	return f.webhookErr
}

type fakeVerification struct {
	result *usecase.VerifyResult
	err    error
}

func (f *fakeVerification) VerifyGamepass(ctx context.Context, gamepassURL string, expected int64) (*usecase.VerifyResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeAuth struct {
	identity *domain.UserIdentity
	err      error
}

func (f *fakeAuth) LoginWithCookie(ctx context.Context, cookie string) (*domain.UserIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

type fakePricing struct {
	table domain.PriceTable
}

func (f *fakePricing) GetPrices() domain.PriceTable { return f.table }

func (f *fakePricing) RefreshIfStale(ctx context.Context) {}

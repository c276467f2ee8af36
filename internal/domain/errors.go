package domain

import "errors"

var (
	ErrUpstreamUnavailable     = errors.New("upstream unavailable")
	ErrParse                   = errors.New("expected field missing or malformed")
	ErrRateUnavailable         = errors.New("exchange rate unavailable")
	ErrInvalidCredential       = errors.New("invalid session credential")
	ErrInvalidSignature        = errors.New("invalid webhook signature")
	ErrMissingSignature        = errors.New("missing webhook signature")
	ErrPaymentCreationFailed   = errors.New("payment creation failed")
	ErrConfigurationMissing    = errors.New("required configuration missing")
	ErrVerificationUnavailable = errors.New("could not verify listing price")
)

package setup

import (
	"fmt"
	"log/slog"

	"github.com/buxzona/buxzona-backend/internal/config"
	"github.com/buxzona/buxzona-backend/internal/domain"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/cryptomus"
	publisher "github.com/buxzona/buxzona-backend/internal/infrastructure/kafka"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/memstore"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/metrics"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/pricing"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/roblox"
	"github.com/buxzona/buxzona-backend/internal/infrastructure/telegram"
	"github.com/buxzona/buxzona-backend/internal/usecase"
)

type Dependencies struct {
	Config     *config.AppConfig
	Metrics    *metrics.ServiceMetrics
	OrderStore *memstore.MemoryOrderStore
	Usecases   *Usecases
}

type Usecases struct {
	Pricing      usecase.PricingUsecase
	Payment      usecase.PaymentUsecase
	Verification usecase.VerificationUsecase
	Auth         usecase.AuthUsecase
}

func InitializeDependencies(cfg *config.AppConfig) (*Dependencies, error) {
	m := metrics.NewServiceMetrics()

	store := memstore.NewMemoryOrderStore(cfg.OrderStore.TTL)

	cache := pricing.NewCache()
	fetcher := pricing.NewFetcher(cfg.Pricing)
	pricingUC := usecase.NewDefaultPricingUsecase(cache, fetcher, m, cfg.Pricing.Staleness)

	gateway := cryptomus.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.MerchantID, cfg.Gateway.APIKey)
	if !cfg.GatewayConfigured() {
		slog.Warn("gateway credentials not set, /create-payment will fail until configured")
	}

	notifier := telegram.NewNotifier(cfg.Telegram.APIURL, cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	var pub domain.EventPublisher = publisher.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		pub = publisher.NewDefaultKafkaPublisher(cfg.Kafka.Brokers)
		slog.Info("kafka order events enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	paymentUC, err := usecase.NewDefaultPaymentUsecase(gateway, store, notifier, pub, cfg.Kafka.Topic, m)
	if err != nil {
		return nil, fmt.Errorf("payment usecase: %w", err)
	}

	robloxClient := roblox.NewClient(cfg.Roblox)
	verificationUC := usecase.NewDefaultVerificationUsecase(robloxClient, m)
	authUC := usecase.NewDefaultAuthUsecase(robloxClient, m)

	return &Dependencies{
		Config:     cfg,
		Metrics:    m,
		OrderStore: store,
		Usecases: &Usecases{
			Pricing:      pricingUC,
			Payment:      paymentUC,
			Verification: verificationUC,
			Auth:         authUC,
		},
	}, nil
}

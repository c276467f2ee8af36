package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type AppConfig struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	LogConfig  `yaml:"log_config"`
	Pricing    `yaml:"pricing"`
	Gateway    `yaml:"gateway"`
	Roblox     `yaml:"roblox"`
	Telegram   `yaml:"telegram"`
	Kafka      `yaml:"kafka"`
	OrderStore `yaml:"order_store"`
}

type HTTPServer struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"PORT" env-default:"3000"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`
}

type Pricing struct {
	SourceURL     string        `yaml:"source_url" env:"PRICE_SOURCE_URL" env-default:"https://www.cheapbux.gg/"`
	PriceSelector string        `yaml:"price_selector" env:"PRICE_SELECTOR" env-default:".MuiTypography-root.MuiTypography-h4.css-wsw0vr"`
	RateAPIURL    string        `yaml:"rate_api_url" env:"RATE_API_URL" env-default:"https://open.er-api.com/v6/latest/USD"`
	UserAgent     string        `yaml:"user_agent" env:"PRICE_USER_AGENT" env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"`
	MarkupUSD     float64       `yaml:"markup_usd" env:"PRICE_MARKUP_USD" env-default:"1.70"`
	QuoteRobux    int64         `yaml:"quote_robux" env:"PRICE_QUOTE_ROBUX" env-default:"1000"`
	MinChargeUSD  float64       `yaml:"min_charge_usd" env:"PRICE_MIN_CHARGE_USD" env-default:"2.0"`
	MaxChargeUSD  float64       `yaml:"max_charge_usd" env:"PRICE_MAX_CHARGE_USD" env-default:"500.0"`
	Staleness     time.Duration `yaml:"staleness" env:"PRICE_STALENESS" env-default:"10m"`
}

type Gateway struct {
	BaseURL         string `yaml:"base_url" env:"GATEWAY_BASE_URL" env-default:"https://api.cryptomus.com"`
	MerchantID      string `yaml:"-" env:"GATEWAY_MERCHANT_ID"`
	APIKey          string `yaml:"-" env:"GATEWAY_API_KEY"`
	CallbackBaseURL string `yaml:"callback_base_url" env:"GATEWAY_CALLBACK_BASE_URL"`
}

type Roblox struct {
	UsersAPIURL      string `yaml:"users_api_url" env:"ROBLOX_USERS_API_URL" env-default:"https://users.roblox.com"`
	ThumbnailsAPIURL string `yaml:"thumbnails_api_url" env:"ROBLOX_THUMBNAILS_API_URL" env-default:"https://thumbnails.roblox.com"`
	GamepassSelector string `yaml:"gamepass_selector" env:"GAMEPASS_PRICE_SELECTOR" env-default:".text-robux-lg"`
}

type Telegram struct {
	BotToken string `yaml:"-" env:"NOTIFY_BOT_TOKEN"`
	ChatID   string `yaml:"-" env:"NOTIFY_CHAT_ID"`
	APIURL   string `yaml:"api_url" env:"TELEGRAM_API_URL" env-default:"https://api.telegram.org"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS"`
	Topic   string   `yaml:"topic" env:"KAFKA_ORDER_TOPIC" env-default:"order-events"`
}

type OrderStore struct {
	TTL           time.Duration `yaml:"ttl" env:"ORDER_TTL" env-default:"24h"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"ORDER_SWEEP_INTERVAL" env-default:"10m"`
}

func MustLoad() *AppConfig {
	var cfg AppConfig

	// Config file is optional; secrets always come from the environment.
	configPath := os.Getenv("CONFIG_PATH")
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			log.Fatalf("failed to find config file: %v\n", err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("failed to read config file: %v", err)
		}
		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read environment config: %v", err)
	}
	return &cfg
}

// GatewayConfigured reports whether payment creation can work at all.
// Missing credentials degrade /create-payment, they must not crash startup.
func (c *AppConfig) GatewayConfigured() bool {
	return c.Gateway.MerchantID != "" && c.Gateway.APIKey != ""
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Port    string `mapstructure:"PORT"`
	AppEnv  string `mapstructure:"APP_ENV"`
	DBURL   string `mapstructure:"DB_URL"`
	DBRetry int    `mapstructure:"DB_RETRY"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	KafkaBroker        string `mapstructure:"KAFKA_BROKER"`
	KafkaTopic         string `mapstructure:"KAFKA_TOPIC"`
	KafkaConsumerGroup string `mapstructure:"KAFKA_CONSUMER_GROUP"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	StripeSecretKey     string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`

	ResendAPIKey    string `mapstructure:"RESEND_API_KEY"`
	ResendFromEmail string `mapstructure:"RESEND_FROM_EMAIL"`

	DefaultCurrency       string `mapstructure:"DEFAULT_CURRENCY"`
	TaxRates              string `mapstructure:"TAX_RATES"`
	ShippingMode          string `mapstructure:"SHIPPING_MODE"`
	ShippingFlat          string `mapstructure:"SHIPPING_FLAT"`
	ShippingFreeThreshold string `mapstructure:"SHIPPING_FREE_THRESHOLD"`

	HTTPReadTimeout  time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	HTTPWriteTimeout time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`
	HTTPIdleTimeout  time.Duration `mapstructure:"HTTP_IDLE_TIMEOUT"`

	OutboxInterval  time.Duration `mapstructure:"OUTBOX_INTERVAL"`
	OutboxBatchSize int           `mapstructure:"OUTBOX_BATCH_SIZE"`
}

var keys = []string{
	"PORT", "APP_ENV", "DB_URL", "DB_RETRY",
	"REDIS_ADDR", "REDIS_PASSWORD",
	"KAFKA_BROKER", "KAFKA_TOPIC", "KAFKA_CONSUMER_GROUP",
	"JWT_SECRET",
	"STRIPE_SECRET_KEY", "STRIPE_WEBHOOK_SECRET",
	"RESEND_API_KEY", "RESEND_FROM_EMAIL",
	"DEFAULT_CURRENCY", "TAX_RATES", "SHIPPING_MODE", "SHIPPING_FLAT", "SHIPPING_FREE_THRESHOLD",
	"HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
	"OUTBOX_INTERVAL", "OUTBOX_BATCH_SIZE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_RETRY", 5)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("KAFKA_BROKER", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "order.events")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "cart-consumer-group")
	v.SetDefault("RESEND_FROM_EMAIL", "orders@voltride.shop")
	v.SetDefault("DEFAULT_CURRENCY", "USD")
	v.SetDefault("TAX_RATES", "USD:0.08,EUR:0.20")
	v.SetDefault("SHIPPING_MODE", "tiered")
	v.SetDefault("SHIPPING_FLAT", "25.00")
	v.SetDefault("SHIPPING_FREE_THRESHOLD", "500.00")
	v.SetDefault("HTTP_READ_TIMEOUT", 5*time.Second)
	v.SetDefault("HTTP_WRITE_TIMEOUT", 10*time.Second)
	v.SetDefault("HTTP_IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("OUTBOX_INTERVAL", 5*time.Second)
	v.SetDefault("OUTBOX_BATCH_SIZE", 10)
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.DefaultCurrency = strings.ToUpper(cfg.DefaultCurrency)
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ParseTaxRates parses "USD:0.08,EUR:0.20" into a currency->rate map.
func ParseTaxRates(raw string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cur, rate, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid tax rate entry %q", part)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(rate))
		if err != nil {
			return nil, fmt.Errorf("invalid tax rate for %s: %w", cur, err)
		}
		rates[strings.ToUpper(strings.TrimSpace(cur))] = d
	}
	return rates, nil
}

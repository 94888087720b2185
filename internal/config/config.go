package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	HTTPPort           string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64

	FeedURL     string
	FeedFormat  string
	FeedTimeout time.Duration
	SortLocale  string

	CurrencyCode         string
	CurrencySymbol       string
	NotificationDuration time.Duration

	StorageBackend string
	SQLitePath     string
	RedisAddr      string
	RedisPassword  string
	MongoURI       string
	MongoDBName    string

	// KafkaBrokers empty means carts are cleared in-process after checkout.
	KafkaBrokers []string

	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string
	PaymentTimeout     time.Duration

	LogLevel string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		MaxRequestBodySize: 1 << 20, // 1MB

		FeedURL:    getEnv("FEED_URL", ""),
		FeedFormat: getEnv("FEED_FORMAT", "csv"),
		SortLocale: getEnv("SORT_LOCALE", "en"),

		CurrencyCode:   strings.ToLower(getEnv("CURRENCY_CODE", "usd")),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendSQLite)),
		SQLitePath:     getEnv("SQLITE_PATH", "storefront.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB_NAME", "storefront"),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),

		StripeSecretKey:    getEnv("STRIPE_SECRET_KEY", ""),
		CheckoutSuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:8080/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CheckoutCancelURL:  getEnv("CHECKOUT_CANCEL_URL", "http://localhost:8080/cart"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	durations := []struct {
		key, def string
		dst      *time.Duration
	}{
		{"REQUEST_TIMEOUT", "30s", &cfg.RequestTimeout},
		{"SHUTDOWN_TIMEOUT", "10s", &cfg.ShutdownTimeout},
		{"FEED_TIMEOUT", "30s", &cfg.FeedTimeout},
		{"NOTIFICATION_DURATION", "3s", &cfg.NotificationDuration},
		{"PAYMENT_TIMEOUT", "10s", &cfg.PaymentTimeout},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}

	switch cfg.StorageBackend {
	case BackendSQLite, BackendRedis, BackendMongo, BackendMemory:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.StorageBackend)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

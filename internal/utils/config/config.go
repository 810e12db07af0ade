package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort           string
	DBPath            string
	GatewayURL        string
	GatewayTimeout    time.Duration
	RetryMaxAttempts  int
	RetryBaseBackoff  time.Duration
	OperationDeadline time.Duration
	IdempotencyKeyTTL time.Duration
	CleanupInterval   time.Duration
	GracefulTimeout   time.Duration
	SeedDemoData      bool
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		DBPath:            getEnv("DB_PATH", "payments.db"),
		GatewayURL:        getEnv("GATEWAY_URL", "https://api.payment-gateway.com/v1/payments"),
		GatewayTimeout:    parseDuration(getEnv("GATEWAY_TIMEOUT", "5s"), 5*time.Second),
		RetryMaxAttempts:  parseInt(getEnv("RETRY_MAX_ATTEMPTS", "3"), 3),
		RetryBaseBackoff:  parseDuration(getEnv("RETRY_BASE_BACKOFF", "1s"), time.Second),
		OperationDeadline: parseDuration(getEnv("OPERATION_DEADLINE", "30s"), 30*time.Second),
		IdempotencyKeyTTL: parseDuration(getEnv("IDEMPOTENCY_KEY_TTL", "24h"), 24*time.Hour),
		CleanupInterval:   parseDuration(getEnv("CLEANUP_INTERVAL", "1h"), time.Hour),
		GracefulTimeout:   parseDuration(getEnv("GRACEFUL_TIMEOUT", "5s"), 5*time.Second),
		SeedDemoData:      parseBool(getEnv("SEED_DEMO_DATA", "true"), true),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(value string, fallback bool) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

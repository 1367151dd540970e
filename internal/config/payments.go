package config

import (
	"os"
	"strconv"
	"time"
)

type PaymentConfig struct {
	Currency       string
	SubmitRetries  int
	ReceiptTTL     time.Duration
	TicketCacheTTL time.Duration
	ListLimit      int
}

func LoadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		Currency:       getEnv("PAYMENT_CURRENCY", "UZS"),
		SubmitRetries:  getEnvAsInt("PAYMENT_SUBMIT_RETRIES", 3),
		ReceiptTTL:     getEnvAsDuration("RECEIPT_TTL", 15*time.Minute),
		TicketCacheTTL: getEnvAsDuration("TICKET_CACHE_TTL", 5*time.Minute),
		ListLimit:      getEnvAsInt("TICKET_LIST_LIMIT", 200),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}

package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string

	// Interakt (WhatsApp) messaging
	InteraktBaseURL string
	InteraktAPIKey  string
	InteraktSecret  string
	CountryCode     string

	// Razorpay payment links
	RazorpayBaseURL       string
	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	// Operator notifications
	AdminPhone        string
	AdminEmail        string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// Payment-link velocity guard
	PaymentLinkMaxPerPhone int
	PaymentLinkWindow      time.Duration

	// Outbound provider calls
	ProviderTimeout time.Duration
	BookingImageURL string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		InteraktBaseURL: getEnv("INTERAKT_BASE_URL", "https://api.interakt.ai/v1/public/message/"),
		InteraktAPIKey:  getEnv("INTERAKT_API_KEY", ""),
		InteraktSecret:  getEnv("INTERAKT_SECRET", ""),
		CountryCode:     getEnv("COUNTRY_CODE", "+91"),

		RazorpayBaseURL:       getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
		RazorpayKeyID:         getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:     getEnv("RAZORPAY_KEY_SECRET", ""),
		RazorpayWebhookSecret: getEnv("RAZORPAY_WEBHOOK_SECRET", ""),

		AdminPhone:        getEnv("ADMIN_PHONE", ""),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Tripuva"),

		PaymentLinkMaxPerPhone: getEnvAsInt("PAYMENT_LINK_MAX_PER_PHONE", 5),
		PaymentLinkWindow:      getEnvAsDuration("PAYMENT_LINK_WINDOW", time.Hour),

		ProviderTimeout: getEnvAsDuration("PROVIDER_TIMEOUT", 10*time.Second),
		BookingImageURL: getEnv("BOOKING_IMAGE_URL", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

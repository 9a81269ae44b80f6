package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the API binary reads from the environment. Values
// are loaded once at startup and passed by reference; nothing here is mutated
// afterwards.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	StripeSecretKey   string
	RazorpayKeyID     string
	RazorpayKeySecret string
	Currency          string

	// Optional: order lifecycle events are published only when brokers are set.
	KafkaBrokers string

	ImageStoreURL string
	ImageStoreKey string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "4000"),
		MongoURI:          strings.TrimSpace(os.Getenv("MONGODB_URI")),
		MongoDB:           getEnv("MONGODB_DB", "e-commerce"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		Currency:          getEnv("CURRENCY", "inr"),
		KafkaBrokers:      os.Getenv("KAFKA_BROKERS"),
		ImageStoreURL:     os.Getenv("IMAGE_STORE_URL"),
		ImageStoreKey:     os.Getenv("IMAGE_STORE_KEY"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is not set")
	}
	if !strings.HasPrefix(cfg.MongoURI, "mongodb://") && !strings.HasPrefix(cfg.MongoURI, "mongodb+srv://") {
		return nil, fmt.Errorf("MONGODB_URI must start with mongodb:// or mongodb+srv://")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the service needs. It is loaded and
// validated once at startup so handlers never have to check for missing
// secrets per request.
type Config struct {
	Port string

	DatabaseURL string
	RedisURL    string

	RazorpayKeyID     string
	RazorpayKeySecret string

	ResendAPIKey string
	FromEmail    string
	AppURL       string

	JWTSecret string

	// Pricing knobs. Percentages are whole numbers (18 means 18%).
	TaxPercentage        float64
	ConvenienceFee       float64
	ChildPricePercentage float64

	// Booking policy.
	CancellationHours   int
	MinAdvanceHours     int
	MaxGuestsPerBooking int

	// Email dispatcher tuning.
	EmailQueueSize  int
	EmailMaxRetries int
}

// Load reads configuration from the environment (and a .env file when
// present) and validates required fields, failing fast on anything missing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        envOrDefault("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		FromEmail:    envOrDefault("FROM_EMAIL", "bookings@bhimsonsagropark.com"),
		AppURL:       envOrDefault("APP_URL", "https://bhimsonsagropark.com"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		TaxPercentage:        envFloatOrDefault("TAX_PERCENTAGE", 18),
		ConvenienceFee:       envFloatOrDefault("CONVENIENCE_FEE", 50),
		ChildPricePercentage: envFloatOrDefault("CHILD_PRICE_PERCENTAGE", 50),

		CancellationHours:   envIntOrDefault("CANCELLATION_HOURS", 48),
		MinAdvanceHours:     envIntOrDefault("MIN_ADVANCE_HOURS", 24),
		MaxGuestsPerBooking: envIntOrDefault("MAX_GUESTS_PER_BOOKING", 20),

		EmailQueueSize:  envIntOrDefault("EMAIL_QUEUE_SIZE", 64),
		EmailMaxRetries: envIntOrDefault("EMAIL_MAX_RETRIES", 3),
	}

	var missing []string
	for name, value := range map[string]string{
		"DATABASE_URL":        cfg.DatabaseURL,
		"RAZORPAY_KEY_ID":     cfg.RazorpayKeyID,
		"RAZORPAY_KEY_SECRET": cfg.RazorpayKeySecret,
		"RESEND_API_KEY":      cfg.ResendAPIKey,
		"JWT_SECRET":          cfg.JWTSecret,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envFloatOrDefault(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}


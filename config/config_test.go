package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/park")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("JWT_SECRET", "jwt_test_secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "bookings@bhimsonsagropark.com", cfg.FromEmail)
	assert.Equal(t, "https://bhimsonsagropark.com", cfg.AppURL)
	assert.Equal(t, 18.0, cfg.TaxPercentage)
	assert.Equal(t, 50.0, cfg.ConvenienceFee)
	assert.Equal(t, 50.0, cfg.ChildPricePercentage)
	assert.Equal(t, 48, cfg.CancellationHours)
	assert.Equal(t, 24, cfg.MinAdvanceHours)
	assert.Equal(t, 20, cfg.MaxGuestsPerBooking)
	assert.Equal(t, 64, cfg.EmailQueueSize)
	assert.Equal(t, 3, cfg.EmailMaxRetries)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("TAX_PERCENTAGE", "12")
	t.Setenv("CANCELLATION_HOURS", "72")
	t.Setenv("MAX_GUESTS_PER_BOOKING", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 12.0, cfg.TaxPercentage)
	assert.Equal(t, 72, cfg.CancellationHours)
	assert.Equal(t, 10, cfg.MaxGuestsPerBooking)
}

func TestLoadFailsOnMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RAZORPAY_KEY_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required configuration")
	assert.Contains(t, err.Error(), "RAZORPAY_KEY_SECRET")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.NotContains(t, err.Error(), "DATABASE_URL")
}

func TestLoadIgnoresUnparseableNumbers(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TAX_PERCENTAGE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 18.0, cfg.TaxPercentage)
}

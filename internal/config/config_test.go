package config_test

import (
	"testing"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DEFAULT_CURRENCY", "eur")
	t.Setenv("HTTP_READ_TIMEOUT", "7s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.Equal(t, 7*time.Second, cfg.HTTPReadTimeout)
	assert.Equal(t, "order.events", cfg.KafkaTopic)
	assert.False(t, cfg.IsProduction())
}

func TestParseTaxRates(t *testing.T) {
	rates, err := config.ParseTaxRates("usd:0.08, EUR:0.2")
	require.NoError(t, err)

	assert.True(t, rates["USD"].Equal(decimal.RequireFromString("0.08")))
	assert.True(t, rates["EUR"].Equal(decimal.RequireFromString("0.2")))

	_, err = config.ParseTaxRates("USD=0.08")
	assert.Error(t, err)
}

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crypto-exchange-bot/models"
)

func newConfigStore(t *testing.T) *ConfigStore {
	t.Helper()
	return NewConfigStore(t.TempDir(), zap.NewNop())
}

func TestConfigLoadCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	s := NewConfigStore(dir, zap.NewNop())

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.True(t, cfg.MinAmount.Equal(decimal.NewFromInt(1000)))
	require.NoError(t, cfg.Rates.Validate())
	require.NoError(t, cfg.Referral.Validate())

	// First use persists the default document.
	_, err = os.Stat(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
}

func TestConfigCorruptDocumentFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	s := NewConfigStore(dir, zap.NewNop())

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.True(t, cfg.MinAmount.Equal(decimal.NewFromInt(1000)))

	// The bad file must not be overwritten by the fallback.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestAdminMembershipIdempotent(t *testing.T) {
	s := newConfigStore(t)

	require.NoError(t, s.AddAdmin(7))
	require.NoError(t, s.AddAdmin(7))
	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, cfg.AdminIDs)

	ok, err := s.IsAdmin(7)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.RemoveAdmin(7))
	require.NoError(t, s.RemoveAdmin(7))
	ok, err = s.IsAdmin(7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOperatorMembership(t *testing.T) {
	s := newConfigStore(t)

	require.NoError(t, s.AddOperator(9))
	ok, err := s.IsOperator(9)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.RemoveOperator(9))
	ok, err = s.IsOperator(9)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetRatesRejectsNonPositive(t *testing.T) {
	s := newConfigStore(t)

	bad := models.RateSet{
		CryptoFiatBuy:  decimal.NewFromInt(80),
		CryptoFiatSell: decimal.NewFromInt(-1),
		FiatFiatBuy:    decimal.NewFromInt(73),
		FiatFiatSell:   decimal.NewFromInt(72),
	}
	err := s.SetRates(bad)
	var validation *models.ValidationError
	require.ErrorAs(t, err, &validation)

	// The stored rates are untouched.
	rates, err := s.Rates()
	require.NoError(t, err)
	assert.True(t, rates.CryptoFiatSell.Equal(decimal.NewFromInt(78)))
}

func TestSetMinAmount(t *testing.T) {
	s := newConfigStore(t)

	require.NoError(t, s.SetMinAmount(decimal.NewFromInt(2500)))
	got, err := s.MinAmount()
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(2500)))

	var validation *models.ValidationError
	require.ErrorAs(t, s.SetMinAmount(decimal.Zero), &validation)
}

func TestCurrencyUpsertByCode(t *testing.T) {
	s := newConfigStore(t)

	require.NoError(t, s.UpsertCryptoCurrency(models.Currency{Code: "BTC", Name: "Bitcoin", Enabled: true}))
	require.NoError(t, s.UpsertCryptoCurrency(models.Currency{Code: "BTC", Name: "Bitcoin Core", Enabled: false}))

	currencies, err := s.Currencies()
	require.NoError(t, err)

	var btc *models.Currency
	count := 0
	for i, c := range currencies.Crypto {
		if c.Code == "BTC" {
			btc = &currencies.Crypto[i]
			count++
		}
	}
	require.Equal(t, 1, count, "upsert must not duplicate a code")
	assert.Equal(t, "Bitcoin Core", btc.Name)
	assert.False(t, btc.Enabled)

	// Codes are case-sensitive: "btc" is a different currency.
	require.NoError(t, s.UpsertCryptoCurrency(models.Currency{Code: "btc", Name: "lowercase", Enabled: true}))
	currencies, err = s.Currencies()
	require.NoError(t, err)
	codes := make(map[string]bool)
	for _, c := range currencies.Crypto {
		codes[c.Code] = true
	}
	assert.True(t, codes["BTC"])
	assert.True(t, codes["btc"])
}

func TestReferralPercentageThroughStore(t *testing.T) {
	s := newConfigStore(t)

	pct, err := s.ReferralPercentage(11)
	require.NoError(t, err)
	assert.True(t, pct.Equal(decimal.RequireFromString("12.5")))

	pct, err = s.ReferralPercentage(0)
	require.NoError(t, err)
	assert.True(t, pct.Equal(models.DefaultReferralPercentage))
}

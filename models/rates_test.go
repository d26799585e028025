package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() RateSet {
	return RateSet{
		CryptoFiatBuy:  decimal.NewFromFloat(80),
		CryptoFiatSell: decimal.NewFromFloat(78),
		FiatFiatBuy:    decimal.NewFromFloat(73.5),
		FiatFiatSell:   decimal.NewFromFloat(72),
	}
}

func TestFiatValueOf(t *testing.T) {
	rates := testRates()
	one := decimal.NewFromInt(1)

	assert.True(t, rates.FiatValueOf(one, true).Equal(decimal.NewFromInt(5880)),
		"buy: 80 * 73.5 = 5880")
	assert.True(t, rates.FiatValueOf(one, false).Equal(decimal.NewFromInt(5616)),
		"sell: 78 * 72 = 5616")
}

func TestSpreadFor(t *testing.T) {
	rates := testRates()

	spread := rates.SpreadFor(decimal.NewFromInt(5880), true)
	assert.True(t, spread.Equal(decimal.NewFromInt(264)), "got %s", spread)

	// The same round trip from the sell side yields the same margin.
	spread = rates.SpreadFor(decimal.NewFromInt(5616), false)
	assert.True(t, spread.Equal(decimal.NewFromInt(264)), "got %s", spread)
}

func TestConversionRoundTrip(t *testing.T) {
	rates := testRates()
	tolerance := decimal.New(1, -10)

	for _, amount := range []float64{0.001, 0.5, 1, 2.75, 1000} {
		for _, isBuy := range []bool{true, false} {
			x := decimal.NewFromFloat(amount)
			back := rates.CryptoAmountFor(rates.FiatValueOf(x, isBuy), isBuy)
			diff := back.Sub(x).Abs()
			assert.True(t, diff.LessThan(tolerance),
				"round trip of %s (isBuy=%v) drifted by %s", x, isBuy, diff)
		}
	}
}

func TestRateSetValidate(t *testing.T) {
	require.NoError(t, testRates().Validate())

	bad := testRates()
	bad.FiatFiatSell = decimal.Zero
	err := bad.Validate()
	require.Error(t, err)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

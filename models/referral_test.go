package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentageFor(t *testing.T) {
	table := DefaultBotConfig().Referral

	cases := map[int]string{
		1:    "10",
		10:   "10",
		11:   "12.5",
		25:   "12.5",
		26:   "15",
		100:  "17.5",
		101:  "20",
		1000: "20",
	}
	for count, want := range cases {
		got := table.PercentageFor(count)
		assert.True(t, got.Equal(decimal.RequireFromString(want)),
			"count %d: want %s, got %s", count, want, got)
	}

	// Below the first tier the default floor applies.
	assert.True(t, table.PercentageFor(0).Equal(DefaultReferralPercentage))
	// As does an empty table.
	assert.True(t, ReferralTable{}.PercentageFor(42).Equal(DefaultReferralPercentage))
}

func TestReferralTableValidate(t *testing.T) {
	require.NoError(t, DefaultBotConfig().Referral.Validate())

	pct := decimal.NewFromInt(10)

	t.Run("overlap", func(t *testing.T) {
		table := ReferralTable{Levels: []ReferralTier{
			{Min: 1, Max: intPtr(10), Percentage: pct},
			{Min: 10, Max: intPtr(20), Percentage: pct},
		}}
		require.Error(t, table.Validate())
	})

	t.Run("gap", func(t *testing.T) {
		table := ReferralTable{Levels: []ReferralTier{
			{Min: 1, Max: intPtr(10), Percentage: pct},
			{Min: 12, Max: intPtr(20), Percentage: pct},
		}}
		require.Error(t, table.Validate())
	})

	t.Run("open-ended tier not last", func(t *testing.T) {
		table := ReferralTable{Levels: []ReferralTier{
			{Min: 1, Percentage: pct},
			{Min: 11, Max: intPtr(20), Percentage: pct},
		}}
		require.Error(t, table.Validate())
	})

	t.Run("max below min", func(t *testing.T) {
		table := ReferralTable{Levels: []ReferralTier{
			{Min: 10, Max: intPtr(5), Percentage: pct},
		}}
		require.Error(t, table.Validate())
	})

	t.Run("min below one", func(t *testing.T) {
		table := ReferralTable{Levels: []ReferralTier{
			{Min: 0, Max: intPtr(5), Percentage: pct},
		}}
		require.Error(t, table.Validate())
	})

	t.Run("negative percentage", func(t *testing.T) {
		table := ReferralTable{Levels: []ReferralTier{
			{Min: 1, Max: intPtr(5), Percentage: decimal.NewFromInt(-1)},
		}}
		require.Error(t, table.Validate())
	})
}

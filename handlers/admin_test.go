package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-exchange-bot/models"
)

func TestParseTierTable(t *testing.T) {
	table, err := parseTierTable("1-10 10\n11-25 12.5\n26+ 15")
	require.NoError(t, err)
	require.NoError(t, table.Validate())
	require.Len(t, table.Levels, 3)

	assert.Equal(t, 1, table.Levels[0].Min)
	require.NotNil(t, table.Levels[0].Max)
	assert.Equal(t, 10, *table.Levels[0].Max)
	assert.True(t, table.Levels[1].Percentage.Equal(decimal.RequireFromString("12.5")))
	assert.Nil(t, table.Levels[2].Max)

	assert.True(t, table.PercentageFor(26).Equal(decimal.NewFromInt(15)))
}

func TestParseTierTableRejectsGarbage(t *testing.T) {
	var validation *models.ValidationError
	for _, input := range []string{
		"",
		"1-10",
		"1-10 десять",
		"abc-10 5",
		"10 5",
	} {
		_, err := parseTierTable(input)
		assert.ErrorAs(t, err, &validation, "input %q", input)
	}
}

func TestParseTierTableCommaDecimals(t *testing.T) {
	table, err := parseTierTable("1-10 12,5\n11+ 15")
	require.NoError(t, err)
	assert.True(t, table.Levels[0].Percentage.Equal(decimal.RequireFromString("12.5")))
}

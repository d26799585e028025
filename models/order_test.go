package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "Z00001", FormatOrderNumber(1))
	assert.Equal(t, "Z00007", FormatOrderNumber(7))
	assert.Equal(t, "Z00100", FormatOrderNumber(100))
	assert.Equal(t, "Z12345", FormatOrderNumber(12345))
}

func TestNewOrder(t *testing.T) {
	o := NewOrder(3, 42, "alice", OrderBuy, decimal.NewFromInt(5000))

	assert.Equal(t, "Z00003", o.OrderNumber)
	assert.Equal(t, OrderActive, o.Status)
	assert.Nil(t, o.OperatorID)
	assert.Nil(t, o.OperatorUsername)
	assert.Nil(t, o.CompletedAt)
	assert.Nil(t, o.Spread)
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)
}

func TestValidateCommandName(t *testing.T) {
	assert.NoError(t, ValidateCommandName("help"))
	assert.Error(t, ValidateCommandName(""))
	assert.Error(t, ValidateCommandName("two words"))
	assert.Error(t, ValidateCommandName("/start"))
}

package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-exchange-bot/models"
)

func TestStateRegistry(t *testing.T) {
	r := newStateRegistry()

	_, ok := r.get(1)
	assert.False(t, ok)

	r.set(1, stateOrderAmount{OrderType: models.OrderBuy})
	got, ok := r.get(1)
	require.True(t, ok)
	st, ok := got.(stateOrderAmount)
	require.True(t, ok)
	assert.Equal(t, models.OrderBuy, st.OrderType)

	// Entering another wizard replaces the step.
	r.set(1, stateTakeOrder{})
	got, _ = r.get(1)
	_, ok = got.(stateTakeOrder)
	assert.True(t, ok)

	r.clear(1)
	_, ok = r.get(1)
	assert.False(t, ok)
}

func TestEveryButtonHasAnIntent(t *testing.T) {
	for _, btn := range []string{
		btnBuy, btnSell, btnRates, btnMyOrders, btnBalance, btnReferral, btnMainMenu,
		btnOperatorMenu, btnActiveOrders, btnTakeOrder, btnOrdersInWork, btnCompleteOrder,
		btnAdminMenu, btnSetRates, btnSetMinAmount, btnAddAdmin, btnRemoveAdmin,
		btnAddOperator, btnRemoveOperator, btnBlockUser, btnUnblockUser,
		btnAdjustBalance, btnSetDiscount, btnSetTiers, btnAddCrypto, btnAddFiat,
		btnAddCommand, btnRemoveCommand, btnStats,
	} {
		_, ok := parseIntent(btn)
		assert.True(t, ok, "button %q has no intent mapping", btn)
	}

	_, ok := parseIntent("произвольный текст")
	assert.False(t, ok)
}

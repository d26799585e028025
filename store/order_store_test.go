package store

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crypto-exchange-bot/models"
)

func newOrderStore(t *testing.T) *OrderStore {
	t.Helper()
	return NewOrderStore(t.TempDir(), zap.NewNop())
}

func TestSequentialIdentifiers(t *testing.T) {
	s := newOrderStore(t)
	amount := decimal.NewFromInt(5000)

	for i, orderType := range []models.OrderType{models.OrderBuy, models.OrderSell, models.OrderBuy} {
		o, err := s.Create(100, "alice", orderType, amount)
		require.NoError(t, err)
		assert.Equal(t, i+1, o.ID)
		assert.Equal(t, models.FormatOrderNumber(i+1), o.OrderNumber)
	}
}

func TestConcurrentCreatesYieldDistinctIdentifiers(t *testing.T) {
	s := newOrderStore(t)
	const n = 10

	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, err := s.Create(100, "alice", models.OrderBuy, decimal.NewFromInt(5000))
			if !assert.NoError(t, err) {
				return
			}
			ids <- o.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate identifier %d", id)
		seen[id] = true
	}
	for id := 1; id <= n; id++ {
		assert.True(t, seen[id], "identifier %d missing", id)
	}
}

func TestOrderLookupsAndFilters(t *testing.T) {
	s := newOrderStore(t)
	amount := decimal.NewFromInt(5000)

	first, err := s.Create(100, "alice", models.OrderBuy, amount)
	require.NoError(t, err)
	_, err = s.Create(200, "bob", models.OrderSell, amount)
	require.NoError(t, err)

	byNumber, err := s.GetByNumber("Z00001")
	require.NoError(t, err)
	assert.Equal(t, first.ID, byNumber.ID)

	_, err = s.GetByNumber("Z99999")
	assert.ErrorIs(t, err, models.ErrNotFound)

	operatorID := int64(300)
	_, err = s.Update(first.ID, func(o *models.Order) error {
		o.Status = models.OrderInProgress
		o.OperatorID = &operatorID
		return nil
	})
	require.NoError(t, err)

	active, err := s.ByStatus(models.OrderActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, int64(200), active[0].UserID)

	mine, err := s.ByOperator(operatorID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	owned, err := s.ByOwner(100)
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestUpdateStampsUpdatedAt(t *testing.T) {
	s := newOrderStore(t)

	o, err := s.Create(100, "alice", models.OrderBuy, decimal.NewFromInt(5000))
	require.NoError(t, err)

	updated, err := s.Update(o.ID, func(o *models.Order) error {
		o.Status = models.OrderInProgress
		return nil
	})
	require.NoError(t, err)
	assert.False(t, updated.UpdatedAt.Before(o.UpdatedAt))
}

func TestUpdateNotFound(t *testing.T) {
	s := newOrderStore(t)
	_, err := s.Update(42, func(o *models.Order) error { return nil })
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMutateErrorLeavesOrderUnchanged(t *testing.T) {
	s := newOrderStore(t)

	o, err := s.Create(100, "alice", models.OrderBuy, decimal.NewFromInt(5000))
	require.NoError(t, err)

	_, err = s.Update(o.ID, func(o *models.Order) error {
		return &models.InvalidStateError{OrderID: o.ID, Status: o.Status}
	})
	var state *models.InvalidStateError
	require.ErrorAs(t, err, &state)

	reloaded, err := s.GetByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderActive, reloaded.Status)
}

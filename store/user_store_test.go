package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crypto-exchange-bot/models"
)

func newUserStore(t *testing.T) *UserStore {
	t.Helper()
	return NewUserStore(t.TempDir(), zap.NewNop())
}

func TestUserUpsertAndGet(t *testing.T) {
	s := newUserStore(t)

	_, err := s.GetByID(42)
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, s.Upsert(models.NewUser(42, "alice")))
	u, err := s.GetByID(42)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.True(t, u.Balance.IsZero())
}

func TestUserByRole(t *testing.T) {
	s := newUserStore(t)

	alice := models.NewUser(1, "alice")
	bob := models.NewUser(2, "bob")
	bob.Role = models.RoleOperator
	require.NoError(t, s.Upsert(alice))
	require.NoError(t, s.Upsert(bob))

	operators, err := s.ByRole(models.RoleOperator)
	require.NoError(t, err)
	require.Len(t, operators, 1)
	assert.Equal(t, int64(2), operators[0].UserID)
}

func TestUserUpdate(t *testing.T) {
	s := newUserStore(t)
	require.NoError(t, s.Upsert(models.NewUser(1, "alice")))

	updated, err := s.Update(1, func(u *models.User) error {
		u.Balance = u.Balance.Add(decimal.NewFromInt(100))
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(100)))

	// Read-your-writes: a fresh read sees the update.
	reloaded, err := s.GetByID(1)
	require.NoError(t, err)
	assert.True(t, reloaded.Balance.Equal(decimal.NewFromInt(100)))

	_, err = s.Update(99, func(u *models.User) error { return nil })
	assert.ErrorIs(t, err, models.ErrNotFound)
}

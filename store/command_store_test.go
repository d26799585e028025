package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crypto-exchange-bot/models"
)

func newCommandStore(t *testing.T) *CommandStore {
	t.Helper()
	return NewCommandStore(t.TempDir(), zap.NewNop())
}

func TestCommandUpsertGetRemove(t *testing.T) {
	s := newCommandStore(t)

	require.NoError(t, s.Upsert(&models.CustomCommand{
		Command:  "контакты",
		Response: "Пишите в поддержку.",
		Buttons:  []string{"Поддержка"},
	}))

	cmd, err := s.Get("контакты")
	require.NoError(t, err)
	assert.Equal(t, "Пишите в поддержку.", cmd.Response)

	// Same name replaces the entry instead of duplicating it.
	require.NoError(t, s.Upsert(&models.CustomCommand{Command: "контакты", Response: "Новый текст"}))
	all, err := s.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Новый текст", all[0].Response)

	require.NoError(t, s.Remove("контакты"))
	_, err = s.Get("контакты")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, s.Remove("контакты"), models.ErrNotFound)
}

func TestCommandNameValidation(t *testing.T) {
	s := newCommandStore(t)

	var validation *models.ValidationError
	assert.ErrorAs(t, s.Upsert(&models.CustomCommand{Command: "/help"}), &validation)
	assert.ErrorAs(t, s.Upsert(&models.CustomCommand{Command: "two words"}), &validation)
	assert.ErrorAs(t, s.Upsert(&models.CustomCommand{Command: ""}), &validation)
}

package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupData(t *testing.T) {
	dataDir := t.TempDir()
	backupDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "users.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "orders.json"), []byte(`{"orders":[],"next_id":1}`), 0o644))
	// config.json and commands.json intentionally missing.

	require.NoError(t, BackupData(dataDir, backupDir))

	dirs, err := filepath.Glob(filepath.Join(backupDir, "backup_*"))
	require.NoError(t, err)
	require.Len(t, dirs, 1)

	data, err := os.ReadFile(filepath.Join(dirs[0], "orders.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"orders":[],"next_id":1}`, string(data))

	_, err = os.Stat(filepath.Join(dirs[0], "config.json"))
	assert.True(t, os.IsNotExist(err), "missing collections are skipped")
}

func TestCleanOldBackups(t *testing.T) {
	backupDir := t.TempDir()

	old := filepath.Join(backupDir, "backup_20200101_030000")
	require.NoError(t, os.MkdirAll(old, 0o755))
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	fresh := filepath.Join(backupDir, "backup_20990101_030000")
	require.NoError(t, os.MkdirAll(fresh, 0o755))

	require.NoError(t, CleanOldBackups(backupDir, 24*time.Hour))

	_, err := os.Stat(old)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}

// Package services holds the scheduled maintenance jobs.
package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// collections are the document files snapshotted on every backup run.
var collections = []string{"config.json", "users.json", "orders.json", "commands.json"}

// ScheduleBackups registers the periodic snapshot job on c.
func ScheduleBackups(c *cron.Cron, dataDir, backupDir, schedule string, retention time.Duration, log *zap.Logger) error {
	_, err := c.AddFunc(schedule, func() {
		if err := BackupData(dataDir, backupDir); err != nil {
			log.Error("data backup failed", zap.Error(err))
			return
		}
		if err := CleanOldBackups(backupDir, retention); err != nil {
			log.Error("backup cleanup failed", zap.Error(err))
			return
		}
		log.Info("data backup completed", zap.String("dir", backupDir))
	})
	return err
}

// BackupData copies the JSON documents into a timestamped subdirectory of
// backupDir. Missing collections are skipped; the bot may not have created
// them all yet.
func BackupData(dataDir, backupDir string) error {
	dir := filepath.Join(backupDir, "backup_"+time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, name := range collections {
		src := filepath.Join(dataDir, name)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := copyFile(src, filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("backup %s: %w", name, err)
		}
	}
	return nil
}

// CleanOldBackups removes snapshot directories older than retention.
func CleanOldBackups(backupDir string, retention time.Duration) error {
	dirs, err := filepath.Glob(filepath.Join(backupDir, "backup_*"))
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-retention)
	for _, d := range dirs {
		info, err := os.Stat(d)
		if err != nil {
			continue
		}
		if info.IsDir() && info.ModTime().Before(cutoff) {
			_ = os.RemoveAll(d)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type TelegramConfig struct {
	Token        string
	Username     string // bot username, used for referral links
	Debug        bool
	SuperAdminID int64 // always treated as admin, regardless of the stored admin list
	MainChatID   int64 // group chat receiving completion notices with spread
}

type StorageConfig struct {
	DataDir string
}

type BackupConfig struct {
	Dir           string
	Schedule      string // cron spec
	RetentionDays int
}

type Config struct {
	Telegram TelegramConfig
	Storage  StorageConfig
	Backup   BackupConfig
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.SetDefault("storage.datadir", "data")
	viper.SetDefault("backup.dir", "backups")
	viper.SetDefault("backup.schedule", "0 3 * * *")
	viper.SetDefault("backup.retentiondays", 31)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram.token is not set")
	}
	if cfg.Telegram.SuperAdminID == 0 {
		return nil, fmt.Errorf("telegram.superadminid is not set")
	}
	return &cfg, nil
}

package main

import (
	"log"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"crypto-exchange-bot/config"
	"crypto-exchange-bot/exchange"
	"crypto-exchange-bot/handlers"
	"crypto-exchange-bot/logger"
	"crypto-exchange-bot/services"
	"crypto-exchange-bot/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zl, err := logger.Init(cfg.Telegram.Debug)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer zl.Sync()

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		zl.Fatal("failed to create data directory", zap.String("dir", cfg.Storage.DataDir), zap.Error(err))
	}

	configStore := store.NewConfigStore(cfg.Storage.DataDir, zl)
	userStore := store.NewUserStore(cfg.Storage.DataDir, zl)
	orderStore := store.NewOrderStore(cfg.Storage.DataDir, zl)
	commandStore := store.NewCommandStore(cfg.Storage.DataDir, zl)

	engine := exchange.NewEngine(configStore, userStore, orderStore, zl)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		zl.Fatal("failed to create Telegram bot", zap.Error(err))
	}
	api.Debug = cfg.Telegram.Debug
	zl.Info("authorized", zap.String("account", api.Self.UserName))

	c := cron.New()
	retention := time.Duration(cfg.Backup.RetentionDays) * 24 * time.Hour
	if err := services.ScheduleBackups(c, cfg.Storage.DataDir, cfg.Backup.Dir, cfg.Backup.Schedule, retention, zl); err != nil {
		zl.Fatal("failed to schedule backups", zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	bot := handlers.NewBot(api, cfg, engine, configStore, userStore, orderStore, commandStore, zl)
	bot.Run()
}

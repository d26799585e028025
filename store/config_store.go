package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crypto-exchange-bot/models"
)

const configCollection = "config"

// ConfigStore owns the business configuration document. Every mutator runs a
// full load-mutate-save cycle under the store's mutex; there is no
// finer-grained versioning, last write wins.
type ConfigStore struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

func NewConfigStore(dataDir string, log *zap.Logger) *ConfigStore {
	return &ConfigStore{path: filepath.Join(dataDir, "config.json"), log: log}
}

// Load returns the persisted configuration, creating the default document on
// first use.
func (s *ConfigStore) Load() (*models.BotConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load assumes s.mu is held. Unmarshalling over the default keeps fields
// absent from older documents at their default values.
func (s *ConfigStore) load() (*models.BotConfig, error) {
	cfg := models.DefaultBotConfig()
	err := readDocument(s.path, cfg)
	if errors.Is(err, os.ErrNotExist) {
		if werr := writeDocument(s.path, cfg); werr != nil {
			return nil, &models.PersistenceError{Collection: configCollection, Op: "init", Err: werr}
		}
		s.log.Info("configuration file not found, created default", zap.String("path", s.path))
		return cfg, nil
	}
	if err != nil {
		// Corrupt document: serve the default for this call and leave the
		// bad file on disk for inspection.
		s.log.Error("config document unreadable, using defaults",
			zap.String("path", s.path), zap.Error(err))
		return models.DefaultBotConfig(), nil
	}
	return cfg, nil
}

func (s *ConfigStore) update(op string, mutate func(*models.BotConfig) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, err := s.load()
	if err != nil {
		return err
	}
	if err := mutate(cfg); err != nil {
		return err
	}
	if err := writeDocument(s.path, cfg); err != nil {
		return &models.PersistenceError{Collection: configCollection, Op: op, Err: err}
	}
	return nil
}

// Rates returns the current rate set.
func (s *ConfigStore) Rates() (models.RateSet, error) {
	cfg, err := s.Load()
	if err != nil {
		return models.RateSet{}, err
	}
	return cfg.Rates, nil
}

// SetRates replaces the rate set wholesale.
func (s *ConfigStore) SetRates(rates models.RateSet) error {
	if err := rates.Validate(); err != nil {
		return err
	}
	return s.update("set_rates", func(cfg *models.BotConfig) error {
		cfg.Rates = rates
		return nil
	})
}

func (s *ConfigStore) MinAmount() (decimal.Decimal, error) {
	cfg, err := s.Load()
	if err != nil {
		return decimal.Zero, err
	}
	return cfg.MinAmount, nil
}

func (s *ConfigStore) SetMinAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return models.NewValidationError("minimum amount must be positive, got %s", amount)
	}
	return s.update("set_min_amount", func(cfg *models.BotConfig) error {
		cfg.MinAmount = amount
		return nil
	})
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// AddAdmin grants the admin role in the membership list. Adding a present id
// is a no-op that still succeeds.
func (s *ConfigStore) AddAdmin(id int64) error {
	return s.update("add_admin", func(cfg *models.BotConfig) error {
		if !containsID(cfg.AdminIDs, id) {
			cfg.AdminIDs = append(cfg.AdminIDs, id)
		}
		return nil
	})
}

func (s *ConfigStore) RemoveAdmin(id int64) error {
	return s.update("remove_admin", func(cfg *models.BotConfig) error {
		cfg.AdminIDs = removeID(cfg.AdminIDs, id)
		return nil
	})
}

func (s *ConfigStore) IsAdmin(id int64) (bool, error) {
	cfg, err := s.Load()
	if err != nil {
		return false, err
	}
	return containsID(cfg.AdminIDs, id), nil
}

func (s *ConfigStore) AddOperator(id int64) error {
	return s.update("add_operator", func(cfg *models.BotConfig) error {
		if !containsID(cfg.OperatorIDs, id) {
			cfg.OperatorIDs = append(cfg.OperatorIDs, id)
		}
		return nil
	})
}

func (s *ConfigStore) RemoveOperator(id int64) error {
	return s.update("remove_operator", func(cfg *models.BotConfig) error {
		cfg.OperatorIDs = removeID(cfg.OperatorIDs, id)
		return nil
	})
}

func (s *ConfigStore) IsOperator(id int64) (bool, error) {
	cfg, err := s.Load()
	if err != nil {
		return false, err
	}
	return containsID(cfg.OperatorIDs, id), nil
}

func (s *ConfigStore) ReferralTable() (models.ReferralTable, error) {
	cfg, err := s.Load()
	if err != nil {
		return models.ReferralTable{}, err
	}
	return cfg.Referral, nil
}

func (s *ConfigStore) SetReferralTable(table models.ReferralTable) error {
	if err := table.Validate(); err != nil {
		return err
	}
	return s.update("set_referral_table", func(cfg *models.BotConfig) error {
		cfg.Referral = table
		return nil
	})
}

// ReferralPercentage resolves a referral count against the current tiers.
func (s *ConfigStore) ReferralPercentage(count int) (decimal.Decimal, error) {
	table, err := s.ReferralTable()
	if err != nil {
		return decimal.Zero, err
	}
	return table.PercentageFor(count), nil
}

func (s *ConfigStore) Currencies() (models.Currencies, error) {
	cfg, err := s.Load()
	if err != nil {
		return models.Currencies{}, err
	}
	return cfg.Currencies, nil
}

// UpsertCryptoCurrency adds or updates a crypto currency by code.
func (s *ConfigStore) UpsertCryptoCurrency(cur models.Currency) error {
	if cur.Code == "" {
		return models.NewValidationError("currency code is empty")
	}
	return s.update("upsert_crypto_currency", func(cfg *models.BotConfig) error {
		cfg.Currencies.UpsertCrypto(cur)
		return nil
	})
}

// UpsertFiatCurrency adds or updates a fiat currency by code.
func (s *ConfigStore) UpsertFiatCurrency(cur models.Currency) error {
	if cur.Code == "" {
		return models.NewValidationError("currency code is empty")
	}
	return s.update("upsert_fiat_currency", func(cfg *models.BotConfig) error {
		cfg.Currencies.UpsertFiat(cur)
		return nil
	})
}

package models

import "github.com/shopspring/decimal"

// Currency is one entry in the configured crypto or fiat currency lists,
// unique by case-sensitive code.
type Currency struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol,omitempty"`
	Enabled bool   `json:"enabled"`
}

type Currencies struct {
	Crypto []Currency `json:"crypto"`
	Fiat   []Currency `json:"fiat"`
}

func upsertCurrency(list []Currency, cur Currency) []Currency {
	for i, c := range list {
		if c.Code == cur.Code {
			list[i] = cur
			return list
		}
	}
	return append(list, cur)
}

func enabledCurrencies(list []Currency) []Currency {
	var out []Currency
	for _, c := range list {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}

// UpsertCrypto adds or updates a crypto currency by code.
func (cs *Currencies) UpsertCrypto(cur Currency) { cs.Crypto = upsertCurrency(cs.Crypto, cur) }

// UpsertFiat adds or updates a fiat currency by code.
func (cs *Currencies) UpsertFiat(cur Currency) { cs.Fiat = upsertCurrency(cs.Fiat, cur) }

func (cs Currencies) EnabledCrypto() []Currency { return enabledCurrencies(cs.Crypto) }
func (cs Currencies) EnabledFiat() []Currency   { return enabledCurrencies(cs.Fiat) }

// BotConfig is the mutable business configuration document. It is persisted
// as a single JSON file and overwritten wholesale on every change.
type BotConfig struct {
	AdminIDs    []int64         `json:"admin_ids"`
	OperatorIDs []int64         `json:"operator_ids"`
	Rates       RateSet         `json:"rates"`
	MinAmount   decimal.Decimal `json:"min_amount"`
	Referral    ReferralTable   `json:"referral"`
	Currencies  Currencies      `json:"currencies"`
}

func intPtr(v int) *int { return &v }

// DefaultBotConfig is the document synthesized on first run.
func DefaultBotConfig() *BotConfig {
	return &BotConfig{
		AdminIDs:    []int64{},
		OperatorIDs: []int64{},
		Rates: RateSet{
			CryptoFiatBuy:  decimal.NewFromFloat(80.0),
			CryptoFiatSell: decimal.NewFromFloat(78.0),
			FiatFiatBuy:    decimal.NewFromFloat(73.5),
			FiatFiatSell:   decimal.NewFromFloat(72.0),
		},
		MinAmount: decimal.NewFromFloat(1000.0),
		Referral: ReferralTable{
			Levels: []ReferralTier{
				{Min: 1, Max: intPtr(10), Percentage: decimal.NewFromFloat(10.0)},
				{Min: 11, Max: intPtr(25), Percentage: decimal.NewFromFloat(12.5)},
				{Min: 26, Max: intPtr(50), Percentage: decimal.NewFromFloat(15.0)},
				{Min: 51, Max: intPtr(100), Percentage: decimal.NewFromFloat(17.5)},
				{Min: 101, Max: nil, Percentage: decimal.NewFromFloat(20.0)},
			},
		},
		Currencies: Currencies{
			Crypto: []Currency{
				{Code: "LTC", Name: "Litecoin", Enabled: true},
			},
			Fiat: []Currency{
				{Code: "USD", Name: "Доллар США", Symbol: "$", Enabled: true},
				{Code: "RUB", Name: "Российский рубль", Symbol: "₽", Enabled: true},
			},
		},
	}
}

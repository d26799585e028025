package models

import "github.com/shopspring/decimal"

// RateSet is the four-rate model the business trades on: the crypto price in
// the bridge fiat currency (USD) and the bridge rate into the local fiat
// currency, each split into buy and sell sides. Only the current set exists;
// admins overwrite it wholesale.
type RateSet struct {
	CryptoFiatBuy  decimal.Decimal `json:"crypto_fiat_buy"`
	CryptoFiatSell decimal.Decimal `json:"crypto_fiat_sell"`
	FiatFiatBuy    decimal.Decimal `json:"fiat_fiat_buy"`
	FiatFiatSell   decimal.Decimal `json:"fiat_fiat_sell"`
}

func (r RateSet) Validate() error {
	for _, rate := range []decimal.Decimal{r.CryptoFiatBuy, r.CryptoFiatSell, r.FiatFiatBuy, r.FiatFiatSell} {
		if !rate.IsPositive() {
			return NewValidationError("all rates must be positive, got %s", rate)
		}
	}
	return nil
}

// effectiveRate is the crypto price in local fiat for one direction.
func (r RateSet) effectiveRate(isBuy bool) decimal.Decimal {
	if isBuy {
		return r.CryptoFiatBuy.Mul(r.FiatFiatBuy)
	}
	return r.CryptoFiatSell.Mul(r.FiatFiatSell)
}

// FiatValueOf prices a crypto amount in the local fiat currency.
func (r RateSet) FiatValueOf(cryptoAmount decimal.Decimal, isBuy bool) decimal.Decimal {
	return cryptoAmount.Mul(r.effectiveRate(isBuy))
}

// CryptoAmountFor converts a local-fiat amount into the crypto amount it
// buys or sells at the direction's rate.
func (r RateSet) CryptoAmountFor(fiatAmount decimal.Decimal, isBuy bool) decimal.Decimal {
	return fiatAmount.Div(r.effectiveRate(isBuy))
}

// SpreadFor is the margin realized on a round trip: the fiat amount is
// converted to crypto at the requested direction's rate, repriced at the
// opposite direction's rate, and the absolute difference is the profit.
func (r RateSet) SpreadFor(fiatAmount decimal.Decimal, isBuy bool) decimal.Decimal {
	cryptoAmount := r.CryptoAmountFor(fiatAmount, isBuy)
	opposite := r.FiatValueOf(cryptoAmount, !isBuy)
	return fiatAmount.Sub(opposite).Abs()
}

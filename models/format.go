package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney rounds a monetary value to two decimal places for display.
// Internal values keep full precision; rounding happens only here.
func FormatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// FormatDateTime renders a timestamp the way operators read it in chat.
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

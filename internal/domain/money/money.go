// Package money implements integer minor-unit arithmetic.
//
// All amounts are Cents (the smallest currency unit). No floating point is used anywhere
// in the engine; every percentage or rounding decision goes through this package so there
// is a single rounding policy: round half up on the exact rational value.
package money

import (
	"math"
	"strings"

	"project_billing/internal/domain/errs"

	"github.com/shopspring/decimal"
)

// Cents is an amount in minor currency units.
type Cents int64

// Currency is an ISO 4217 three-letter code, always uppercase.
type Currency string

// DefaultCurrency applies when a business has no configured currency.
const DefaultCurrency Currency = "EUR"

// DefaultDepositPercent is the deposit share applied when none is configured.
const DefaultDepositPercent = 30

// ParseCurrency normalizes and validates a currency code.
func ParseCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", errs.Validation("currency", "must be a 3-letter code")
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", errs.Validation("currency", "must be a 3-letter code")
		}
	}
	return Currency(code), nil
}

// ValidatePercent checks a deposit percent is within 0..100.
func ValidatePercent(percent int) error {
	if percent < 0 || percent > 100 {
		return errs.Validation("deposit_percent", "must be between 0 and 100")
	}
	return nil
}

// PercentOf returns round_half_up(total * percent / 100).
//
// total is split as q*100 + r so the multiplication never leaves int64 for any
// percent in 0..100.
func PercentOf(total Cents, percent int) (Cents, error) {
	if total < 0 {
		return 0, errs.Validation("total_cents", "must not be negative")
	}
	if err := ValidatePercent(percent); err != nil {
		return 0, err
	}
	q, r := int64(total)/100, int64(total)%100
	p := int64(percent)
	return Cents(q*p + (r*p+50)/100), nil
}

// SubtractClamped returns max(0, a-b).
func SubtractClamped(a, b Cents) Cents {
	if b >= a {
		return 0
	}
	return a - b
}

// Sum adds non-negative amounts, rejecting negatives and overflow.
func Sum(values ...Cents) (Cents, error) {
	var total Cents
	for _, v := range values {
		if v < 0 {
			return 0, errs.Validation("amount_cents", "must not be negative")
		}
		if total > Cents(math.MaxInt64)-v {
			return 0, errs.Validation("amount_cents", "sum overflows")
		}
		total += v
	}
	return total, nil
}

// Multiply returns unit * qty for a non-negative unit price and quantity.
func Multiply(unit Cents, qty int) (Cents, error) {
	if unit < 0 {
		return 0, errs.Validation("unit_price_cents", "must not be negative")
	}
	if qty < 0 {
		return 0, errs.Validation("quantity", "must not be negative")
	}
	if qty != 0 && unit > Cents(math.MaxInt64/int64(qty)) {
		return 0, errs.Validation("total_cents", "line total overflows")
	}
	return unit * Cents(qty), nil
}

// Split returns the deposit and balance of total at percent; deposit + balance == total.
func Split(total Cents, percent int) (deposit, balance Cents, err error) {
	deposit, err = PercentOf(total, percent)
	if err != nil {
		return 0, 0, err
	}
	return deposit, total - deposit, nil
}

// Decimals returns the number of minor-unit digits of a currency.
func Decimals(c Currency) int32 {
	switch strings.ToUpper(string(c)) {
	case "JPY", "KRW", "VND", "CLP", "PYG", "IDR", "XOF", "XAF":
		return 0
	default:
		return 2
	}
}

// Major converts an amount to major units exactly (e.g. 4900 EUR cents -> 49.00).
func Major(amount Cents, c Currency) decimal.Decimal {
	return decimal.New(int64(amount), -Decimals(c))
}

// Format renders an amount in major units with the currency's digits, e.g. "49.00".
func Format(amount Cents, c Currency) string {
	return Major(amount, c).StringFixed(Decimals(c))
}

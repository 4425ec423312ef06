package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyCode prefixes every displayed amount.  The box office sells in
// Philippine pesos.
const CurrencyCode = "PHP"

// ErrInvalidAmount is returned when a string cannot be read as a currency
// amount with at most two decimal places.
var ErrInvalidAmount = errors.New("invalid amount")

// Cents is an amount of money in minor currency units.  All prices, totals
// and tenders are carried as Cents so sums are exact to the cent.
type Cents int64

// Decimal returns the amount in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats the amount with exactly two decimals, e.g. "1400.00".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Display formats the amount with the currency prefix, e.g. "PHP 1400.00".
func (c Cents) Display() string {
	return CurrencyCode + " " + c.String()
}

// ParseAmount reads an amount in major units ("450", "80.5", "1400.00").
// An optional leading currency code is accepted.  More than two decimal
// places is rejected rather than rounded.
func ParseAmount(s string) (Cents, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, CurrencyCode))
	if raw == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	scaled := d.Shift(2)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("%w: %q has more than two decimals", ErrInvalidAmount, s)
	}
	return Cents(scaled.IntPart()), nil
}

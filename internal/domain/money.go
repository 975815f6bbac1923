package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount in minor units (cents). All aggregation happens
// in integer cents so that summing many small transactions cannot drift;
// conversion to display units happens only at output.
type Money int64

// MoneyFromFloat converts a display-unit amount (dollars) to Money,
// rounding to the nearest cent.
func MoneyFromFloat(amount float64) Money {
	d := decimal.NewFromFloat(amount).Round(2)
	return Money(d.Mul(decimal.NewFromInt(100)).IntPart())
}

// ParseMoney parses a display-unit amount string ("1234.50") into Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("ParseMoney: %w", err)
	}
	return Money(d.Round(2).Mul(decimal.NewFromInt(100)).IntPart()), nil
}

// MoneyFromRat converts a BigQuery NUMERIC value to Money. A nil rat maps to 0.
func MoneyFromRat(r *big.Rat) Money {
	if r == nil {
		return 0
	}
	cents := new(big.Rat).Mul(r, big.NewRat(100, 1))
	f, _ := cents.Float64()
	if f >= 0 {
		return Money(f + 0.5)
	}
	return Money(f - 0.5)
}

// Rat returns the amount as a big.Rat in display units, for NUMERIC columns.
func (m Money) Rat() *big.Rat {
	return big.NewRat(int64(m), 100)
}

// Decimal returns the amount in display units as a decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// Float64 returns the amount in display units. Use only for derived
// statistics and rendering, never for summation.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// DivRound divides by n, rounding half away from zero to the nearest cent.
func (m Money) DivRound(n int64) Money {
	half := Money(n / 2)
	if m < 0 {
		return (m - half) / Money(n)
	}
	return (m + half) / Money(n)
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// String formats the amount in display units with two decimals, e.g. "1234.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as a JSON number in display units.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number (or quoted number) in display units.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

package kernel

import (
	"fmt"

	"ordercore/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount with two fractional digits of display precision.
// Arithmetic is exact; totals are never accumulated in floating point.
// The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// Zero is the additive identity used as the total of an empty cart.
var Zero = Money{}

// NewMoney rejects negative amounts.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount}, nil
}

// MustMoney parses a decimal literal and panics on error; intended for tests and fixtures.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	m, err := NewMoney(d)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Mul multiplies by a line quantity. Callers guarantee quantity >= 0.
func (m Money) Mul(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}

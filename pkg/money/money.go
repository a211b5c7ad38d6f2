package money

import (
	"errors"
	"fmt"
	"math"
)

// Cents is a monetary amount in integer minor units. It is never constructed
// from raw arithmetic directly; every operation routes its result through
// validation so overflow and non-finite values surface as ErrInvalidAmount
// instead of propagating silently.
type Cents int64

// MaxAmount is the largest magnitude a Cents value may hold. It matches the
// largest integer float64 can represent exactly, so scaling by float64
// multipliers (frequencies, tax rates, FX rates) never loses integer precision.
const MaxAmount = int64(1)<<53 - 1

var ErrInvalidAmount = errors.New("invalid monetary amount")

// New validates an integer cents value.
func New(v int64) (Cents, error) {
	if v > MaxAmount || v < -MaxAmount {
		return 0, fmt.Errorf("amount %d is out of range: %w", v, ErrInvalidAmount)
	}
	return Cents(v), nil
}

// NewNonNegative validates an integer cents value and additionally rejects
// negative amounts. Used for incomes and expense amounts; variances and
// deltas may be negative and use New instead.
func NewNonNegative(v int64) (Cents, error) {
	if v < 0 {
		return 0, fmt.Errorf("amount %d is negative: %w", v, ErrInvalidAmount)
	}
	return New(v)
}

// FromFloat validates a float64 that is expected to already be a whole number
// of cents. NaN, infinities and fractional values are rejected.
func FromFloat(v float64) (Cents, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("amount is not finite: %w", ErrInvalidAmount)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("amount %v is not an integer number of cents: %w", v, ErrInvalidAmount)
	}
	return New(int64(v))
}

// FromDollars converts a dollar amount to cents, rounding to the nearest cent.
func FromDollars(d float64) (Cents, error) {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("amount is not finite: %w", ErrInvalidAmount)
	}
	return FromFloat(math.Round(d * 100))
}

// Dollars returns the amount as floating point dollars. Presentation only;
// never feed the result back into calculations.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

func (c Cents) Int64() int64 {
	return int64(c)
}

func Add(a, b Cents) (Cents, error) {
	// Operands are bounded by MaxAmount, so the int64 addition itself cannot
	// overflow; the range check catches results beyond the safe limit.
	return New(int64(a) + int64(b))
}

func Subtract(a, b Cents) (Cents, error) {
	return New(int64(a) - int64(b))
}

// Multiply scales an amount by a factor, rounding half away from zero.
func Multiply(c Cents, factor float64) (Cents, error) {
	return FromFloat(math.Round(float64(c) * factor))
}

// Divide divides an amount by a divisor, rounding half away from zero.
// A zero divisor produces a non-finite quotient and fails validation.
func Divide(c Cents, divisor float64) (Cents, error) {
	return FromFloat(math.Round(float64(c) / divisor))
}

// PercentOf returns pct% of the amount, rounded to the nearest cent.
// The same rounding convention as Multiply and Divide, so chained scaling
// stays reproducible.
func PercentOf(c Cents, pct float64) (Cents, error) {
	return FromFloat(math.Round(float64(c) * pct / 100))
}

// Sum adds a sequence of amounts. An empty sequence sums to zero.
func Sum(values []Cents) (Cents, error) {
	total := Cents(0)
	for _, v := range values {
		var err error
		total, err = Add(total, v)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

package frequency

import (
	"errors"
	"fmt"

	"github.com/centsible/centsible/pkg/money"
)

// Frequency describes how often a periodic amount recurs.
type Frequency string

const (
	Weekly      Frequency = "weekly"
	Biweekly    Frequency = "biweekly"
	Semimonthly Frequency = "semimonthly"
	Monthly     Frequency = "monthly"
	Quarterly   Frequency = "quarterly"
	Annual      Frequency = "annual"
)

var ErrUnknownFrequency = errors.New("unknown frequency")

// monthlyMultipliers maps each frequency to the factor that converts one
// occurrence into a canonical monthly amount.
var monthlyMultipliers = map[Frequency]float64{
	Weekly:      52.0 / 12.0,
	Biweekly:    26.0 / 12.0,
	Semimonthly: 2,
	Monthly:     1,
	Quarterly:   1.0 / 3.0,
	Annual:      1.0 / 12.0,
}

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	_, ok := monthlyMultipliers[f]
	return ok
}

// NormalizeToMonthly converts a per-occurrence amount into a monthly amount.
// Because most multipliers are non-terminating rationals, a normalize →
// denormalize round trip is only guaranteed within 1 cent of the original.
func NormalizeToMonthly(amount money.Cents, f Frequency) (money.Cents, error) {
	multiplier, ok := monthlyMultipliers[f]
	if !ok {
		return 0, fmt.Errorf("%q: %w", f, ErrUnknownFrequency)
	}
	return money.Multiply(amount, multiplier)
}

// DenormalizeFromMonthly converts a monthly amount back into a per-occurrence
// amount for the given frequency.
func DenormalizeFromMonthly(monthly money.Cents, f Frequency) (money.Cents, error) {
	multiplier, ok := monthlyMultipliers[f]
	if !ok {
		return 0, fmt.Errorf("%q: %w", f, ErrUnknownFrequency)
	}
	return money.Multiply(monthly, 1/multiplier)
}

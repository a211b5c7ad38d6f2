package frequency

import (
	"testing"

	"github.com/centsible/centsible/pkg/money"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeToMonthly(t *testing.T) {
	tests := []struct {
		name      string
		amount    money.Cents
		frequency Frequency
		want      money.Cents
	}{
		{name: "weekly", amount: 12000, frequency: Weekly, want: 52000},
		{name: "biweekly", amount: 12000, frequency: Biweekly, want: 26000},
		{name: "semimonthly", amount: 12000, frequency: Semimonthly, want: 24000},
		{name: "monthly", amount: 12000, frequency: Monthly, want: 12000},
		{name: "quarterly", amount: 12000, frequency: Quarterly, want: 4000},
		{name: "annual", amount: 12000, frequency: Annual, want: 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeToMonthly(tt.amount, tt.frequency)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeToMonthly_UnknownFrequency(t *testing.T) {
	_, err := NormalizeToMonthly(100, Frequency("fortnightly"))
	assert.ErrorIs(t, err, ErrUnknownFrequency)
}

func TestRoundTrip_WithinOneCent(t *testing.T) {
	// The multipliers are non-terminating rationals, so the round trip is
	// allowed to drift by up to one cent. The tolerance is intentional and
	// must not be tightened.
	frequencies := []Frequency{Weekly, Biweekly, Semimonthly, Monthly, Quarterly, Annual}
	amounts := []money.Cents{1, 99, 100, 12345, 999999, 123456789}

	for _, f := range frequencies {
		for _, amount := range amounts {
			monthly, err := NormalizeToMonthly(amount, f)
			assert.NoError(t, err)
			back, err := DenormalizeFromMonthly(monthly, f)
			assert.NoError(t, err)

			diff := int64(back - amount)
			if diff < 0 {
				diff = -diff
			}
			assert.LessOrEqualf(t, diff, int64(1), "frequency %s amount %d round-tripped to %d", f, amount, back)
		}
	}
}

func TestRoundTrip_ZeroStaysZero(t *testing.T) {
	for f := range monthlyMultipliers {
		monthly, err := NormalizeToMonthly(0, f)
		assert.NoError(t, err)
		assert.Equal(t, money.Cents(0), monthly)

		back, err := DenormalizeFromMonthly(monthly, f)
		assert.NoError(t, err)
		assert.Equal(t, money.Cents(0), back)
	}
}

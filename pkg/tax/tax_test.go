package tax

import (
	"testing"

	"github.com/centsible/centsible/pkg/money"
	"github.com/centsible/centsible/pkg/plan"
	"github.com/stretchr/testify/assert"
)

func TestCompute_SimpleMode(t *testing.T) {
	tests := []struct {
		name         string
		grossMonthly money.Cents
		rate         float64
		want         money.Cents
	}{
		{name: "zero rate means no tax", grossMonthly: 500000, rate: 0, want: 0},
		{name: "twenty percent of five thousand dollars", grossMonthly: 500000, rate: 20, want: 100000},
		{name: "fractional rate rounds to whole cents", grossMonthly: 333333, rate: 7.65, want: 25500},
		{name: "zero income", grossMonthly: 0, rate: 20, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := plan.Plan{TaxMode: plan.TaxModeSimple, TaxEffectiveRate: tt.rate}

			got, err := Compute(tt.grossMonthly, p, nil)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompute_ItemizedMode(t *testing.T) {
	// given
	p := plan.Plan{TaxMode: plan.TaxModeItemized}
	components := []Component{
		{Name: "Federal", RatePercent: 22},
		{Name: "State", RatePercent: 5},
		{Name: "FICA", RatePercent: 7.65},
	}

	// when
	got, err := Compute(500000, p, components)

	// then combined rate is 34.65% of gross, each component independent
	assert.NoError(t, err)
	assert.Equal(t, money.Cents(173250), got)
}

func TestCompute_ItemizedModeWithoutComponents(t *testing.T) {
	p := plan.Plan{TaxMode: plan.TaxModeItemized, TaxEffectiveRate: 20}

	got, err := Compute(500000, p, nil)

	// the effective rate is ignored in itemized mode
	assert.NoError(t, err)
	assert.Equal(t, money.Cents(0), got)
}

func TestNetMonthly(t *testing.T) {
	p := plan.Plan{TaxMode: plan.TaxModeSimple, TaxEffectiveRate: 20}

	got, err := NetMonthly(500000, p, nil)

	assert.NoError(t, err)
	assert.Equal(t, money.Cents(400000), got)
}

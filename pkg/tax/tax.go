package tax

import (
	"github.com/centsible/centsible/pkg/money"
	"github.com/centsible/centsible/pkg/plan"
)

// Component is a single itemized tax line, e.g. federal income tax or FICA.
// RatePercent is applied against gross income, not against income remaining
// after other components.
type Component struct {
	Id          string
	PlanId      string
	Name        string
	RatePercent float64
	Position    int
}

// Compute returns the monthly tax amount for a plan. In simple mode the
// plan's effective rate is applied to gross monthly income. In itemized mode
// the component rates are summed first and the combined rate is applied,
// so each component is an independent share of gross.
func Compute(grossMonthly money.Cents, p plan.Plan, components []Component) (money.Cents, error) {
	switch p.TaxMode {
	case plan.TaxModeItemized:
		var combinedRate float64
		for _, component := range components {
			combinedRate += component.RatePercent
		}
		return money.PercentOf(grossMonthly, combinedRate)
	default:
		return money.PercentOf(grossMonthly, p.TaxEffectiveRate)
	}
}

// NetMonthly returns gross monthly income minus the computed tax.
func NetMonthly(grossMonthly money.Cents, p plan.Plan, components []Component) (money.Cents, error) {
	taxAmount, err := Compute(grossMonthly, p, components)
	if err != nil {
		return 0, err
	}
	return money.Subtract(grossMonthly, taxAmount)
}

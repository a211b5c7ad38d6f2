package plan

import (
	"time"

	"github.com/centsible/centsible/pkg/frequency"
	"github.com/centsible/centsible/pkg/money"
)

// TaxMode selects how the estimated tax for a plan is derived.
type TaxMode string

const (
	// TaxModeSimple applies the plan's single effective rate.
	TaxModeSimple TaxMode = "simple"
	// TaxModeItemized applies the sum of the plan's tax component rates.
	TaxModeItemized TaxMode = "itemized"
)

// Plan is a user's budget definition: income, how it is taxed, and the
// currency everything is calculated in. Exactly one plan is active per user
// at a time.
type Plan struct {
	Id       string
	Name     string
	Currency string
	// GrossIncome is the income per occurrence of IncomeFrequency, not per month.
	GrossIncome     money.Cents
	IncomeFrequency frequency.Frequency
	TaxMode         TaxMode
	// TaxEffectiveRate is a percentage in [0, 100], used only in simple mode.
	TaxEffectiveRate float64
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int
}

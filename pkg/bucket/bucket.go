package bucket

import (
	"fmt"

	"github.com/centsible/centsible/pkg/money"
)

// Mode distinguishes the two shapes a bucket target can take.
type Mode string

const (
	// ModePercentage targets a share of monthly net income.
	ModePercentage Mode = "percentage"
	// ModeFixed targets a fixed monthly amount.
	ModeFixed Mode = "fixed"
)

// Target is a bucket's allocation target. It is a closed variant: values are
// created only through PercentageTarget or FixedTarget, so a percentage
// target can never carry a fixed amount and vice versa.
type Target struct {
	mode       Mode
	percentage float64
	amount     money.Cents
}

// PercentageTarget creates a target expressed as a percentage of net income.
func PercentageTarget(pct float64) Target {
	return Target{mode: ModePercentage, percentage: pct}
}

// FixedTarget creates a target expressed as a fixed monthly amount.
func FixedTarget(amount money.Cents) Target {
	return Target{mode: ModeFixed, amount: amount}
}

func (t Target) Mode() Mode {
	return t.mode
}

// Percentage returns the configured percentage; meaningful only in percentage mode.
func (t Target) Percentage() float64 {
	return t.percentage
}

// Amount returns the configured fixed amount; meaningful only in fixed mode.
func (t Target) Amount() money.Cents {
	return t.amount
}

// AmountFor resolves the target to a monthly amount against the given net income.
func (t Target) AmountFor(net money.Cents) (money.Cents, error) {
	switch t.mode {
	case ModePercentage:
		return money.PercentOf(net, t.percentage)
	case ModeFixed:
		return t.amount, nil
	}
	return 0, fmt.Errorf("unknown bucket target mode %q", t.mode)
}

// PercentageFor resolves the target to a share of the given net income.
// A fixed target against zero net income resolves to 0 rather than dividing
// by zero.
func (t Target) PercentageFor(net money.Cents) float64 {
	switch t.mode {
	case ModePercentage:
		return t.percentage
	case ModeFixed:
		if net == 0 {
			return 0
		}
		return float64(t.amount) / float64(net) * 100
	}
	return 0
}

// Bucket is a named spending category with an allocation target.
type Bucket struct {
	Id       string
	PlanId   string
	Name     string
	Color    string
	Target   Target
	Position int
}

package summary

import (
	"fmt"

	"github.com/centsible/centsible/pkg/bucket"
	"github.com/centsible/centsible/pkg/currency"
	"github.com/centsible/centsible/pkg/expense"
	"github.com/centsible/centsible/pkg/frequency"
	"github.com/centsible/centsible/pkg/money"
	"github.com/centsible/centsible/pkg/tax"
)

// Compute builds the full monthly summary for a plan. It normalizes income
// and every expense to monthly amounts in the plan currency, compares each
// bucket against its target, and evaluates the alert rules.
func Compute(input Input, thresholds Thresholds) (PlanSummary, error) {
	p := input.Plan

	grossMonthly, err := frequency.NormalizeToMonthly(p.GrossIncome, p.IncomeFrequency)
	if err != nil {
		return PlanSummary{}, fmt.Errorf("could not normalize plan income: %w", err)
	}
	taxAmount, err := tax.Compute(grossMonthly, p, input.TaxComponents)
	if err != nil {
		return PlanSummary{}, fmt.Errorf("could not compute tax: %w", err)
	}
	net, err := money.Subtract(grossMonthly, taxAmount)
	if err != nil {
		return PlanSummary{}, err
	}

	spending, err := aggregateSpending(input)
	if err != nil {
		return PlanSummary{}, err
	}

	surplus, err := money.Subtract(net, spending.total)
	if err != nil {
		return PlanSummary{}, err
	}

	result := PlanSummary{
		PlanId:             p.Id,
		PlanName:           p.Name,
		Currency:           p.Currency,
		GrossMonthlyIncome: grossMonthly,
		TaxAmount:          taxAmount,
		NetMonthlyIncome:   net,
		TotalExpenses:      spending.total,
		Unallocated:        spending.unallocated,
		Surplus:            surplus,
		SavingsRate:        savingsRate(surplus, net),
		BucketTotals:       spending.byBucket,
		CategoryTotals:     spending.byCategory,
	}

	for _, b := range input.Buckets {
		analysis, err := analyzeBucket(b, net, spending.byBucket[b.Id], thresholds)
		if err != nil {
			return PlanSummary{}, err
		}
		result.Buckets = append(result.Buckets, analysis)
	}

	result.Alerts = buildAlerts(input, result, thresholds)
	return result, nil
}

type spendingTotals struct {
	total       money.Cents
	unallocated money.Cents
	byBucket    map[string]money.Cents
	byCategory  map[string]money.Cents
}

// aggregateSpending converts every expense to a monthly amount in the plan
// currency and attributes it to buckets and categories. Split expenses are
// attributed per split while the total uses the parent amount, so a split
// never double counts.
func aggregateSpending(input Input) (spendingTotals, error) {
	totals := spendingTotals{
		byBucket:   map[string]money.Cents{},
		byCategory: map[string]money.Cents{},
	}
	for _, e := range input.Expenses {
		monthly, err := monthlyAmount(e.Amount, e, input)
		if err != nil {
			return spendingTotals{}, err
		}
		totals.total, err = money.Add(totals.total, monthly)
		if err != nil {
			return spendingTotals{}, err
		}

		if len(e.Splits) == 0 {
			if err := totals.attribute(e.BucketId, e.Category, monthly); err != nil {
				return spendingTotals{}, err
			}
			continue
		}
		for _, split := range e.Splits {
			splitMonthly, err := monthlyAmount(split.Amount, e, input)
			if err != nil {
				return spendingTotals{}, err
			}
			if err := totals.attribute(split.BucketId, split.Category, splitMonthly); err != nil {
				return spendingTotals{}, err
			}
		}
	}
	return totals, nil
}

func (t *spendingTotals) attribute(bucketId, category string, amount money.Cents) error {
	var err error
	if bucketId == "" {
		t.unallocated, err = money.Add(t.unallocated, amount)
	} else {
		t.byBucket[bucketId], err = money.Add(t.byBucket[bucketId], amount)
	}
	if err != nil {
		return err
	}
	if category != "" {
		t.byCategory[category], err = money.Add(t.byCategory[category], amount)
	}
	return err
}

// monthlyAmount converts an amount carried by the given expense into the
// plan currency and normalizes it to monthly. Conversion is best effort:
// with no usable rate the amount passes through unconverted.
func monthlyAmount(amount money.Cents, e expense.Expense, input Input) (money.Cents, error) {
	if e.Currency != "" && e.Currency != input.Plan.Currency {
		amount = currency.ConvertCents(amount, e.Currency, input.Plan.Currency, input.Rates)
	}
	return frequency.NormalizeToMonthly(amount, e.Frequency)
}

func analyzeBucket(b bucket.Bucket, net money.Cents, actual money.Cents, thresholds Thresholds) (BucketAnalysis, error) {
	targetAmount, err := b.Target.AmountFor(net)
	if err != nil {
		return BucketAnalysis{}, err
	}
	targetPercent := b.Target.PercentageFor(net)
	actualPercent := 0.0
	if net > 0 {
		actualPercent = float64(actual) / float64(net) * 100
	}
	variance, err := money.Subtract(targetAmount, actual)
	if err != nil {
		return BucketAnalysis{}, err
	}

	variancePercent := 0.0
	if targetPercent != 0 {
		variancePercent = (targetPercent - actualPercent) / targetPercent * 100
	}

	status := StatusOnTarget
	switch {
	case variancePercent > thresholds.OnTargetBandPercent:
		status = StatusUnder
	case variancePercent < -thresholds.OnTargetBandPercent:
		status = StatusOver
	}

	return BucketAnalysis{
		BucketId:        b.Id,
		Name:            b.Name,
		Mode:            b.Target.Mode(),
		TargetPercent:   targetPercent,
		TargetAmount:    targetAmount,
		ActualAmount:    actual,
		ActualPercent:   actualPercent,
		Variance:        variance,
		VariancePercent: variancePercent,
		Status:          status,
	}, nil
}

func savingsRate(surplus, net money.Cents) float64 {
	if net <= 0 {
		return 0
	}
	return float64(surplus) / float64(net) * 100
}

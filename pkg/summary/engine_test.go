package summary

import (
	"testing"

	"github.com/centsible/centsible/pkg/bucket"
	"github.com/centsible/centsible/pkg/currency"
	"github.com/centsible/centsible/pkg/expense"
	"github.com/centsible/centsible/pkg/frequency"
	"github.com/centsible/centsible/pkg/money"
	"github.com/centsible/centsible/pkg/plan"
	"github.com/centsible/centsible/pkg/tax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simplePlan() plan.Plan {
	return plan.Plan{
		Id:               "plan-1",
		Name:             "Household",
		Currency:         "USD",
		GrossIncome:      500000,
		IncomeFrequency:  frequency.Monthly,
		TaxMode:          plan.TaxModeSimple,
		TaxEffectiveRate: 20,
	}
}

func TestCompute_SingleBucketUnderTarget(t *testing.T) {
	// given a $5,000 gross income taxed at 20% and one half-spent bucket
	input := Input{
		Plan: simplePlan(),
		Buckets: []bucket.Bucket{
			{Id: "b-1", PlanId: "plan-1", Name: "Needs", Target: bucket.PercentageTarget(50)},
		},
		Expenses: []expense.Expense{
			{Id: "e-1", PlanId: "plan-1", BucketId: "b-1", Name: "Rent", Amount: 100000, Frequency: frequency.Monthly},
		},
	}

	// when
	summary, err := Compute(input, DefaultThresholds())

	// then
	require.NoError(t, err)
	assert.Equal(t, money.Cents(500000), summary.GrossMonthlyIncome)
	assert.Equal(t, money.Cents(100000), summary.TaxAmount)
	assert.Equal(t, money.Cents(400000), summary.NetMonthlyIncome)
	assert.Equal(t, money.Cents(100000), summary.TotalExpenses)
	assert.Equal(t, money.Cents(300000), summary.Surplus)
	assert.Equal(t, 75.0, summary.SavingsRate)

	require.Len(t, summary.Buckets, 1)
	needs := summary.Buckets[0]
	assert.Equal(t, money.Cents(200000), needs.TargetAmount)
	assert.Equal(t, money.Cents(100000), needs.ActualAmount)
	assert.Equal(t, 25.0, needs.ActualPercent)
	assert.Equal(t, money.Cents(100000), needs.Variance)
	assert.Equal(t, StatusUnder, needs.Status)
}

func TestCompute_NonMonthlyIncomeIsNormalized(t *testing.T) {
	// given biweekly paychecks of $2,500
	p := simplePlan()
	p.GrossIncome = 250000
	p.IncomeFrequency = frequency.Biweekly

	summary, err := Compute(Input{Plan: p}, DefaultThresholds())

	// then gross monthly is 2500 * 26 / 12
	require.NoError(t, err)
	assert.Equal(t, money.Cents(541667), summary.GrossMonthlyIncome)
}

func TestCompute_ItemizedTax(t *testing.T) {
	p := simplePlan()
	p.TaxMode = plan.TaxModeItemized
	input := Input{
		Plan: p,
		TaxComponents: []tax.Component{
			{Name: "Federal", RatePercent: 22},
			{Name: "State", RatePercent: 5},
			{Name: "FICA", RatePercent: 7.65},
		},
	}

	summary, err := Compute(input, DefaultThresholds())

	require.NoError(t, err)
	assert.Equal(t, money.Cents(173250), summary.TaxAmount)
	assert.Equal(t, money.Cents(326750), summary.NetMonthlyIncome)
}

func TestCompute_ZeroIncome(t *testing.T) {
	// given no income and some spending
	p := simplePlan()
	p.GrossIncome = 0
	input := Input{
		Plan: p,
		Buckets: []bucket.Bucket{
			{Id: "b-1", Name: "Needs", Target: bucket.PercentageTarget(50)},
		},
		Expenses: []expense.Expense{
			{Id: "e-1", BucketId: "b-1", Name: "Rent", Amount: 100000, Frequency: frequency.Monthly},
		},
	}

	summary, err := Compute(input, DefaultThresholds())

	// then rates stay defined and the bucket target resolves to zero
	require.NoError(t, err)
	assert.Equal(t, money.Cents(0), summary.NetMonthlyIncome)
	assert.Equal(t, money.Cents(-100000), summary.Surplus)
	assert.Equal(t, 0.0, summary.SavingsRate)
	require.Len(t, summary.Buckets, 1)
	assert.Equal(t, money.Cents(0), summary.Buckets[0].TargetAmount)
	assert.Equal(t, 0.0, summary.Buckets[0].ActualPercent)
}

func TestCompute_BucketWithoutExpenses(t *testing.T) {
	input := Input{
		Plan: simplePlan(),
		Buckets: []bucket.Bucket{
			{Id: "b-1", Name: "Fun", Target: bucket.PercentageTarget(10)},
		},
	}

	summary, err := Compute(input, DefaultThresholds())

	require.NoError(t, err)
	require.Len(t, summary.Buckets, 1)
	assert.Equal(t, money.Cents(0), summary.Buckets[0].ActualAmount)
	assert.Equal(t, StatusUnder, summary.Buckets[0].Status)
}

func TestCompute_FixedTargetBucket(t *testing.T) {
	// given a fixed $1,000 target against $4,000 net income
	input := Input{
		Plan: simplePlan(),
		Buckets: []bucket.Bucket{
			{Id: "b-1", Name: "Savings", Target: bucket.FixedTarget(100000)},
		},
		Expenses: []expense.Expense{
			{Id: "e-1", BucketId: "b-1", Name: "Transfer", Amount: 100000, Frequency: frequency.Monthly},
		},
	}

	summary, err := Compute(input, DefaultThresholds())

	// then the target percentage is back-computed from net income
	require.NoError(t, err)
	require.Len(t, summary.Buckets, 1)
	savings := summary.Buckets[0]
	assert.Equal(t, money.Cents(100000), savings.TargetAmount)
	assert.Equal(t, 25.0, savings.TargetPercent)
	assert.Equal(t, StatusOnTarget, savings.Status)
}

func TestCompute_OnTargetBand(t *testing.T) {
	tests := []struct {
		name   string
		actual money.Cents
		want   Status
	}{
		{name: "spending inside the band is on target", actual: 196000, want: StatusOnTarget},
		{name: "spending just above the band is over", actual: 211000, want: StatusOver},
		{name: "spending just below the band is under", actual: 189000, want: StatusUnder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// target is 50% of 400000 net, i.e. 200000
			input := Input{
				Plan: simplePlan(),
				Buckets: []bucket.Bucket{
					{Id: "b-1", Name: "Needs", Target: bucket.PercentageTarget(50)},
				},
				Expenses: []expense.Expense{
					{Id: "e-1", BucketId: "b-1", Name: "Stuff", Amount: tt.actual, Frequency: frequency.Monthly},
				},
			}

			summary, err := Compute(input, DefaultThresholds())

			require.NoError(t, err)
			require.Len(t, summary.Buckets, 1)
			assert.Equal(t, tt.want, summary.Buckets[0].Status)
		})
	}
}

func TestCompute_ZeroTargetBucketWithSpendingStaysOnTarget(t *testing.T) {
	// given a bucket with a 0% target that still has spending
	input := Input{
		Plan: simplePlan(),
		Buckets: []bucket.Bucket{
			{Id: "b-1", Name: "Paused", Target: bucket.PercentageTarget(0)},
		},
		Expenses: []expense.Expense{
			{Id: "e-1", BucketId: "b-1", Name: "Leftover sub", Amount: 3000, Frequency: frequency.Monthly},
		},
	}

	summary, err := Compute(input, DefaultThresholds())

	// then the variance percent is defined as zero, so no overage fires
	require.NoError(t, err)
	require.Len(t, summary.Buckets, 1)
	assert.Equal(t, 0.0, summary.Buckets[0].VariancePercent)
	assert.Equal(t, StatusOnTarget, summary.Buckets[0].Status)
	_, found := findAlert(summary.Alerts, CodeBucketOverBudget)
	assert.False(t, found)
}

func TestCompute_BucketTotalsKeyedByBucketId(t *testing.T) {
	// given spending on a known bucket and on a bucket id with no allocation
	input := Input{
		Plan: simplePlan(),
		Buckets: []bucket.Bucket{
			{Id: "b-1", Name: "Needs", Target: bucket.PercentageTarget(50)},
		},
		Expenses: []expense.Expense{
			{Id: "e-1", BucketId: "b-1", Name: "Rent", Amount: 100000, Frequency: frequency.Monthly},
			{Id: "e-2", BucketId: "b-1", Name: "Utilities", Amount: 20000, Frequency: frequency.Monthly},
			{Id: "e-3", BucketId: "b-deleted", Name: "Old gym", Amount: 4000, Frequency: frequency.Monthly},
		},
	}

	summary, err := Compute(input, DefaultThresholds())

	// then the grouped view keeps every bucket id, matched or not
	require.NoError(t, err)
	assert.Equal(t, money.Cents(120000), summary.BucketTotals["b-1"])
	assert.Equal(t, money.Cents(4000), summary.BucketTotals["b-deleted"])
	assert.Equal(t, money.Cents(124000), summary.TotalExpenses)
}

func TestCompute_SplitExpense(t *testing.T) {
	// given one $400 expense split between two buckets
	input := Input{
		Plan: simplePlan(),
		Buckets: []bucket.Bucket{
			{Id: "b-1", Name: "Needs", Target: bucket.PercentageTarget(50)},
			{Id: "b-2", Name: "Wants", Target: bucket.PercentageTarget(30)},
		},
		Expenses: []expense.Expense{
			{
				Id: "e-1", Name: "Costco run", Amount: 40000, Frequency: frequency.Monthly,
				Splits: []expense.Split{
					{BucketId: "b-1", Category: "groceries", Amount: 25000},
					{BucketId: "b-2", Category: "entertainment", Amount: 15000},
				},
			},
		},
	}

	summary, err := Compute(input, DefaultThresholds())

	// then the total counts the parent once and splits land per bucket
	require.NoError(t, err)
	assert.Equal(t, money.Cents(40000), summary.TotalExpenses)
	assert.Equal(t, money.Cents(25000), summary.Buckets[0].ActualAmount)
	assert.Equal(t, money.Cents(15000), summary.Buckets[1].ActualAmount)
	assert.Equal(t, money.Cents(25000), summary.CategoryTotals["groceries"])
	assert.Equal(t, money.Cents(15000), summary.CategoryTotals["entertainment"])
}

func TestCompute_UnassignedExpenseIsUnallocated(t *testing.T) {
	input := Input{
		Plan: simplePlan(),
		Expenses: []expense.Expense{
			{Id: "e-1", Name: "Mystery charge", Amount: 5000, Frequency: frequency.Monthly},
		},
	}

	summary, err := Compute(input, DefaultThresholds())

	require.NoError(t, err)
	assert.Equal(t, money.Cents(5000), summary.Unallocated)
	assert.Equal(t, money.Cents(5000), summary.TotalExpenses)
}

func TestCompute_ForeignCurrencyExpense(t *testing.T) {
	// given a EUR expense against a USD plan with a known rate
	input := Input{
		Plan: simplePlan(),
		Expenses: []expense.Expense{
			{Id: "e-1", Name: "VPS", Amount: 10000, Currency: "EUR", Frequency: frequency.Monthly},
		},
		Rates: &currency.Rates{
			BaseCurrency: "USD",
			Rates:        map[string]float64{"EUR": 0.92},
		},
	}

	summary, err := Compute(input, DefaultThresholds())

	// then 100.00 EUR converts at 1/0.92
	require.NoError(t, err)
	assert.Equal(t, money.Cents(10870), summary.TotalExpenses)
}

func TestCompute_ForeignCurrencyWithoutRatesPassesThrough(t *testing.T) {
	input := Input{
		Plan: simplePlan(),
		Expenses: []expense.Expense{
			{Id: "e-1", Name: "VPS", Amount: 10000, Currency: "EUR", Frequency: frequency.Monthly},
		},
	}

	summary, err := Compute(input, DefaultThresholds())

	require.NoError(t, err)
	assert.Equal(t, money.Cents(10000), summary.TotalExpenses)
}

func TestCompute_WeeklyExpenseIsNormalized(t *testing.T) {
	input := Input{
		Plan: simplePlan(),
		Expenses: []expense.Expense{
			{Id: "e-1", Name: "Groceries", Amount: 12000, Frequency: frequency.Weekly},
		},
	}

	summary, err := Compute(input, DefaultThresholds())

	// then 120.00 weekly is 120 * 52 / 12 monthly
	require.NoError(t, err)
	assert.Equal(t, money.Cents(52000), summary.TotalExpenses)
}

func TestCompute_UnknownExpenseFrequencyFails(t *testing.T) {
	input := Input{
		Plan: simplePlan(),
		Expenses: []expense.Expense{
			{Id: "e-1", Name: "Rent", Amount: 100000, Frequency: frequency.Frequency("fortnightly")},
		},
	}

	_, err := Compute(input, DefaultThresholds())

	assert.ErrorIs(t, err, frequency.ErrUnknownFrequency)
}

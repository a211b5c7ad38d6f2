package summary

import (
	"github.com/centsible/centsible/pkg/bucket"
	"github.com/centsible/centsible/pkg/currency"
	"github.com/centsible/centsible/pkg/expense"
	"github.com/centsible/centsible/pkg/money"
	"github.com/centsible/centsible/pkg/plan"
	"github.com/centsible/centsible/pkg/tax"
)

// Status tells how a bucket's actual spending compares to its target.
type Status string

const (
	StatusUnder    Status = "under"
	StatusOnTarget Status = "on_target"
	StatusOver     Status = "over"
)

// Severity orders alerts from informational to actionable.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Alert codes produced by the rule set.
const (
	CodeBucketOverBudget  = "BUCKET_OVER_BUDGET"
	CodeBudgetDeficit     = "BUDGET_DEFICIT"
	CodeAllocationsExceed = "ALLOCATIONS_EXCEED_100"
	CodeNoSavingsBucket   = "NO_SAVINGS_BUCKET"
)

type Alert struct {
	Code     string
	Severity Severity
	Message  string
	BucketId string
}

// BucketAnalysis compares one bucket's monthly spending to its target.
// All amounts are monthly and in the plan currency.
type BucketAnalysis struct {
	BucketId      string
	Name          string
	Mode          bucket.Mode
	TargetPercent float64
	TargetAmount  money.Cents
	ActualAmount  money.Cents
	ActualPercent float64
	// Variance is target minus actual; negative when the bucket overspends.
	Variance money.Cents
	// VariancePercent is the variance relative to the target percentage.
	VariancePercent float64
	Status          Status
}

// PlanSummary is the full monthly picture of a plan. All amounts are
// normalized to monthly and expressed in the plan currency.
type PlanSummary struct {
	PlanId             string
	PlanName           string
	Currency           string
	GrossMonthlyIncome money.Cents
	TaxAmount          money.Cents
	NetMonthlyIncome   money.Cents
	TotalExpenses      money.Cents
	// Unallocated is spending not attributed to any bucket.
	Unallocated money.Cents
	Surplus     money.Cents
	// SavingsRate is the surplus as a percentage of net income, 0 when
	// net income is not positive.
	SavingsRate float64
	Buckets     []BucketAnalysis
	// BucketTotals is spending keyed by bucket id, including ids no
	// current allocation carries.
	BucketTotals   map[string]money.Cents
	CategoryTotals map[string]money.Cents
	Alerts         []Alert
}

// Input carries everything the engine needs, so Compute stays a pure
// function over loaded state.
type Input struct {
	Plan          plan.Plan
	Buckets       []bucket.Bucket
	Expenses      []expense.Expense
	TaxComponents []tax.Component
	Rates         *currency.Rates
}

// Thresholds are the tunable boundaries of the analysis.
type Thresholds struct {
	// OnTargetBandPercent is the +/- band around a bucket target within
	// which spending still counts as on target.
	OnTargetBandPercent float64
	// BucketOverageErrorPercent is how far over target a bucket must be
	// before its alert escalates from warning to error.
	BucketOverageErrorPercent float64
	// DeficitErrorPercent is the deficit share of net income above which
	// the deficit alert escalates from warning to error.
	DeficitErrorPercent float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		OnTargetBandPercent:       5,
		BucketOverageErrorPercent: 20,
		DeficitErrorPercent:       10,
	}
}

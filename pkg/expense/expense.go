package expense

import (
	"github.com/centsible/centsible/pkg/frequency"
	"github.com/centsible/centsible/pkg/money"
)

// Expense is a recurring or one-off spending item attached to a plan.
type Expense struct {
	Id     string
	PlanId string
	// BucketId may be empty for unassigned spending.
	BucketId string
	Name     string
	Amount   money.Cents
	// Currency may be empty, meaning the plan currency. Amounts in other
	// currencies are converted best-effort during summary calculation.
	Currency  string
	Frequency frequency.Frequency
	Category  string
	IsFixed   bool
	// TransactionDate is an ISO date (YYYY-MM-DD), empty when not recorded.
	TransactionDate string
	// Splits optionally divides the amount across several bucket/category
	// pairs. When present there must be at least two splits and their
	// amounts must sum exactly to Amount.
	Splits []Split
}

type Split struct {
	BucketId string
	Category string
	Amount   money.Cents
}

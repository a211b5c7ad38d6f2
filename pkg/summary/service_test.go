package summary

import (
	"context"
	"testing"

	"github.com/centsible/centsible/pkg/bucket"
	"github.com/centsible/centsible/pkg/expense"
	"github.com/centsible/centsible/pkg/frequency"
	"github.com/centsible/centsible/pkg/money"
	"github.com/centsible/centsible/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceImpl_GetSummary_ActivePlan(t *testing.T) {
	// given
	activePlan := simplePlan()
	activePlan.IsActive = true
	service := NewService(
		&planServiceStub{plans: map[string]plan.Plan{"plan-1": activePlan}},
		&bucketServiceStub{buckets: []bucket.Bucket{
			{Id: "b-1", PlanId: "plan-1", Name: "Savings", Target: bucket.PercentageTarget(20)},
		}},
		&expenseServiceStub{expenses: []expense.Expense{
			{Id: "e-1", PlanId: "plan-1", BucketId: "b-1", Name: "Transfer", Amount: 50000, Frequency: frequency.Monthly},
		}},
		&taxServiceStub{},
		&currencyServiceStub{},
	)

	// when no plan id is given the active plan is summarized
	summary, err := service.GetSummary(context.Background(), "")

	// then
	require.NoError(t, err)
	assert.Equal(t, "plan-1", summary.PlanId)
	assert.Equal(t, money.Cents(400000), summary.NetMonthlyIncome)
	require.Len(t, summary.Buckets, 1)
	assert.Equal(t, money.Cents(50000), summary.Buckets[0].ActualAmount)
}

func TestServiceImpl_GetSummary_UnknownPlan(t *testing.T) {
	service := NewService(
		&planServiceStub{plans: map[string]plan.Plan{}},
		&bucketServiceStub{},
		&expenseServiceStub{},
		&taxServiceStub{},
		&currencyServiceStub{},
	)

	_, err := service.GetSummary(context.Background(), "missing")

	assert.ErrorIs(t, err, plan.ErrPlanNotFound)
}

package summary

import (
	"context"

	"github.com/centsible/centsible/pkg/bucket"
	"github.com/centsible/centsible/pkg/currency"
	"github.com/centsible/centsible/pkg/expense"
	"github.com/centsible/centsible/pkg/plan"
	"github.com/centsible/centsible/pkg/tax"
)

type planServiceStub struct {
	plan.Service
	plans map[string]plan.Plan
}

func (s *planServiceStub) GetPlan(ctx context.Context, planId string) (plan.Plan, error) {
	p, ok := s.plans[planId]
	if !ok {
		return plan.Plan{}, plan.ErrPlanNotFound
	}
	return p, nil
}

func (s *planServiceStub) GetActivePlan(ctx context.Context) (plan.Plan, error) {
	for _, p := range s.plans {
		if p.IsActive {
			return p, nil
		}
	}
	return plan.Plan{}, plan.ErrNoActivePlan
}

type bucketServiceStub struct {
	bucket.Service
	buckets []bucket.Bucket
}

func (s *bucketServiceStub) ListBuckets(ctx context.Context, planId string) ([]bucket.Bucket, error) {
	return s.buckets, nil
}

type expenseServiceStub struct {
	expense.Service
	expenses []expense.Expense
}

func (s *expenseServiceStub) ListExpenses(ctx context.Context, planId string) ([]expense.Expense, error) {
	return s.expenses, nil
}

type taxServiceStub struct {
	tax.Service
	components []tax.Component
}

func (s *taxServiceStub) ListComponents(ctx context.Context, planId string) ([]tax.Component, error) {
	return s.components, nil
}

type currencyServiceStub struct {
	currency.Service
	rates *currency.Rates
}

func (s *currencyServiceStub) CurrentRates(ctx context.Context) (*currency.Rates, error) {
	return s.rates, nil
}

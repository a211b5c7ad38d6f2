package summary

import (
	"context"
	"fmt"

	"github.com/centsible/centsible/pkg/bucket"
	"github.com/centsible/centsible/pkg/currency"
	"github.com/centsible/centsible/pkg/expense"
	"github.com/centsible/centsible/pkg/plan"
	"github.com/centsible/centsible/pkg/tax"
)

type Service interface {
	// GetSummary computes the summary for the given plan, or for the
	// active plan when planId is empty.
	GetSummary(ctx context.Context, planId string) (PlanSummary, error)
}

type ServiceImpl struct {
	planService     plan.Service
	bucketService   bucket.Service
	expenseService  expense.Service
	taxService      tax.Service
	currencyService currency.Service
	thresholds      Thresholds
}

func NewService(
	planService plan.Service,
	bucketService bucket.Service,
	expenseService expense.Service,
	taxService tax.Service,
	currencyService currency.Service,
) *ServiceImpl {
	return &ServiceImpl{
		planService:     planService,
		bucketService:   bucketService,
		expenseService:  expenseService,
		taxService:      taxService,
		currencyService: currencyService,
		thresholds:      DefaultThresholds(),
	}
}

func (s *ServiceImpl) GetSummary(ctx context.Context, planId string) (PlanSummary, error) {
	input, err := s.loadInput(ctx, planId)
	if err != nil {
		return PlanSummary{}, err
	}
	return Compute(input, s.thresholds)
}

func (s *ServiceImpl) loadInput(ctx context.Context, planId string) (Input, error) {
	var p plan.Plan
	var err error
	if planId == "" {
		p, err = s.planService.GetActivePlan(ctx)
	} else {
		p, err = s.planService.GetPlan(ctx, planId)
	}
	if err != nil {
		return Input{}, fmt.Errorf("could not load plan: %w", err)
	}

	buckets, err := s.bucketService.ListBuckets(ctx, p.Id)
	if err != nil {
		return Input{}, fmt.Errorf("could not load buckets: %w", err)
	}
	expenses, err := s.expenseService.ListExpenses(ctx, p.Id)
	if err != nil {
		return Input{}, fmt.Errorf("could not load expenses: %w", err)
	}

	var components []tax.Component
	if p.TaxMode == plan.TaxModeItemized {
		components, err = s.taxService.ListComponents(ctx, p.Id)
		if err != nil {
			return Input{}, fmt.Errorf("could not load tax components: %w", err)
		}
	}
	rates, err := s.currencyService.CurrentRates(ctx)
	if err != nil {
		return Input{}, fmt.Errorf("could not load exchange rates: %w", err)
	}

	return Input{
		Plan:          p,
		Buckets:       buckets,
		Expenses:      expenses,
		TaxComponents: components,
		Rates:         rates,
	}, nil
}

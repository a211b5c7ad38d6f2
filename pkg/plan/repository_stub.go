package plan

import (
	"context"
	"fmt"
	"time"
)

type StubRepository struct {
	data map[string]Plan
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]Plan{}}
}

func (s *StubRepository) ListPlans(ctx context.Context, userId int) ([]Plan, error) {
	plans := make([]Plan, 0, len(s.data))
	for _, plan := range s.data {
		plans = append(plans, plan)
	}
	return plans, nil
}

func (s *StubRepository) GetPlan(ctx context.Context, userId int, planId string) (Plan, error) {
	plan, ok := s.data[planId]
	if !ok {
		return Plan{}, fmt.Errorf("plan %s: %w", planId, ErrPlanNotFound)
	}
	return plan, nil
}

func (s *StubRepository) GetActivePlan(ctx context.Context, userId int) (Plan, error) {
	for _, plan := range s.data {
		if plan.IsActive {
			return plan, nil
		}
	}
	return Plan{}, ErrNoActivePlan
}

func (s *StubRepository) CreatePlan(ctx context.Context, userId int, plan Plan) (Plan, error) {
	plan.IsActive = len(s.data) == 0
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt
	plan.Version = 1
	s.data[plan.Id] = plan
	return plan, nil
}

func (s *StubRepository) UpdatePlan(ctx context.Context, userId int, plan Plan) (Plan, error) {
	stored, ok := s.data[plan.Id]
	if !ok {
		return Plan{}, fmt.Errorf("plan %s: %w", plan.Id, ErrPlanNotFound)
	}
	plan.IsActive = stored.IsActive
	plan.CreatedAt = stored.CreatedAt
	plan.UpdatedAt = time.Now()
	plan.Version = stored.Version + 1
	s.data[plan.Id] = plan
	return plan, nil
}

func (s *StubRepository) DeletePlan(ctx context.Context, userId int, planId string) (bool, error) {
	plan, ok := s.data[planId]
	if !ok || plan.IsActive {
		return false, nil
	}
	delete(s.data, planId)
	return true, nil
}

func (s *StubRepository) ActivatePlan(ctx context.Context, userId int, planId string) (bool, error) {
	if _, ok := s.data[planId]; !ok {
		return false, nil
	}
	for id, plan := range s.data {
		plan.IsActive = id == planId
		s.data[id] = plan
	}
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]Plan{}
}

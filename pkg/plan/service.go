package plan

import (
	"context"
	"fmt"

	"github.com/centsible/centsible/internal/event_bus"
	"github.com/centsible/centsible/pkg/frequency"
	"github.com/centsible/centsible/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	ListPlans(ctx context.Context) ([]Plan, error)
	GetPlan(ctx context.Context, planId string) (Plan, error)
	GetActivePlan(ctx context.Context) (Plan, error)
	CreatePlan(ctx context.Context, plan Plan) (Plan, error)
	UpdatePlan(ctx context.Context, plan Plan) (Plan, error)
	DeletePlan(ctx context.Context, planId string) (bool, error)
	ActivatePlan(ctx context.Context, planId string) (bool, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) ListPlans(ctx context.Context) ([]Plan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListPlans(ctx, userId)
}

func (s *ServiceImpl) GetPlan(ctx context.Context, planId string) (Plan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetPlan(ctx, userId, planId)
}

func (s *ServiceImpl) GetActivePlan(ctx context.Context) (Plan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetActivePlan(ctx, userId)
}

func (s *ServiceImpl) CreatePlan(ctx context.Context, plan Plan) (Plan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validatePlan(plan); err != nil {
		return Plan{}, err
	}
	plan.Id = uuid.NewString()
	return s.repo.CreatePlan(ctx, userId, plan)
}

func (s *ServiceImpl) UpdatePlan(ctx context.Context, plan Plan) (Plan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validatePlan(plan); err != nil {
		return Plan{}, err
	}

	updatedPlan, err := s.repo.UpdatePlan(ctx, userId, plan)
	if err != nil {
		return Plan{}, err
	}

	if err := s.eventBus.Publish(event_bus.NewEvent(
		ctx,
		event_bus.PlanUpdatedEvent,
		event_bus.PlanUpdated{PlanId: updatedPlan.Id, Name: updatedPlan.Name},
	)); err != nil {
		log.Errorf("failed to publish plan update event: %v", err)
		return Plan{}, err
	}

	return updatedPlan, nil
}

func (s *ServiceImpl) DeletePlan(ctx context.Context, planId string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.DeletePlan(ctx, userId, planId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("plan %s not deleted, probably because it does not exist, is active, or the user (%d) is not the owner", planId, userId)
		return false, fmt.Errorf("plan not deleted")
	}
	return true, nil
}

func (s *ServiceImpl) ActivatePlan(ctx context.Context, planId string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ActivatePlan(ctx, userId, planId)
}

func validatePlan(plan Plan) error {
	if plan.Name == "" {
		return fmt.Errorf("plan name is required")
	}
	if !plan.IncomeFrequency.Valid() {
		return fmt.Errorf("income frequency %q: %w", plan.IncomeFrequency, frequency.ErrUnknownFrequency)
	}
	if plan.TaxMode != TaxModeSimple && plan.TaxMode != TaxModeItemized {
		return fmt.Errorf("unknown tax mode %q", plan.TaxMode)
	}
	if plan.TaxEffectiveRate < 0 || plan.TaxEffectiveRate > 100 {
		return fmt.Errorf("tax effective rate %v is out of range", plan.TaxEffectiveRate)
	}
	return nil
}

package tax

import (
	"context"
	"fmt"
	"sort"

	"github.com/centsible/centsible/pkg/user"
	"github.com/google/uuid"
)

type Service interface {
	ListComponents(ctx context.Context, planId string) ([]Component, error)
	ReplaceComponents(ctx context.Context, planId string, components []Component) ([]Component, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) ListComponents(ctx context.Context, planId string) ([]Component, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListComponents(ctx, userId, planId)
}

func (s *ServiceImpl) ReplaceComponents(ctx context.Context, planId string, components []Component) ([]Component, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	for i := range components {
		if err := validateComponent(components[i]); err != nil {
			return nil, err
		}
		if components[i].Id == "" {
			components[i].Id = uuid.NewString()
		}
		components[i].PlanId = planId
		components[i].Position = i
	}
	sort.SliceStable(components, func(i, j int) bool { return components[i].Position < components[j].Position })

	if err := s.repo.ReplaceComponents(ctx, userId, planId, components); err != nil {
		return nil, err
	}
	return components, nil
}

func validateComponent(component Component) error {
	if component.Name == "" {
		return fmt.Errorf("tax component name is required")
	}
	if component.RatePercent < 0 || component.RatePercent > 100 {
		return fmt.Errorf("tax component rate must be between 0 and 100, got %v", component.RatePercent)
	}
	return nil
}

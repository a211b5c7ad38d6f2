package currency

import (
	"context"
	"fmt"

	"github.com/centsible/centsible/pkg/user"
)

type Service interface {
	// CurrentRates returns the rate table of the current user, or nil when
	// none has been uploaded. Callers must treat nil as "no conversion
	// possible", not as an error.
	CurrentRates(ctx context.Context) (*Rates, error)
	ReplaceRates(ctx context.Context, rates Rates) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CurrentRates(ctx context.Context) (*Rates, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetRates(ctx, userId)
}

func (s *ServiceImpl) ReplaceRates(ctx context.Context, rates Rates) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.StoreRates(ctx, userId, rates)
}

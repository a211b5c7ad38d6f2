package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/centsible/centsible/internal/event_bus"
	"github.com/centsible/centsible/pkg/frequency"
	"github.com/centsible/centsible/pkg/money"
	"github.com/centsible/centsible/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidSplit = errors.New("invalid expense split")

type Service interface {
	ListExpenses(ctx context.Context, planId string) ([]Expense, error)
	CreateExpense(ctx context.Context, expense Expense) (Expense, error)
	UpdateExpense(ctx context.Context, expense Expense) (bool, error)
	DeleteExpense(ctx context.Context, expenseId string) (bool, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) ListExpenses(ctx context.Context, planId string) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListExpenses(ctx, userId, planId)
}

func (s *ServiceImpl) CreateExpense(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateExpense(expense); err != nil {
		return Expense{}, err
	}

	expense.Id = uuid.NewString()
	if err := s.repo.StoreExpense(ctx, userId, expense); err != nil {
		return Expense{}, err
	}
	s.publishExpenseRecorded(ctx, expense)
	return expense, nil
}

func (s *ServiceImpl) UpdateExpense(ctx context.Context, expense Expense) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateExpense(expense); err != nil {
		return false, err
	}

	updated, err := s.repo.UpdateExpense(ctx, userId, expense)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("expense not updated, probably because it does not exist (%s) or the user (%d) is not the owner", expense.Id, userId)
		return false, fmt.Errorf("expense not updated")
	}
	s.publishExpenseRecorded(ctx, expense)
	return true, nil
}

func (s *ServiceImpl) DeleteExpense(ctx context.Context, expenseId string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.DeleteExpense(ctx, userId, expenseId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("expense not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", expenseId, userId)
		return false, fmt.Errorf("expense not deleted")
	}
	return true, nil
}

func (s *ServiceImpl) publishExpenseRecorded(ctx context.Context, expense Expense) {
	err := s.eventBus.Publish(event_bus.NewEvent(
		ctx,
		event_bus.ExpenseRecordedEvent,
		event_bus.ExpenseRecorded{
			ExpenseId: expense.Id,
			PlanId:    expense.PlanId,
			Name:      expense.Name,
		},
	))
	if err != nil {
		log.Errorf("failed to publish expense recorded event: %v", err)
	}
}

func validateExpense(expense Expense) error {
	if expense.Name == "" {
		return fmt.Errorf("expense name is required")
	}
	if !expense.Frequency.Valid() {
		return fmt.Errorf("frequency %q: %w", expense.Frequency, frequency.ErrUnknownFrequency)
	}
	return validateSplits(expense)
}

func validateSplits(expense Expense) error {
	if len(expense.Splits) == 0 {
		return nil
	}
	if len(expense.Splits) < 2 {
		return fmt.Errorf("a split expense needs at least two splits: %w", ErrInvalidSplit)
	}
	amounts := make([]money.Cents, 0, len(expense.Splits))
	for _, split := range expense.Splits {
		amounts = append(amounts, split.Amount)
	}
	total, err := money.Sum(amounts)
	if err != nil {
		return err
	}
	if total != expense.Amount {
		return fmt.Errorf("split amounts sum to %d, expense amount is %d: %w", total, expense.Amount, ErrInvalidSplit)
	}
	return nil
}

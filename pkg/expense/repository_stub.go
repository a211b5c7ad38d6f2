package expense

import (
	"context"
	"fmt"
	"sort"
)

type StubRepository struct {
	data map[string]Expense
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]Expense{}}
}

func (s *StubRepository) ListExpenses(ctx context.Context, userId int, planId string) ([]Expense, error) {
	expenses := make([]Expense, 0, len(s.data))
	for _, expense := range s.data {
		if expense.PlanId == planId {
			expenses = append(expenses, expense)
		}
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].Name < expenses[j].Name })
	return expenses, nil
}

func (s *StubRepository) GetExpense(ctx context.Context, userId int, expenseId string) (Expense, error) {
	expense, ok := s.data[expenseId]
	if !ok {
		return Expense{}, fmt.Errorf("expense %s: %w", expenseId, ErrExpenseNotFound)
	}
	return expense, nil
}

func (s *StubRepository) StoreExpense(ctx context.Context, userId int, expense Expense) error {
	s.data[expense.Id] = expense
	return nil
}

func (s *StubRepository) UpdateExpense(ctx context.Context, userId int, expense Expense) (bool, error) {
	if _, ok := s.data[expense.Id]; !ok {
		return false, nil
	}
	s.data[expense.Id] = expense
	return true, nil
}

func (s *StubRepository) DeleteExpense(ctx context.Context, userId int, expenseId string) (bool, error) {
	if _, ok := s.data[expenseId]; !ok {
		return false, nil
	}
	delete(s.data, expenseId)
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]Expense{}
}

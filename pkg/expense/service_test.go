package expense

import (
	"context"
	"testing"

	"github.com/centsible/centsible/internal/event_bus"
	"github.com/centsible/centsible/pkg/frequency"
	"github.com/centsible/centsible/pkg/user"
	"github.com/stretchr/testify/assert"
)

func setup(t *testing.T) (Service, *StubRepository, context.Context) {
	repo := NewStubRepository()
	service := NewService(repo, event_bus.NewEventBus())
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "test-user"})
	t.Cleanup(repo.Cleanup)
	return service, repo, ctx
}

func TestServiceImpl_CreateExpense(t *testing.T) {
	service, _, ctx := setup(t)

	// given
	expense := Expense{
		PlanId:    "plan-1",
		BucketId:  "bucket-1",
		Name:      "Rent",
		Amount:    150000,
		Frequency: frequency.Monthly,
		Category:  "housing",
		IsFixed:   true,
	}

	// when
	created, err := service.CreateExpense(ctx, expense)

	// then
	assert.NoError(t, err)
	assert.NotEmpty(t, created.Id)

	stored, err := service.ListExpenses(ctx, "plan-1")
	assert.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Equal(t, "Rent", stored[0].Name)
}

func TestServiceImpl_CreateExpense_RejectsUnknownFrequency(t *testing.T) {
	service, _, ctx := setup(t)

	_, err := service.CreateExpense(ctx, Expense{
		PlanId:    "plan-1",
		Name:      "Rent",
		Amount:    150000,
		Frequency: frequency.Frequency("fortnightly"),
	})

	assert.ErrorIs(t, err, frequency.ErrUnknownFrequency)
}

func TestServiceImpl_CreateExpense_SplitValidation(t *testing.T) {
	tests := []struct {
		name    string
		expense Expense
		wantErr bool
	}{
		{
			name: "no splits is fine",
			expense: Expense{
				PlanId: "plan-1", Name: "Groceries", Amount: 40000, Frequency: frequency.Monthly,
			},
		},
		{
			name: "single split is rejected",
			expense: Expense{
				PlanId: "plan-1", Name: "Groceries", Amount: 40000, Frequency: frequency.Monthly,
				Splits: []Split{{BucketId: "bucket-1", Amount: 40000}},
			},
			wantErr: true,
		},
		{
			name: "splits must sum to the expense amount",
			expense: Expense{
				PlanId: "plan-1", Name: "Groceries", Amount: 40000, Frequency: frequency.Monthly,
				Splits: []Split{
					{BucketId: "bucket-1", Amount: 25000},
					{BucketId: "bucket-2", Amount: 10000},
				},
			},
			wantErr: true,
		},
		{
			name: "exact split sum is accepted",
			expense: Expense{
				PlanId: "plan-1", Name: "Groceries", Amount: 40000, Frequency: frequency.Monthly,
				Splits: []Split{
					{BucketId: "bucket-1", Amount: 25000},
					{BucketId: "bucket-2", Amount: 15000},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, ctx := setup(t)

			_, err := service.CreateExpense(ctx, tt.expense)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSplit)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServiceImpl_RequiresUserInContext(t *testing.T) {
	service := NewService(NewStubRepository(), event_bus.NewEventBus())

	_, err := service.ListExpenses(context.Background(), "plan-1")

	assert.ErrorIs(t, err, user.ErrNoUser)
}

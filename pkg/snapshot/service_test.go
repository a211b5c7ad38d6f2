package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/centsible/centsible/internal/event_bus"
	"github.com/centsible/centsible/internal/utils"
	"github.com/centsible/centsible/pkg/money"
	"github.com/centsible/centsible/pkg/summary"
	"github.com/centsible/centsible/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summaryServiceStub struct {
	summary summary.PlanSummary
}

func (s *summaryServiceStub) GetSummary(ctx context.Context, planId string) (summary.PlanSummary, error) {
	return s.summary, nil
}

func setup(t *testing.T) (*ServiceImpl, *StubRepository, context.Context) {
	repo := NewStubRepository()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}
	planSummary := summary.PlanSummary{
		PlanId:             "plan-1",
		GrossMonthlyIncome: 500000,
		NetMonthlyIncome:   400000,
		TotalExpenses:      250000,
		Surplus:            150000,
		SavingsRate:        37.5,
		Buckets: []summary.BucketAnalysis{
			{BucketId: "b-1", Name: "Needs", TargetAmount: 200000, ActualAmount: 250000, Variance: -50000},
		},
	}
	service := NewService(repo, &summaryServiceStub{summary: planSummary}, event_bus.NewEventBus(), clock)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "test-user"})
	t.Cleanup(repo.Cleanup)
	return service, repo, ctx
}

func TestServiceImpl_CreateSnapshot(t *testing.T) {
	service, repo, ctx := setup(t)

	// when no month is given the clock decides
	snapshot, err := service.CreateSnapshot(ctx, "plan-1", "")

	// then
	require.NoError(t, err)
	assert.NotEmpty(t, snapshot.Id)
	assert.Equal(t, "2025-03", snapshot.YearMonth)
	assert.Equal(t, money.Cents(250000), snapshot.TotalExpenses)
	require.Len(t, snapshot.Buckets, 1)
	assert.Equal(t, money.Cents(200000), snapshot.Buckets[0].Allocated)
	assert.Equal(t, money.Cents(250000), snapshot.Buckets[0].Spent)
	assert.Equal(t, money.Cents(-50000), snapshot.Buckets[0].Remaining)

	stored, err := repo.GetSnapshot(ctx, 1, "plan-1", "2025-03")
	assert.NoError(t, err)
	assert.Equal(t, snapshot.Id, stored.Id)
}

func TestServiceImpl_CreateSnapshot_ExplicitMonthSupersedes(t *testing.T) {
	service, repo, ctx := setup(t)

	first, err := service.CreateSnapshot(ctx, "plan-1", "2025-01")
	require.NoError(t, err)
	second, err := service.CreateSnapshot(ctx, "plan-1", "2025-01")
	require.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id)
	snapshots, err := repo.ListSnapshots(ctx, 1, "plan-1", 0)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, second.Id, snapshots[0].Id)
}

func TestServiceImpl_CreateSnapshot_RejectsMalformedMonth(t *testing.T) {
	service, _, ctx := setup(t)

	_, err := service.CreateSnapshot(ctx, "plan-1", "March 2025")

	assert.Error(t, err)
}

func TestServiceImpl_GetRollingAverages(t *testing.T) {
	service, repo, ctx := setup(t)
	months := []struct {
		yearMonth string
		expenses  money.Cents
		surplus   money.Cents
	}{
		{"2025-01", 200000, 100000},
		{"2025-02", 250000, 50000},
		{"2025-03", 300000, 0},
	}
	for _, m := range months {
		err := repo.StoreSnapshot(ctx, 1, MonthlySnapshot{
			Id: "snap-" + m.yearMonth, PlanId: "plan-1", YearMonth: m.yearMonth,
			TotalExpenses: m.expenses, Surplus: m.surplus,
		})
		require.NoError(t, err)
	}

	averages, err := service.GetRollingAverages(ctx, "plan-1", 3)

	require.NoError(t, err)
	require.NotNil(t, averages)
	assert.Equal(t, 3, averages.Months)
	assert.Equal(t, money.Cents(250000), averages.AverageExpenses)
	assert.Equal(t, money.Cents(50000), averages.AverageSurplus)
	assert.Equal(t, TrendIncreasing, averages.Trend)
}

func TestServiceImpl_GetRollingAverages_NotEnoughSnapshots(t *testing.T) {
	service, repo, ctx := setup(t)
	err := repo.StoreSnapshot(ctx, 1, MonthlySnapshot{
		Id: "snap-1", PlanId: "plan-1", YearMonth: "2025-01", TotalExpenses: 200000,
	})
	require.NoError(t, err)

	averages, err := service.GetRollingAverages(ctx, "plan-1", 3)

	require.NoError(t, err)
	assert.Nil(t, averages)
}

func TestCalculateTrend(t *testing.T) {
	monthly := func(expenses ...money.Cents) []MonthlySnapshot {
		// most recent first, matching repository order
		snapshots := make([]MonthlySnapshot, 0, len(expenses))
		for _, e := range expenses {
			snapshots = append(snapshots, MonthlySnapshot{TotalExpenses: e})
		}
		return snapshots
	}

	tests := []struct {
		name      string
		snapshots []MonthlySnapshot
		want      Trend
	}{
		{name: "rising spending", snapshots: monthly(300000, 250000, 200000, 150000), want: TrendIncreasing},
		{name: "falling spending", snapshots: monthly(150000, 200000, 250000, 300000), want: TrendDecreasing},
		{name: "movement within five percent is stable", snapshots: monthly(204000, 200000, 200000, 200000), want: TrendStable},
		{name: "single snapshot is stable", snapshots: monthly(200000), want: TrendStable},
		{name: "no snapshots is stable", snapshots: nil, want: TrendStable},
		{name: "all zero spending is stable", snapshots: monthly(0, 0, 0, 0), want: TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateTrend(tt.snapshots))
		})
	}
}

package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/centsible/centsible/internal/event_bus"
	"github.com/centsible/centsible/internal/utils"
	"github.com/centsible/centsible/pkg/money"
	"github.com/centsible/centsible/pkg/summary"
	"github.com/centsible/centsible/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const yearMonthLayout = "2006-01"

type Service interface {
	// CreateSnapshot freezes the plan's current summary under the given
	// month, or under the current month when yearMonth is empty. An
	// existing snapshot of the same month is superseded.
	CreateSnapshot(ctx context.Context, planId string, yearMonth string) (MonthlySnapshot, error)
	ListSnapshots(ctx context.Context, planId string) ([]MonthlySnapshot, error)
	// GetRollingAverages aggregates the plan's last months snapshots.
	// It returns nil when fewer snapshots exist than requested.
	GetRollingAverages(ctx context.Context, planId string, months int) (*RollingAverages, error)
}

type ServiceImpl struct {
	repo           Repository
	summaryService summary.Service
	eventBus       *event_bus.EventBus
	clock          utils.Clock
}

func NewService(repo Repository, summaryService summary.Service, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		repo:           repo,
		summaryService: summaryService,
		eventBus:       eventBus,
		clock:          clock,
	}
}

func (s *ServiceImpl) CreateSnapshot(ctx context.Context, planId string, yearMonth string) (MonthlySnapshot, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return MonthlySnapshot{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if yearMonth == "" {
		yearMonth = s.clock.Now().Format(yearMonthLayout)
	} else if _, err := time.Parse(yearMonthLayout, yearMonth); err != nil {
		return MonthlySnapshot{}, fmt.Errorf("invalid year month %q, expected YYYY-MM", yearMonth)
	}

	planSummary, err := s.summaryService.GetSummary(ctx, planId)
	if err != nil {
		return MonthlySnapshot{}, fmt.Errorf("could not summarize plan: %w", err)
	}

	snapshot := fromSummary(planSummary, yearMonth, s.clock.Now())
	snapshot.Id = uuid.NewString()
	if err := s.repo.StoreSnapshot(ctx, userId, snapshot); err != nil {
		return MonthlySnapshot{}, err
	}

	err = s.eventBus.Publish(event_bus.NewEvent(
		ctx,
		event_bus.SnapshotCreatedEvent,
		event_bus.SnapshotCreated{
			SnapshotId: snapshot.Id,
			PlanId:     snapshot.PlanId,
			YearMonth:  snapshot.YearMonth,
		},
	))
	if err != nil {
		log.Errorf("failed to publish snapshot created event: %v", err)
	}
	return snapshot, nil
}

func (s *ServiceImpl) ListSnapshots(ctx context.Context, planId string) ([]MonthlySnapshot, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListSnapshots(ctx, userId, planId, 0)
}

func (s *ServiceImpl) GetRollingAverages(ctx context.Context, planId string, months int) (*RollingAverages, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if months < 1 {
		return nil, fmt.Errorf("months must be positive, got %d", months)
	}

	snapshots, err := s.repo.ListSnapshots(ctx, userId, planId, months)
	if err != nil {
		return nil, err
	}
	if len(snapshots) < months {
		return nil, nil
	}

	averageExpenses, err := averageOf(snapshots, func(s MonthlySnapshot) money.Cents { return s.TotalExpenses })
	if err != nil {
		return nil, err
	}
	averageSurplus, err := averageOf(snapshots, func(s MonthlySnapshot) money.Cents { return s.Surplus })
	if err != nil {
		return nil, err
	}

	return &RollingAverages{
		Months:          months,
		AverageExpenses: averageExpenses,
		AverageSurplus:  averageSurplus,
		Trend:           CalculateTrend(snapshots),
	}, nil
}

// CalculateTrend compares average spending of the newer half of the
// snapshots against the older half. Snapshots must be ordered most recent
// first. Movement within 5% of the older average counts as stable.
func CalculateTrend(snapshots []MonthlySnapshot) Trend {
	if len(snapshots) < 2 {
		return TrendStable
	}
	mid := len(snapshots) / 2
	recent, err := averageOf(snapshots[:mid], func(s MonthlySnapshot) money.Cents { return s.TotalExpenses })
	if err != nil {
		return TrendStable
	}
	older, err := averageOf(snapshots[mid:], func(s MonthlySnapshot) money.Cents { return s.TotalExpenses })
	if err != nil {
		return TrendStable
	}
	if older == 0 {
		return TrendStable
	}

	changePercent := float64(recent-older) / float64(older) * 100
	switch {
	case changePercent > 5:
		return TrendIncreasing
	case changePercent < -5:
		return TrendDecreasing
	}
	return TrendStable
}

func averageOf(snapshots []MonthlySnapshot, value func(MonthlySnapshot) money.Cents) (money.Cents, error) {
	values := make([]money.Cents, 0, len(snapshots))
	for _, snapshot := range snapshots {
		values = append(values, value(snapshot))
	}
	total, err := money.Sum(values)
	if err != nil {
		return 0, err
	}
	return money.Divide(total, float64(len(snapshots)))
}

func fromSummary(planSummary summary.PlanSummary, yearMonth string, createdAt time.Time) MonthlySnapshot {
	snapshot := MonthlySnapshot{
		PlanId:        planSummary.PlanId,
		YearMonth:     yearMonth,
		GrossIncome:   planSummary.GrossMonthlyIncome,
		NetIncome:     planSummary.NetMonthlyIncome,
		TotalExpenses: planSummary.TotalExpenses,
		Surplus:       planSummary.Surplus,
		SavingsRate:   planSummary.SavingsRate,
		CreatedAt:     createdAt,
	}
	for _, analysis := range planSummary.Buckets {
		snapshot.Buckets = append(snapshot.Buckets, BucketSummary{
			BucketId:  analysis.BucketId,
			Name:      analysis.Name,
			Allocated: analysis.TargetAmount,
			Spent:     analysis.ActualAmount,
			Remaining: analysis.Variance,
		})
	}
	return snapshot
}

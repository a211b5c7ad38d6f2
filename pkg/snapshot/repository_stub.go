package snapshot

import (
	"context"
	"fmt"
	"sort"
)

type StubRepository struct {
	data map[string]MonthlySnapshot
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]MonthlySnapshot{}}
}

func key(planId, yearMonth string) string {
	return planId + "/" + yearMonth
}

func (s *StubRepository) StoreSnapshot(ctx context.Context, userId int, snapshot MonthlySnapshot) error {
	s.data[key(snapshot.PlanId, snapshot.YearMonth)] = snapshot
	return nil
}

func (s *StubRepository) ListSnapshots(ctx context.Context, userId int, planId string, limit int) ([]MonthlySnapshot, error) {
	snapshots := make([]MonthlySnapshot, 0, len(s.data))
	for _, snapshot := range s.data {
		if snapshot.PlanId == planId {
			snapshots = append(snapshots, snapshot)
		}
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].YearMonth > snapshots[j].YearMonth })
	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}
	return snapshots, nil
}

func (s *StubRepository) GetSnapshot(ctx context.Context, userId int, planId string, yearMonth string) (MonthlySnapshot, error) {
	snapshot, ok := s.data[key(planId, yearMonth)]
	if !ok {
		return MonthlySnapshot{}, fmt.Errorf("snapshot %s/%s: %w", planId, yearMonth, ErrSnapshotNotFound)
	}
	return snapshot, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]MonthlySnapshot{}
}

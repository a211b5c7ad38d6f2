package snapshot

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/centsible/centsible/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *sql.DB

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	defer cleanup()
	code := m.Run()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository, int) {
	ctx := context.Background()
	repository := NewRepository(db)
	userId := seedTestUser(t)
	t.Cleanup(func() {
		_, err := db.ExecContext(ctx, `DELETE FROM snapshot WHERE user_id = $1`, userId)
		require.NoError(t, err)
	})
	return ctx, repository, userId
}

func seedTestUser(t *testing.T) int {
	var userId int
	err := db.QueryRow(
		`INSERT INTO users (uid, username, display_name)
			VALUES ('test-user-uid', 'test_user', 'Test User')
			ON CONFLICT (uid) DO UPDATE SET display_name = EXCLUDED.display_name
			RETURNING id`,
	).Scan(&userId)
	require.NoError(t, err)
	return userId
}

func testSnapshot(id, yearMonth string) MonthlySnapshot {
	return MonthlySnapshot{
		Id:            id,
		PlanId:        "plan-1",
		YearMonth:     yearMonth,
		GrossIncome:   500000,
		NetIncome:     400000,
		TotalExpenses: 250000,
		Surplus:       150000,
		SavingsRate:   37.5,
		Buckets: []BucketSummary{
			{BucketId: "b-1", Name: "Needs", Allocated: 200000, Spent: 180000, Remaining: 20000},
			{BucketId: "b-2", Name: "Savings", Allocated: 80000, Spent: 100000, Remaining: -20000},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestRepositoryImpl_StoreSnapshot(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)

	// when
	err := repo.StoreSnapshot(ctx, userId, testSnapshot("snap-1", "2025-03"))
	require.NoError(t, err)

	// then
	stored, err := repo.GetSnapshot(ctx, userId, "plan-1", "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "snap-1", stored.Id)
	assert.Equal(t, int64(250000), stored.TotalExpenses.Int64())
	require.Len(t, stored.Buckets, 2)
	assert.Equal(t, "Needs", stored.Buckets[0].Name)
	assert.Equal(t, int64(-20000), stored.Buckets[1].Remaining.Int64())
}

func TestRepositoryImpl_StoreSnapshot_SupersedesSameMonth(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	err := repo.StoreSnapshot(ctx, userId, testSnapshot("snap-1", "2025-03"))
	require.NoError(t, err)

	// when the same month is snapshotted again
	replacement := testSnapshot("snap-2", "2025-03")
	replacement.TotalExpenses = 300000
	replacement.Buckets = replacement.Buckets[:1]
	err = repo.StoreSnapshot(ctx, userId, replacement)
	require.NoError(t, err)

	// then only the replacement remains
	snapshots, err := repo.ListSnapshots(ctx, userId, "plan-1", 0)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "snap-2", snapshots[0].Id)
	assert.Equal(t, int64(300000), snapshots[0].TotalExpenses.Int64())
	assert.Len(t, snapshots[0].Buckets, 1)
}

func TestRepositoryImpl_ListSnapshots_OrderAndLimit(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	for _, yearMonth := range []string{"2025-01", "2025-03", "2025-02"} {
		err := repo.StoreSnapshot(ctx, userId, testSnapshot("snap-"+yearMonth, yearMonth))
		require.NoError(t, err)
	}

	// when
	snapshots, err := repo.ListSnapshots(ctx, userId, "plan-1", 2)

	// then most recent months come first
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "2025-03", snapshots[0].YearMonth)
	assert.Equal(t, "2025-02", snapshots[1].YearMonth)
}

func TestRepositoryImpl_GetSnapshot_NotFound(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)

	_, err := repo.GetSnapshot(ctx, userId, "plan-1", "1999-01")

	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/centsible/centsible/pkg/money"
	log "github.com/sirupsen/logrus"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

type Repository interface {
	// StoreSnapshot inserts the snapshot, replacing any existing snapshot
	// of the same plan and month.
	StoreSnapshot(ctx context.Context, userId int, snapshot MonthlySnapshot) error
	// ListSnapshots returns up to limit snapshots of the plan, most recent
	// month first. A limit of 0 means no limit.
	ListSnapshots(ctx context.Context, userId int, planId string, limit int) ([]MonthlySnapshot, error)
	GetSnapshot(ctx context.Context, userId int, planId string, yearMonth string) (MonthlySnapshot, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreSnapshot(ctx context.Context, userId int, snapshot MonthlySnapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO snapshot (id, user_id, plan_id, year_month, gross_income_cents, net_income_cents,
					total_expenses_cents, surplus_cents, savings_rate, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				ON CONFLICT (user_id, plan_id, year_month) DO UPDATE
				SET id = EXCLUDED.id,
					gross_income_cents = EXCLUDED.gross_income_cents,
					net_income_cents = EXCLUDED.net_income_cents,
					total_expenses_cents = EXCLUDED.total_expenses_cents,
					surplus_cents = EXCLUDED.surplus_cents,
					savings_rate = EXCLUDED.savings_rate,
					created_at = EXCLUDED.created_at`
	_, err = tx.ExecContext(ctx, query,
		snapshot.Id,
		userId,
		snapshot.PlanId,
		snapshot.YearMonth,
		snapshot.GrossIncome.Int64(),
		snapshot.NetIncome.Int64(),
		snapshot.TotalExpenses.Int64(),
		snapshot.Surplus.Int64(),
		snapshot.SavingsRate,
		snapshot.CreatedAt,
	)
	if err != nil {
		err := fmt.Errorf("could not store snapshot: %w", err)
		log.Error(err)
		return err
	}

	// a superseded snapshot keeps the new id, so old bucket rows go away first
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM snapshot_bucket
			WHERE snapshot_id IN (SELECT id FROM snapshot WHERE user_id = $1 AND plan_id = $2 AND year_month = $3)`,
		userId, snapshot.PlanId, snapshot.YearMonth); err != nil {
		return fmt.Errorf("could not delete snapshot buckets: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_bucket (snapshot_id, position, bucket_id, name, allocated_cents, spent_cents, remaining_cents)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return fmt.Errorf("could not prepare query: %w", err)
	}
	defer stmt.Close()

	for i, bucketSummary := range snapshot.Buckets {
		_, err := stmt.ExecContext(ctx,
			snapshot.Id,
			i,
			bucketSummary.BucketId,
			bucketSummary.Name,
			bucketSummary.Allocated.Int64(),
			bucketSummary.Spent.Int64(),
			bucketSummary.Remaining.Int64(),
		)
		if err != nil {
			return fmt.Errorf("could not store snapshot bucket: %w", err)
		}
	}
	return tx.Commit()
}

func (r *RepositoryImpl) ListSnapshots(ctx context.Context, userId int, planId string, limit int) ([]MonthlySnapshot, error) {
	query := `SELECT id, plan_id, year_month, gross_income_cents, net_income_cents, total_expenses_cents,
					surplus_cents, savings_rate, created_at
				FROM snapshot
				WHERE user_id = $1 AND plan_id = $2
				ORDER BY year_month DESC`
	args := []any{userId, planId}
	if limit > 0 {
		query += " LIMIT $3"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query snapshots: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]MonthlySnapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range snapshots {
		buckets, err := r.loadBuckets(ctx, snapshots[i].Id)
		if err != nil {
			return nil, err
		}
		snapshots[i].Buckets = buckets
	}
	return snapshots, nil
}

func (r *RepositoryImpl) GetSnapshot(ctx context.Context, userId int, planId string, yearMonth string) (MonthlySnapshot, error) {
	query := `SELECT id, plan_id, year_month, gross_income_cents, net_income_cents, total_expenses_cents,
					surplus_cents, savings_rate, created_at
				FROM snapshot
				WHERE user_id = $1 AND plan_id = $2 AND year_month = $3`

	snapshot, err := scanSnapshot(r.db.QueryRowContext(ctx, query, userId, planId, yearMonth))
	if errors.Is(err, sql.ErrNoRows) {
		return MonthlySnapshot{}, fmt.Errorf("snapshot %s/%s: %w", planId, yearMonth, ErrSnapshotNotFound)
	} else if err != nil {
		log.Errorf("failed to get snapshot: %v", err)
		return MonthlySnapshot{}, err
	}

	buckets, err := r.loadBuckets(ctx, snapshot.Id)
	if err != nil {
		return MonthlySnapshot{}, err
	}
	snapshot.Buckets = buckets
	return snapshot, nil
}

func (r *RepositoryImpl) loadBuckets(ctx context.Context, snapshotId string) ([]BucketSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT bucket_id, name, allocated_cents, spent_cents, remaining_cents
			FROM snapshot_bucket WHERE snapshot_id = $1 ORDER BY position`,
		snapshotId)
	if err != nil {
		return nil, fmt.Errorf("could not query snapshot buckets: %w", err)
	}
	defer rows.Close()

	var buckets []BucketSummary
	for rows.Next() {
		var bucketSummary BucketSummary
		var allocated, spent, remaining int64
		if err := rows.Scan(&bucketSummary.BucketId, &bucketSummary.Name, &allocated, &spent, &remaining); err != nil {
			return nil, err
		}
		bucketSummary.Allocated = money.Cents(allocated)
		bucketSummary.Spent = money.Cents(spent)
		bucketSummary.Remaining = money.Cents(remaining)
		buckets = append(buckets, bucketSummary)
	}
	return buckets, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (MonthlySnapshot, error) {
	var snapshot MonthlySnapshot
	var gross, net, total, surplus int64
	err := row.Scan(
		&snapshot.Id,
		&snapshot.PlanId,
		&snapshot.YearMonth,
		&gross,
		&net,
		&total,
		&surplus,
		&snapshot.SavingsRate,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return MonthlySnapshot{}, err
	}
	snapshot.GrossIncome = money.Cents(gross)
	snapshot.NetIncome = money.Cents(net)
	snapshot.TotalExpenses = money.Cents(total)
	snapshot.Surplus = money.Cents(surplus)
	return snapshot, nil
}

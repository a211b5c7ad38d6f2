package bucket

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/centsible/centsible/pkg/money"
	log "github.com/sirupsen/logrus"
)

var ErrBucketNotFound = errors.New("bucket not found")

type Repository interface {
	// ListBuckets returns the plan's buckets ordered by position.
	ListBuckets(ctx context.Context, userId int, planId string) ([]Bucket, error)
	GetBucket(ctx context.Context, userId int, bucketId string) (Bucket, error)
	StoreBucket(ctx context.Context, userId int, bucket Bucket) error
	UpdateBucket(ctx context.Context, userId int, bucket Bucket) (bool, error)
	UpdatePosition(ctx context.Context, userId int, bucketId string, position int) (bool, error)
	FindMaxPosition(ctx context.Context, userId int, planId string) (int, error)
	DeleteBucket(ctx context.Context, userId int, bucketId string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListBuckets(ctx context.Context, userId int, planId string) ([]Bucket, error) {
	query := `SELECT id, plan_id, name, color, mode, target_percentage, target_amount_cents, position
				FROM bucket
				WHERE user_id = $1 AND plan_id = $2
				ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, userId, planId)
	if err != nil {
		err := fmt.Errorf("could not query buckets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	buckets := make([]Bucket, 0)
	for rows.Next() {
		bucket, err := scanBucket(rows)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, bucket)
	}
	return buckets, rows.Err()
}

func (r *RepositoryImpl) GetBucket(ctx context.Context, userId int, bucketId string) (Bucket, error) {
	query := `SELECT id, plan_id, name, color, mode, target_percentage, target_amount_cents, position
				FROM bucket
				WHERE user_id = $1 AND id = $2`

	bucket, err := scanBucket(r.db.QueryRowContext(ctx, query, userId, bucketId))
	if errors.Is(err, sql.ErrNoRows) {
		return Bucket{}, fmt.Errorf("bucket %s: %w", bucketId, ErrBucketNotFound)
	} else if err != nil {
		log.Errorf("failed to get bucket: %v", err)
		return Bucket{}, err
	}
	return bucket, nil
}

func (r *RepositoryImpl) StoreBucket(ctx context.Context, userId int, bucket Bucket) error {
	query := `INSERT INTO bucket (id, user_id, plan_id, name, color, mode, target_percentage, target_amount_cents, position)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	targetPercentage, targetAmount := targetColumns(bucket.Target)
	_, err := r.db.ExecContext(ctx, query,
		bucket.Id,
		userId,
		bucket.PlanId,
		bucket.Name,
		bucket.Color,
		string(bucket.Target.Mode()),
		targetPercentage,
		targetAmount,
		bucket.Position,
	)
	if err != nil {
		err := fmt.Errorf("could not store bucket: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) UpdateBucket(ctx context.Context, userId int, bucket Bucket) (bool, error) {
	query := `UPDATE bucket
				SET name = $1, color = $2, mode = $3, target_percentage = $4, target_amount_cents = $5
				WHERE user_id = $6 AND id = $7`

	targetPercentage, targetAmount := targetColumns(bucket.Target)
	result, err := r.db.ExecContext(ctx, query,
		bucket.Name,
		bucket.Color,
		string(bucket.Target.Mode()),
		targetPercentage,
		targetAmount,
		userId,
		bucket.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update bucket: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *RepositoryImpl) UpdatePosition(ctx context.Context, userId int, bucketId string, position int) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bucket SET position = $1 WHERE user_id = $2 AND id = $3`,
		position, userId, bucketId)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *RepositoryImpl) FindMaxPosition(ctx context.Context, userId int, planId string) (int, error) {
	var maxPosition int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) FROM bucket WHERE user_id = $1 AND plan_id = $2`,
		userId, planId).Scan(&maxPosition)
	if err != nil {
		return 0, err
	}
	return maxPosition, nil
}

func (r *RepositoryImpl) DeleteBucket(ctx context.Context, userId int, bucketId string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bucket WHERE user_id = $1 AND id = $2`, userId, bucketId)
	if err != nil {
		err := fmt.Errorf("could not delete bucket: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func targetColumns(target Target) (any, any) {
	switch target.Mode() {
	case ModePercentage:
		return target.Percentage(), nil
	case ModeFixed:
		return nil, target.Amount().Int64()
	}
	return nil, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBucket(row rowScanner) (Bucket, error) {
	var bucket Bucket
	var mode string
	var targetPercentage sql.NullFloat64
	var targetAmount sql.NullInt64
	err := row.Scan(
		&bucket.Id,
		&bucket.PlanId,
		&bucket.Name,
		&bucket.Color,
		&mode,
		&targetPercentage,
		&targetAmount,
		&bucket.Position,
	)
	if err != nil {
		return Bucket{}, err
	}

	switch Mode(mode) {
	case ModePercentage:
		bucket.Target = PercentageTarget(targetPercentage.Float64)
	case ModeFixed:
		amount, err := money.NewNonNegative(targetAmount.Int64)
		if err != nil {
			return Bucket{}, fmt.Errorf("stored bucket target is invalid: %w", err)
		}
		bucket.Target = FixedTarget(amount)
	default:
		return Bucket{}, fmt.Errorf("stored bucket %s has unknown mode %q", bucket.Id, mode)
	}
	return bucket, nil
}

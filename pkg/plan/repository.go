package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/centsible/centsible/pkg/frequency"
	"github.com/centsible/centsible/pkg/money"
	log "github.com/sirupsen/logrus"
)

var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrNoActivePlan = errors.New("no active plan")
)

type Repository interface {
	ListPlans(ctx context.Context, userId int) ([]Plan, error)
	GetPlan(ctx context.Context, userId int, planId string) (Plan, error)
	// GetActivePlan returns the single active plan. Returns ErrNoActivePlan
	// when the user has no plans yet.
	GetActivePlan(ctx context.Context, userId int) (Plan, error)
	CreatePlan(ctx context.Context, userId int, plan Plan) (Plan, error)
	// UpdatePlan replaces the stored record wholesale and bumps its version.
	UpdatePlan(ctx context.Context, userId int, plan Plan) (Plan, error)
	DeletePlan(ctx context.Context, userId int, planId string) (bool, error)
	// ActivatePlan makes the given plan the active one and deactivates the rest.
	ActivatePlan(ctx context.Context, userId int, planId string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const planColumns = `id, name, currency, gross_income_cents, income_frequency, tax_mode,
				tax_effective_rate, is_active, created_at, updated_at, version`

func (r *RepositoryImpl) ListPlans(ctx context.Context, userId int) ([]Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plan WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query plans: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	plans := make([]Plan, 0)
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (r *RepositoryImpl) GetPlan(ctx context.Context, userId int, planId string) (Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plan WHERE user_id = $1 AND id = $2`

	plan, err := scanPlan(r.db.QueryRowContext(ctx, query, userId, planId))
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, fmt.Errorf("plan %s: %w", planId, ErrPlanNotFound)
	} else if err != nil {
		log.Errorf("failed to get plan: %v", err)
		return Plan{}, err
	}
	return plan, nil
}

func (r *RepositoryImpl) GetActivePlan(ctx context.Context, userId int) (Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plan WHERE user_id = $1 AND is_active`

	plan, err := scanPlan(r.db.QueryRowContext(ctx, query, userId))
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, ErrNoActivePlan
	} else if err != nil {
		log.Errorf("failed to get active plan: %v", err)
		return Plan{}, err
	}
	return plan, nil
}

func (r *RepositoryImpl) CreatePlan(ctx context.Context, userId int, plan Plan) (Plan, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Plan{}, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The first plan a user creates becomes the active one.
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM plan WHERE user_id = $1`, userId).Scan(&count); err != nil {
		return Plan{}, err
	}
	plan.IsActive = count == 0

	query := `INSERT INTO plan (id, user_id, name, currency, gross_income_cents, income_frequency,
					tax_mode, tax_effective_rate, is_active)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING created_at, updated_at, version`
	err = tx.QueryRowContext(ctx, query,
		plan.Id,
		userId,
		plan.Name,
		plan.Currency,
		plan.GrossIncome.Int64(),
		string(plan.IncomeFrequency),
		string(plan.TaxMode),
		plan.TaxEffectiveRate,
		plan.IsActive,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt, &plan.Version)
	if err != nil {
		err := fmt.Errorf("could not store plan: %w", err)
		log.Error(err)
		return Plan{}, err
	}

	if err := tx.Commit(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

func (r *RepositoryImpl) UpdatePlan(ctx context.Context, userId int, plan Plan) (Plan, error) {
	query := `UPDATE plan
				SET name = $1, currency = $2, gross_income_cents = $3, income_frequency = $4,
					tax_mode = $5, tax_effective_rate = $6, updated_at = now(), version = version + 1
				WHERE user_id = $7 AND id = $8
				RETURNING is_active, created_at, updated_at, version`
	err := r.db.QueryRowContext(ctx, query,
		plan.Name,
		plan.Currency,
		plan.GrossIncome.Int64(),
		string(plan.IncomeFrequency),
		string(plan.TaxMode),
		plan.TaxEffectiveRate,
		userId,
		plan.Id,
	).Scan(&plan.IsActive, &plan.CreatedAt, &plan.UpdatedAt, &plan.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, fmt.Errorf("plan %s: %w", plan.Id, ErrPlanNotFound)
	} else if err != nil {
		err := fmt.Errorf("could not update plan: %w", err)
		log.Error(err)
		return Plan{}, err
	}
	return plan, nil
}

func (r *RepositoryImpl) DeletePlan(ctx context.Context, userId int, planId string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM plan WHERE user_id = $1 AND id = $2 AND NOT is_active`, userId, planId)
	if err != nil {
		err := fmt.Errorf("could not delete plan: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *RepositoryImpl) ActivatePlan(ctx context.Context, userId int, planId string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE plan SET is_active = false WHERE user_id = $1`, userId); err != nil {
		return false, err
	}
	result, err := tx.ExecContext(ctx, `UPDATE plan SET is_active = true WHERE user_id = $1 AND id = $2`, userId, planId)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rowsAffected == 0 {
		return false, nil
	}
	return true, tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (Plan, error) {
	var plan Plan
	var grossIncome int64
	var incomeFrequency, taxMode string
	err := row.Scan(
		&plan.Id,
		&plan.Name,
		&plan.Currency,
		&grossIncome,
		&incomeFrequency,
		&taxMode,
		&plan.TaxEffectiveRate,
		&plan.IsActive,
		&plan.CreatedAt,
		&plan.UpdatedAt,
		&plan.Version,
	)
	if err != nil {
		return Plan{}, err
	}
	amount, err := money.NewNonNegative(grossIncome)
	if err != nil {
		return Plan{}, fmt.Errorf("stored gross income is invalid: %w", err)
	}
	plan.GrossIncome = amount
	plan.IncomeFrequency = frequency.Frequency(incomeFrequency)
	plan.TaxMode = TaxMode(taxMode)
	return plan, nil
}

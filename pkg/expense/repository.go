package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/centsible/centsible/pkg/frequency"
	"github.com/centsible/centsible/pkg/money"
	log "github.com/sirupsen/logrus"
)

var ErrExpenseNotFound = errors.New("expense not found")

type Repository interface {
	ListExpenses(ctx context.Context, userId int, planId string) ([]Expense, error)
	GetExpense(ctx context.Context, userId int, expenseId string) (Expense, error)
	StoreExpense(ctx context.Context, userId int, expense Expense) error
	UpdateExpense(ctx context.Context, userId int, expense Expense) (bool, error)
	DeleteExpense(ctx context.Context, userId int, expenseId string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListExpenses(ctx context.Context, userId int, planId string) ([]Expense, error) {
	query := `SELECT id, plan_id, bucket_id, name, amount_cents, currency, frequency, category, is_fixed, transaction_date
				FROM expense
				WHERE user_id = $1 AND plan_id = $2
				ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, userId, planId)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	expenses := make([]Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range expenses {
		splits, err := r.loadSplits(ctx, expenses[i].Id)
		if err != nil {
			return nil, err
		}
		expenses[i].Splits = splits
	}
	return expenses, nil
}

func (r *RepositoryImpl) GetExpense(ctx context.Context, userId int, expenseId string) (Expense, error) {
	query := `SELECT id, plan_id, bucket_id, name, amount_cents, currency, frequency, category, is_fixed, transaction_date
				FROM expense
				WHERE user_id = $1 AND id = $2`

	expense, err := scanExpense(r.db.QueryRowContext(ctx, query, userId, expenseId))
	if errors.Is(err, sql.ErrNoRows) {
		return Expense{}, fmt.Errorf("expense %s: %w", expenseId, ErrExpenseNotFound)
	} else if err != nil {
		log.Errorf("failed to get expense: %v", err)
		return Expense{}, err
	}

	splits, err := r.loadSplits(ctx, expense.Id)
	if err != nil {
		return Expense{}, err
	}
	expense.Splits = splits
	return expense, nil
}

func (r *RepositoryImpl) StoreExpense(ctx context.Context, userId int, expense Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO expense (id, user_id, plan_id, bucket_id, name, amount_cents, currency, frequency,
					category, is_fixed, transaction_date)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = tx.ExecContext(ctx, query,
		expense.Id,
		userId,
		expense.PlanId,
		expense.BucketId,
		expense.Name,
		expense.Amount.Int64(),
		expense.Currency,
		string(expense.Frequency),
		expense.Category,
		expense.IsFixed,
		nullableDate(expense.TransactionDate),
	)
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
		log.Error(err)
		return err
	}

	if err := storeSplits(ctx, tx, expense); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *RepositoryImpl) UpdateExpense(ctx context.Context, userId int, expense Expense) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE expense
				SET bucket_id = $1, name = $2, amount_cents = $3, currency = $4, frequency = $5,
					category = $6, is_fixed = $7, transaction_date = $8
				WHERE user_id = $9 AND id = $10`
	result, err := tx.ExecContext(ctx, query,
		expense.BucketId,
		expense.Name,
		expense.Amount.Int64(),
		expense.Currency,
		string(expense.Frequency),
		expense.Category,
		expense.IsFixed,
		nullableDate(expense.TransactionDate),
		userId,
		expense.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rowsAffected == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_split WHERE expense_id = $1`, expense.Id); err != nil {
		return false, err
	}
	if err := storeSplits(ctx, tx, expense); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (r *RepositoryImpl) DeleteExpense(ctx context.Context, userId int, expenseId string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expense WHERE user_id = $1 AND id = $2`, userId, expenseId)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *RepositoryImpl) loadSplits(ctx context.Context, expenseId string) ([]Split, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT bucket_id, category, amount_cents FROM expense_split WHERE expense_id = $1 ORDER BY position`,
		expenseId)
	if err != nil {
		return nil, fmt.Errorf("could not query expense splits: %w", err)
	}
	defer rows.Close()

	var splits []Split
	for rows.Next() {
		var split Split
		var amount int64
		if err := rows.Scan(&split.BucketId, &split.Category, &amount); err != nil {
			return nil, err
		}
		cents, err := money.NewNonNegative(amount)
		if err != nil {
			return nil, fmt.Errorf("stored split amount is invalid: %w", err)
		}
		split.Amount = cents
		splits = append(splits, split)
	}
	return splits, rows.Err()
}

func storeSplits(ctx context.Context, tx *sql.Tx, expense Expense) error {
	if len(expense.Splits) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expense_split (expense_id, position, bucket_id, category, amount_cents) VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return fmt.Errorf("could not prepare query: %w", err)
	}
	defer stmt.Close()

	for i, split := range expense.Splits {
		if _, err := stmt.ExecContext(ctx, expense.Id, i, split.BucketId, split.Category, split.Amount.Int64()); err != nil {
			return fmt.Errorf("could not store expense split: %w", err)
		}
	}
	return nil
}

func nullableDate(date string) any {
	if date == "" {
		return nil
	}
	return date
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (Expense, error) {
	var expense Expense
	var amount int64
	var freq string
	var transactionDate sql.NullString
	err := row.Scan(
		&expense.Id,
		&expense.PlanId,
		&expense.BucketId,
		&expense.Name,
		&amount,
		&expense.Currency,
		&freq,
		&expense.Category,
		&expense.IsFixed,
		&transactionDate,
	)
	if err != nil {
		return Expense{}, err
	}
	cents, err := money.NewNonNegative(amount)
	if err != nil {
		return Expense{}, fmt.Errorf("stored expense amount is invalid: %w", err)
	}
	expense.Amount = cents
	expense.Frequency = frequency.Frequency(freq)
	if transactionDate.Valid {
		expense.TransactionDate = transactionDate.String
	}
	return expense, nil
}

package currency

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// GetRates returns the stored rate table for the user, or nil when the
	// user has never uploaded one.
	GetRates(ctx context.Context, userId int) (*Rates, error)
	// StoreRates replaces the user's rate table wholesale.
	StoreRates(ctx context.Context, userId int, rates Rates) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetRates(ctx context.Context, userId int) (*Rates, error) {
	query := `SELECT base_currency, currency_code, rate, updated_at
				FROM exchange_rate
				WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query exchange rates: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var rates *Rates
	for rows.Next() {
		var base, code string
		var rate float64
		var updatedAt time.Time
		if err := rows.Scan(&base, &code, &rate, &updatedAt); err != nil {
			return nil, fmt.Errorf("could not scan exchange rate row: %w", err)
		}
		if rates == nil {
			rates = &Rates{BaseCurrency: base, Rates: map[string]float64{}, UpdatedAt: updatedAt}
		}
		rates.Rates[code] = rate
		if updatedAt.After(rates.UpdatedAt) {
			rates.UpdatedAt = updatedAt
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *RepositoryImpl) StoreRates(ctx context.Context, userId int, rates Rates) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM exchange_rate WHERE user_id = $1`, userId); err != nil {
		err := fmt.Errorf("could not clear previous exchange rates: %w", err)
		log.Error(err)
		return err
	}

	query := `INSERT INTO exchange_rate (user_id, base_currency, currency_code, rate, updated_at)
				VALUES ($1, $2, $3, $4, $5)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	for code, rate := range rates.Rates {
		if _, err := stmt.ExecContext(ctx, userId, rates.BaseCurrency, code, rate, rates.UpdatedAt); err != nil {
			err := fmt.Errorf("could not store exchange rate %s: %w", code, err)
			log.Error(err)
			return err
		}
	}

	return tx.Commit()
}

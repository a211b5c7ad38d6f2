package tax

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// ListComponents returns the plan's tax components ordered by position.
	ListComponents(ctx context.Context, userId int, planId string) ([]Component, error)
	// ReplaceComponents stores the given components as the full itemized
	// breakdown for the plan, removing any previously stored ones.
	ReplaceComponents(ctx context.Context, userId int, planId string, components []Component) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListComponents(ctx context.Context, userId int, planId string) ([]Component, error) {
	query := `SELECT id, plan_id, name, rate_percent, position
				FROM tax_component
				WHERE user_id = $1 AND plan_id = $2
				ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, userId, planId)
	if err != nil {
		err := fmt.Errorf("could not query tax components: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	components := make([]Component, 0)
	for rows.Next() {
		var component Component
		err := rows.Scan(
			&component.Id,
			&component.PlanId,
			&component.Name,
			&component.RatePercent,
			&component.Position,
		)
		if err != nil {
			return nil, err
		}
		components = append(components, component)
	}
	return components, rows.Err()
}

func (r *RepositoryImpl) ReplaceComponents(ctx context.Context, userId int, planId string, components []Component) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM tax_component WHERE user_id = $1 AND plan_id = $2`, userId, planId); err != nil {
		err := fmt.Errorf("could not delete tax components: %w", err)
		log.Error(err)
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tax_component (id, user_id, plan_id, name, rate_percent, position) VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("could not prepare query: %w", err)
	}
	defer stmt.Close()

	for _, component := range components {
		_, err := stmt.ExecContext(ctx, component.Id, userId, planId, component.Name, component.RatePercent, component.Position)
		if err != nil {
			err := fmt.Errorf("could not store tax component: %w", err)
			log.Error(err)
			return err
		}
	}
	return tx.Commit()
}

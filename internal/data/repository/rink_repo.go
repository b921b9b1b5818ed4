package repository

import (
	"context"
	"fmt"

	"rink-booking/internal/data/entity"
	"rink-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// RinkRepository is read-only here; rink management lives in the
// external admin tooling.
type RinkRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rink, error)
	FindAllActive(ctx context.Context) ([]*entity.Rink, error)
}

type rinkRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRinkRepository(db database.PgxIface, log *zap.Logger) RinkRepository {
	return &rinkRepository{
		db:  db,
		log: log.With(zap.String("repository", "rink")),
	}
}

func (r *rinkRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rink, error) {
	query := `
		SELECT id, name, city, address, hourly_rate_cents, is_active, created_at, updated_at
		FROM rinks
		WHERE id = $1
	`

	var rink entity.Rink
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rink.ID,
		&rink.Name,
		&rink.City,
		&rink.Address,
		&rink.HourlyRateCents,
		&rink.IsActive,
		&rink.CreatedAt,
		&rink.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rink by ID",
			zap.Error(err),
			zap.String("rink_id", id.String()),
		)
		return nil, fmt.Errorf("find rink by ID %s: %w", id.String(), err)
	}

	return &rink, nil
}

func (r *rinkRepository) FindAllActive(ctx context.Context) ([]*entity.Rink, error) {
	query := `
		SELECT id, name, city, address, hourly_rate_cents, is_active, created_at, updated_at
		FROM rinks
		WHERE is_active = TRUE
		ORDER BY city, name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active rinks", zap.Error(err))
		return nil, fmt.Errorf("find active rinks: %w", err)
	}
	defer rows.Close()

	var rinks []*entity.Rink
	for rows.Next() {
		var rink entity.Rink
		err := rows.Scan(
			&rink.ID,
			&rink.Name,
			&rink.City,
			&rink.Address,
			&rink.HourlyRateCents,
			&rink.IsActive,
			&rink.CreatedAt,
			&rink.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan rink row", zap.Error(err))
			return nil, fmt.Errorf("scan rink row: %w", err)
		}
		rinks = append(rinks, &rink)
	}

	return rinks, rows.Err()
}

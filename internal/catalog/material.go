package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lawnquote/estimates-engine/internal/estimate"
)

// MaterialRepository reads a profile's saved-materials catalog. The
// pipeline only ever sees the snapshot this returns.
type MaterialRepository interface {
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]estimate.CatalogMaterial, error)
}

type materialRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewMaterialRepository(pool *pgxpool.Pool, logger *slog.Logger) MaterialRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &materialRepository{pool: pool, logger: logger}
}

func (r *materialRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]estimate.CatalogMaterial, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, description, unit_price
		   FROM materials
		  WHERE profile_id = $1
		  ORDER BY created_at`, profileID)
	if err != nil {
		r.logger.Error("failed to list materials", "profile_id", profileID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var materials []estimate.CatalogMaterial
	for rows.Next() {
		var id uuid.UUID
		var m estimate.CatalogMaterial
		if err := rows.Scan(&id, &m.Description, &m.UnitPrice); err != nil {
			r.logger.Error("failed to scan material row", "profile_id", profileID, "error", err)
			return nil, err
		}
		m.ID = id.String()
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

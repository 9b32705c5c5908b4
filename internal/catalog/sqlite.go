package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lawnquote/estimates-engine/internal/estimate"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS materials (
	id          TEXT PRIMARY KEY,
	description TEXT NOT NULL,
	unit_price  REAL NOT NULL DEFAULT 0,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteStore is a single-file materials catalog for offline use (the
// batch CLI). Same snapshot contract as the Postgres repository, no
// server required.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure materials schema: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]estimate.CatalogMaterial, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, unit_price FROM materials ORDER BY created_at, rowid`)
	if err != nil {
		s.logger.Error("failed to list materials", "error", err)
		return nil, err
	}
	defer rows.Close()

	var materials []estimate.CatalogMaterial
	for rows.Next() {
		var m estimate.CatalogMaterial
		if err := rows.Scan(&m.ID, &m.Description, &m.UnitPrice); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// Add saves a material and returns its generated id.
func (s *SQLiteStore) Add(ctx context.Context, description string, unitPrice float64) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO materials (id, description, unit_price) VALUES (?, ?, ?)`,
		id, description, unitPrice)
	if err != nil {
		s.logger.Error("failed to add material", "description", description, "error", err)
		return "", err
	}
	return id, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

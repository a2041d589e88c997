package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"brewflow/internal/domain"
	"brewflow/internal/logger"
)

// Compile-time interface check.
var _ domain.LogStore = (*SQLiteStore)(nil)

// SQLiteStore persists brew logs in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS brew_logs (
    id           TEXT PRIMARY KEY,
    brewed_at    TEXT NOT NULL,
    method       TEXT NOT NULL,
    recipe_id    TEXT NOT NULL,
    recipe_name  TEXT NOT NULL,
    dose         REAL NOT NULL,
    yield        REAL NOT NULL,
    water_temp_c REAL NOT NULL,
    grind_label  TEXT NOT NULL,
    brew_time_ms INTEGER NOT NULL,
    rating       INTEGER NOT NULL,
    tag          TEXT NOT NULL DEFAULT '',
    note         TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_brew_logs_brewed_at ON brew_logs (brewed_at DESC);
`

// OpenSQLite connects to (or creates) the brew-log database at path and
// applies the schema.
func OpenSQLite(path string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db, log: log.Named("storage")}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Create inserts a brew log built from the request.
func (s *SQLiteStore) Create(ctx context.Context, req domain.CreateLogRequest) (*domain.BrewLog, error) {
	id := uuid.NewString()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO brew_logs (
            id, brewed_at, method, recipe_id, recipe_name,
            dose, yield, water_temp_c, grind_label,
            brew_time_ms, rating, tag, note
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		req.BrewedAt.UTC().Format(time.RFC3339Nano),
		string(req.Method),
		req.RecipeID,
		req.RecipeName,
		req.Dose,
		req.Yield,
		req.WaterTempC,
		req.GrindLabel,
		req.BrewTime.Milliseconds(),
		req.Rating,
		req.Tag,
		req.Note,
	)
	if err != nil {
		return nil, fmt.Errorf("insert brew log: %w", err)
	}

	s.log.Debug("saved brew log %s (%s, rating %d)", id, req.RecipeName, req.Rating)
	return s.getByID(ctx, id)
}

// List returns all brew logs, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]*domain.BrewLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, brewed_at, method, recipe_id, recipe_name,
                dose, yield, water_temp_c, grind_label,
                brew_time_ms, rating, tag, note
           FROM brew_logs ORDER BY brewed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query brew logs: %w", err)
	}
	defer rows.Close()

	var out []*domain.BrewLog
	for rows.Next() {
		entry, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brew logs: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) getByID(ctx context.Context, id string) (*domain.BrewLog, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, brewed_at, method, recipe_id, recipe_name,
                dose, yield, water_temp_c, grind_label,
                brew_time_ms, rating, tag, note
           FROM brew_logs WHERE id = ?`, id)
	entry, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return entry, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (*domain.BrewLog, error) {
	var (
		entry      domain.BrewLog
		brewedAt   string
		method     string
		brewTimeMS int64
	)
	err := row.Scan(
		&entry.ID, &brewedAt, &method, &entry.RecipeID, &entry.RecipeName,
		&entry.Dose, &entry.Yield, &entry.WaterTempC, &entry.GrindLabel,
		&brewTimeMS, &entry.Rating, &entry.Tag, &entry.Note,
	)
	if err != nil {
		return nil, err
	}

	entry.Method = domain.Method(method)
	entry.BrewTime = time.Duration(brewTimeMS) * time.Millisecond
	if ts, parseErr := time.Parse(time.RFC3339Nano, brewedAt); parseErr == nil {
		entry.BrewedAt = ts
	}
	return &entry, nil
}

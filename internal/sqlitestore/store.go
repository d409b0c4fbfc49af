// Package sqlitestore provides a local SQLite games collection with the same
// contract as the hosted store: list in id order, insert with store-assigned ids.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/five82/gamedex/internal/catalog"
	"github.com/five82/gamedex/internal/sqlitestore/migrations"
)

// Ensure Store implements catalog.Collection at compile time.
var _ catalog.Collection = (*Store)(nil)

// Store persists games in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	seedPath string
}

// WithSeedFile loads the games in the TOML file at path into a new database.
// The seed is applied once; later opens of the same database skip it.
func WithSeedFile(path string) Option {
	return func(o *openOptions) {
		o.seedPath = path
	}
}

// Open opens (creating if needed) the database at path, applies embedded
// migrations and then the optional seed.
func Open(path string, opts ...Option) (*Store, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	dsn := "file:" + cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if o.seedPath != "" {
		games, err := readSeed(o.seedPath)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		if err := applySeed(context.Background(), sqlDB, games); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("apply seed: %w", err)
		}
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// List returns every game ordered by id ascending.
func (s *Store) List(ctx context.Context) ([]catalog.Record, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, platform, category, notable_features FROM games ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []catalog.Record
	for rows.Next() {
		var r catalog.Record
		if err := rows.Scan(&r.ID, &r.Name, &r.Platform, &r.Category, &r.NotableFeatures); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return records, nil
}

// Insert stores c and lets SQLite assign the id.
func (s *Store) Insert(ctx context.Context, c catalog.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO games (name, platform, category, notable_features) VALUES (?, ?, ?, ?)`,
		c.Name, c.Platform, c.Category, c.NotableFeatures,
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

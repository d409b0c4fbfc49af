package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/five82/gamedex/internal/catalog"
)

// seedMarker is the schema_migrations row recording that the seed ran.
const seedMarker = "seed"

type seedFile struct {
	Games []seedGame `toml:"games"`
}

type seedGame struct {
	Name            string `toml:"name"`
	Platform        string `toml:"platform"`
	Category        string `toml:"category"`
	NotableFeatures string `toml:"notable_features"`
}

// readSeed parses a seed file of [[games]] tables. Every entry must pass the
// same presence checks as an added game.
func readSeed(path string) ([]catalog.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var file seedFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	games := make([]catalog.Candidate, 0, len(file.Games))
	for i, g := range file.Games {
		valid, err := catalog.Validate(catalog.Candidate{
			Name:            g.Name,
			Platform:        g.Platform,
			Category:        g.Category,
			NotableFeatures: g.NotableFeatures,
		})
		if err != nil {
			return nil, fmt.Errorf("seed game %d: %w", i+1, err)
		}
		games = append(games, valid)
	}
	return games, nil
}

// applySeed inserts games in file order and records the seed in one
// transaction, so ids follow the file and a failed seed leaves nothing behind.
func applySeed(ctx context.Context, db *sql.DB, games []catalog.Candidate) error {
	applied, err := isApplied(ctx, db, seedMarker)
	if err != nil {
		return fmt.Errorf("check seed: %w", err)
	}
	if applied {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, g := range games {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO games (name, platform, category, notable_features) VALUES (?, ?, ?, ?)`,
			g.Name, g.Platform, g.Category, g.NotableFeatures,
		); err != nil {
			return fmt.Errorf("insert seed game %q: %w", g.Name, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)",
		seedMarker, time.Now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("record seed: %w", err)
	}
	return tx.Commit()
}

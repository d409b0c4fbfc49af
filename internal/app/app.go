package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/five82/gamedex/internal/catalog"
	"github.com/five82/gamedex/internal/config"
	"github.com/five82/gamedex/internal/prefs"
	"github.com/five82/gamedex/internal/sqlitestore"
	"github.com/five82/gamedex/internal/state"
	"github.com/five82/gamedex/internal/supabase"
	"github.com/five82/gamedex/internal/ui"
)

// Options configure the gamedex application. Non-empty fields override the
// matching config values.
type Options struct {
	ConfigPath string
	Backend    string
	LogFile    string
	PrefsPath  string // empty uses default ~/.config/gamedex/prefs.toml
}

// LoadConfig reads configuration, applies command-line overrides and checks
// that the selected backend has what it needs.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if b := strings.ToLower(strings.TrimSpace(opts.Backend)); b != "" {
		cfg.Backend = b
	}
	if f := strings.TrimSpace(opts.LogFile); f != "" {
		cfg.LogFile = f
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// OpenCollection builds the configured backend. The returned close function is
// never nil.
func OpenCollection(cfg config.Config) (catalog.Collection, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.BackendSupabase:
		client, err := supabase.NewClient(supabase.Options{
			URL:     cfg.SupabaseURL,
			Key:     cfg.SupabaseKey,
			Table:   cfg.Table,
			Timeout: cfg.RequestTimeout(),
		})
		if err != nil {
			return nil, noop, fmt.Errorf("init supabase client: %w", err)
		}
		return client, noop, nil
	case config.BackendSQLite:
		var opts []sqlitestore.Option
		if cfg.SQLiteSeed != "" {
			opts = append(opts, sqlitestore.WithSeedFile(cfg.SQLiteSeed))
		}
		store, err := sqlitestore.Open(cfg.SQLitePath, opts...)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// NewEngine creates the view-state engine with the configured collation locale.
// An unparseable locale falls back to English.
func NewEngine(cfg config.Config, coll catalog.Collection) *state.Engine {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		log.Printf("locale %q not recognised, using en: %v", cfg.Locale, err)
		tag = language.English
	}
	return state.New(coll, state.WithLocale(tag))
}

// Run boots the gamedex TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.LogFile, "gamedex")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	coll, closeColl, err := OpenCollection(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeColl(); err != nil {
			log.Printf("close collection: %v", err)
		}
	}()

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	log.Printf("starting with %s backend", cfg.Backend)

	err = ui.Run(ui.Options{
		Context:        ctx,
		Engine:         NewEngine(cfg, coll),
		FilterDebounce: cfg.FilterDebounce(),
		ThemeName:      userPrefs.Theme,
		PrefsPath:      opts.PrefsPath,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

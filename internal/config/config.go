package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Backend names a collection implementation.
const (
	BackendSupabase = "supabase"
	BackendSQLite   = "sqlite"
)

// Config captures everything gamedex reads at startup.
type Config struct {
	Backend               string `toml:"backend" env:"GAMEDEX_BACKEND"`
	SupabaseURL           string `toml:"supabase_url" env:"GAMEDEX_SUPABASE_URL"`
	SupabaseKey           string `toml:"supabase_key" env:"GAMEDEX_SUPABASE_KEY"`
	Table                 string `toml:"table" env:"GAMEDEX_TABLE"`
	SQLitePath            string `toml:"sqlite_path" env:"GAMEDEX_SQLITE_PATH"`
	SQLiteSeed            string `toml:"sqlite_seed" env:"GAMEDEX_SQLITE_SEED"`
	FilterDebounceMS      int    `toml:"filter_debounce_ms" env:"GAMEDEX_FILTER_DEBOUNCE_MS"`
	Locale                string `toml:"locale" env:"GAMEDEX_LOCALE"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds" env:"GAMEDEX_REQUEST_TIMEOUT_SECONDS"`
	LogFile               string `toml:"log_file" env:"GAMEDEX_LOG_FILE"`
}

const (
	defaultConfigPath     = "~/.config/gamedex/config.toml"
	defaultBackend        = BackendSupabase
	defaultTable          = "games"
	defaultSQLitePath     = "~/.local/share/gamedex/games.db"
	defaultLogFile        = "~/.local/state/gamedex/gamedex.log"
	defaultLocale         = "en"
	defaultDebounceMS     = 200
	defaultTimeoutSeconds = 10
)

// Default returns the configuration used when no file or environment is present.
func Default() Config {
	return Config{
		Backend:               defaultBackend,
		Table:                 defaultTable,
		SQLitePath:            mustExpand(defaultSQLitePath),
		FilterDebounceMS:      defaultDebounceMS,
		Locale:                defaultLocale,
		RequestTimeoutSeconds: defaultTimeoutSeconds,
		LogFile:               mustExpand(defaultLogFile),
	}
}

// Load reads the config file at path (or the default location), applies
// GAMEDEX_* environment overrides and fills blanks with defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	defaults := Default()

	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = defaults.Backend
	}
	c.SupabaseURL = strings.TrimSpace(c.SupabaseURL)
	c.SupabaseKey = strings.TrimSpace(c.SupabaseKey)
	c.Table = strings.TrimSpace(c.Table)
	if c.Table == "" {
		c.Table = defaults.Table
	}
	c.Locale = strings.TrimSpace(c.Locale)
	if c.Locale == "" {
		c.Locale = defaults.Locale
	}
	if c.FilterDebounceMS <= 0 {
		c.FilterDebounceMS = defaults.FilterDebounceMS
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}

	c.SQLitePath = strings.TrimSpace(c.SQLitePath)
	if c.SQLitePath == "" {
		c.SQLitePath = defaults.SQLitePath
	}
	c.SQLitePath = mustExpand(c.SQLitePath)

	// The seed is optional, so a blank value stays blank.
	c.SQLiteSeed = strings.TrimSpace(c.SQLiteSeed)
	if c.SQLiteSeed != "" {
		c.SQLiteSeed = mustExpand(c.SQLiteSeed)
	}

	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.LogFile == "" {
		c.LogFile = defaults.LogFile
	}
	c.LogFile = mustExpand(c.LogFile)
}

// Validate reports settings the selected backend cannot run without.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSupabase:
		if c.SupabaseURL == "" {
			return fmt.Errorf("supabase_url is required for the supabase backend")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendSupabase, BackendSQLite)
	}
	return nil
}

// FilterDebounce is the delay between the last filter keystroke and re-deriving.
func (c Config) FilterDebounce() time.Duration {
	if c.FilterDebounceMS <= 0 {
		return defaultDebounceMS * time.Millisecond
	}
	return time.Duration(c.FilterDebounceMS) * time.Millisecond
}

// RequestTimeout bounds each HTTP request to the hosted store.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

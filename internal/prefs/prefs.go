// Package prefs handles gamedex user preferences and per-session UI state.
// Preferences are stored in ~/.config/gamedex/prefs.toml; session state lives
// under $XDG_RUNTIME_DIR so it disappears with the login session.
package prefs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds durable user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
}

// Session holds UI state that should survive a restart within one login
// session but not across reboots.
type Session struct {
	AddFormOpen bool `toml:"add_form_open"`
}

const (
	defaultPrefsPath = "~/.config/gamedex/prefs.toml"
	defaultTheme     = "Nightfox"
	sessionDir       = "gamedex"
	sessionFile      = "session.toml"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// SessionPath returns the session state file, preferring $XDG_RUNTIME_DIR.
func SessionPath() string {
	base := strings.TrimSpace(os.Getenv("XDG_RUNTIME_DIR"))
	if base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, sessionDir, sessionFile)
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	prefs := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs, nil
	}
	if err := readTOML(resolved, &prefs); err != nil {
		return Prefs{Theme: defaultTheme}, nil // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	return writeTOML(resolved, p, 0o644)
}

// LoadSession reads session state. Unreadable or missing state yields the zero
// Session: the add form starts closed.
func LoadSession(path string) Session {
	if strings.TrimSpace(path) == "" {
		path = SessionPath()
	}
	var s Session
	if err := readTOML(path, &s); err != nil {
		return Session{}
	}
	return s
}

// SaveSession writes session state with owner-only permissions.
func SaveSession(path string, s Session) error {
	if strings.TrimSpace(path) == "" {
		path = SessionPath()
	}
	return writeTOML(path, s, 0o600)
}

func readTOML(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	return toml.Unmarshal(bytes, v)
}

func writeTOML(path string, v any, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	bytes, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(path, bytes, perm); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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

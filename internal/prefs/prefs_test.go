package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "gamedex")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(prefsDir, "prefs.toml"), []byte("theme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	if err := Save(prefsFile, Prefs{Theme: "Kanagawa"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Kanagawa" {
		t.Fatalf("Theme = %q, want %q", loaded.Theme, "Kanagawa")
	}
}

func TestLoad_BadContentFallsBackToDefault(t *testing.T) {
	for name, content := range map[string]string{
		"empty theme":  "theme = \"\"\n",
		"invalid toml": "not valid toml {{{\n",
	} {
		t.Run(name, func(t *testing.T) {
			prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
			if err := os.WriteFile(prefsFile, []byte(content), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			p, err := Load(prefsFile)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if p.Theme != defaultTheme {
				t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
			}
		})
	}
}

func TestSessionPath_PrefersRuntimeDir(t *testing.T) {
	runtime := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtime)

	want := filepath.Join(runtime, "gamedex", "session.toml")
	if got := SessionPath(); got != want {
		t.Fatalf("SessionPath = %q, want %q", got, want)
	}
}

func TestSessionPath_FallsBackToTempDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	want := filepath.Join(os.TempDir(), "gamedex", "session.toml")
	if got := SessionPath(); got != want {
		t.Fatalf("SessionPath = %q, want %q", got, want)
	}
}

func TestSession_RoundTripsAddFormFlag(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	if got := LoadSession(""); got.AddFormOpen {
		t.Fatalf("LoadSession before save = %+v, want closed form", got)
	}
	if err := SaveSession("", Session{AddFormOpen: true}); err != nil {
		t.Fatalf("SaveSession returned error: %v", err)
	}
	if got := LoadSession(""); !got.AddFormOpen {
		t.Fatalf("LoadSession after save = %+v, want open form", got)
	}

	info, err := os.Stat(SessionPath())
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("session perm = %o, want 600", perm)
	}
}

func TestLoadSession_CorruptFileIsClosed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("add_form_open = maybe"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got := LoadSession(path); got.AddFormOpen {
		t.Fatalf("LoadSession = %+v, want closed form", got)
	}
}

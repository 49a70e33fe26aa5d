package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_DATA_HOME", "")
	return home
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	home := setTempHome(t)

	m := NewManager()
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(home, ".config", "claritydesk", "config.json")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("default config not written: %v", err)
	}
	if m.DebounceMs() != 300 {
		t.Errorf("DebounceMs = %d, want 300", m.DebounceMs())
	}
	if m.HistoryLimit() != 100 {
		t.Errorf("HistoryLimit = %d, want 100", m.HistoryLimit())
	}
}

func TestLoadParseErrorFallsBackToDefaults(t *testing.T) {
	home := setTempHome(t)

	dir := filepath.Join(home, ".config", "claritydesk")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.Load(); err != nil {
		t.Fatalf("parse failure must not error out of Load: %v", err)
	}
	if m.ParseError() == nil {
		t.Error("ParseError() = nil, want stored parse error")
	}
	if m.DebounceMs() != 300 {
		t.Errorf("DebounceMs after parse error = %d, want default 300", m.DebounceMs())
	}
}

func TestSettersPersist(t *testing.T) {
	setTempHome(t)

	m := NewManager()
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}
	m.SetDebounceMs(150)
	m.SetShowHidden(true)

	reloaded := NewManager()
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if reloaded.DebounceMs() != 150 {
		t.Errorf("DebounceMs = %d, want 150", reloaded.DebounceMs())
	}
	if !reloaded.ShowHidden() {
		t.Error("ShowHidden = false, want true")
	}
}

func TestAccessorGuards(t *testing.T) {
	m := NewManager()
	m.config.Watcher.DebounceMs = -10
	m.config.History.Limit = 0

	if m.DebounceMs() != 300 {
		t.Errorf("DebounceMs = %d, want guard value 300", m.DebounceMs())
	}
	if m.HistoryLimit() != 100 {
		t.Errorf("HistoryLimit = %d, want guard value 100", m.HistoryLimit())
	}
}

func TestPathOverrides(t *testing.T) {
	home := setTempHome(t)

	m := NewManager()
	if got, want := m.StatePath(), filepath.Join(home, ".config", "claritydesk", "state.json"); got != want {
		t.Errorf("StatePath = %q, want %q", got, want)
	}

	m.config.Paths.StateFile = "/elsewhere/state.json"
	m.config.Paths.Database = "/elsewhere/cd.db"
	if m.StatePath() != "/elsewhere/state.json" {
		t.Errorf("StatePath override ignored: %q", m.StatePath())
	}
	if m.DatabasePath() != "/elsewhere/cd.db" {
		t.Errorf("DatabasePath override ignored: %q", m.DatabasePath())
	}
}

func TestGenerateConfigBacksUpExisting(t *testing.T) {
	home := setTempHome(t)

	dir := filepath.Join(home, ".config", "claritydesk")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"files":{"showHidden":true}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	backup, err := GenerateConfig()
	if err != nil {
		t.Fatal(err)
	}
	if backup == "" {
		t.Fatal("expected a backup path for pre-existing config")
	}
	if _, err := os.Stat(backup); err != nil {
		t.Errorf("backup not written: %v", err)
	}

	m := NewManager()
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}
	if m.ShowHidden() {
		t.Error("regenerated config should be back to defaults")
	}
}

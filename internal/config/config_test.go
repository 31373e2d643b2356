package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todos-cli/internal/model"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODOS_CONFIG_DIR", dir)
	t.Setenv("TODOS_LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(dir, "ws"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Defaults.Sort != model.SortCreationDate || cfg.Defaults.Filter != model.FilterNone {
		t.Fatalf("unexpected defaults: %#v", cfg.Defaults)
	}
	if !cfg.TUI.ShowCompleted {
		t.Fatalf("expected show-completed default true")
	}
	if cfg.Log.Path != filepath.Join(dir, "todos.log") {
		t.Fatalf("log path = %q", cfg.Log.Path)
	}
}

func TestLoad_WorkspaceOverridesGlobal(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODOS_CONFIG_DIR", dir)
	t.Setenv("TODOS_LOG_LEVEL", "")
	ws := filepath.Join(dir, "ws")

	writeFile(t, filepath.Join(dir, "config.toml"), `
[defaults]
sort = "priority"
filter = "completed"

[log]
level = "debug"

[tui]
show-completed = false
`)
	writeFile(t, filepath.Join(ws, "todos.toml"), `
[defaults]
sort = "name"
`)

	cfg, err := Load(ws)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Defaults.Sort != model.SortName {
		t.Fatalf("workspace sort should win, got %q", cfg.Defaults.Sort)
	}
	if cfg.Defaults.Filter != model.FilterCompleted {
		t.Fatalf("global filter should survive, got %q", cfg.Defaults.Filter)
	}
	if cfg.Log.Level != "debug" || cfg.TUI.ShowCompleted {
		t.Fatalf("unexpected log/tui: %#v %#v", cfg.Log, cfg.TUI)
	}
}

func TestLoad_RejectsUnknownMethodKey(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODOS_CONFIG_DIR", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), "[defaults]\nsort = \"alphabetical\"\n")

	_, err := Load("")
	if !errors.Is(err, model.ErrInvalidMethodKey) {
		t.Fatalf("expected ErrInvalidMethodKey, got %v", err)
	}
	if !strings.Contains(err.Error(), "defaults.sort") {
		t.Fatalf("expected the key path in the error, got %v", err)
	}
}

func TestLoad_RejectsUnknownKeysAndBadTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODOS_CONFIG_DIR", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), "[defaults]\ncolour = \"red\"\n")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Fatalf("expected unknown key error, got %v", err)
	}

	writeFile(t, filepath.Join(dir, "config.toml"), "[defaults\n")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "parse config file") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoad_EnvLogLevel(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODOS_CONFIG_DIR", dir)
	t.Setenv("TODOS_LOG_LEVEL", "WARN")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected env level, got %q", cfg.Log.Level)
	}

	t.Setenv("TODOS_LOG_LEVEL", "chatty")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

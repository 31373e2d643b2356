// Package config loads config.toml from the global config directory and an
// optional todos.toml inside the workspace. Workspace values win.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"todos-cli/internal/model"
	"todos-cli/internal/store"

	"github.com/BurntSushi/toml"
)

const (
	globalFileName    = "config.toml"
	workspaceFileName = "todos.toml"
)

// Config represents a todos configuration file.
type Config struct {
	Defaults Defaults `toml:"defaults"`
	Log      Log      `toml:"log"`
	TUI      TUI      `toml:"tui"`
}

// Defaults are applied to every category that has no stored choice.
type Defaults struct {
	Sort   model.SortMethod   `toml:"sort"`
	Filter model.FilterMethod `toml:"filter"`
}

type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Path of the log file; relative paths resolve against the config dir.
	Path string `toml:"path"`
}

type TUI struct {
	ShowCompleted bool `toml:"show-completed"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Defaults: Defaults{Sort: model.SortCreationDate, Filter: model.FilterNone},
		Log:      Log{Level: "info", Path: "todos.log"},
		TUI:      TUI{ShowCompleted: true},
	}
}

// Load reads the global config and, when workspaceDir is non-empty, the
// workspace config. Missing files are not an error.
func Load(workspaceDir string) (*Config, error) {
	dir, err := store.ConfigDir()
	if err != nil {
		return nil, err
	}
	globalCfg, globalMeta, err := loadConfigFile(filepath.Join(dir, globalFileName))
	if err != nil {
		return nil, err
	}
	wsCfg, wsMeta := &Config{}, toml.MetaData{}
	if strings.TrimSpace(workspaceDir) != "" {
		wsCfg, wsMeta, err = loadConfigFile(filepath.Join(workspaceDir, workspaceFileName))
		if err != nil {
			return nil, err
		}
	}

	cfg := merge(Default(), globalCfg, globalMeta)
	cfg = merge(cfg, wsCfg, wsMeta)
	if v := strings.TrimSpace(os.Getenv("TODOS_LOG_LEVEL")); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(cfg.Log.Path) {
		cfg.Log.Path = filepath.Join(dir, cfg.Log.Path)
	}
	return cfg, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("config file %s: unknown key %q", path, undecoded[0].String())
	}
	return &cfg, meta, nil
}

// merge overlays the keys defined in over (per meta) onto base.
func merge(base, over *Config, meta toml.MetaData) *Config {
	out := *base
	if meta.IsDefined("defaults", "sort") {
		out.Defaults.Sort = model.SortMethod(strings.TrimSpace(string(over.Defaults.Sort)))
	}
	if meta.IsDefined("defaults", "filter") {
		out.Defaults.Filter = model.FilterMethod(strings.TrimSpace(string(over.Defaults.Filter)))
	}
	if meta.IsDefined("log", "level") {
		out.Log.Level = strings.ToLower(strings.TrimSpace(over.Log.Level))
	}
	if meta.IsDefined("log", "path") {
		out.Log.Path = strings.TrimSpace(over.Log.Path)
	}
	if meta.IsDefined("tui", "show-completed") {
		out.TUI.ShowCompleted = over.TUI.ShowCompleted
	}
	return &out
}

// Validate rejects unknown sort/filter keys and log levels.
func (c *Config) Validate() error {
	if _, err := model.ParseSortMethod(string(c.Defaults.Sort)); err != nil {
		return fmt.Errorf("defaults.sort: %w", err)
	}
	if _, err := model.ParseFilterMethod(string(c.Defaults.Filter)); err != nil {
		return fmt.Errorf("defaults.filter: %w", err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	if c.Log.Path == "" {
		return fmt.Errorf("log.path: empty")
	}
	return nil
}

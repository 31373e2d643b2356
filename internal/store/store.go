package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"todos-cli/internal/model"
)

const (
	sqliteFileName   = "todos.sqlite"
	defaultWorkspace = "default"
	stateVersion     = 1
)

// CategoryRecord is the persisted form of a category. System categories are
// stored too so their sort/filter choice survives restarts.
type CategoryRecord struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Editable      bool      `json:"editable"`
	Position      int       `json:"position"`
	SortingMethod string    `json:"sortingMethod"`
	FilterMethod  string    `json:"filterMethod"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// State is everything a workspace persists.
type State struct {
	Version    int              `json:"version"`
	Categories []CategoryRecord `json:"categories"`
	Todos      []*model.Todo    `json:"todos"`
}

type Store struct {
	Dir string
}

// DefaultDir returns the default workspace directory under the config dir.
func DefaultDir() (string, error) {
	return WorkspaceDir(defaultWorkspace)
}

func WorkspaceDir(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultWorkspace
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

// Load reads the workspace state. A missing database yields an empty state.
func (s Store) Load(ctx context.Context) (*State, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.LoadSQLite(ctx)
}

func (s Store) Save(ctx context.Context, st *State) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(ctx, st)
}

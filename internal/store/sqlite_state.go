package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"todos-cli/internal/model"

	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL lets the CLI read while the TUI holds the database open.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			editable INTEGER NOT NULL,
			position INTEGER NOT NULL,
			sorting_method TEXT NOT NULL,
			filter_method TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS todos (
			id TEXT PRIMARY KEY,
			category_id TEXT NOT NULL,
			title TEXT NOT NULL,
			priority INTEGER NOT NULL,
			due_date TEXT NOT NULL,
			completed INTEGER NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_todos_category ON todos(category_id);`,
		`CREATE INDEX IF NOT EXISTS idx_todos_due ON todos(due_date);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// SaveSQLite replaces the stored state in one transaction.
func (s Store) SaveSQLite(ctx context.Context, st *State) error {
	if st == nil {
		return errors.New("nil state")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "version", strconv.Itoa(stateVersion)); err != nil {
		return err
	}

	// Replace-all: the state is small and always loaded whole.
	for _, t := range []string{"categories", "todos"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for _, c := range st.Categories {
		raw, err := json.Marshal(c)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories(id, name, editable, position, sorting_method, filter_method, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, strings.TrimSpace(c.Name), boolToInt(c.Editable), c.Position, c.SortingMethod, c.FilterMethod, string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, t := range st.Todos {
		raw, err := json.Marshal(t)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO todos(id, category_id, title, priority, due_date, completed, created_at_unixms, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID(), t.CategoryID, t.Title, int(t.Priority), t.DueDate, boolToInt(t.CompletedStatus), t.CreationDate().UTC().UnixMilli(), string(raw), nowMs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadSQLite reads categories ordered by position and todos by creation time.
func (s Store) LoadSQLite(ctx context.Context) (*State, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	out := &State{Version: stateVersion}
	var v string
	_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, "version").Scan(&v)
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		out.Version = n
	}

	cats, err := readJSONRows[CategoryRecord](ctx, db, `SELECT json FROM categories ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	todos, err := readJSONRows[*model.Todo](ctx, db, `SELECT json FROM todos ORDER BY created_at_unixms, id`)
	if err != nil {
		return nil, err
	}
	out.Categories = cats
	out.Todos = todos
	if out.Categories == nil {
		out.Categories = []CategoryRecord{}
	}
	if out.Todos == nil {
		out.Todos = []*model.Todo{}
	}
	return out, nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

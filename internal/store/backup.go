package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"todos-cli/internal/model"
)

// WriteBackup writes st as indented JSON to path, replacing any existing file.
func WriteBackup(path string, st *State) error {
	if st == nil {
		return errors.New("backup: nil state")
	}
	if st.Version == 0 {
		st.Version = stateVersion
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(dir, filepath.Base(path)+".*.tmp", path, b, 0o644)
}

// ReadBackup parses a file written by WriteBackup.
func ReadBackup(path string) (*State, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}
	if st.Version > stateVersion {
		return nil, fmt.Errorf("backup: unsupported version %d", st.Version)
	}
	if st.Categories == nil {
		st.Categories = []CategoryRecord{}
	}
	if st.Todos == nil {
		st.Todos = []*model.Todo{}
	}
	return &st, nil
}

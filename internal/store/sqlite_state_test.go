package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"todos-cli/internal/model"
)

func TestSQLiteState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := Store{Dir: filepath.Join(t.TempDir(), "ws")}

	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	first := model.RestoreTodo("t-1", created)
	first.Title = "Buy milk"
	first.Priority = model.PriorityTwo
	first.DueDate = "2026-10-20"
	first.CategoryID = "c-1"
	first.CategoryName = "Errands"

	second := model.RestoreTodo("t-2", created.Add(time.Hour))
	second.Title = "Call mom"
	second.CompletedStatus = true

	want := &State{
		Version: stateVersion,
		Categories: []CategoryRecord{
			{ID: model.CategoryAllID, Name: "All todos", Position: 0, SortingMethod: "priority", FilterMethod: "no-filter"},
			{ID: "c-1", Name: "Errands", Editable: true, Position: 3, SortingMethod: "name", FilterMethod: "completed", CreatedAt: created},
		},
		Todos: []*model.Todo{second, first},
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Version != stateVersion {
		t.Fatalf("expected version %d, got %d", stateVersion, got.Version)
	}
	if len(got.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got.Categories))
	}
	if got.Categories[1].ID != "c-1" || !got.Categories[1].Editable || got.Categories[1].SortingMethod != "name" {
		t.Fatalf("unexpected user category record: %#v", got.Categories[1])
	}
	if !got.Categories[1].CreatedAt.Equal(created) {
		t.Fatalf("createdAt not preserved: %v", got.Categories[1].CreatedAt)
	}

	if len(got.Todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(got.Todos))
	}
	// Todos come back in creation order regardless of save order.
	if got.Todos[0].ID() != "t-1" || got.Todos[1].ID() != "t-2" {
		t.Fatalf("expected creation order t-1,t-2; got %s,%s", got.Todos[0].ID(), got.Todos[1].ID())
	}
	g := got.Todos[0]
	if g.Title != "Buy milk" || g.Priority != model.PriorityTwo || g.DueDate != "2026-10-20" || g.CategoryID != "c-1" {
		t.Fatalf("todo fields not preserved: %#v", g)
	}
	if !g.CreationDate().Equal(created) {
		t.Fatalf("creation date not preserved: %v", g.CreationDate())
	}
	if !got.Todos[1].CompletedStatus {
		t.Fatalf("expected completed status to survive")
	}
}

func TestSQLiteState_SaveReplacesPreviousRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	a := model.RestoreTodo("a", time.Now().UTC())
	a.Title = "a"
	if err := s.Save(ctx, &State{Todos: []*model.Todo{a}}); err != nil {
		t.Fatalf("Save #1: %v", err)
	}
	if err := s.Save(ctx, &State{}); err != nil {
		t.Fatalf("Save #2: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Todos) != 0 || len(got.Categories) != 0 {
		t.Fatalf("expected empty state after replace, got %#v", got)
	}
}

func TestSQLiteState_LoadEmptyWorkspace(t *testing.T) {
	t.Parallel()

	got, err := Store{Dir: t.TempDir()}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Categories == nil || got.Todos == nil {
		t.Fatalf("expected non-nil empty slices, got %#v", got)
	}
}

func TestSaveSQLite_NilState(t *testing.T) {
	t.Parallel()

	if err := (Store{Dir: t.TempDir()}).SaveSQLite(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil state")
	}
}

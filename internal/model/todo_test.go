package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestTodoSet_IgnoresImmutableFields(t *testing.T) {
	td := NewTodo("Buy milk", "", PriorityNone, "", "", "")
	id := td.ID()
	created := td.CreationDate()

	if err := td.Set(FieldID, "other-id"); err != nil {
		t.Fatalf("set id: %v", err)
	}
	if err := td.Set(FieldCreationDate, time.Unix(0, 0)); err != nil {
		t.Fatalf("set creationDate: %v", err)
	}
	if td.ID() != id {
		t.Fatalf("id changed: %q -> %q", id, td.ID())
	}
	if !td.CreationDate().Equal(created) {
		t.Fatalf("creationDate changed: %v -> %v", created, td.CreationDate())
	}
	if got := td.Get(FieldID); got != id {
		t.Fatalf("Get(id) = %v, want %v", got, id)
	}
}

func TestTodoSet_WritesMutableFields(t *testing.T) {
	td := NewTodo("", "", PriorityNone, "", "", "")
	if err := td.Set(FieldTitle, "Walk dog"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if err := td.Set(FieldPriority, 2); err != nil {
		t.Fatalf("set priority: %v", err)
	}
	if err := td.Set(FieldFilteredOut, true); err != nil {
		t.Fatalf("set filteredOut: %v", err)
	}
	if td.Title != "Walk dog" || td.Priority != PriorityTwo || !td.FilteredOut {
		t.Fatalf("unexpected todo: %+v", td)
	}
}

func TestTodoSet_RejectsBadValues(t *testing.T) {
	td := NewTodo("x", "", PriorityNone, "", "", "")
	if err := td.Set(FieldTitle, 3); !errors.Is(err, ErrInvalidFieldValue) {
		t.Fatalf("expected ErrInvalidFieldValue, got %v", err)
	}
	if err := td.Set(FieldPriority, 7); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
	if err := td.Set(Field("colour"), "red"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := td.Set(FieldDueDate, "tomorrow"); !errors.Is(err, ErrInvalidDueDate) {
		t.Fatalf("expected ErrInvalidDueDate, got %v", err)
	}
}

func TestTodoHasAdditionalInfo(t *testing.T) {
	td := NewTodo("Only a title", "", PriorityNone, "", "", "")
	if td.HasAdditionalInfo() {
		t.Fatalf("expected no additional info")
	}
	td.Description = "details"
	if !td.HasAdditionalInfo() {
		t.Fatalf("expected description to count as additional info")
	}
	td.Description = ""
	td.CategoryID = "cat-1"
	if !td.HasAdditionalInfo() {
		t.Fatalf("expected category to count as additional info")
	}
}

func TestTodoToggleCompletedStatus(t *testing.T) {
	td := NewTodo("x", "", PriorityNone, "", "", "")
	td.ToggleCompletedStatus()
	if !td.CompletedStatus {
		t.Fatalf("expected completed after first toggle")
	}
	td.ToggleCompletedStatus()
	if td.CompletedStatus {
		t.Fatalf("expected uncompleted after second toggle")
	}
}

func TestTodoJSON_PreservesIdentity(t *testing.T) {
	td := NewTodo("Pay rent", "monthly", PriorityOne, "2026-11-01", "cat-1", "Home")
	b, err := json.Marshal(td)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Todo
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID() != td.ID() || !got.CreationDate().Equal(td.CreationDate()) {
		t.Fatalf("identity lost: %q/%v vs %q/%v", got.ID(), got.CreationDate(), td.ID(), td.CreationDate())
	}
	if got.CategoryName != "Home" || got.Priority != PriorityOne {
		t.Fatalf("fields lost: %+v", got)
	}
}

func TestParsePriority(t *testing.T) {
	for in, want := range map[string]Priority{"": PriorityNone, "none": PriorityNone, "1": PriorityOne, " 3 ": PriorityThree} {
		got, err := ParsePriority(in)
		if err != nil {
			t.Fatalf("ParsePriority(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParsePriority(%q) = %d, want %d", in, got, want)
		}
	}
	if _, err := ParsePriority("4"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

package model

import (
	"testing"
	"time"
)

func TestMiniDueDate(t *testing.T) {
	// Sunday.
	now := time.Date(2026, 10, 18, 15, 4, 0, 0, time.UTC)

	cases := map[string]string{
		"":           "",
		"garbage":    "",
		"2026-10-18": "today",
		"2026-10-19": "tomorrow",
		"2026-10-21": "wednesday",
		"2026-10-24": "saturday",
		"2026-10-25": "25 oct",
		"2026-10-17": "17 oct",
		"2027-02-03": "03 feb",
	}
	for in, want := range cases {
		if got := MiniDueDate(in, now); got != want {
			t.Errorf("MiniDueDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	td := NewTodo("late", "", PriorityNone, "2026-10-17", "", "")
	if !td.IsOverdue(now) {
		t.Fatalf("expected yesterday's todo to be overdue")
	}
	td.CompletedStatus = true
	if td.IsOverdue(now) {
		t.Fatalf("completed todos are never overdue")
	}

	today := NewTodo("today", "", PriorityNone, "2026-10-18", "", "")
	if today.IsOverdue(now) {
		t.Fatalf("todo due today is not overdue")
	}
}

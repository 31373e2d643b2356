package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseDue(t *testing.T) {
	t.Parallel()

	// Sunday.
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	cases := map[string]string{
		"":           "",
		"none":       "",
		"2026-12-01": "2026-12-01",
		"today":      "2026-10-18",
		"Tomorrow":   "2026-10-19",
		"friday":     "2026-10-23",
		"sunday":     "2026-10-25",
		"+3d":        "2026-10-21",
		"+2w":        "2026-11-01",
	}
	for in, want := range cases {
		got, err := ParseDue(in, now)
		if err != nil {
			t.Fatalf("ParseDue(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseDue(%q) = %q, want %q", in, got, want)
		}
	}

	for _, bad := range []string{"2026-13-01", "next week", "+d"} {
		if _, err := ParseDue(bad, now); !errors.Is(err, ErrInvalidDueDate) {
			t.Fatalf("ParseDue(%q): expected ErrInvalidDueDate, got %v", bad, err)
		}
	}
}

package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type sample struct {
	ID        string   `json:"id"`
	DueDate   string   `json:"dueDate"`
	Priority  int      `json:"priority"`
	Completed bool     `json:"completed"`
	Tags      []string `json:"tags"`
	Note      *string  `json:"note"`
}

func TestWrite_EDN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	v := map[string]any{"data": sample{ID: "t-1", DueDate: "2026-10-18", Priority: 2, Tags: []string{"a", "b"}}}
	if err := Write(&buf, v, "edn", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	want := `{:data {:completed false :due-date "2026-10-18" :id "t-1" :note nil :priority 2 :tags ["a" "b"]}}`
	if got != want {
		t.Fatalf("edn mismatch:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestWrite_EDNPretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"xs": []int{1}, "empty": []int{}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :empty []\n  :xs [\n    1\n  ]\n}\n"
	if buf.String() != want {
		t.Fatalf("pretty edn mismatch:\nwant: %q\ngot:  %q", want, buf.String())
	}
}

func TestWrite_JSONDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, map[string]int{"n": 1}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "{\"n\":1}\n" {
		t.Fatalf("unexpected json: %q", buf.String())
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	if f, err := Parse(" EDN "); err != nil || f != EDN {
		t.Fatalf("Parse(EDN) = %q, %v", f, err)
	}
	if _, err := Parse("yaml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

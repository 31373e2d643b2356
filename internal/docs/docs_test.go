package docs

import (
	"strings"
	"testing"
)

func TestTopics_ListsEmbeddedContent(t *testing.T) {
	got := strings.Join(Topics(), ",")
	for _, want := range []string{"dates", "keys", "sorting", "workspaces"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected topic %q in %q", want, got)
		}
	}
}

func TestGet_IsCaseInsensitive(t *testing.T) {
	body, ok := Get("  KEYS ")
	if !ok {
		t.Fatalf("expected keys topic")
	}
	if !strings.Contains(body, "Rename input") {
		t.Fatalf("unexpected body: %q", body)
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("expected unknown topic to be missing")
	}
	if _, ok := Get(""); ok {
		t.Fatalf("expected empty topic to be missing")
	}
}

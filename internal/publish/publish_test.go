package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"todos-cli/internal/model"
)

func sampleTodo(id, title string) *model.Todo {
	t := model.RestoreTodo(id, time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC))
	t.Title = title
	return t
}

func TestRenderTodoMarkdown_IncludesMetaAndWrappedDescription(t *testing.T) {
	t.Parallel()

	td := sampleTodo("t-1", "Write report")
	td.Priority = model.PriorityOne
	td.DueDate = "2026-10-20"
	td.MiniDueDate = "tuesday"
	td.CategoryName = "Work"
	td.Description = strings.Repeat("word ", 30)

	md := RenderTodoMarkdown(td, RenderOptions{Width: 20})
	for _, want := range []string{"# Write report", "- ID: t-1", "- Priority: 1", "- Due: 2026-10-20 (tuesday)", "- Category: Work", "## Description"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}
	desc := md[strings.Index(md, "## Description"):]
	for _, line := range strings.Split(desc, "\n") {
		if len(line) > 20 {
			t.Fatalf("line not wrapped to 20 columns: %q", line)
		}
	}
}

func TestRenderCategoryMarkdown_HidesFilteredTodos(t *testing.T) {
	t.Parallel()

	c := model.NewSystemCategory(model.CategoryAllID, "All todos")
	open := sampleTodo("a", "Open one")
	done := sampleTodo("b", "Done one")
	done.CompletedStatus = true
	c.AddTodo(open)
	c.AddTodo(done)
	if err := c.SetFilterMethod(model.FilterUncompleted); err != nil {
		t.Fatal(err)
	}
	c.Refresh()

	md := RenderCategoryMarkdown(c, RenderOptions{})
	if !strings.Contains(md, "- [ ] Open one") {
		t.Fatalf("expected open todo in:\n%s", md)
	}
	if strings.Contains(md, "Done one") {
		t.Fatalf("filtered todo should be hidden:\n%s", md)
	}

	md = RenderCategoryMarkdown(c, RenderOptions{IncludeHidden: true})
	if !strings.Contains(md, "- [x] Done one") {
		t.Fatalf("expected hidden todo with IncludeHidden:\n%s", md)
	}
}

func TestWriteCategories_WritesIndexAndPages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := model.NewSystemCategory(model.CategoryAllID, "All todos")
	a.AddTodo(sampleTodo("a", "Buy milk"))
	b, err := model.NewUserCategory("All Todos!")
	if err != nil {
		t.Fatal(err)
	}

	res, err := WriteCategories([]model.CategoryLike{a, b}, dir, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteCategories: %v", err)
	}
	if len(res.Written) != 3 {
		t.Fatalf("expected 3 files, got %v", res.Written)
	}
	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), "(categories/all-todos.md) (1)") || !strings.Contains(string(index), "(categories/all-todos-2.md) (0)") {
		t.Fatalf("unexpected index:\n%s", index)
	}

	if _, err := WriteCategories([]model.CategoryLike{a}, dir, WriteOptions{}); err == nil {
		t.Fatalf("expected error when files exist without overwrite")
	}
	if _, err := WriteCategories([]model.CategoryLike{a}, dir, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestWriteTodo(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	res, err := WriteTodo(sampleTodo("t-9", "Call"), dir, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteTodo: %v", err)
	}
	if len(res.Written) != 1 || res.Written[0] != filepath.Join(dir, "todos", "t-9.md") {
		t.Fatalf("unexpected result: %v", res.Written)
	}
}

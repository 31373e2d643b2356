// Package publish exports categories and todos as Markdown files.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"todos-cli/internal/model"
)

type WriteOptions struct {
	RenderOptions
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteCategories writes index.md plus one page per category under toDir/categories.
func WriteCategories(cats []model.CategoryLike, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	catDir := filepath.Join(toDir, "categories")
	if err := os.MkdirAll(catDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	var index strings.Builder
	index.WriteString("# Todos\n\n")

	var written []string
	used := map[string]bool{}
	for _, c := range cats {
		name := uniqueSlug(slug(c.Name()), used)
		p := filepath.Join(catDir, name+".md")
		if err := writeFile(p, []byte(RenderCategoryMarkdown(c, opt.RenderOptions)), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
		index.WriteString("- [" + c.Name() + "](categories/" + name + ".md) (" + strconv.Itoa(len(c.VisibleTodos())) + ")\n")
	}

	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(index.String()), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: append([]string{indexPath}, written...)}, nil
}

// WriteTodo writes a single todo page to toDir/todos/<id>.md.
func WriteTodo(t *model.Todo, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	outDir := filepath.Join(filepath.Clean(toDir), "todos")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	p := filepath.Join(outDir, t.ID()+".md")
	if err := writeFile(p, []byte(RenderTodoMarkdown(t, opt.RenderOptions)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{p}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}

// slug lowercases name and keeps letters and digits, joining the rest with "-".
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "category"
	}
	return s
}

func uniqueSlug(s string, used map[string]bool) string {
	out := s
	for i := 2; used[out]; i++ {
		out = s + "-" + strconv.Itoa(i)
	}
	used[out] = true
	return out
}

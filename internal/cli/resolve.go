package cli

import (
	"strings"

	"todos-cli/internal/model"
	"todos-cli/internal/organizer"
)

// resolveCategory accepts an id, a case-insensitive name or a unique id prefix.
func resolveCategory(org *organizer.Organizer, ref string) (model.CategoryLike, error) {
	ref = strings.TrimSpace(ref)
	if c, ok := org.Category(ref); ok {
		return c, nil
	}
	cats := org.Categories()
	for _, c := range cats {
		if strings.EqualFold(c.Name(), ref) {
			return c, nil
		}
	}
	var matches []model.CategoryLike
	if ref != "" {
		for _, c := range cats {
			if strings.HasPrefix(c.ID(), ref) {
				matches = append(matches, c)
			}
		}
	}
	switch len(matches) {
	case 0:
		return nil, errNotFound("category", ref)
	case 1:
		return matches[0], nil
	}
	ids := make([]string, 0, len(matches))
	for _, c := range matches {
		ids = append(ids, c.ID())
	}
	return nil, errAmbiguous("category", ref, ids)
}

// resolveTodo accepts a todo id or a unique id prefix.
func resolveTodo(org *organizer.Organizer, ref string) (*model.Todo, error) {
	ref = strings.TrimSpace(ref)
	if t, ok := org.Todo(ref); ok {
		return t, nil
	}
	var matches []*model.Todo
	if ref != "" {
		for _, t := range org.Todos() {
			if strings.HasPrefix(t.ID(), ref) {
				matches = append(matches, t)
			}
		}
	}
	switch len(matches) {
	case 0:
		return nil, errNotFound("todo", ref)
	case 1:
		return matches[0], nil
	}
	ids := make([]string, 0, len(matches))
	for _, t := range matches {
		ids = append(ids, t.ID())
	}
	return nil, errAmbiguous("todo", ref, ids)
}

type categoryView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Editable      bool   `json:"editable"`
	SortingMethod string `json:"sortingMethod"`
	FilterMethod  string `json:"filterMethod"`
	Todos         int    `json:"todos"`
	Visible       int    `json:"visible"`
}

// viewCategory refreshes c first so the counts follow its own filter.
func viewCategory(c model.CategoryLike) categoryView {
	c.Refresh()
	return categoryView{
		ID:            c.ID(),
		Name:          c.Name(),
		Editable:      c.IsEditable(),
		SortingMethod: string(c.SortingMethod()),
		FilterMethod:  string(c.FilterMethod()),
		Todos:         len(c.Todos()),
		Visible:       len(c.VisibleTodos()),
	}
}

func viewCategories(cs []model.CategoryLike) []categoryView {
	out := make([]categoryView, 0, len(cs))
	for _, c := range cs {
		out = append(out, viewCategory(c))
	}
	return out
}

func nonNilTodos(ts []*model.Todo) []*model.Todo {
	if ts == nil {
		return []*model.Todo{}
	}
	return ts
}

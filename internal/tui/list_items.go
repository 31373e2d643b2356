package tui

import (
	"strconv"

	"todos-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type categoryItem struct {
	cat   model.CategoryLike
	count int
}

func (i categoryItem) FilterValue() string { return i.cat.Name() }
func (i categoryItem) Title() string       { return i.cat.Name() }
func (i categoryItem) Description() string { return strconv.Itoa(i.count) }

type todoItem struct {
	todo *model.Todo
	// showCategory adds the owning category name (for "All todos" and search results).
	showCategory bool
}

func (i todoItem) FilterValue() string { return i.todo.Title }
func (i todoItem) Title() string       { return i.todo.Title }
func (i todoItem) Description() string { return i.todo.Description }

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own header and footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	// Letter keys are app commands; paging stays on pgup/pgdown.
	l.KeyMap.PrevPage.SetKeys("pgup")
	l.KeyMap.NextPage.SetKeys("pgdown")
	// Add Emacs-style navigation aliases (common muscle memory).
	l.KeyMap.CursorUp.SetKeys(append(append([]string{}, l.KeyMap.CursorUp.Keys()...), "ctrl+p")...)
	l.KeyMap.CursorDown.SetKeys(append(append([]string{}, l.KeyMap.CursorDown.Keys()...), "ctrl+n")...)
	// Extra aliases for go-to-start/end for non-US keyboards.
	l.KeyMap.GoToStart.SetKeys(append(append([]string{}, l.KeyMap.GoToStart.Keys()...), "<")...)
	l.KeyMap.GoToEnd.SetKeys(append(append([]string{}, l.KeyMap.GoToEnd.Keys()...), ">")...)
	return l
}

// selectListItem moves the cursor to the first item matching pred.
func selectListItem(l *list.Model, pred func(list.Item) bool) bool {
	for i, it := range l.Items() {
		if pred(it) {
			l.Select(i)
			return true
		}
	}
	return false
}

func selectCategoryByID(l *list.Model, id string) bool {
	return selectListItem(l, func(it list.Item) bool {
		ci, ok := it.(categoryItem)
		return ok && ci.cat.ID() == id
	})
}

func selectTodoByID(l *list.Model, id string) bool {
	return selectListItem(l, func(it list.Item) bool {
		ti, ok := it.(todoItem)
		return ok && ti.todo.ID() == id
	})
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit          key.Binding
	SwitchPane    key.Binding
	Open          key.Binding
	Back          key.Binding
	NewTodo       key.Binding
	NewCategory   key.Binding
	EditTodo      key.Binding
	Rename        key.Binding
	Delete        key.Binding
	Toggle        key.Binding
	CycleSort     key.Binding
	CycleFilter   key.Binding
	Search        key.Binding
	ShowCompleted key.Binding
	Details       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		SwitchPane:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "pane")),
		Open:          key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "open")),
		Back:          key.NewBinding(key.WithKeys("esc", "left", "h"), key.WithHelp("esc", "back")),
		NewTodo:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new todo")),
		NewCategory:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new category")),
		EditTodo:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Rename:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Delete:        key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Toggle:        key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		CycleSort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		CycleFilter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ShowCompleted: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "completed")),
		Details:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "details")),
	}
}

// helpLine renders "key: desc" pairs for the footer.
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

func (k keyMap) categoriesHelp() string {
	return helpLine(k.Open, k.NewCategory, k.Rename, k.Delete, k.CycleSort, k.CycleFilter, k.Search, k.SwitchPane, k.Quit)
}

func (k keyMap) todosHelp() string {
	return helpLine(k.NewTodo, k.EditTodo, k.Toggle, k.Delete, k.Rename, k.CycleSort, k.CycleFilter, k.ShowCompleted, k.Details, k.Search, k.Quit)
}

package tui

import "todos-cli/internal/bus"

type pane int

const (
	paneCategories pane = iota
	paneTodos
)

func paneToString(p pane) string {
	if p == paneTodos {
		return "todos"
	}
	return "categories"
}

func paneFromString(s string) pane {
	if s == "todos" {
		return paneTodos
	}
	return paneCategories
}

type modalKind int

const (
	modalNone modalKind = iota
	modalNewTodo
	modalEditTodo
	modalNewCategory
	modalSearch
	modalConfirmDeleteTodo
	modalConfirmDeleteCategory
)

// renderQueue collects the messages the renderer is subscribed to. Bus
// handlers run inside Update (publishing is synchronous), so they only
// record; Update drains the queue once Publish returns.
type renderQueue struct {
	changes []bus.Change
	renames []bus.RenderRenameInput
}

func (q *renderQueue) takeChanges() []bus.Change {
	out := q.changes
	q.changes = nil
	return out
}

func (q *renderQueue) takeRenames() []bus.RenderRenameInput {
	out := q.renames
	q.renames = nil
	return out
}

func (m *appModel) closeAllModals() {
	if m == nil {
		return
	}
	m.modal = modalNone
	m.modalForID = ""
	m.modalErr = ""
	m.confirmFocus = confirmFocusConfirm
	m.deleteTodos = false

	m.input.Placeholder = ""
	m.input.SetValue("")
	m.input.Blur()

	m.form.reset()
	m.form.setFocus(-1)
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"todos-cli/internal/bus"
	"todos-cli/internal/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		if m.rename != nil {
			m.rename.zone = m.renameZone(m.rename.location, m.rename.categoryID)
		}
		return m, nil
	case tea.FocusMsg:
		return m, nil
	}

	// An open rename input owns the keyboard and the mouse until it is torn down.
	if m.rename != nil {
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg, tea.BlurMsg:
			return m.updateRename(msg)
		}
	}

	if m.modal != modalNone {
		if km, ok := msg.(tea.KeyMsg); ok {
			return m.updateModal(km)
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

// publish sends a request and applies whatever the organizer announced in response.
func (m *appModel) publish(topic bus.Topic, payload any) error {
	err := m.bus.Publish(topic, payload)
	m.drain()
	if err != nil {
		m.logger.Warn("request failed", "topic", topic, "err", err)
	}
	return err
}

// drain handles the renderer's queued messages: it saves and redraws after
// state changes and opens requested rename inputs.
func (m *appModel) drain() {
	if changes := m.queue.takeChanges(); len(changes) > 0 {
		m.persist()
		for _, c := range changes {
			m.applyChange(c)
		}
		m.refresh()
	}
	for _, req := range m.queue.takeRenames() {
		m.openRename(req)
	}
}

func (m *appModel) applyChange(c bus.Change) {
	switch c.Topic {
	case bus.CreateCategoryRequest:
		m.selectedCategoryID = c.CategoryID
		m.searchQuery = ""
	case bus.DeleteCategoryRequest:
		if m.selectedCategoryID == c.CategoryID {
			m.selectedCategoryID = model.CategoryAllID
		}
		if m.rename != nil && m.rename.categoryID == c.CategoryID {
			m.rename.remove()
			m.rename = nil
		}
	case bus.CreateTodoRequest:
		m.pendingTodoID = c.TodoID
	}
}

func (m *appModel) openRename(req bus.RenderRenameInput) {
	c, ok := m.org.Category(req.CategoryID)
	if !ok || !c.IsEditable() {
		return
	}
	if m.rename != nil {
		m.rename.remove()
	}
	m.rename = newRenameInput(m.bus, req, c.Name())
	m.rename.zone = m.renameZone(req.Location, req.CategoryID)
}

// renameZone is the screen cell range the rename input covers.
func (m appModel) renameZone(loc bus.RenameLocation, categoryID string) rect {
	if loc == bus.RenameInContentHeader {
		return rect{x: m.contentX(), y: headerLines, w: m.todosWidth(), h: 1}
	}
	row := -1
	for i, it := range m.categoriesList.Items() {
		if ci, ok := it.(categoryItem); ok && ci.cat.ID() == categoryID {
			row = i
			break
		}
	}
	if row < 0 {
		return rect{}
	}
	p := m.categoriesList.Paginator
	row -= p.Page * p.PerPage
	return rect{x: 0, y: headerLines + row, w: sidebarW, h: 1}
}

func (m appModel) updateRename(msg tea.Msg) (tea.Model, tea.Cmd) {
	r := m.rename
	cmd := r.Update(msg)
	if !r.Done() {
		return m, cmd
	}
	m.rename = nil
	m.drain()
	switch {
	case r.err != nil:
		m.showError(r.err)
	case r.outcome == renameApplied:
		if c, ok := m.org.Category(r.categoryID); ok && c.Name() != r.original {
			m.showMinibuffer("Renamed to " + c.Name())
		}
	}
	return m, cmd
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	m.minibufferText = ""

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.SwitchPane):
		if m.pane == paneCategories {
			m.setPane(paneTodos)
		} else {
			m.setPane(paneCategories)
		}
		return m, nil
	case key.Matches(msg, k.NewCategory):
		m.openInputModal(modalNewCategory, "Category name")
		return m, nil
	case key.Matches(msg, k.NewTodo):
		return m.openNewTodo()
	case key.Matches(msg, k.CycleSort):
		m.cycleSort()
		return m, nil
	case key.Matches(msg, k.CycleFilter):
		m.cycleFilter()
		return m, nil
	case key.Matches(msg, k.Search):
		m.openInputModal(modalSearch, "Search titles and descriptions")
		m.input.SetValue(m.searchQuery)
		m.input.CursorEnd()
		return m, nil
	case key.Matches(msg, k.Rename):
		m.requestRename()
		return m, nil
	case key.Matches(msg, k.ShowCompleted):
		m.showCompleted = !m.showCompleted
		m.refresh()
		if m.showCompleted {
			m.showMinibuffer("Showing completed todos")
		} else {
			m.showMinibuffer("Hiding completed todos")
		}
		return m, nil
	case key.Matches(msg, k.Details):
		m.showDetails = !m.showDetails
		m.resizeLists()
		return m, nil
	}

	if m.pane == paneCategories {
		return m.updateCategoriesPane(msg)
	}
	return m.updateTodosPane(msg)
}

func (m appModel) updateCategoriesPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Open):
		m.setPane(paneTodos)
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		c := m.sidebarCategory()
		if c == nil {
			return m, nil
		}
		if !c.IsEditable() {
			m.showMinibuffer(fmt.Sprintf("%q can't be deleted", c.Name()))
			return m, nil
		}
		m.modal = modalConfirmDeleteCategory
		m.modalForID = c.ID()
		m.confirmFocus = confirmFocusCancel
		return m, nil
	}

	var cmd tea.Cmd
	m.categoriesList, cmd = m.categoriesList.Update(msg)
	if c := m.sidebarCategory(); c != nil && (c.ID() != m.selectedCategoryID || m.searchQuery != "") {
		m.selectedCategoryID = c.ID()
		m.searchQuery = ""
		m.todosList.Select(0)
		m.refreshTodos()
	}
	return m, cmd
}

func (m appModel) updateTodosPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.refreshTodos()
			return m, nil
		}
		m.setPane(paneCategories)
		return m, nil
	case key.Matches(msg, m.keys.Open):
		m.showDetails = !m.showDetails
		m.resizeLists()
		return m, nil
	case key.Matches(msg, m.keys.EditTodo):
		t := m.selectedTodo()
		if t == nil {
			return m, nil
		}
		m.closeAllModals()
		m.modal = modalEditTodo
		m.modalForID = t.ID()
		m.form.fill(t)
		return m, m.form.setFocus(fieldTitle)
	case key.Matches(msg, m.keys.Toggle):
		if t := m.selectedTodo(); t != nil {
			if err := m.publish(bus.ToggleTodoRequest, bus.ToggleTodo{TodoID: t.ID()}); err != nil {
				m.showError(err)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if t := m.selectedTodo(); t != nil {
			m.modal = modalConfirmDeleteTodo
			m.modalForID = t.ID()
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.todosList, cmd = m.todosList.Update(msg)
	return m, cmd
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		l := &m.todosList
		if msg.X < sidebarW {
			l = &m.categoriesList
		}
		if msg.Button == tea.MouseButtonWheelUp {
			l.CursorUp()
		} else {
			l.CursorDown()
		}
		if msg.X < sidebarW {
			m.syncSidebarSelection()
		}
		return m, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
	default:
		return m, nil
	}

	row := msg.Y - headerLines
	if row < 0 {
		return m, nil
	}
	if msg.X < sidebarW {
		p := m.categoriesList.Paginator
		idx := p.Page*p.PerPage + row
		if idx < len(m.categoriesList.Items()) {
			m.categoriesList.Select(idx)
			m.setPane(paneCategories)
			m.syncSidebarSelection()
		}
		return m, nil
	}
	if msg.X >= m.contentX() && msg.X < m.contentX()+m.todosWidth() {
		row -= contentHeadH
		if row < 0 {
			return m, nil
		}
		p := m.todosList.Paginator
		idx := p.Page*p.PerPage + row
		if idx < len(m.todosList.Items()) {
			m.todosList.Select(idx)
			m.setPane(paneTodos)
		}
	}
	return m, nil
}

func (m *appModel) syncSidebarSelection() {
	c := m.sidebarCategory()
	if c == nil || c.ID() == m.selectedCategoryID {
		return
	}
	m.selectedCategoryID = c.ID()
	m.searchQuery = ""
	m.todosList.Select(0)
	m.refreshTodos()
}

func (m *appModel) openInputModal(kind modalKind, placeholder string) {
	m.closeAllModals()
	m.modal = kind
	m.input.Placeholder = placeholder
	m.input.Focus()
}

func (m appModel) openNewTodo() (tea.Model, tea.Cmd) {
	m.closeAllModals()
	m.modal = modalNewTodo
	m.form.category.SetValue(m.defaultCategoryName())
	return m, m.form.setFocus(fieldTitle)
}

// requestRename asks the renderer to open a rename input for the category
// under the cursor (sidebar) or the one being shown (content header).
func (m *appModel) requestRename() {
	c := m.sidebarCategory()
	loc := bus.RenameInSidebar
	if m.pane == paneTodos {
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.refreshTodos()
		}
		c = m.currentCategory()
		loc = bus.RenameInContentHeader
	}
	if c == nil {
		return
	}
	if !c.IsEditable() {
		m.showMinibuffer(fmt.Sprintf("%q can't be renamed", c.Name()))
		return
	}
	if err := m.publish(bus.RenderRenameInputRequest, bus.RenderRenameInput{Location: loc, CategoryID: c.ID()}); err != nil {
		m.showError(err)
	}
}

func (m *appModel) cycleSort() {
	c := m.currentCategory()
	if m.pane == paneCategories {
		if sc := m.sidebarCategory(); sc != nil {
			c = sc
		}
	}
	methods := model.ValidSortMethods()
	next := methods[0]
	for i, s := range methods {
		if s == c.SortingMethod() {
			next = methods[(i+1)%len(methods)]
			break
		}
	}
	if err := m.publish(bus.SortCategoryRequest, bus.SortCategory{CategoryID: c.ID(), Method: next}); err != nil {
		m.showError(err)
		return
	}
	m.showMinibuffer(fmt.Sprintf("%s: sorted by %s", c.Name(), strings.ToLower(next.Label())))
}

func (m *appModel) cycleFilter() {
	c := m.currentCategory()
	if m.pane == paneCategories {
		if sc := m.sidebarCategory(); sc != nil {
			c = sc
		}
	}
	methods := model.ValidFilterMethods()
	next := methods[0]
	for i, f := range methods {
		if f == c.FilterMethod() {
			next = methods[(i+1)%len(methods)]
			break
		}
	}
	if err := m.publish(bus.FilterCategoryRequest, bus.FilterCategory{CategoryID: c.ID(), Method: next}); err != nil {
		m.showError(err)
		return
	}
	m.showMinibuffer(fmt.Sprintf("%s: %s", c.Name(), strings.ToLower(next.Label())))
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalNewTodo, modalEditTodo:
		return m.updateTodoForm(msg)
	case modalNewCategory, modalSearch:
		return m.updateInputModal(msg)
	case modalConfirmDeleteTodo, modalConfirmDeleteCategory:
		return m.updateConfirmModal(msg)
	}
	return m, nil
}

func (m appModel) updateInputModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeAllModals()
		return m, nil
	case "enter":
		val := strings.TrimSpace(m.input.Value())
		if m.modal == modalSearch {
			m.closeAllModals()
			m.searchQuery = val
			m.setPane(paneTodos)
			m.todosList.Select(0)
			m.refreshTodos()
			if val != "" {
				m.showMinibuffer(fmt.Sprintf("%d result(s) for %q", len(m.todosList.Items()), val))
			}
			return m, nil
		}
		if err := m.publish(bus.CreateCategoryRequest, bus.CreateCategory{Name: val}); err != nil {
			m.modalErr = err.Error()
			return m, nil
		}
		m.closeAllModals()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateTodoForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeAllModals()
		return m, nil
	case "tab":
		return m, m.form.next()
	case "shift+tab":
		return m, m.form.prev()
	case "ctrl+s":
		return m.saveTodoForm()
	case "enter":
		if m.form.focus != fieldDescription {
			return m.saveTodoForm()
		}
	}
	return m, m.form.update(msg)
}

func (m appModel) saveTodoForm() (tea.Model, tea.Cmd) {
	in, err := m.form.input(m.org, time.Now())
	if err != nil {
		m.form.err = err.Error()
		return m, nil
	}
	if m.modal == modalEditTodo {
		err = m.publish(bus.EditTodoRequest, bus.EditTodo{TodoID: m.modalForID, Input: in})
	} else {
		err = m.publish(bus.CreateTodoRequest, bus.CreateTodo{Input: in})
	}
	if err != nil {
		m.form.err = err.Error()
		return m, nil
	}
	m.closeAllModals()
	m.setPane(paneTodos)
	return m, nil
}

func (m appModel) updateConfirmModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "n":
		m.closeAllModals()
		return m, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "t":
		if m.modal == modalConfirmDeleteCategory {
			m.deleteTodos = !m.deleteTodos
		}
		return m, nil
	case "y":
		m.confirmFocus = confirmFocusConfirm
	case "enter":
	default:
		return m, nil
	}
	if m.confirmFocus != confirmFocusConfirm {
		m.closeAllModals()
		return m, nil
	}

	var err error
	if m.modal == modalConfirmDeleteCategory {
		err = m.publish(bus.DeleteCategoryRequest, bus.DeleteCategory{CategoryID: m.modalForID, DeleteTodos: m.deleteTodos})
	} else {
		err = m.publish(bus.DeleteTodoRequest, bus.DeleteTodo{TodoID: m.modalForID})
	}
	m.closeAllModals()
	if err != nil {
		m.showError(err)
	}
	return m, nil
}

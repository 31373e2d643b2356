package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"todos-cli/internal/bus"
	"todos-cli/internal/model"
	"todos-cli/internal/organizer"
	"todos-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"
)

type appModel struct {
	ctx    context.Context
	org    *organizer.Organizer
	bus    *bus.Bus
	store  store.Store
	logger *log.Logger
	keys   keyMap

	width  int
	height int

	pane pane

	categoriesList   list.Model
	todosList        list.Model
	categoriesActive *bool
	todosActive      *bool

	selectedCategoryID string
	// pendingTodoID is selected on the next todo refresh (e.g. a newly created todo).
	pendingTodoID string
	searchQuery   string
	showCompleted bool
	showDetails   bool

	modal        modalKind
	modalForID   string
	modalErr     string
	confirmFocus confirmModalFocus
	deleteTodos  bool

	input textinput.Model
	form  todoForm

	rename *renameInput

	queue *renderQueue
	subs  []*bus.Subscription

	minibufferText string
	minibufferErr  bool
}

func newAppModel(ctx context.Context, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := appModel{
		ctx:                ctx,
		org:                opts.Organizer,
		bus:                opts.Organizer.Bus(),
		store:              opts.Store,
		logger:             logger,
		keys:               defaultKeyMap(),
		pane:               paneCategories,
		selectedCategoryID: model.CategoryAllID,
		showCompleted:      opts.ShowCompleted,
		queue:              &renderQueue{},
		categoriesActive:   new(bool),
		todosActive:        new(bool),
	}

	m.categoriesList = newList("Categories", []list.Item{})
	m.categoriesList.SetDelegate(categoryDelegate{active: m.categoriesActive})
	m.todosList = newList("Todos", []list.Item{})
	m.todosList.SetDelegate(todoDelegate{active: m.todosActive})

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.CharLimit = 200
	m.form = newTodoForm()

	q := m.queue
	m.subs = []*bus.Subscription{
		m.bus.Subscribe(bus.StateChanged, func(topic bus.Topic, payload any) error {
			c, ok := payload.(bus.Change)
			if !ok {
				return fmt.Errorf("%w for %v: %T", organizer.ErrBadPayload, topic, payload)
			}
			q.changes = append(q.changes, c)
			return nil
		}),
		m.bus.Subscribe(bus.RenderRenameInputRequest, func(topic bus.Topic, payload any) error {
			req, ok := payload.(bus.RenderRenameInput)
			if !ok {
				return fmt.Errorf("%w for %v: %T", organizer.ErrBadPayload, topic, payload)
			}
			q.renames = append(q.renames, req)
			return nil
		}),
	}

	// The day may have rolled over since the state was saved.
	m.org.RefreshDates()

	// Best-effort: restore last selection for this workspace.
	if st, err := m.store.LoadTUIState(); err == nil {
		m.applySavedTUIState(st)
	}
	m.setPane(m.pane)
	m.refresh()
	return m
}

func (m appModel) detach() {
	for _, s := range m.subs {
		s.Unsubscribe()
	}
	if m.rename != nil {
		m.rename.remove()
	}
}

func (m *appModel) applySavedTUIState(st *store.TUIState) {
	if st == nil {
		return
	}
	if _, ok := m.org.Category(st.SelectedCategoryID); ok {
		m.selectedCategoryID = st.SelectedCategoryID
	}
	m.pendingTodoID = st.SelectedTodoID
	m.pane = paneFromString(st.Pane)
	m.showDetails = st.ShowDetails
}

func (m appModel) tuiState() *store.TUIState {
	st := &store.TUIState{
		Version:            1,
		SelectedCategoryID: m.selectedCategoryID,
		Pane:               paneToString(m.pane),
		ShowDetails:        m.showDetails,
	}
	if t := m.selectedTodo(); t != nil {
		st.SelectedTodoID = t.ID()
	}
	return st
}

func (m *appModel) setPane(p pane) {
	m.pane = p
	*m.categoriesActive = p == paneCategories
	*m.todosActive = p == paneTodos
}

// currentCategory is the category shown in the content column.
func (m appModel) currentCategory() model.CategoryLike {
	if c, ok := m.org.Category(m.selectedCategoryID); ok {
		return c
	}
	c, _ := m.org.Category(model.CategoryAllID)
	return c
}

// sidebarCategory is the category under the sidebar cursor.
func (m appModel) sidebarCategory() model.CategoryLike {
	if it, ok := m.categoriesList.SelectedItem().(categoryItem); ok {
		return it.cat
	}
	return nil
}

func (m appModel) selectedTodo() *model.Todo {
	if it, ok := m.todosList.SelectedItem().(todoItem); ok {
		return it.todo
	}
	return nil
}

// defaultCategoryName is the category a new todo is filed under.
func (m appModel) defaultCategoryName() string {
	if c := m.currentCategory(); c != nil && c.IsEditable() {
		return c.Name()
	}
	return ""
}

func (m *appModel) refresh() {
	m.refreshCategories()
	m.refreshTodos()
}

func (m *appModel) refreshCategories() {
	cats := m.org.Categories()
	items := make([]list.Item, 0, len(cats))
	for _, c := range cats {
		items = append(items, categoryItem{cat: c, count: len(m.visibleTodos(c))})
	}
	m.categoriesList.SetItems(items)
	if !selectCategoryByID(&m.categoriesList, m.selectedCategoryID) {
		m.selectedCategoryID = model.CategoryAllID
		m.categoriesList.Select(0)
	}
}

// visibleTodos refreshes c and applies the display-only completed toggle on
// top of its filter. Categories share todos, so c is re-filtered every time it
// is shown or counted.
func (m appModel) visibleTodos(c model.CategoryLike) []*model.Todo {
	c.Refresh()
	todos := c.VisibleTodos()
	if m.showCompleted {
		return todos
	}
	out := make([]*model.Todo, 0, len(todos))
	for _, t := range todos {
		if !t.CompletedStatus {
			out = append(out, t)
		}
	}
	return out
}

func (m *appModel) refreshTodos() {
	keepID := m.pendingTodoID
	if keepID == "" {
		if t := m.selectedTodo(); t != nil {
			keepID = t.ID()
		}
	}
	keepIdx := m.todosList.Index()
	m.pendingTodoID = ""

	var todos []*model.Todo
	showCategory := true
	if m.searchQuery != "" {
		todos = m.org.Search(m.searchQuery)
	} else {
		c := m.currentCategory()
		todos = m.visibleTodos(c)
		showCategory = !c.IsEditable()
	}

	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, todoItem{todo: t, showCategory: showCategory})
	}
	m.todosList.SetItems(items)
	if keepID != "" && selectTodoByID(&m.todosList, keepID) {
		return
	}
	// The previous todo is gone: stay at the same row when possible.
	if keepIdx >= len(items) {
		keepIdx = len(items) - 1
	}
	if keepIdx < 0 {
		keepIdx = 0
	}
	m.todosList.Select(keepIdx)
}

func (m *appModel) resizeLists() {
	m.categoriesList.SetSize(sidebarW, m.bodyHeight())
	m.todosList.SetSize(m.todosWidth(), m.todosListHeight())
}

// persist saves the whole state; called after every change the organizer announces.
func (m *appModel) persist() {
	if err := m.store.Save(m.ctx, m.org.Export()); err != nil {
		m.logger.Error("save state", "dir", m.store.Dir, "err", err)
		m.showError(fmt.Errorf("save failed: %w", err))
	}
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = strings.TrimSpace(text)
	m.minibufferErr = false
}

func (m *appModel) showError(err error) {
	if err == nil {
		return
	}
	m.minibufferText = err.Error()
	m.minibufferErr = true
}

package tui

import (
	"context"
	"strings"
	"testing"

	"todos-cli/internal/bus"
	"todos-cli/internal/model"
	"todos-cli/internal/organizer"
	"todos-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type testEnv struct {
	org   *organizer.Organizer
	store store.Store
	work  *model.UserCategory
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	org := organizer.New(bus.New(nil), organizer.Options{})
	org.Attach()
	t.Cleanup(org.Detach)
	work, err := org.CreateCategory("Work")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return testEnv{org: org, store: store.Store{Dir: t.TempDir()}, work: work}
}

func (e testEnv) model(t *testing.T) appModel {
	t.Helper()
	m := newAppModel(context.Background(), Options{Organizer: e.org, Store: e.store, ShowCompleted: true})
	t.Cleanup(m.detach)
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(appModel)
	if !ok {
		t.Fatalf("expected appModel, got %T", next)
	}
	return mm
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func selectCategory(t *testing.T, m appModel, id string) appModel {
	t.Helper()
	if !selectCategoryByID(&m.categoriesList, id) {
		t.Fatalf("category %s not in sidebar", id)
	}
	m.syncSidebarSelection()
	return m
}

func savedState(t *testing.T, s store.Store) *store.State {
	t.Helper()
	st, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return st
}

func TestNewCategoryModal_CreatesSelectsAndSaves(t *testing.T) {
	env := newTestEnv(t)
	m := env.model(t)

	m = update(t, m, keys("N"))
	if m.modal != modalNewCategory {
		t.Fatalf("expected modalNewCategory, got %v", m.modal)
	}
	m.input.SetValue("Home")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.modal != modalNone {
		t.Fatalf("expected modal closed, got %v", m.modal)
	}
	if c := m.currentCategory(); c.Name() != "Home" {
		t.Fatalf("expected new category selected, got %q", c.Name())
	}
	found := false
	for _, rec := range savedState(t, env.store).Categories {
		if rec.Name == "Home" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Home to be saved")
	}
}

func TestNewCategoryModal_DuplicateKeepsModalOpen(t *testing.T) {
	env := newTestEnv(t)
	m := env.model(t)

	m = update(t, m, keys("N"))
	m.input.SetValue("work")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.modal != modalNewCategory {
		t.Fatalf("expected modal to stay open, got %v", m.modal)
	}
	if !strings.Contains(m.modalErr, "already exists") {
		t.Fatalf("expected duplicate error, got %q", m.modalErr)
	}
}

func TestRenameKey_OpensInputFromBusAndApplies(t *testing.T) {
	env := newTestEnv(t)
	m := selectCategory(t, env.model(t), env.work.ID())

	m = update(t, m, keys("r"))
	if m.rename == nil {
		t.Fatalf("expected rename input to open")
	}
	if m.rename.location != bus.RenameInSidebar {
		t.Fatalf("expected sidebar location, got %v", m.rename.location)
	}
	// Three system categories come first.
	if want := (rect{x: 0, y: headerLines + 3, w: sidebarW, h: 1}); m.rename.zone != want {
		t.Fatalf("unexpected zone %+v, want %+v", m.rename.zone, want)
	}
	if !strings.Contains(m.View(), "Work") {
		t.Fatalf("expected rename input to show current name")
	}

	m.rename.input.SetValue("Office")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.rename != nil {
		t.Fatalf("expected rename input closed")
	}
	if env.work.Name() != "Office" {
		t.Fatalf("expected category renamed, got %q", env.work.Name())
	}
	if !strings.Contains(m.minibufferText, "Office") {
		t.Fatalf("expected confirmation, got %q", m.minibufferText)
	}
	for _, rec := range savedState(t, env.store).Categories {
		if rec.ID == env.work.ID() && rec.Name != "Office" {
			t.Fatalf("expected saved name Office, got %q", rec.Name)
		}
	}
}

func TestRenameKey_EscapePublishesNoRename(t *testing.T) {
	env := newTestEnv(t)
	renames := 0
	sub := env.org.Bus().Subscribe(bus.RenameCategoryRequest, func(bus.Topic, any) error {
		renames++
		return nil
	})
	t.Cleanup(sub.Unsubscribe)
	m := selectCategory(t, env.model(t), env.work.ID())

	m = update(t, m, keys("r"))
	r := m.rename
	m = update(t, m, keys("x"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if renames != 0 {
		t.Fatalf("expected no rename request, got %d", renames)
	}
	if m.rename != nil || !r.Done() || r.events.len() != 0 {
		t.Fatalf("expected widget torn down")
	}
	if env.work.Name() != "Work" {
		t.Fatalf("expected name unchanged, got %q", env.work.Name())
	}
}

func TestRenameKey_ContentHeaderOutsideClickApplies(t *testing.T) {
	env := newTestEnv(t)
	m := selectCategory(t, env.model(t), env.work.ID())
	m.setPane(paneTodos)

	m = update(t, m, keys("r"))
	if m.rename == nil || m.rename.location != bus.RenameInContentHeader {
		t.Fatalf("expected content header rename input")
	}
	m.rename.input.SetValue("Deep work")
	m = update(t, m, tea.MouseMsg{X: 2, Y: 30, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if m.rename != nil {
		t.Fatalf("expected rename input closed")
	}
	if env.work.Name() != "Deep work" {
		t.Fatalf("expected category renamed, got %q", env.work.Name())
	}
}

func TestRenameKey_RejectedForSystemCategory(t *testing.T) {
	env := newTestEnv(t)
	m := selectCategory(t, env.model(t), model.CategoryAllID)

	m = update(t, m, keys("r"))

	if m.rename != nil {
		t.Fatalf("system categories must not open a rename input")
	}
	if !strings.Contains(m.minibufferText, "can't be renamed") {
		t.Fatalf("expected explanation, got %q", m.minibufferText)
	}
}

func TestRenameKey_DuplicateNameShowsError(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.org.CreateCategory("Home"); err != nil {
		t.Fatal(err)
	}
	m := selectCategory(t, env.model(t), env.work.ID())

	m = update(t, m, keys("r"))
	m.rename.input.SetValue("home")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.minibufferErr || !strings.Contains(m.minibufferText, "already exists") {
		t.Fatalf("expected duplicate error, got %q", m.minibufferText)
	}
	if env.work.Name() != "Work" {
		t.Fatalf("expected name unchanged, got %q", env.work.Name())
	}
}

func TestDeletingCategoryRemovesOpenRenameInput(t *testing.T) {
	env := newTestEnv(t)
	m := selectCategory(t, env.model(t), env.work.ID())
	m = update(t, m, keys("r"))
	r := m.rename

	if err := (&m).publish(bus.DeleteCategoryRequest, bus.DeleteCategory{CategoryID: env.work.ID()}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if m.rename != nil {
		t.Fatalf("expected rename input removed")
	}
	if !r.Done() || r.events.len() != 0 || r.trap.active {
		t.Fatalf("expected widget torn down")
	}
	if m.selectedCategoryID != model.CategoryAllID {
		t.Fatalf("expected selection to fall back to all, got %q", m.selectedCategoryID)
	}
}

func TestNewTodoForm_FilesUnderCurrentCategory(t *testing.T) {
	env := newTestEnv(t)
	m := selectCategory(t, env.model(t), env.work.ID())

	m = update(t, m, keys("n"))
	if m.modal != modalNewTodo {
		t.Fatalf("expected modalNewTodo, got %v", m.modal)
	}
	if got := m.form.category.Value(); got != "Work" {
		t.Fatalf("expected category prefilled, got %q", got)
	}
	m.form.title.SetValue("Write report")
	m.form.priority.SetValue("2")
	m.form.due.SetValue("tomorrow")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if m.modal != modalNone {
		t.Fatalf("expected modal closed; err=%q", m.form.err)
	}
	todos := env.work.Todos()
	if len(todos) != 1 {
		t.Fatalf("expected one todo in Work, got %d", len(todos))
	}
	td := todos[0]
	if td.Title != "Write report" || td.Priority != model.PriorityTwo || td.DueDate == "" {
		t.Fatalf("unexpected todo: %+v", td)
	}
	if sel := m.selectedTodo(); sel == nil || sel.ID() != td.ID() {
		t.Fatalf("expected new todo selected")
	}
	if m.pane != paneTodos {
		t.Fatalf("expected todos pane")
	}
	if got := len(savedState(t, env.store).Todos); got != 1 {
		t.Fatalf("expected one saved todo, got %d", got)
	}
}

func TestNewTodoForm_InvalidInputKeepsModalOpen(t *testing.T) {
	env := newTestEnv(t)
	m := env.model(t)

	m = update(t, m, keys("n"))
	m.form.title.SetValue("Anything")
	m.form.priority.SetValue("7")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.modal != modalNewTodo {
		t.Fatalf("expected modal to stay open")
	}
	if !strings.Contains(m.form.err, "priority") {
		t.Fatalf("expected priority error, got %q", m.form.err)
	}
	if len(env.org.Todos()) != 0 {
		t.Fatalf("expected no todo created")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != modalNone {
		t.Fatalf("expected esc to cancel")
	}
}

func TestEditTodoForm_MovesBetweenCategories(t *testing.T) {
	env := newTestEnv(t)
	home, _ := env.org.CreateCategory("Home")
	td, err := env.org.CreateTodo(bus.TodoInput{Title: "Fix sink", CategoryID: env.work.ID()})
	if err != nil {
		t.Fatal(err)
	}
	m := selectCategory(t, env.model(t), env.work.ID())
	m.setPane(paneTodos)

	m = update(t, m, keys("e"))
	if m.modal != modalEditTodo || m.modalForID != td.ID() {
		t.Fatalf("expected edit modal for %s", td.ID())
	}
	m.form.category.SetValue("home")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if td.CategoryID != home.ID() {
		t.Fatalf("expected todo moved to Home, got %q", td.CategoryName)
	}
	if len(env.work.Todos()) != 0 || len(home.Todos()) != 1 {
		t.Fatalf("expected remove from Work and add to Home")
	}
}

func TestToggleThenDeleteTodo(t *testing.T) {
	env := newTestEnv(t)
	td, _ := env.org.CreateTodo(bus.TodoInput{Title: "Call mom", CategoryID: env.work.ID()})
	m := selectCategory(t, env.model(t), env.work.ID())
	m.setPane(paneTodos)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !td.CompletedStatus {
		t.Fatalf("expected todo completed")
	}

	m = update(t, m, keys("d"))
	if m.modal != modalConfirmDeleteTodo {
		t.Fatalf("expected confirm modal, got %v", m.modal)
	}
	// Enter on the default (cancel) button keeps the todo.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := env.org.Todo(td.ID()); !ok {
		t.Fatalf("expected cancel to keep the todo")
	}

	m = update(t, m, keys("d"))
	m = update(t, m, keys("y"))
	if _, ok := env.org.Todo(td.ID()); ok {
		t.Fatalf("expected todo deleted")
	}
	if len(m.todosList.Items()) != 0 {
		t.Fatalf("expected empty list")
	}
}

func TestDeleteCategory_CascadeToggle(t *testing.T) {
	env := newTestEnv(t)
	td, _ := env.org.CreateTodo(bus.TodoInput{Title: "Ship it", CategoryID: env.work.ID()})
	m := selectCategory(t, env.model(t), env.work.ID())

	m = update(t, m, keys("d"))
	if m.modal != modalConfirmDeleteCategory {
		t.Fatalf("expected confirm modal, got %v", m.modal)
	}
	m = update(t, m, keys("t"))
	if !m.deleteTodos {
		t.Fatalf("expected cascade toggled on")
	}
	m = update(t, m, keys("y"))

	if _, ok := env.org.Category(env.work.ID()); ok {
		t.Fatalf("expected category deleted")
	}
	if _, ok := env.org.Todo(td.ID()); ok {
		t.Fatalf("expected contained todo deleted")
	}
	if m.currentCategory().ID() != model.CategoryAllID {
		t.Fatalf("expected selection to fall back to all")
	}
}

func TestDeleteCategory_RefusedForSystemCategory(t *testing.T) {
	env := newTestEnv(t)
	m := selectCategory(t, env.model(t), model.CategoryTodayID)

	m = update(t, m, keys("d"))
	if m.modal != modalNone {
		t.Fatalf("expected no modal for a system category")
	}
}

func TestCycleSortAndFilter(t *testing.T) {
	env := newTestEnv(t)
	m := selectCategory(t, env.model(t), env.work.ID())

	m = update(t, m, keys("s"))
	if got := env.work.SortingMethod(); got != model.SortName {
		t.Fatalf("expected name sort, got %q", got)
	}
	m = update(t, m, keys("f"))
	if got := env.work.FilterMethod(); got != model.FilterPriorityOne {
		t.Fatalf("expected priority-one filter, got %q", got)
	}
	if !strings.Contains(m.minibufferText, "priority 1") {
		t.Fatalf("expected filter feedback, got %q", m.minibufferText)
	}
}

func TestFilteredTodosAreHiddenFromTheList(t *testing.T) {
	env := newTestEnv(t)
	_, _ = env.org.CreateTodo(bus.TodoInput{Title: "Urgent", Priority: model.PriorityOne, CategoryID: env.work.ID()})
	_, _ = env.org.CreateTodo(bus.TodoInput{Title: "Later", Priority: model.PriorityThree, CategoryID: env.work.ID()})
	if err := env.org.SetFilter(env.work.ID(), model.FilterPriorityOne); err != nil {
		t.Fatal(err)
	}
	m := selectCategory(t, env.model(t), env.work.ID())

	items := m.todosList.Items()
	if len(items) != 1 || items[0].(todoItem).todo.Title != "Urgent" {
		t.Fatalf("expected only the priority 1 todo, got %d items", len(items))
	}
	if !strings.Contains(m.View(), "1 hidden") {
		t.Fatalf("expected hidden count in the header")
	}
}

func TestShowCompletedToggle(t *testing.T) {
	env := newTestEnv(t)
	td, _ := env.org.CreateTodo(bus.TodoInput{Title: "Done already", CategoryID: env.work.ID()})
	_ = env.org.ToggleTodo(td.ID())
	m := selectCategory(t, env.model(t), env.work.ID())
	if len(m.todosList.Items()) != 1 {
		t.Fatalf("expected completed todo visible")
	}

	m = update(t, m, keys("c"))
	if len(m.todosList.Items()) != 0 {
		t.Fatalf("expected completed todo hidden")
	}
}

func TestSearch_ShowsMatchesAndEscReturns(t *testing.T) {
	env := newTestEnv(t)
	_, _ = env.org.CreateTodo(bus.TodoInput{Title: "Buy milk", CategoryID: env.work.ID()})
	_, _ = env.org.CreateTodo(bus.TodoInput{Title: "Call bank", Description: "about the milk money"})
	_, _ = env.org.CreateTodo(bus.TodoInput{Title: "Walk"})
	m := env.model(t)

	m = update(t, m, keys("/"))
	m.input.SetValue("MILK")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.searchQuery != "MILK" || m.pane != paneTodos {
		t.Fatalf("expected search mode in todos pane")
	}
	if n := len(m.todosList.Items()); n != 2 {
		t.Fatalf("expected 2 matches, got %d", n)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.searchQuery != "" {
		t.Fatalf("expected esc to leave search")
	}
	if n := len(m.todosList.Items()); n != 3 {
		t.Fatalf("expected all todos back, got %d", n)
	}
}

func TestMouseClickSelectsCategory(t *testing.T) {
	env := newTestEnv(t)
	m := env.model(t)

	m = update(t, m, tea.MouseMsg{X: 4, Y: headerLines + 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if m.selectedCategoryID != env.work.ID() {
		t.Fatalf("expected Work selected, got %q", m.selectedCategoryID)
	}
}

func TestQuitKey(t *testing.T) {
	env := newTestEnv(t)
	m := env.model(t)
	_, cmd := m.Update(keys("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestSavedTUIStateRestoresSelection(t *testing.T) {
	env := newTestEnv(t)
	_, _ = env.org.CreateTodo(bus.TodoInput{Title: "First", CategoryID: env.work.ID()})
	second, _ := env.org.CreateTodo(bus.TodoInput{Title: "Second", CategoryID: env.work.ID()})

	m := selectCategory(t, env.model(t), env.work.ID())
	m.setPane(paneTodos)
	selectTodoByID(&m.todosList, second.ID())
	if err := env.store.SaveTUIState(m.tuiState()); err != nil {
		t.Fatalf("save tui state: %v", err)
	}

	restored := env.model(t)
	if restored.selectedCategoryID != env.work.ID() {
		t.Fatalf("expected Work restored, got %q", restored.selectedCategoryID)
	}
	if restored.pane != paneTodos {
		t.Fatalf("expected todos pane restored")
	}
	if sel := restored.selectedTodo(); sel == nil || sel.ID() != second.ID() {
		t.Fatalf("expected second todo restored")
	}
}

func TestSidebarCountsFollowEachCategoryFilter(t *testing.T) {
	env := newTestEnv(t)
	home, err := env.org.CreateCategory("Home")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = env.org.CreateTodo(bus.TodoInput{Title: "Urgent", Priority: model.PriorityOne, CategoryID: env.work.ID()})
	_, _ = env.org.CreateTodo(bus.TodoInput{Title: "Later", Priority: model.PriorityTwo, CategoryID: env.work.ID()})
	_, _ = env.org.CreateTodo(bus.TodoInput{Title: "Chore", Priority: model.PriorityTwo, CategoryID: home.ID()})
	if err := env.org.SetFilter(env.work.ID(), model.FilterPriorityOne); err != nil {
		t.Fatal(err)
	}

	m := selectCategory(t, env.model(t), model.CategoryAllID)
	if got := len(m.todosList.Items()); got != 3 {
		t.Fatalf("expected 3 todos under All, got %d", got)
	}
	m = selectCategory(t, m, env.work.ID())
	if got := len(m.todosList.Items()); got != 1 {
		t.Fatalf("expected 1 todo under Work, got %d", got)
	}
	m = selectCategory(t, m, model.CategoryAllID)

	want := map[string]int{model.CategoryAllID: 3, env.work.ID(): 1, home.ID(): 1}
	for _, it := range m.categoriesList.Items() {
		ci := it.(categoryItem)
		if n, ok := want[ci.cat.ID()]; ok && ci.count != n {
			t.Fatalf("%s: expected count %d, got %d", ci.cat.Name(), n, ci.count)
		}
	}
	if got := len(m.todosList.Items()); got != 3 {
		t.Fatalf("expected 3 todos under All after switching back, got %d", got)
	}
}

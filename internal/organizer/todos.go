package organizer

import (
	"strings"

	"todos-cli/internal/bus"
	"todos-cli/internal/model"
)

func (o *Organizer) validateInput(in bus.TodoInput) (bus.TodoInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.DueDate = strings.TrimSpace(in.DueDate)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	if in.Title == "" {
		return in, ErrEmptyTitle
	}
	if !in.Priority.IsValid() {
		return in, model.ErrInvalidPriority
	}
	if err := model.ValidateDueDate(in.DueDate); err != nil {
		return in, err
	}
	if in.CategoryID != "" {
		if _, ok := o.userCategory(in.CategoryID); !ok {
			return in, categoryNotFound(in.CategoryID)
		}
	}
	return in, nil
}

// CreateTodo validates the input and files the new todo under "All todos",
// its user category (if any) and the date categories it qualifies for.
func (o *Organizer) CreateTodo(in bus.TodoInput) (*model.Todo, error) {
	in, err := o.validateInput(in)
	if err != nil {
		o.logger.Warn("create todo rejected", "title", in.Title, "err", err)
		return nil, err
	}
	t := model.NewTodo(in.Title, in.Description, in.Priority, in.DueDate, "", "")
	o.todos = append(o.todos, t)
	o.systemCategory(model.CategoryAllID).AddTodo(t)
	if in.CategoryID != "" {
		o.moveTodo(t, in.CategoryID)
	}
	o.fileByDate(t)
	o.refreshFor(t)
	o.logger.Debug("todo created", "id", t.ID(), "title", t.Title)
	o.changed(bus.CreateTodoRequest, t.CategoryID, t.ID())
	return t, nil
}

// AdoptTodo files an already constructed todo (e.g. one restored from disk).
func (o *Organizer) AdoptTodo(t *model.Todo) {
	o.todos = append(o.todos, t)
	o.systemCategory(model.CategoryAllID).AddTodo(t)
	if t.CategoryID != "" {
		if uc, ok := o.userCategory(t.CategoryID); ok {
			uc.AddTodo(t)
			t.CategoryName = uc.Name()
		} else {
			t.CategoryID = ""
			t.CategoryName = ""
		}
	}
	o.fileByDate(t)
}

// EditTodo replaces the user-editable fields. A category change is carried
// out as a removal from the old category followed by an add to the new one.
func (o *Organizer) EditTodo(id string, in bus.TodoInput) error {
	t, ok := o.Todo(id)
	if !ok {
		return todoNotFound(id)
	}
	in, err := o.validateInput(in)
	if err != nil {
		o.logger.Warn("edit todo rejected", "id", id, "err", err)
		return err
	}
	oldCategory := t.CategoryID

	t.Title = in.Title
	t.Description = in.Description
	t.Priority = in.Priority
	if err := t.SetDueDate(in.DueDate, o.now()); err != nil {
		return err
	}
	if in.CategoryID != oldCategory {
		o.moveTodo(t, in.CategoryID)
	}
	o.fileByDate(t)
	o.refreshFor(t)
	if oldCategory != "" && oldCategory != t.CategoryID {
		if uc, ok := o.userCategory(oldCategory); ok {
			uc.Refresh()
		}
	}
	o.logger.Debug("todo edited", "id", id)
	o.changed(bus.EditTodoRequest, t.CategoryID, id)
	return nil
}

// moveTodo detaches t from its current user category and attaches it to categoryID ("" for none).
func (o *Organizer) moveTodo(t *model.Todo, categoryID string) {
	if t.CategoryID != "" {
		if old, ok := o.userCategory(t.CategoryID); ok {
			old.RemoveTodo(t)
		}
	}
	t.CategoryID = ""
	t.CategoryName = ""
	if categoryID == "" {
		return
	}
	if uc, ok := o.userCategory(categoryID); ok {
		uc.AddTodo(t)
		t.CategoryID = uc.ID()
		t.CategoryName = uc.Name()
	}
}

func (o *Organizer) DeleteTodo(id string) error {
	t, ok := o.Todo(id)
	if !ok {
		return todoNotFound(id)
	}
	categoryID := t.CategoryID
	o.removeTodo(t)
	if uc, ok := o.userCategory(categoryID); ok {
		uc.Refresh()
	}
	o.refreshSystem()
	o.logger.Debug("todo deleted", "id", id)
	o.changed(bus.DeleteTodoRequest, categoryID, id)
	return nil
}

// removeTodo unlinks t from every category and the todo index.
func (o *Organizer) removeTodo(t *model.Todo) {
	for _, c := range o.Categories() {
		c.RemoveTodo(t)
	}
	kept := o.todos[:0]
	for _, it := range o.todos {
		if it != t {
			kept = append(kept, it)
		}
	}
	o.todos = kept
}

func (o *Organizer) ToggleTodo(id string) error {
	t, ok := o.Todo(id)
	if !ok {
		return todoNotFound(id)
	}
	t.ToggleCompletedStatus()
	t.OverdueStatus = t.IsOverdue(o.now())
	o.refreshFor(t)
	o.changed(bus.ToggleTodoRequest, t.CategoryID, id)
	return nil
}

// refreshFor re-filters and re-sorts every category holding t.
func (o *Organizer) refreshFor(t *model.Todo) {
	for _, c := range o.Categories() {
		if c.HasTodo(t) {
			c.Refresh()
		}
	}
}

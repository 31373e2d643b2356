// Package organizer owns the category and todo state. It answers request
// messages from the bus, mutates categories and todos, and announces every
// change with a STATE_CHANGED message for the renderer.
package organizer

import (
	"io"
	"strings"
	"time"

	"todos-cli/internal/bus"
	"todos-cli/internal/model"

	"github.com/charmbracelet/log"
)

type Options struct {
	// DefaultSort and DefaultFilter apply to newly created categories.
	DefaultSort   model.SortMethod
	DefaultFilter model.FilterMethod

	// Now is the clock used for due-date bookkeeping. Defaults to time.Now.
	Now func() time.Time

	Logger *log.Logger
}

type Organizer struct {
	bus    *bus.Bus
	logger *log.Logger
	now    func() time.Time

	defaultSort   model.SortMethod
	defaultFilter model.FilterMethod

	system []*model.SystemCategory
	user   []*model.UserCategory
	// todos is every live todo in creation order.
	todos []*model.Todo

	subs []*bus.Subscription
}

func New(b *bus.Bus, opts Options) *Organizer {
	if b == nil {
		b = bus.New(opts.Logger)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	o := &Organizer{
		bus:           b,
		logger:        logger,
		now:           now,
		defaultSort:   model.SortCreationDate,
		defaultFilter: model.FilterNone,
		system:        model.DefaultSystemCategories(),
	}
	if opts.DefaultSort.IsValid() {
		o.defaultSort = opts.DefaultSort
	}
	if opts.DefaultFilter.IsValid() {
		o.defaultFilter = opts.DefaultFilter
	}
	for _, c := range o.system {
		o.applyDefaults(c)
	}
	return o
}

func (o *Organizer) Bus() *bus.Bus { return o.bus }

func (o *Organizer) applyDefaults(c model.CategoryLike) {
	_ = c.SetSortingMethod(o.defaultSort)
	_ = c.SetFilterMethod(o.defaultFilter)
}

// Attach subscribes the organizer to every request topic.
func (o *Organizer) Attach() {
	if len(o.subs) > 0 {
		return
	}
	o.subs = []*bus.Subscription{
		o.bus.Subscribe(bus.RenameCategoryRequest, handle(func(r bus.RenameCategory) error {
			return o.RenameCategory(r.CategoryID, r.NewName)
		})),
		o.bus.Subscribe(bus.CreateCategoryRequest, handle(func(r bus.CreateCategory) error {
			_, err := o.CreateCategory(r.Name)
			return err
		})),
		o.bus.Subscribe(bus.DeleteCategoryRequest, handle(func(r bus.DeleteCategory) error {
			return o.DeleteCategory(r.CategoryID, r.DeleteTodos)
		})),
		o.bus.Subscribe(bus.CreateTodoRequest, handle(func(r bus.CreateTodo) error {
			_, err := o.CreateTodo(r.Input)
			return err
		})),
		o.bus.Subscribe(bus.EditTodoRequest, handle(func(r bus.EditTodo) error {
			return o.EditTodo(r.TodoID, r.Input)
		})),
		o.bus.Subscribe(bus.DeleteTodoRequest, handle(func(r bus.DeleteTodo) error {
			return o.DeleteTodo(r.TodoID)
		})),
		o.bus.Subscribe(bus.ToggleTodoRequest, handle(func(r bus.ToggleTodo) error {
			return o.ToggleTodo(r.TodoID)
		})),
		o.bus.Subscribe(bus.SortCategoryRequest, handle(func(r bus.SortCategory) error {
			return o.SetSort(r.CategoryID, r.Method)
		})),
		o.bus.Subscribe(bus.FilterCategoryRequest, handle(func(r bus.FilterCategory) error {
			return o.SetFilter(r.CategoryID, r.Method)
		})),
	}
}

// Detach releases every subscription made by Attach.
func (o *Organizer) Detach() {
	for _, s := range o.subs {
		s.Unsubscribe()
	}
	o.subs = nil
}

func handle[T any](fn func(T) error) bus.Handler {
	return func(topic bus.Topic, payload any) error {
		req, ok := payload.(T)
		if !ok {
			return wrapPayload(topic, payload)
		}
		return fn(req)
	}
}

func (o *Organizer) changed(topic bus.Topic, categoryID, todoID string) {
	if err := o.bus.Publish(bus.StateChanged, bus.Change{Topic: topic, CategoryID: categoryID, TodoID: todoID}); err != nil {
		o.logger.Warn("state change subscriber failed", "err", err)
	}
}

// Categories returns system categories followed by user categories in creation order.
func (o *Organizer) Categories() []model.CategoryLike {
	out := make([]model.CategoryLike, 0, len(o.system)+len(o.user))
	for _, c := range o.system {
		out = append(out, c)
	}
	for _, c := range o.user {
		out = append(out, c)
	}
	return out
}

func (o *Organizer) SystemCategories() []*model.SystemCategory {
	return append([]*model.SystemCategory(nil), o.system...)
}

func (o *Organizer) UserCategories() []*model.UserCategory {
	return append([]*model.UserCategory(nil), o.user...)
}

func (o *Organizer) Category(id string) (model.CategoryLike, bool) {
	id = strings.TrimSpace(id)
	for _, c := range o.system {
		if c.ID() == id {
			return c, true
		}
	}
	if c, ok := o.userCategory(id); ok {
		return c, true
	}
	return nil, false
}

func (o *Organizer) userCategory(id string) (*model.UserCategory, bool) {
	for _, c := range o.user {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

func (o *Organizer) systemCategory(id string) *model.SystemCategory {
	for _, c := range o.system {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// Todos returns every todo in creation order.
func (o *Organizer) Todos() []*model.Todo {
	return append([]*model.Todo(nil), o.todos...)
}

func (o *Organizer) Todo(id string) (*model.Todo, bool) {
	id = strings.TrimSpace(id)
	for _, t := range o.todos {
		if t.ID() == id {
			return t, true
		}
	}
	return nil, false
}

// Search returns todos whose title or description contains query (case-insensitive).
func (o *Organizer) Search(query string) []*model.Todo {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []*model.Todo
	for _, t := range o.todos {
		if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

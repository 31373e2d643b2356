package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Fixed ids of the system categories.
const (
	CategoryAllID      = "all"
	CategoryTodayID    = "today"
	CategoryNext7DayID = "next-7-days"
)

// CategoryLike is the behaviour shared by system and user categories.
type CategoryLike interface {
	ID() string
	Name() string
	IsEditable() bool

	Todos() []*Todo
	FilteredOutTodos() []*Todo
	VisibleTodos() []*Todo
	HasTodo(t *Todo) bool
	AddTodo(t *Todo)
	RemoveTodo(t *Todo)

	SortingMethod() SortMethod
	SetSortingMethod(m SortMethod) error
	FilterMethod() FilterMethod
	SetFilterMethod(m FilterMethod) error

	Sort()
	Filter()
	Refresh()
}

// todoList is the sort/filter engine both category variants delegate to.
type todoList struct {
	todos         []*Todo
	filteredOut   []*Todo
	sortingMethod SortMethod
	filterMethod  FilterMethod
}

func newTodoList() todoList {
	return todoList{
		sortingMethod: SortCreationDate,
		filterMethod:  FilterNone,
	}
}

func (l *todoList) Todos() []*Todo            { return l.todos }
func (l *todoList) FilteredOutTodos() []*Todo { return l.filteredOut }
func (l *todoList) SortingMethod() SortMethod { return l.sortingMethod }
func (l *todoList) FilterMethod() FilterMethod {
	return l.filterMethod
}

// AddTodo appends t without checking for duplicates or touching t.CategoryID.
func (l *todoList) AddTodo(t *Todo) {
	l.todos = append(l.todos, t)
}

// RemoveTodo drops every occurrence of t (by identity). Absent todos are a no-op.
func (l *todoList) RemoveTodo(t *Todo) {
	kept := l.todos[:0]
	for _, it := range l.todos {
		if it != t {
			kept = append(kept, it)
		}
	}
	for i := len(kept); i < len(l.todos); i++ {
		l.todos[i] = nil
	}
	l.todos = kept

	if len(l.filteredOut) > 0 {
		out := make([]*Todo, 0, len(l.filteredOut))
		for _, it := range l.filteredOut {
			if it != t {
				out = append(out, it)
			}
		}
		l.filteredOut = out
	}
}

func (l *todoList) HasTodo(t *Todo) bool {
	for _, it := range l.todos {
		if it == t {
			return true
		}
	}
	return false
}

func (l *todoList) SetSortingMethod(m SortMethod) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: sort method %q", ErrInvalidMethodKey, m)
	}
	l.sortingMethod = m
	return nil
}

func (l *todoList) SetFilterMethod(m FilterMethod) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: filter method %q", ErrInvalidMethodKey, m)
	}
	l.filterMethod = m
	return nil
}

// Sort reorders the todos by the current sorting method and renumbers Index.
func (l *todoList) Sort() {
	cmp := sortingMethods[l.sortingMethod]()
	sort.SliceStable(l.todos, func(i, j int) bool {
		return cmp(l.todos[i], l.todos[j]) < 0
	})
	for i, t := range l.todos {
		t.Index = i
	}
}

// Filter recomputes FilteredOut on every todo and the filtered-out set from scratch.
func (l *todoList) Filter() {
	for _, t := range l.todos {
		t.FilteredOut = false
	}
	l.filteredOut = nil

	match := filterMethods[l.filterMethod]()
	for _, t := range l.todos {
		if match(t) {
			t.FilteredOut = true
			l.filteredOut = append(l.filteredOut, t)
		}
	}
}

// Refresh filters and then sorts so hidden todos trail.
func (l *todoList) Refresh() {
	l.Filter()
	l.Sort()
}

// VisibleTodos returns the todos outside this list's own filtered-out set, in
// current order. The FilteredOut flag is shared by every category holding a
// todo, so it only reflects whichever list filtered last.
func (l *todoList) VisibleTodos() []*Todo {
	hidden := make(map[*Todo]bool, len(l.filteredOut))
	for _, t := range l.filteredOut {
		hidden[t] = true
	}
	out := make([]*Todo, 0, len(l.todos))
	for _, t := range l.todos {
		if !hidden[t] {
			out = append(out, t)
		}
	}
	return out
}

// SystemCategory is a fixed, non-editable category such as "All todos".
type SystemCategory struct {
	todoList
	id   string
	name string
}

func NewSystemCategory(id, name string) *SystemCategory {
	return &SystemCategory{todoList: newTodoList(), id: id, name: name}
}

func (c *SystemCategory) ID() string       { return c.id }
func (c *SystemCategory) Name() string     { return c.name }
func (c *SystemCategory) IsEditable() bool { return false }

// DefaultSystemCategories returns the categories created at application start.
func DefaultSystemCategories() []*SystemCategory {
	return []*SystemCategory{
		NewSystemCategory(CategoryAllID, "All todos"),
		NewSystemCategory(CategoryTodayID, "Today"),
		NewSystemCategory(CategoryNext7DayID, "Next 7 days"),
	}
}

// UserCategory is a user-created category that can be renamed and deleted.
type UserCategory struct {
	todoList
	id           string
	name         string
	creationDate time.Time
}

// NewUserCategory creates a category with a fresh id and creation timestamp.
func NewUserCategory(name string) (*UserCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &UserCategory{
		todoList:     newTodoList(),
		id:           uuid.NewString(),
		name:         name,
		creationDate: time.Now().UTC(),
	}, nil
}

// RestoreUserCategory rebuilds a category loaded from disk.
func RestoreUserCategory(id, name string, creationDate time.Time) *UserCategory {
	return &UserCategory{todoList: newTodoList(), id: id, name: name, creationDate: creationDate}
}

func (c *UserCategory) ID() string              { return c.id }
func (c *UserCategory) Name() string            { return c.name }
func (c *UserCategory) IsEditable() bool        { return true }
func (c *UserCategory) CreationDate() time.Time { return c.creationDate }

func (c *UserCategory) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	c.name = name
	return nil
}

var (
	_ CategoryLike = (*SystemCategory)(nil)
	_ CategoryLike = (*UserCategory)(nil)
)

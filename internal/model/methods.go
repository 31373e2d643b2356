package model

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMethod selects how a category orders its todos.
type SortMethod string

const (
	SortCreationDate SortMethod = "creation-date"
	SortName         SortMethod = "name"
	SortDueDate      SortMethod = "due-date"
	SortPriority     SortMethod = "priority"
)

// ValidSortMethods returns all sort methods in menu order.
func ValidSortMethods() []SortMethod {
	return []SortMethod{SortCreationDate, SortName, SortDueDate, SortPriority}
}

func (m SortMethod) IsValid() bool {
	_, ok := sortingMethods[m]
	return ok
}

// ParseSortMethod converts user input into a SortMethod.
func ParseSortMethod(s string) (SortMethod, error) {
	m := SortMethod(strings.TrimSpace(s))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: sort method %q (valid: %s)", ErrInvalidMethodKey, s, joinMethods(ValidSortMethods()))
	}
	return m, nil
}

// Label is the human readable menu label.
func (m SortMethod) Label() string {
	switch m {
	case SortCreationDate:
		return "Creation date"
	case SortName:
		return "Name"
	case SortDueDate:
		return "Due date"
	case SortPriority:
		return "Priority"
	}
	return string(m)
}

// FilterMethod selects which todos a category hides.
type FilterMethod string

const (
	FilterNone          FilterMethod = "no-filter"
	FilterPriorityOne   FilterMethod = "priority-one"
	FilterPriorityTwo   FilterMethod = "priority-two"
	FilterPriorityThree FilterMethod = "priority-three"
	FilterCompleted     FilterMethod = "completed"
	FilterUncompleted   FilterMethod = "uncompleted"
)

// ValidFilterMethods returns all filter methods in menu order.
func ValidFilterMethods() []FilterMethod {
	return []FilterMethod{FilterNone, FilterPriorityOne, FilterPriorityTwo, FilterPriorityThree, FilterCompleted, FilterUncompleted}
}

func (m FilterMethod) IsValid() bool {
	_, ok := filterMethods[m]
	return ok
}

// ParseFilterMethod converts user input into a FilterMethod.
func ParseFilterMethod(s string) (FilterMethod, error) {
	m := FilterMethod(strings.TrimSpace(s))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: filter method %q (valid: %s)", ErrInvalidMethodKey, s, joinMethods(ValidFilterMethods()))
	}
	return m, nil
}

func (m FilterMethod) Label() string {
	switch m {
	case FilterNone:
		return "No filter"
	case FilterPriorityOne:
		return "Priority 1"
	case FilterPriorityTwo:
		return "Priority 2"
	case FilterPriorityThree:
		return "Priority 3"
	case FilterCompleted:
		return "Completed"
	case FilterUncompleted:
		return "Uncompleted"
	}
	return string(m)
}

func joinMethods[T ~string](ms []T) string {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		parts = append(parts, string(m))
	}
	return strings.Join(parts, ", ")
}

// comparator orders two todos; negative means a sorts first.
type comparator func(a, b *Todo) int

// predicate selects the todos that a filter hides.
type predicate func(t *Todo) bool

// Every comparator keeps filtered-out todos after visible ones before
// applying its own ordering.
var sortingMethods = map[SortMethod]func() comparator{
	SortCreationDate: func() comparator {
		return func(a, b *Todo) int {
			if c := compareFilteredOut(a, b); c != 0 {
				return c
			}
			return a.creationDate.Compare(b.creationDate)
		}
	},
	SortName: func() comparator {
		col := collate.New(language.Und)
		return func(a, b *Todo) int {
			if c := compareFilteredOut(a, b); c != 0 {
				return c
			}
			return col.CompareString(a.Title, b.Title)
		}
	},
	SortDueDate: func() comparator {
		return func(a, b *Todo) int {
			if c := compareFilteredOut(a, b); c != 0 {
				return c
			}
			return compareFloat(dueKey(a), dueKey(b))
		}
	},
	SortPriority: func() comparator {
		return func(a, b *Todo) int {
			if c := compareFilteredOut(a, b); c != 0 {
				return c
			}
			return compareFloat(priorityKey(a), priorityKey(b))
		}
	},
}

var filterMethods = map[FilterMethod]func() predicate{
	FilterNone:          func() predicate { return func(*Todo) bool { return false } },
	FilterPriorityOne:   func() predicate { return func(t *Todo) bool { return t.Priority != PriorityOne } },
	FilterPriorityTwo:   func() predicate { return func(t *Todo) bool { return t.Priority != PriorityTwo } },
	FilterPriorityThree: func() predicate { return func(t *Todo) bool { return t.Priority != PriorityThree } },
	FilterCompleted:     func() predicate { return func(t *Todo) bool { return !t.CompletedStatus } },
	FilterUncompleted:   func() predicate { return func(t *Todo) bool { return t.CompletedStatus } },
}

func compareFilteredOut(a, b *Todo) int {
	return boolRank(a.FilteredOut) - boolRank(b.FilteredOut)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// dueKey is the due date in unix days; unset dates sort last.
func dueKey(t *Todo) float64 {
	d, ok := t.Due()
	if !ok {
		return math.Inf(1)
	}
	return float64(d.Unix() / 86400)
}

func priorityKey(t *Todo) float64 {
	if t.Priority == PriorityNone {
		return math.Inf(1)
	}
	return float64(t.Priority)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

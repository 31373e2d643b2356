package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the storage format of due dates.
const DateLayout = "2006-01-02"

// Priority is the urgency of a todo. PriorityNone means unset.
type Priority int

const (
	PriorityNone  Priority = 0
	PriorityOne   Priority = 1
	PriorityTwo   Priority = 2
	PriorityThree Priority = 3
)

// IsValid reports whether p is unset or one of 1..3.
func (p Priority) IsValid() bool {
	return p >= PriorityNone && p <= PriorityThree
}

// ParsePriority accepts "", "0", "none", "1", "2" or "3".
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "none" {
		return PriorityNone, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || !Priority(n).IsValid() {
		return PriorityNone, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return Priority(n), nil
}

// ValidateDueDate checks that s is empty or a YYYY-MM-DD date.
func ValidateDueDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
	}
	return nil
}

// Field names a Todo property for the generic Get/Set accessors.
type Field string

const (
	FieldID              Field = "id"
	FieldTitle           Field = "title"
	FieldDescription     Field = "description"
	FieldPriority        Field = "priority"
	FieldDueDate         Field = "dueDate"
	FieldMiniDueDate     Field = "miniDueDate"
	FieldCategoryID      Field = "categoryID"
	FieldCategoryName    Field = "categoryName"
	FieldCompletedStatus Field = "completedStatus"
	FieldCreationDate    Field = "creationDate"
	FieldIndex           Field = "index"
	FieldFilteredOut     Field = "filteredOut"
	FieldOverdueStatus   Field = "overdueStatus"
)

// Todo is a single task. ID and CreationDate are fixed at construction.
type Todo struct {
	id           string
	creationDate time.Time

	Title           string
	Description     string
	Priority        Priority
	DueDate         string // YYYY-MM-DD or ""
	MiniDueDate     string // "today", "friday", "03 feb"
	CategoryID      string
	CategoryName    string
	CompletedStatus bool
	OverdueStatus   bool

	// Index is the todo's position in its owner's last sort.
	Index int
	// FilteredOut is set by the owner's last filter pass.
	FilteredOut bool
}

// NewTodo creates a todo with a fresh id and creation timestamp.
func NewTodo(title, description string, priority Priority, dueDate, categoryID, categoryName string) *Todo {
	t := &Todo{
		id:           uuid.NewString(),
		creationDate: time.Now().UTC(),
		Title:        title,
		Description:  description,
		Priority:     priority,
		DueDate:      strings.TrimSpace(dueDate),
		CategoryID:   categoryID,
		CategoryName: categoryName,
	}
	t.MiniDueDate = MiniDueDate(t.DueDate, time.Now())
	return t
}

// RestoreTodo rebuilds a todo whose identity was assigned earlier (e.g. loaded from disk).
func RestoreTodo(id string, creationDate time.Time) *Todo {
	return &Todo{id: id, creationDate: creationDate}
}

func (t *Todo) ID() string              { return t.id }
func (t *Todo) CreationDate() time.Time { return t.creationDate }

// Get returns the value of a field, or nil for an unknown field.
func (t *Todo) Get(f Field) any {
	switch f {
	case FieldID:
		return t.id
	case FieldTitle:
		return t.Title
	case FieldDescription:
		return t.Description
	case FieldPriority:
		return t.Priority
	case FieldDueDate:
		return t.DueDate
	case FieldMiniDueDate:
		return t.MiniDueDate
	case FieldCategoryID:
		return t.CategoryID
	case FieldCategoryName:
		return t.CategoryName
	case FieldCompletedStatus:
		return t.CompletedStatus
	case FieldCreationDate:
		return t.creationDate
	case FieldIndex:
		return t.Index
	case FieldFilteredOut:
		return t.FilteredOut
	case FieldOverdueStatus:
		return t.OverdueStatus
	}
	return nil
}

// Set assigns a field. Writes to FieldID and FieldCreationDate are silently
// ignored and return nil; the stored values never change.
func (t *Todo) Set(f Field, value any) error {
	switch f {
	case FieldID, FieldCreationDate:
		return nil
	case FieldTitle, FieldDescription, FieldDueDate, FieldMiniDueDate, FieldCategoryID, FieldCategoryName:
		s, ok := value.(string)
		if !ok {
			return fieldValueError(f, value)
		}
		switch f {
		case FieldTitle:
			t.Title = s
		case FieldDescription:
			t.Description = s
		case FieldDueDate:
			return t.SetDueDate(s, time.Now())
		case FieldMiniDueDate:
			t.MiniDueDate = s
		case FieldCategoryID:
			t.CategoryID = s
		case FieldCategoryName:
			t.CategoryName = s
		}
	case FieldPriority:
		var p Priority
		switch v := value.(type) {
		case Priority:
			p = v
		case int:
			p = Priority(v)
		default:
			return fieldValueError(f, value)
		}
		if !p.IsValid() {
			return fmt.Errorf("%w: %d", ErrInvalidPriority, p)
		}
		t.Priority = p
	case FieldCompletedStatus, FieldFilteredOut, FieldOverdueStatus:
		b, ok := value.(bool)
		if !ok {
			return fieldValueError(f, value)
		}
		switch f {
		case FieldCompletedStatus:
			t.CompletedStatus = b
		case FieldFilteredOut:
			t.FilteredOut = b
		case FieldOverdueStatus:
			t.OverdueStatus = b
		}
	case FieldIndex:
		n, ok := value.(int)
		if !ok {
			return fieldValueError(f, value)
		}
		t.Index = n
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return nil
}

func fieldValueError(f Field, value any) error {
	return fmt.Errorf("%w: %s = %T", ErrInvalidFieldValue, f, value)
}

// SetDueDate validates and stores a due date and refreshes MiniDueDate relative to now.
func (t *Todo) SetDueDate(date string, now time.Time) error {
	date = strings.TrimSpace(date)
	if err := ValidateDueDate(date); err != nil {
		return err
	}
	t.DueDate = date
	t.MiniDueDate = MiniDueDate(date, now)
	return nil
}

// Due returns the parsed due date.
func (t *Todo) Due() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// HasAdditionalInfo reports whether the todo carries anything beyond its title.
func (t *Todo) HasAdditionalInfo() bool {
	return t.Description != "" || t.Priority != PriorityNone || t.DueDate != "" || t.CategoryID != ""
}

func (t *Todo) ToggleCompletedStatus() {
	t.CompletedStatus = !t.CompletedStatus
}

type todoWire struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Priority        Priority  `json:"priority,omitempty"`
	DueDate         string    `json:"dueDate,omitempty"`
	MiniDueDate     string    `json:"miniDueDate,omitempty"`
	CategoryID      string    `json:"categoryId,omitempty"`
	CategoryName    string    `json:"categoryName,omitempty"`
	CompletedStatus bool      `json:"completed"`
	OverdueStatus   bool      `json:"overdue"`
	CreationDate    time.Time `json:"creationDate"`
	Index           int       `json:"index"`
	FilteredOut     bool      `json:"filteredOut"`
}

func (t *Todo) MarshalJSON() ([]byte, error) {
	return json.Marshal(todoWire{
		ID:              t.id,
		Title:           t.Title,
		Description:     t.Description,
		Priority:        t.Priority,
		DueDate:         t.DueDate,
		MiniDueDate:     t.MiniDueDate,
		CategoryID:      t.CategoryID,
		CategoryName:    t.CategoryName,
		CompletedStatus: t.CompletedStatus,
		OverdueStatus:   t.OverdueStatus,
		CreationDate:    t.creationDate,
		Index:           t.Index,
		FilteredOut:     t.FilteredOut,
	})
}

func (t *Todo) UnmarshalJSON(b []byte) error {
	var w todoWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*t = Todo{
		id:              w.ID,
		creationDate:    w.CreationDate,
		Title:           w.Title,
		Description:     w.Description,
		Priority:        w.Priority,
		DueDate:         w.DueDate,
		MiniDueDate:     w.MiniDueDate,
		CategoryID:      w.CategoryID,
		CategoryName:    w.CategoryName,
		CompletedStatus: w.CompletedStatus,
		OverdueStatus:   w.OverdueStatus,
		Index:           w.Index,
		FilteredOut:     w.FilteredOut,
	}
	return nil
}

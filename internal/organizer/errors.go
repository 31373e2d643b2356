package organizer

import (
	"errors"
	"fmt"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrTodoNotFound     = errors.New("todo not found")

	// ErrNotEditable is returned when renaming or deleting a system category.
	ErrNotEditable = errors.New("category is not editable")

	// ErrDuplicateName is returned when a user category name is already taken.
	ErrDuplicateName = errors.New("category name already exists")

	// ErrEmptyTitle is returned when a todo title is empty after trimming.
	ErrEmptyTitle = errors.New("todo title cannot be empty")

	// ErrBadPayload is returned when a bus message carries the wrong payload type.
	ErrBadPayload = errors.New("unexpected payload")
)

func categoryNotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
}

func todoNotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrTodoNotFound, id)
}

func wrapPayload(topic any, payload any) error {
	return fmt.Errorf("%w for %v: %T", ErrBadPayload, topic, payload)
}

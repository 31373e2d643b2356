package model

import "errors"

var (
	// ErrInvalidMethodKey is returned when a sort or filter key is not one of the known methods.
	ErrInvalidMethodKey = errors.New("invalid method key")

	// ErrUnknownField is returned by Todo.Set for a field name that does not exist.
	ErrUnknownField = errors.New("unknown todo field")

	// ErrInvalidFieldValue is returned by Todo.Set when the value has the wrong type.
	ErrInvalidFieldValue = errors.New("invalid value for todo field")

	// ErrInvalidPriority is returned when a priority is outside 1..3 (0 means unset).
	ErrInvalidPriority = errors.New("priority must be 1, 2 or 3")

	// ErrInvalidDueDate is returned when a due date is not formatted as YYYY-MM-DD.
	ErrInvalidDueDate = errors.New("due date must be YYYY-MM-DD")

	// ErrEmptyName is returned when a category name is empty after trimming.
	ErrEmptyName = errors.New("category name cannot be empty")
)

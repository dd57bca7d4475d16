package store

import "errors"

var (
	// ErrNotFound is returned when an operation references a missing id
	ErrNotFound = errors.New("not found")

	// ErrEmptyTitle is returned when a task is created or updated without a title
	ErrEmptyTitle = errors.New("task title is required")

	// ErrEmptyName is returned when a category is created without a name
	ErrEmptyName = errors.New("category name is required")

	// ErrDuplicateName is returned when a category name collides
	// case-insensitively with an existing one
	ErrDuplicateName = errors.New("category name already exists")
)

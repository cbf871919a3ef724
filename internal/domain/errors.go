package domain

import "errors"

// Domain errors returned by the service and repository implementations.

var (
	// ErrTodoNotFound indicates no todo exists with the requested ID.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrTitleRequired indicates a missing or blank title.
	ErrTitleRequired = errors.New("title is required")

	// ErrTitleTooLong indicates a title longer than MaxTitleLength characters.
	ErrTitleTooLong = errors.New("title must be 255 characters or less")

	// ErrBulkUpdateFieldsRequired indicates a bulk update without todo_ids or updates.
	ErrBulkUpdateFieldsRequired = errors.New("todo_ids and updates are required")
)

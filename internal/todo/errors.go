package todo

import "errors"

// Validation errors. They are returned to presentation layers before a record
// reaches the collections.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidRecurrence = errors.New("invalid recurrence")
	ErrInvalidProgress   = errors.New("progress must be between 0 and 100")
)

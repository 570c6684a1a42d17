package store

import "fmt"

// NotFoundError is returned when no record of the kind has the id.
type NotFoundError struct {
	Label string
	ID    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Label, e.ID)
}

// DuplicateError is returned when a create request reuses an existing id.
type DuplicateError struct {
	Label string
	ID    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with id %q already exists", e.Label, e.ID)
}

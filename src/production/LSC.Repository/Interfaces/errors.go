package interfaces

import "errors"

var (
	// ErrNotFound is returned when a lookup by identity matches no record
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key already exists
	ErrDuplicate = errors.New("duplicate record")
)

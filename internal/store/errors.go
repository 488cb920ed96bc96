package store

import "errors"

// Sentinel errors returned by store operations.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned when creating a record whose ID is
	// already taken. The unique index on id is the store's one hard
	// invariant.
	ErrAlreadyExists = errors.New("record already exists")
)

package models

import "errors"

var (
	// ErrNotFound means the identifier did not resolve to a restaurant.
	ErrNotFound = errors.New("restaurant not found")

	// ErrLocked means a write was refused because the restaurant's locked
	// flag is set. Distinct from a validation failure: the request was
	// well-formed, the record's state forbids it.
	ErrLocked = errors.New("restaurant is locked")
)

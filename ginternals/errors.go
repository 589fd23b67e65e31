package ginternals

import "errors"

var (
	// ErrObjectNotFound is returned when an object can't be found in the store.
	ErrObjectNotFound = errors.New("object not found")
	// ErrObjectAmbiguous is returned when a short object id prefix matches
	// more than one object.
	ErrObjectAmbiguous = errors.New("object prefix is ambiguous")
)

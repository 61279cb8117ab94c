package domain

import "errors"

var (
	// ErrNotFound signals a missing object, part or collection.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPage signals a page number beyond the result set.
	ErrInvalidPage = errors.New("invalid page number")
	// ErrInvalidCollection signals that the PID does not identify a collection.
	ErrInvalidCollection = errors.New("invalid collection")
	// ErrUpstreamUnavailable signals a document store or repository failure.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrHierarchyTooDeep signals an ancestry chain longer than the configured ceiling.
	ErrHierarchyTooDeep = errors.New("hierarchy too deep")
	// ErrInvalidRequest signals malformed caller input.
	ErrInvalidRequest = errors.New("invalid request")
)

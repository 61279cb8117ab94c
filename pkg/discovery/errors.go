package discovery

import "github.com/kailas-cloud/discovery/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound            = domain.ErrNotFound
	ErrInvalidPage         = domain.ErrInvalidPage
	ErrInvalidCollection   = domain.ErrInvalidCollection
	ErrUpstreamUnavailable = domain.ErrUpstreamUnavailable
	ErrHierarchyTooDeep    = domain.ErrHierarchyTooDeep
	ErrInvalidRequest      = domain.ErrInvalidRequest
)

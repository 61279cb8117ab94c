package datastream

import (
	"context"

	"github.com/kailas-cloud/discovery/internal/domain"
	domds "github.com/kailas-cloud/discovery/internal/domain/datastream"
	"github.com/kailas-cloud/discovery/internal/domain/document"
)

// Resolver resolves a PID to its record.
type Resolver interface {
	Resolve(ctx context.Context, idx domain.Index, pid string) (document.Document, error)
}

// Files reads locally cached datastream files.
type Files interface {
	Exists(path string) bool
	Stream(path string) (*domds.Stream, error)
}

// Repository streams datastreams from the remote byte store.
type Repository interface {
	Fetch(ctx context.Context, pid, ds string) (*domds.Stream, error)
}

package listing

import (
	"context"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/document"
	domlisting "github.com/kailas-cloud/discovery/internal/domain/listing"
	"github.com/kailas-cloud/discovery/internal/domain/trail"
)

// Repository executes listing queries.
type Repository interface {
	Find(ctx context.Context, q domlisting.Query) (domlisting.Page, error)
}

// Resolver resolves the listed collection itself.
type Resolver interface {
	Resolve(ctx context.Context, idx domain.Index, pid string) (document.Document, error)
}

// Namer resolves display names for collection PIDs shown as facet buckets.
type Namer interface {
	Names(ctx context.Context, pids []string) ([]trail.Crumb, error)
}

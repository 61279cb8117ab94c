package hierarchy

import (
	"context"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/document"
)

// Resolver resolves a PID to its record.
type Resolver interface {
	Resolve(ctx context.Context, idx domain.Index, pid string) (document.Document, error)
}

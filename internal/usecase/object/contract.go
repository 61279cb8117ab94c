package object

import (
	"context"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/document"
)

// Repository finds indexed records by PID and reports how many matched.
type Repository interface {
	FindByPID(ctx context.Context, idx domain.Index, pid string) (document.Document, int, error)
}

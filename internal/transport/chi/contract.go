package chi

import (
	"context"

	"github.com/kailas-cloud/discovery/internal/domain"
	domds "github.com/kailas-cloud/discovery/internal/domain/datastream"
	"github.com/kailas-cloud/discovery/internal/domain/facet"
	domlisting "github.com/kailas-cloud/discovery/internal/domain/listing"
	"github.com/kailas-cloud/discovery/internal/domain/manifest"
	"github.com/kailas-cloud/discovery/internal/domain/trail"
	healthuc "github.com/kailas-cloud/discovery/internal/usecase/health"
	objectuc "github.com/kailas-cloud/discovery/internal/usecase/object"
)

// ObjectResolver looks up records by PID.
type ObjectResolver interface {
	Lookup(ctx context.Context, idx domain.Index, pid string) (objectuc.Match, error)
}

// AncestryWalker builds root-first trails.
type AncestryWalker interface {
	AncestryOf(ctx context.Context, pid string) (trail.Trail, error)
}

// CollectionLister lists collection members and facets.
type CollectionLister interface {
	ListChildren(
		ctx context.Context, collectionID string, page int, sel facet.Selection, sort domlisting.Sort,
	) (domlisting.Listing, error)
	RootCollections(ctx context.Context) (domlisting.Listing, error)
	Facets(ctx context.Context, collectionID string) (facet.Result, error)
}

// ManifestAssembler builds viewer manifests.
type ManifestAssembler interface {
	Assemble(ctx context.Context, pid string) (manifest.Manifest, error)
}

// DatastreamResolver opens datastreams with scoped release.
type DatastreamResolver interface {
	Do(ctx context.Context, req domds.Request, fn func(*domds.Stream) error) error
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

package discovery

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

// --- objectUseCase mock ---

type mockObjectUC struct {
	lookupFn func(ctx context.Context, idx domain.Index, pid string) (objectuc.Match, error)
}

func (m *mockObjectUC) Lookup(ctx context.Context, idx domain.Index, pid string) (objectuc.Match, error) {
	return m.lookupFn(ctx, idx, pid)
}

// --- hierarchyUseCase mock ---

type mockHierarchyUC struct {
	ancestryFn func(ctx context.Context, pid string) (trail.Trail, error)
}

func (m *mockHierarchyUC) AncestryOf(ctx context.Context, pid string) (trail.Trail, error) {
	return m.ancestryFn(ctx, pid)
}

// --- listingUseCase mock ---

type mockListingUC struct {
	childrenFn func(
		ctx context.Context, collectionID string, page int, sel facet.Selection, sort domlisting.Sort,
	) (domlisting.Listing, error)
	rootsFn  func(ctx context.Context) (domlisting.Listing, error)
	facetsFn func(ctx context.Context, collectionID string) (facet.Result, error)
}

func (m *mockListingUC) ListChildren(
	ctx context.Context, collectionID string, page int, sel facet.Selection, sort domlisting.Sort,
) (domlisting.Listing, error) {
	return m.childrenFn(ctx, collectionID, page, sel, sort)
}

func (m *mockListingUC) RootCollections(ctx context.Context) (domlisting.Listing, error) {
	return m.rootsFn(ctx)
}

func (m *mockListingUC) Facets(ctx context.Context, collectionID string) (facet.Result, error) {
	return m.facetsFn(ctx, collectionID)
}

// --- manifestUseCase mock ---

type mockManifestUC struct {
	assembleFn func(ctx context.Context, pid string) (manifest.Manifest, error)
}

func (m *mockManifestUC) Assemble(ctx context.Context, pid string) (manifest.Manifest, error) {
	return m.assembleFn(ctx, pid)
}

// --- datastreamUseCase mock ---

type mockDatastreamUC struct {
	openFn func(ctx context.Context, req domds.Request) (*domds.Stream, error)
}

func (m *mockDatastreamUC) Open(ctx context.Context, req domds.Request) (*domds.Stream, error) {
	return m.openFn(ctx, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

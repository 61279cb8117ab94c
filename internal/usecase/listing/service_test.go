package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/document"
	"github.com/kailas-cloud/discovery/internal/domain/facet"
	domlisting "github.com/kailas-cloud/discovery/internal/domain/listing"
	"github.com/kailas-cloud/discovery/internal/domain/trail"
)

// --- Mocks ---

type mockRepo struct {
	page    domlisting.Page
	err     error
	queries []domlisting.Query
}

func (m *mockRepo) Find(_ context.Context, q domlisting.Query) (domlisting.Page, error) {
	m.queries = append(m.queries, q)
	return m.page, m.err
}

type mockResolver struct {
	doc   document.Document
	err   error
	calls int
}

func (m *mockResolver) Resolve(_ context.Context, _ domain.Index, _ string) (document.Document, error) {
	m.calls++
	return m.doc, m.err
}

type mockNamer struct {
	names map[string]string
	err   error
}

func (m *mockNamer) Names(_ context.Context, pids []string) ([]trail.Crumb, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]trail.Crumb, len(pids))
	for i, p := range pids {
		name := m.names[p]
		if name == "" {
			name = p
		}
		out[i] = trail.Crumb{PID: p, Name: name}
	}
	return out, nil
}

func collectionDoc(title string) document.Document {
	return document.Reconstruct(document.Fields{
		PID:        "codu:10",
		ObjectType: document.TypeCollection,
		Title:      document.Single(title),
	})
}

func items(pids ...string) []document.Document {
	out := make([]document.Document, len(pids))
	for i, p := range pids {
		out[i] = document.Reconstruct(document.Fields{PID: p, ObjectType: document.TypeObject})
	}
	return out
}

func testConfig() Config {
	return Config{RootPID: "codu:root", RootName: "Root Collection", CollectionsFacet: "Collections"}
}

func newService(repo *mockRepo, res *mockResolver, names Namer) *Service {
	return New(repo, res, names, NewQueryBuilder(testSpec(), 12, 200), testConfig())
}

// --- Tests ---

func TestListChildren_OK(t *testing.T) {
	repo := &mockRepo{page: domlisting.Page{
		Items: items("codu:12", "codu:11"),
		Total: 2,
		Facets: facet.Result{
			{Label: "Type", Buckets: []facet.Bucket{{Value: "Image", Name: "Image", Count: 2}}},
			{Label: "Collections", Buckets: []facet.Bucket{{Value: "codu:10", Name: "codu:10", Count: 2}}},
		},
	}}
	res := &mockResolver{doc: collectionDoc("Letters")}
	svc := newService(repo, res, &mockNamer{names: map[string]string{"codu:10": "Letters"}})

	l, err := svc.ListChildren(context.Background(), "codu:10", 1, facet.Selection{}, domlisting.Sort{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Title != "Letters" || l.Total != 2 {
		t.Errorf("title=%q total=%d", l.Title, l.Total)
	}
	if l.Items[0].PID() != "codu:12" || l.Items[1].PID() != "codu:11" {
		t.Error("items must keep store order")
	}
	coll, _ := l.Facets.Get("Collections")
	if coll.Buckets[0].Name != "Letters" || coll.Buckets[0].Value != "codu:10" {
		t.Errorf("collections bucket = %+v", coll.Buckets[0])
	}
	typ, _ := l.Facets.Get("Type")
	if typ.Buckets[0].Name != "Image" {
		t.Errorf("other facets must keep their names: %+v", typ.Buckets[0])
	}
}

func TestListChildren_InvalidPage(t *testing.T) {
	repo := &mockRepo{page: domlisting.Page{Total: 20}}
	res := &mockResolver{doc: collectionDoc("Letters")}
	svc := newService(repo, res, nil)

	// (3-1)*12 = 24 > 20
	_, err := svc.ListChildren(context.Background(), "codu:10", 3, facet.Selection{}, domlisting.Sort{})
	if !errors.Is(err, domain.ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
	if res.calls != 0 {
		t.Error("collection should not be resolved for an invalid page")
	}

	// (2-1)*12 = 12 < 20
	if _, err := svc.ListChildren(context.Background(), "codu:10", 2, facet.Selection{}, domlisting.Sort{}); err != nil {
		t.Errorf("page 2 should be valid: %v", err)
	}
}

func TestListChildren_EmptyFirstPage(t *testing.T) {
	svc := newService(&mockRepo{}, &mockResolver{doc: collectionDoc("Empty")}, nil)

	l, err := svc.ListChildren(context.Background(), "codu:10", 1, facet.Selection{}, domlisting.Sort{})
	if err != nil {
		t.Fatalf("empty collection first page must succeed: %v", err)
	}
	if l.Total != 0 || len(l.Items) != 0 {
		t.Errorf("listing = %+v", l)
	}
}

func TestListChildren_InvalidCollection(t *testing.T) {
	res := &mockResolver{doc: document.Reconstruct(document.Fields{PID: "codu:10", ObjectType: document.TypeObject})}
	svc := newService(&mockRepo{page: domlisting.Page{Total: 1}}, res, nil)

	_, err := svc.ListChildren(context.Background(), "codu:10", 1, facet.Selection{}, domlisting.Sort{})
	if !errors.Is(err, domain.ErrInvalidCollection) {
		t.Fatalf("expected ErrInvalidCollection, got %v", err)
	}
}

func TestListChildren_CollectionNotFound(t *testing.T) {
	svc := newService(&mockRepo{}, &mockResolver{err: domain.ErrNotFound}, nil)

	_, err := svc.ListChildren(context.Background(), "codu:10", 1, facet.Selection{}, domlisting.Sort{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListChildren_RootSkipsResolve(t *testing.T) {
	res := &mockResolver{err: domain.ErrNotFound}
	svc := newService(&mockRepo{page: domlisting.Page{Items: items("codu:1"), Total: 1}}, res, nil)

	l, err := svc.ListChildren(context.Background(), "codu:root", 1, facet.Selection{}, domlisting.Sort{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Title != "Root Collection" || res.calls != 0 {
		t.Errorf("title=%q resolver calls=%d", l.Title, res.calls)
	}
}

func TestListChildren_StoreFailure(t *testing.T) {
	svc := newService(&mockRepo{err: domain.ErrUpstreamUnavailable}, &mockResolver{}, nil)

	_, err := svc.ListChildren(context.Background(), "codu:10", 1, facet.Selection{}, domlisting.Sort{})
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestListChildren_NamerFailure(t *testing.T) {
	repo := &mockRepo{page: domlisting.Page{
		Total:  1,
		Facets: facet.Result{{Label: "Collections", Buckets: []facet.Bucket{{Value: "codu:10", Count: 1}}}},
	}}
	svc := newService(repo, &mockResolver{doc: collectionDoc("Letters")}, &mockNamer{err: domain.ErrUpstreamUnavailable})

	_, err := svc.ListChildren(context.Background(), "codu:10", 1, facet.Selection{}, domlisting.Sort{})
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestRootCollections(t *testing.T) {
	repo := &mockRepo{page: domlisting.Page{Items: items("codu:2", "codu:1"), Total: 2}}
	svc := New(repo, &mockResolver{}, nil, NewQueryBuilder(testSpec(), 12, 200), Config{RootPID: "codu:root", RootName: "Root"})

	l, err := svc.RootCollections(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Title != "Root" || len(l.Items) != 2 {
		t.Errorf("listing = %+v", l)
	}
	q := repo.queries[0]
	if q.Limit != 1000 || q.Sort.Field != "title" {
		t.Errorf("query = %+v", q)
	}
}

func TestFacets(t *testing.T) {
	repo := &mockRepo{page: domlisting.Page{Facets: facet.Result{{Label: "Type"}}}}
	svc := newService(repo, &mockResolver{}, nil)

	r, err := svc.Facets(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := r.Get("Type"); !ok {
		t.Errorf("facets = %+v", r)
	}
	if !repo.queries[0].Filters.IsEmpty() {
		t.Error("whole-index facets must not filter")
	}
}

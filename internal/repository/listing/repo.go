// Package listing runs collection member queries against the search index.
package listing

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/discovery/internal/db"
	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/document"
	"github.com/kailas-cloud/discovery/internal/domain/facet"
	domlisting "github.com/kailas-cloud/discovery/internal/domain/listing"
	objrepo "github.com/kailas-cloud/discovery/internal/repository/object"
)

// store is the consumer interface for listings (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

// Repo implements usecase/listing.Repository.
type Repo struct {
	store store
	index string
}

// New creates a listing repository over the named FT index.
func New(s store, indexName string) *Repo {
	return &Repo{store: s, index: indexName}
}

// Find executes q: hits and every facet aggregation in one round trip.
func (r *Repo) Find(ctx context.Context, q domlisting.Query) (domlisting.Page, error) {
	sq := &db.SearchQuery{
		IndexName:    r.index,
		Filters:      q.Filters,
		Offset:       q.Offset,
		Limit:        q.Limit,
		SortBy:       q.Sort.Field,
		SortDesc:     q.Sort.Desc,
		ReturnFields: []string{"$"},
		Facets:       make([]db.FacetQuery, 0, len(q.Facets)),
	}
	for _, f := range q.Facets {
		sq.Facets = append(sq.Facets, db.FacetQuery{Name: f.Label, Field: f.Attribute, Limit: q.FacetLimit})
	}

	res, err := r.store.Search(ctx, sq)
	if err != nil {
		return domlisting.Page{}, fmt.Errorf("list %s: %w: %w", r.index, domain.ErrUpstreamUnavailable, err)
	}

	items := make([]document.Document, 0, len(res.Entries))
	for _, e := range res.Entries {
		doc, err := objrepo.DecodeEntry(e)
		if err != nil {
			return domlisting.Page{}, fmt.Errorf("list %s: %w", r.index, err)
		}
		items = append(items, doc)
	}

	return domlisting.Page{
		Items:  items,
		Total:  res.Total,
		Facets: toFacetResult(res.Facets),
	}, nil
}

func toFacetResult(in []db.FacetResult) facet.Result {
	if len(in) == 0 {
		return nil
	}
	out := make(facet.Result, 0, len(in))
	for _, fr := range in {
		g := facet.Group{Label: fr.Name, Buckets: make([]facet.Bucket, 0, len(fr.Buckets))}
		for _, b := range fr.Buckets {
			g.Buckets = append(g.Buckets, facet.Bucket{Value: b.Value, Name: b.Value, Count: b.Count})
		}
		out = append(out, g)
	}
	return out
}

// Package listing lists the direct children of a collection with facets and paging.
package listing

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/facet"
	domlisting "github.com/kailas-cloud/discovery/internal/domain/listing"
)

// Config holds listing settings.
type Config struct {
	RootPID            string
	RootName           string
	MaxRootCollections int
	// CollectionsFacet is the facet label whose bucket values are collection PIDs.
	// Its buckets get collection titles as display names when a Namer is set.
	CollectionsFacet string
}

// Service lists collection members.
type Service struct {
	repo     Repository
	resolver Resolver
	names    Namer
	builder  QueryBuilder
	cfg      Config
}

// New creates a listing service. names may be nil.
func New(repo Repository, resolver Resolver, names Namer, builder QueryBuilder, cfg Config) *Service {
	if cfg.MaxRootCollections <= 0 {
		cfg.MaxRootCollections = 1000
	}
	return &Service{repo: repo, resolver: resolver, names: names, builder: builder, cfg: cfg}
}

// ListChildren returns page (1-based) of the direct children of collectionID.
// A page starting past the last result fails with domain.ErrInvalidPage; a
// collectionID that resolves to a non-collection fails with domain.ErrInvalidCollection.
func (s *Service) ListChildren(
	ctx context.Context, collectionID string, page int, sel facet.Selection, sort domlisting.Sort,
) (domlisting.Listing, error) {
	q, err := s.builder.BuildQuery(collectionID, sel, page, sort)
	if err != nil {
		return domlisting.Listing{}, err
	}

	res, err := s.repo.Find(ctx, q)
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("list children of %s: %w", collectionID, err)
	}
	if q.Offset > 0 && q.Offset >= res.Total {
		return domlisting.Listing{}, fmt.Errorf("page %d of %d results: %w", page, res.Total, domain.ErrInvalidPage)
	}

	title, err := s.collectionTitle(ctx, collectionID)
	if err != nil {
		return domlisting.Listing{}, err
	}

	facets, err := s.nameCollections(ctx, res.Facets)
	if err != nil {
		return domlisting.Listing{}, err
	}

	return domlisting.Listing{
		Items:  res.Items,
		Total:  res.Total,
		Facets: facets,
		Title:  title,
	}, nil
}

// RootCollections lists the members of the root collection sorted by title.
func (s *Service) RootCollections(ctx context.Context) (domlisting.Listing, error) {
	q, err := s.builder.MembersQuery(s.cfg.RootPID, s.cfg.MaxRootCollections)
	if err != nil {
		return domlisting.Listing{}, err
	}
	res, err := s.repo.Find(ctx, q)
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("list root collections: %w", err)
	}
	return domlisting.Listing{Items: res.Items, Total: res.Total, Title: s.cfg.RootName}, nil
}

// Facets aggregates every configured facet over collectionID, or over the
// whole index when collectionID is empty.
func (s *Service) Facets(ctx context.Context, collectionID string) (facet.Result, error) {
	q, err := s.builder.FacetQuery(collectionID)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("facets of %q: %w", collectionID, err)
	}
	return s.nameCollections(ctx, res.Facets)
}

func (s *Service) collectionTitle(ctx context.Context, collectionID string) (string, error) {
	if collectionID == s.cfg.RootPID {
		return s.cfg.RootName, nil
	}
	coll, err := s.resolver.Resolve(ctx, domain.IndexPublic, collectionID)
	if err != nil {
		return "", fmt.Errorf("collection %s: %w", collectionID, err)
	}
	if !coll.IsCollection() {
		return "", fmt.Errorf("%s is a %s: %w", collectionID, coll.ObjectType(), domain.ErrInvalidCollection)
	}
	return coll.DisplayTitle(""), nil
}

func (s *Service) nameCollections(ctx context.Context, facets facet.Result) (facet.Result, error) {
	if s.names == nil || s.cfg.CollectionsFacet == "" {
		return facets, nil
	}
	for i := range facets {
		g := &facets[i]
		if g.Label != s.cfg.CollectionsFacet || len(g.Buckets) == 0 {
			continue
		}
		pids := make([]string, len(g.Buckets))
		for j, b := range g.Buckets {
			pids[j] = b.Value
		}
		named, err := s.names.Names(ctx, pids)
		if err != nil {
			return nil, fmt.Errorf("name %s facet: %w", g.Label, err)
		}
		for j := range g.Buckets {
			if j < len(named) {
				g.Buckets[j].Name = named[j].Name
			}
		}
	}
	return facets, nil
}

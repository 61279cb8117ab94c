package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/discovery/internal/domain/document"
	"github.com/kailas-cloud/discovery/internal/domain/facet"
	domlisting "github.com/kailas-cloud/discovery/internal/domain/listing"
)

// Children returns a page of the direct members of the collection pid.
// A page past the last result fails with ErrInvalidPage.
func (c *Client) Children(ctx context.Context, pid string, opts ListOptions) (l Listing, err error) {
	start := time.Now()
	defer func() { c.obs.observe("collection.children", start, err) }()

	sel, err := selection(opts.Filters)
	if err != nil {
		return Listing{}, err
	}
	page := opts.Page
	if page == 0 {
		page = 1
	}
	var sort domlisting.Sort
	if opts.SortByTitle {
		sort = domlisting.Sort{Field: document.FieldTitle, Desc: opts.Desc}
	}

	res, err := c.listing.ListChildren(ctx, pid, page, sel, sort)
	if err != nil {
		return Listing{}, fmt.Errorf("list %s: %w", pid, err)
	}
	return Listing{
		Title:    res.Title,
		Page:     page,
		PageSize: c.pageSize,
		Total:    res.Total,
		Items:    objectsFromDomain(res.Items),
		Facets:   facetsFromDomain(res.Facets),
	}, nil
}

// RootCollections lists the top-level collections by title.
func (c *Client) RootCollections(ctx context.Context) (l Listing, err error) {
	start := time.Now()
	defer func() { c.obs.observe("collection.roots", start, err) }()

	res, err := c.listing.RootCollections(ctx)
	if err != nil {
		return Listing{}, fmt.Errorf("root collections: %w", err)
	}
	return Listing{
		Title:    res.Title,
		Page:     1,
		PageSize: len(res.Items),
		Total:    res.Total,
		Items:    objectsFromDomain(res.Items),
	}, nil
}

// Facets aggregates facet values for the collection pid, or the whole index when pid is empty.
func (c *Client) Facets(ctx context.Context, pid string) (groups []FacetGroup, err error) {
	start := time.Now()
	defer func() { c.obs.observe("collection.facets", start, err) }()

	res, err := c.listing.Facets(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("facets %q: %w", pid, err)
	}
	return facetsFromDomain(res), nil
}

func selection(filters []Filter) (facet.Selection, error) {
	var sel facet.Selection
	for _, f := range filters {
		if err := sel.Add(f.Facet, f.Value); err != nil {
			return facet.Selection{}, fmt.Errorf("filter %q: %w: %w", f.Facet, ErrInvalidRequest, err)
		}
	}
	return sel, nil
}

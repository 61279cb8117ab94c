package listing

import (
	"fmt"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/document"
	"github.com/kailas-cloud/discovery/internal/domain/facet"
	domlisting "github.com/kailas-cloud/discovery/internal/domain/listing"
	"github.com/kailas-cloud/discovery/internal/domain/search/filter"
)

// QueryBuilder turns a collection, a facet selection and a page into a store query.
// It performs no I/O.
type QueryBuilder struct {
	spec       facet.Spec
	pageSize   int
	facetLimit int
}

// NewQueryBuilder creates a builder. pageSize and facetLimit must be positive.
func NewQueryBuilder(spec facet.Spec, pageSize, facetLimit int) QueryBuilder {
	return QueryBuilder{spec: spec, pageSize: pageSize, facetLimit: facetLimit}
}

// PageSize returns the configured page size.
func (b QueryBuilder) PageSize() int { return b.pageSize }

// BuildQuery lists direct children of collectionID: members of the collection
// that are not parts of another object, narrowed by one exact match per
// selected facet value. Every configured facet is aggregated.
func (b QueryBuilder) BuildQuery(
	collectionID string, sel facet.Selection, page int, sort domlisting.Sort,
) (domlisting.Query, error) {
	if page < 1 {
		return domlisting.Query{}, fmt.Errorf("page %d: %w", page, domain.ErrInvalidPage)
	}
	if collectionID == "" {
		return domlisting.Query{}, fmt.Errorf("collection id is required: %w", domain.ErrInvalidRequest)
	}

	expr, err := b.filters(collectionID, sel)
	if err != nil {
		return domlisting.Query{}, err
	}

	return domlisting.Query{
		Filters:    expr,
		Facets:     b.spec.Fields(),
		FacetLimit: b.facetLimit,
		Offset:     (page - 1) * b.pageSize,
		Limit:      b.pageSize,
		Sort:       sort,
	}, nil
}

// FacetQuery aggregates every configured facet without returning hits.
// An empty collectionID aggregates the whole index.
func (b QueryBuilder) FacetQuery(collectionID string) (domlisting.Query, error) {
	q := domlisting.Query{Facets: b.spec.Fields(), FacetLimit: b.facetLimit}
	if collectionID == "" {
		return q, nil
	}
	expr, err := b.filters(collectionID, facet.Selection{})
	if err != nil {
		return domlisting.Query{}, err
	}
	q.Filters = expr
	return q, nil
}

// MembersQuery returns up to limit members of collectionID sorted by title, without facets.
func (b QueryBuilder) MembersQuery(collectionID string, limit int) (domlisting.Query, error) {
	member, err := filter.NewTag(document.FieldMemberOf, collectionID)
	if err != nil {
		return domlisting.Query{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	expr, err := filter.NewExpression([]filter.Condition{member}, nil, nil)
	if err != nil {
		return domlisting.Query{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	return domlisting.Query{
		Filters: expr,
		Limit:   limit,
		Sort:    domlisting.Sort{Field: document.FieldTitle},
	}, nil
}

func (b QueryBuilder) filters(collectionID string, sel facet.Selection) (filter.Expression, error) {
	member, err := filter.NewTag(document.FieldMemberOf, collectionID)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	direct, err := filter.NewMissing(document.FieldChildOf)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	must := make([]filter.Condition, 0, 2+sel.Len())
	must = append(must, member, direct)

	for _, label := range sel.Labels() {
		f, ok := b.spec.Lookup(label)
		if !ok {
			return filter.Expression{}, fmt.Errorf("unknown facet %q: %w", label, domain.ErrInvalidRequest)
		}
		for _, v := range sel.Values(label) {
			c, err := filter.NewTag(f.Attribute, v)
			if err != nil {
				return filter.Expression{}, fmt.Errorf("facet %q: %w: %w", label, domain.ErrInvalidRequest, err)
			}
			must = append(must, c)
		}
	}

	expr, err := filter.NewExpression(must, nil, nil)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	return expr, nil
}

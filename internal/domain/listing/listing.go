// Package listing describes collection member queries and their results.
package listing

import (
	"github.com/kailas-cloud/discovery/internal/domain/document"
	"github.com/kailas-cloud/discovery/internal/domain/facet"
	"github.com/kailas-cloud/discovery/internal/domain/search/filter"
)

// Sort orders results by an index attribute. The zero value keeps store order.
type Sort struct {
	Field string
	Desc  bool
}

// IsZero reports whether no sort was requested.
func (s Sort) IsZero() bool { return s.Field == "" }

// Query is a structural + facet filter with aggregations and a page window.
type Query struct {
	Filters    filter.Expression
	Facets     []facet.Field
	FacetLimit int
	Offset     int
	Limit      int
	Sort       Sort
}

// Page is what the store returns for a Query.
type Page struct {
	Items  []document.Document
	Total  int
	Facets facet.Result
}

// Listing is a page of collection members with the collection's own title.
type Listing struct {
	Items  []document.Document
	Total  int
	Facets facet.Result
	Title  string
}

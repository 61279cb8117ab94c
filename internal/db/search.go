package db

import "github.com/kailas-cloud/discovery/internal/domain/search/filter"

// SearchQuery is the input for a filtered FT.SEARCH with optional aggregations.
// Limit 0 returns only the total and the facets.
type SearchQuery struct {
	IndexName    string
	Filters      filter.Expression
	Offset       int
	Limit        int
	SortBy       string
	SortDesc     bool
	ReturnFields []string
	Facets       []FacetQuery
}

// FacetQuery requests value counts for one attribute, capped at Limit buckets.
type FacetQuery struct {
	Name  string
	Field string
	Limit int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
	Facets  []FacetResult
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}

// FacetResult holds the buckets of one FacetQuery, in store order.
type FacetResult struct {
	Name    string
	Buckets []Bucket
}

// Bucket is a facet value with its document count.
type Bucket struct {
	Value string
	Count int
}

// Package object looks up indexed repository records by PID.
package object

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/discovery/internal/db"
	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/document"
	"github.com/kailas-cloud/discovery/internal/domain/search/filter"
)

// store is the consumer interface for object lookups (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

// Repo implements usecase/object.Repository.
type Repo struct {
	store   store
	indexes map[domain.Index]string
}

// New creates an object repository. indexes maps public/private to FT index names.
func New(s store, indexes map[domain.Index]string) *Repo {
	return &Repo{store: s, indexes: indexes}
}

// IndexName returns the FT index serving idx.
func (r *Repo) IndexName(idx domain.Index) (string, error) {
	name, ok := r.indexes[idx]
	if !ok || name == "" {
		return "", fmt.Errorf("unknown index %q: %w", idx, domain.ErrInvalidRequest)
	}
	return name, nil
}

// FindByPID returns the first record whose pid carries every colon-delimited
// segment of pid, together with the number of records that matched.
func (r *Repo) FindByPID(ctx context.Context, idx domain.Index, pid string) (document.Document, int, error) {
	name, err := r.IndexName(idx)
	if err != nil {
		return document.Document{}, 0, err
	}

	expr, err := pidExpression(pid)
	if err != nil {
		return document.Document{}, 0, err
	}

	res, err := r.store.Search(ctx, &db.SearchQuery{
		IndexName:    name,
		Filters:      expr,
		Limit:        1,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return document.Document{}, 0, fmt.Errorf("search pid %s: %w: %w", pid, domain.ErrUpstreamUnavailable, err)
	}
	if res == nil || res.Total == 0 || len(res.Entries) == 0 {
		return document.Document{}, 0, domain.ErrNotFound
	}

	doc, err := DecodeEntry(res.Entries[0])
	if err != nil {
		return document.Document{}, 0, fmt.Errorf("pid %s: %w", pid, err)
	}
	return doc, res.Total, nil
}

// pidExpression requires every PID segment to be present as a pid token.
func pidExpression(pid string) (filter.Expression, error) {
	segments := document.Segments(pid)
	if len(segments) == 0 {
		return filter.Expression{}, fmt.Errorf("empty pid: %w", domain.ErrInvalidRequest)
	}
	must := make([]filter.Condition, 0, len(segments))
	for _, s := range segments {
		c, err := filter.NewText(AttrPID, s)
		if err != nil {
			return filter.Expression{}, fmt.Errorf("pid %q: %w: %w", pid, domain.ErrInvalidRequest, err)
		}
		must = append(must, c)
	}
	expr, err := filter.NewExpression(must, nil, nil)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("pid %q: %w: %w", pid, domain.ErrInvalidRequest, err)
	}
	return expr, nil
}

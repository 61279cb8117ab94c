// Package facet turns aggregation buckets into selectable lists and removable breadcrumbs.
// It performs no I/O.
package facet

import (
	"slices"
	"strings"

	domfacet "github.com/kailas-cloud/discovery/internal/domain/facet"
)

// Ordering directions.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Item is one selectable facet value.
type Item struct {
	Value     string
	Name      string
	Count     int
	Selected  bool
	SelectURL string
}

// List is the display form of one facet.
type List struct {
	Label     string
	Items     []Item
	Truncated bool
}

// Crumb is one removable selected facet value.
type Crumb struct {
	Label     string
	Value     string
	Name      string
	RemoveURL string
}

// Config holds presentation overrides, keyed by facet label.
type Config struct {
	// Ordering "desc" reverses the store's bucket order for a label.
	Ordering map[string]string
	// DisplayLimits truncates a label's list unless it is shown in full.
	DisplayLimits map[string]int
	// Labels maps raw bucket values to display names, per facet label.
	// Matching is case-insensitive.
	Labels map[string]map[string][]string
}

// Presenter builds facet display structures.
type Presenter struct {
	cfg    Config
	labels map[string]map[string]string
}

// New creates a Presenter.
func New(cfg Config) *Presenter {
	labels := make(map[string]map[string]string, len(cfg.Labels))
	for facetLabel, names := range cfg.Labels {
		m := make(map[string]string)
		for display, raws := range names {
			for _, raw := range raws {
				m[strings.ToLower(raw)] = display
			}
		}
		labels[facetLabel] = m
	}
	return &Presenter{cfg: cfg, labels: labels}
}

// Present maps each facet label to its renderable list. Buckets with an empty
// value are dropped; facets left empty are omitted. sel marks selected items
// and seeds the select links; labels in showAll bypass display limits.
func (p *Presenter) Present(
	result domfacet.Result, baseURL string, sel domfacet.Selection, showAll ...string,
) map[string]List {
	out := make(map[string]List, len(result))
	for _, g := range result {
		items := make([]Item, 0, len(g.Buckets))
		for _, b := range g.Buckets {
			if b.Value == "" {
				continue
			}
			items = append(items, Item{
				Value:     b.Value,
				Name:      p.displayName(g.Label, b),
				Count:     b.Count,
				Selected:  sel.Has(g.Label, b.Value),
				SelectURL: withQuery(baseURL, sel.With(g.Label, b.Value)),
			})
		}
		if len(items) == 0 {
			continue
		}
		if p.cfg.Ordering[g.Label] == OrderDesc {
			slices.Reverse(items)
		}

		list := List{Label: g.Label, Items: items}
		if limit, ok := p.cfg.DisplayLimits[g.Label]; ok && limit > 0 &&
			len(items) > limit && !slices.Contains(showAll, g.Label) {
			list.Items = items[:limit]
			list.Truncated = true
		}
		out[g.Label] = list
	}
	return out
}

// Breadcrumbs lists the selected values in selection order, then value order
// within a label. Returns nil when nothing is selected.
func (p *Presenter) Breadcrumbs(sel domfacet.Selection, baseURL string) []Crumb {
	if sel.IsEmpty() {
		return nil
	}
	crumbs := make([]Crumb, 0, sel.Len())
	for _, label := range sel.Labels() {
		for _, v := range sel.Values(label) {
			crumbs = append(crumbs, Crumb{
				Label:     label,
				Value:     v,
				Name:      p.displayName(label, domfacet.Bucket{Value: v}),
				RemoveURL: withQuery(baseURL, sel.Without(label, v)),
			})
		}
	}
	return crumbs
}

func (p *Presenter) displayName(label string, b domfacet.Bucket) string {
	if display, ok := p.labels[label][strings.ToLower(b.Value)]; ok {
		return display
	}
	if b.Name != "" {
		return b.Name
	}
	return b.Value
}

func withQuery(baseURL string, sel domfacet.Selection) string {
	q := sel.Encode()
	if q == "" {
		return baseURL
	}
	if strings.Contains(baseURL, "?") {
		return baseURL + "&" + q
	}
	return baseURL + "?" + q
}

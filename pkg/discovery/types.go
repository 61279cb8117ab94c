package discovery

import (
	"io"

	domds "github.com/kailas-cloud/discovery/internal/domain/datastream"
	"github.com/kailas-cloud/discovery/internal/domain/document"
	"github.com/kailas-cloud/discovery/internal/domain/facet"
	"github.com/kailas-cloud/discovery/internal/domain/manifest"
	"github.com/kailas-cloud/discovery/internal/domain/trail"
)

// Part is one ordered component of a compound object.
type Part struct {
	Order    int // declared 1-based order, 0 when absent
	MimeType string
	Title    string
	Caption  string
	Object   string // repository PID holding the part's bytes
}

// Object is a resolved repository record.
type Object struct {
	PID        string
	ObjectType string // "collection", "object" or "compound"
	Title      string
	Titles     []string
	MemberOf   []string
	MimeType   string
	Abstract   string
	Creator    []string
	Parts      []Part
	// Matches is the number of records sharing the PID; above 1 means duplicates.
	Matches int
}

// IsCollection reports whether the record groups other records.
func (o Object) IsCollection() bool { return o.ObjectType == string(document.TypeCollection) }

// Crumb is one step of an ancestry trail.
type Crumb struct {
	PID  string
	Name string
	URL  string
}

// FacetValue is one facet bucket.
type FacetValue struct {
	Value string
	Name  string
	Count int
}

// FacetGroup holds the buckets of one facet, in store order.
type FacetGroup struct {
	Label  string
	Values []FacetValue
}

// Filter restricts a listing to records carrying Value under Facet.
type Filter struct {
	Facet string
	Value string
}

// ListOptions selects a page of a collection listing.
type ListOptions struct {
	Page    int // 1-based; 0 means the first page
	Filters []Filter
	// SortByTitle orders by title instead of index order.
	SortByTitle bool
	Desc        bool
}

// Listing is a page of collection members.
type Listing struct {
	Title    string
	Page     int
	PageSize int
	Total    int
	Items    []Object
	Facets   []FacetGroup
}

// ManifestMetadata is a label/value pair.
type ManifestMetadata struct {
	Label string
	Value string
}

// ManifestChild is one viewable resource of an object.
type ManifestChild struct {
	Label            string
	Sequence         string
	Description      string
	Format           string
	Type             string
	ResourceID       string
	DownloadFileName string
	ResourceURL      string
	ThumbnailURL     string
}

// Manifest describes an object and its viewable resources.
type Manifest struct {
	ResourceID       string
	Title            string
	Description      string
	DownloadFileName string
	Metadata         []ManifestMetadata
	Children         []ManifestChild
}

// Datastream is an open byte stream. The caller must Close it.
type Datastream struct {
	io.ReadCloser
	ContentType   string
	ContentLength int64 // -1 when unknown
	Source        string // "local", "repository" or "placeholder"
}

func objectFromDomain(doc *document.Document, matches int) Object {
	o := Object{
		PID:        doc.PID(),
		ObjectType: string(doc.ObjectType()),
		Title:      doc.Title().First(),
		Titles:     doc.Title().All(),
		MemberOf:   doc.MemberOf().All(),
		MimeType:   doc.MimeType(),
		Abstract:   doc.Abstract(),
		Creator:    doc.Creator().All(),
		Matches:    matches,
	}
	for _, p := range doc.Parts() {
		o.Parts = append(o.Parts, Part{
			Order:    p.Order(),
			MimeType: p.MimeType(),
			Title:    p.Title(),
			Caption:  p.Caption(),
			Object:   p.ObjectRef(),
		})
	}
	return o
}

func objectsFromDomain(docs []document.Document) []Object {
	out := make([]Object, len(docs))
	for i := range docs {
		out[i] = objectFromDomain(&docs[i], 0)
	}
	return out
}

func trailFromDomain(t trail.Trail) []Crumb {
	out := make([]Crumb, len(t))
	for i, c := range t {
		out[i] = Crumb(c)
	}
	return out
}

func facetsFromDomain(r facet.Result) []FacetGroup {
	out := make([]FacetGroup, len(r))
	for i, g := range r {
		values := make([]FacetValue, len(g.Buckets))
		for j, b := range g.Buckets {
			values[j] = FacetValue(b)
		}
		out[i] = FacetGroup{Label: g.Label, Values: values}
	}
	return out
}

func manifestFromDomain(m *manifest.Manifest) Manifest {
	out := Manifest{
		ResourceID:       m.Container.ResourceID,
		Title:            m.Container.Title,
		Description:      m.Container.Description,
		DownloadFileName: m.Container.DownloadFileName,
		Metadata:         make([]ManifestMetadata, len(m.Container.Metadata)),
		Children:         make([]ManifestChild, len(m.Children)),
	}
	for i, md := range m.Container.Metadata {
		out.Metadata[i] = ManifestMetadata(md)
	}
	for i, c := range m.Children {
		out.Children[i] = ManifestChild(c)
	}
	return out
}

func datastreamFromDomain(s *domds.Stream) *Datastream {
	return &Datastream{
		ReadCloser:    s.Body,
		ContentType:   s.ContentType,
		ContentLength: s.ContentLength,
		Source:        string(s.Source),
	}
}

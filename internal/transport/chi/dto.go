package chi

import (
	"github.com/kailas-cloud/discovery/internal/domain/document"
	"github.com/kailas-cloud/discovery/internal/domain/manifest"
	"github.com/kailas-cloud/discovery/internal/domain/trail"
	facetuc "github.com/kailas-cloud/discovery/internal/usecase/facet"
)

// PartResponse is one part of a compound object.
type PartResponse struct {
	Order     int    `json:"order"`
	Type      string `json:"type,omitempty"`
	Title     string `json:"title,omitempty"`
	Caption   string `json:"caption,omitempty"`
	Object    string `json:"object,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// ObjectResponse is a resolved record.
type ObjectResponse struct {
	PID        string         `json:"pid"`
	ObjectType string         `json:"object_type"`
	Title      string         `json:"title"`
	Titles     []string       `json:"titles,omitempty"`
	MemberOf   []string       `json:"is_member_of_collection,omitempty"`
	MimeType   string         `json:"mime_type,omitempty"`
	Abstract   string         `json:"abstract,omitempty"`
	Creator    []string       `json:"creator,omitempty"`
	Parts      []PartResponse `json:"parts,omitempty"`
	Matches    int            `json:"matches,omitempty"`
}

// CrumbResponse is one step of an ancestry trail.
type CrumbResponse struct {
	PID  string `json:"pid"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FacetItemResponse is one selectable facet value.
type FacetItemResponse struct {
	Value    string `json:"value"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected,omitempty"`
	URL      string `json:"url"`
}

// FacetListResponse is the display form of one facet.
type FacetListResponse struct {
	Items     []FacetItemResponse `json:"items"`
	Truncated bool                `json:"truncated,omitempty"`
}

// FacetCrumbResponse is one removable facet selection.
type FacetCrumbResponse struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Facet     string `json:"facet"`
	RemoveURL string `json:"remove_url"`
}

// ListingResponse is a page of collection members.
type ListingResponse struct {
	PID         string                       `json:"pid"`
	Title       string                       `json:"title"`
	Page        int                          `json:"page"`
	PageSize    int                          `json:"page_size"`
	Total       int                          `json:"total"`
	Items       []ObjectResponse             `json:"items"`
	Facets      map[string]FacetListResponse `json:"facets"`
	Breadcrumbs []FacetCrumbResponse         `json:"facet_breadcrumbs,omitempty"`
	Trail       []CrumbResponse              `json:"trail,omitempty"`
}

// CollectionsResponse lists the top-level collections.
type CollectionsResponse struct {
	Title string           `json:"title"`
	Total int              `json:"total"`
	Items []ObjectResponse `json:"items"`
}

// FacetsResponse holds facets for a collection or the whole index.
type FacetsResponse struct {
	Facets map[string]FacetListResponse `json:"facets"`
}

// ManifestMetadata is a label/value pair.
type ManifestMetadata struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ManifestChild is one viewable resource.
type ManifestChild struct {
	Label            string `json:"label"`
	Sequence         string `json:"sequence"`
	Description      string `json:"description,omitempty"`
	Format           string `json:"format,omitempty"`
	Type             string `json:"type"`
	ResourceID       string `json:"resourceID,omitempty"`
	DownloadFileName string `json:"downloadFileName,omitempty"`
	ResourceURL      string `json:"resourceUrl"`
	ThumbnailURL     string `json:"thumbnailUrl"`
}

// ManifestResponse describes an object and its resources.
type ManifestResponse struct {
	ResourceID       string             `json:"resourceID"`
	Title            string             `json:"title"`
	Description      string             `json:"description,omitempty"`
	DownloadFileName string             `json:"downloadFileName"`
	Metadata         []ManifestMetadata `json:"metadata"`
	Children         []ManifestChild    `json:"children"`
}

// HealthResponse reports component reachability.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func objectToResponse(doc *document.Document) ObjectResponse {
	resp := ObjectResponse{
		PID:        doc.PID(),
		ObjectType: string(doc.ObjectType()),
		Title:      doc.Title().First(),
		MemberOf:   doc.MemberOf().All(),
		MimeType:   doc.MimeType(),
		Abstract:   doc.Abstract(),
		Creator:    doc.Creator().All(),
	}
	if titles := doc.Title().All(); len(titles) > 1 {
		resp.Titles = titles
	}
	for _, p := range doc.Parts() {
		resp.Parts = append(resp.Parts, PartResponse{
			Order:     p.Order(),
			Type:      p.MimeType(),
			Title:     p.Title(),
			Caption:   p.Caption(),
			Object:    p.ObjectRef(),
			Thumbnail: p.ThumbnailRef(),
		})
	}
	return resp
}

func objectsToResponse(docs []document.Document) []ObjectResponse {
	out := make([]ObjectResponse, len(docs))
	for i := range docs {
		out[i] = objectToResponse(&docs[i])
	}
	return out
}

func trailToResponse(t trail.Trail) []CrumbResponse {
	out := make([]CrumbResponse, len(t))
	for i, c := range t {
		out[i] = CrumbResponse(c)
	}
	return out
}

func facetsToResponse(lists map[string]facetuc.List) map[string]FacetListResponse {
	out := make(map[string]FacetListResponse, len(lists))
	for label, l := range lists {
		items := make([]FacetItemResponse, len(l.Items))
		for i, it := range l.Items {
			items[i] = FacetItemResponse{
				Value:    it.Value,
				Name:     it.Name,
				Count:    it.Count,
				Selected: it.Selected,
				URL:      it.SelectURL,
			}
		}
		out[label] = FacetListResponse{Items: items, Truncated: l.Truncated}
	}
	return out
}

func facetCrumbsToResponse(crumbs []facetuc.Crumb) []FacetCrumbResponse {
	if crumbs == nil {
		return nil
	}
	out := make([]FacetCrumbResponse, len(crumbs))
	for i, c := range crumbs {
		out[i] = FacetCrumbResponse{Type: c.Label, Name: c.Name, Facet: c.Value, RemoveURL: c.RemoveURL}
	}
	return out
}

func manifestToResponse(m *manifest.Manifest) ManifestResponse {
	resp := ManifestResponse{
		ResourceID:       m.Container.ResourceID,
		Title:            m.Container.Title,
		Description:      m.Container.Description,
		DownloadFileName: m.Container.DownloadFileName,
		Metadata:         make([]ManifestMetadata, len(m.Container.Metadata)),
		Children:         make([]ManifestChild, len(m.Children)),
	}
	for i, md := range m.Container.Metadata {
		resp.Metadata[i] = ManifestMetadata(md)
	}
	for i, c := range m.Children {
		resp.Children[i] = ManifestChild(c)
	}
	return resp
}

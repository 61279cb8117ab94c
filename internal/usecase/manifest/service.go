// Package manifest assembles viewer manifests for single and compound objects.
package manifest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/datastream"
	"github.com/kailas-cloud/discovery/internal/domain/document"
	"github.com/kailas-cloud/discovery/internal/domain/manifest"
)

// Config holds the URL root and the MIME tables.
type Config struct {
	RootURL string
	Table   datastream.Table
	// Types maps an object-type bucket to the manifest resource type.
	Types map[string]string
}

// Service builds manifests.
type Service struct {
	resolver Resolver
	cfg      Config
}

// New creates a manifest service.
func New(r Resolver, cfg Config) *Service {
	return &Service{resolver: r, cfg: cfg}
}

// Assemble resolves pid and describes it with one child per viewable resource.
func (s *Service) Assemble(ctx context.Context, pid string) (manifest.Manifest, error) {
	doc, err := s.resolver.Resolve(ctx, domain.IndexPublic, pid)
	if err != nil {
		return manifest.Manifest{}, fmt.Errorf("assemble manifest %s: %w", pid, err)
	}

	m := manifest.Manifest{Container: s.container(&doc)}
	if doc.IsCompound() {
		m.Children = s.partChildren(&doc)
	} else {
		m.Children = []manifest.Child{s.singleChild(&doc)}
	}
	return m, nil
}

func (s *Service) container(doc *document.Document) manifest.Container {
	return manifest.Container{
		ResourceID:       doc.PID(),
		Title:            doc.Title().First(),
		Description:      doc.Abstract(),
		DownloadFileName: document.FileName(doc.PID()),
		Metadata: []manifest.Metadata{
			{Label: "Title", Value: doc.Title().First()},
			{Label: "Creator", Value: doc.Creator().First()},
		},
	}
}

func (s *Service) partChildren(doc *document.Document) []manifest.Child {
	parts := doc.Parts()
	children := make([]manifest.Child, 0, len(parts))
	for i, p := range parts {
		seq := p.Order()
		if seq < 1 {
			seq = i + 1
		}
		n := strconv.Itoa(seq)
		children = append(children, manifest.Child{
			Label:            p.Title(),
			Sequence:         n,
			Description:      p.Caption(),
			Format:           p.MimeType(),
			Type:             s.resourceType(p.MimeType()),
			ResourceID:       p.ObjectRef(),
			DownloadFileName: p.Title(),
			ResourceURL:      s.datastreamURL(doc.PID(), s.cfg.Table.DSType(p.MimeType()), n),
			ThumbnailURL:     s.datastreamURL(doc.PID(), datastream.Thumbnail, n),
		})
	}
	return children
}

func (s *Service) singleChild(doc *document.Document) manifest.Child {
	return manifest.Child{
		Label:            doc.Title().First(),
		Sequence:         "1",
		Description:      doc.Abstract(),
		Format:           doc.MimeType(),
		Type:             s.resourceType(doc.MimeType()),
		ResourceID:       doc.PID(),
		DownloadFileName: document.FileName(doc.PID()),
		ResourceURL:      s.datastreamURL(doc.PID(), s.cfg.Table.DSType(doc.MimeType()), ""),
		ThumbnailURL:     s.datastreamURL(doc.PID(), datastream.Thumbnail, ""),
	}
}

// resourceType returns "" for MIME types outside every bucket.
func (s *Service) resourceType(mime string) string {
	return s.cfg.Types[s.cfg.Table.Bucket(mime)]
}

func (s *Service) datastreamURL(pid, dsType, part string) string {
	u := s.cfg.RootURL + "/datastream/" + pid + "/" + dsType
	if part != "" {
		u += "/" + part
	}
	return u
}

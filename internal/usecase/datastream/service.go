// Package datastream maps logical datastream requests to byte streams,
// preferring local files and falling back to the repository.
package datastream

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/discovery/internal/domain"
	domds "github.com/kailas-cloud/discovery/internal/domain/datastream"
	"github.com/kailas-cloud/discovery/internal/domain/document"
	"github.com/kailas-cloud/discovery/internal/logger"
)

// Thumbnails locates local thumbnail images.
type Thumbnails struct {
	Path         string
	Extension    string
	DefaultImage string
	// Placeholders maps an object-type bucket to a placeholder image path.
	Placeholders map[string]string
}

// Config holds the MIME tables and local file roots.
type Config struct {
	Table      domds.Table
	ObjectPath string
	Thumbnails Thumbnails
	// ImageBuckets are object-type buckets whose thumbnails come from the repository.
	ImageBuckets []string
}

// Service resolves datastreams.
type Service struct {
	resolver    Resolver
	files       Files
	repo        Repository
	cfg         Config
	resolutions *prometheus.CounterVec
	logger      *zap.Logger
}

// New creates a datastream service. resolutions is a counter vec labelled by
// "datastream" and "source"; may be nil. Empty ImageBuckets default to smallImage and largeImage.
func New(r Resolver, files Files, repo Repository, cfg Config, resolutions *prometheus.CounterVec, l *zap.Logger) *Service {
	if len(cfg.ImageBuckets) == 0 {
		cfg.ImageBuckets = []string{"smallImage", "largeImage"}
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &Service{resolver: r, files: files, repo: repo, cfg: cfg, resolutions: resolutions, logger: l}
}

// target is the object or part a request resolves to.
type target struct {
	pid      string // repository PID holding the bytes
	digits   string // numeric PID portion naming local files
	mimeType string
	suffix   string
}

// Open resolves req to an open stream. The caller must close it.
func (s *Service) Open(ctx context.Context, req domds.Request) (*domds.Stream, error) {
	if req.PID == "" || req.Datastream == "" {
		return nil, fmt.Errorf("datastream request needs pid and datastream: %w", domain.ErrInvalidRequest)
	}

	t, err := s.target(ctx, req)
	if err != nil {
		return nil, err
	}

	var stream *domds.Stream
	if req.IsThumbnail() {
		stream, err = s.thumbnail(ctx, t)
	} else {
		stream, err = s.content(ctx, t, req.Datastream)
	}
	if err != nil {
		return nil, fmt.Errorf("datastream %s/%s: %w", req.PID, req.Datastream, err)
	}

	if s.resolutions != nil {
		s.resolutions.WithLabelValues(s.metricLabel(req), string(stream.Source)).Inc()
	}
	s.log(ctx).Debug("Datastream resolved",
		zap.String("pid", req.PID),
		zap.String("datastream", req.Datastream),
		zap.Int("part", req.Part),
		zap.String("source", string(stream.Source)),
	)
	return stream, nil
}

// Do opens req, passes the stream to fn and closes it whether or not fn consumed it.
func (s *Service) Do(ctx context.Context, req domds.Request, fn func(*domds.Stream) error) (err error) {
	stream, err := s.Open(ctx, req)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close datastream: %w", cerr)
		}
	}()
	return fn(stream)
}

func (s *Service) target(ctx context.Context, req domds.Request) (target, error) {
	doc, err := s.resolver.Resolve(ctx, req.Index, req.PID)
	if err != nil {
		return target{}, fmt.Errorf("datastream %s: %w", req.PID, err)
	}

	t := target{pid: doc.PID(), digits: document.Digits(req.PID), mimeType: doc.MimeType()}
	if req.Part < 1 {
		return t, nil
	}

	part, ok := doc.Part(req.Part)
	if !ok {
		return target{}, fmt.Errorf("datastream %s part %d: %w", req.PID, req.Part, domain.ErrNotFound)
	}
	t.mimeType = part.MimeType()
	if ref := part.ObjectRef(); ref != "" {
		t.pid = ref
	}
	t.suffix = req.PartSuffix()
	return t, nil
}

// thumbnail streams image thumbnails from the repository. Other types use a
// local thumbnail, then the type placeholder, then the default image.
// Generated thumbnails are not available.
func (s *Service) thumbnail(ctx context.Context, t target) (*domds.Stream, error) {
	bucket := s.cfg.Table.Bucket(t.mimeType)
	if slices.Contains(s.cfg.ImageBuckets, bucket) {
		return s.repo.Fetch(ctx, t.pid, domds.Thumbnail)
	}

	tn := s.cfg.Thumbnails
	local := filepath.Join(tn.Path, t.digits+t.suffix+tn.Extension)
	if s.files.Exists(local) {
		return s.files.Stream(local)
	}

	p := tn.DefaultImage
	if placeholder, ok := tn.Placeholders[bucket]; ok && s.files.Exists(placeholder) {
		p = placeholder
	}
	stream, err := s.files.Stream(p)
	if err != nil {
		return nil, fmt.Errorf("thumbnail placeholder: %w", err)
	}
	stream.Source = domds.SourcePlaceholder
	return stream, nil
}

func (s *Service) content(ctx context.Context, t target, ds string) (*domds.Stream, error) {
	for _, ext := range s.cfg.Table.Extensions(t.mimeType) {
		local := filepath.Join(s.cfg.ObjectPath, t.digits+t.suffix+"."+ext)
		if !s.files.Exists(local) {
			continue
		}
		stream, err := s.files.Stream(local)
		if err == nil {
			return stream, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return s.repo.Fetch(ctx, t.pid, ds)
}

func (s *Service) metricLabel(req domds.Request) string {
	if req.IsThumbnail() {
		return domds.Thumbnail
	}
	if _, ok := s.cfg.Table.Types[req.Datastream]; ok {
		return req.Datastream
	}
	return "other"
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	if l := logger.FromContext(ctx); l.Core().Enabled(zap.DebugLevel) {
		return l
	}
	return s.logger
}

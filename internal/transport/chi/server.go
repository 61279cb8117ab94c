package chi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/discovery/internal/domain"
	domds "github.com/kailas-cloud/discovery/internal/domain/datastream"
	"github.com/kailas-cloud/discovery/internal/domain/facet"
	"github.com/kailas-cloud/discovery/internal/logger"
	facetuc "github.com/kailas-cloud/discovery/internal/usecase/facet"
	healthuc "github.com/kailas-cloud/discovery/internal/usecase/health"
)

// Config holds transport settings.
type Config struct {
	PageSize int
	// PartSeparator splits a compound part number off a PID ("codu:123_2").
	PartSeparator string
}

// Services bundles the use cases the server exposes.
type Services struct {
	Objects     ObjectResolver
	Hierarchy   AncestryWalker
	Collections CollectionLister
	Facets      *facetuc.Presenter
	Manifests   ManifestAssembler
	Datastreams DatastreamResolver
	Health      HealthChecker
}

// Server serves the discovery HTTP API.
type Server struct {
	svc    Services
	cfg    Config
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if svc.Facets == nil {
		svc.Facets = facetuc.New(facetuc.Config{})
	}
	return &Server{svc: svc, cfg: cfg, logger: logger}
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/objects/{pid}", s.GetObject)
		r.Get("/objects/{pid}/ancestry", s.GetAncestry)
		r.Get("/objects/{pid}/manifest", s.GetManifest)
		r.Get("/collections", s.ListRootCollections)
		r.Get("/collections/{pid}", s.ListChildren)
		r.Get("/facets", s.GetFacets)
		r.Get("/collections/{pid}/facets", s.GetFacets)
	})

	r.Get("/datastream/{pid}/{datastream}", s.GetDatastream)
	r.Get("/datastream/{pid}/{datastream}/{part}", s.GetDatastream)
}

// GetObject handles GET /api/v1/objects/{pid}.
func (s *Server) GetObject(w http.ResponseWriter, r *http.Request) {
	var pid string
	if err := pathParam(r, "pid", &pid); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	m, err := s.svc.Objects.Lookup(r.Context(), IndexFromContext(r.Context()), pid)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := objectToResponse(&m.Document)
	resp.Matches = m.Matches
	writeJSON(w, http.StatusOK, resp)
}

// GetAncestry handles GET /api/v1/objects/{pid}/ancestry.
func (s *Server) GetAncestry(w http.ResponseWriter, r *http.Request) {
	var pid string
	if err := pathParam(r, "pid", &pid); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	t, err := s.svc.Hierarchy.AncestryOf(r.Context(), pid)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trailToResponse(t))
}

// GetManifest handles GET /api/v1/objects/{pid}/manifest.
func (s *Server) GetManifest(w http.ResponseWriter, r *http.Request) {
	var pid string
	if err := pathParam(r, "pid", &pid); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	m, err := s.svc.Manifests.Assemble(r.Context(), pid)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, manifestToResponse(&m))
}

// ListRootCollections handles GET /api/v1/collections.
func (s *Server) ListRootCollections(w http.ResponseWriter, r *http.Request) {
	l, err := s.svc.Collections.RootCollections(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CollectionsResponse{
		Title: l.Title,
		Total: l.Total,
		Items: objectsToResponse(l.Items),
	})
}

// ListChildren handles GET /api/v1/collections/{pid}.
// Query: page, sort, order, show_all (facet label) and f[label]=value selections.
func (s *Server) ListChildren(w http.ResponseWriter, r *http.Request) {
	var pid string
	if err := pathParam(r, "pid", &pid); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	page, sort, err := listingParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	sel, err := facet.ParseSelection(r.URL.RawQuery)
	if err != nil {
		s.handleDomainError(w, r, errors.Join(domain.ErrInvalidRequest, err))
		return
	}
	var showAll string
	if err := queryParam(r, "show_all", &showAll); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	l, err := s.svc.Collections.ListChildren(r.Context(), pid, page, sel, sort)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := ListingResponse{
		PID:         pid,
		Title:       l.Title,
		Page:        page,
		PageSize:    s.cfg.PageSize,
		Total:       l.Total,
		Items:       objectsToResponse(l.Items),
		Facets:      facetsToResponse(s.svc.Facets.Present(l.Facets, r.URL.Path, sel, showAll)),
		Breadcrumbs: facetCrumbsToResponse(s.svc.Facets.Breadcrumbs(sel, r.URL.Path)),
	}
	if s.svc.Hierarchy != nil {
		t, err := s.svc.Hierarchy.AncestryOf(r.Context(), pid)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		resp.Trail = trailToResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetFacets handles GET /api/v1/facets and GET /api/v1/collections/{pid}/facets.
func (s *Server) GetFacets(w http.ResponseWriter, r *http.Request) {
	pid := chi.URLParam(r, "pid")

	res, err := s.svc.Collections.Facets(r.Context(), pid)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, FacetsResponse{
		Facets: facetsToResponse(s.svc.Facets.Present(res, r.URL.Path, facet.Selection{})),
	})
}

// GetDatastream handles GET /datastream/{pid}/{datastream}[/{part}].
// A part may also be embedded in the PID ("codu:123_2").
func (s *Server) GetDatastream(w http.ResponseWriter, r *http.Request) {
	var rawPID, ds string
	if err := pathParam(r, "pid", &rawPID); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if err := pathParam(r, "datastream", &ds); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	pid, part := splitPart(rawPID, s.cfg.PartSeparator)
	if chi.URLParam(r, "part") != "" {
		if err := pathParam(r, "part", &part); err != nil {
			s.handleDomainError(w, r, err)
			return
		}
	}

	req := domds.Request{Index: IndexFromContext(r.Context()), PID: pid, Datastream: ds, Part: part}
	err := s.svc.Datastreams.Do(r.Context(), req, func(stream *domds.Stream) error {
		w.Header().Set("Content-Type", stream.ContentType)
		if stream.ContentLength > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(stream.ContentLength, 10))
		}
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, stream.Body); err != nil {
			s.log(r).Warn("Datastream copy interrupted",
				zap.String("pid", pid), zap.String("datastream", ds), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		s.handleDomainError(w, r, err)
	}
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.log(r)
	log.Warn("domain error", zap.Error(err))

	msg := safeDomainMessage(err)
	for _, h := range errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func (s *Server) log(r *http.Request) *zap.Logger {
	if l := logger.FromContext(r.Context()); l.Core().Enabled(zap.WarnLevel) {
		return l
	}
	return s.logger
}

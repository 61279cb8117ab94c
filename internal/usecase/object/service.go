// Package object resolves repository records by PID.
package object

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/document"
	"github.com/kailas-cloud/discovery/internal/logger"
)

// Match is a resolved record with the number of records that matched its PID.
// Matches above 1 indicate duplicate records in the index.
type Match struct {
	Document document.Document
	Matches  int
}

// Ambiguous reports whether more than one record matched.
func (m Match) Ambiguous() bool { return m.Matches > 1 }

// Service resolves PIDs against the search index.
type Service struct {
	repo      Repository
	ambiguous *prometheus.CounterVec
	logger    *zap.Logger
}

// New creates an object service. ambiguous is a counter vec labelled by "index"; may be nil.
func New(repo Repository, ambiguous *prometheus.CounterVec, l *zap.Logger) *Service {
	if l == nil {
		l = zap.NewNop()
	}
	return &Service{repo: repo, ambiguous: ambiguous, logger: l}
}

// Lookup resolves pid in idx and returns the match diagnostics alongside the record.
func (s *Service) Lookup(ctx context.Context, idx domain.Index, pid string) (Match, error) {
	doc, n, err := s.repo.FindByPID(ctx, idx, pid)
	if err != nil {
		return Match{}, fmt.Errorf("resolve %s: %w", pid, err)
	}

	m := Match{Document: doc, Matches: n}
	if m.Ambiguous() {
		if s.ambiguous != nil {
			s.ambiguous.WithLabelValues(string(idx)).Inc()
		}
		s.log(ctx).Warn("PID matched more than one record, using the first",
			zap.String("pid", pid),
			zap.String("index", string(idx)),
			zap.Int("matches", n),
			zap.String("resolved_pid", doc.PID()),
		)
	}
	return m, nil
}

// Resolve returns the record for pid in idx.
// Absent records yield domain.ErrNotFound; store failures domain.ErrUpstreamUnavailable.
func (s *Service) Resolve(ctx context.Context, idx domain.Index, pid string) (document.Document, error) {
	m, err := s.Lookup(ctx, idx, pid)
	if err != nil {
		return document.Document{}, err
	}
	return m.Document, nil
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	if l := logger.FromContext(ctx); l.Core().Enabled(zap.WarnLevel) {
		return l
	}
	return s.logger
}

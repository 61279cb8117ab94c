// Package hierarchy walks member-of-collection links up to the root collection.
package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/trail"
)

// UntitledCollection names ancestors that carry no title.
const UntitledCollection = "Untitled Collection"

// Config holds the root collection identity and the walk ceiling.
type Config struct {
	RootPID  string
	RootName string
	RootURL  string
	MaxDepth int
}

// Service builds ancestry trails.
type Service struct {
	resolver Resolver
	cfg      Config
}

// New creates a hierarchy service. MaxDepth <= 0 falls back to 32.
func New(r Resolver, cfg Config) *Service {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 32
	}
	return &Service{resolver: r, cfg: cfg}
}

// AncestryOf returns the trail from the root collection down to pid.
// Each step follows the first member-of-collection value. A record without
// a parent is attached directly to the root. Chains longer than MaxDepth
// fail with domain.ErrHierarchyTooDeep.
func (s *Service) AncestryOf(ctx context.Context, pid string) (trail.Trail, error) {
	var crumbs trail.Trail

	current := pid
	for depth := 0; current != s.cfg.RootPID; depth++ {
		if depth >= s.cfg.MaxDepth {
			return nil, fmt.Errorf("ancestry of %s exceeds %d levels: %w", pid, s.cfg.MaxDepth, domain.ErrHierarchyTooDeep)
		}

		doc, err := s.resolver.Resolve(ctx, domain.IndexPublic, current)
		if err != nil {
			return nil, fmt.Errorf("ancestry of %s at %s: %w", pid, current, err)
		}

		crumbs = append(crumbs, trail.Crumb{
			PID:  doc.PID(),
			Name: doc.DisplayTitle(UntitledCollection),
			URL:  s.collectionURL(doc.PID()),
		})

		parent, ok := doc.Parent()
		if !ok {
			parent = s.cfg.RootPID
		}
		current = parent
	}

	crumbs = append(crumbs, trail.Crumb{PID: s.cfg.RootPID, Name: s.cfg.RootName, URL: s.cfg.RootURL})
	slices.Reverse(crumbs)
	return crumbs, nil
}

// Names resolves display names for pids, in order. PIDs that do not resolve
// keep the PID as their name; store failures abort.
func (s *Service) Names(ctx context.Context, pids []string) ([]trail.Crumb, error) {
	out := make([]trail.Crumb, 0, len(pids))
	for _, pid := range pids {
		c := trail.Crumb{PID: pid, Name: pid, URL: s.collectionURL(pid)}
		if pid == s.cfg.RootPID {
			c.Name, c.URL = s.cfg.RootName, s.cfg.RootURL
			out = append(out, c)
			continue
		}
		doc, err := s.resolver.Resolve(ctx, domain.IndexPublic, pid)
		switch {
		case err == nil:
			c.Name = doc.DisplayTitle(pid)
		case errors.Is(err, domain.ErrNotFound):
		default:
			return nil, fmt.Errorf("name of %s: %w", pid, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Service) collectionURL(pid string) string {
	return s.cfg.RootURL + "/collection/" + pid
}

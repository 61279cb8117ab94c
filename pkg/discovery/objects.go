package discovery

import (
	"context"
	"fmt"
	"time"
)

// Object resolves pid to its record.
func (c *Client) Object(ctx context.Context, pid string) (obj Object, err error) {
	start := time.Now()
	defer func() { c.obs.observe("object.get", start, err) }()

	m, err := c.objects.Lookup(ctx, c.index, pid)
	if err != nil {
		return Object{}, fmt.Errorf("object %s: %w", pid, err)
	}
	return objectFromDomain(&m.Document, m.Matches), nil
}

// Ancestry returns the trail from the root collection down to pid.
func (c *Client) Ancestry(ctx context.Context, pid string) (crumbs []Crumb, err error) {
	start := time.Now()
	defer func() { c.obs.observe("object.ancestry", start, err) }()

	t, err := c.hierarchy.AncestryOf(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("ancestry %s: %w", pid, err)
	}
	return trailFromDomain(t), nil
}

// Manifest assembles the viewer manifest of pid.
func (c *Client) Manifest(ctx context.Context, pid string) (m Manifest, err error) {
	start := time.Now()
	defer func() { c.obs.observe("object.manifest", start, err) }()

	dm, err := c.manifests.Assemble(ctx, pid)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest %s: %w", pid, err)
	}
	return manifestFromDomain(&dm), nil
}

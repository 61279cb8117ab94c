package discovery

import (
	"context"
	"fmt"
	"time"

	domds "github.com/kailas-cloud/discovery/internal/domain/datastream"
)

// Datastream names accepted by OpenDatastream besides MIME-derived type names.
const (
	DatastreamThumbnail = domds.Thumbnail
	DatastreamObject    = domds.Object
)

// OpenDatastream opens datastream ds of pid. part selects a 1-based compound
// part; 0 addresses the object itself. The caller must close the result.
func (c *Client) OpenDatastream(ctx context.Context, pid, ds string, part int) (out *Datastream, err error) {
	start := time.Now()
	defer func() { c.obs.observe("datastream.open", start, err) }()

	s, err := c.datastreams.Open(ctx, domds.Request{
		Index:      c.index,
		PID:        pid,
		Datastream: ds,
		Part:       part,
	})
	if err != nil {
		return nil, fmt.Errorf("datastream %s/%s: %w", pid, ds, err)
	}
	return datastreamFromDomain(s), nil
}

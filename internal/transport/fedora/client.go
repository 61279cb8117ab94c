// Package fedora streams datastream content from a Fedora-style repository.
package fedora

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/datastream"
	"github.com/kailas-cloud/discovery/internal/metrics"
)

// Repository datastream IDs.
const (
	DSThumbnail = "TN"
	DSObject    = "OBJ"
	DSProxyMP3  = "PROXY_MP3"
	DSMP4       = "MP4"
	DSMOV       = "MOV"
)

// DatastreamID maps a logical datastream name to the repository's datastream ID.
// Unknown names map to OBJ.
func DatastreamID(ds string) string {
	switch strings.ToLower(ds) {
	case "tn", "thumbnail":
		return DSThumbnail
	case "audio", "mp3":
		return DSProxyMP3
	case "video", "mp4":
		return DSMP4
	case "mov":
		return DSMOV
	default: // small_image, jpg, large_image, tiff, pdf
		return DSObject
	}
}

// Config holds the repository client settings.
type Config struct {
	BaseURL string
	// Timeout bounds connecting and waiting for response headers. Body reads are
	// bounded only by the request context so large media can stream.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client fetches datastreams over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *zap.Logger
}

// New creates a repository client.
func New(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
				ResponseHeaderTimeout: timeout,
				MaxIdleConnsPerHost:   16,
				IdleConnTimeout:       90 * time.Second,
			},
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

// DatastreamURL builds {base}/objects/{pid}/datastreams/{DSID}/content.
func (c *Client) DatastreamURL(pid, ds string) string {
	return c.baseURL + "/objects/" + url.PathEscape(pid) + "/datastreams/" + DatastreamID(ds) + "/content"
}

// Fetch opens the datastream of pid. Any transport failure or non-2xx
// response is reported as domain.ErrUpstreamUnavailable.
func (c *Client) Fetch(ctx context.Context, pid, ds string) (*datastream.Stream, error) {
	dsid := DatastreamID(ds)
	target := c.DatastreamURL(pid, ds)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", target, err)
	}
	req.Header.Set("X-Request-ID", requestID(ctx))

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.RepositoryFetchDuration.WithLabelValues(dsid).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RepositoryFetchTotal.WithLabelValues(dsid, "error").Inc()
		c.logger.Warn("Repository fetch failed",
			zap.String("pid", pid), zap.String("dsid", dsid), zap.Error(err))
		return nil, fmt.Errorf("fetch %s %s: %w: %w", pid, dsid, domain.ErrUpstreamUnavailable, err)
	}

	metrics.RepositoryFetchTotal.WithLabelValues(dsid, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		c.logger.Warn("Repository returned non-success status",
			zap.String("pid", pid), zap.String("dsid", dsid), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("fetch %s %s: status %d: %w", pid, dsid, resp.StatusCode, domain.ErrUpstreamUnavailable)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &datastream.Stream{
		Body:          resp.Body,
		ContentType:   ct,
		ContentLength: resp.ContentLength,
		Source:        datastream.SourceRepository,
	}, nil
}

// HealthCheck verifies the repository answers HTTP. Any status below 500 counts as reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", http.NoBody)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("repository health: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("repository health: status %d", resp.StatusCode)
	}
	return nil
}

// requestID forwards the inbound request id, or mints one for background calls.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

package discovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/discovery/internal/app"
	"github.com/kailas-cloud/discovery/internal/config"
	"github.com/kailas-cloud/discovery/internal/db"
	dbRedis "github.com/kailas-cloud/discovery/internal/db/redis"
	"github.com/kailas-cloud/discovery/internal/domain"
	domds "github.com/kailas-cloud/discovery/internal/domain/datastream"
	"github.com/kailas-cloud/discovery/internal/domain/facet"
	domlisting "github.com/kailas-cloud/discovery/internal/domain/listing"
	"github.com/kailas-cloud/discovery/internal/domain/manifest"
	"github.com/kailas-cloud/discovery/internal/domain/trail"
	healthuc "github.com/kailas-cloud/discovery/internal/usecase/health"
	objectuc "github.com/kailas-cloud/discovery/internal/usecase/object"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, substituted in tests.
type objectUseCase interface {
	Lookup(ctx context.Context, idx domain.Index, pid string) (objectuc.Match, error)
}

type hierarchyUseCase interface {
	AncestryOf(ctx context.Context, pid string) (trail.Trail, error)
}

type listingUseCase interface {
	ListChildren(
		ctx context.Context, collectionID string, page int, sel facet.Selection, sort domlisting.Sort,
	) (domlisting.Listing, error)
	RootCollections(ctx context.Context) (domlisting.Listing, error)
	Facets(ctx context.Context, collectionID string) (facet.Result, error)
}

type manifestUseCase interface {
	Assemble(ctx context.Context, pid string) (manifest.Manifest, error)
}

type datastreamUseCase interface {
	Open(ctx context.Context, req domds.Request) (*domds.Stream, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the discovery SDK entry point. A Client is safe for concurrent use.
type Client struct {
	store       db.Store
	index       domain.Index
	pageSize    int
	objects     objectUseCase
	hierarchy   hierarchyUseCase
	listing     listingUseCase
	manifests   manifestUseCase
	datastreams datastreamUseCase
	healthSvc   healthUseCase
	obs         *observer
}

// New creates a discovery Client and connects to the search index.
// The provided context is used for the readiness check and index bootstrap.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("discovery: database address required (use WithRedis)")
	}
	if cfg.repositoryURL == "" {
		return nil, errors.New("discovery: repository URL required (use WithRepository)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.addrs,
		Username:   cfg.username,
		Password:   cfg.password,
		Standalone: cfg.standalone,
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("discovery: database not ready: %w", err)
	}

	c, err := wireClient(ctx, store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

// serviceConfig maps client options onto the service configuration.
func (c *clientConfig) serviceConfig() config.Config {
	cfg := config.Config{
		Index: config.IndexConfig{
			Public:    c.publicIndex,
			Private:   c.privateIndex,
			KeyPrefix: c.keyPrefix,
		},
		Repository: config.RepositoryConfig{
			URL:        c.repositoryURL,
			TimeoutSec: int(c.repositoryTimeout / time.Second),
		},
		Discovery: config.DiscoveryConfig{
			RootURL:            c.rootURL,
			RootCollectionPID:  c.rootPID,
			RootCollectionName: c.rootName,
			PageSize:           c.pageSize,
		},
		Datastreams: config.DatastreamsConfig{FilesRoot: c.filesRoot},
		Cache:       config.CacheConfig{ObjectTTLSec: int(c.objectTTL / time.Second)},
	}
	cfg.ApplyDefaults()
	return cfg
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	svcCfg := cfg.serviceConfig()

	a, err := app.New(store, svcCfg, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}
	if cfg.ensure {
		if _, err := a.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("discovery: ensure indexes: %w", err)
		}
	}

	return &Client{
		store:       store,
		index:       domain.IndexPublic,
		pageSize:    svcCfg.Discovery.PageSize,
		objects:     a.Objects,
		hierarchy:   a.Hierarchy,
		listing:     a.Listing,
		manifests:   a.Manifests,
		datastreams: a.Datastreams,
		healthSvc:   a.Health,
		obs:         obs,
	}, nil
}

// Private returns a view of the client that resolves objects and datastreams
// against the private index, which also holds unpublished records.
// Ancestry, listings and manifests always read the public index.
func (c *Client) Private() *Client {
	p := *c
	p.index = domain.IndexPrivate
	return &p
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks search index connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

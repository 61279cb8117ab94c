// Package app assembles the discovery services from configuration.
// It is the composition root shared by the HTTP server and the embedded SDK.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/discovery/internal/config"
	"github.com/kailas-cloud/discovery/internal/db"
	"github.com/kailas-cloud/discovery/internal/domain"
	domds "github.com/kailas-cloud/discovery/internal/domain/datastream"
	"github.com/kailas-cloud/discovery/internal/domain/facet"
	"github.com/kailas-cloud/discovery/internal/metrics"
	"github.com/kailas-cloud/discovery/internal/repository/filecache"
	listingrepo "github.com/kailas-cloud/discovery/internal/repository/listing"
	"github.com/kailas-cloud/discovery/internal/repository/objcache"
	objectrepo "github.com/kailas-cloud/discovery/internal/repository/object"
	"github.com/kailas-cloud/discovery/internal/transport/fedora"
	datastreamuc "github.com/kailas-cloud/discovery/internal/usecase/datastream"
	facetuc "github.com/kailas-cloud/discovery/internal/usecase/facet"
	healthuc "github.com/kailas-cloud/discovery/internal/usecase/health"
	hierarchyuc "github.com/kailas-cloud/discovery/internal/usecase/hierarchy"
	listinguc "github.com/kailas-cloud/discovery/internal/usecase/listing"
	manifestuc "github.com/kailas-cloud/discovery/internal/usecase/manifest"
	objectuc "github.com/kailas-cloud/discovery/internal/usecase/object"
)

// collectionsFacet is the facet label whose values are collection PIDs.
const collectionsFacet = "Collections"

// App holds the wired services.
type App struct {
	Objects     *objectuc.Service
	Hierarchy   *hierarchyuc.Service
	Listing     *listinguc.Service
	Facets      *facetuc.Presenter
	Manifests   *manifestuc.Service
	Datastreams *datastreamuc.Service
	Health      *healthuc.Service
	Repository  *fedora.Client

	store   db.Store
	indexes []*db.IndexDefinition
}

// New wires every service over store. cfg must already have defaults applied.
func New(store db.Store, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	spec, err := facetSpec(cfg.Facets.Fields)
	if err != nil {
		return nil, err
	}
	indexes, err := indexDefinitions(cfg)
	if err != nil {
		return nil, err
	}

	// PID lookups: index repo -> optional read-through cache -> resolver
	objects := objectrepo.New(store, map[domain.Index]string{
		domain.IndexPublic:  cfg.Index.Public,
		domain.IndexPrivate: cfg.Index.Private,
	})
	var finder objectuc.Repository = objects
	if cfg.Cache.ObjectTTLSec > 0 {
		ttl := time.Duration(cfg.Cache.ObjectTTLSec) * time.Second
		finder = objcache.New(objects, store, ttl, metrics.ObjectCacheTotal, logger)
	}
	objSvc := objectuc.New(finder, metrics.PIDAmbiguousTotal, logger)

	hierSvc := hierarchyuc.New(objSvc, hierarchyuc.Config{
		RootPID:  cfg.Discovery.RootCollectionPID,
		RootName: cfg.Discovery.RootCollectionName,
		RootURL:  cfg.Discovery.RootURL,
		MaxDepth: cfg.Discovery.MaxDepth,
	})

	builder := listinguc.NewQueryBuilder(spec, cfg.Discovery.PageSize, cfg.Facets.Limit)
	listSvc := listinguc.New(
		listingrepo.New(store, cfg.Index.Public), objSvc, hierSvc, builder,
		listinguc.Config{
			RootPID:            cfg.Discovery.RootCollectionPID,
			RootName:           cfg.Discovery.RootCollectionName,
			MaxRootCollections: cfg.Discovery.MaxRootCollections,
			CollectionsFacet:   collectionsFacet,
		},
	)

	presenter := facetuc.New(facetuc.Config{
		Ordering:      cfg.Facets.Ordering,
		DisplayLimits: cfg.Facets.DisplayLimits,
		Labels:        cfg.Facets.Labels,
	})

	table := domds.Table{
		ObjectTypes:    cfg.Datastreams.ObjectTypes,
		Types:          cfg.Datastreams.Types,
		FileExtensions: cfg.Datastreams.FileExtensions,
	}
	manifestSvc := manifestuc.New(objSvc, manifestuc.Config{
		RootURL: cfg.Discovery.RootURL,
		Table:   table,
		Types:   cfg.Datastreams.ManifestTypes,
	})

	repoClient := fedora.New(&fedora.Config{
		BaseURL: cfg.Repository.URL,
		Timeout: time.Duration(cfg.Repository.TimeoutSec) * time.Second,
		Logger:  logger,
	})
	tn := cfg.Datastreams.Thumbnails
	dsSvc := datastreamuc.New(objSvc, filecache.New(cfg.Datastreams.FilesRoot), repoClient, datastreamuc.Config{
		Table:      table,
		ObjectPath: cfg.Datastreams.ObjectPath,
		Thumbnails: datastreamuc.Thumbnails{
			Path:         tn.Path,
			Extension:    tn.Extension,
			DefaultImage: tn.DefaultImage,
			Placeholders: tn.Placeholders,
		},
	}, metrics.DatastreamResolutionsTotal, logger)

	return &App{
		Objects:     objSvc,
		Hierarchy:   hierSvc,
		Listing:     listSvc,
		Facets:      presenter,
		Manifests:   manifestSvc,
		Datastreams: dsSvc,
		Health:      healthuc.New(store, repoClient),
		Repository:  repoClient,
		store:       store,
		indexes:     indexes,
	}, nil
}

// EnsureIndexes creates any missing search index and returns the names it created.
func (a *App) EnsureIndexes(ctx context.Context) ([]string, error) {
	var created []string
	for _, def := range a.indexes {
		ok, err := objectrepo.EnsureIndex(ctx, a.store, def)
		if err != nil {
			return created, err
		}
		if ok {
			created = append(created, def.Name)
		}
	}
	return created, nil
}

func facetSpec(fields []config.FacetField) (facet.Spec, error) {
	out := make([]facet.Field, len(fields))
	for i, f := range fields {
		out[i] = facet.Field{Label: f.Label, Attribute: f.Attribute}
	}
	spec, err := facet.NewSpec(out)
	if err != nil {
		return facet.Spec{}, fmt.Errorf("facet spec: %w", err)
	}
	return spec, nil
}

// indexDefinitions builds one definition per distinct index name.
func indexDefinitions(cfg config.Config) ([]*db.IndexDefinition, error) {
	paths := make([]objectrepo.FacetPath, len(cfg.Facets.Fields))
	for i, f := range cfg.Facets.Fields {
		paths[i] = objectrepo.FacetPath{Attribute: f.Attribute, Path: f.Path}
	}

	var defs []*db.IndexDefinition
	seen := make(map[string]bool, 2)
	for _, name := range []string{cfg.Index.Public, cfg.Index.Private} {
		if seen[name] {
			continue
		}
		seen[name] = true
		def, err := objectrepo.BuildIndex(name, cfg.Index.KeyPrefix, paths)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

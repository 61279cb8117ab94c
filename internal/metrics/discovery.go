package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "discovery"

// Discovery Prometheus metrics.
var (
	PIDAmbiguousTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pid_ambiguous_total",
			Help:      "PID lookups that matched more than one record",
		},
		[]string{"index"},
	)

	ObjectCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "object_cache_total",
			Help:      "Object cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	RepositoryFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repository_fetch_total",
			Help:      "Datastream fetches from the repository",
		},
		[]string{"dsid", "status"},
	)

	RepositoryFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "repository_fetch_duration_seconds",
			Help:      "Time to first byte of repository datastream fetches",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"dsid"},
	)

	DatastreamResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datastream_resolutions_total",
			Help:      "Datastream resolutions by datastream and byte source",
		},
		[]string{"datastream", "source"},
	)
)

var registerOnce sync.Once

// RegisterDiscoveryMetrics registers the discovery collectors with the default registry.
func RegisterDiscoveryMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			PIDAmbiguousTotal,
			ObjectCacheTotal,
			RepositoryFetchTotal,
			RepositoryFetchDuration,
			DatastreamResolutionsTotal,
		)
	})
}

package discovery

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs      []string
	username   string
	password   string
	standalone bool

	repositoryURL     string
	repositoryTimeout time.Duration

	rootURL  string
	rootPID  string
	rootName string

	publicIndex  string
	privateIndex string
	keyPrefix    string
	ensure       bool

	pageSize  int
	objectTTL time.Duration
	filesRoot string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance with the search module.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedisCluster connects to a Redis cluster through any of its seed nodes.
func WithRedisCluster(addrs []string, username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = append([]string(nil), addrs...)
		c.username = username
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithRepository sets the base URL of the repository serving datastream bytes.
func WithRepository(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.repositoryURL = baseURL
	})
}

// WithRepositoryTimeout bounds connecting to the repository and waiting for headers.
// Default: 30s.
func WithRepositoryTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.repositoryTimeout = d
	})
}

// WithRootURL sets the public URL prefix used for trail and manifest links.
func WithRootURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.rootURL = u
	})
}

// WithRootCollection overrides the root collection PID and display name.
// Defaults: "codu:root", "Root Collection".
func WithRootCollection(pid, name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.rootPID = pid
		c.rootName = name
	})
}

// WithIndexes names the public and private search indexes.
// An empty private name reuses the public index.
func WithIndexes(public, private string) Option {
	return optionFunc(func(c *clientConfig) {
		c.publicIndex = public
		c.privateIndex = private
	})
}

// WithKeyPrefix sets the key prefix indexed records live under. Default: "object:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithEnsureIndexes creates missing search indexes when the client connects.
func WithEnsureIndexes() Option {
	return optionFunc(func(c *clientConfig) {
		c.ensure = true
	})
}

// WithPageSize sets the number of members per listing page. Default: 12.
func WithPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = n
	})
}

// WithObjectCache caches resolved records in Redis for ttl. Zero disables (default).
func WithObjectCache(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.objectTTL = ttl
	})
}

// WithFilesRoot sets the directory that locally cached thumbnails and objects
// resolve against. Default: the working directory.
func WithFilesRoot(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.filesRoot = dir
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

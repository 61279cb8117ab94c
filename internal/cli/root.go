// Package cli implements the discoveryctl command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/discovery/pkg/discovery"
)

// discoveryClient is the subset of *discovery.Client the commands use.
type discoveryClient interface {
	Object(ctx context.Context, pid string) (discovery.Object, error)
	Ancestry(ctx context.Context, pid string) ([]discovery.Crumb, error)
	Children(ctx context.Context, pid string, opts discovery.ListOptions) (discovery.Listing, error)
	RootCollections(ctx context.Context) (discovery.Listing, error)
	Facets(ctx context.Context, pid string) ([]discovery.FacetGroup, error)
	Manifest(ctx context.Context, pid string) (discovery.Manifest, error)
	OpenDatastream(ctx context.Context, pid, ds string, part int) (*discovery.Datastream, error)
	Health(ctx context.Context) discovery.HealthStatus
	Close()
}

// connection holds the global flags that select and reach the backends.
type connection struct {
	redis      []string
	password   string
	standalone bool
	repository string
	rootURL    string
	public     string
	private    string
	usePrivate bool
	timeout    time.Duration
}

var (
	conn       connection
	outputJSON bool
	noColor    bool

	// newClient is swapped in tests.
	newClient = connect
)

var rootCmd = &cobra.Command{
	Use:   "discoveryctl",
	Short: "Query the digital collections discovery layer",
	Long: `discoveryctl resolves objects, walks collection ancestry, lists collection
members with facets, prints viewer manifests and downloads datastreams, talking
directly to the search index and the repository.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

// Execute runs the root command. Command output goes to stdout.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringSliceVar(&conn.redis, "redis", envList("DISCOVERY_REDIS", "localhost:6379"), "search index addresses")
	f.StringVar(&conn.password, "redis-password", os.Getenv("DISCOVERY_REDIS_PASSWORD"), "search index password")
	f.BoolVar(&conn.standalone, "standalone", true, "disable cluster topology discovery")
	f.StringVar(&conn.repository, "repository", envOr("DISCOVERY_REPOSITORY", "http://localhost:8081/fedora"),
		"repository base URL")
	f.StringVar(&conn.rootURL, "root-url", envOr("DISCOVERY_ROOT_URL", "http://localhost:8080"),
		"public URL prefix for links")
	f.StringVar(&conn.public, "public-index", "discovery:public", "public index name")
	f.StringVar(&conn.private, "private-index", "discovery:private", "private index name")
	f.BoolVar(&conn.usePrivate, "private", false, "resolve objects and datastreams in the private index")
	f.DurationVar(&conn.timeout, "timeout", 30*time.Second, "overall command timeout")
	f.BoolVar(&outputJSON, "json", false, "output as JSON")
	f.BoolVar(&noColor, "no-color", false, "disable colored output")
}

func connect(ctx context.Context, c connection) (discoveryClient, error) {
	opts := []discovery.Option{
		discovery.WithRedisCluster(c.redis, "", c.password),
		discovery.WithRepository(c.repository),
		discovery.WithRootURL(c.rootURL),
		discovery.WithIndexes(c.public, c.private),
	}
	if c.standalone {
		opts = append(opts, discovery.WithStandalone())
	}

	client, err := discovery.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if c.usePrivate {
		return client.Private(), nil
	}
	return client, nil
}

// withClient connects, runs fn with a bounded context and closes the client.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, c discoveryClient) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), conn.timeout)
	defer cancel()

	c, err := newClient(ctx, conn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer c.Close()

	return fn(ctx, c)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envList(key, fallback string) []string {
	return strings.Split(envOr(key, fallback), ",")
}

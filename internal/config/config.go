package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the discovery API configuration.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	Index       IndexConfig       `yaml:"index"`
	Repository  RepositoryConfig  `yaml:"repository"`
	Discovery   DiscoveryConfig   `yaml:"discovery"`
	Facets      FacetsConfig      `yaml:"facets"`
	Datastreams DatastreamsConfig `yaml:"datastreams"`
	Cache       CacheConfig       `yaml:"cache"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API keys that unlock the private index.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds document store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	Standalone       bool     `yaml:"standalone"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// IndexConfig names the search indexes and the key space they cover.
type IndexConfig struct {
	Public    string `yaml:"public"`
	Private   string `yaml:"private"`
	KeyPrefix string `yaml:"key_prefix"`
	Ensure    bool   `yaml:"ensure"` // create missing indexes at startup
}

// RepositoryConfig points at the byte store serving datastream content.
type RepositoryConfig struct {
	URL        string `yaml:"url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// DiscoveryConfig holds hierarchy and listing settings.
type DiscoveryConfig struct {
	RootURL               string `yaml:"root_url"`
	RootCollectionPID     string `yaml:"root_collection_pid"`
	RootCollectionName    string `yaml:"root_collection_name"`
	PageSize              int    `yaml:"page_size"`
	MaxDepth              int    `yaml:"max_depth"`
	MaxRootCollections    int    `yaml:"max_root_collections"`
	CompoundPartSeparator string `yaml:"compound_part_separator"`
}

// FacetField binds a display label to a JSON path in the indexed record.
type FacetField struct {
	Label     string `yaml:"label"`
	Attribute string `yaml:"attribute"`
	Path      string `yaml:"path"`
}

// FacetsConfig holds facet aggregation and presentation settings.
type FacetsConfig struct {
	Fields        []FacetField      `yaml:"fields"`
	Limit         int               `yaml:"limit"`
	Ordering      map[string]string `yaml:"ordering"`       // label -> "asc" | "desc"
	DisplayLimits map[string]int    `yaml:"display_limits"` // label -> max buckets shown
	// Labels maps facet label -> display name -> raw values shown under that name.
	Labels map[string]map[string][]string `yaml:"labels"`
}

// ThumbnailConfig holds local thumbnail settings.
type ThumbnailConfig struct {
	Path         string            `yaml:"path"`
	Extension    string            `yaml:"extension"`
	DefaultImage string            `yaml:"default_image"`
	Placeholders map[string]string `yaml:"placeholders"` // object type bucket -> file path
}

// DatastreamsConfig holds the MIME tables used to resolve datastreams and manifests.
type DatastreamsConfig struct {
	ObjectTypes    map[string][]string `yaml:"object_types"`    // bucket -> MIME types
	Types          map[string][]string `yaml:"types"`           // datastream type -> MIME types
	FileExtensions map[string][]string `yaml:"file_extensions"` // extension -> MIME types
	ManifestTypes  map[string]string   `yaml:"manifest_types"`  // bucket -> manifest resource type
	FilesRoot      string              `yaml:"files_root"` // base for relative file paths; empty = working dir
	ObjectPath     string              `yaml:"object_path"`
	Thumbnails     ThumbnailConfig     `yaml:"thumbnails"`
}

// CacheConfig holds read-through cache settings.
type CacheConfig struct {
	ObjectTTLSec int `yaml:"object_ttl_sec"` // 0 disables the object cache
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates configuration bytes.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Index.Public == "" {
		c.Index.Public = "discovery:public"
	}
	if c.Index.Private == "" {
		c.Index.Private = c.Index.Public
	}
	if c.Index.KeyPrefix == "" {
		c.Index.KeyPrefix = "object:"
	}
	if c.Repository.TimeoutSec <= 0 {
		c.Repository.TimeoutSec = 30
	}
	c.applyDiscoveryDefaults()
	c.applyFacetDefaults()
	c.applyDatastreamDefaults()
}

func (c *Config) applyDiscoveryDefaults() {
	d := &c.Discovery
	if d.RootCollectionPID == "" {
		d.RootCollectionPID = "codu:root"
	}
	if d.RootCollectionName == "" {
		d.RootCollectionName = "Root Collection"
	}
	if d.PageSize <= 0 {
		d.PageSize = 12
	}
	if d.MaxDepth <= 0 {
		d.MaxDepth = 32
	}
	if d.MaxRootCollections <= 0 {
		d.MaxRootCollections = 1000
	}
	if d.CompoundPartSeparator == "" {
		d.CompoundPartSeparator = "_"
	}
	d.RootURL = strings.TrimRight(d.RootURL, "/")
}

func (c *Config) applyFacetDefaults() {
	f := &c.Facets
	if len(f.Fields) == 0 {
		f.Fields = []FacetField{
			{Label: "Creator", Attribute: "creator", Path: "$.display_record.names[*].title"},
			{Label: "Subject", Attribute: "subject", Path: "$.f_subjects[*]"},
			{Label: "Type", Attribute: "type", Path: "$.type"},
			{Label: "Date", Attribute: "date", Path: "$.display_record.dates[*].expression"},
			{Label: "Collections", Attribute: "is_member_of_collection", Path: "$.is_member_of_collection[*]"},
			{Label: "Authority ID", Attribute: "authority_id", Path: "$.display_record.subjects[*].authority_id"},
		}
	}
	if f.Limit <= 0 {
		f.Limit = 200
	}
	if f.Ordering == nil {
		f.Ordering = map[string]string{"Date": "desc"}
	}
	if f.DisplayLimits == nil {
		f.DisplayLimits = map[string]int{"Collections": 15}
	}
	if f.Labels == nil {
		f.Labels = map[string]map[string][]string{
			"Type": {
				"Still Image":  {"still image", "image/tiff", "image/jpeg", "image/jp2"},
				"Moving Image": {"moving image", "video/mp4", "video/quicktime"},
				"Sound":        {"sound", "audio/mpeg", "audio/x-wav"},
				"Text":         {"text", "application/pdf"},
			},
		}
	}
}

func (c *Config) applyDatastreamDefaults() {
	d := &c.Datastreams
	if d.ObjectTypes == nil {
		d.ObjectTypes = map[string][]string{
			"audio":      {"audio/mpeg", "audio/x-wav", "audio/mp3"},
			"video":      {"video/mp4", "video/quicktime", "video/mov"},
			"smallImage": {"image/png", "image/jpg", "image/jpeg"},
			"largeImage": {"image/tiff", "image/jp2"},
			"pdf":        {"application/pdf"},
		}
	}
	if d.Types == nil {
		d.Types = map[string][]string{
			"jpg":       {"image/jpeg", "image/jpg"},
			"tiff":      {"image/tiff"},
			"mp3":       {"audio/mp3", "audio/mpeg", "audio/x-wav"},
			"mp4":       {"video/mp4"},
			"mov":       {"video/mov"},
			"quicktime": {"video/quicktime"},
			"pdf":       {"application/pdf"},
		}
	}
	if d.FileExtensions == nil {
		d.FileExtensions = map[string][]string{
			"jp2": {"image/tiff"},
			"mp3": {"audio/mp3"},
			"mp4": {"video/mp4"},
			"pdf": {"application/pdf"},
		}
	}
	if d.ManifestTypes == nil {
		d.ManifestTypes = map[string]string{
			"audio":      "dctypes:Sound",
			"video":      "dctypes:MovingImage",
			"smallImage": "dctypes:Image",
			"largeImage": "dctypes:Image",
			"pdf":        "foaf:Document",
		}
	}
	if d.ObjectPath == "" {
		d.ObjectPath = "files/object"
	}
	t := &d.Thumbnails
	if t.Path == "" {
		t.Path = "files/thumbnails"
	}
	if t.Extension == "" {
		t.Extension = ".png"
	}
	if t.DefaultImage == "" {
		t.DefaultImage = "files/thumbnails/tn-placeholder.jpg"
	}
	if t.Placeholders == nil {
		t.Placeholders = map[string]string{
			"audio": "files/thumbnails/audio-tn.png",
			"video": "files/thumbnails/video-tn.png",
			"pdf":   "files/thumbnails/pdf-tn.png",
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Repository.URL == "" {
		return fmt.Errorf("repository.url is required")
	}
	if _, err := url.ParseRequestURI(c.Repository.URL); err != nil {
		return fmt.Errorf("repository.url: %w", err)
	}
	if c.Discovery.RootURL == "" {
		return fmt.Errorf("discovery.root_url is required")
	}
	seen := make(map[string]bool, len(c.Facets.Fields))
	for i, f := range c.Facets.Fields {
		if f.Label == "" || f.Attribute == "" || f.Path == "" {
			return fmt.Errorf("facets.fields[%d]: label, attribute and path are required", i)
		}
		if seen[f.Label] {
			return fmt.Errorf("facets.fields[%d]: duplicate label %q", i, f.Label)
		}
		seen[f.Label] = true
	}
	for label, dir := range c.Facets.Ordering {
		switch dir {
		case "asc", "desc":
		default:
			return fmt.Errorf("facets.ordering.%s must be \"asc\" or \"desc\", got %q", label, dir)
		}
	}
	if c.Cache.ObjectTTLSec < 0 {
		return fmt.Errorf("cache.object_ttl_sec must not be negative")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

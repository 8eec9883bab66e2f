// Package config loads easypub configuration from a TOML or YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/KonishchevDmitry/easypub/internal/generator"
	"github.com/KonishchevDmitry/easypub/pkg/fetch"
	"github.com/KonishchevDmitry/easypub/pkg/publist"
	"github.com/KonishchevDmitry/easypub/pkg/source"
	"github.com/KonishchevDmitry/easypub/pkg/url"
)

var (
	ErrUnsupportedFormat      = errors.New("unsupported configuration file format: .toml, .yaml or .yml is expected")
	ErrNoInput                = errors.New("doi_file or preprint_file is required")
	ErrInvalidConcurrency     = errors.New("concurrency must be at least 1")
	ErrInvalidMaxAttempts     = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay    = errors.New("retry.initial_delay must be non-negative")
	ErrInvalidRequestsPerSec  = errors.New("rate_limit.requests_per_second must be non-negative")
	ErrInvalidBurst           = errors.New("rate_limit.burst must be non-negative")
	ErrInvalidCacheTTL        = errors.New("cache_ttl must be non-negative")
	ErrInvalidServiceURL      = errors.New("service URL must be an absolute URL")
	ErrInvalidSiteURL         = errors.New("site_url must be an absolute URL")
	ErrInvalidBreakerFailures = errors.New("breaker.failures must be at least 1")
)

type Config struct {
	// Input files and the directory with manual metadata.
	DOIFile      string `toml:"doi_file" yaml:"doi_file"`
	PreprintFile string `toml:"preprint_file" yaml:"preprint_file"`
	ManualDir    string `toml:"manual_dir" yaml:"manual_dir"`

	// Output files of the generate command.
	Output    string `toml:"output" yaml:"output"`
	RSSOutput string `toml:"rss_output" yaml:"rss_output"`

	Title       string `toml:"title" yaml:"title"`
	SiteURL     string `toml:"site_url" yaml:"site_url"`
	UserAgent   string `toml:"user_agent" yaml:"user_agent"`
	Concurrency int    `toml:"concurrency" yaml:"concurrency"`

	// Settings of the serve command.
	Schedule      string   `toml:"schedule" yaml:"schedule"`
	CacheTTL      Duration `toml:"cache_ttl" yaml:"cache_ttl"`
	Listen        string   `toml:"listen" yaml:"listen"`
	MetricsListen string   `toml:"metrics_listen" yaml:"metrics_listen"`

	Services  ServicesConfig  `toml:"services" yaml:"services"`
	Retry     RetryConfig     `toml:"retry" yaml:"retry"`
	RateLimit RateLimitConfig `toml:"rate_limit" yaml:"rate_limit"`
	Breaker   BreakerConfig   `toml:"breaker" yaml:"breaker"`
}

// ServicesConfig holds base URLs of the metadata services.
type ServicesConfig struct {
	CrossRef string `toml:"crossref" yaml:"crossref"`
	ArXiv    string `toml:"arxiv" yaml:"arxiv"`
	ChemRxiv string `toml:"chemrxiv" yaml:"chemrxiv"`
}

type RetryConfig struct {
	MaxAttempts  int      `toml:"max_attempts" yaml:"max_attempts"`
	InitialDelay Duration `toml:"initial_delay" yaml:"initial_delay"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `toml:"burst" yaml:"burst"`
}

type BreakerConfig struct {
	Failures uint32   `toml:"failures" yaml:"failures"`
	Timeout  Duration `toml:"timeout" yaml:"timeout"`
}

func Default() *Config {
	fetchConfig := fetch.DefaultConfig()
	breakerConfig := source.DefaultBreakerConfig()

	return &Config{
		DOIFile:      "content/doi_published.txt",
		PreprintFile: "content/arXiv_ids.txt",
		ManualDir:    "content/manual_metadata",
		Output:       "source/publications",

		Title:       "Publications",
		UserAgent:   fetchConfig.UserAgent,
		Concurrency: publist.DefaultOptions().Concurrency,

		Schedule:      generator.DefaultSchedule,
		CacheTTL:      Duration(24 * time.Hour),
		Listen:        "localhost:8080",
		MetricsListen: "localhost:9101",

		Services: ServicesConfig{
			CrossRef: source.CrossRefURL,
			ArXiv:    source.ArXivURL,
			ChemRxiv: source.ChemRxivURL,
		},
		Retry: RetryConfig{
			MaxAttempts:  fetchConfig.MaxAttempts,
			InitialDelay: Duration(fetchConfig.InitialDelay),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: fetchConfig.RequestsPerSecond,
			Burst:             fetchConfig.Burst,
		},
		Breaker: BreakerConfig{
			Failures: breakerConfig.Failures,
			Timeout:  Duration(breakerConfig.Timeout),
		},
	}
}

// Load loads the configuration file on top of the default configuration. Relative paths in the file are resolved
// against the directory the file is located in. The result isn't validated since command line flags may complete it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	config := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		return nil, fmt.Errorf("%q: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}

	config.resolvePaths(filepath.Dir(path))
	return config, nil
}

func (c *Config) resolvePaths(baseDir string) {
	for _, path := range []*string{&c.DOIFile, &c.PreprintFile, &c.ManualDir, &c.Output, &c.RSSOutput} {
		if *path != "" && !filepath.IsAbs(*path) {
			*path = filepath.Join(baseDir, *path)
		}
	}
}

func (c *Config) Validate() error {
	if c.DOIFile == "" && c.PreprintFile == "" {
		return ErrNoInput
	}

	if c.Concurrency < 1 {
		return ErrInvalidConcurrency
	}

	if c.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	} else if c.Retry.InitialDelay < 0 {
		return ErrInvalidInitialDelay
	}

	if c.RateLimit.RequestsPerSecond < 0 {
		return ErrInvalidRequestsPerSec
	} else if c.RateLimit.Burst < 0 {
		return ErrInvalidBurst
	}

	if c.CacheTTL < 0 {
		return ErrInvalidCacheTTL
	}

	if c.Breaker.Failures < 1 {
		return ErrInvalidBreakerFailures
	}

	for name, serviceURL := range map[string]string{
		"services.crossref": c.Services.CrossRef,
		"services.arxiv":    c.Services.ArXiv,
		"services.chemrxiv": c.Services.ChemRxiv,
	} {
		if _, err := url.Parse(serviceURL); err != nil {
			return fmt.Errorf("%s: %w", name, ErrInvalidServiceURL)
		}
	}

	if c.SiteURL != "" {
		if _, err := url.Parse(c.SiteURL); err != nil {
			return ErrInvalidSiteURL
		}
	}

	return nil
}

func (c *Config) Fetch() fetch.Config {
	return fetch.Config{
		UserAgent:         c.UserAgent,
		MaxAttempts:       c.Retry.MaxAttempts,
		InitialDelay:      time.Duration(c.Retry.InitialDelay),
		RequestsPerSecond: c.RateLimit.RequestsPerSecond,
		Burst:             c.RateLimit.Burst,
	}
}

func (c *Config) BreakerSettings() source.BreakerConfig {
	return source.BreakerConfig{
		Failures: c.Breaker.Failures,
		Timeout:  time.Duration(c.Breaker.Timeout),
	}
}

// Link returns the site URL to link the RSS feed to.
func (c *Config) Link() *url.URL {
	if c.SiteURL == "" {
		return nil
	}
	return url.MustURL(c.SiteURL)
}

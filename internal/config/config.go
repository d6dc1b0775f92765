// Package config loads orglist settings from a YAML file, environment
// variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/orglist/internal/collection"
	"github.com/rshade/orglist/internal/listview"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig   = "ORGLIST_CONFIG"
	EnvBaseURL  = "ORGLIST_BASE_URL"
	EnvToken    = "ORGLIST_TOKEN" //nolint:gosec // G101: variable name, not a credential.
	EnvLogLevel = "ORGLIST_LOG_LEVEL"
)

// Defaults.
const (
	DefaultBaseURL = "http://localhost:8052"
	DefaultTimeout = 10 * time.Second
	configDirName  = ".orglist"
	configFileName = "config.yaml"
)

// Validation errors.
var (
	ErrEmptyBaseURL   = errors.New("endpoint.base_url must not be empty")
	ErrInvalidTimeout = errors.New("endpoint.timeout must be positive")
)

// Config is the complete orglist configuration.
type Config struct {
	Endpoint EndpointConfig `yaml:"endpoint"`
	List     ListConfig     `yaml:"list"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// EndpointConfig locates the collection endpoint.
type EndpointConfig struct {
	BaseURL        string        `yaml:"base_url"`
	CollectionPath string        `yaml:"collection_path"`
	Timeout        time.Duration `yaml:"timeout"`
	Token          string        `yaml:"token,omitempty"`
}

// ListConfig holds the list defaults used when the location omits a key.
type ListConfig struct {
	PageSize        int    `yaml:"page_size"`
	PageSizeOptions []int  `yaml:"page_size_options"`
	OrderBy         string `yaml:"order_by"`
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// New returns a Config holding the built-in defaults.
func New() *Config {
	opts := listview.DefaultOptions()
	return &Config{
		Endpoint: EndpointConfig{
			BaseURL:        DefaultBaseURL,
			CollectionPath: collection.OrganizationsPath,
			Timeout:        DefaultTimeout,
		},
		List: ListConfig{
			PageSize:        opts.Defaults.PageSize,
			PageSizeOptions: slices.Clone(opts.PageSizeOptions),
			OrderBy:         opts.Defaults.OrderBy,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns $HOME/.orglist/config.yaml, or "" when no home
// directory can be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDirName, configFileName)
}

// Load builds a Config from defaults and the file at path. An empty path
// means DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults restores defaults for fields a replaced section left empty.
func (c *Config) fillDefaults() {
	def := New()
	if c.Endpoint.BaseURL == "" {
		c.Endpoint.BaseURL = def.Endpoint.BaseURL
	}
	if c.Endpoint.CollectionPath == "" {
		c.Endpoint.CollectionPath = def.Endpoint.CollectionPath
	}
	if c.Endpoint.Timeout == 0 {
		c.Endpoint.Timeout = def.Endpoint.Timeout
	}
	if c.List.PageSize == 0 {
		c.List.PageSize = def.List.PageSize
	}
	if len(c.List.PageSizeOptions) == 0 {
		c.List.PageSizeOptions = def.List.PageSizeOptions
	}
	if c.List.OrderBy == "" {
		c.List.OrderBy = def.List.OrderBy
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvBaseURL); ok && v != "" {
		c.Endpoint.BaseURL = v
	}
	if v, ok := lookupEnv(EnvToken); ok && v != "" {
		c.Endpoint.Token = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for values the list cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint.BaseURL) == "" {
		return ErrEmptyBaseURL
	}
	if c.Endpoint.Timeout <= 0 {
		return fmt.Errorf("%w, got %s", ErrInvalidTimeout, c.Endpoint.Timeout)
	}
	if err := c.ListOptions().Validate(); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return nil
}

// ListOptions converts the list section into listview options.
func (c *Config) ListOptions() listview.Options {
	opts := listview.DefaultOptions()
	opts.PageSizeOptions = slices.Clone(c.List.PageSizeOptions)
	opts.Defaults.PageSize = c.List.PageSize
	opts.Defaults.OrderBy = c.List.OrderBy
	return opts
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

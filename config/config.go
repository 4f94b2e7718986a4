package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/pkg/security"
	"github.com/MohamedSadiq102/context.Orion-LD/vocabulary"
)

// Config represents the complete application configuration
type Config struct {
	Version string        `json:"version,omitempty" yaml:"version,omitempty"` // Semantic version (e.g., "1.0.0")
	Broker  BrokerConfig  `json:"broker" yaml:"broker"`
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Context ContextConfig `json:"context" yaml:"context"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// BrokerConfig holds the NGSI-LD namespace settings
type BrokerConfig struct {
	DefaultURL     string `json:"default_url" yaml:"default_url"`           // Fast-path prefix stripped from names
	CoreContextURL string `json:"core_context_url" yaml:"core_context_url"` // Context of entities without @context
}

// FetchConfig controls remote @context downloads
type FetchConfig struct {
	Timeout      time.Duration            `json:"timeout" yaml:"timeout"`
	PoolSize     int                      `json:"pool_size" yaml:"pool_size"` // Handles per host
	MaxBodyBytes int                      `json:"max_body_bytes" yaml:"max_body_bytes"`
	MaxRedirects int                      `json:"max_redirects" yaml:"max_redirects"`
	TLS          security.ClientTLSConfig `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// ContextConfig controls @context interpretation
type ContextConfig struct {
	MaxDepth int `json:"max_depth" yaml:"max_depth"` // Nested remote context depth
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Port    int    `json:"port" yaml:"port"`
	Path    string `json:"path" yaml:"path"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // json, text
}

// Default returns the built-in configuration every loaded layer is merged onto
func Default() *Config {
	return &Config{
		Broker: BrokerConfig{
			DefaultURL:     vocabulary.DefaultURL,
			CoreContextURL: vocabulary.CoreContextURL,
		},
		Fetch: FetchConfig{
			Timeout:      5 * time.Second,
			PoolSize:     8,
			MaxBodyBytes: 1 << 20,
			MaxRedirects: 10,
		},
		Context: ContextConfig{MaxDepth: 8},
		Metrics: MetricsConfig{Port: 9090, Path: "/metrics"},
		Log:     LogConfig{Level: "info", Format: "json"},
	}
}

// SafeConfig provides thread-safe access to configuration
type SafeConfig struct {
	mu     sync.RWMutex
	config *Config
}

// NewSafeConfig creates a new thread-safe config wrapper
func NewSafeConfig(cfg *Config) *SafeConfig {
	if cfg == nil {
		cfg = Default()
	}
	return &SafeConfig{config: cfg}
}

// Get returns a deep copy of the current configuration
func (sc *SafeConfig) Get() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config.Clone()
}

// Update atomically updates the configuration after validation
func (sc *SafeConfig) Update(cfg *Config) error {
	if cfg == nil {
		return errors.WrapInvalid(errors.ErrMissingConfig, "SafeConfig", "Update", "nil config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg
	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return Default()
	}

	data, err := json.Marshal(c)
	if err != nil {
		copied := *c
		return &copied
	}

	var clone Config
	if err := json.Unmarshal(data, &clone); err != nil {
		copied := *c
		return &copied
	}
	return &clone
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.Version != "" {
		if _, _, _, err := parseSemVer(c.Version); err != nil {
			return invalid("version", err.Error())
		}
	}

	if err := validateURL("broker.default_url", c.Broker.DefaultURL); err != nil {
		return err
	}
	if err := validateURL("broker.core_context_url", c.Broker.CoreContextURL); err != nil {
		return err
	}

	if c.Fetch.Timeout <= 0 {
		return invalid("fetch.timeout", "must be positive")
	}
	if c.Fetch.PoolSize <= 0 {
		return invalid("fetch.pool_size", "must be positive")
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		return invalid("fetch.max_body_bytes", "must be positive")
	}
	if c.Fetch.MaxRedirects < 0 {
		return invalid("fetch.max_redirects", "must not be negative")
	}
	if err := validateTLSVersion(c.Fetch.TLS.MinVersion); err != nil {
		return invalid("fetch.tls.min_version", err.Error())
	}
	if c.Fetch.TLS.MTLS.Enabled && (c.Fetch.TLS.MTLS.CertFile == "" || c.Fetch.TLS.MTLS.KeyFile == "") {
		return invalid("fetch.tls.mtls", "cert_file and key_file are required when mTLS is enabled")
	}

	if c.Context.MaxDepth <= 0 {
		return invalid("context.max_depth", "must be positive")
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			return invalid("metrics.port", fmt.Sprintf("invalid port %d", c.Metrics.Port))
		}
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			return invalid("metrics.path", "must start with /")
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log.level", fmt.Sprintf("unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return invalid("log.format", fmt.Sprintf("unknown format %q", c.Log.Format))
	}

	return nil
}

func invalid(field, msg string) error {
	return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate", field+": "+msg)
}

func validateURL(field, raw string) error {
	if raw == "" {
		return invalid(field, "is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalid(field, fmt.Sprintf("%q is not an absolute URL", raw))
	}
	return nil
}

// validateTLSVersion checks if a TLS version string is valid; empty selects the default
func validateTLSVersion(version string) error {
	switch version {
	case "", "1.2", "1.3":
		return nil
	default:
		return fmt.Errorf("invalid TLS version %q (must be \"1.2\" or \"1.3\")", version)
	}
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.WrapInvalid(err, "Config", "SaveToFile", "marshal config")
	}
	return safeWriteFile(path, data)
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// CompareVersions compares two semver version strings
// Returns:
//
//	-1 if v1 < v2
//	 0 if v1 == v2
//	 1 if v1 > v2
//	error if either version is invalid
func CompareVersions(v1, v2 string) (int, error) {
	a, err := semVer(v1)
	if err != nil {
		return 0, err
	}
	b, err := semVer(v2)
	if err != nil {
		return 0, err
	}

	for i := range a {
		switch {
		case a[i] > b[i]:
			return 1, nil
		case a[i] < b[i]:
			return -1, nil
		}
	}
	return 0, nil
}

func semVer(v string) ([3]int, error) {
	major, minor, patch, err := parseSemVer(v)
	if err != nil {
		return [3]int{}, errors.WrapInvalid(err, "config", "CompareVersions", fmt.Sprintf("parse version %q", v))
	}
	return [3]int{major, minor, patch}, nil
}

// parseSemVer parses a semantic version string (e.g., "1.2.3")
func parseSemVer(version string) (int, int, int, error) {
	if version == "" {
		return 0, 0, 0, fmt.Errorf("version cannot be empty")
	}

	version = strings.TrimPrefix(version, "v")

	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("version must be in format 'major.minor.patch', got '%s'", version)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, 0, 0, fmt.Errorf("invalid version component '%s'", p)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

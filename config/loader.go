package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
)

// EnvPrefix prefixes every environment override, e.g. ORIONLD_LOG_LEVEL.
const EnvPrefix = "ORIONLD"

// Loader handles configuration loading with layers and overrides
type Loader struct {
	layers     []string
	validation bool
	envPrefix  string
	lookupEnv  func(string) (string, bool)
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		envPrefix: EnvPrefix,
		lookupEnv: os.LookupEnv,
	}
}

// AddLayer adds a configuration file layer. Later layers override earlier ones.
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// EnableValidation enables or disables configuration validation
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// LoadFile loads configuration from a single file
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load merges all layers onto the defaults, then applies environment overrides
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	for _, path := range l.layers {
		raw, err := l.loadRaw(path)
		if err != nil {
			return nil, err
		}
		cfg, err = mergeFromMap(cfg, raw)
		if err != nil {
			return nil, errors.WrapInvalid(err, "Loader", "Load", "merge "+path)
		}
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loadRaw reads one layer as a generic map. YAML files are decoded with
// yaml.v3, anything else as JSON.
func (l *Loader) loadRaw(path string) (map[string]any, error) {
	data, err := safeReadFile(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Loader", "loadRaw", "read "+path)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.WrapInvalid(err, "Loader", "loadRaw", "decode YAML "+path)
		}
	default:
		if err := validateJSONDepth(data); err != nil {
			return nil, errors.WrapInvalid(err, "Loader", "loadRaw", "invalid JSON structure in "+path)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.WrapInvalid(err, "Loader", "loadRaw", "decode JSON "+path)
		}
	}

	if err := parseDurations(raw); err != nil {
		return nil, errors.WrapInvalid(err, "Loader", "loadRaw", "parse durations in "+path)
	}
	return raw, nil
}

// parseDurations converts duration strings to nanoseconds for json unmarshaling
func parseDurations(data map[string]any) error {
	fetch, ok := data["fetch"].(map[string]any)
	if !ok {
		return nil
	}
	if s, ok := fetch["timeout"].(string); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		fetch["timeout"] = d.Nanoseconds()
	}
	return nil
}

// mergeFromMap merges configuration from a raw map, only overriding fields present in the map
func mergeFromMap(base *Config, override map[string]any) (*Config, error) {
	if override == nil {
		return base, nil
	}

	baseJSON, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}
	var baseMap map[string]any
	if err := json.Unmarshal(baseJSON, &baseMap); err != nil {
		return nil, err
	}

	mergedJSON, err := json.Marshal(deepMergeMaps(baseMap, override))
	if err != nil {
		return nil, err
	}
	var merged Config
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// deepMergeMaps recursively merges two maps, with override taking precedence
func deepMergeMaps(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base))
	for k, v := range base {
		result[k] = v
	}

	for k, v := range override {
		if v == nil {
			continue
		}
		if baseMap, ok := base[k].(map[string]any); ok {
			if overrideMap, ok := v.(map[string]any); ok {
				result[k] = deepMergeMaps(baseMap, overrideMap)
				continue
			}
		}
		result[k] = v
	}
	return result
}

// applyEnvOverrides applies environment variable overrides
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	str := func(name string, dst *string) error {
		v, ok, err := l.env(name)
		if ok {
			*dst = v
		}
		return err
	}

	if err := str("DEFAULT_URL", &cfg.Broker.DefaultURL); err != nil {
		return err
	}
	if err := str("CORE_CONTEXT_URL", &cfg.Broker.CoreContextURL); err != nil {
		return err
	}
	if err := str("LOG_LEVEL", &cfg.Log.Level); err != nil {
		return err
	}
	if err := str("LOG_FORMAT", &cfg.Log.Format); err != nil {
		return err
	}

	if v, ok, err := l.env("FETCH_TIMEOUT"); err != nil {
		return err
	} else if ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.WrapInvalid(err, "Loader", "applyEnvOverrides", l.envPrefix+"_FETCH_TIMEOUT")
		}
		cfg.Fetch.Timeout = d
	}

	if v, ok, err := l.env("FETCH_POOL_SIZE"); err != nil {
		return err
	} else if ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.WrapInvalid(err, "Loader", "applyEnvOverrides", l.envPrefix+"_FETCH_POOL_SIZE")
		}
		cfg.Fetch.PoolSize = n
	}

	return nil
}

// env returns a non-empty, validated environment value
func (l *Loader) env(name string) (string, bool, error) {
	key := l.envPrefix + "_" + name
	v, ok := l.lookupEnv(key)
	if !ok || v == "" {
		return "", false, nil
	}
	if err := validateEnvVar(key, v); err != nil {
		return "", false, errors.WrapInvalid(err, "Loader", "applyEnvOverrides", key)
	}
	return v, true, nil
}

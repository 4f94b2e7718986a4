package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath   string
	InputPath    string
	EndpointPath string
	Attrs        string
	OneHit       bool
	JSONLD       bool
	LogLevel     string
	LogFormat    string
	MetricsPort  int
	ShowVersion  bool
	ShowHelp     bool
	Validate     bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*CLIConfig, error) {
	cfg := &CLIConfig{}

	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("ORIONLD_CONFIG", ""),
		"Path to a JSON or YAML configuration file (env: ORIONLD_CONFIG)")
	fs.StringVar(&cfg.ConfigPath, "c",
		getEnv("ORIONLD_CONFIG", ""),
		"Path to a JSON or YAML configuration file (env: ORIONLD_CONFIG)")

	fs.StringVar(&cfg.InputPath, "input", "-", "Backend batch JSON file, - for stdin")
	fs.StringVar(&cfg.EndpointPath, "endpoint", "", "Validate an endpoint JSON file instead of rendering")
	fs.StringVar(&cfg.Attrs, "attrs", "", "Comma-separated attribute names to include; empty includes all")
	fs.BoolVar(&cfg.OneHit, "one-hit", false, "Render a single entity instead of an array")
	fs.BoolVar(&cfg.JSONLD, "jsonld", false, "Render application/ld+json with an embedded @context")

	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("ORIONLD_LOG_LEVEL", ""),
		"Log level: debug, info, warn, error (env: ORIONLD_LOG_LEVEL)")
	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("ORIONLD_LOG_FORMAT", ""),
		"Log format: json, text (env: ORIONLD_LOG_FORMAT)")

	fs.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("ORIONLD_METRICS_PORT", 0),
		"Metrics server port, 0 to disable (env: ORIONLD_METRICS_PORT)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	fs.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	fs.Usage = func() {
		printDetailedHelp(fs)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	if cfg.LogLevel != "" && !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	if cfg.LogFormat != "" && !slices.Contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	return nil
}

func printDetailedHelp(fs *flag.FlagSet) {
	out := fs.Output()
	_, _ = fmt.Fprintf(out, `%s - render NGSI-LD query results

Usage: %s [options]

Options:
`, appName, appName)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(out, `
Examples:
  # Render a backend batch as a single entity with Link headers
  %s --input=batch.json --one-hit

  # Render JSON-LD, keeping only two attributes
  %s --input=batch.json --jsonld --attrs=https://example.org/ns/speed,https://example.org/ns/owner

  # Validate a notification endpoint
  %s --endpoint=endpoint.json

Version: %s
Build: %s
`, appName, appName, appName, Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Package main implements orionld-render, a command that turns backend
// query results into NGSI-LD JSON or JSON-LD documents, resolving each
// entity's @context on the way.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/MohamedSadiq102/context.Orion-LD/config"
	"github.com/MohamedSadiq102/context.Orion-LD/metric"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "orionld-render"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		slog.Error("Render failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	cliCfg, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if cliCfg.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp(fs)
		return nil
	}

	cfg, err := initializeConfiguration(cliCfg)
	if err != nil {
		return err
	}

	logger := setupLogger(stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	if cliCfg.Validate {
		logger.Info("Configuration is valid")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := metric.NewMetricsRegistry()
	a, err := newApp(ctx, cfg, registry, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.Metrics.Enabled {
		server := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, registry)
		server.SetHealthMonitor(a.monitor)
		go func() {
			if err := server.Start(); err != nil {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
		defer func() { _ = server.Stop() }()
		logger.Info("Metrics server started", "address", server.Address())
	}

	if cliCfg.EndpointPath != "" {
		data, err := os.ReadFile(cliCfg.EndpointPath)
		if err != nil {
			return fmt.Errorf("read endpoint: %w", err)
		}
		return a.validateEndpoint(data, stdout)
	}

	in := stdin
	if cliCfg.InputPath != "-" {
		f, err := os.Open(cliCfg.InputPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	return a.render(in, renderOptions(cliCfg), stdout)
}

// initializeConfiguration loads the optional config file, applies flag
// overrides and validates the result
func initializeConfiguration(cliCfg *CLIConfig) (*config.Config, error) {
	loader := config.NewLoader()
	if cliCfg.ConfigPath != "" {
		loader.AddLayer(cliCfg.ConfigPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cliCfg.LogLevel != "" {
		cfg.Log.Level = cliCfg.LogLevel
	}
	if cliCfg.LogFormat != "" {
		cfg.Log.Format = cliCfg.LogFormat
	}
	if cliCfg.MetricsPort > 0 {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Port = cliCfg.MetricsPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Package main is the entry point for the polis-desktop binary.
// It runs the headless desktop host and supervises the bundled Node sidecar.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/polisai/polis-desktop/pkg/host"
	"github.com/polisai/polis-desktop/pkg/logging"
	"github.com/polisai/polis-desktop/pkg/sidecar"
	"github.com/polisai/polis-desktop/pkg/telemetry"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// CLIConfig holds the parsed CLI configuration
type CLIConfig struct {
	Config      string
	ResourceDir string
	LogLevel    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command for polis-desktop
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "polis-desktop",
		Short: "Polis desktop host",
		Long: `Runs the Polis desktop host and its bundled sidecar service.

On startup the host looks for <resources>/sidecar/dist/index.js and launches it
with node. The sidecar is killed when the host closes (SIGINT/SIGTERM).
If the script is missing the host runs without it (development mode).

Example:
  polis-desktop --resource-dir ./resources --log-level debug`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDesktop,
	}

	rootCmd.Flags().StringP("config", "c", "", "Path to configuration file (YAML)")
	rootCmd.Flags().StringP("resource-dir", "r", "", "Resource directory (default: <executable dir>/resources)")
	rootCmd.Flags().StringP("log-level", "l", "", "Log level (debug, info, warn, error); overrides the config file")

	return rootCmd
}

// parseCLIConfig parses command line flags into a CLIConfig
func parseCLIConfig(cmd *cobra.Command) (*CLIConfig, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	resourceDir, err := cmd.Flags().GetString("resource-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get resource-dir flag: %w", err)
	}

	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}

	return &CLIConfig{
		Config:      configPath,
		ResourceDir: resourceDir,
		LogLevel:    logLevel,
	}, nil
}

// loadConfig returns defaults when no path is given and the parsed file otherwise
func loadConfig(path string) (*sidecar.Config, *sidecar.ConfigLoader, error) {
	if path == "" {
		return sidecar.DefaultConfig(), nil, nil
	}

	loader, err := sidecar.NewConfigLoader(path, slog.Default())
	if err != nil {
		return nil, nil, err
	}
	config, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}

	return config, loader, nil
}

// tracingConfig maps the file configuration onto telemetry bootstrap options
func tracingConfig(cfg sidecar.TracingConfig) telemetry.Config {
	return telemetry.Config{
		Enabled:      cfg.Enabled,
		ServiceName:  cfg.ServiceName,
		Version:      version,
		Endpoint:     cfg.Endpoint,
		Insecure:     cfg.Insecure,
		Headers:      cfg.Headers,
		ResourceTags: cfg.ResourceTags,
	}
}

func buildLocator(resourceDir string) host.ResourceLocator {
	if resourceDir != "" {
		return host.StaticLocator(resourceDir)
	}
	return host.ExecutableLocator{}
}

// runDesktop is the main entry point for the root command
func runDesktop(cmd *cobra.Command, args []string) error {
	cliConfig, err := parseCLIConfig(cmd)
	if err != nil {
		return err
	}

	config, loader, err := loadConfig(cliConfig.Config)
	if err != nil {
		return err
	}

	level := config.Logging.Level
	if cliConfig.LogLevel != "" {
		level = cliConfig.LogLevel
	}
	logger, levelVar := logging.NewLeveledLogger(logging.Config{
		Level:  level,
		Format: config.Logging.Format,
	})
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	shutdownTracing, err := telemetry.SetupProvider(ctx, tracingConfig(config.Tracing))
	if err != nil {
		logger.Warn("Tracing disabled", "error", err)
	} else {
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(flushCtx); err != nil {
				logger.Warn("Failed to flush traces", "error", err)
			}
		}()
	}

	metrics := sidecar.NewMetrics()
	if config.Metrics.Enabled {
		srv := serveMetrics(logger, metrics, config.Metrics)
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(stopCtx)
		}()
	}

	if loader != nil {
		if err := loader.Watch(func(c *sidecar.Config) {
			if cliConfig.LogLevel == "" {
				levelVar.Set(logging.ParseLevel(c.Logging.Level))
			}
		}); err != nil {
			logger.Warn("Failed to start config watcher", "error", err)
		}
		defer loader.Close()
	}

	sup := sidecar.NewSupervisor(logger,
		sidecar.WithRuntime(config.Sidecar.Runtime),
		sidecar.WithEnv(config.Sidecar.EnvList()...),
		sidecar.WithDisabled(!config.Sidecar.Enabled),
		sidecar.WithRecorder(metrics),
	)

	b := host.NewBuilder(buildLocator(cliConfig.ResourceDir), logger)
	registerSidecar(b, sup)

	return b.Run(ctx)
}

// registerSidecar wires the supervisor into the host lifecycle: Initialize
// during setup and Shutdown on CloseRequested.
func registerSidecar(b *host.Builder, sup *sidecar.Supervisor) {
	b.Setup(func(ctx context.Context, app *host.App) error {
		root, err := app.ResourceDir()
		if err != nil {
			return fmt.Errorf("failed to get resource dir: %w", err)
		}

		state, err := sup.Initialize(ctx, root)
		if err != nil {
			return err
		}
		app.Manage(state)
		return nil
	})

	b.OnWindowEvent(func(ctx context.Context, app *host.App, ev host.WindowEvent) {
		if _, ok := ev.(host.CloseRequested); !ok {
			return
		}
		if state, ok := host.StateOf[*sidecar.State](app); ok {
			sup.Shutdown(ctx, state)
		}
	})
}

func serveMetrics(logger *slog.Logger, metrics *sidecar.Metrics, cfg sidecar.MetricsConfig) *http.Server {
	path := cfg.Path
	if path == "" {
		path = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Serving metrics", "addr", cfg.Addr, "path", path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Metrics server stopped", "error", err)
		}
	}()

	return srv
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"github.com/a3tai/mcp-planning-hours/internal/config"
	"github.com/a3tai/mcp-planning-hours/internal/ingest"
	"github.com/a3tai/mcp-planning-hours/internal/logging"
	"github.com/a3tai/mcp-planning-hours/internal/mcp"
	"github.com/a3tai/mcp-planning-hours/internal/metrics"
	"github.com/a3tai/mcp-planning-hours/internal/pdf"
	"github.com/a3tai/mcp-planning-hours/internal/schedule"
	"github.com/a3tai/mcp-planning-hours/internal/store"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	cfg, err := config.LoadFromFlags()
	if errors.Is(err, config.ErrVersionRequested) {
		printVersion(os.Stdout)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.Version = version
	}

	logger := logging.Must(logging.ZapConfig{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogFormat,
		Stdio:    cfg.IsStdioMode(),
	})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// run wires the store, service, optional inbox watcher and MCP server, and
// blocks until ctx is cancelled or the server fails.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Debug("starting with configuration", zap.Stringer("config", cfg))

	st, closeStore, err := store.Open(ctx, cfg.DatabaseURL, logger.Named("store"))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer closeStore()

	m := metrics.New()
	svc, err := pdf.NewService(cfg.MaxFileSize, cfg.PDFDirectory,
		pdf.WithStore(st),
		pdf.WithLogger(logger.Named("pdf")),
		pdf.WithMetrics(m),
		pdf.WithCacheTTL(cfg.CacheTTL),
		pdf.WithParser(schedule.NewParser(schedule.WithLogger(logger.Named("parser")))),
	)
	if err != nil {
		return fmt.Errorf("failed to create planning service: %w", err)
	}

	server, err := mcp.NewServer(cfg, svc, mcp.WithLogger(logger.Named("mcp")), mcp.WithMetrics(m))
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if cfg.Watch {
		watcher := ingest.NewWatcher(cfg.PDFDirectory, svc,
			ingest.WithLogger(logger.Named("ingest")),
			ingest.WithExisting(true),
		)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("inbox watcher stopped", zap.Error(err))
			}
		}()
	}

	return server.Run(ctx)
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "MCP Planning Hours\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}

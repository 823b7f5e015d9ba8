// Command investormcp serves the VC investor dataset over the Model Context
// Protocol.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/iamfaham/investor-data-mcp/internal/config"
	"github.com/iamfaham/investor-data-mcp/internal/health"
	"github.com/iamfaham/investor-data-mcp/internal/observe"
	"github.com/iamfaham/investor-data-mcp/internal/server"
	"github.com/iamfaham/investor-data-mcp/internal/tablestore"
	"github.com/iamfaham/investor-data-mcp/internal/tools/investortool"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "", "path to the YAML configuration file (empty: environment only)")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "investormcp: %v\n", err)
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	// Logs go to stderr: with the stdio transport, stdout belongs to the
	// protocol.
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("investormcp starting",
		"version", version,
		"transport", cfg.Server.Transport,
		"table", cfg.Supabase.Table,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Metrics provider ──────────────────────────────────────────────────────
	metricsShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise metrics", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsShutdown(shutdownCtx); err != nil {
			slog.Warn("metrics shutdown error", "err", err)
		}
	}()

	// ── Table store ───────────────────────────────────────────────────────────
	store, backend, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to build table store", "err", err)
		return 1
	}
	defer cleanup()
	slog.Info("table store ready", "backend", backend)

	// ── MCP server ────────────────────────────────────────────────────────────
	var svcOpts []investortool.Option
	if cfg.Server.SuggestNames {
		svcOpts = append(svcOpts, investortool.WithNameSuggestions())
	}
	svc := investortool.New(store, cfg.Supabase.Table, backend, svcOpts...)
	srv := server.New(svc, version, cfg.Server, logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(ctx)
	})

	// ── Admin listener (optional) ─────────────────────────────────────────────
	if cfg.Server.AdminAddr != "" {
		g.Go(func() error {
			return runAdmin(ctx, cfg.Server.AdminAddr, store, cfg.Supabase.Table)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// buildStore constructs the configured table store backend. A DSN selects the
// direct-Postgres backend; otherwise the Supabase REST backend is used. When
// no credentials are configured at all, the server still starts and every
// tool call reports the missing configuration.
func buildStore(ctx context.Context, cfg *config.Config) (store tablestore.Store, backend string, cleanup func(), err error) {
	cleanup = func() {}

	if cfg.Postgres.DSN != "" {
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, "", nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return tablestore.NewPostgresStore(pool), "postgres", pool.Close, nil
	}

	rest, err := tablestore.NewRESTStore(cfg.Supabase.URL, cfg.Supabase.Key)
	if err != nil {
		if errors.Is(err, tablestore.ErrNotConfigured) {
			slog.Warn("no supabase credentials configured; tool calls will fail until they are set")
			return tablestore.Unconfigured(), "supabase", cleanup, nil
		}
		return nil, "", nil, err
	}
	return rest, "supabase", cleanup, nil
}

// runAdmin serves /metrics, /healthz, and /readyz on addr until ctx ends.
// Readiness probes the table store with a single-row fetch.
func runAdmin(ctx context.Context, addr string, store tablestore.Store, table string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	health.New(health.TableChecker(store, table)).Register(mux)

	srv := &http.Server{Addr: addr, Handler: mux}

	errc := make(chan error, 1)
	go func() {
		slog.Info("admin listener ready", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("admin listener on %s: %w", addr, err)
		}
		return nil
	}
}

// newLogger builds the process logger at the configured level, writing
// human-readable lines to stderr.
func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

/*
main.go - Application entry point

PURPOSE:
  Starts the leave policy rule builder server: one working rule list, the
  saved policy store and the HTTP API in front of them.

STARTUP SEQUENCE:
  1. Read configuration (YAML file + env overrides)
  2. Set up the logger for the environment
  3. Load the condition catalog (embedded or from catalog_path)
  4. Open the saved policy medium (sqlite, mysql or memory)
  5. Create the session, handler and router
  6. Serve until SIGINT/SIGTERM, then shut down gracefully

COMMAND-LINE FLAGS:
  -config  Path to the YAML config (default: $CONFIG_PATH)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection
  4. Exit

EXAMPLES:
  # Run with the sample config
  ./server -config=./config/local.yaml

  # Run with in-memory storage and no config file
  STORAGE_DRIVER=memory ./server

SEE ALSO:
  - internal/config/config.go: Configuration
  - api/server.go: Router configuration
  - workspace/session.go: The working set
*/
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

	"golang.org/x/sync/errgroup"

	"github.com/warp/leave-rules/api"
	"github.com/warp/leave-rules/catalog"
	"github.com/warp/leave-rules/internal/config"
	"github.com/warp/leave-rules/policy"
	"github.com/warp/leave-rules/rules"
	"github.com/warp/leave-rules/store/mysql"
	"github.com/warp/leave-rules/store/sqlite"
	"github.com/warp/leave-rules/workspace"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "", "path to the YAML config (default: $CONFIG_PATH)")
	flag.Parse()

	cfg := config.MustLoad(config.Path(*configPath))
	log := setupLogger(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	log.Info("catalog loaded", slog.Int("condition_types", cat.Len()), slog.String("path", cfg.CatalogPath))

	medium, closeMedium, err := openMedium(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeMedium()
	log.Info("storage opened", slog.String("driver", cfg.Storage.Driver))

	store := policy.NewStore(medium, cfg.Storage.SlotKey, log.With(slog.String("component", "policy.Store")))
	session := workspace.NewSession(rules.NewEngine(cat), store, workspace.WithLogger(log))
	handler := api.NewHandler(session, cat, log.With(slog.String("component", "api")))

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      api.NewRouter(handler, cfg.CORS.AllowedOrigins),
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// openMedium opens the configured saved policy medium and returns its closer.
func openMedium(ctx context.Context, cfg config.Storage) (policy.Medium, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return policy.NewMemoryMedium(), func() {}, nil
	case config.DriverMySQL:
		s, err := mysql.New(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	default:
		s, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	}
}

func setupLogger(env string) *slog.Logger {
	var h slog.Handler
	switch env {
	case config.EnvDev:
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	case config.EnvProd:
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h)
}

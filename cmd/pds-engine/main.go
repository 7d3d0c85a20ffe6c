package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pwpl/pds-engine/internal/api"
	"github.com/pwpl/pds-engine/internal/archive"
	"github.com/pwpl/pds-engine/internal/cache"
	"github.com/pwpl/pds-engine/internal/catalog"
	"github.com/pwpl/pds-engine/internal/cleanup"
	"github.com/pwpl/pds-engine/internal/config"
	"github.com/pwpl/pds-engine/internal/datasheets"
	"github.com/pwpl/pds-engine/internal/export"
	"github.com/pwpl/pds-engine/internal/health"
	"github.com/pwpl/pds-engine/internal/report"
	"github.com/pwpl/pds-engine/internal/sheets"
	"github.com/pwpl/pds-engine/internal/specs"
	"github.com/pwpl/pds-engine/internal/storage"
	"github.com/pwpl/pds-engine/migrations"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting pds-engine",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	registry := health.NewRegistry()
	var closers []func() error

	// Initialize repository
	var repo storage.Repository
	if cfg.Database.DSN == "" {
		slog.Warn("no database DSN configured, using in-memory repository")
		mem := storage.NewMemoryRepository()
		repo = mem
		registry.Register("repository", health.Func{Kind: "memory", Probe: mem.Ping})
	} else {
		slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
		if err := storage.MigrateFromDSN(initCtx, cfg.Database.DSN, migrationsFS(cfg.Database.MigrationsDir)); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		pg, err := storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
			DSN:          cfg.Database.DSN,
			MaxOpenConns: int32(cfg.Database.MaxOpenConns),
			MaxIdleConns: int32(cfg.Database.MaxIdleConns),
		})
		if err != nil {
			slog.Error("failed to create database repository", "error", err)
			os.Exit(1)
		}
		slog.Info("database connected successfully")
		repo = pg
		closers = append(closers, pg.Close)

		checker, err := health.NewPostgresChecker(cfg.Database.DSN)
		if err != nil {
			slog.Error("failed to create postgres checker", "error", err)
			os.Exit(1)
		}
		registry.Register("postgres", checker)
		closers = append(closers, checker.Close)
	}

	// Initialize sheet cache
	var sheetCache cache.Client
	if cfg.Redis.Address == "" {
		sheetCache = cache.NewMemoryClient()
	} else {
		rc, err := cache.NewRedisClient(initCtx, cache.RedisConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			slog.Warn("redis unavailable, using in-memory cache", "address", cfg.Redis.Address, "error", err)
			sheetCache = cache.NewMemoryClient()
		} else {
			sheetCache = rc
			checker := health.NewRedisChecker(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
			registry.Register("redis", checker)
			closers = append(closers, checker.Close)
		}
	}
	closers = append(closers, sheetCache.Close)

	// Load standards catalog
	catalogLoader, err := catalog.NewDefaultLoader()
	if err != nil {
		slog.Error("failed to load built-in catalog", "error", err)
		os.Exit(1)
	}
	if _, err := os.Stat(cfg.Catalog.Dir); err == nil {
		if err := catalogLoader.LoadFromDir(cfg.Catalog.Dir); err != nil {
			slog.Warn("failed to load catalog from dir", "dir", cfg.Catalog.Dir, "error", err)
		}
	}

	loc, _ := cfg.Location()
	renderer := report.NewRenderer(
		report.WithPrintScript(cfg.Report.PrintScript),
		report.WithLocation(loc),
	)
	pipeline := report.NewPipeline(specs.NewPopulator(), report.NewAssembler())

	fetcher := sheets.NewFetcher(sheets.Config{
		Enabled:  cfg.Sheets.Enabled,
		BaseURLs: cfg.Sheets.URLs,
		Timeout:  cfg.Sheets.Timeout,
		CacheTTL: cfg.Redis.TTL,
	}, sheetCache)

	// Datasheet integration
	datasheetService := datasheets.NewService(repo)
	var integrator datasheets.Integrator
	switch {
	case !cfg.Datasheets.Enabled:
		slog.Info("datasheet integration disabled")
		integrator = datasheets.Disabled()
	case cfg.Datasheets.ServiceURL != "":
		slog.Info("using remote datasheet service", "url", cfg.Datasheets.ServiceURL)
		integrator = datasheets.NewRemoteClient(cfg.Datasheets.ServiceURL, cfg.Datasheets.Timeout)
	default:
		integrator = datasheetService
	}

	// Report archive and export
	var archiver *archive.Archiver
	var cleaner *cleanup.Cleaner
	if cfg.Archive.Enabled {
		var exporter archive.Exporter
		if cfg.Export.Enabled {
			s3Exporter, err := export.NewS3Exporter(initCtx, export.S3Config{
				Endpoint:  cfg.Export.Endpoint,
				Region:    cfg.Export.Region,
				Bucket:    cfg.Export.Bucket,
				Prefix:    cfg.Export.Prefix,
				AccessKey: cfg.Export.AccessKey,
				SecretKey: cfg.Export.SecretKey,
			})
			if err != nil {
				slog.Error("failed to create S3 exporter", "error", err)
				os.Exit(1)
			}
			exporter = s3Exporter
			registry.Register("s3", s3Exporter)
		}
		archiver = archive.NewArchiver(repo, renderer, exporter)
		cleaner = cleanup.NewCleaner(repo, cfg.Archive.CleanupInterval, cfg.Archive.Retention)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start cleanup worker
	if cleaner != nil {
		cleaner.Start(ctx)
	}

	// Setup HTTP server
	server := api.NewServer(cfg.Server, api.Deps{
		Pipeline:   pipeline,
		Renderer:   renderer,
		Fetcher:    fetcher,
		Integrator: integrator,
		Datasheets: datasheetService,
		Catalog:    catalogLoader,
		Repo:       repo,
		Archiver:   archiver,
		Health:     registry,
	})
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			slog.Error("close error", "error", err)
		}
	}

	slog.Info("pds-engine stopped")
}

// migrationsFS prefers migrations on disk so they can be patched without
// a rebuild
func migrationsFS(dir string) fs.FS {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return os.DirFS(dir)
	}
	return migrations.FS
}

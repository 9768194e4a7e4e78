package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"ssbg/internal/config"
	"ssbg/internal/core"
	"ssbg/internal/dataset"
	"ssbg/internal/dataset/google"
	"ssbg/internal/dataset/sqlite"
	apphttp "ssbg/internal/http"
	applog "ssbg/internal/log"
)

func main() {
	// Optional .env for local development; the environment wins.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	ctx := context.Background()

	source, closeSource, err := newSource(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize dataset source", applog.FieldError, err, applog.FieldSource, cfg.DataSource)
		os.Exit(1)
	}
	if closeSource != nil {
		defer closeSource()
	}

	loadCtx, cancelLoad := context.WithTimeout(ctx, 2*time.Minute)
	records, err := source.Load(loadCtx)
	cancelLoad()
	if err != nil {
		logger.Error("Failed to load dataset", applog.FieldError, err, applog.FieldSource, cfg.DataSource)
		os.Exit(1)
	}
	table := core.NewTable(records)
	logger.Info("Dataset loaded", applog.FieldSource, cfg.DataSource, applog.FieldRecords, table.Len())

	srv := apphttp.NewServer(":"+cfg.Port, table, apphttp.Options{
		CacheTTL:     cfg.CacheTTL,
		CacheEntries: cfg.CacheEntries,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		logger.Info("Starting ssbg server", "port", cfg.Port, applog.FieldSource, cfg.DataSource)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// newSource builds the dataset source selected by DATA_SOURCE. The returned
// cleanup closes any underlying handle and may be nil.
func newSource(ctx context.Context, cfg *config.Config) (dataset.Source, func(), error) {
	switch cfg.DataSource {
	case "sqlite":
		store, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "sheets":
		src, err := google.NewFromEnv(ctx)
		if err != nil {
			return nil, nil, err
		}
		return src, nil, nil
	default:
		return dataset.NewCSVSource(cfg.CSVPath), nil, nil
	}
}

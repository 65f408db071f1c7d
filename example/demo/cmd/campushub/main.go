package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore/memengine"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore/oteladapters"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore/postgresengine"
	"github.com/AntonStoeckl/campus-resource-hub/example/config"
	"github.com/AntonStoeckl/campus-resource-hub/example/demo"
	"github.com/AntonStoeckl/campus-resource-hub/shell"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		log.Fatalf("Failed to parse log level: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, shutdown, err := newObservability(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up observability: %v", err)
	}
	defer shutdown()

	archive, cleanup, err := openArchive(ctx, cfg, logger, obs)
	if err != nil {
		log.Fatalf("Failed to open %s archive: %v", cfg.Archive, err)
	}
	defer cleanup()

	logger.Info("campus hub demo starting", "archive", cfg.Archive, "observability", cfg.Observability)

	opts := demo.Options{
		Out:     os.Stdout,
		Archive: archive,
		Logger:  logger,
		Metrics: obs.metrics,
		Tracing: obs.tracing,
	}

	if err := demo.Run(ctx, opts); err != nil {
		logger.Error("campus hub demo failed", "error", err)
		cleanup()
		shutdown()
		os.Exit(1)
	}
}

// observability holds the collectors handed to the archive and the archivers.
// Both are nil unless CAMPUSHUB_OBSERVABILITY is set.
type observability struct {
	metrics eventstore.MetricsCollector
	tracing eventstore.TracingCollector
}

func newObservability(ctx context.Context, cfg config.Config) (observability, func(), error) {
	if !cfg.Observability {
		return observability{}, func() {}, nil
	}

	providers, err := config.NewObservabilityProviders(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return observability{}, func() {}, err
	}

	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Printf("Failed to shut down observability providers: %v", err)
		}
	}

	return observability{
		metrics: oteladapters.NewMetricsCollector(providers.Meter()),
		tracing: oteladapters.NewTracingCollector(providers.Tracer()),
	}, shutdown, nil
}

func openArchive(ctx context.Context, cfg config.Config, logger *slog.Logger, obs observability) (shell.Archive, func(), error) {
	noop := func() {}

	if cfg.Archive == config.ArchiveMemory {
		return memengine.NewArchive(memengine.WithLogger(logger)), noop, nil
	}

	options := []postgresengine.Option{
		postgresengine.WithTableName(cfg.ArchiveTable),
		postgresengine.WithLogger(logger),
	}

	if obs.metrics != nil {
		options = append(options, postgresengine.WithMetrics(obs.metrics))
	}

	if obs.tracing != nil {
		options = append(options, postgresengine.WithTracing(obs.tracing))
	}

	switch cfg.Archive {
	case config.ArchivePGX:
		return openPGXArchive(ctx, cfg, options)

	case config.ArchiveSQL:
		db, err := config.OpenSQLDB(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}

		archive, err := postgresengine.NewArchiveFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, noop, err
		}

		return archive, func() { _ = db.Close() }, nil

	case config.ArchiveSQLX:
		db, err := config.OpenSQLX(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}

		archive, err := postgresengine.NewArchiveFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, noop, err
		}

		return archive, func() { _ = db.Close() }, nil
	}

	return nil, noop, fmt.Errorf("%w: %s", config.ErrUnsupportedArchive, cfg.Archive)
}

func openPGXArchive(
	ctx context.Context,
	cfg config.Config,
	options []postgresengine.Option,
) (shell.Archive, func(), error) {

	primary, err := config.OpenPGXPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, func() {}, err
	}

	if cfg.PostgresReplicaDSN == "" {
		archive, err := postgresengine.NewArchiveFromPGXPool(primary, options...)
		if err != nil {
			primary.Close()
			return nil, func() {}, err
		}

		return archive, primary.Close, nil
	}

	var replica *pgxpool.Pool

	replica, err = config.OpenPGXPool(ctx, cfg.PostgresReplicaDSN)
	if err != nil {
		primary.Close()
		return nil, func() {}, err
	}

	closeBoth := func() {
		replica.Close()
		primary.Close()
	}

	archive, err := postgresengine.NewArchiveFromPGXPoolWithReplica(primary, replica, options...)
	if err != nil {
		closeBoth()
		return nil, func() {}, err
	}

	return archive, closeBoth, nil
}

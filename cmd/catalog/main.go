// Command catalog serves the coffee catalog HTTP API. Submitted reviews are
// optionally published to Kafka when REVIEW_EVENTS_ENABLED is set, and
// producer location checks are served when MAPBOX_TOKEN is set.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/coffee-catalog/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/coffee-catalog/internal/adapter/kafka"
	"github.com/couchcryptid/coffee-catalog/internal/adapter/mapbox"
	"github.com/couchcryptid/coffee-catalog/internal/catalog"
	"github.com/couchcryptid/coffee-catalog/internal/config"
	"github.com/couchcryptid/coffee-catalog/internal/observability"
	"github.com/couchcryptid/coffee-catalog/internal/pipeline"
	"github.com/couchcryptid/coffee-catalog/internal/review"
)

func main() {
	if err := run(); err != nil {
		slog.Error("catalog exited", "error", err)
		os.Exit(1)
	}
}

// allReady passes readiness only when every member does.
type allReady []sharedobs.ReadinessChecker

func (a allReady) CheckReadiness(ctx context.Context) error {
	for _, c := range a {
		if err := c.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	cat, err := catalog.Load(cfg.DataDir, logger)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	for kind, n := range cat.Counts() {
		metrics.CatalogEntities.WithLabelValues(kind).Set(float64(n))
	}
	ready := allReady{cat}

	// Review events are feature-flagged via REVIEW_EVENTS_ENABLED.
	var (
		publisher review.Publisher
		p         *pipeline.Pipeline
		writer    *kafkaadapter.Writer
	)
	if cfg.ReviewEventsEnabled {
		queue := pipeline.NewQueue(cfg.ReviewQueueSize, cfg.BatchFlushInterval, metrics)
		writer = kafkaadapter.NewWriter(cfg, logger)
		p = pipeline.New(queue, pipeline.NewTransformer(), writer, logger, metrics, cfg.BatchSize)
		publisher = queue
		ready = append(ready, p)
		logger.Info("review events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaReviewTopic)
	} else {
		logger.Info("review events disabled")
	}

	// Producer location checks are feature-flagged via MAPBOX_TOKEN.
	var locations httpadapter.Locations
	if cfg.MapboxToken != "" {
		client := mapbox.NewClient(cfg.MapboxToken, logger, metrics, mapbox.WithTimeout(cfg.MapboxTimeout))
		geocoder := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		locations = catalog.NewLocationChecker(cat, geocoder, cfg.MaxDriftKm, logger)
		logger.Info("producer location checks enabled", "max_drift_km", cfg.MaxDriftKm)
	}

	reviews := review.NewService(cat, review.NewStore(cfg.ReviewLimit), publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, catalog.NewCached(cat, cfg.QueryCacheSize, metrics), reviews, locations, ready, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if p != nil {
		g.Go(func() error { return p.Run(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	if writer != nil {
		if cerr := writer.Close(); cerr != nil {
			logger.Error("kafka writer close error", "error", cerr)
		}
	}
	logger.Info("shutdown complete")
	return err
}

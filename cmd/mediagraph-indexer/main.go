// Command mediagraph-indexer projects an exported chain event stream into
// the relational content graph. It reads newline-delimited JSON event
// envelopes, applies them strictly in order with one transaction per event,
// and serves Prometheus metrics while running.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/louisbranch/mediagraph/internal/metaprotocol"
	"github.com/louisbranch/mediagraph/internal/observability"
	"github.com/louisbranch/mediagraph/internal/pipeline"
	"github.com/louisbranch/mediagraph/internal/platform/config"
	"github.com/louisbranch/mediagraph/internal/platform/otel"
	"github.com/louisbranch/mediagraph/internal/projection"
	"github.com/louisbranch/mediagraph/internal/storage/sqlite"
)

type appConfig struct {
	DatabasePath string `env:"MEDIAGRAPH_DB_PATH" envDefault:"mediagraph.db"`
	EventsPath   string `env:"MEDIAGRAPH_EVENTS_PATH,required"`
	MetricsAddr  string `env:"MEDIAGRAPH_METRICS_ADDR" envDefault:":9090"`
	LogLevel     string `env:"MEDIAGRAPH_LOG_LEVEL" envDefault:"info"`
}

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg appConfig
	if err := config.ParseEnv(&cfg); err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, "mediagraph-indexer")
	if err != nil {
		log.Fatal().Err(err).Msg("setup tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("shutdown tracing")
		}
	}()

	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := observability.NewMetrics(registry)

	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.MetricsAddr).Msg("serving metrics")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server")
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	events, err := os.Open(cfg.EventsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open event stream")
	}
	defer events.Close()

	processor := pipeline.NewProcessor(
		store,
		projection.NewApplier(log),
		metaprotocol.NewTracker(store),
		metrics,
		log,
	)
	if err := processor.Run(ctx, pipeline.NewNDJSONSource(events)); err != nil {
		log.Fatal().Err(err).Msg("projection stopped")
	}
	log.Info().Msg("event stream exhausted")
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Catalog data and query settings.
	DataDir        string // empty uses the embedded dataset
	QueryCacheSize int
	ReviewLimit    int // reviews kept per coffee

	// Review event publishing.
	ReviewEventsEnabled bool
	KafkaBrokers        []string
	KafkaReviewTopic    string
	ReviewQueueSize     int
	BatchSize           int
	BatchFlushInterval  time.Duration

	// Mapbox geocoding configuration. Producer location checks are served
	// only when MapboxToken is set.
	MapboxToken     string
	MapboxTimeout   time.Duration
	MapboxCacheSize int
	MaxDriftKm      float64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", "5s"))
	if err != nil || mapboxTimeout <= 0 {
		return nil, errors.New("invalid MAPBOX_TIMEOUT")
	}

	maxDrift, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("GEOCHECK_MAX_DRIFT_KM", "75"), 64)
	if err != nil || maxDrift <= 0 {
		return nil, errors.New("invalid GEOCHECK_MAX_DRIFT_KM")
	}

	queryCacheSize, err := positiveInt("QUERY_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}
	reviewLimit, err := positiveInt("REVIEW_LIMIT", 100)
	if err != nil {
		return nil, err
	}
	queueSize, err := positiveInt("REVIEW_QUEUE_SIZE", 1024)
	if err != nil {
		return nil, err
	}
	mapboxCacheSize, err := positiveInt("MAPBOX_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	eventsEnabled, err := strconv.ParseBool(sharedcfg.EnvOrDefault("REVIEW_EVENTS_ENABLED", "false"))
	if err != nil {
		return nil, errors.New("invalid REVIEW_EVENTS_ENABLED")
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataDir:        os.Getenv("CATALOG_DATA_DIR"),
		QueryCacheSize: queryCacheSize,
		ReviewLimit:    reviewLimit,

		ReviewEventsEnabled: eventsEnabled,
		KafkaBrokers:        sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReviewTopic:    sharedcfg.EnvOrDefault("KAFKA_REVIEW_TOPIC", "coffee-reviews"),
		ReviewQueueSize:     queueSize,
		BatchSize:           batchSize,
		BatchFlushInterval:  flushInterval,

		MapboxToken:     os.Getenv("MAPBOX_TOKEN"),
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: mapboxCacheSize,
		MaxDriftKm:      maxDrift,
	}

	if cfg.ReviewEventsEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when REVIEW_EVENTS_ENABLED is true")
		}
		if cfg.KafkaReviewTopic == "" {
			return nil, errors.New("KAFKA_REVIEW_TOPIC is required when REVIEW_EVENTS_ENABLED is true")
		}
	}

	return cfg, nil
}

func positiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

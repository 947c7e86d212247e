package grantmatch

import (
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/ingestion"
	"github.com/poiesic/grantmatch/match"
)

// Option configures a Service.
type Option func(*options)

type options struct {
	aiConfig      *ai.Config
	provider      ai.AIProvider
	cachePath     string
	cacheInMemory bool
	buyers        ingestion.Source
	grants        ingestion.Source
	poolSize      int
	batchSize     int
	maxRetries    int
	retryDelay    time.Duration
	matchConfig   *match.Config
	monitor       match.Monitor
	progress      io.Writer
	clock         func() time.Time
	logger        *slog.Logger
}

// WithAIConfig sets the embedding and chat model configuration.
func WithAIConfig(config *ai.Config) Option {
	return func(o *options) {
		o.aiConfig = config
	}
}

// WithProvider uses an existing AI provider instead of creating one from the
// AI config. The service takes ownership and closes it.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithCachePath persists corpus embeddings in a Badger database at path.
func WithCachePath(path string) Option {
	return func(o *options) {
		o.cachePath = path
	}
}

// WithMemoryCache keeps corpus embeddings in an in-memory Badger database.
func WithMemoryCache() Option {
	return func(o *options) {
		o.cacheInMemory = true
	}
}

// WithSources sets where buyer and grant records are loaded from.
func WithSources(buyers, grants ingestion.Source) Option {
	return func(o *options) {
		o.buyers = buyers
		o.grants = grants
	}
}

// WithPoolSize sets the number of concurrent embedding requests during a build.
func WithPoolSize(size int) Option {
	return func(o *options) {
		o.poolSize = size
	}
}

// WithBatchSize sets the number of texts per embedding request during a build.
func WithBatchSize(size int) Option {
	return func(o *options) {
		o.batchSize = size
	}
}

// WithRetries retries a failed embedding batch during a build up to
// maxRetries times, backing off exponentially from delay.
func WithRetries(maxRetries int, delay time.Duration) Option {
	return func(o *options) {
		o.maxRetries = maxRetries
		o.retryDelay = delay
	}
}

// WithMatchConfig sets the scoring configuration.
func WithMatchConfig(config *match.Config) Option {
	return func(o *options) {
		o.matchConfig = config
	}
}

// WithMonitor observes every match.
func WithMonitor(monitor match.Monitor) Option {
	return func(o *options) {
		o.monitor = monitor
	}
}

// WithProgress reports embedding progress during builds to w.
func WithProgress(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// WithClock sets the time source for deadline scoring and build timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

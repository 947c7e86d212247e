package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/grantmatch/ai"
	"github.com/sethvargo/go-retry"
)

// DefaultBatchSize is the number of texts sent in one embedding request.
const DefaultBatchSize = 64

// BatchEmbedder splits large EmbedTexts calls into batches and embeds them
// concurrently on a worker pool. Output order always matches input order.
type BatchEmbedder struct {
	inner          ai.Embedder
	pool           *ants.Pool
	batchSize      int
	progress       io.Writer
	reportInterval int
	maxRetries     uint64
	retryDelay     time.Duration
	logger         *slog.Logger
}

var _ ai.Embedder = (*BatchEmbedder)(nil)

// BatchOption configures a BatchEmbedder.
type BatchOption func(*BatchEmbedder) error

// WithPoolSize sets the number of concurrent embedding requests.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) BatchOption {
	return func(b *BatchEmbedder) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if b.pool != nil {
			b.pool.Release()
		}
		b.pool = pool
		return nil
	}
}

// WithBatchSize sets the number of texts per request.
// Default is DefaultBatchSize.
func WithBatchSize(size int) BatchOption {
	return func(b *BatchEmbedder) error {
		if size < 1 {
			size = 1
		}
		b.batchSize = size
		return nil
	}
}

// WithProgress reports progress to w every interval texts.
func WithProgress(w io.Writer, interval int) BatchOption {
	return func(b *BatchEmbedder) error {
		if interval < 1 {
			interval = 1
		}
		b.progress = w
		b.reportInterval = interval
		return nil
	}
}

// WithRetries retries a failed batch up to maxRetries times with exponential
// backoff starting at delay. Default is no retries.
func WithRetries(maxRetries int, delay time.Duration) BatchOption {
	return func(b *BatchEmbedder) error {
		if maxRetries < 0 {
			return fmt.Errorf("max retries must not be negative, got %d", maxRetries)
		}
		if delay <= 0 {
			delay = time.Second
		}
		b.maxRetries = uint64(maxRetries)
		b.retryDelay = delay
		return nil
	}
}

// WithBatchLogger sets a custom logger.
// Default is slog.Default().
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchEmbedder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBatchEmbedder wraps inner with batching and a worker pool.
// Call Release when done.
func NewBatchEmbedder(inner ai.Embedder, opts ...BatchOption) (*BatchEmbedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &BatchEmbedder{
		inner:      inner,
		pool:       pool,
		batchSize:  DefaultBatchSize,
		retryDelay: time.Second,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	b.logger = b.logger.With("component", "batch-embedder")
	return b, nil
}

// EmbedText passes through to the wrapped embedder.
func (b *BatchEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return b.inner.EmbedText(ctx, text)
}

// EmbedTexts embeds texts in batches. The first failing batch cancels the
// rest and its error is returned; no partial result is returned.
func (b *BatchEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var tracker *ProgressTracker
	if b.progress != nil {
		tracker = NewProgressTracker(b.progress, len(texts), b.reportInterval)
		tracker.Start()
	}

	results := make([][]float32, len(texts))
	var wg sync.WaitGroup

	for start := 0; start < len(texts); start += b.batchSize {
		end := min(start+b.batchSize, len(texts))
		batch := texts[start:end]
		offset := start

		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}

			vectors, err := b.embedBatch(ctx, batch)
			if err != nil {
				cancel(fmt.Errorf("batch %d-%d: %w", offset, offset+len(batch), err))
				return
			}
			if len(vectors) != len(batch) {
				cancel(fmt.Errorf("batch %d-%d: expected %d embeddings, received %d",
					offset, offset+len(batch), len(batch), len(vectors)))
				return
			}
			copy(results[offset:], vectors)
			tracker.Increment(len(batch))
		})
		if err != nil {
			wg.Done()
			cancel(err)
			break
		}
	}
	wg.Wait()

	if err := context.Cause(ctx); err != nil {
		b.logger.Error("batch embedding failed", "texts", len(texts), "err", err)
		return nil, err
	}
	tracker.Finish()

	b.logger.Debug("embedded texts", "texts", len(texts), "batch_size", b.batchSize)
	return results, nil
}

// embedBatch embeds one batch, retrying transport failures. A cancelled
// context is never retried.
func (b *BatchEmbedder) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	var vectors [][]float32
	attempt := 0
	backoff := retry.WithMaxRetries(b.maxRetries, retry.NewExponential(b.retryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		var err error
		vectors, err = b.inner.EmbedTexts(ctx, batch)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		b.logger.Debug("batch embedding attempt failed", "attempt", attempt, "max_retries", b.maxRetries, "err", err)
		return retry.RetryableError(err)
	})
	return vectors, err
}

// Release releases the worker pool.
// The embedder should not be used after calling Release.
func (b *BatchEmbedder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}

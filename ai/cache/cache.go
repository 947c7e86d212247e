// Package cache provides an ai.Embedder decorator that serves vectors from a
// persistent embedding repository and only calls the wrapped embedder for
// texts it has not seen under the configured model.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/storage"
)

var (
	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("cache: embedder is required")

	// ErrRepositoryRequired is returned when no repository is provided.
	ErrRepositoryRequired = errors.New("cache: embedding repository is required")

	// ErrModelRequired is returned when no model name is provided.
	ErrModelRequired = errors.New("cache: model name is required")
)

// Stats counts cache outcomes since the embedder was created.
type Stats struct {
	Hits   int
	Misses int
}

// Embedder wraps an ai.Embedder with a read-through cache.
// Vectors are cached exactly as the wrapped embedder returned them.
type Embedder struct {
	inner  ai.Embedder
	repo   storage.EmbeddingRepository
	model  string
	logger *slog.Logger

	mu    sync.Mutex
	stats Stats
}

var _ ai.Embedder = (*Embedder)(nil)

// Option configures an Embedder.
type Option func(*Embedder)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Embedder) {
		e.logger = logger
	}
}

// New creates a caching embedder. model namespaces the cache so vectors from
// different embedding models never mix.
func New(inner ai.Embedder, repo storage.EmbeddingRepository, model string, opts ...Option) (*Embedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if model == "" {
		return nil, ErrModelRequired
	}

	e := &Embedder{
		inner:  inner,
		repo:   repo,
		model:  model,
		logger: slog.Default().With("component", "embedding-cache", "model", model),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Stats returns the hit and miss counts so far.
func (e *Embedder) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Embedder) addStats(hits, misses int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.Hits += hits
	e.stats.Misses += misses
}

// EmbedText returns the cached vector for text, embedding it on a miss.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts returns one vector per text in input order. All misses are sent
// to the wrapped embedder in a single batch; repeated texts are embedded once.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	ids := make([]core.ID, len(texts))
	for i, text := range texts {
		ids[i] = core.IDFromContent(text)
	}

	cached, err := e.repo.GetEmbeddings(ctx, e.model, ids...)
	if err != nil {
		// A broken cache degrades to a pass-through
		e.logger.Warn("embedding cache read failed", "err", err)
		cached = map[core.ID][]float32{}
	}

	var missTexts []string
	var missIDs []core.ID
	seen := make(map[core.ID]bool)
	for i, id := range ids {
		if _, ok := cached[id]; ok || seen[id] {
			continue
		}
		seen[id] = true
		missTexts = append(missTexts, texts[i])
		missIDs = append(missIDs, id)
	}

	if len(missTexts) > 0 {
		fresh, err := e.inner.EmbedTexts(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		if len(fresh) != len(missTexts) {
			return nil, fmt.Errorf("cache: embedder returned %d vectors for %d texts", len(fresh), len(missTexts))
		}

		store := make(map[core.ID][]float32, len(fresh))
		for i, id := range missIDs {
			cached[id] = fresh[i]
			store[id] = fresh[i]
		}
		if err := e.repo.PutEmbeddings(ctx, e.model, store); err != nil {
			e.logger.Warn("embedding cache write failed", "count", len(store), "err", err)
		}
	}

	e.addStats(len(texts)-len(missTexts), len(missTexts))
	e.logger.Debug("embedded texts", "total", len(texts), "misses", len(missTexts))

	out := make([][]float32, len(texts))
	for i, id := range ids {
		out[i] = cached[id]
	}
	return out, nil
}

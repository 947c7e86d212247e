// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package grantmatch matches public-sector buyers and grant programs against a
// sales representative's query.
//
// A Service loads buyer and grant records, embeds them into two vector
// indices and answers Match requests against the published indices. Reload
// rebuilds both indices from their sources and swaps them in atomically; a
// failed reload leaves the previous indices serving.
package grantmatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/ai/cache"
	"github.com/poiesic/grantmatch/ai/openai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/index"
	"github.com/poiesic/grantmatch/ingestion"
	"github.com/poiesic/grantmatch/match"
	"github.com/poiesic/grantmatch/storage"
	"github.com/poiesic/grantmatch/storage/badger"
)

// Corpus names used for checkpoints.
const (
	CorpusBuyers = "buyers"
	CorpusGrants = "grants"
)

// Service owns the AI provider, the embedding cache and the published corpus.
// It is safe for concurrent use.
type Service struct {
	provider       ai.AIProvider
	backend        *badger.Backend
	embeddingRepo  storage.EmbeddingRepository
	checkpointRepo storage.CheckpointRepository
	cached         *cache.Embedder
	batcher        *ingestion.BatchEmbedder
	builder        *ingestion.Builder
	engine         *match.Engine
	holder         index.Holder
	buyers         ingestion.Source
	grants         ingestion.Source
	model          string
	clock          func() time.Time
	logger         *slog.Logger

	reloadMu sync.Mutex
}

// NewService creates a service. No records are loaded until Reload is called.
func NewService(opts ...Option) (*Service, error) {
	o := &options{
		aiConfig: ai.DefaultConfig(),
		clock:    time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.aiConfig == nil {
		o.aiConfig = ai.DefaultConfig()
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	s := &Service{
		buyers: o.buyers,
		grants: o.grants,
		model:  o.aiConfig.EmbeddingModel,
		clock:  o.clock,
		logger: o.logger.With("component", "grantmatch"),
	}

	if err := s.init(o); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Service) init(o *options) error {
	provider := o.provider
	if provider == nil {
		o.aiConfig.Normalize()
		p, err := openai.NewProvider(o.aiConfig)
		if err != nil {
			return err
		}
		provider = p
	}
	s.provider = provider

	// Corpus builds go through the cache; match-time queries do not.
	var buildEmbedder ai.Embedder = provider.Embedder()
	if o.cachePath != "" || o.cacheInMemory {
		backend, err := badger.OpenBackend(o.cachePath, o.cacheInMemory)
		if err != nil {
			return fmt.Errorf("open embedding cache: %w", err)
		}
		s.backend = backend

		embeddingRepo, err := badger.NewEmbeddingRepository(backend)
		if err != nil {
			return err
		}
		s.embeddingRepo = embeddingRepo
		s.checkpointRepo = badger.NewCheckpointRepository(backend)

		cached, err := cache.New(provider.Embedder(), embeddingRepo, s.model,
			cache.WithLogger(o.logger.With("component", "embedding-cache", "model", s.model)))
		if err != nil {
			return err
		}
		s.cached = cached
		buildEmbedder = cached
	}

	batchOpts := []ingestion.BatchOption{ingestion.WithBatchLogger(o.logger)}
	if o.poolSize > 0 {
		batchOpts = append(batchOpts, ingestion.WithPoolSize(o.poolSize))
	}
	if o.maxRetries > 0 {
		batchOpts = append(batchOpts, ingestion.WithRetries(o.maxRetries, o.retryDelay))
	}
	if o.batchSize > 0 {
		batchOpts = append(batchOpts, ingestion.WithBatchSize(o.batchSize))
	}
	if o.progress != nil {
		batchOpts = append(batchOpts, ingestion.WithProgress(o.progress, ingestion.DefaultBatchSize))
	}
	batcher, err := ingestion.NewBatchEmbedder(buildEmbedder, batchOpts...)
	if err != nil {
		return err
	}
	s.batcher = batcher

	builder, err := ingestion.NewBuilder(batcher, ingestion.WithLogger(o.logger), ingestion.WithClock(o.clock))
	if err != nil {
		return err
	}
	s.builder = builder

	engineOpts := []match.Option{match.WithLogger(o.logger), match.WithClock(o.clock)}
	if o.matchConfig != nil {
		engineOpts = append(engineOpts, match.WithConfig(o.matchConfig))
	}
	if o.monitor != nil {
		engineOpts = append(engineOpts, match.WithMonitor(o.monitor))
	}
	engine, err := match.NewEngine(provider.Embedder(), engineOpts...)
	if err != nil {
		return err
	}
	s.engine = engine
	return nil
}

// Close releases the worker pool, the provider and the cache.
func (s *Service) Close() error {
	var errs []error
	if s.batcher != nil {
		s.batcher.Release()
	}
	if s.provider != nil {
		if err := s.provider.Close(); err != nil {
			s.logger.Error("error closing AI provider", "err", err)
			errs = append(errs, err)
		}
	}
	if s.embeddingRepo != nil {
		if err := s.embeddingRepo.Close(); err != nil {
			s.logger.Error("error closing embedding repository", "err", err)
			errs = append(errs, err)
		}
	}
	if s.backend != nil && !s.backend.IsClosed() {
		if err := s.backend.Close(); err != nil {
			s.logger.Error("error closing backend storage", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Advisor returns the chat advisor.
func (s *Service) Advisor() ai.Advisor {
	return s.provider.Advisor()
}

// Corpus returns the published corpus, or nil before the first successful Reload.
func (s *Service) Corpus() *index.Corpus {
	return s.holder.Load()
}

// CheckpointRepository returns the checkpoint store, or nil when caching is disabled.
func (s *Service) CheckpointRepository() storage.CheckpointRepository {
	return s.checkpointRepo
}

// CacheStats returns the embedding cache counters. Zero when caching is disabled.
func (s *Service) CacheStats() cache.Stats {
	if s.cached == nil {
		return cache.Stats{}
	}
	return s.cached.Stats()
}

// CachedEmbeddings returns the number of vectors cached for the embedding model.
func (s *Service) CachedEmbeddings(ctx context.Context) (int, error) {
	if s.embeddingRepo == nil {
		return 0, ErrCacheRequired
	}
	return s.embeddingRepo.CountEmbeddings(ctx, s.model)
}

// Reload rebuilds both indices from the configured sources and publishes
// them. On failure the previously published corpus stays in place.
// Concurrent reloads are serialized.
func (s *Service) Reload(ctx context.Context) (*index.Corpus, error) {
	if s.buyers == "" || s.grants == "" {
		return nil, ErrSourcesRequired
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	corpus, err := s.builder.LoadAndBuild(ctx, s.buyers, s.grants)
	if err != nil {
		s.logger.Error("reload failed, keeping previous corpus", "err", err)
		return nil, err
	}

	s.holder.Publish(corpus)
	s.logger.Info("corpus published",
		"buyers", corpus.Buyers.Len(),
		"grants", corpus.Grants.Len(),
		"built_at", corpus.BuiltAt)

	s.saveCheckpoint(ctx, CorpusBuyers, s.buyers, docTexts(corpus.Buyers.Docs()))
	s.saveCheckpoint(ctx, CorpusGrants, s.grants, docTexts(corpus.Grants.Docs()))
	return corpus, nil
}

// Match ranks grant opportunities for the query against the published corpus.
func (s *Service) Match(ctx context.Context, query core.RepQuery, topKBuyers, topKGrants int) ([]core.MatchResult, error) {
	return s.engine.Match(ctx, s.holder.Load(), query, topKBuyers, topKGrants)
}

// ResetCache drops every vector cached for the embedding model along with
// the corpus checkpoints, so the next Warm or Reload embeds from scratch.
// It returns the number of vectors removed.
func (s *Service) ResetCache(ctx context.Context) (int, error) {
	if s.embeddingRepo == nil {
		return 0, ErrCacheRequired
	}
	removed, err := s.embeddingRepo.DeleteModel(ctx, s.model)
	if err != nil {
		return removed, err
	}
	for _, corpus := range []string{CorpusBuyers, CorpusGrants} {
		if err := s.checkpointRepo.DeleteCheckpoint(ctx, corpus); err != nil {
			return removed, fmt.Errorf("delete %s checkpoint: %w", corpus, err)
		}
	}
	s.logger.Info("embedding cache reset", "model", s.model, "removed", removed)
	return removed, nil
}

// WarmResult reports what Warm did for one corpus.
type WarmResult struct {
	Corpus  string
	Records int
	Skipped bool
	Hits    int
	Misses  int
}

// Warm embeds both corpora into the cache without publishing anything.
// A corpus whose checkpoint matches its current records and model is skipped.
func (s *Service) Warm(ctx context.Context) ([]WarmResult, error) {
	if s.cached == nil {
		return nil, ErrCacheRequired
	}
	if s.buyers == "" || s.grants == "" {
		return nil, ErrSourcesRequired
	}

	buyerRecords, grantRecords, err := s.builder.Load(ctx, s.buyers, s.grants)
	if err != nil {
		return nil, err
	}

	var results []WarmResult
	for _, c := range []struct {
		name    string
		source  ingestion.Source
		records []core.Record
	}{
		{CorpusBuyers, s.buyers, buyerRecords},
		{CorpusGrants, s.grants, grantRecords},
	} {
		res, err := s.warm(ctx, c.name, c.source, recordTexts(c.records))
		if err != nil {
			return nil, fmt.Errorf("warm %s: %w", c.name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Service) warm(ctx context.Context, corpus string, source ingestion.Source, texts []string) (WarmResult, error) {
	res := WarmResult{Corpus: corpus, Records: len(texts)}

	checkpoint, err := s.checkpointRepo.LoadCheckpoint(ctx, corpus)
	if err != nil {
		s.logger.Warn("checkpoint read failed", "corpus", corpus, "err", err)
	}
	if checkpoint != nil && checkpoint.Model == s.model &&
		checkpoint.Records == len(texts) && checkpoint.Fingerprint == core.Fingerprint(texts) {
		s.logger.Info("corpus unchanged, skipping", "corpus", corpus, "records", len(texts))
		res.Skipped = true
		return res, nil
	}

	before := s.cached.Stats()
	if _, err := s.batcher.EmbedTexts(ctx, texts); err != nil {
		return res, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	after := s.cached.Stats()
	res.Hits = after.Hits - before.Hits
	res.Misses = after.Misses - before.Misses

	s.saveCheckpoint(ctx, corpus, source, texts)
	s.logger.Info("corpus warmed", "corpus", corpus, "records", len(texts), "hits", res.Hits, "misses", res.Misses)
	return res, nil
}

func (s *Service) saveCheckpoint(ctx context.Context, corpus string, source ingestion.Source, texts []string) {
	if s.checkpointRepo == nil {
		return
	}
	checkpoint := &core.Checkpoint{
		Corpus:      corpus,
		Source:      string(source),
		Model:       s.model,
		Records:     len(texts),
		Fingerprint: core.Fingerprint(texts),
		UpdatedAt:   s.clock().UTC(),
	}
	if err := s.checkpointRepo.SaveCheckpoint(ctx, checkpoint); err != nil {
		s.logger.Warn("checkpoint write failed", "corpus", corpus, "err", err)
	}
}

func recordTexts(records []core.Record) []string {
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text()
	}
	return texts
}

func docTexts[T index.Document](docs []T) []string {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text()
	}
	return texts
}

package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/index"
	"golang.org/x/sync/errgroup"
)

// Builder loads buyer and grant records and builds a searchable corpus.
type Builder struct {
	embedder ai.Embedder
	clock    func() time.Time
	logger   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// WithClock sets the time source stamped on built corpora.
func WithClock(clock func() time.Time) Option {
	return func(b *Builder) error {
		if clock != nil {
			b.clock = clock
		}
		return nil
	}
}

// NewBuilder creates a corpus builder that embeds with embedder.
func NewBuilder(embedder ai.Embedder, opts ...Option) (*Builder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	b := &Builder{
		embedder: embedder,
		clock:    time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	b.logger = b.logger.With("component", "corpus-builder")
	return b, nil
}

// Load reads the buyer and grant sources concurrently.
func (b *Builder) Load(ctx context.Context, buyers, grants Source) (buyerRecords, grantRecords []core.Record, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := buyers.Load(gctx)
		if err != nil {
			return fmt.Errorf("load buyers: %w", err)
		}
		buyerRecords = records
		return nil
	})
	g.Go(func() error {
		records, err := grants.Load(gctx)
		if err != nil {
			return fmt.Errorf("load grants: %w", err)
		}
		grantRecords = records
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	b.logger.Info("records loaded", "buyers", len(buyerRecords), "grants", len(grantRecords))
	return buyerRecords, grantRecords, nil
}

// Build embeds both record sets concurrently and returns the corpus.
// Either index failing fails the whole build.
func (b *Builder) Build(ctx context.Context, buyerRecords, grantRecords []core.Record) (*index.Corpus, error) {
	buyers := make([]*core.Buyer, len(buyerRecords))
	for i, r := range buyerRecords {
		buyers[i] = core.NewBuyer(r)
	}
	grants := make([]*core.Grant, len(grantRecords))
	for i, r := range grantRecords {
		grants[i] = core.NewGrant(r)
	}

	start := b.clock()
	corpus := &index.Corpus{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ix, err := index.Build(gctx, b.embedder, buyers)
		if err != nil {
			return fmt.Errorf("build buyer index: %w", err)
		}
		corpus.Buyers = ix
		return nil
	})
	g.Go(func() error {
		ix, err := index.Build(gctx, b.embedder, grants)
		if err != nil {
			return fmt.Errorf("build grant index: %w", err)
		}
		corpus.Grants = ix
		return nil
	})
	if err := g.Wait(); err != nil {
		b.logger.Error("corpus build failed", "err", err)
		return nil, err
	}

	corpus.BuiltAt = b.clock()
	b.logger.Info("corpus built",
		"buyers", corpus.Buyers.Len(),
		"grants", corpus.Grants.Len(),
		"dim", max(corpus.Buyers.Dim(), corpus.Grants.Dim()),
		"elapsed", corpus.BuiltAt.Sub(start))
	return corpus, nil
}

// LoadAndBuild is Load followed by Build.
func (b *Builder) LoadAndBuild(ctx context.Context, buyers, grants Source) (*index.Corpus, error) {
	buyerRecords, grantRecords, err := b.Load(ctx, buyers, grants)
	if err != nil {
		return nil, err
	}
	return b.Build(ctx, buyerRecords, grantRecords)
}

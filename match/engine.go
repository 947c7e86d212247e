package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/index"
	"github.com/poiesic/grantmatch/signal"
)

// Engine scores buyer and grant candidates against a rep query.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	embedder ai.Embedder
	config   *Config
	clock    func() time.Time
	monitor  Monitor
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithConfig sets the scoring configuration. The config is validated.
func WithConfig(cfg *Config) Option {
	return func(e *Engine) error {
		if cfg == nil {
			return fmt.Errorf("%w: nil", ErrInvalidConfig)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		e.config = cfg
		return nil
	}
}

// WithClock sets the time source used for deadline decay.
// Default is time.Now.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) error {
		if clock != nil {
			e.clock = clock
		}
		return nil
	}
}

// WithMonitor sets the monitor used by Match.
func WithMonitor(monitor Monitor) Option {
	return func(e *Engine) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		e.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a scoring engine that embeds queries with embedder.
func NewEngine(embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		embedder: embedder,
		config:   DefaultConfig(),
		clock:    time.Now,
		monitor:  &noopMonitor{},
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	e.logger = e.logger.With("component", "match-engine")
	return e, nil
}

// Config returns the scoring configuration in use.
func (e *Engine) Config() *Config {
	return e.config
}

// Match returns the ranked, deduplicated grant opportunities for query.
func (e *Engine) Match(ctx context.Context, corpus *index.Corpus, query core.RepQuery, topKBuyers, topKGrants int) ([]core.MatchResult, error) {
	return e.MatchWithMonitor(ctx, corpus, query, topKBuyers, topKGrants, e.monitor)
}

// MatchWithMonitor is Match with a monitor that receives callbacks at each stage.
//
// The rep query is embedded once for the buyer search; every buyer+query text
// is then embedded in a single batch for the grant searches. A grant surfacing
// for several buyers is kept only for the first, highest-ranked buyer. Any
// embedding failure aborts the match with no partial results.
func (e *Engine) MatchWithMonitor(ctx context.Context, corpus *index.Corpus, query core.RepQuery, topKBuyers, topKGrants int, monitor Monitor) ([]core.MatchResult, error) {
	if corpus == nil || corpus.Buyers == nil || corpus.Grants == nil {
		return nil, ErrIndexUnavailable
	}
	if err := core.ValidateTopK(topKBuyers); err != nil {
		return nil, fmt.Errorf("top_k_buyers: %w", err)
	}
	if err := core.ValidateTopK(topKGrants); err != nil {
		return nil, fmt.Errorf("top_k_grants: %w", err)
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	query = query.Normalize()
	monitor.Start(query)

	buyers, err := corpus.Buyers.Search(ctx, e.embedder, query.Text(), topKBuyers)
	if err != nil {
		e.logger.Error("buyer search failed", "err", err)
		if !errors.Is(err, ErrEmbeddingFailed) {
			err = fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
		}
		return nil, err
	}
	monitor.AfterBuyerSearch(buyers)

	results := []core.MatchResult{}
	if len(buyers) == 0 || corpus.Grants.Len() == 0 {
		monitor.Finish(results)
		return results, nil
	}

	buyerQueries := make([]string, len(buyers))
	for i, hit := range buyers {
		buyerQueries[i] = buyerQueryText(hit.Doc, query)
	}
	vectors, err := e.embedder.EmbedTexts(ctx, buyerQueries)
	if err != nil {
		e.logger.Error("buyer query embedding failed", "count", len(buyerQueries), "err", err)
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	if len(vectors) != len(buyerQueries) {
		return nil, fmt.Errorf("%w: %w: %d texts, %d vectors",
			ErrEmbeddingFailed, index.ErrEmbeddingMismatch, len(buyerQueries), len(vectors))
	}

	now := e.clock()
	var dedup Deduper

	for i, bhit := range buyers {
		buyer := bhit.Doc
		grants, err := corpus.Grants.SearchVector(vectors[i], topKGrants)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
		}
		monitor.AfterGrantSearch(buyer, grants)

		terms := CandidateTerms(buyer, query.ProductType, e.config.Keyword)
		buyerText := buyer.Text()

		for _, ghit := range grants {
			grant := ghit.Doc
			key := grant.Key()
			if !dedup.FirstSeen(key) {
				monitor.Duplicate(buyer, key)
				continue
			}

			card := e.score(query, buyerQueries[i], buyerText, terms, bhit.Score, ghit.Score, grant, now)
			monitor.Scored(buyer, grant, card)
			results = append(results, newResult(query, buyer, grant, card))
		}
	}

	Rank(results)
	monitor.Finish(results)
	return results, nil
}

// score computes every signal for one pair.
func (e *Engine) score(query core.RepQuery, buyerQuery, buyerText string, terms []string,
	buyerScore, grantScore float64, grant *core.Grant, now time.Time) Scorecard {
	cfg := e.config
	grantText := grant.Text()

	kw := KeywordBoost(terms, query.ProductType, buyerText, grant.KeywordText(), cfg.Keyword)
	s := Signals{
		BuyerScore:   buyerScore,
		GrantScore:   grantScore,
		Lexical:      signal.LexicalOverlap(buyerQuery, grantText),
		Deadline:     signal.DeadlineDecay(grant.ApplicationDeadline, now, cfg.DeadlineHorizonDays, cfg.DeadlineFallback),
		Geo:          signal.GeoMatch(query.State, grantText, cfg.GeoHit, cfg.GeoMiss),
		KeywordBoost: kw.Boost,
	}
	raw := cfg.RawScore(s)

	return Scorecard{
		Signals:    s,
		Keyword:    kw,
		Raw:        raw,
		Confidence: cfg.Confidence(raw, s.Deadline),
	}
}

// buyerQueryText is the buyer's own text extended with the requested product and state.
func buyerQueryText(buyer *core.Buyer, query core.RepQuery) string {
	return buyer.Text() + " " + query.ProductType + " " + query.State
}

func newResult(query core.RepQuery, buyer *core.Buyer, grant *core.Grant, card Scorecard) core.MatchResult {
	key := grant.Key()
	return core.MatchResult{
		GrantTitle:      key.ProgramName,
		Description:     core.OrDefault(grant.Purpose, core.DefaultDescription),
		Agency:          key.Agency,
		Amount:          grant.AwardAmountRange,
		Deadline:        grant.ApplicationDeadline,
		BuyerAgency:     core.OrDefault(buyer.AgencyName, core.DefaultAgency),
		BuyerScore:      Round2(card.Signals.BuyerScore * 100),
		GrantScore:      Round2(card.Signals.GrantScore * 100),
		ConfidenceScore: card.Confidence,
		Explanation:     Explain(query, card),
	}
}

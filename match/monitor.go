package match

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/index"
)

// Monitor provides hooks to observe the matching process.
// Implement this interface to track intermediate steps and results during a match.
type Monitor interface {
	Start(query core.RepQuery)
	AfterBuyerSearch(hits []index.Hit[*core.Buyer])
	AfterGrantSearch(buyer *core.Buyer, hits []index.Hit[*core.Grant])
	Duplicate(buyer *core.Buyer, key core.GrantKey)
	Scored(buyer *core.Buyer, grant *core.Grant, card Scorecard)
	Finish(results []core.MatchResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.RepQuery) {}
func (n *noopMonitor) AfterBuyerSearch(_ []index.Hit[*core.Buyer]) {}
func (n *noopMonitor) AfterGrantSearch(_ *core.Buyer, _ []index.Hit[*core.Grant]) {}
func (n *noopMonitor) Duplicate(_ *core.Buyer, _ core.GrantKey) {}
func (n *noopMonitor) Scored(_ *core.Buyer, _ *core.Grant, _ Scorecard) {}
func (n *noopMonitor) Finish(_ []core.MatchResult) {}

// LoggingMonitor writes one debug line per scored pair and a summary per match.
type LoggingMonitor struct {
	logger *slog.Logger
}

var _ Monitor = (*LoggingMonitor)(nil)

// NewLoggingMonitor creates a monitor that logs through logger, or slog.Default() if nil.
func NewLoggingMonitor(logger *slog.Logger) *LoggingMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingMonitor{logger: logger.With("component", "match-monitor")}
}

func (m *LoggingMonitor) Start(query core.RepQuery) {
	m.logger.Debug("match started",
		"agency_type", query.AgencyType,
		"product_type", query.ProductType,
		"state", query.State)
}

func (m *LoggingMonitor) AfterBuyerSearch(hits []index.Hit[*core.Buyer]) {
	m.logger.Debug("buyer search complete", "hits", len(hits))
}

func (m *LoggingMonitor) AfterGrantSearch(buyer *core.Buyer, hits []index.Hit[*core.Grant]) {
	m.logger.Debug("grant search complete", "buyer", buyer.AgencyName, "hits", len(hits))
}

func (m *LoggingMonitor) Duplicate(buyer *core.Buyer, key core.GrantKey) {
	m.logger.Debug("skipping duplicate grant", "buyer", buyer.AgencyName, "grant", key.ProgramName, "agency", key.Agency)
}

func (m *LoggingMonitor) Scored(_ *core.Buyer, grant *core.Grant, card Scorecard) {
	if !m.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	s := card.Signals
	m.logger.Debug("scored pair",
		"grant", grant.ProgramName,
		"raw", Round3(card.Raw),
		"kw_boost", Round2(s.KeywordBoost),
		"lex", Round2(s.Lexical),
		"geo", s.Geo,
		"conf", card.Confidence,
		"context", card.Keyword.ContextMatch,
		"grant_match", card.Keyword.StrictMatch,
		"keywords", strings.Join(card.Keyword.MatchedTerms(), ", "))
}

func (m *LoggingMonitor) Finish(results []core.MatchResult) {
	m.logger.Debug("match finished", "results", len(results))
}

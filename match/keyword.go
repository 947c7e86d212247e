package match

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/signal"
)

// KeywordMatch is one buyer term found in a grant's keyword text.
type KeywordMatch struct {
	Term       string
	Similarity float64
}

// String formats the match as "term (0.00)".
func (m KeywordMatch) String() string {
	return fmt.Sprintf("%s (%.2f)", m.Term, m.Similarity)
}

// KeywordResult is the outcome of the keyword boost for one (buyer, grant) pair.
type KeywordResult struct {
	Boost        float64
	Matches      []KeywordMatch
	StrictMatch  bool
	ContextMatch bool
}

// MatchedTerms returns the formatted matches in match order.
func (r KeywordResult) MatchedTerms() []string {
	out := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.String()
	}
	return out
}

// CandidateTerms derives the keyword terms for a buyer.
//
// The buyer's product terms and agency type are kept when they are fuzzy
// similar to the requested product or contain it; the requested product itself
// is always a candidate. Every string contains the empty product, so an empty
// product keeps all of the buyer's terms. Terms are lower-cased and
// deduplicated keeping the first occurrence, so the order is deterministic.
func CandidateTerms(buyer *core.Buyer, product string, cfg KeywordConfig) []string {
	query := strings.ToLower(strings.TrimSpace(product))

	candidates := buyer.ProductTerms()
	if agencyType := strings.ToLower(buyer.AgencyType); agencyType != "" {
		candidates = append(candidates, agencyType)
	}

	terms := make([]string, 0, len(candidates)+1)
	for _, term := range candidates {
		if signal.KeywordSimilarity(term, query) >= cfg.AlignmentThreshold ||
			strings.Contains(term, query) {
			terms = append(terms, term)
		}
	}
	if query != "" {
		terms = append(terms, query)
	}
	return dedupeStrings(terms)
}

func dedupeStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// KeywordBoost scores how well terms are reflected in a grant's keyword text.
//
// A term matches strictly when its fuzzy similarity to the keyword text reaches
// StrictThreshold and it occurs there literally; each strict match adds
// MatchScale*ln(1+similarity). When the buyer's own text mentions the product,
// ContextBoost is added on top of strict matches, or ContextFloor is used as a
// minimum without them. Matches that never mention the product are scaled by
// IrrelevantFactor. With neither kind of match the boost is Penalty. The result
// is clamped to [MinBoost, MaxBoost]. An empty product counts as mentioned
// everywhere.
func KeywordBoost(terms []string, product, buyerText, keywordText string, cfg KeywordConfig) KeywordResult {
	var res KeywordResult
	lowerKeywordText := strings.ToLower(keywordText)
	query := strings.ToLower(strings.TrimSpace(product))

	for _, term := range terms {
		if term == "" {
			continue
		}
		sim := signal.KeywordSimilarity(term, keywordText)
		if sim >= cfg.StrictThreshold && strings.Contains(lowerKeywordText, strings.ToLower(term)) {
			res.StrictMatch = true
			res.Matches = append(res.Matches, KeywordMatch{Term: term, Similarity: sim})
			res.Boost += cfg.MatchScale * math.Log1p(sim)
		}
	}

	if strings.Contains(strings.ToLower(buyerText), query) {
		res.ContextMatch = true
		if res.StrictMatch {
			res.Boost += cfg.ContextBoost
		} else {
			res.Boost = math.Max(res.Boost, cfg.ContextFloor)
		}
	}

	if len(res.Matches) > 0 &&
		!strings.Contains(strings.ToLower(strings.Join(res.MatchedTerms(), " ")), query) {
		res.Boost *= cfg.IrrelevantFactor
	}

	if !res.StrictMatch && !res.ContextMatch {
		res.Boost = cfg.Penalty
	}

	res.Boost = math.Max(cfg.MinBoost, math.Min(cfg.MaxBoost, res.Boost))
	return res
}

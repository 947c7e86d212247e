package signal

import (
	"math"
	"strings"

	"github.com/xrash/smetrics"
)

// Indel costs: insertions and deletions cost 1, a substitution costs 2
// (a deletion plus an insertion).
const (
	indelInsert     = 1
	indelDelete     = 1
	indelSubstitute = 2
)

// Ratio returns the normalized Indel similarity of a and b in [0, 100].
// Two empty strings are identical.
func Ratio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	dist := smetrics.WagnerFischer(a, b, indelInsert, indelDelete, indelSubstitute)
	return 100 * (1 - float64(dist)/float64(total))
}

// PartialRatio returns the best Ratio of the shorter string against any
// alignment within the longer one, rounded to an integer in [0, 100].
//
// Alignments include every full-length window of the longer string plus the
// partial windows hanging off either end, so a term that is a prefix or suffix
// of the text still scores well. Strings of equal length are compared in both
// directions. Both empty is 100; exactly one empty is 0. Comparison is byte-wise.
func PartialRatio(a, b string) int {
	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	best := bestAlignment(shorter, longer)
	if len(shorter) == len(longer) && best < 100 {
		best = math.Max(best, bestAlignment(longer, shorter))
	}
	return int(math.Round(best))
}

// bestAlignment slides needle over haystack, which must not be shorter.
func bestAlignment(needle, haystack string) float64 {
	n, h := len(needle), len(haystack)
	if strings.Contains(haystack, needle) {
		return 100
	}

	best := 0.0
	consider := func(window string) bool {
		if r := Ratio(needle, window); r > best {
			best = r
		}
		return best >= 100
	}

	// Windows hanging off the left edge
	for i := 1; i < n; i++ {
		if consider(haystack[:i]) {
			return best
		}
	}
	// Full windows
	for i := 0; i+n <= h; i++ {
		if consider(haystack[i : i+n]) {
			return best
		}
	}
	// Windows hanging off the right edge
	for i := h - n + 1; i < h; i++ {
		if consider(haystack[i:]) {
			return best
		}
	}
	return best
}

// KeywordSimilarity is the case-insensitive PartialRatio of term against text, in [0, 1].
func KeywordSimilarity(term, text string) float64 {
	return float64(PartialRatio(strings.ToLower(term), strings.ToLower(text))) / 100
}

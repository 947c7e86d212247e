package match

import (
	"slices"

	"github.com/poiesic/grantmatch/core"
)

// Deduper remembers grant identities already emitted.
// The zero value is ready to use.
type Deduper struct {
	seen map[core.GrantKey]struct{}
}

// FirstSeen records key and reports whether it had not been seen before.
func (d *Deduper) FirstSeen(key core.GrantKey) bool {
	if d.seen == nil {
		d.seen = make(map[core.GrantKey]struct{})
	}
	if _, ok := d.seen[key]; ok {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}

// Rank sorts results by descending confidence in place. Equal scores keep
// their generation order. No results are dropped.
func Rank(results []core.MatchResult) []core.MatchResult {
	slices.SortStableFunc(results, func(a, b core.MatchResult) int {
		switch {
		case a.ConfidenceScore > b.ConfidenceScore:
			return -1
		case a.ConfidenceScore < b.ConfidenceScore:
			return 1
		default:
			return 0
		}
	})
	return results
}

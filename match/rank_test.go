package match

import (
	"testing"

	"github.com/poiesic/grantmatch/core"
	"github.com/stretchr/testify/assert"
)

func TestDeduper(t *testing.T) {
	var d Deduper
	afg := core.GrantKey{ProgramName: "AFG", Agency: "FEMA"}

	assert.True(t, d.FirstSeen(afg))
	assert.False(t, d.FirstSeen(afg))
	assert.True(t, d.FirstSeen(core.GrantKey{ProgramName: "AFG", Agency: "DHS"}))
	assert.True(t, d.FirstSeen(core.GrantKey{ProgramName: "SAFER", Agency: "FEMA"}))
}

func TestRank(t *testing.T) {
	results := []core.MatchResult{
		{GrantTitle: "a", ConfidenceScore: 40},
		{GrantTitle: "b", ConfidenceScore: 90},
		{GrantTitle: "c", ConfidenceScore: 40},
		{GrantTitle: "d", ConfidenceScore: 75},
	}

	ranked := Rank(results)

	titles := make([]string, len(ranked))
	for i, r := range ranked {
		titles[i] = r.GrantTitle
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, titles)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}

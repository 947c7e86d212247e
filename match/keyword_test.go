package match

import (
	"math"
	"testing"

	"github.com/poiesic/grantmatch/core"
	"github.com/stretchr/testify/assert"
)

func testBuyer(product, agencyType string) *core.Buyer {
	return core.NewBuyer(core.NewRecord(
		core.Field{Name: core.FieldProductName, Value: product},
		core.Field{Name: core.FieldAgencyType, Value: agencyType},
	))
}

func TestCandidateTerms(t *testing.T) {
	cfg := DefaultConfig().Keyword

	tests := []struct {
		name    string
		buyer   *core.Buyer
		product string
		want    []string
	}{
		{
			name:    "exact product term",
			buyer:   testBuyer("Drone/UAV", "Fire Department"),
			product: "drone",
			want:    []string{"drone"},
		},
		{
			name:    "second product term",
			buyer:   testBuyer("Drone/UAV", "Fire Department"),
			product: "UAV",
			want:    []string{"uav"},
		},
		{
			name:    "term containing product keeps order",
			buyer:   testBuyer("Drone Kit/UAV", "Police"),
			product: "drone",
			want:    []string{"drone kit", "drone"},
		},
		{
			name:    "unrelated buyer still yields product",
			buyer:   testBuyer("Body Camera", "Police"),
			product: "drone",
			want:    []string{"drone"},
		},
		{
			name:    "empty product keeps every buyer term",
			buyer:   testBuyer("Drone/UAV", "Fire Department"),
			product: "  ",
			want:    []string{"drone", "uav", "fire department"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CandidateTerms(tt.buyer, tt.product, cfg))
		})
	}
}

func TestKeywordBoost(t *testing.T) {
	cfg := DefaultConfig().Keyword
	ln2 := math.Log(2)

	tests := []struct {
		name        string
		terms       []string
		product     string
		buyerText   string
		keywordText string
		wantBoost   float64
		wantTerms   []string
		wantStrict  bool
		wantContext bool
	}{
		{
			name:        "strict and context",
			terms:       []string{"drone"},
			product:     "drone",
			buyerText:   "Drone/UAV Fire Department Springfield FD",
			keywordText: "drones, PPE equipment for fire departments",
			wantBoost:   0.25*ln2 + 0.15,
			wantTerms:   []string{"drone (1.00)"},
			wantStrict:  true,
			wantContext: true,
		},
		{
			name:        "context only",
			terms:       []string{"drone"},
			product:     "drone",
			buyerText:   "Drone Fire Department",
			keywordText: "body cameras",
			wantBoost:   0.1,
			wantTerms:   []string{},
			wantContext: true,
		},
		{
			name:        "no match penalized",
			terms:       []string{"drone"},
			product:     "drone",
			buyerText:   "Police",
			keywordText: "body cameras",
			wantBoost:   -0.1,
			wantTerms:   []string{},
		},
		{
			name:        "irrelevant match scaled down",
			terms:       []string{"uav"},
			product:     "drone",
			buyerText:   "uav fleet",
			keywordText: "uav purchase",
			wantBoost:   0.25 * ln2 * 0.2,
			wantTerms:   []string{"uav (1.00)"},
			wantStrict:  true,
		},
		{
			name:        "clamped to max",
			terms:       []string{"drone", "drone kit", "drone camera", "drone battery"},
			product:     "drone",
			buyerText:   "drone buyer",
			keywordText: "drone kit drone camera drone battery",
			wantBoost:   0.6,
			wantTerms:   []string{"drone (1.00)", "drone kit (1.00)", "drone camera (1.00)", "drone battery (1.00)"},
			wantStrict:  true,
			wantContext: true,
		},
		{
			name:        "no terms and no product",
			terms:       nil,
			product:     "",
			buyerText:   "drone buyer",
			keywordText: "drone kit",
			wantBoost:   0.1,
			wantTerms:   []string{},
			wantContext: true,
		},
		{
			name:        "empty product is never irrelevant",
			terms:       []string{"drone", "uav", "fire department"},
			product:     "",
			buyerText:   "Drone/UAV Fire Department Springfield FD",
			keywordText: "drones, PPE equipment for fire departments",
			wantBoost:   2*0.25*ln2 + 0.15,
			wantTerms:   []string{"drone (1.00)", "fire department (1.00)"},
			wantStrict:  true,
			wantContext: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := KeywordBoost(tt.terms, tt.product, tt.buyerText, tt.keywordText, cfg)
			assert.InDelta(t, tt.wantBoost, res.Boost, 1e-9)
			assert.Equal(t, tt.wantTerms, res.MatchedTerms())
			assert.Equal(t, tt.wantStrict, res.StrictMatch)
			assert.Equal(t, tt.wantContext, res.ContextMatch)
		})
	}
}

func TestKeywordBoost_RequiresLiteralOccurrence(t *testing.T) {
	// close enough to clear the strict threshold, but misspelled in the grant
	res := KeywordBoost([]string{"fire department"}, "drone", "police", "fire departmnt gear", DefaultConfig().Keyword)
	assert.False(t, res.StrictMatch)
	assert.Empty(t, res.Matches)
	assert.InDelta(t, -0.1, res.Boost, 1e-9)
}

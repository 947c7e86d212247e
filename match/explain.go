package match

import (
	"fmt"
	"strings"

	"github.com/poiesic/grantmatch/core"
)

// checkedFieldsSentence lists the grant fields inspected by the keyword boost.
var checkedFieldsSentence = "Grant fields checked: " + strings.Join(core.KeywordFields, ", ") + "."

// Explain renders the human-readable explanation for a scored pair.
// The output depends only on its arguments.
func Explain(q core.RepQuery, card Scorecard) string {
	var b strings.Builder
	s := card.Signals

	fmt.Fprintf(&b, "Matched on %s for %s in %s. ", q.ProductType, q.AgencyType, q.State)
	fmt.Fprintf(&b, "Buyer=%.2f, Grant=%.2f, Lex=%.2f, Deadline=%.2f, Geo=%.1f, KWBoost=%.2f, Raw=%.3f. ",
		s.BuyerScore, s.GrantScore, s.Lexical, s.Deadline, s.Geo, s.KeywordBoost, card.Raw)

	switch {
	case len(card.Keyword.Matches) > 0:
		fmt.Fprintf(&b, "Keywords matched: %s. ", strings.Join(card.Keyword.MatchedTerms(), ", "))
	case card.Keyword.ContextMatch:
		b.WriteString("No direct keyword match, but contextual boost applied. ")
	default:
		b.WriteString("No keyword match detected (penalty applied). ")
	}

	b.WriteString(checkedFieldsSentence)
	return b.String()
}

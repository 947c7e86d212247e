package match

import "math"

// Signals are the per-pair inputs to the raw score.
type Signals struct {
	BuyerScore   float64
	GrantScore   float64
	Lexical      float64
	Deadline     float64
	Geo          float64
	KeywordBoost float64
}

// Scorecard is everything computed for one (buyer, grant) pair.
type Scorecard struct {
	Signals    Signals
	Keyword    KeywordResult
	Raw        float64
	Confidence float64
}

// RawScore is the weighted sum of the signals plus the keyword boost, capped at RawCap.
func (c *Config) RawScore(s Signals) float64 {
	w := c.Weights
	raw := w.Buyer*s.BuyerScore +
		w.Grant*s.GrantScore +
		w.Lexical*s.Lexical +
		w.Deadline*s.Deadline +
		w.Geo*s.Geo +
		s.KeywordBoost
	return math.Min(raw, c.RawCap)
}

// Confidence maps a raw score through the sigmoid, amplifies it by deadline
// urgency and returns a value in [0, 100] rounded to two decimals.
func (c *Config) Confidence(raw, deadline float64) float64 {
	conf := Sigmoid(c.Sigmoid.Steepness*(raw-c.Sigmoid.Midpoint)) * 100
	conf = math.Min(100, conf*(1+c.RecencyAmplification*deadline))
	return Round2(math.Max(0, conf))
}

// Sigmoid is the logistic function.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Round3 rounds to three decimal places.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

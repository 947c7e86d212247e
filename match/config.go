package match

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Weights are the linear coefficients of the raw score.
type Weights struct {
	Buyer    float64 `json:"buyer"`
	Grant    float64 `json:"grant"`
	Lexical  float64 `json:"lexical"`
	Deadline float64 `json:"deadline"`
	Geo      float64 `json:"geo"`
}

// SigmoidConfig shapes the raw-to-confidence transform.
type SigmoidConfig struct {
	// Midpoint is the raw score that maps to 50% before recency amplification.
	Midpoint float64 `json:"midpoint"`
	// Steepness controls how sharply confidence rises around the midpoint.
	Steepness float64 `json:"steepness"`
}

// KeywordConfig tunes the keyword boost.
type KeywordConfig struct {
	// AlignmentThreshold is the minimum similarity between a buyer term and the
	// requested product for the term to be considered at all.
	AlignmentThreshold float64 `json:"alignment_threshold"`
	// StrictThreshold is the minimum similarity between a term and the grant's
	// keyword text for a strict match. The term must also occur literally.
	StrictThreshold float64 `json:"strict_threshold"`
	// MatchScale multiplies ln(1+similarity) for each strict match.
	MatchScale float64 `json:"match_scale"`
	// ContextBoost is added when the buyer profile mentions the product and a strict match fired.
	ContextBoost float64 `json:"context_boost"`
	// ContextFloor is the minimum boost when the buyer profile mentions the product but nothing matched strictly.
	ContextFloor float64 `json:"context_floor"`
	// Penalty replaces the boost when neither a strict nor a contextual match fired.
	Penalty float64 `json:"penalty"`
	// IrrelevantFactor scales the boost when no matched term mentions the product.
	IrrelevantFactor float64 `json:"irrelevant_factor"`
	// MinBoost and MaxBoost clamp the final boost.
	MinBoost float64 `json:"min_boost"`
	MaxBoost float64 `json:"max_boost"`
}

// Config holds every tuned constant of the scoring engine.
type Config struct {
	Weights Weights `json:"weights"`

	// RawCap bounds the raw score so compounding boosts cannot saturate confidence.
	RawCap float64 `json:"raw_cap"`

	Sigmoid SigmoidConfig `json:"sigmoid"`

	// RecencyAmplification scales confidence by (1 + RecencyAmplification*deadline).
	RecencyAmplification float64 `json:"recency_amplification"`

	// DeadlineHorizonDays is the decay constant of the deadline signal.
	DeadlineHorizonDays float64 `json:"deadline_horizon_days"`
	// DeadlineFallback is the deadline signal for unparsable dates.
	DeadlineFallback float64 `json:"deadline_fallback"`

	// GeoHit and GeoMiss are the geo signal values.
	GeoHit  float64 `json:"geo_hit"`
	GeoMiss float64 `json:"geo_miss"`

	Keyword KeywordConfig `json:"keyword"`
}

// DefaultConfig returns the tuned production constants.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			Buyer:    0.20,
			Grant:    0.15,
			Lexical:  0.25,
			Deadline: 0.10,
			Geo:      0.15,
		},
		RawCap:  0.6,
		Sigmoid: SigmoidConfig{
			Midpoint:  0.4,
			Steepness: 10,
		},
		RecencyAmplification: 0.4,
		DeadlineHorizonDays:  120,
		DeadlineFallback:     0.5,
		GeoHit:               1.0,
		GeoMiss:              0.7,
		Keyword:              KeywordConfig{
			AlignmentThreshold: 0.6,
			StrictThreshold:    0.85,
			MatchScale:         0.25,
			ContextBoost:       0.15,
			ContextFloor:       0.1,
			Penalty:            -0.1,
			IrrelevantFactor:   0.2,
			MinBoost:           -0.1,
			MaxBoost:           0.6,
		},
	}
}

// LoadConfig reads a JSON file on top of DefaultConfig. Fields absent from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	w := c.Weights
	check(w.Buyer >= 0 && w.Grant >= 0 && w.Lexical >= 0 && w.Deadline >= 0 && w.Geo >= 0, "weights must be non-negative")
	check(c.RawCap > 0, "raw_cap must be positive")
	check(c.Sigmoid.Steepness > 0, "sigmoid.steepness must be positive")
	check(c.RecencyAmplification >= 0, "recency_amplification must be non-negative")
	check(c.DeadlineHorizonDays > 0, "deadline_horizon_days must be positive")
	check(inUnit(c.DeadlineFallback), "deadline_fallback must be in [0, 1]")
	check(inUnit(c.GeoHit) && inUnit(c.GeoMiss), "geo_hit and geo_miss must be in [0, 1]")

	k := c.Keyword
	check(inUnit(k.AlignmentThreshold), "keyword.alignment_threshold must be in [0, 1]")
	check(inUnit(k.StrictThreshold), "keyword.strict_threshold must be in [0, 1]")
	check(k.MinBoost <= k.MaxBoost, "keyword.min_boost must not exceed keyword.max_boost")

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

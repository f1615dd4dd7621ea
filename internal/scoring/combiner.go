package scoring

import (
	"fmt"
	"math"

	"github.com/b2kgrowth/leadsniffer/internal/domain"
)

// weightSumTolerance absorbs float rounding when validating that the
// weights sum to 1.0.
const weightSumTolerance = 1e-9

// Band thresholds (inclusive lower bounds, evaluated top-down).
const (
	bandHighMin   = 70
	bandMediumMin = 50
	bandLowMin    = 30
)

// Weights holds the combiner weight per detector category. Each sub-score
// is already in [0,100], so as long as the weights sum to 1.0 the final
// score is in [0,100] by construction.
type Weights struct {
	Keyword    float64
	Question   float64
	Urgency    float64
	Geographic float64
	Engagement float64
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{
		Keyword:    0.35,
		Question:   0.25,
		Urgency:    0.20,
		Geographic: 0.10,
		Engagement: 0.10,
	}
}

// Validate enforces the scale contract: weights must sum to exactly 1.0.
// A violation is a configuration bug and must be fatal at startup, never
// detected per request.
func (w Weights) Validate() error {
	sum := w.Keyword + w.Question + w.Urgency + w.Geographic + w.Engagement
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("combiner weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// of returns the weight for a detector category.
func (w Weights) of(cat domain.SignalCategory) float64 {
	switch cat {
	case domain.SignalKeyword:
		return w.Keyword
	case domain.SignalQuestion:
		return w.Question
	case domain.SignalUrgency:
		return w.Urgency
	case domain.SignalGeographic:
		return w.Geographic
	case domain.SignalEngagement:
		return w.Engagement
	default:
		return 0
	}
}

// Combine applies the weights to the sub-scores and returns the final
// score in [0,100].
func (w Weights) Combine(subScores []domain.SubScore) float64 {
	var total float64
	for _, s := range subScores {
		total += w.of(s.Category) * s.Value
	}
	return total
}

// BandFor maps a final score to its priority band. Intervals are closed on
// the lower bound; the highest qualifying band wins.
func BandFor(score float64) domain.Band {
	switch {
	case score >= bandHighMin:
		return domain.BandHigh
	case score >= bandMediumMin:
		return domain.BandMedium
	case score >= bandLowMin:
		return domain.BandLow
	default:
		return domain.BandNone
	}
}

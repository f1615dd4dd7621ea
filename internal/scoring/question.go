package scoring

import (
	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/lexicon"
)

// anyMatchScore is the sub-score awarded when at least one pattern or term
// matches in an any-match detector. One clear signal is as informative as
// many, so these detectors are thresholds, not accumulators.
const anyMatchScore = 100

// DetectQuestion scores the question-pattern families against the raw
// corpus. Any pattern match in any family yields the full score; the
// matched terms record the families that fired.
func DetectQuestion(lex *lexicon.Lexicon, corpus string) domain.SubScore {
	families := lex.MatchQuestions(corpus)

	var value float64
	if len(families) > 0 {
		value = anyMatchScore
	}

	return domain.SubScore{
		Category:     domain.SignalQuestion,
		Value:        value,
		MatchedTerms: families,
	}
}

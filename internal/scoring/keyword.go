// Package scoring implements the five signal detectors and the weighted
// score combiner. Every detector is a pure function of one post and the
// read-only lexicon; none keeps per-post state, so they are safe to run
// concurrently across posts without synchronization.
package scoring

import (
	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/lexicon"
)

// Fixed point allotments per keyword category. Scoring is non-cumulative:
// one matching term earns the whole allotment, more matches earn nothing
// extra. Counting occurrences would reward repetition, not relevance.
const (
	primaryPoints = 50
	symptomPoints = 30
	contextPoints = 20
)

var keywordAllotments = []struct {
	category lexicon.KeywordCategory
	points   float64
}{
	{lexicon.KeywordPrimary, primaryPoints},
	{lexicon.KeywordSymptom, symptomPoints},
	{lexicon.KeywordContext, contextPoints},
}

// DetectKeywords scores the three keyword categories against the normalized
// corpus. Matching is case-insensitive substring per category; the sub-score
// is the sum of the allotments earned, at most 100.
func DetectKeywords(lex *lexicon.Lexicon, normalizedCorpus string) domain.SubScore {
	var value float64
	var matched []string

	for _, a := range keywordAllotments {
		terms := lex.MatchKeywords(a.category, normalizedCorpus)
		if len(terms) > 0 {
			value += a.points
			matched = append(matched, terms...)
		}
	}

	return domain.SubScore{
		Category:     domain.SignalKeyword,
		Value:        value,
		MatchedTerms: matched,
	}
}

package scoring

import (
	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/lexicon"
)

// DetectUrgency scores the urgency term families against the normalized
// corpus: any match in any family yields the full score.
func DetectUrgency(lex *lexicon.Lexicon, normalizedCorpus string) domain.SubScore {
	matched := lex.MatchUrgency(normalizedCorpus)

	var value float64
	if len(matched) > 0 {
		value = anyMatchScore
	}

	return domain.SubScore{
		Category:     domain.SignalUrgency,
		Value:        value,
		MatchedTerms: matched,
	}
}

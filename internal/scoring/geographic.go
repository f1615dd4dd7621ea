package scoring

import (
	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/lexicon"
)

// DetectGeographic scores the supported-region allow-list against the
// normalized corpus. Any whole-word match for any supported country yields
// the full score. Real but unsupported locations do not match and correctly
// score zero.
func DetectGeographic(lex *lexicon.Lexicon, normalizedCorpus string) domain.SubScore {
	matched := lex.MatchRegions(normalizedCorpus)

	var value float64
	if len(matched) > 0 {
		value = anyMatchScore
	}

	return domain.SubScore{
		Category:     domain.SignalGeographic,
		Value:        value,
		MatchedTerms: matched,
	}
}

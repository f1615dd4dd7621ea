// Package lexicon holds the static term tables and compiled patterns the
// signal detectors match against. A Lexicon is built once, compiled, and
// never mutated; hot reload happens by swapping the whole structure through
// a Store so readers never observe a half-updated table.
package lexicon

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// KeywordCategory is one of the three keyword tables.
type KeywordCategory string

// Keyword categories with their fixed point allotments.
const (
	KeywordPrimary KeywordCategory = "primary"
	KeywordSymptom KeywordCategory = "symptom"
	KeywordContext KeywordCategory = "context"
)

// Question pattern families.
const (
	QuestionTesting  = "testing"
	QuestionSymptom  = "symptom"
	QuestionRisk     = "risk"
	QuestionExposure = "exposure"
)

// Urgency term families.
const (
	UrgencyDirect        = "direct"
	UrgencyEmotional     = "emotional"
	UrgencyTimeSensitive = "time_sensitive"
	UrgencySeverity      = "severity"
)

// Tables is the raw, uncompiled lexicon content. It is what a config file or
// test supplies; Compile turns it into a matchable Lexicon.
type Tables struct {
	Version  string
	Keywords map[KeywordCategory][]string
	// Regions maps a supported country to its term set (country name,
	// demonym, major cities). A closed allow-list, not a geocoder.
	Regions map[string][]string
	// Questions maps a pattern family to its regex sources.
	Questions map[string][]string
	// Urgency maps a term family to its phrases.
	Urgency map[string][]string
}

// Lexicon is the compiled, immutable form shared read-only across all
// detector invocations.
type Lexicon struct {
	version string

	// keywordTerms keeps the normalized terms per category in matcher order
	// so matcher hit indices map back to terms.
	keywordTerms    map[KeywordCategory][]string
	keywordMatchers map[KeywordCategory]*ahocorasick.Matcher

	regionTerms map[string][]string // country -> normalized terms

	questionPatterns map[string][]*regexp.Regexp
	urgencyTerms     map[string][]string // family -> normalized phrases
}

// Compile validates and compiles raw tables into an immutable Lexicon.
func Compile(t Tables) (*Lexicon, error) {
	if t.Version == "" {
		return nil, fmt.Errorf("lexicon: version is required")
	}

	lex := &Lexicon{
		version:          t.Version,
		keywordTerms:     make(map[KeywordCategory][]string, len(t.Keywords)),
		keywordMatchers:  make(map[KeywordCategory]*ahocorasick.Matcher, len(t.Keywords)),
		regionTerms:      make(map[string][]string, len(t.Regions)),
		questionPatterns: make(map[string][]*regexp.Regexp, len(t.Questions)),
		urgencyTerms:     make(map[string][]string, len(t.Urgency)),
	}

	for cat, terms := range t.Keywords {
		normalized := normalizeTerms(terms)
		if len(normalized) == 0 {
			continue
		}
		lex.keywordTerms[cat] = normalized
		lex.keywordMatchers[cat] = ahocorasick.NewStringMatcher(normalized)
	}

	for country, terms := range t.Regions {
		normalized := normalizeTerms(terms)
		if len(normalized) > 0 {
			lex.regionTerms[strings.ToLower(country)] = normalized
		}
	}

	for family, sources := range t.Questions {
		compiled := make([]*regexp.Regexp, 0, len(sources))
		for _, src := range sources {
			re, err := regexp.Compile("(?i)" + src)
			if err != nil {
				return nil, fmt.Errorf("lexicon: question pattern %q in family %s: %w", src, family, err)
			}
			compiled = append(compiled, re)
		}
		lex.questionPatterns[family] = compiled
	}

	for family, terms := range t.Urgency {
		if normalized := normalizeTerms(terms); len(normalized) > 0 {
			lex.urgencyTerms[family] = normalized
		}
	}

	return lex, nil
}

// MustCompile is Compile for static tables known to be valid.
func MustCompile(t Tables) *Lexicon {
	lex, err := Compile(t)
	if err != nil {
		panic(err)
	}
	return lex
}

// Version returns the lexicon version string.
func (l *Lexicon) Version() string { return l.version }

// MatchKeywords returns the unique terms from the given category found as
// substrings of the normalized corpus.
func (l *Lexicon) MatchKeywords(cat KeywordCategory, normalizedCorpus string) []string {
	matcher := l.keywordMatchers[cat]
	if matcher == nil {
		return nil
	}
	hits := matcher.Match([]byte(normalizedCorpus))
	if len(hits) == 0 {
		return nil
	}
	terms := l.keywordTerms[cat]
	seen := make(map[string]bool, len(hits))
	matched := make([]string, 0, len(hits))
	for _, idx := range hits {
		if idx >= len(terms) || seen[terms[idx]] {
			continue
		}
		seen[terms[idx]] = true
		matched = append(matched, terms[idx])
	}
	sort.Strings(matched)
	return matched
}

// MatchRegions returns the region terms found as whole words in the
// normalized corpus, across all supported countries.
func (l *Lexicon) MatchRegions(normalizedCorpus string) []string {
	padded := " " + normalizedCorpus + " "
	var matched []string
	for _, terms := range l.regionTerms {
		for _, term := range terms {
			if strings.Contains(padded, " "+term+" ") {
				matched = append(matched, term)
			}
		}
	}
	sort.Strings(matched)
	return matched
}

// MatchQuestions returns the pattern families with at least one match
// against the raw corpus. Patterns run on unnormalized text so they can
// account for punctuation and contractions themselves.
func (l *Lexicon) MatchQuestions(corpus string) []string {
	var families []string
	for family, patterns := range l.questionPatterns {
		for _, re := range patterns {
			if re.MatchString(corpus) {
				families = append(families, family)
				break
			}
		}
	}
	sort.Strings(families)
	return families
}

// MatchUrgency returns the urgency phrases found as whole words in the
// normalized corpus.
func (l *Lexicon) MatchUrgency(normalizedCorpus string) []string {
	padded := " " + normalizedCorpus + " "
	var matched []string
	for _, terms := range l.urgencyTerms {
		for _, term := range terms {
			if strings.Contains(padded, " "+term+" ") {
				matched = append(matched, term)
			}
		}
	}
	sort.Strings(matched)
	return matched
}

// Store publishes the current lexicon to concurrent readers. Swapping
// replaces the whole compiled structure atomically.
type Store struct {
	current atomic.Pointer[Lexicon]
}

// NewStore creates a store holding the given lexicon.
func NewStore(lex *Lexicon) *Store {
	s := &Store{}
	s.current.Store(lex)
	return s
}

// Current returns the lexicon readers should match against.
func (s *Store) Current() *Lexicon {
	return s.current.Load()
}

// Swap atomically replaces the published lexicon.
func (s *Store) Swap(lex *Lexicon) {
	s.current.Store(lex)
}

// NormalizeText prepares a corpus or term for matching: lowercase, strip
// diacritics, and replace every non-alphanumeric rune with a space so word
// boundaries survive punctuation.
func NormalizeText(text string) string {
	text = stripDiacritics(strings.ToLower(text))

	var b strings.Builder
	b.Grow(len(text))
	lastSpace := false
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		n := NormalizeText(term)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

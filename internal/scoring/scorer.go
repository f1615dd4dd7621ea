package scoring

import (
	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/lexicon"
	"github.com/b2kgrowth/leadsniffer/internal/logger"
)

// Scorer runs the five detectors against a post and combines their
// sub-scores into the final weighted score and band.
type Scorer struct {
	store   *lexicon.Store
	weights Weights
	log     logger.Logger
}

// Result holds the scoring outcome for one post.
type Result struct {
	Score     float64
	Band      domain.Band
	SubScores []domain.SubScore
}

// NewScorer creates a scorer over the given lexicon store. It fails when
// the weights violate the sum-to-1.0 invariant; callers must treat that as
// fatal at startup.
func NewScorer(store *lexicon.Store, weights Weights, log logger.Logger) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Scorer{store: store, weights: weights, log: log}, nil
}

// Score runs every detector over the post. The post must already have
// passed boundary validation; detectors never error on well-formed input,
// an absence of matches is a valid zero outcome.
func (s *Scorer) Score(post *domain.Post) Result {
	lex := s.store.Current()
	corpus := post.Corpus()
	normalized := lexicon.NormalizeText(corpus)

	subScores := []domain.SubScore{
		DetectKeywords(lex, normalized),
		DetectQuestion(lex, corpus),
		DetectUrgency(lex, normalized),
		DetectGeographic(lex, normalized),
		DetectEngagement(post.CommentCount),
	}

	score := s.weights.Combine(subScores)
	band := BandFor(score)

	s.log.Debug("post scored",
		logger.String("reddit_id", post.RedditID),
		logger.Float64("score", score),
		logger.String("band", string(band)),
		logger.String("lexicon_version", lex.Version()),
	)

	return Result{Score: score, Band: band, SubScores: subScores}
}

// Weights returns the configured combiner weights.
func (s *Scorer) Weights() Weights {
	return s.weights
}

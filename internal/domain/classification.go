package domain

import "time"

// SignalCategory identifies which detector produced a sub-score.
type SignalCategory string

// Detector categories, one per signal detector.
const (
	SignalKeyword    SignalCategory = "keyword"
	SignalQuestion   SignalCategory = "question"
	SignalUrgency    SignalCategory = "urgency"
	SignalGeographic SignalCategory = "geographic"
	SignalEngagement SignalCategory = "engagement"
)

// SubScore is the output of one signal detector, before weighting.
// Produced fresh per post and never mutated afterwards.
type SubScore struct {
	Category     SignalCategory `json:"category"`
	Value        float64        `json:"value"` // 0-100
	MatchedTerms []string       `json:"matched_terms"`
}

// Band is the discretized priority bucket derived from the final score.
type Band string

// Priority bands, highest first.
const (
	BandHigh   Band = "HIGH"   // [70,100]
	BandMedium Band = "MEDIUM" // [50,70)
	BandLow    Band = "LOW"    // [30,50)
	BandNone   Band = "NONE"   // [0,30)
)

// ClassificationRecord is the per-post result assembled by the engine.
// Created once, immutable thereafter, owned by the caller; the engine does
// not persist it.
type ClassificationRecord struct {
	Score     float64    `json:"score"` // 0-100
	Band      Band       `json:"band"`
	Tag       Tag        `json:"tag"`
	IsLead    bool       `json:"is_lead"`
	SubScores []SubScore `json:"sub_scores"`

	// Classification metadata
	EngineVersion    string    `json:"engine_version"`
	TaggingMethod    string    `json:"tagging_method"` // "rule_based" or "llm"
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	ClassifiedAt     time.Time `json:"classified_at"`
}

// Tagging method constants.
const (
	TaggingRuleBased = "rule_based"
	TaggingLLM       = "llm"
)

// ScoredPost joins the immutable input post with its classification record,
// ready for storage and for the leads listing API.
type ScoredPost struct {
	Post
	LeadScore float64 `json:"lead_score" db:"lead_score"`
	Band      Band    `json:"band" db:"band"`
	LeadTag   Tag     `json:"lead_tag" db:"lead_tag"`
	IsLead    bool    `json:"is_lead" db:"is_lead"`
}

// NewScoredPost flattens a post and its record for downstream consumers.
func NewScoredPost(post *Post, rec *ClassificationRecord) *ScoredPost {
	return &ScoredPost{
		Post:      *post,
		LeadScore: rec.Score,
		Band:      rec.Band,
		LeadTag:   rec.Tag,
		IsLead:    rec.IsLead,
	}
}

package scoring

import "github.com/b2kgrowth/leadsniffer/internal/domain"

// Engagement buckets. Boundaries are inclusive of the lower bound; together
// the cases cover every non-negative comment count with no gaps or overlaps.
const (
	engagementVeryHighMin = 20
	engagementHighMin     = 10
	engagementMediumMin   = 5
	engagementLowMin      = 2
)

// DetectEngagement scores community engagement from the comment count alone.
// It never reads the post text.
func DetectEngagement(commentCount int) domain.SubScore {
	var value float64
	switch {
	case commentCount >= engagementVeryHighMin:
		value = 100
	case commentCount >= engagementHighMin:
		value = 80
	case commentCount >= engagementMediumMin:
		value = 60
	case commentCount >= engagementLowMin:
		value = 40
	case commentCount == 1:
		value = 20
	default:
		value = 0
	}

	return domain.SubScore{
		Category:     domain.SignalEngagement,
		Value:        value,
		MatchedTerms: []string{},
	}
}

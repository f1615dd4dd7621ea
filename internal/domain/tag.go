package domain

// Tag is one of the closed set of classification labels. Exactly one tag is
// assigned per post; lead status is always a membership test on the tag.
type Tag string

// Lead tags: the post expresses genuine testing intent.
const (
	TagDiagnosisConfirmation Tag = "diagnosis_confirmation"
	TagTestGuidance          Tag = "test_guidance"
	TagClinicRecommendation  Tag = "clinic_recommendation"
	TagHelpRequest           Tag = "help_request"
	TagResultInterpretation  Tag = "result_interpretation"
	TagWindowPeriod          Tag = "window_period"
	TagRetestFollowup        Tag = "retest_followup"
	TagPartnerRisk           Tag = "partner_risk"
	TagSiteSpecificTesting   Tag = "site_specific_testing"
	TagUrgentExposure        Tag = "urgent_exposure"
	TagPricingTurnaround     Tag = "pricing_turnaround"
	TagHomeTestPreference    Tag = "home_test_preference"
	TagTravelTesting         Tag = "travel_testing"
	TagVaccinationRequest    Tag = "vaccination_request"
)

// Exclusion tags: no testing intent.
const (
	TagExcludeInfo         Tag = "exclude_info" // default fallback
	TagExcludeAdvice       Tag = "exclude_advice"
	TagExcludeSuccessStory Tag = "exclude_success_story"
)

// LeadTags is the set of tags that mark a post as a lead.
var LeadTags = map[Tag]bool{
	TagDiagnosisConfirmation: true,
	TagTestGuidance:          true,
	TagClinicRecommendation:  true,
	TagHelpRequest:           true,
	TagResultInterpretation:  true,
	TagWindowPeriod:          true,
	TagRetestFollowup:        true,
	TagPartnerRisk:           true,
	TagSiteSpecificTesting:   true,
	TagUrgentExposure:        true,
	TagPricingTurnaround:     true,
	TagHomeTestPreference:    true,
	TagTravelTesting:         true,
	TagVaccinationRequest:    true,
}

// ExclusionTags is the set of non-lead tags.
var ExclusionTags = map[Tag]bool{
	TagExcludeInfo:         true,
	TagExcludeAdvice:       true,
	TagExcludeSuccessStory: true,
}

// IsLead reports whether t marks a lead.
func (t Tag) IsLead() bool {
	return LeadTags[t]
}

// Valid reports whether t belongs to the taxonomy.
func (t Tag) Valid() bool {
	return LeadTags[t] || ExclusionTags[t]
}

// ParseTag validates a raw string against the taxonomy. Unknown values fail
// closed to the exclusion fallback; ok is false so callers can log the anomaly.
func ParseTag(s string) (tag Tag, ok bool) {
	t := Tag(s)
	if t.Valid() {
		return t, true
	}
	return TagExcludeInfo, false
}

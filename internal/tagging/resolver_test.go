//nolint:testpackage // Rule tables are unexported.
package tagging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/logger"
)

func TestRuleResolver_LeadTags(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		body     string
		expected domain.Tag
	}{
		{
			name:     "urgent exposure",
			title:    "Should I get tested after unprotected sex with a new partner last night? Freaking out.",
			expected: domain.TagUrgentExposure,
		},
		{
			name:     "site specific testing",
			title:    "Do I need a throat swab or is a urine test enough?",
			expected: domain.TagSiteSpecificTesting,
		},
		{
			name:     "window period",
			title:    "Is 2 weeks after exposure too early to test for HIV?",
			expected: domain.TagWindowPeriod,
		},
		{
			name:     "result interpretation",
			title:    "My test results came back equivocal, what now?",
			expected: domain.TagResultInterpretation,
		},
		{
			name:     "retest followup",
			title:    "Finished my antibiotics, when do I retest?",
			expected: domain.TagRetestFollowup,
		},
		{
			name:     "vaccination request",
			title:    "Where do adults get the HPV shot?",
			expected: domain.TagVaccinationRequest,
		},
		{
			name:     "travel testing",
			title:    "Need a full screen before I travel abroad for work",
			expected: domain.TagTravelTesting,
		},
		{
			name:     "home test preference",
			title:    "Looking for a discreet at-home test kit",
			expected: domain.TagHomeTestPreference,
		},
		{
			name:     "pricing turnaround",
			title:    "How much does a full panel cost and how fast are results?",
			expected: domain.TagPricingTurnaround,
		},
		{
			name:     "partner risk",
			title:    "Could I have passed this to my girlfriend?",
			body:     "Worried about the risk to her.",
			expected: domain.TagPartnerRisk,
		},
		{
			name:     "clinic recommendation",
			title:    "Where can I go for confidential testing? Any clinic near downtown?",
			expected: domain.TagClinicRecommendation,
		},
		{
			name:     "test guidance",
			title:    "Which test covers the most common infections?",
			expected: domain.TagTestGuidance,
		},
		{
			name:     "diagnosis confirmation",
			title:    "Do I have herpes? Photos in comments.",
			expected: domain.TagDiagnosisConfirmation,
		},
		{
			name:     "help request",
			title:    "Not sure what to do after a positive diagnosis, please help",
			expected: domain.TagHelpRequest,
		},
	}

	resolver := NewRuleResolver(logger.NewNop())
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := &domain.Post{Title: tt.title, Body: tt.body}
			got := resolver.Resolve(ctx, post)
			assert.Equal(t, tt.expected, got,
				"title %q should resolve to %s", tt.title, tt.expected)
			assert.True(t, got.IsLead(), "%s should be a lead tag", got)
		})
	}
}

func TestRuleResolver_PriorityOrder(t *testing.T) {
	resolver := NewRuleResolver(logger.NewNop())
	ctx := context.Background()

	// Matches both the generic test guidance signature and the urgent
	// exposure signature; the more specific one must win.
	post := &domain.Post{
		Title: "Should I get tested? Condom broke last night and I'm panicking",
	}
	assert.Equal(t, domain.TagUrgentExposure, resolver.Resolve(ctx, post),
		"urgent exposure should outrank generic test guidance")

	// Site-specific beats generic guidance.
	post = &domain.Post{Title: "Should I get tested with a rectal swab too?"}
	assert.Equal(t, domain.TagSiteSpecificTesting, resolver.Resolve(ctx, post),
		"site-specific testing should outrank generic test guidance")
}

func TestRuleResolver_ExclusionTags(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected domain.Tag
	}{
		{
			name:     "success story",
			title:    "Six months later and finally negative, my success story",
			expected: domain.TagExcludeSuccessStory,
		},
		{
			name:     "general advice",
			title:    "Tips for staying safe: how to prevent infections",
			expected: domain.TagExcludeAdvice,
		},
		{
			name:     "informational fallback",
			title:    "Interesting article about public health funding",
			expected: domain.TagExcludeInfo,
		},
		{
			name:     "empty body fallback",
			title:    "Thursday megathread",
			expected: domain.TagExcludeInfo,
		},
	}

	resolver := NewRuleResolver(logger.NewNop())
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(ctx, &domain.Post{Title: tt.title})
			assert.Equal(t, tt.expected, got,
				"title %q should resolve to %s", tt.title, tt.expected)
			assert.False(t, got.IsLead(), "%s must not be a lead tag", got)
		})
	}
}

func TestRuleResolver_Deterministic(t *testing.T) {
	resolver := NewRuleResolver(logger.NewNop())
	ctx := context.Background()
	post := &domain.Post{
		Title: "Partner tested positive, should I get tested today?",
		Body:  "We live together and I am scared.",
	}

	first := resolver.Resolve(ctx, post)
	for i := 0; i < 20; i++ {
		if got := resolver.Resolve(ctx, post); got != first {
			t.Fatalf("run %d diverged: %s vs %s", i, got, first)
		}
	}
}

func TestRuleResolver_Method(t *testing.T) {
	if got := NewRuleResolver(nil).Method(); got != domain.TaggingRuleBased {
		t.Errorf("got %s", got)
	}
}

func TestLeadRules_EveryRuleTagIsValidLead(t *testing.T) {
	seen := map[domain.Tag]bool{}
	for _, rule := range leadRules {
		if !rule.tag.IsLead() {
			t.Errorf("rule tag %s is not a lead tag", rule.tag)
		}
		if seen[rule.tag] {
			t.Errorf("duplicate rule for tag %s", rule.tag)
		}
		seen[rule.tag] = true
	}
	if len(seen) != len(domain.LeadTags) {
		t.Errorf("rules cover %d lead tags, taxonomy has %d", len(seen), len(domain.LeadTags))
	}
}

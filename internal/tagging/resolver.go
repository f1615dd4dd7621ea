// Package tagging assigns exactly one taxonomy tag to a post. The default
// resolver is deterministic and rule-based; an external resolver can delegate
// to a language-model service but always fails closed into the taxonomy.
package tagging

import (
	"context"

	"github.com/b2kgrowth/leadsniffer/internal/domain"
	"github.com/b2kgrowth/leadsniffer/internal/logger"
)

// Resolver maps a post to a single taxonomy tag. Implementations must return
// a valid tag for every input; tagging never aborts the pipeline.
type Resolver interface {
	Resolve(ctx context.Context, post *domain.Post) domain.Tag
	Method() string
}

// RuleResolver walks the lead signatures in priority order and returns the
// first match. Posts matching no lead signature get a specific exclusion tag
// when one applies, otherwise exclude_info. Same input, same tag, always.
type RuleResolver struct {
	log logger.Logger
}

// NewRuleResolver creates the deterministic resolver.
func NewRuleResolver(log logger.Logger) *RuleResolver {
	if log == nil {
		log = logger.NewNop()
	}
	return &RuleResolver{log: log}
}

// Resolve classifies against the raw title and body, case-insensitively.
func (r *RuleResolver) Resolve(_ context.Context, post *domain.Post) domain.Tag {
	corpus := post.Corpus()

	for i := range leadRules {
		if leadRules[i].matches(corpus) {
			return leadRules[i].tag
		}
	}
	for i := range exclusionRules {
		if exclusionRules[i].matches(corpus) {
			return exclusionRules[i].tag
		}
	}
	return domain.TagExcludeInfo
}

// Method identifies the tagging strategy in classification records.
func (r *RuleResolver) Method() string {
	return domain.TaggingRuleBased
}

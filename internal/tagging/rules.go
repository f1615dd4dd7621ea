package tagging

import (
	"regexp"

	"github.com/b2kgrowth/leadsniffer/internal/domain"
)

// tagRule is one lead-tag signature: the rule matches when every cue group
// has at least one matching pattern. Rules are evaluated in slice order, so
// the order of leadRules IS the documented priority order over lead tags.
type tagRule struct {
	tag  domain.Tag
	cues [][]*regexp.Regexp
}

func compileAll(sources ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(sources))
	for i, src := range sources {
		patterns[i] = regexp.MustCompile("(?i)" + src)
	}
	return patterns
}

// Exposure-recency cues shared by urgent_exposure.
var recencyCues = compileAll(
	`last night`,
	`this morning`,
	`yesterday`,
	`today`,
	`tonight`,
	`hours? ago`,
	`just (happened|had|hooked)`,
)

// leadRules define the recognizable signature per lead tag, most specific
// first. When several signatures match, the first wins; the generic
// help_request signature is deliberately last.
var leadRules = []tagRule{
	{
		tag: domain.TagUrgentExposure,
		cues: [][]*regexp.Regexp{
			recencyCues,
			compileAll(
				`freaking out`, `panic`, `scared`, `terrified`,
				`worried`, `unprotected`, `no condom`, `condom broke`,
				`exposed`, `\bpep\b`, `urgent`,
			),
		},
	},
	{
		tag: domain.TagSiteSpecificTesting,
		cues: [][]*regexp.Regexp{
			compileAll(`throat`, `rectal`, `\banal\b`, `\boral\b`, `urethral`, `vaginal`),
			compileAll(`swab`, `test`, `screen`),
		},
	},
	{
		tag: domain.TagWindowPeriod,
		cues: [][]*regexp.Regexp{
			compileAll(
				`window period`,
				`how (long|soon) (after|until|before)\b.*\b(test|accurate|detect|show)`,
				`(days?|weeks?|months?) after (exposure|sex)\b.*\btest`,
				`test\b.*\b(days?|weeks?|months?) after`,
				`too (soon|early) to test`,
			),
		},
	},
	{
		tag: domain.TagResultInterpretation,
		cues: [][]*regexp.Regexp{
			compileAll(
				`(test )?results? (came|come|are) back`,
				`what (does|do) (my|the|this) results? mean`,
				`got (my|the) results?`,
				`(positive|negative|reactive|equivocal) result`,
				`tested (positive|negative)\b.*\?`,
			),
		},
	},
	{
		tag: domain.TagRetestFollowup,
		cues: [][]*regexp.Regexp{
			compileAll(
				`re-?test`,
				`test again`,
				`after (treatment|antibiotics)`,
				`finished (the |my )?(treatment|antibiotics|course)`,
				`follow.?up test`,
			),
		},
	},
	{
		tag: domain.TagVaccinationRequest,
		cues: [][]*regexp.Regexp{
			compileAll(`vaccin`, `gardasil`, `hep(atitis)? b shot`, `hpv (shot|jab)`),
		},
	},
	{
		tag: domain.TagTravelTesting,
		cues: [][]*regexp.Regexp{
			compileAll(`travel`, `\btrip\b`, `abroad`, `\bvisa\b`, `before (i )?fly`),
			compileAll(`test`, `certificate`, `require`, `screen`),
		},
	},
	{
		tag: domain.TagHomeTestPreference,
		cues: [][]*regexp.Regexp{
			compileAll(
				`home (test|kit|collection)`,
				`at.?home (test|kit)`,
				`self.?(test|swab|collect)`,
				`mail.?in`,
				`discreet`,
			),
		},
	},
	{
		tag: domain.TagPricingTurnaround,
		cues: [][]*regexp.Regexp{
			compileAll(
				`\bcost\b`, `\bprice\b`, `how much`, `expensive`, `afford`,
				`same.?day`, `turnaround`, `how (fast|quick|long)\b.*\bresults?`,
				`results? (in|within) \d`,
			),
		},
	},
	{
		tag: domain.TagPartnerRisk,
		cues: [][]*regexp.Regexp{
			compileAll(`partner`, `boyfriend`, `girlfriend`, `\bwife\b`, `husband`, `spouse`),
			compileAll(
				`risk`, `infect`, `\bpass (it|this)\b`, `transmit`, `give (it|them|her|him)`,
				`both (get )?tested`, `(catch|caught) (it|this) from`,
			),
		},
	},
	{
		tag: domain.TagClinicRecommendation,
		cues: [][]*regexp.Regexp{
			compileAll(
				`where (can|should|do) i (go|get)`,
				`clinic (near|in|around)`,
				`recommend\b.*\b(clinic|place|doctor)`,
				`(book|booking) (a |an )?(test|appointment)`,
				`walk.?in`,
			),
		},
	},
	{
		tag: domain.TagTestGuidance,
		cues: [][]*regexp.Regexp{
			compileAll(
				`(should|do|must) i (get |need )?(a )?test`,
				`(which|what) test`,
				`need to (get )?test`,
				`worth (getting )?test(ed|ing)?`,
				`get tested`,
				`(full|comprehensive) (sti|std)? ?screen`,
			),
		},
	},
	{
		tag: domain.TagDiagnosisConfirmation,
		cues: [][]*regexp.Regexp{
			compileAll(
				`do i have`,
				`is (this|it) (an? )?(herpes|chlamydia|gonorrh(o)?ea|syphilis|hiv|hpv|sti|std)`,
				`does this look like`,
				`could this be (an? )?(herpes|chlamydia|gonorrh(o)?ea|syphilis|hiv|hpv|sti|std)`,
			),
		},
	},
	{
		tag: domain.TagHelpRequest,
		cues: [][]*regexp.Regexp{
			compileAll(
				`what (should|do) i do`,
				`not sure what to do`,
				`next steps?`,
				`need (help|advice)`,
				`please help`,
			),
		},
	},
}

// exclusionRules choose a specific exclusion tag when no lead signature
// matched. Anything left over falls back to exclude_info.
var exclusionRules = []tagRule{
	{
		tag: domain.TagExcludeSuccessStory,
		cues: [][]*regexp.Regexp{
			compileAll(
				`success story`,
				`(finally|now) (negative|clear|cured)`,
				`\bcured\b`, `cleared up`, `recovered`,
				`all clear`,
			),
		},
	},
	{
		tag: domain.TagExcludeAdvice,
		cues: [][]*regexp.Regexp{
			compileAll(
				`(tips|advice) for (avoiding|preventing|staying)`,
				`how to (avoid|prevent|protect)`,
				`home remed(y|ies)`,
				`\bpsa\b`,
				`reminder to`,
			),
		},
	},
}

// matches reports whether every cue group has at least one matching pattern.
func (r *tagRule) matches(corpus string) bool {
	for _, group := range r.cues {
		groupHit := false
		for _, re := range group {
			if re.MatchString(corpus) {
				groupHit = true
				break
			}
		}
		if !groupHit {
			return false
		}
	}
	return true
}

package lexicon

// DefaultVersion identifies the built-in term tables.
const DefaultVersion = "2025.09"

// Default returns the built-in production lexicon, compiled.
func Default() *Lexicon {
	return MustCompile(DefaultTables())
}

// DefaultTables returns the raw built-in term tables. Callers that need a
// modified lexicon (tests, regional rollouts) can edit the copy and compile
// their own.
func DefaultTables() Tables {
	return Tables{
		Version: DefaultVersion,
		Keywords: map[KeywordCategory][]string{
			KeywordPrimary: {
				// Umbrella terms
				"sti", "std",
				"sexually transmitted infection",
				"sexually transmitted disease",
				// Specific conditions
				"chlamydia", "gardnerella", "gonorrhoea", "gonorrhea",
				"hiv", "hpv", "genital warts",
				"hepatitis", "hepatitis a", "hepatitis b", "hepatitis c",
				"herpes", "mycoplasma", "syphilis", "trichomonas",
				"ureaplasma", "zika",
				// General terms
				"sexual health", "reproductive health",
			},
			KeywordSymptom: {
				// Urinary
				"burning urination", "painful urination", "frequent urination",
				"blood in urine", "burning when i pee", "hurts to pee",
				// Genital
				"discharge", "unusual discharge", "genital pain",
				"genital itching", "genital burning", "genital sores",
				"genital bumps",
				// Visible
				"bumps", "sores", "blisters", "ulcers", "lesions", "rash",
				"swollen glands", "swollen lymph",
				// General
				"fever", "fatigue", "flu like symptoms",
				"bleeding between periods",
			},
			KeywordContext: {
				// Risk behaviours
				"unprotected sex", "no condom", "condom broke",
				"multiple partners", "one night stand", "new partner",
				// Exposure concerns
				"exposed to", "partner has", "partner tested positive",
				"hooked up",
				// Testing and medical
				"should i get tested", "get tested", "test results",
				"clinic", "doctor", "screening", "gum clinic",
				// Emotional context
				"worried about", "concerned about", "scared of",
				"panic", "anxiety",
			},
		},
		Regions: map[string][]string{
			"australia": {"australia", "australian", "aussie", "sydney", "melbourne", "brisbane", "perth"},
			"canada":    {"canada", "canadian", "toronto", "vancouver", "montreal", "calgary", "ottawa"},
			"colombia":  {"colombia", "colombian", "bogota", "medellin", "cali", "barranquilla"},
			"india":     {"india", "indian", "mumbai", "delhi", "bangalore", "hyderabad", "chennai"},
			"panama":    {"panama", "panamanian", "panama city"},
			"peru":      {"peru", "peruvian", "lima", "arequipa", "trujillo"},
			"poland":    {"poland", "polish", "warsaw", "krakow", "gdansk", "wroclaw", "poznan"},
		},
		Questions: map[string][]string{
			QuestionTesting: {
				`should\s+i\s+(get\s+)?test(ed)?`,
				`when\s+(should|can)\s+i\s+(get\s+)?(re)?test`,
				`how\s+long\s+(after|until|before)\b.*\btest`,
				`do\s+i\s+need\s+(a|to)\b.*\btest`,
				`where\s+(can|should|do)\s+i\s+(get\s+)?test(ed)?`,
				`worth\s+(getting\s+)?test(ed|ing)?`,
			},
			QuestionSymptom: {
				`what\s+are\s+(the\s+)?symptoms\s+of`,
				`is\s+this\s+(a\s+)?symptom`,
				`does\s+this\s+look\s+like`,
				`could\s+(this|it)\s+be\b`,
				`do\s+(i|these)\s+(have|look\s+like)\b`,
			},
			QuestionRisk: {
				`am\s+i\s+at\s+risk`,
				`what\s+are\s+(my|the)\s+(chances|odds)`,
				`how\s+likely\s+is`,
				`risk\s+of\s+(catching|getting|contracting)`,
				`can\s+(you|i)\s+(get|catch)\b.*\bfrom`,
			},
			QuestionExposure: {
				`i\s+think\s+i\s+(might\s+)?have`,
				`i\s+(was|got)\s+exposed\s+to`,
				`my\s+partner\s+(has|had|tested)`,
				`(slept|hooked\s+up)\s+with`,
				`i\s+may\s+have\s+(been\s+exposed|caught)`,
			},
		},
		Urgency: map[string][]string{
			UrgencyDirect: {
				"urgent", "emergency", "asap", "immediately", "right away",
				"right now",
			},
			UrgencyEmotional: {
				"panic", "panicking", "scared", "terrified", "freaking out",
				"desperate", "worried sick", "losing my mind",
			},
			UrgencyTimeSensitive: {
				"today", "this morning", "tonight", "last night", "yesterday",
				"just happened", "hours ago", "this week",
			},
			UrgencySeverity: {
				"getting worse", "spreading", "severe", "intense", "extreme",
				"unbearable", "excruciating",
			},
		},
	}
}

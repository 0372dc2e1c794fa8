package signals

// #region deltas

// Deltas maps every known signal to its trust delta. Read-only after init.
var Deltas = map[string]int{
	ShowsUnderstanding: 5,
	SectorKnowledge:    8,
	MentionsReferences: 6,
	FocusesOnROI:       4,
	PriceConcern:       -3,
	TimePressure:       -2,

	IdentifySelf:         5,
	ExplainPurpose:       5,
	ShowExpertise:        10,
	AskRelevantQuestions: 8,
	UnderstandSector:     12,
	ShowValue:            15,
	DemonstrateExpertise: 18,
	ProvideReferences:    12,
	UnderstandNeeds:      20,
	ProveROI:             25,
	AddressConcerns:      20,
	BuildRelationship:    15,
	DemonstrateSuccess:   30,
	GuaranteeResults:     25,
	LongTermVision:       20,
}

// DeltaFor returns the catalog delta for name, 0 for unknown names.
func DeltaFor(name string) int {
	return Deltas[name]
}

// #endregion deltas

// #region rules

// Rule binds a signal name to the keyword family that detects it.
type Rule struct {
	Name     string
	Delta    int
	Keywords []string
}

// DefaultRules returns the keyword families for every signal except
// sector_knowledge, whose vocabulary comes from the sector config.
func DefaultRules() []Rule {
	return []Rule{
		{ShowsUnderstanding, Deltas[ShowsUnderstanding], []string{
			"i understand", "i see what you mean", "that makes sense", "if i understand correctly",
			"so what you're saying", "i hear you",
		}},
		{MentionsReferences, Deltas[MentionsReferences], []string{
			"reference", "references", "one of our clients", "we work with", "we worked with", "case study",
			"testimonial",
		}},
		{FocusesOnROI, Deltas[FocusesOnROI], []string{
			"return on investment", "roi", "payback", "pay for itself", "savings", "save you",
		}},
		{PriceConcern, Deltas[PriceConcern], []string{
			"expensive", "cost a lot", "price is", "pricey", "discount",
		}},
		{TimePressure, Deltas[TimePressure], []string{
			"sign today", "before the end of the week", "offer expires", "hurry", "right now",
		}},

		{IdentifySelf, Deltas[IdentifySelf], []string{
			"my name is", "i'm calling from", "i am calling from", "calling on behalf of", "i work for",
		}},
		{ExplainPurpose, Deltas[ExplainPurpose], []string{
			"the reason i'm calling", "the reason for my call", "i'm calling because",
			"i am calling because", "the purpose of my call",
		}},
		{ShowExpertise, Deltas[ShowExpertise], []string{
			"in my experience", "years in", "we specialize", "best practice", "benchmark",
		}},
		{AskRelevantQuestions, Deltas[AskRelevantQuestions], []string{
			"how do you currently", "what is your current", "how do you handle", "what are your",
			"how many", "who is involved",
		}},
		{UnderstandSector, Deltas[UnderstandSector], []string{
			"in your industry", "in your sector", "your market", "your competitors", "regulation",
		}},
		{ShowValue, Deltas[ShowValue], []string{
			"the benefit for you", "you would gain", "this would allow you", "value for you",
			"help you reduce",
		}},
		{DemonstrateExpertise, Deltas[DemonstrateExpertise], []string{
			"we've solved", "we have solved", "the root cause", "we measured", "our methodology",
		}},
		{ProvideReferences, Deltas[ProvideReferences], []string{
			"i can put you in touch", "you can call them", "happy to share a reference",
			"contact at", "they agreed to be a reference",
		}},
		{UnderstandNeeds, Deltas[UnderstandNeeds], []string{
			"if i summarize your needs", "what matters most to you", "your priority is",
			"your main need", "so your need is",
		}},
		{ProveROI, Deltas[ProveROI], []string{
			"within 12 months", "paid back in", "reduction of", "percent reduction", "cut costs by",
		}},
		{AddressConcerns, Deltas[AddressConcerns], []string{
			"i understand your concern", "that's a fair concern", "regarding your concern",
			"to address that", "let me reassure you",
		}},
		{BuildRelationship, Deltas[BuildRelationship], []string{
			"long-term partner", "work together", "at your pace", "no pressure", "whenever suits you",
		}},
		{DemonstrateSuccess, Deltas[DemonstrateSuccess], []string{
			"we delivered", "results we achieved", "success story", "they increased", "they reduced",
		}},
		{GuaranteeResults, Deltas[GuaranteeResults], []string{
			"we guarantee", "money back", "pilot at our risk", "satisfaction guarantee",
			"commit to results",
		}},
		{LongTermVision, Deltas[LongTermVision], []string{
			"in three years", "in five years", "long-term roadmap", "your vision", "future growth",
		}},
	}
}

// #endregion rules

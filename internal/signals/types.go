package signals

// #region speaker

// Speaker tags who produced a conversational turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// #endregion speaker

// #region signal

// Signal is one named behavioral classification of a trainee turn.
type Signal struct {
	Name       string `json:"name"`
	TrustDelta int    `json:"trust_delta"`
}

// TotalDelta sums the deltas of sigs.
func TotalDelta(sigs []Signal) int {
	total := 0
	for _, s := range sigs {
		total += s.TrustDelta
	}
	return total
}

// Names returns the signal names in order.
func Names(sigs []Signal) []string {
	out := make([]string, len(sigs))
	for i, s := range sigs {
		out[i] = s.Name
	}
	return out
}

// #endregion signal

// #region interpreter-interface

// Interpreter reduces one turn of raw input to zero or more signals.
// Implementations must be deterministic and must not retain text.
type Interpreter interface {
	Interpret(text string, speaker Speaker) []Signal
}

// #endregion interpreter-interface

// #region signal-names

const (
	ShowsUnderstanding = "shows_understanding"
	SectorKnowledge    = "sector_knowledge"
	MentionsReferences = "mentions_references"
	FocusesOnROI       = "focuses_on_roi"
	PriceConcern       = "price_concern"
	TimePressure       = "time_pressure"

	IdentifySelf         = "identify_self"
	ExplainPurpose       = "explain_purpose"
	ShowExpertise        = "show_expertise"
	AskRelevantQuestions = "ask_relevant_questions"
	UnderstandSector     = "understand_sector"
	ShowValue            = "show_value"
	DemonstrateExpertise = "demonstrate_expertise"
	ProvideReferences    = "provide_references"
	UnderstandNeeds      = "understand_needs"
	ProveROI             = "prove_roi"
	AddressConcerns      = "address_concerns"
	BuildRelationship    = "build_relationship"
	DemonstrateSuccess   = "demonstrate_success"
	GuaranteeResults     = "guarantee_results"
	LongTermVision       = "long_term_vision"
)

// #endregion signal-names

package disposition

import "time"

// #region enums
// MentalState is the counterpart's state of mind when the call lands.
type MentalState string

const (
	Overwhelmed         MentalState = "overwhelmed"
	Stressed            MentalState = "stressed"
	NeutralState        MentalState = "neutral"
	RelativelyAvailable MentalState = "relatively_available"
)

// Mood colours how the counterpart reacts.
type Mood string

const (
	Irritated   Mood = "irritated"
	Tired       Mood = "tired"
	NeutralMood Mood = "neutral"
	Curious     Mood = "curious"
)

// ReactionStyle summarizes how the counterpart first responds.
type ReactionStyle string

const (
	ReactionNegative   ReactionStyle = "negative"
	ReactionBored      ReactionStyle = "bored"
	ReactionInterested ReactionStyle = "interested"
	ReactionHurried    ReactionStyle = "hurried"
)

// Legitimacy tests the counterpart may put the caller through.
const (
	TestAsksHowYouGotNumber    = "asksHowYouGotNumber"
	TestAsksCompanyCredentials = "asksCompanyCredentials"
	TestChallengesRelevance    = "challengesRelevance"
	TestTestsSectorKnowledge   = "testsSectorKnowledge"
)

// #endregion enums

// #region rescue
// Rescue records the behaviors that can avert termination. Conditions only
// ever go from false to true.
type Rescue struct {
	ApologizedForInterruption bool `json:"apologizedForInterruption"`
	IdentifiedSpecificProblem bool `json:"identifiedSpecificProblem"`
	ShowedSectorExpertise     bool `json:"showedSectorExpertise"`
	RequestedMinimalTime      bool `json:"requestedMinimalTime"`
}

// Count returns how many conditions are met.
func (r Rescue) Count() int {
	n := 0
	for _, b := range []bool{r.ApologizedForInterruption, r.IdentifiedSpecificProblem, r.ShowedSectorExpertise, r.RequestedMinimalTime} {
		if b {
			n++
		}
	}
	return n
}

// Merge ORs o into r.
func (r Rescue) Merge(o Rescue) Rescue {
	return Rescue{
		ApologizedForInterruption: r.ApologizedForInterruption || o.ApologizedForInterruption,
		IdentifiedSpecificProblem: r.IdentifiedSpecificProblem || o.IdentifiedSpecificProblem,
		ShowedSectorExpertise:     r.ShowedSectorExpertise || o.ShowedSectorExpertise,
		RequestedMinimalTime:      r.RequestedMinimalTime || o.RequestedMinimalTime,
	}
}

// Map returns the conditions keyed by name.
func (r Rescue) Map() map[string]bool {
	return map[string]bool{
		"apologizedForInterruption": r.ApologizedForInterruption,
		"identifiedSpecificProblem": r.IdentifiedSpecificProblem,
		"showedSectorExpertise":     r.ShowedSectorExpertise,
		"requestedMinimalTime":      r.RequestedMinimalTime,
	}
}

// #endregion rescue

// #region disposition
// Disposition is generated once per cold session. Everything except Rescue
// is fixed at generation.
type Disposition struct {
	MentalState               MentalState   `json:"mentalState"`
	PatienceLevel             int           `json:"patienceLevel"`
	PriorCallsToday           int           `json:"priorCallsToday"`
	Mood                      Mood          `json:"mood"`
	TerminationTimeoutSeconds int           `json:"terminationTimeoutSeconds"`
	TriggerPhrases            []string      `json:"terminationTriggerPhrases"`
	ReactionStyle             ReactionStyle `json:"reactionStyle"`
	LegitimacyTests           []string      `json:"legitimacyTestsActive"`
	Rescue                    Rescue        `json:"rescueConditions"`
}

// Timeout returns the termination timeout as a duration.
func (d *Disposition) Timeout() time.Duration {
	return time.Duration(d.TerminationTimeoutSeconds) * time.Second
}

// HasTest reports whether the named legitimacy test is active.
func (d *Disposition) HasTest(name string) bool {
	for _, t := range d.LegitimacyTests {
		if t == name {
			return true
		}
	}
	return false
}

// #endregion disposition

// #region tuning
// Tuning holds the timeout formula and rescue parameters.
type Tuning struct {
	TimeoutFloorSeconds   int           // lower bound of the termination timeout
	SecondsPerPatience    int           // timeout seconds per patience point
	FreeCalls             int           // prior calls that cost nothing
	SecondsPerExtraCall   int           // seconds removed per call beyond FreeCalls
	Quorum                int           // rescue conditions needed to override
	BonusAtQuorum         time.Duration // extension when exactly Quorum conditions hold
	BonusAboveQuorum      time.Duration // extension when more than Quorum hold
	MaxPriorCalls         int           // priorCallsToday is drawn from 0..MaxPriorCalls
	LegitimacyProbability map[string]float64
}

// DefaultTuning returns the standard constants.
func DefaultTuning() Tuning {
	return Tuning{
		TimeoutFloorSeconds: 15,
		SecondsPerPatience:  12,
		FreeCalls:           3,
		SecondsPerExtraCall: 5,
		Quorum:              2,
		BonusAtQuorum:       20 * time.Second,
		BonusAboveQuorum:    40 * time.Second,
		MaxPriorCalls:       8,
		LegitimacyProbability: map[string]float64{
			TestAsksHowYouGotNumber:    0.70,
			TestAsksCompanyCredentials: 0.60,
			TestChallengesRelevance:    0.80,
			TestTestsSectorKnowledge:   0.40,
		},
	}
}

// #endregion tuning

// #region deps
// Rand is the random source. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// #endregion deps

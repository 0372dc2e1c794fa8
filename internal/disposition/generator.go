package disposition

import (
	"log"
	"sort"
)

// #region distributions
type weighted[T any] struct {
	value  T
	weight float64
}

var mentalStates = []weighted[MentalState]{
	{Overwhelmed, 3},
	{Stressed, 2},
	{NeutralState, 2},
	{RelativelyAvailable, 1},
}

var moods = []weighted[Mood]{
	{Irritated, 0.35},
	{Tired, 0.30},
	{NeutralMood, 0.20},
	{Curious, 0.15},
}

// legitimacyOrder fixes the draw order of the legitimacy tests.
var legitimacyOrder = []string{
	TestAsksHowYouGotNumber,
	TestAsksCompanyCredentials,
	TestChallengesRelevance,
	TestTestsSectorKnowledge,
}

func pick[T any](rnd Rand, table []weighted[T]) T {
	var total float64
	for _, w := range table {
		total += w.weight
	}
	r := rnd.Float64() * total
	var cum float64
	for _, w := range table {
		cum += w.weight
		if r < cum {
			return w.value
		}
	}
	return table[len(table)-1].value
}

// #endregion distributions

// #region phrases
var basePhrases = []string{
	"special offer",
	"exclusive offer",
	"limited time",
	"how are you today",
	"do you have a minute",
	"i'm calling to offer",
	"free trial",
}

// busyPhrases apply when the counterpart is stressed or has had many calls.
var busyPhrases = []string{
	"let me tell you about",
	"i'd like to present",
	"a few minutes of your time",
	"are you the person in charge",
}

// impatientPhrases apply when patience is 2 or less.
var impatientPhrases = []string{
	"we are the leader",
	"revolutionary",
	"our company",
	"number one",
}

// #endregion phrases

// #region generator
// Generator draws dispositions from an injected random source.
type Generator struct {
	rnd    Rand
	tuning Tuning
}

// NewGenerator returns a generator. Same rnd sequence, same disposition.
func NewGenerator(rnd Rand, tuning Tuning) *Generator {
	return &Generator{rnd: rnd, tuning: tuning}
}

// Generate draws, in order: mental state, prior calls, mood, then the
// legitimacy tests. Everything else is derived.
func (g *Generator) Generate() *Disposition {
	state := pick(g.rnd, mentalStates)
	calls := g.rnd.Intn(g.tuning.MaxPriorCalls + 1)
	mood := pick(g.rnd, moods)

	var tests []string
	for _, name := range legitimacyOrder {
		if g.rnd.Float64() < g.tuning.LegitimacyProbability[name] {
			tests = append(tests, name)
		}
	}

	patience := Patience(state, mood)
	d := &Disposition{
		MentalState:               state,
		PatienceLevel:             patience,
		PriorCallsToday:           calls,
		Mood:                      mood,
		TerminationTimeoutSeconds: TimeoutSeconds(patience, calls, g.tuning),
		TriggerPhrases:            TriggerPhrases(state, patience, calls),
		ReactionStyle:             Reaction(state, mood, calls),
		LegitimacyTests:           tests,
	}
	log.Printf("[DISPOSITION] state=%s mood=%s patience=%d calls=%d timeout=%ds tests=%v",
		d.MentalState, d.Mood, d.PatienceLevel, d.PriorCallsToday, d.TerminationTimeoutSeconds, d.LegitimacyTests)
	return d
}

// #endregion generator

// #region derivations
// Patience maps state and mood to 1..5.
func Patience(state MentalState, mood Mood) int {
	switch {
	case state == Overwhelmed || mood == Irritated:
		return 1
	case state == Stressed || mood == Tired:
		return 2
	case state == RelativelyAvailable && mood == Curious:
		return 5
	case mood == Curious:
		return 4
	default:
		return 3
	}
}

// TimeoutSeconds is max(floor, patience*perPatience - max(0, calls-free)*perCall).
func TimeoutSeconds(patience, calls int, t Tuning) int {
	extra := calls - t.FreeCalls
	if extra < 0 {
		extra = 0
	}
	secs := patience*t.SecondsPerPatience - extra*t.SecondsPerExtraCall
	if secs < t.TimeoutFloorSeconds {
		return t.TimeoutFloorSeconds
	}
	return secs
}

// TriggerPhrases returns the sorted phrase set for the given disposition inputs.
func TriggerPhrases(state MentalState, patience, calls int) []string {
	set := make(map[string]bool)
	add := func(ps []string) {
		for _, p := range ps {
			set[p] = true
		}
	}
	add(basePhrases)
	if state == Stressed || calls > 5 {
		add(busyPhrases)
	}
	if patience <= 2 {
		add(impatientPhrases)
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Reaction derives the reaction style. Rules are checked in order.
func Reaction(state MentalState, mood Mood, calls int) ReactionStyle {
	switch {
	case state == RelativelyAvailable && mood == Curious:
		return ReactionInterested
	case state == Overwhelmed:
		return ReactionHurried
	case calls > 4:
		return ReactionBored
	default:
		return ReactionNegative
	}
}

// #endregion derivations

package disposition

import (
	"fmt"
	"log"
	"time"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/signals"
)

// #region decision
// Reason names why a session was terminated.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonTriggerPhrase Reason = "trigger_phrase"
	ReasonTimeout       Reason = "timeout"
)

// Termination is the result of one gate evaluation.
type Termination struct {
	ShouldTerminate bool          `json:"shouldTerminate"`
	Reason          Reason        `json:"reason,omitempty"`
	Detail          string        `json:"detail,omitempty"`
	Deadline        time.Duration `json:"deadline"` // timeout plus any rescue bonus
	RescueCount     int           `json:"rescueCount"`
}

// #endregion decision

// #region gate
// Gate decides termination for one cold session. It owns the session's
// disposition and is its only writer.
type Gate struct {
	disp       *Disposition
	tuning     Tuning
	vocabulary []string
	decided    *Termination
}

// NewGate wraps d. vocabulary feeds the sector-expertise rescue condition.
func NewGate(d *Disposition, tuning Tuning, vocabulary []string) *Gate {
	return &Gate{disp: d, tuning: tuning, vocabulary: vocabulary}
}

// Disposition returns a copy of the current disposition.
func (g *Gate) Disposition() Disposition {
	d := *g.disp
	d.TriggerPhrases = append([]string(nil), g.disp.TriggerPhrases...)
	d.LegitimacyTests = append([]string(nil), g.disp.LegitimacyTests...)
	return d
}

// Evaluate checks the trigger phrase veto first, then merges this turn's
// rescue behaviors, then compares elapsed against the extended deadline.
// A positive decision is sticky. An empty text only checks the timer.
func (g *Gate) Evaluate(text string, elapsed time.Duration) Termination {
	if g.decided != nil {
		return *g.decided
	}

	// Trigger phrases are judged against rescue conditions met before this turn.
	if text != "" {
		if phrase, ok := signals.MatchAny(text, g.disp.TriggerPhrases); ok {
			if g.disp.Rescue.Count() < g.tuning.Quorum {
				return g.decide(Termination{
					Reason: ReasonTriggerPhrase,
					Detail: fmt.Sprintf("trigger phrase %q", phrase),
				})
			}
			log.Printf("[GATE] trigger phrase %q overridden by rescue quorum", phrase)
		}
		g.disp.Rescue = g.disp.Rescue.Merge(ClassifyRescue(text, g.vocabulary))
	}

	deadline := g.Deadline()
	t := Termination{Deadline: deadline, RescueCount: g.disp.Rescue.Count()}
	if elapsed > deadline {
		t.Reason = ReasonTimeout
		t.Detail = fmt.Sprintf("elapsed %s exceeds %s", elapsed.Round(time.Millisecond), deadline)
		return g.decide(t)
	}
	return t
}

// Deadline is the timeout plus the bonus earned by current rescue conditions.
func (g *Gate) Deadline() time.Duration {
	return g.disp.Timeout() + g.bonus(g.disp.Rescue.Count())
}

// Terminated reports whether a termination decision has been made.
func (g *Gate) Terminated() bool {
	return g.decided != nil
}

func (g *Gate) bonus(count int) time.Duration {
	switch {
	case count > g.tuning.Quorum:
		return g.tuning.BonusAboveQuorum
	case count == g.tuning.Quorum:
		return g.tuning.BonusAtQuorum
	default:
		return 0
	}
}

func (g *Gate) decide(t Termination) Termination {
	t.ShouldTerminate = true
	if t.Deadline == 0 {
		t.Deadline = g.Deadline()
	}
	t.RescueCount = g.disp.Rescue.Count()
	g.decided = &t
	log.Printf("[GATE] terminate: %s (%s) rescue=%d", t.Reason, t.Detail, t.RescueCount)
	return t
}

// #endregion gate

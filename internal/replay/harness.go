package replay

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"time"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/discovery"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/disposition"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/sector"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/session"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/signals"
)

// #region types
// Event is a single recorded conversation event for replay.
type Event struct {
	TurnID  string
	Kind    string
	Speaker signals.Speaker
	Text    string
	Action  string
	Params  discovery.Params
	Elapsed time.Duration
}

// ReplayConfig bundles the engine settings for a replay run.
type ReplayConfig struct {
	Seed         int64
	InitialTrust map[session.Kind]int // nil = session defaults
	Tuning       disposition.Tuning
	Discovery    discovery.Config
	Provider     *sector.Provider // nil = built-in table
	Recorder     session.Recorder // optional
}

// DefaultReplayConfig returns engine defaults with discovery delays disabled.
func DefaultReplayConfig() ReplayConfig {
	dcfg := discovery.DefaultConfig()
	dcfg.DelayScale = 0
	return ReplayConfig{
		Seed:      1,
		Tuning:    disposition.DefaultTuning(),
		Discovery: dcfg,
	}
}

// Outcomes of one replayed event.
const (
	OutcomeApplied = "applied"
	OutcomeEnded   = "ended" // event refused after termination
)

// ReplayResult captures the outcome of replaying one event.
type ReplayResult struct {
	TurnID      string
	Kind        string
	Outcome     string
	Signals     []string
	TrustBefore int
	TrustAfter  int
	Revealed    []string
	Response    string
	Terminated  bool
	Reason      string
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalEvents    int
	Turns          int
	Discoveries    int
	Ticks          int
	Refused        int
	Terminated     bool
	Reason         string
	FinalTrust     int
	RevealedLayers []string
}

// #endregion types

// #region replay
// Replay runs events through a fresh session built from the scenario and
// config. Delays are skipped; elapsed times come from the events.
func Replay(ctx context.Context, sc session.Scenario, events []Event, config ReplayConfig) ([]ReplayResult, *session.Session, error) {
	tuning := config.Tuning
	dcfg := config.Discovery
	s, err := session.New(sc, session.Options{
		Provider:     config.Provider,
		InitialTrust: config.InitialTrust,
		Tuning:       &tuning,
		Discovery:    &dcfg,
		Rand:         rand.New(rand.NewSource(config.Seed)),
		Wait:         func(context.Context, time.Duration) error { return nil },
		Recorder:     config.Recorder,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("replay session: %w", err)
	}

	results := make([]ReplayResult, 0, len(events))
	for _, ev := range events {
		before := s.Context().TrustLevel
		r := ReplayResult{TurnID: ev.TurnID, Kind: ev.Kind, Outcome: OutcomeApplied, TrustBefore: before}

		switch ev.Kind {
		case EventTurn:
			res, err := s.ProcessTurn(ctx, session.Turn{Text: ev.Text, Speaker: ev.Speaker, Elapsed: ev.Elapsed})
			if err != nil {
				if !errors.Is(err, session.ErrSessionEnded) {
					return results, s, fmt.Errorf("turn %s: %w", ev.TurnID, err)
				}
				r.Outcome = OutcomeEnded
				break
			}
			r.Signals = signals.Names(res.Signals)
			r.Revealed = res.NewlyRevealed
		case EventDiscover:
			res, err := s.DiscoverSync(ctx, ev.Action, ev.Params)
			if err != nil {
				if !errors.Is(err, session.ErrSessionEnded) {
					return results, s, fmt.Errorf("discover %s: %w", ev.TurnID, err)
				}
				r.Outcome = OutcomeEnded
				break
			}
			r.Revealed = res.RevealedLayers
			r.Response = res.Response
		case EventTick:
			if _, err := s.CheckTimer(ctx, ev.Elapsed); err != nil {
				return results, s, fmt.Errorf("tick %s: %w", ev.TurnID, err)
			}
		default:
			return results, s, fmt.Errorf("event %s: unknown kind %q", ev.TurnID, ev.Kind)
		}

		r.TrustAfter = s.Context().TrustLevel
		if t := s.Termination(); t != nil {
			r.Terminated = true
			r.Reason = string(t.Reason)
		}
		results = append(results, r)
	}
	return results, s, nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult, s *session.Session) ReplaySummary {
	sum := ReplaySummary{TotalEvents: len(results)}
	for _, r := range results {
		if r.Outcome == OutcomeEnded {
			sum.Refused++
			continue
		}
		switch r.Kind {
		case EventTurn:
			sum.Turns++
		case EventDiscover:
			sum.Discoveries++
		case EventTick:
			sum.Ticks++
		}
	}
	if s != nil {
		sum.FinalTrust = s.Context().TrustLevel
		sum.RevealedLayers = s.Summary().RevealedLayers
		if t := s.Termination(); t != nil {
			sum.Terminated = true
			sum.Reason = string(t.Reason)
		}
	}
	return sum
}

// #endregion replay

// #region check
// Mismatch is one difference between a replay and its expectations.
type Mismatch struct {
	TurnID string
	Field  string
	Want   any
	Got    any
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s want %v, got %v", m.TurnID, m.Field, m.Want, m.Got)
}

// Check compares results against expectations by turn id.
func Check(results []ReplayResult, expected []FixtureExpectedResult) []Mismatch {
	byID := make(map[string]ReplayResult, len(results))
	for _, r := range results {
		byID[r.TurnID] = r
	}
	var out []Mismatch
	for _, e := range expected {
		r, ok := byID[e.TurnID]
		if !ok {
			out = append(out, Mismatch{TurnID: e.TurnID, Field: "turn", Want: "present", Got: "missing"})
			continue
		}
		if e.TrustLevel != nil && *e.TrustLevel != r.TrustAfter {
			out = append(out, Mismatch{e.TurnID, "trust_level", *e.TrustLevel, r.TrustAfter})
		}
		if e.Revealed != nil && !sameStrings(e.Revealed, r.Revealed) {
			out = append(out, Mismatch{e.TurnID, "revealed", e.Revealed, r.Revealed})
		}
		if e.Terminated != nil && *e.Terminated != r.Terminated {
			out = append(out, Mismatch{e.TurnID, "terminated", *e.Terminated, r.Terminated})
		}
		if e.Reason != "" && e.Reason != r.Reason {
			out = append(out, Mismatch{e.TurnID, "reason", e.Reason, r.Reason})
		}
		if e.Outcome != "" && e.Outcome != r.Outcome {
			out = append(out, Mismatch{e.TurnID, "outcome", e.Outcome, r.Outcome})
		}
	}
	return out
}

// sameStrings treats nil and empty as equal.
func sameStrings(a, b []string) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}

// #endregion check

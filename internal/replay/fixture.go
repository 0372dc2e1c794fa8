package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/discovery"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/session"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/signals"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string                  `json:"description"`
	Scenario        session.Scenario        `json:"scenario"`
	Seed            int64                   `json:"seed"`
	Config          FixtureConfig           `json:"config"`
	Events          []FixtureEvent          `json:"events"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
}

// FixtureConfig overrides engine settings for a run. Zero values keep defaults.
type FixtureConfig struct {
	InitialTrust        *int `json:"initial_trust,omitempty"`
	TimeoutFloorSeconds *int `json:"timeout_floor_seconds,omitempty"`
}

// Event kinds.
const (
	EventTurn     = "turn"
	EventDiscover = "discover"
	EventTick     = "tick"
)

// FixtureEvent is one recorded conversation event.
type FixtureEvent struct {
	TurnID    string         `json:"turn_id"`
	Kind      string         `json:"kind"` // "turn" | "discover" | "tick"
	Speaker   string         `json:"speaker,omitempty"`
	Text      string         `json:"text,omitempty"`
	Action    string         `json:"action,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
	ElapsedMS int64          `json:"elapsed_ms"`
}

// FixtureExpectedResult captures the expected outcome per event. Nil fields
// are not checked.
type FixtureExpectedResult struct {
	TurnID     string   `json:"turn_id"`
	TrustLevel *int     `json:"trust_level,omitempty"`
	Revealed   []string `json:"revealed,omitempty"`
	Terminated *bool    `json:"terminated,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Outcome    string   `json:"outcome,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if err := f.Scenario.Validate(); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToEvent converts a FixtureEvent to a domain Event.
func (fe *FixtureEvent) ToEvent() Event {
	speaker := signals.Speaker(fe.Speaker)
	if speaker == "" {
		speaker = signals.SpeakerUser
	}
	return Event{
		TurnID:  fe.TurnID,
		Kind:    fe.Kind,
		Speaker: speaker,
		Text:    fe.Text,
		Action:  fe.Action,
		Params:  discovery.ParamsFromMap(fe.Params),
		Elapsed: time.Duration(fe.ElapsedMS) * time.Millisecond,
	}
}

// ToEvents converts all fixture events.
func (f *Fixture) ToEvents() []Event {
	out := make([]Event, len(f.Events))
	for i := range f.Events {
		out[i] = f.Events[i].ToEvent()
	}
	return out
}

// ToReplayConfig converts a FixtureConfig to a domain ReplayConfig.
func (f *Fixture) ToReplayConfig() ReplayConfig {
	cfg := DefaultReplayConfig()
	cfg.Seed = f.Seed
	if f.Config.InitialTrust != nil {
		cfg.InitialTrust = map[session.Kind]int{f.Scenario.Kind: *f.Config.InitialTrust}
	}
	if f.Config.TimeoutFloorSeconds != nil {
		cfg.Tuning.TimeoutFloorSeconds = *f.Config.TimeoutFloorSeconds
	}
	return cfg
}

// #endregion fixture-loader

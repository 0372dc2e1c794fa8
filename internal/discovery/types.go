package discovery

import (
	"context"
	"time"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/trust"
)

// #region action

// Action is a named, delayed lookup the counterpart can perform.
// Actions are part of shared sector tables and never mutated.
type Action struct {
	Name           string                  `json:"name" yaml:"name"`
	Description    string                  `json:"description" yaml:"description"`
	SectorSpecific bool                    `json:"sector_specific" yaml:"sector_specific"`
	Responses      map[trust.Bucket]string `json:"responses" yaml:"responses"`
	DelaySeconds   [2]float64              `json:"delay_seconds" yaml:"delay_seconds"`
	TrustImpact    int                     `json:"trust_impact" yaml:"trust_impact"`
}

// #endregion action

// #region params

// Params are the caller-supplied flags of a discovery request.
type Params struct {
	Urgent       bool
	Confidential bool
	Strategic    bool
}

// Multiplier returns 1.0 plus 0.2 / 0.3 / 0.4 for urgent / confidential / strategic.
func (p Params) Multiplier() float64 {
	return float64(p.tenths()) / 10
}

// tenths is the multiplier in integer tenths so deltas round exactly.
func (p Params) tenths() int {
	m := 10
	if p.Urgent {
		m += 2
	}
	if p.Confidential {
		m += 3
	}
	if p.Strategic {
		m += 4
	}
	return m
}

// ScaleImpact returns impact x multiplier, halves rounded away from zero.
func (p Params) ScaleImpact(impact int) int {
	n := impact * p.tenths()
	if n >= 0 {
		return (n + 5) / 10
	}
	return -((-n + 5) / 10)
}

// ParamsFromMap reads named parameters. Unknown keys and non-boolean values
// are ignored; a "priority" string of "urgent", "confidential" or
// "strategic" sets the matching flag.
func ParamsFromMap(m map[string]any) Params {
	var p Params
	for k, v := range m {
		switch k {
		case "urgent":
			p.Urgent = truthy(v)
		case "confidential":
			p.Confidential = truthy(v)
		case "strategic":
			p.Strategic = truthy(v)
		case "priority":
			s, _ := v.(string)
			switch s {
			case "urgent":
				p.Urgent = true
			case "confidential":
				p.Confidential = true
			case "strategic":
				p.Strategic = true
			}
		}
	}
	return p
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "yes" || t == "1"
	case int:
		return t != 0
	case float64:
		return t != 0
	}
	return false
}

// #endregion params

// #region result

// Result is the outcome of one completed discovery action.
type Result struct {
	Action         string         `json:"action"`
	Template       string         `json:"template"`
	Response       string         `json:"response"`
	Bucket         trust.Bucket   `json:"bucket"`
	NewlyRevealed  map[string]any `json:"newly_revealed"`
	RevealedLayers []string       `json:"revealed_layers"`
	TrustDelta     int            `json:"trust_delta"`
	Multiplier     float64        `json:"multiplier"`
	Fallback       bool           `json:"fallback"`
	Delay          time.Duration  `json:"delay"`
}

// HistoryEntry is one row of the append-only discovery log.
type HistoryEntry struct {
	ActionName      string    `json:"action_name"`
	Timestamp       time.Time `json:"timestamp"`
	ResponseSummary string    `json:"response_summary"`
	TrustDelta      int       `json:"trust_delta"`
}

// #endregion result

// #region config

// Config holds registry tuning.
type Config struct {
	DelayScale         float64 // multiplies sampled delays; 0 disables waiting
	GenericTrustImpact int     // flat delta of the generic catalog
	AppendDisclosures  bool    // append a summary of newly revealed facts to responses
}

// DefaultConfig returns the standard registry settings.
func DefaultConfig() Config {
	return Config{
		DelayScale:         1.0,
		GenericTrustImpact: 2,
		AppendDisclosures:  true,
	}
}

// #endregion config

// #region deps

// Rand is the random source for delay sampling. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Sleep waits on a monotonic timer and honors cancellation.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// #endregion deps

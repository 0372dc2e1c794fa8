package cognitive

import (
	"time"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/layers"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/trust"
)

// #region phase

// Phase names the stage of the conversation.
type Phase string

const (
	PhaseOpening     Phase = "opening"
	PhaseDiscovery   Phase = "discovery"
	PhaseNegotiation Phase = "negotiation"
	PhaseClosing     Phase = "closing"
)

var phaseOrder = map[Phase]int{
	PhaseOpening:     0,
	PhaseDiscovery:   1,
	PhaseNegotiation: 2,
	PhaseClosing:     3,
}

// phaseForTier maps ladder levels to the phase they open.
func phaseForTier(level int) Phase {
	switch {
	case level >= 5:
		return PhaseClosing
	case level >= 4:
		return PhaseNegotiation
	case level >= 2:
		return PhaseDiscovery
	default:
		return PhaseOpening
	}
}

// #endregion phase

// #region context

// Context is the read-only view handed to the caller after every event.
type Context struct {
	TrustLevel           int            `json:"trust_level"`
	Mode                 trust.Mode     `json:"mode"`
	Tier                 trust.Tier     `json:"tier"`
	AvailableInformation map[string]any `json:"available_information"`
	RevealedLayers       []layers.Layer `json:"revealed_layers"`
	NextUnlockThreshold  *int           `json:"next_unlock_threshold"`
	Phase                Phase          `json:"phase"`
}

// #endregion context

// #region options

// Options configures a new Manager.
type Options struct {
	InitialTrust int
	Ladder       *trust.Ladder // nil = trust.DefaultLadder()
	StartedAt    time.Time     // zero = time.Now()
}

// #endregion options

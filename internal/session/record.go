package session

import (
	"time"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/discovery"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/disposition"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/signals"
)

// #region recorder
// Recorder receives session events for reporting. Errors are logged and
// never affect the session.
type Recorder interface {
	StartSession(Info) error
	RecordTurn(TurnRecord) error
	RecordDiscovery(DiscoveryRecord) error
	FinishSession(Summary) error
}

// #endregion recorder

// #region records
// Info describes a session at start.
type Info struct {
	ID           string
	Scenario     Scenario
	SectorID     string
	InitialTrust int
	StartedAt    time.Time
	Disposition  *disposition.Disposition // nil for appointments
}

// TurnRecord is the provenance of one processed turn.
type TurnRecord struct {
	SessionID   string
	Index       int
	Speaker     signals.Speaker
	Text        string
	Signals     []signals.Signal
	TrustBefore int
	TrustAfter  int
	Revealed    []string
	Phase       string
	Mode        string
	Termination *disposition.Termination
	Elapsed     time.Duration
	At          time.Time
}

// DiscoveryRecord is one completed discovery action.
type DiscoveryRecord struct {
	SessionID string
	Entry     discovery.HistoryEntry
	Bucket    string
	Fallback  bool
	Revealed  []string
}

// Summary is the final state written on Close.
type Summary struct {
	SessionID      string
	FinalTrust     int
	Tier           string
	Phase          string
	Information    map[string]any
	RevealedLayers []string
	Triggers       []string
	Terminated     bool
	Reason         string
	Turns          int
	EndedAt        time.Time
}

// #endregion records

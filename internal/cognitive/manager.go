package cognitive

import (
	"time"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/layers"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/signals"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/trust"
)

// #region manager-struct

// Manager owns one session's trust score, trigger log and layer store.
// It is the single source of truth for the session. Not safe for
// concurrent use; callers serialize access.
type Manager struct {
	ladder     *trust.Ladder
	store      *layers.Store
	trustLevel int
	triggers   []string
	triggerSet map[string]bool
	phase      Phase
	startedAt  time.Time
}

// #endregion manager-struct

// #region constructor

// NewManager instantiates per-session layers from templates and runs the
// initial unlock pass so threshold-0 layers are visible immediately.
func NewManager(templates []layers.Layer, opts Options) *Manager {
	ladder := opts.Ladder
	if ladder == nil {
		ladder = trust.DefaultLadder()
	}
	started := opts.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	m := &Manager{
		ladder:     ladder,
		store:      layers.NewStore(templates),
		trustLevel: trust.Clamp(opts.InitialTrust),
		triggerSet: make(map[string]bool),
		phase:      PhaseOpening,
		startedAt:  started,
	}
	m.advancePhase()
	m.store.Unlock(m.trustLevel, m.triggers)
	return m
}

// #endregion constructor

// #region mutations

// AddBehavioralTrigger logs name (once) and applies delta, then re-runs the
// unlock check. Returns the layers revealed by this call.
func (m *Manager) AddBehavioralTrigger(name string, delta int) []layers.Layer {
	m.logTrigger(name)
	return m.applyDelta(delta)
}

// ApplySignals logs every signal name and applies their summed delta in a
// single step, so one turn unlocks layers against its final score.
func (m *Manager) ApplySignals(sigs []signals.Signal) []layers.Layer {
	for _, s := range sigs {
		m.logTrigger(s.Name)
	}
	return m.applyDelta(signals.TotalDelta(sigs))
}

// ApplyDelta changes trust without logging a trigger.
func (m *Manager) ApplyDelta(delta int) []layers.Layer {
	return m.applyDelta(delta)
}

// SetPhase overrides the conversation phase.
func (m *Manager) SetPhase(p Phase) {
	if _, ok := phaseOrder[p]; ok {
		m.phase = p
	}
}

func (m *Manager) logTrigger(name string) {
	if name == "" || m.triggerSet[name] {
		return
	}
	m.triggerSet[name] = true
	m.triggers = append(m.triggers, name)
}

func (m *Manager) applyDelta(delta int) []layers.Layer {
	m.trustLevel = trust.Apply(m.trustLevel, delta)
	m.advancePhase()
	return m.store.Unlock(m.trustLevel, m.triggers)
}

// advancePhase moves the phase forward to match the current tier. It never
// moves backward.
func (m *Manager) advancePhase() {
	p := phaseForTier(m.ladder.Classify(m.trustLevel).Level)
	if phaseOrder[p] > phaseOrder[m.phase] {
		m.phase = p
	}
}

// #endregion mutations

// #region queries

// TrustLevel returns the current score in [0, 100].
func (m *Manager) TrustLevel() int { return m.trustLevel }

// Mode returns the behavioral mode derived from trust.
func (m *Manager) Mode() trust.Mode { return trust.ModeFor(m.trustLevel) }

// Tier returns the ladder tier for the current score.
func (m *Manager) Tier() trust.Tier { return m.ladder.Classify(m.trustLevel) }

// Phase returns the conversation phase.
func (m *Manager) Phase() Phase { return m.phase }

// StartedAt returns the session start time.
func (m *Manager) StartedAt() time.Time { return m.startedAt }

// AvailableInformation returns a deep copy of everything revealed so far.
func (m *Manager) AvailableInformation() map[string]any {
	return m.store.Information()
}

// RevealedLayers returns copies of revealed layers in reveal order.
func (m *Manager) RevealedLayers() []layers.Layer {
	return m.store.Revealed()
}

// RevealedLayerIDs returns revealed layer ids in reveal order.
func (m *Manager) RevealedLayerIDs() []string {
	return m.store.RevealedIDs()
}

// Triggers returns the trigger log in first-seen order.
func (m *Manager) Triggers() []string {
	return append([]string(nil), m.triggers...)
}

// HasTrigger reports whether name is in the trigger log.
func (m *Manager) HasTrigger(name string) bool {
	return m.triggerSet[name]
}

// NextUnlockThreshold returns the next layer threshold above trust, or nil.
func (m *Manager) NextUnlockThreshold() *int {
	return m.store.NextUnlockThreshold(m.trustLevel)
}

// Context bundles the full caller-facing view.
func (m *Manager) Context() Context {
	return Context{
		TrustLevel:           m.trustLevel,
		Mode:                 m.Mode(),
		Tier:                 m.Tier(),
		AvailableInformation: m.AvailableInformation(),
		RevealedLayers:       m.RevealedLayers(),
		NextUnlockThreshold:  m.NextUnlockThreshold(),
		Phase:                m.phase,
	}
}

// #endregion queries

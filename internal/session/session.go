package session

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/cognitive"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/discovery"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/disposition"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/layers"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/metrics"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/sector"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/signals"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/trust"
)

// #region options
// Options wires a session's collaborators. Zero fields take defaults.
type Options struct {
	ID           string              // empty = new uuid
	Provider     *sector.Provider    // nil = sector.NewDefaultProvider()
	Ladder       *trust.Ladder       // nil = trust.DefaultLadder()
	Interpreter  signals.Interpreter // nil = keyword interpreter on the sector vocabulary
	InitialTrust map[Kind]int        // nil = DefaultInitialTrust()
	Tuning       *disposition.Tuning // nil = disposition.DefaultTuning()
	Discovery    *discovery.Config   // nil = discovery.DefaultConfig()
	Rand         disposition.Rand    // per session; nil = time-seeded math/rand
	Wait         discovery.WaitFunc  // nil = discovery.Sleep
	Clock        func() time.Time    // nil = time.Now
	Metrics      *metrics.Metrics    // nil = no metrics
	Recorder     Recorder            // nil = no reporting
}

// DefaultInitialTrust is the starting score per conversation kind.
func DefaultInitialTrust() map[Kind]int {
	return map[Kind]int{
		KindColdCall:    0,
		KindAppointment: 20,
	}
}

// #endregion options

// #region io
// Turn is one conversational event. Elapsed is measured by the caller from
// session start on a monotonic clock.
type Turn struct {
	Text    string
	Speaker signals.Speaker
	Elapsed time.Duration
}

// TurnResult is what the caller renders a reply from.
type TurnResult struct {
	Signals       []signals.Signal         `json:"signals"`
	TrustDelta    int                      `json:"trust_delta"`
	NewlyRevealed []string                 `json:"newly_revealed"`
	Context       cognitive.Context        `json:"context"`
	Termination   *disposition.Termination `json:"termination,omitempty"` // nil for appointments
}

// DiscoveryOutcome is delivered once per Discover call.
type DiscoveryOutcome struct {
	Action  string
	Result  discovery.Result
	Context cognitive.Context
	Err     error
}

// #endregion io

// #region session-struct
// Session owns one conversation's state. Mutations are serialized by a
// single-writer token; reads take mu and never wait on a pending discovery.
type Session struct {
	id       string
	scenario Scenario
	sector   *sector.Config
	clock    func() time.Time

	token   chan struct{}
	pending atomic.Bool

	mu          sync.RWMutex
	mgr         *cognitive.Manager
	registry    *discovery.Registry
	interp      signals.Interpreter
	gate        *disposition.Gate // nil for appointments
	turns       int
	ended       bool
	closed      bool
	termination *disposition.Termination

	metrics  *metrics.Metrics
	recorder Recorder
}

// #endregion session-struct

// #region constructor
// New validates the scenario and wires a session. Errors only come from
// construction; events never fail for bad input.
func New(sc Scenario, opts Options) (*Session, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	provider := opts.Provider
	if provider == nil {
		provider = sector.NewDefaultProvider()
	}
	cfg := provider.ForScenario(sc.ID, sc.Sector)

	initial := opts.InitialTrust
	if initial == nil {
		initial = DefaultInitialTrust()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	interp := opts.Interpreter
	if interp == nil {
		interp = signals.NewDefaultInterpreter(cfg.Vocabulary)
	}
	dcfg := discovery.DefaultConfig()
	if opts.Discovery != nil {
		dcfg = *opts.Discovery
	}
	id := opts.ID
	if id == "" {
		id = uuid.New().String()
	}

	templates := append(cfg.LayerTemplates(), sc.Layers()...)
	started := clock()
	mgr := cognitive.NewManager(templates, cognitive.Options{
		InitialTrust: initial[sc.Kind],
		Ladder:       opts.Ladder,
		StartedAt:    started,
	})

	regOpts := []discovery.Option{discovery.WithRand(rnd), discovery.WithClock(clock)}
	if opts.Wait != nil {
		regOpts = append(regOpts, discovery.WithWait(opts.Wait))
	}

	s := &Session{
		id:       id,
		scenario: sc,
		sector:   cfg,
		clock:    clock,
		token:    make(chan struct{}, 1),
		mgr:      mgr,
		registry: discovery.NewRegistry(cfg.Actions, dcfg, regOpts...),
		interp:   interp,
		metrics:  opts.Metrics,
		recorder: opts.Recorder,
	}

	var disp *disposition.Disposition
	if sc.Kind == KindColdCall {
		tuning := disposition.DefaultTuning()
		if opts.Tuning != nil {
			tuning = *opts.Tuning
		}
		disp = disposition.NewGenerator(rnd, tuning).Generate()
		s.gate = disposition.NewGate(disp, tuning, cfg.Vocabulary)
	}

	s.metrics.SessionStarted(string(sc.Kind))
	for _, l := range mgr.RevealedLayers() {
		s.metrics.Revealed(string(l.Category))
	}
	log.Printf("[SESSION] %s start scenario=%s sector=%s kind=%s trust=%d layers=%d",
		id, sc.ID, cfg.ID, sc.Kind, mgr.TrustLevel(), len(templates))

	if s.recorder != nil {
		info := Info{
			ID:           id,
			Scenario:     sc,
			SectorID:     cfg.ID,
			InitialTrust: mgr.TrustLevel(),
			StartedAt:    started,
		}
		if disp != nil {
			d := s.gate.Disposition()
			info.Disposition = &d
		}
		if err := s.recorder.StartSession(info); err != nil {
			log.Printf("[SESSION] %s record start: %v", id, err)
		}
	}
	return s, nil
}

// #endregion constructor

// #region writer-token
func (s *Session) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s.token <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) release() { <-s.token }

// #endregion writer-token

// #region process-turn
// ProcessTurn interprets one turn, applies its signals, and for cold
// sessions evaluates termination. It waits while a discovery is pending.
func (s *Session) ProcessTurn(ctx context.Context, turn Turn) (TurnResult, error) {
	if err := s.acquire(ctx); err != nil {
		return TurnResult{}, err
	}
	defer s.release()

	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return TurnResult{}, ErrSessionEnded
	}
	before := s.mgr.TrustLevel()
	sigs := s.interp.Interpret(turn.Text, turn.Speaker)
	newly := s.mgr.ApplySignals(sigs)

	var term *disposition.Termination
	if s.gate != nil {
		text := ""
		if turn.Speaker == signals.SpeakerUser {
			text = turn.Text
		}
		t := s.gate.Evaluate(text, turn.Elapsed)
		term = &t
		if t.ShouldTerminate {
			s.end(t)
		}
	}
	s.turns++
	index := s.turns
	res := TurnResult{
		Signals:       sigs,
		TrustDelta:    s.mgr.TrustLevel() - before,
		NewlyRevealed: layerIDs(newly),
		Context:       s.mgr.Context(),
		Termination:   term,
	}
	s.mu.Unlock()

	s.metrics.Turn(string(turn.Speaker), res.TrustDelta)
	for _, l := range newly {
		s.metrics.Revealed(string(l.Category))
	}
	if len(sigs) > 0 || len(newly) > 0 {
		log.Printf("[SESSION] %s turn %d signals=%v trust %d→%d revealed=%v",
			s.id, index, signals.Names(sigs), before, res.Context.TrustLevel, res.NewlyRevealed)
	}

	if s.recorder != nil {
		rec := TurnRecord{
			SessionID:   s.id,
			Index:       index,
			Speaker:     turn.Speaker,
			Text:        turn.Text,
			Signals:     sigs,
			TrustBefore: before,
			TrustAfter:  res.Context.TrustLevel,
			Revealed:    res.NewlyRevealed,
			Phase:       string(res.Context.Phase),
			Mode:        string(res.Context.Mode),
			Termination: term,
			Elapsed:     turn.Elapsed,
			At:          s.clock(),
		}
		if err := s.recorder.RecordTurn(rec); err != nil {
			log.Printf("[SESSION] %s record turn %d: %v", s.id, index, err)
		}
	}
	return res, nil
}

// CheckTimer evaluates the termination timer without a turn, for callers
// polling while the trainee is silent. Appointments never terminate.
func (s *Session) CheckTimer(ctx context.Context, elapsed time.Duration) (disposition.Termination, error) {
	if err := s.acquire(ctx); err != nil {
		return disposition.Termination{}, err
	}
	defer s.release()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate == nil {
		return disposition.Termination{}, nil
	}
	already := s.ended
	t := s.gate.Evaluate("", elapsed)
	if t.ShouldTerminate && !already {
		s.end(t)
	}
	return t, nil
}

// end must be called with mu held.
func (s *Session) end(t disposition.Termination) {
	if s.ended {
		return
	}
	s.ended = true
	s.termination = &t
	s.metrics.Terminated(string(t.Reason))
	log.Printf("[SESSION] %s terminated: %s %s", s.id, t.Reason, t.Detail)
}

// #endregion process-turn

// #region discover
// Discover starts a discovery action and returns at once. The writer token
// is held until the action completes, so turns submitted meanwhile wait.
// Cancelling ctx discards the result: no trust change, no history entry.
func (s *Session) Discover(ctx context.Context, name string, params discovery.Params) <-chan DiscoveryOutcome {
	out := make(chan DiscoveryOutcome, 1)
	if err := s.acquire(ctx); err != nil {
		out <- DiscoveryOutcome{Action: name, Err: err}
		close(out)
		return out
	}

	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		s.release()
		out <- DiscoveryOutcome{Action: name, Err: ErrSessionEnded}
		close(out)
		return out
	}
	plan := s.registry.Plan(name, params)
	s.mu.Unlock()

	s.pending.Store(true)
	log.Printf("[SESSION] %s discovery %s pending delay=%s", s.id, name, plan.Delay.Round(time.Millisecond))

	go func() {
		defer close(out)
		defer s.release()
		defer s.pending.Store(false)

		err := s.registry.Wait(ctx, plan)
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			log.Printf("[SESSION] %s discovery %s discarded: %v", s.id, name, err)
			out <- DiscoveryOutcome{Action: name, Err: err}
			return
		}

		s.mu.Lock()
		res := s.registry.Apply(s.mgr, plan)
		c := s.mgr.Context()
		hist := s.registry.History()
		revealed := s.revealedLayers(res.RevealedLayers)
		s.mu.Unlock()

		s.metrics.Discovery(name, res.Fallback, res.TrustDelta)
		for _, l := range revealed {
			s.metrics.Revealed(string(l.Category))
		}
		if s.recorder != nil && len(hist) > 0 {
			rec := DiscoveryRecord{
				SessionID: s.id,
				Entry:     hist[len(hist)-1],
				Bucket:    string(res.Bucket),
				Fallback:  res.Fallback,
				Revealed:  res.RevealedLayers,
			}
			if err := s.recorder.RecordDiscovery(rec); err != nil {
				log.Printf("[SESSION] %s record discovery %s: %v", s.id, name, err)
			}
		}
		out <- DiscoveryOutcome{Action: name, Result: res, Context: c}
	}()
	return out
}

// DiscoverSync runs Discover and waits for its outcome.
func (s *Session) DiscoverSync(ctx context.Context, name string, params discovery.Params) (discovery.Result, error) {
	o := <-s.Discover(ctx, name, params)
	return o.Result, o.Err
}

// revealedLayers must be called with mu held.
func (s *Session) revealedLayers(ids []string) []layers.Layer {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []layers.Layer
	for _, l := range s.mgr.RevealedLayers() {
		if want[l.ID] {
			out = append(out, l)
		}
	}
	return out
}

// #endregion discover

// #region close
// Close ends the session and writes its summary. Safe to call twice.
func (s *Session) Close(ctx context.Context) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.ended = true
	sum := s.summaryLocked()
	s.mu.Unlock()

	log.Printf("[SESSION] %s closed trust=%d turns=%d terminated=%v", s.id, sum.FinalTrust, sum.Turns, sum.Terminated)
	if s.recorder == nil {
		return nil
	}
	if err := s.recorder.FinishSession(sum); err != nil {
		return fmt.Errorf("finish session %s: %w", s.id, err)
	}
	return nil
}

func (s *Session) summaryLocked() Summary {
	sum := Summary{
		SessionID:      s.id,
		FinalTrust:     s.mgr.TrustLevel(),
		Tier:           s.mgr.Tier().Name,
		Phase:          string(s.mgr.Phase()),
		Information:    s.mgr.AvailableInformation(),
		RevealedLayers: s.mgr.RevealedLayerIDs(),
		Triggers:       s.mgr.Triggers(),
		Turns:          s.turns,
		EndedAt:        s.clock(),
	}
	if s.termination != nil {
		sum.Terminated = true
		sum.Reason = string(s.termination.Reason)
	}
	return sum
}

// #endregion close

// #region queries
func (s *Session) ID() string { return s.id }

func (s *Session) Scenario() Scenario { return s.scenario }

// SectorID is the id of the sector config the session resolved to.
func (s *Session) SectorID() string { return s.sector.ID }

// Pending reports whether a discovery action is in flight.
func (s *Session) Pending() bool { return s.pending.Load() }

// Context returns the current context. Never blocks on a pending discovery.
func (s *Session) Context() cognitive.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mgr.Context()
}

// History returns a copy of the discovery history.
func (s *Session) History() []discovery.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry.History()
}

// Actions lists the sector's own discovery actions.
func (s *Session) Actions() []string {
	return s.registry.Names()
}

// Disposition returns a copy of the cold-call disposition, or nil.
func (s *Session) Disposition() *disposition.Disposition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gate == nil {
		return nil
	}
	d := s.gate.Disposition()
	return &d
}

// Termination returns the termination decision, or nil.
func (s *Session) Termination() *disposition.Termination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.termination == nil {
		return nil
	}
	t := *s.termination
	return &t
}

// Ended reports whether further events are refused.
func (s *Session) Ended() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ended
}

// SetPhase overrides the conversation phase.
func (s *Session) SetPhase(ctx context.Context, p cognitive.Phase) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mgr.SetPhase(p)
	return nil
}

// Summary returns the current summary without closing.
func (s *Session) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summaryLocked()
}

func layerIDs(ls []layers.Layer) []string {
	if len(ls) == 0 {
		return nil
	}
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

// #endregion queries

package discovery

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/cognitive"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/layers"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/trust"
)

// #region generic-catalog

// Generic action names, available in every sector.
const (
	AskColleague          = "askColleague"
	CheckBudget           = "checkBudget"
	ConsultDecisionMaker  = "consultDecisionMaker"
	ReviewInternalOptions = "reviewInternalOptions"
)

var genericPhrases = map[string]string{
	AskColleague:          "I'd have to ask a colleague about that. I'll get back to you.",
	CheckBudget:           "I'd need to check with finance before saying anything about budget.",
	ConsultDecisionMaker:  "That isn't my decision alone, I'll have to talk to my manager.",
	ReviewInternalOptions: "We're looking at a few options internally, I can't say more for now.",
}

const unknownPhrase = "Let me think about that."

var genericDelay = [2]float64{1, 3}

// GenericNames lists the generic catalog in a fixed order.
func GenericNames() []string {
	return []string{AskColleague, CheckBudget, ConsultDecisionMaker, ReviewInternalOptions}
}

// #endregion generic-catalog

// #region registry-struct

// Registry resolves discovery requests for one session and keeps its
// history. The action table is shared read-only; history is per session.
type Registry struct {
	actions map[string]Action
	config  Config
	rnd     Rand
	wait    WaitFunc
	now     func() time.Time
	history []HistoryEntry
}

// Option customizes a Registry.
type Option func(*Registry)

// WithRand sets the delay sampling source.
func WithRand(r Rand) Option { return func(reg *Registry) { reg.rnd = r } }

// WithWait replaces the delay wait (tests use a no-op).
func WithWait(w WaitFunc) Option { return func(reg *Registry) { reg.wait = w } }

// WithClock sets the history timestamp source.
func WithClock(now func() time.Time) Option { return func(reg *Registry) { reg.now = now } }

// NewRegistry indexes actions by name. Later duplicates win.
func NewRegistry(actions []Action, config Config, opts ...Option) *Registry {
	idx := make(map[string]Action, len(actions))
	for _, a := range actions {
		idx[a.Name] = a
	}
	r := &Registry{
		actions: idx,
		config:  config,
		wait:    Sleep,
		now:     time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// #endregion registry-struct

// #region plan

// Plan is a resolved request: which action runs and how long it waits.
type Plan struct {
	Name       string
	Action     Action
	Sector     bool // found in the sector table
	Generic    bool // served by the generic catalog
	Params     Params
	Multiplier float64
	Delay      time.Duration
}

// Plan resolves name against the sector table, then the generic catalog.
// Unknown names yield a zero-impact plan rather than an error.
func (r *Registry) Plan(name string, params Params) Plan {
	p := Plan{Name: name, Multiplier: 1.0}
	if a, ok := r.actions[name]; ok {
		p.Action = a
		p.Sector = true
		p.Params = params
		p.Multiplier = params.Multiplier()
		p.Delay = r.sampleDelay(a.DelaySeconds)
		return p
	}
	if _, ok := genericPhrases[name]; ok {
		p.Generic = true
		p.Delay = r.sampleDelay(genericDelay)
		return p
	}
	return p
}

func (r *Registry) sampleDelay(bounds [2]float64) time.Duration {
	lo, hi := bounds[0], bounds[1]
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	secs := lo
	if hi > lo && r.rnd != nil {
		secs = lo + r.rnd.Float64()*(hi-lo)
	}
	return time.Duration(secs * r.config.DelayScale * float64(time.Second))
}

// #endregion plan

// #region execute

// Execute runs plan-wait-apply against mgr. The caller must hold exclusive
// access to mgr for the whole call. On cancellation nothing is applied.
func (r *Registry) Execute(ctx context.Context, mgr *cognitive.Manager, name string, params Params) (Result, error) {
	plan := r.Plan(name, params)
	if err := r.wait(ctx, plan.Delay); err != nil {
		log.Printf("[DISCOVERY] %s cancelled after plan: %v", name, err)
		return Result{}, err
	}
	return r.Apply(mgr, plan), nil
}

// Wait blocks for the plan's delay using the registry's wait function.
func (r *Registry) Wait(ctx context.Context, plan Plan) error {
	return r.wait(ctx, plan.Delay)
}

// Apply completes a plan: picks the response for the current bucket, applies
// the trust delta, unlocks layers with the action name as a trigger, and
// appends to history.
func (r *Registry) Apply(mgr *cognitive.Manager, plan Plan) Result {
	bucket := trust.TierBucket(mgr.TrustLevel())
	res := Result{
		Action:     plan.Name,
		Bucket:     bucket,
		Multiplier: plan.Multiplier,
		Delay:      plan.Delay,
	}

	var newly []layers.Layer
	switch {
	case plan.Sector:
		res.Template = pickTemplate(plan.Action.Responses, bucket)
		if res.Template == "" {
			res.Template = genericPhraseFor(plan.Name)
		}
		res.TrustDelta = plan.Params.ScaleImpact(plan.Action.TrustImpact)
		newly = mgr.AddBehavioralTrigger(plan.Name, res.TrustDelta)
	case plan.Generic:
		res.Fallback = true
		res.Template = genericPhrases[plan.Name]
		res.TrustDelta = r.config.GenericTrustImpact
		newly = mgr.AddBehavioralTrigger(plan.Name, res.TrustDelta)
	default:
		res.Fallback = true
		res.Template = unknownPhrase
	}

	res.Response = res.Template
	res.NewlyRevealed = make(map[string]any)
	for _, l := range newly {
		res.RevealedLayers = append(res.RevealedLayers, l.ID)
		for k, v := range l.Facts {
			res.NewlyRevealed[k] = v
		}
	}
	if r.config.AppendDisclosures && len(res.NewlyRevealed) > 0 {
		res.Response = res.Template + " " + summarize(res.NewlyRevealed)
	}

	r.history = append(r.history, HistoryEntry{
		ActionName:      plan.Name,
		Timestamp:       r.now(),
		ResponseSummary: truncate(res.Response, 120),
		TrustDelta:      res.TrustDelta,
	})

	log.Printf("[DISCOVERY] %s bucket=%s delta=%d fallback=%v revealed=%v",
		plan.Name, bucket, res.TrustDelta, res.Fallback, res.RevealedLayers)
	return res
}

// #endregion execute

// #region history

// History returns a copy of the append-only discovery log.
func (r *Registry) History() []HistoryEntry {
	return append([]HistoryEntry(nil), r.history...)
}

// Has reports whether name resolves to a sector action.
func (r *Registry) Has(name string) bool {
	_, ok := r.actions[name]
	return ok
}

// Names lists sector action names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.actions))
	for n := range r.actions {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// #endregion history

// #region helpers

// pickTemplate prefers the exact bucket, then steps toward more guarded
// phrasing, then toward warmer phrasing.
func pickTemplate(responses map[trust.Bucket]string, bucket trust.Bucket) string {
	if s := responses[bucket]; s != "" {
		return s
	}
	order := map[trust.Bucket][]trust.Bucket{
		trust.BucketLow:    {trust.BucketMedium, trust.BucketHigh},
		trust.BucketMedium: {trust.BucketLow, trust.BucketHigh},
		trust.BucketHigh:   {trust.BucketMedium, trust.BucketLow},
	}
	for _, b := range order[bucket] {
		if s := responses[b]; s != "" {
			return s
		}
	}
	return ""
}

func genericPhraseFor(name string) string {
	if s, ok := genericPhrases[name]; ok {
		return s
	}
	return unknownPhrase
}

// summarize renders facts as "(key: value; key: value)" in key order.
func summarize(facts map[string]any) string {
	keys := make([]string, 0, len(facts))
	for k := range facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, renderValue(facts[k]))
	}
	return "(" + strings.Join(parts, "; ") + ")"
}

func renderValue(v any) string {
	switch t := v.(type) {
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = fmt.Sprint(e)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// #endregion helpers

package cognitive

import (
	"testing"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/layers"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/signals"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/trust"
)

func templates() []layers.Layer {
	return []layers.Layer{
		{ID: "profile", Level: 0, Category: layers.CategoryBusiness,
			Facts: map[string]any{"company": "Acme"}, UnlockThreshold: 0},
		{ID: "pains", Level: 2, Category: layers.CategoryBusiness,
			Facts: map[string]any{"painPoints": []string{"scrap rate"}}, UnlockThreshold: 30},
		{ID: "budget", Level: 3, Category: layers.CategoryFinancial,
			Facts: map[string]any{"budgetRange": "50-80k"}, UnlockThreshold: 50},
		{ID: "board", Level: 4, Category: layers.CategoryStrategic,
			Facts: map[string]any{"decisionMakers": []string{"CEO"}}, UnlockThreshold: 40,
			UnlockTriggers: []string{"consultDecisionMaker"}},
	}
}

func TestAppointmentSessionCrossesThirty(t *testing.T) {
	m := NewManager(templates(), Options{InitialTrust: 20})
	if m.TrustLevel() != 20 {
		t.Fatalf("expected 20, got %d", m.TrustLevel())
	}
	if _, ok := m.AvailableInformation()["painPoints"]; ok {
		t.Fatal("pains should be locked at 20")
	}

	newly := m.ApplySignals([]signals.Signal{
		{Name: signals.SectorKnowledge, TrustDelta: 8},
		{Name: signals.MentionsReferences, TrustDelta: 6},
	})
	if m.TrustLevel() != 34 {
		t.Fatalf("expected 34, got %d", m.TrustLevel())
	}
	if len(newly) != 1 || newly[0].ID != "pains" {
		t.Fatalf("expected pains revealed, got %+v", newly)
	}
	if _, ok := m.AvailableInformation()["painPoints"]; !ok {
		t.Fatal("painPoints missing from available information")
	}
	if m.Mode() != trust.ModeNeutral {
		t.Fatalf("expected neutral mode, got %s", m.Mode())
	}
}

func TestProfileVisibleAtStart(t *testing.T) {
	m := NewManager(templates(), Options{InitialTrust: 0})
	if m.AvailableInformation()["company"] != "Acme" {
		t.Fatal("threshold-0 layer should be revealed at construction")
	}
	if m.Mode() != trust.ModeDefensive {
		t.Fatalf("expected defensive, got %s", m.Mode())
	}
}

func TestTrustClampedAcrossDeltas(t *testing.T) {
	m := NewManager(templates(), Options{InitialTrust: 0})
	for _, d := range []int{-50, 80, 80, -1000, 1000, -3} {
		m.AddBehavioralTrigger("x", d)
		if lvl := m.TrustLevel(); lvl < 0 || lvl > 100 {
			t.Fatalf("trust %d out of range", lvl)
		}
	}
	if m.TrustLevel() != 97 {
		t.Fatalf("expected 97, got %d", m.TrustLevel())
	}
}

func TestTriggerLogIsSetLike(t *testing.T) {
	m := NewManager(templates(), Options{})
	m.AddBehavioralTrigger("sector_knowledge", 8)
	m.AddBehavioralTrigger("sector_knowledge", 8)
	m.AddBehavioralTrigger("price_concern", -3)
	got := m.Triggers()
	if len(got) != 2 || got[0] != "sector_knowledge" || got[1] != "price_concern" {
		t.Fatalf("unexpected trigger log %v", got)
	}
	if m.TrustLevel() != 13 {
		t.Fatalf("deltas must still apply on repeats, got %d", m.TrustLevel())
	}
}

func TestTriggerGatedLayerAndMonotonicDisclosure(t *testing.T) {
	m := NewManager(templates(), Options{InitialTrust: 45})
	if m.HasTrigger("consultDecisionMaker") {
		t.Fatal("unexpected trigger")
	}
	for _, l := range m.RevealedLayers() {
		if l.ID == "board" {
			t.Fatal("board requires consultDecisionMaker")
		}
	}
	m.AddBehavioralTrigger("consultDecisionMaker", 0)
	if _, ok := m.AvailableInformation()["decisionMakers"]; !ok {
		t.Fatal("board should unlock once trigger logged")
	}

	m.AddBehavioralTrigger(signals.PriceConcern, -40)
	if m.TrustLevel() != 5 {
		t.Fatalf("expected 5, got %d", m.TrustLevel())
	}
	ids := m.RevealedLayerIDs()
	if len(ids) != 3 {
		t.Fatalf("expected profile, pains, board revealed after drop, got %v", ids)
	}
	if _, ok := m.AvailableInformation()["decisionMakers"]; !ok {
		t.Fatal("facts retracted after trust drop")
	}
}

func TestAvailableInformationIsCopy(t *testing.T) {
	m := NewManager(templates(), Options{InitialTrust: 30})
	info := m.AvailableInformation()
	info["company"] = "Hacked"
	info["painPoints"].([]string)[0] = "hacked"
	fresh := m.AvailableInformation()
	if fresh["company"] != "Acme" {
		t.Fatal("caller mutated manager state through returned map")
	}
	if fresh["painPoints"].([]string)[0] != "scrap rate" {
		t.Fatal("caller mutated nested slice")
	}
}

func TestPhaseAdvancesForwardOnly(t *testing.T) {
	m := NewManager(templates(), Options{InitialTrust: 0})
	if m.Phase() != PhaseOpening {
		t.Fatalf("expected opening, got %s", m.Phase())
	}
	m.ApplyDelta(72)
	if m.Phase() != PhaseNegotiation {
		t.Fatalf("expected negotiation at 72, got %s", m.Phase())
	}
	m.ApplyDelta(-60)
	if m.Phase() != PhaseNegotiation {
		t.Fatalf("phase moved backward to %s", m.Phase())
	}
	m.SetPhase("bogus")
	if m.Phase() != PhaseNegotiation {
		t.Fatal("unknown phase should be ignored")
	}
}

func TestContextNextUnlockThreshold(t *testing.T) {
	m := NewManager(templates(), Options{InitialTrust: 34})
	ctx := m.Context()
	if ctx.NextUnlockThreshold == nil || *ctx.NextUnlockThreshold != 40 {
		t.Fatalf("expected next unlock 40, got %v", ctx.NextUnlockThreshold)
	}
	if ctx.Tier.Level != 2 {
		t.Fatalf("expected tier 2 at 34, got %d", ctx.Tier.Level)
	}
}

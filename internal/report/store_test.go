package report

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/discovery"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/session"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/signals"
)

// #region helpers
func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func playSession(t *testing.T, store *Store, kind session.Kind) *session.Session {
	t.Helper()
	s, err := session.New(session.Scenario{
		ID:          "acme-plant",
		CompanyName: "Acme Forge",
		Sector:      "Manufacturing",
		PainPoints:  []string{"line 3 keeps stopping"},
		Kind:        kind,
	}, session.Options{
		Rand:     rand.New(rand.NewSource(3)),
		Wait:     func(context.Context, time.Duration) error { return nil },
		Recorder: store,
	})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return s
}

// #endregion helpers

// #region lifecycle-tests
func TestSessionLifecycleIsRecorded(t *testing.T) {
	store := tempStore(t)
	s := playSession(t, store, session.KindAppointment)
	ctx := context.Background()

	if _, err := s.ProcessTurn(ctx, session.Turn{
		Text:    "We improved OEE at a plant like yours, and one of our clients agreed to act as a reference.",
		Speaker: signals.SpeakerUser,
	}); err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if _, err := s.DiscoverSync(ctx, discovery.CheckBudget, discovery.Params{}); err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	row, err := store.GetSession(s.ID())
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if row.SectorID != "manufacturing" || row.Kind != "rdv" || row.InitialTrust != 20 {
		t.Fatalf("unexpected session row: %+v", row)
	}
	if row.DispositionJSON.Valid {
		t.Fatal("appointments have no disposition")
	}
	if !row.EndedAt.Valid || row.FinalTrust.Int64 != 39 {
		t.Fatalf("expected finished row with trust 39, got %+v", row)
	}
	if row.Turns != 1 {
		t.Fatalf("expected 1 turn, got %d", row.Turns)
	}

	turns, err := store.Turns(s.ID())
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("expected 1 turn row, got %d", len(turns))
	}
	tr := turns[0]
	if tr.TrustBefore != 20 || tr.TrustAfter != 34 || tr.Decision != DecisionContinue {
		t.Fatalf("unexpected turn row: %+v", tr)
	}
	if !tr.SignalsJSON.Valid {
		t.Fatal("expected signals json")
	}

	disc, err := store.Discoveries(s.ID())
	if err != nil {
		t.Fatalf("Discoveries: %v", err)
	}
	if len(disc) != 1 || disc[0].ActionName != discovery.CheckBudget || disc[0].TrustDelta != 5 || disc[0].Bucket != "medium" {
		t.Fatalf("unexpected discovery rows: %+v", disc)
	}

	snap, err := store.Snapshot(s.ID())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap["companyName"] != "Acme Forge" {
		t.Fatalf("snapshot missing company name: %v", snap)
	}
	if !reflect.DeepEqual(snap["painPoints"], []any{"line 3 keeps stopping"}) {
		t.Fatalf("snapshot pain points: %v", snap["painPoints"])
	}
}

func TestColdSessionRecordsDispositionAndTermination(t *testing.T) {
	store := tempStore(t)
	s := playSession(t, store, session.KindColdCall)
	ctx := context.Background()

	if _, err := s.ProcessTurn(ctx, session.Turn{Text: "Exclusive offer, limited time!", Speaker: signals.SpeakerUser, Elapsed: time.Second}); err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	row, err := store.GetSession(s.ID())
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if !row.DispositionJSON.Valid {
		t.Fatal("expected disposition json")
	}
	if !row.Terminated || row.Reason.String != "trigger_phrase" {
		t.Fatalf("expected trigger_phrase termination, got %+v", row)
	}

	turns, _ := store.Turns(s.ID())
	if len(turns) != 1 || turns[0].Decision != DecisionTerminate || !turns[0].Reason.Valid {
		t.Fatalf("unexpected turn rows: %+v", turns)
	}
}

// #endregion lifecycle-tests

// #region query-tests
func TestListSessionsNewestFirst(t *testing.T) {
	store := tempStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		err := store.StartSession(session.Info{
			ID:        id,
			Scenario:  session.Scenario{ID: "sc", CompanyName: "Co", Kind: session.KindAppointment},
			SectorID:  "generic",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("StartSession %s: %v", id, err)
		}
	}

	rows, err := store.ListSessions(2)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(rows) != 2 || rows[0].SessionID != "c" || rows[1].SessionID != "b" {
		t.Fatalf("unexpected order: %+v", rows)
	}
	if rows[0].EndedAt.Valid {
		t.Fatal("unfinished session has no ended_at")
	}
}

func TestMissingSessionIsNotFound(t *testing.T) {
	store := tempStore(t)

	if _, err := store.GetSession("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Snapshot("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.FinishSession(session.Summary{SessionID: "nope"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDuplicateSessionRejected(t *testing.T) {
	store := tempStore(t)
	info := session.Info{ID: "dup", Scenario: session.Scenario{ID: "sc", CompanyName: "Co", Kind: session.KindAppointment}}
	if err := store.StartSession(info); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := store.StartSession(info); err == nil {
		t.Fatal("expected primary key violation")
	}
}

// #endregion query-tests

// #region snapshot-tests
func TestSnapshotRoundTripTypedValues(t *testing.T) {
	in := map[string]any{
		"budgetRange":    "80-120k EUR",
		"decisionMakers": []string{"CTO", "CFO"},
		"beds":           320,
		"fleet":          map[string]any{"trucks": 40},
	}
	b, err := EncodeSnapshot(in)
	if err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}
	out, err := DecodeSnapshot(b)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	want := map[string]any{
		"budgetRange":    "80-120k EUR",
		"decisionMakers": []any{"CTO", "CFO"},
		"beds":           320.0,
		"fleet":          map[string]any{"trucks": 40.0},
	}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeSnapshot([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatal("expected decode error")
	}
}

// #endregion snapshot-tests

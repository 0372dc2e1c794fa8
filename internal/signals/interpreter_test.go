package signals

import (
	"reflect"
	"testing"
)

func TestInterpretOnlyUserTurns(t *testing.T) {
	k := NewDefaultInterpreter(nil)
	if got := k.Interpret("My name is Alex, I understand your concern", SpeakerAssistant); got != nil {
		t.Fatalf("expected no signals for assistant turn, got %v", got)
	}
	if got := k.Interpret("   ", SpeakerUser); got != nil {
		t.Fatalf("expected no signals for blank turn, got %v", got)
	}
}

func TestInterpretMultipleSignalsSum(t *testing.T) {
	k := NewDefaultInterpreter([]string{"lean manufacturing", "OEE"})
	sigs := k.Interpret("We improved OEE at a plant like yours, and one of our clients agreed to act as a reference.", SpeakerUser)

	names := Names(sigs)
	want := []string{MentionsReferences, SectorKnowledge}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("signals: got %v, want %v", names, want)
	}
	if TotalDelta(sigs) != 14 {
		t.Fatalf("expected total delta 14, got %d", TotalDelta(sigs))
	}
}

func TestInterpretWordBoundaries(t *testing.T) {
	k := NewDefaultInterpreter(nil)
	// "roi" must not fire inside "destroying".
	sigs := k.Interpret("Nothing here is destroying your margins", SpeakerUser)
	for _, s := range sigs {
		if s.Name == FocusesOnROI {
			t.Fatal("roi matched inside another word")
		}
	}
	sigs = k.Interpret("What ROI do you expect?", SpeakerUser)
	if len(sigs) != 1 || sigs[0].Name != FocusesOnROI {
		t.Fatalf("expected focuses_on_roi, got %v", sigs)
	}
}

func TestInterpretNegativeSignals(t *testing.T) {
	k := NewDefaultInterpreter(nil)
	sigs := k.Interpret("I know it's expensive, but you should sign today.", SpeakerUser)
	if TotalDelta(sigs) != -5 {
		t.Fatalf("expected -5, got %d (%v)", TotalDelta(sigs), sigs)
	}
}

func TestInterpretEachSignalOncePerTurn(t *testing.T) {
	k := NewDefaultInterpreter(nil)
	sigs := k.Interpret("ROI, ROI, return on investment, payback.", SpeakerUser)
	if len(sigs) != 1 {
		t.Fatalf("expected a single signal, got %v", sigs)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello,   World!", "hello world"},
		{"I’m calling from Acme", "i'm calling from acme"},
		{"Sécurité été", "securite ete"},
		{"long-term partner.", "long-term partner"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDeltaForUnknownIsZero(t *testing.T) {
	if DeltaFor("not_a_signal") != 0 {
		t.Fatal("unknown signal must have zero delta")
	}
	if DeltaFor(DemonstrateSuccess) != 30 {
		t.Fatal("demonstrate_success should be +30")
	}
}

func TestMatchAny(t *testing.T) {
	kw, ok := MatchAny("Sorry to bother you, it's quick", []string{"quick", "brief"})
	if !ok || kw != "quick" {
		t.Fatalf("expected quick, got %q ok=%v", kw, ok)
	}
	if _, ok := MatchAny("quickly", []string{"quick"}); ok {
		t.Fatal("expected whole-word match only")
	}
}

package trust

import (
	"math"
	"testing"
)

func TestTierBucketBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Bucket
	}{
		{0, BucketLow},
		{29, BucketLow},
		{30, BucketMedium},
		{69, BucketMedium},
		{70, BucketHigh},
		{100, BucketHigh},
		{-5, BucketLow},
		{250, BucketHigh},
	}
	for _, tt := range tests {
		if got := TierBucket(tt.score); got != tt.want {
			t.Errorf("TierBucket(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestModeFor(t *testing.T) {
	tests := []struct {
		score int
		want  Mode
	}{
		{0, ModeDefensive},
		{24, ModeDefensive},
		{25, ModeNeutral},
		{49, ModeNeutral},
		{50, ModeInterested},
		{74, ModeInterested},
		{75, ModeConvinced},
		{100, ModeConvinced},
	}
	for _, tt := range tests {
		if got := ModeFor(tt.score); got != tt.want {
			t.Errorf("ModeFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestClassifyTrustHighestTierAtOrBelow(t *testing.T) {
	tests := []struct {
		score     int
		wantLevel int
	}{
		{0, 0},
		{14, 0},
		{15, 1},
		{30, 2},
		{49, 2},
		{50, 3},
		{84, 4},
		{85, 5},
		{100, 5},
	}
	for _, tt := range tests {
		if got := ClassifyTrust(tt.score); got.Level != tt.wantLevel {
			t.Errorf("ClassifyTrust(%d).Level = %d, want %d", tt.score, got.Level, tt.wantLevel)
		}
	}
}

func TestApplyClampsEverySequence(t *testing.T) {
	deltas := []int{30, 50, 40, -200, 7, math.MaxInt32 / 2, -3, -math.MaxInt32 / 2, 12}
	score := 20
	for i, d := range deltas {
		score = Apply(score, d)
		if score < MinScore || score > MaxScore {
			t.Fatalf("step %d: score %d out of range", i, score)
		}
	}
	if Apply(95, 10) != 100 {
		t.Fatal("expected clamp at 100")
	}
	if Apply(3, -10) != 0 {
		t.Fatal("expected clamp at 0")
	}
}

func TestNewLadderRejectsNonIncreasingThresholds(t *testing.T) {
	_, err := NewLadder([]Tier{
		{Level: 0, Threshold: 0},
		{Level: 1, Threshold: 40},
		{Level: 2, Threshold: 40},
	})
	if err == nil {
		t.Fatal("expected error for equal thresholds")
	}
}

func TestNewLadderRejectsNonZeroBase(t *testing.T) {
	_, err := NewLadder([]Tier{{Level: 0, Threshold: 5}})
	if err == nil {
		t.Fatal("expected error when level 0 threshold is not 0")
	}
}

func TestLadderNext(t *testing.T) {
	l := DefaultLadder()
	next, ok := l.Next(34)
	if !ok || next.Threshold != 50 {
		t.Fatalf("expected next threshold 50, got %+v ok=%v", next, ok)
	}
	if _, ok := l.Next(90); ok {
		t.Fatal("expected no tier above 90")
	}
}

func TestDefaultTiersStrictlyIncrease(t *testing.T) {
	tiers := DefaultLadder().Tiers()
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Threshold <= tiers[i-1].Threshold {
			t.Fatalf("tier %d threshold %d not above %d", i, tiers[i].Threshold, tiers[i-1].Threshold)
		}
	}
}

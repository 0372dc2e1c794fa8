package trust

import (
	"fmt"
	"sort"
)

// #region default-ladder

// DefaultTiers returns the six-tier ladder used for layer unlocking.
func DefaultTiers() []Tier {
	return []Tier{
		{Level: 0, Name: "stranger", Description: "Does not know the caller and reveals nothing beyond public facts", Threshold: 0},
		{Level: 1, Name: "guarded", Description: "Listens politely but answers in generalities", Threshold: 15},
		{Level: 2, Name: "open", Description: "Shares day-to-day pain points when asked precisely", Threshold: 30},
		{Level: 3, Name: "engaged", Description: "Discusses budget envelopes and who signs off", Threshold: 50},
		{Level: 4, Name: "trusting", Description: "Shares internal constraints and the competition in play", Threshold: 70},
		{Level: 5, Name: "partner", Description: "Treats the caller as an advisor and shares strategy", Threshold: 85},
	}
}

// #endregion default-ladder

// #region ladder

// Ladder is an ordered, read-only set of tiers. Safe for concurrent use.
type Ladder struct {
	tiers []Tier
}

// NewLadder validates tiers and returns a ladder sorted by threshold.
// Level 0 must sit at threshold 0 and thresholds must strictly increase with level.
func NewLadder(tiers []Tier) (*Ladder, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("trust ladder: no tiers")
	}
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })

	if sorted[0].Level != 0 || sorted[0].Threshold != 0 {
		return nil, fmt.Errorf("trust ladder: level 0 must have threshold 0, got level %d threshold %d",
			sorted[0].Level, sorted[0].Threshold)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Level == sorted[i-1].Level {
			return nil, fmt.Errorf("trust ladder: duplicate level %d", sorted[i].Level)
		}
		if sorted[i].Threshold <= sorted[i-1].Threshold {
			return nil, fmt.Errorf("trust ladder: threshold %d at level %d does not exceed %d",
				sorted[i].Threshold, sorted[i].Level, sorted[i-1].Threshold)
		}
		if sorted[i].Threshold > MaxScore {
			return nil, fmt.Errorf("trust ladder: threshold %d out of range", sorted[i].Threshold)
		}
	}
	return &Ladder{tiers: sorted}, nil
}

// DefaultLadder returns the built-in six-tier ladder.
func DefaultLadder() *Ladder {
	l, err := NewLadder(DefaultTiers())
	if err != nil {
		panic(err) // built-in table
	}
	return l
}

// Tiers returns a copy of the ladder in ascending order.
func (l *Ladder) Tiers() []Tier {
	out := make([]Tier, len(l.tiers))
	copy(out, l.tiers)
	return out
}

// Classify returns the highest tier whose threshold is <= score.
func (l *Ladder) Classify(score int) Tier {
	score = Clamp(score)
	best := l.tiers[0]
	for _, t := range l.tiers {
		if t.Threshold <= score {
			best = t
		}
	}
	return best
}

// Next returns the first tier above score, or false at the top of the ladder.
func (l *Ladder) Next(score int) (Tier, bool) {
	score = Clamp(score)
	for _, t := range l.tiers {
		if t.Threshold > score {
			return t, true
		}
	}
	return Tier{}, false
}

// #endregion ladder

// #region classify

// ClassifyTrust classifies score against the default ladder.
func ClassifyTrust(score int) Tier {
	return defaultLadder.Classify(score)
}

var defaultLadder = DefaultLadder()

// TierBucket is the three-way split used by discovery responses:
// low < 30, medium 30..69, high >= 70.
func TierBucket(score int) Bucket {
	score = Clamp(score)
	switch {
	case score < 30:
		return BucketLow
	case score < 70:
		return BucketMedium
	default:
		return BucketHigh
	}
}

// ModeFor derives the behavioral mode from a trust score.
func ModeFor(score int) Mode {
	score = Clamp(score)
	switch {
	case score < 25:
		return ModeDefensive
	case score < 50:
		return ModeNeutral
	case score < 75:
		return ModeInterested
	default:
		return ModeConvinced
	}
}

// Clamp restricts score to [0, 100].
func Clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// Apply adds delta to score and clamps. Deltas are never rejected.
func Apply(score, delta int) int {
	return Clamp(score + delta)
}

// #endregion classify

package trust

// #region bounds

const (
	MinScore = 0
	MaxScore = 100
)

// #endregion bounds

// #region tier
// Tier is one rung of the trust ladder. Immutable once part of a Ladder.
type Tier struct {
	Level       int    `json:"level" yaml:"level"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Threshold   int    `json:"threshold" yaml:"threshold"`
}

// #endregion tier

// #region bucket
// Bucket is the coarse three-way register used to phrase discovery responses.
type Bucket string

const (
	BucketLow    Bucket = "low"
	BucketMedium Bucket = "medium"
	BucketHigh   Bucket = "high"
)

// #endregion bucket

// #region mode
// Mode is the behavioral stance derived from the trust score.
type Mode string

const (
	ModeDefensive  Mode = "defensive"
	ModeNeutral    Mode = "neutral"
	ModeInterested Mode = "interested"
	ModeConvinced  Mode = "convinced"
)

// #endregion mode

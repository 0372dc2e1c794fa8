package disposition

import (
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/signals"
)

// #region keyword-families
var apologyWords = []string{
	"sorry", "excuse me", "apologize", "apologise", "apologies", "i know you're busy",
	"pardon", "desole", "excusez-moi", "i won't keep you",
}

var problemWords = []string{
	"problem", "problems", "issue", "issues", "challenge", "challenges", "downtime",
	"delays", "losing", "bottleneck", "struggle", "struggling", "pain point", "costs you",
}

var minimalTimeWords = []string{
	"brief", "briefly", "quick", "quickly", "30 seconds", "one minute", "two minutes",
	"won't take long", "in short", "short call",
}

// #endregion keyword-families

// #region classify
// ClassifyRescue scans one trainee turn for rescue behaviors. Pure: the
// caller merges the result into the running record.
func ClassifyRescue(text string, vocabulary []string) Rescue {
	_, apology := signals.MatchAny(text, apologyWords)
	_, problem := signals.MatchAny(text, problemWords)
	_, sector := signals.MatchAny(text, vocabulary)
	_, brief := signals.MatchAny(text, minimalTimeWords)
	return Rescue{
		ApologizedForInterruption: apology,
		IdentifiedSpecificProblem: problem,
		ShowedSectorExpertise:     sector,
		RequestedMinimalTime:      brief,
	}
}

// #endregion classify

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/cognitive"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/session"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/signals"
)

// #region output
func printTurn(out io.Writer, res session.TurnResult) {
	if len(res.Signals) == 0 {
		fmt.Fprintf(out, "  trust %d (no signal)\n", res.Context.TrustLevel)
	} else {
		fmt.Fprintf(out, "  trust %d (%+d: %s)\n", res.Context.TrustLevel, res.TrustDelta,
			strings.Join(signals.Names(res.Signals), ", "))
	}
	if len(res.NewlyRevealed) > 0 {
		fmt.Fprintf(out, "  unlocked %s\n", strings.Join(res.NewlyRevealed, ", "))
	}
}

func printContext(out io.Writer, c cognitive.Context) {
	fmt.Fprintf(out, "  trust %d | tier %s | mode %s | phase %s", c.TrustLevel, c.Tier.Name, c.Mode, c.Phase)
	if c.NextUnlockThreshold != nil {
		fmt.Fprintf(out, " | next unlock at %d", *c.NextUnlockThreshold)
	}
	fmt.Fprintln(out)
	printInfo(out, c.AvailableInformation)
}

func printInfo(out io.Writer, info map[string]any) {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "    %-20s %v\n", k, info[k])
	}
}

func printTermination(out io.Writer, s *session.Session) {
	t := s.Termination()
	if t == nil {
		return
	}
	fmt.Fprintf(out, "  reason: %s (%s), rescue conditions met: %d\n", t.Reason, t.Detail, t.RescueCount)
	if d := s.Disposition(); d != nil {
		fmt.Fprintf(out, "  counterpart was %s and %s, patience %d, timeout %ds\n",
			d.MentalState, d.Mood, d.PatienceLevel, d.TerminationTimeoutSeconds)
	}
}

// #endregion output

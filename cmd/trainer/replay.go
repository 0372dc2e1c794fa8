package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/replay"
)

// #region command
var replayCmd = &cobra.Command{
	Use:   "replay <fixture.json>...",
	Short: "Replay recorded fixtures and compare against expectations",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	provider, err := loadProvider(cfg)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	out := cmd.OutOrStdout()
	diverged := 0
	for _, path := range args {
		f, err := replay.LoadFixture(path)
		if err != nil {
			return err
		}
		rc := f.ToReplayConfig()
		rc.Provider = provider
		if store != nil {
			rc.Recorder = store
		}

		results, s, err := replay.Replay(cmd.Context(), f.Scenario, f.ToEvents(), rc)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := s.Close(context.Background()); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		fmt.Fprintf(out, "== %s\n", path)
		if f.Description != "" {
			fmt.Fprintf(out, "   %s\n", f.Description)
		}
		printResults(out, results)
		mismatches := replay.Check(results, f.ExpectedResults)
		for _, m := range mismatches {
			fmt.Fprintf(out, "DIFF %s\n", m)
		}
		sum := replay.Summarize(results, s)
		fmt.Fprintf(out, "\nSummary: %d events, %d turns, %d discoveries, %d refused, final trust %d",
			sum.TotalEvents, sum.Turns, sum.Discoveries, sum.Refused, sum.FinalTrust)
		if sum.Terminated {
			fmt.Fprintf(out, ", terminated (%s)", sum.Reason)
		}
		fmt.Fprintf(out, ", %d diverge\n\n", len(mismatches))
		diverged += len(mismatches)
	}
	if diverged > 0 {
		return fmt.Errorf("%d expectation(s) diverged", diverged)
	}
	return nil
}

// #endregion command

// #region output
func printResults(out io.Writer, results []replay.ReplayResult) {
	fmt.Fprintf(out, "%-8s| %-9s| %-8s| %-9s| %-11s| %s\n", "Turn", "Kind", "Outcome", "Trust", "End", "Revealed")
	fmt.Fprintf(out, "%-8s+%-10s+%-9s+%-10s+%-12s+%s\n",
		"--------", "----------", "---------", "----------", "------------", "--------")
	for _, r := range results {
		end := "-"
		if r.Terminated {
			end = r.Reason
		}
		fmt.Fprintf(out, "%-8s| %-9s| %-8s| %3d → %-3d| %-11s| %s\n",
			r.TurnID, r.Kind, r.Outcome, r.TrustBefore, r.TrustAfter, end, strings.Join(r.Revealed, ", "))
	}
}

// #endregion output

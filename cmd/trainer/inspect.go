package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/report"
)

// #region command
var inspectCmd = &cobra.Command{
	Use:   "inspect [session-id]",
	Short: "List stored sessions, or show one session's turn log",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

var (
	flagLast int
	flagJSON bool
)

func init() {
	inspectCmd.Flags().IntVar(&flagLast, "last", 20, "show N most recent sessions")
	inspectCmd.Flags().BoolVar(&flagJSON, "json", false, "output as JSON instead of table")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Storage.DBPath == "" {
		return fmt.Errorf("no report database: pass --db or set TRAINER_DB")
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		return runDetail(out, store, args[0])
	}
	return runList(out, store)
}

// #endregion command

// #region list-mode
func runList(out io.Writer, store *report.Store) error {
	rows, err := store.ListSessions(flagLast)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(out, rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}
	fmt.Fprintf(out, "%-36s  %-10s  %-14s  %-20s  %5s  %5s  %-16s  %s\n",
		"Session", "Kind", "Sector", "Company", "Trust", "Turns", "End", "Started")
	for _, r := range rows {
		final := "-"
		if r.FinalTrust.Valid {
			final = fmt.Sprint(r.FinalTrust.Int64)
		}
		end := "open"
		switch {
		case r.Terminated:
			end = r.Reason.String
		case r.EndedAt.Valid:
			end = "closed"
		}
		fmt.Fprintf(out, "%-36s  %-10s  %-14s  %-20s  %5s  %5d  %-16s  %s\n",
			r.SessionID, r.Kind, r.SectorID, truncate(r.CompanyName, 20), final, r.Turns, truncate(end, 16), r.StartedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode
type detail struct {
	Session     report.SessionRow     `json:"session"`
	Turns       []report.TurnRow      `json:"turns"`
	Discoveries []report.DiscoveryRow `json:"discoveries"`
	Snapshot    map[string]any        `json:"snapshot,omitempty"`
}

func runDetail(out io.Writer, store *report.Store, id string) error {
	row, err := store.GetSession(id)
	if err != nil {
		return err
	}
	turns, err := store.Turns(id)
	if err != nil {
		return err
	}
	disc, err := store.Discoveries(id)
	if err != nil {
		return err
	}
	snap, err := store.Snapshot(id)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(out, detail{Session: row, Turns: turns, Discoveries: disc, Snapshot: snap})
	}

	fmt.Fprintf(out, "Session %s: %s (%s, %s), started %s\n", row.SessionID, row.CompanyName, row.Kind, row.SectorID, row.StartedAt)
	if row.DispositionJSON.Valid {
		fmt.Fprintf(out, "Disposition: %s\n", row.DispositionJSON.String)
	}
	fmt.Fprintf(out, "\n%-4s  %-5s  %-9s  %-9s  %-30s  %s\n", "#", "Who", "Trust", "Decision", "Signals", "Text")
	for _, t := range turns {
		fmt.Fprintf(out, "%-4d  %-5s  %3d → %-3d  %-9s  %-30s  %s\n",
			t.TurnIndex, t.Speaker, t.TrustBefore, t.TrustAfter, t.Decision,
			truncate(t.SignalsJSON.String, 30), truncate(t.Text, 60))
	}
	if len(disc) > 0 {
		fmt.Fprintf(out, "\n%-24s  %-7s  %5s  %s\n", "Action", "Bucket", "Delta", "Response")
		for _, d := range disc {
			fmt.Fprintf(out, "%-24s  %-7s  %+5d  %s\n", d.ActionName, d.Bucket, d.TrustDelta, d.ResponseSummary)
		}
	}
	if row.EndedAt.Valid {
		fmt.Fprintf(out, "\nEnded %s: trust %d, tier %s, phase %s", row.EndedAt.String,
			row.FinalTrust.Int64, row.Tier.String, row.Phase.String)
		if row.Terminated {
			fmt.Fprintf(out, ", terminated (%s)", row.Reason.String)
		}
		fmt.Fprintln(out)
	}
	if len(snap) > 0 {
		fmt.Fprintln(out, "\nDisclosed information:")
		printInfo(out, snap)
	}
	return nil
}

// #endregion detail-mode

// #region helpers
func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// #endregion helpers

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/cognitive"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/config"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/discovery"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/metrics"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/session"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/signals"
)

// #region command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run an interactive call in the terminal",
	Long: `Run an interactive call. Each line you type is one trainee turn.

Commands:
  /discover <action> [urgent] [confidential] [strategic]
  /actions              list the sector's discovery actions
  /context              print the cognitive context
  /phase <name>         set the conversation phase
  /quit                 end the call`,
	RunE: runPlay,
}

var (
	flagScenario string
	flagCompany  string
	flagSector   string
	flagKind     string
	flagPains    []string
)

func init() {
	playCmd.Flags().StringVar(&flagScenario, "scenario", "", "scenario YAML file")
	playCmd.Flags().StringVar(&flagCompany, "company", "Acme", "company name when no scenario file is given")
	playCmd.Flags().StringVar(&flagSector, "sector", "", "sector name")
	playCmd.Flags().StringVar(&flagKind, "kind", string(session.KindAppointment), "cold-call or rdv")
	playCmd.Flags().StringSliceVar(&flagPains, "pain", nil, "pain point (repeatable)")
}

// #endregion command

// #region run
func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc, err := loadScenario()
	if err != nil {
		return err
	}

	opts, err := cfg.SessionOptions()
	if err != nil {
		return err
	}
	if opts.Provider, err = loadProvider(cfg); err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		opts.Recorder = store
	}
	if cfg.Metrics.Addr != "" {
		opts.Metrics = serveMetrics(cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := session.New(sc, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(context.Background()); err != nil {
			log.Printf("[TRAINER] close: %v", err)
		}
	}()

	out := cmd.OutOrStdout()
	start := time.Now()
	fmt.Fprintf(out, "Calling %s (%s, sector %s). Session %s\n", sc.CompanyName, sc.Kind, s.SectorID(), s.ID())
	printContext(out, s.Context())

	hungUp := make(chan struct{})
	if sc.Kind == session.KindColdCall {
		go watchTimer(ctx, s, start, hungUp)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Fprint(out, "> ")
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case <-hungUp:
			fmt.Fprintln(out, "\nThe prospect hung up.")
			printTermination(out, s)
			return nil
		case line, ok = <-lines:
			if !ok {
				return nil
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			quit, err := runCommand(ctx, out, s, line)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		res, err := s.ProcessTurn(ctx, session.Turn{Text: line, Speaker: signals.SpeakerUser, Elapsed: time.Since(start)})
		if errors.Is(err, session.ErrSessionEnded) {
			printTermination(out, s)
			return nil
		}
		if err != nil {
			return err
		}
		printTurn(out, res)
		if res.Termination != nil && res.Termination.ShouldTerminate {
			fmt.Fprintln(out, "The prospect hung up.")
			printTermination(out, s)
			return nil
		}
	}
}

// watchTimer polls the hang-up timer while the trainee is silent.
func watchTimer(ctx context.Context, s *session.Session, start time.Time, hungUp chan<- struct{}) {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if s.Ended() {
				return
			}
			t, err := s.CheckTimer(ctx, time.Since(start))
			if err != nil {
				return
			}
			if t.ShouldTerminate {
				close(hungUp)
				return
			}
		}
	}
}

func serveMetrics(cfg *config.Config) *metrics.Metrics {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
			log.Printf("[TRAINER] metrics server: %v", err)
		}
	}()
	return m
}

// #endregion run

// #region commands
// runCommand handles one slash command. It reports whether to quit.
func runCommand(ctx context.Context, out io.Writer, s *session.Session, line string) (bool, error) {
	name, args := splitCommand(line)
	switch name {
	case "quit", "exit":
		return true, nil
	case "context":
		printContext(out, s.Context())
	case "actions":
		fmt.Fprintf(out, "sector: %s\ngeneric: %s\n",
			strings.Join(s.Actions(), ", "), strings.Join(discovery.GenericNames(), ", "))
	case "phase":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: /phase <opening|discovery|negotiation|closing>")
		}
		phase := cognitive.Phase(strings.ToLower(args[0]))
		switch phase {
		case cognitive.PhaseOpening, cognitive.PhaseDiscovery, cognitive.PhaseNegotiation, cognitive.PhaseClosing:
		default:
			return false, fmt.Errorf("unknown phase %q", args[0])
		}
		return false, s.SetPhase(ctx, phase)
	case "discover":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: /discover <action> [urgent] [confidential] [strategic]")
		}
		params, err := parseParams(args[1:])
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "(%s...)\n", args[0])
		res, err := s.DiscoverSync(ctx, args[0], params)
		if err != nil {
			return errors.Is(err, session.ErrSessionEnded), err
		}
		fmt.Fprintf(out, "Prospect: %s\n", res.Response)
		fmt.Fprintf(out, "  trust %+d (x%.1f, %s)", res.TrustDelta, res.Multiplier, res.Bucket)
		if len(res.RevealedLayers) > 0 {
			fmt.Fprintf(out, " unlocked %s", strings.Join(res.RevealedLayers, ", "))
		}
		fmt.Fprintln(out)
	default:
		return false, fmt.Errorf("unknown command /%s", name)
	}
	return false, nil
}

func splitCommand(line string) (string, []string) {
	fields := strings.Fields(strings.TrimPrefix(line, "/"))
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

func parseParams(words []string) (discovery.Params, error) {
	var p discovery.Params
	for _, w := range words {
		switch strings.ToLower(w) {
		case "urgent":
			p.Urgent = true
		case "confidential":
			p.Confidential = true
		case "strategic":
			p.Strategic = true
		default:
			return discovery.Params{}, fmt.Errorf("unknown parameter %q", w)
		}
	}
	return p, nil
}

// #endregion commands

// #region scenario
func loadScenario() (session.Scenario, error) {
	if flagScenario != "" {
		return readScenario(flagScenario)
	}
	kind, ok := session.ParseKind(flagKind)
	if !ok {
		return session.Scenario{}, fmt.Errorf("unknown kind %q", flagKind)
	}
	sc := session.Scenario{
		ID:          "cli-" + strings.ToLower(strings.ReplaceAll(flagCompany, " ", "-")),
		CompanyName: flagCompany,
		Sector:      flagSector,
		PainPoints:  flagPains,
		Kind:        kind,
	}
	return sc, sc.Validate()
}

func readScenario(path string) (session.Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return session.Scenario{}, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()
	var sc session.Scenario
	if err := yaml.NewDecoder(f).Decode(&sc); err != nil {
		return session.Scenario{}, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return session.Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// #endregion scenario

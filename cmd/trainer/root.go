package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/config"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/report"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/sector"
)

// #region root
var rootCmd = &cobra.Command{
	Use:           "trainer",
	Short:         "Practice sales calls against a simulated counterpart",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional.
		if _, err := os.Stat(".env"); err == nil {
			if err := godotenv.Load(); err != nil {
				return fmt.Errorf("load .env: %w", err)
			}
		}
		if !flagVerbose {
			log.SetOutput(io.Discard)
		}
		return nil
	},
}

var (
	flagConfig  string
	flagDB      string
	flagSectors string
	flagVerbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "engine config YAML (env TRAINER_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "report database path (env TRAINER_DB)")
	rootCmd.PersistentFlags().StringVar(&flagSectors, "sectors", "", "extra sector table YAML (env TRAINER_SECTORS)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "show engine logs")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(inspectCmd)
}

// #endregion root

// #region helpers
// loadConfig resolves the config file from the flag, then the environment,
// then defaults. Flags and env override the storage and sector paths.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := flagOr(flagConfig, "TRAINER_CONFIG", ""); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.Storage.DBPath = flagOr(flagDB, "TRAINER_DB", cfg.Storage.DBPath)
	cfg.Sectors.File = flagOr(flagSectors, "TRAINER_SECTORS", cfg.Sectors.File)
	return cfg, nil
}

func loadProvider(cfg *config.Config) (*sector.Provider, error) {
	return sector.NewProviderFromFile(cfg.Sectors.File)
}

// openStore returns nil when no database is configured.
func openStore(cfg *config.Config) (*report.Store, error) {
	if cfg.Storage.DBPath == "" {
		return nil, nil
	}
	store, err := report.NewStore(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open report store %s: %w", cfg.Storage.DBPath, err)
	}
	return store, nil
}

func flagOr(flag, key, fallback string) string {
	if flag != "" {
		return flag
	}
	return envOr(key, fallback)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/discovery"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/disposition"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/session"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/trust"
)

// #region config-types
type Config struct {
	Trust       TrustConfig       `yaml:"trust"`
	Termination TerminationConfig `yaml:"termination"`
	Discovery   DiscoveryConfig   `yaml:"discovery"`
	Storage     StorageConfig     `yaml:"storage"`
	Sectors     SectorsConfig     `yaml:"sectors"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type TrustConfig struct {
	InitialColdCall    int          `yaml:"initial_cold_call"`
	InitialAppointment int          `yaml:"initial_appointment"`
	Tiers              []trust.Tier `yaml:"tiers"` // empty = default ladder
}

type TerminationConfig struct {
	TimeoutFloorSeconds     int `yaml:"timeout_floor_seconds"`
	SecondsPerPatience      int `yaml:"seconds_per_patience"`
	FreeCalls               int `yaml:"free_calls"`
	SecondsPerExtraCall     int `yaml:"seconds_per_extra_call"`
	RescueQuorum            int `yaml:"rescue_quorum"`
	BonusAtQuorumSeconds    int `yaml:"bonus_at_quorum_seconds"`
	BonusAboveQuorumSeconds int `yaml:"bonus_above_quorum_seconds"`
}

type DiscoveryConfig struct {
	DelayScale         float64 `yaml:"delay_scale"`
	GenericTrustImpact int     `yaml:"generic_trust_impact"`
	AppendDisclosures  bool    `yaml:"append_disclosures"`
}

type StorageConfig struct {
	DBPath string `yaml:"db_path"` // empty = no report store
}

type SectorsConfig struct {
	File string `yaml:"file"` // extra YAML sector table
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty = metrics not served
}

// #endregion config-types

// #region defaults
// Default returns the engine's standard settings.
func Default() *Config {
	tuning := disposition.DefaultTuning()
	dcfg := discovery.DefaultConfig()
	initial := session.DefaultInitialTrust()
	return &Config{
		Trust: TrustConfig{
			InitialColdCall:    initial[session.KindColdCall],
			InitialAppointment: initial[session.KindAppointment],
		},
		Termination: TerminationConfig{
			TimeoutFloorSeconds:     tuning.TimeoutFloorSeconds,
			SecondsPerPatience:      tuning.SecondsPerPatience,
			FreeCalls:               tuning.FreeCalls,
			SecondsPerExtraCall:     tuning.SecondsPerExtraCall,
			RescueQuorum:            tuning.Quorum,
			BonusAtQuorumSeconds:    int(tuning.BonusAtQuorum / time.Second),
			BonusAboveQuorumSeconds: int(tuning.BonusAboveQuorum / time.Second),
		},
		Discovery: DiscoveryConfig{
			DelayScale:         dcfg.DelayScale,
			GenericTrustImpact: dcfg.GenericTrustImpact,
			AppendDisclosures:  dcfg.AppendDisclosures,
		},
	}
}

// #endregion defaults

// #region load
// LoadConfig reads path over Default(). Keys absent from the file keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and the ladder.
func (c *Config) Validate() error {
	for name, v := range map[string]int{
		"initial_cold_call":   c.Trust.InitialColdCall,
		"initial_appointment": c.Trust.InitialAppointment,
	} {
		if v < trust.MinScore || v > trust.MaxScore {
			return fmt.Errorf("trust.%s %d out of range", name, v)
		}
	}
	if c.Termination.RescueQuorum < 1 {
		return fmt.Errorf("termination.rescue_quorum must be at least 1")
	}
	if c.Discovery.DelayScale < 0 {
		return fmt.Errorf("discovery.delay_scale must not be negative")
	}
	if _, err := c.Ladder(); err != nil {
		return err
	}
	return nil
}

// #endregion load

// #region conversions
// Ladder builds the trust ladder, or the default when no tiers are set.
func (c *Config) Ladder() (*trust.Ladder, error) {
	if len(c.Trust.Tiers) == 0 {
		return trust.DefaultLadder(), nil
	}
	l, err := trust.NewLadder(c.Trust.Tiers)
	if err != nil {
		return nil, fmt.Errorf("trust.tiers: %w", err)
	}
	return l, nil
}

// Tuning returns the disposition tuning.
func (c *Config) Tuning() disposition.Tuning {
	t := disposition.DefaultTuning()
	t.TimeoutFloorSeconds = c.Termination.TimeoutFloorSeconds
	t.SecondsPerPatience = c.Termination.SecondsPerPatience
	t.FreeCalls = c.Termination.FreeCalls
	t.SecondsPerExtraCall = c.Termination.SecondsPerExtraCall
	t.Quorum = c.Termination.RescueQuorum
	t.BonusAtQuorum = time.Duration(c.Termination.BonusAtQuorumSeconds) * time.Second
	t.BonusAboveQuorum = time.Duration(c.Termination.BonusAboveQuorumSeconds) * time.Second
	return t
}

// DiscoveryConfig returns the registry settings.
func (c *Config) DiscoveryConfig() discovery.Config {
	return discovery.Config{
		DelayScale:         c.Discovery.DelayScale,
		GenericTrustImpact: c.Discovery.GenericTrustImpact,
		AppendDisclosures:  c.Discovery.AppendDisclosures,
	}
}

// SessionOptions fills the engine settings of session options. Collaborators
// (provider, metrics, recorder, rand) are left for the caller.
func (c *Config) SessionOptions() (session.Options, error) {
	ladder, err := c.Ladder()
	if err != nil {
		return session.Options{}, err
	}
	tuning := c.Tuning()
	dcfg := c.DiscoveryConfig()
	return session.Options{
		Ladder: ladder,
		InitialTrust: map[session.Kind]int{
			session.KindColdCall:    c.Trust.InitialColdCall,
			session.KindAppointment: c.Trust.InitialAppointment,
		},
		Tuning:    &tuning,
		Discovery: &dcfg,
	}, nil
}

// #endregion conversions

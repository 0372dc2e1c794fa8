package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/session"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultMatchesEngineConstants(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0, cfg.Trust.InitialColdCall)
	assert.Equal(t, 20, cfg.Trust.InitialAppointment)
	assert.Equal(t, 15, cfg.Termination.TimeoutFloorSeconds)
	assert.Equal(t, 2, cfg.Termination.RescueQuorum)
	assert.Equal(t, 1.0, cfg.Discovery.DelayScale)
	assert.True(t, cfg.Discovery.AppendDisclosures)
}

func TestLoadConfigKeepsMissingDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
trust:
  initial_appointment: 30
termination:
  timeout_floor_seconds: 0
discovery:
  delay_scale: 0
  append_disclosures: false
storage:
  db_path: /tmp/reports.db
`))
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Trust.InitialAppointment)
	assert.Equal(t, 0, cfg.Trust.InitialColdCall)
	assert.Equal(t, 0, cfg.Termination.TimeoutFloorSeconds)
	assert.Equal(t, 12, cfg.Termination.SecondsPerPatience)
	assert.Equal(t, 0.0, cfg.Discovery.DelayScale)
	assert.False(t, cfg.Discovery.AppendDisclosures)
	assert.Equal(t, 2, cfg.Discovery.GenericTrustImpact)
	assert.Equal(t, "/tmp/reports.db", cfg.Storage.DBPath)

	tuning := cfg.Tuning()
	assert.Equal(t, 0, tuning.TimeoutFloorSeconds)
	assert.Equal(t, 20*time.Second, tuning.BonusAtQuorum)
	assert.Equal(t, 40*time.Second, tuning.BonusAboveQuorum)
}

func TestLoadConfigCustomLadder(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
trust:
  tiers:
    - {level: 0, name: cold, threshold: 0}
    - {level: 1, name: warm, threshold: 40}
    - {level: 2, name: hot, threshold: 80}
`))
	require.NoError(t, err)

	l, err := cfg.Ladder()
	require.NoError(t, err)
	assert.Equal(t, "warm", l.Classify(79).Name)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "trust: [not, a, mapping]"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "trust:\n  initial_cold_call: 140\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `
trust:
  tiers:
    - {level: 0, name: a, threshold: 10}
`))
	assert.Error(t, err, "level 0 must start at 0")
}

func TestSessionOptions(t *testing.T) {
	cfg := Default()
	cfg.Trust.InitialAppointment = 25
	opts, err := cfg.SessionOptions()
	require.NoError(t, err)

	assert.Equal(t, 25, opts.InitialTrust[session.KindAppointment])
	require.NotNil(t, opts.Tuning)
	assert.Equal(t, 15, opts.Tuning.TimeoutFloorSeconds)
	require.NotNil(t, opts.Discovery)
	assert.Equal(t, 2, opts.Discovery.GenericTrustImpact)
	assert.NotNil(t, opts.Ladder)
}

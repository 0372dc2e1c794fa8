package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionStarted("rdv")
		m.Turn("user", 5)
		m.Revealed("business")
		m.Discovery("checkBudget", false, 4)
		m.Terminated("timeout")
	})
}

// gathered flattens counter values as "name{k=v,...}" → value.
func gathered(t *testing.T, reg *prometheus.Registry) (map[string]float64, map[string]uint64) {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	counters := make(map[string]float64)
	histograms := make(map[string]uint64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			key := mf.GetName() + "{" + strings.Join(labels, ",") + "}"
			if m.GetCounter() != nil {
				counters[key] = m.GetCounter().GetValue()
			}
			if m.GetHistogram() != nil {
				histograms[key] = m.GetHistogram().GetSampleCount()
			}
		}
	}
	return counters, histograms
}

func TestCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SessionStarted("cold-call")
	m.SessionStarted("cold-call")
	m.Turn("user", 8)
	m.Revealed("financial")
	m.Discovery("askColleague", true, 2)
	m.Terminated("trigger_phrase")

	counters, histograms := gathered(t, reg)
	assert.Equal(t, 2.0, counters["disclosure_sessions_started_total{kind=cold-call}"])
	assert.Equal(t, 1.0, counters["disclosure_turns_processed_total{speaker=user}"])
	assert.Equal(t, 1.0, counters["disclosure_layers_revealed_total{category=financial}"])
	assert.Equal(t, 1.0, counters["disclosure_discovery_actions_total{action=askColleague,fallback=true}"])
	assert.Equal(t, 1.0, counters["disclosure_terminations_total{reason=trigger_phrase}"])
	assert.Equal(t, uint64(2), histograms["disclosure_trust_delta{}"])
}

func TestDoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

package sector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/discovery"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/trust"
)

func TestConfigResolution(t *testing.T) {
	p := NewDefaultProvider()

	tests := []struct {
		key  string
		want string
	}{
		{"technology", "technology"},
		{"Technologie", "technology"},
		{"SANTÉ", "healthcare"},
		{"Manufacturing", "manufacturing"},
		{"financial_services", "finance"},
		{"business-school", "education"},
		{"aerospace", GenericID},
		{"", GenericID},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c := p.Config(tt.key)
			require.NotNil(t, c)
			assert.Equal(t, tt.want, c.ID)
		})
	}
}

func TestForScenarioOverrideBeatsSector(t *testing.T) {
	p := NewDefaultProvider()

	assert.Equal(t, "education", p.ForScenario("business-school", "Services").ID)
	assert.Equal(t, "retail", p.ForScenario("shop-42", "Retail").ID)
	assert.Equal(t, GenericID, p.ForScenario("shop-42", "Unknown").ID)
}

func TestGenericConfigShape(t *testing.T) {
	g := NewDefaultProvider().Generic()

	assert.Empty(t, g.Layers)
	assert.Empty(t, g.Actions)
	assert.NotEmpty(t, g.BudgetRanges)
	assert.NotEmpty(t, g.DecisionTimelines)
	assert.NotEmpty(t, g.StakeholderHierarchy)
}

func TestBuiltinTableIsWellFormed(t *testing.T) {
	for _, c := range BuiltinConfigs() {
		t.Run(c.ID, func(t *testing.T) {
			assert.NotEmpty(t, c.Vocabulary)
			assert.NotEmpty(t, c.Layers)

			ids := make(map[string]bool)
			for _, l := range c.Layers {
				assert.False(t, ids[l.ID], "duplicate layer id %s", l.ID)
				ids[l.ID] = true
				assert.True(t, l.Category.Valid(), l.ID)
				assert.GreaterOrEqual(t, l.UnlockThreshold, trust.MinScore)
				assert.LessOrEqual(t, l.UnlockThreshold, trust.MaxScore)
			}

			var budget *discovery.Action
			for i := range c.Actions {
				if c.Actions[i].Name == discovery.CheckBudget {
					budget = &c.Actions[i]
				}
			}
			require.NotNil(t, budget, "every sector defines checkBudget")
			for _, b := range []trust.Bucket{trust.BucketLow, trust.BucketMedium, trust.BucketHigh} {
				assert.NotEmpty(t, budget.Responses[b], string(b))
			}
		})
	}
}

func TestLayerTemplatesAreCopies(t *testing.T) {
	c := NewDefaultProvider().Config("technology")
	tpl := c.LayerTemplates()
	tpl[0].Facts["teamSize"] = "mutated"

	assert.Equal(t, "12 engineers", c.Layers[0].Facts["teamSize"])
}

func TestSectorsSortedAndDistinct(t *testing.T) {
	var ids []string
	for _, c := range NewDefaultProvider().Sectors() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"education", "finance", "healthcare", "manufacturing", "retail", "technology"}, ids)
}

func TestUnknownOverrideIgnored(t *testing.T) {
	p := NewProvider(BuiltinConfigs(), map[string]string{"x": "nope"}, nil)
	assert.Equal(t, GenericID, p.Config("x").ID)
}

const tableYAML = `
sectors:
  - id: logistics
    name: Logistics
    aliases: [transport]
    vocabulary: [last mile, cross-docking]
    layers:
      - id: logistics-fleet
        level: 1
        category: business
        unlock_threshold: 20
        facts:
          fleet:
            trucks: 40
            vans: 12
    actions:
      - name: checkBudget
        sector_specific: true
        delay_seconds: [1, 2]
        trust_impact: 3
        responses:
          low: "No idea."
          medium: "Maybe."
          high: "About 40k."
  - id: retail
    name: Retail
    vocabulary: [footfall]
overrides:
  depot-7: logistics
`

func writeTable(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sectors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTable(t *testing.T) {
	tbl, err := LoadTable(writeTable(t, tableYAML))
	require.NoError(t, err)
	require.Len(t, tbl.Sectors, 2)

	lg := tbl.Sectors[0]
	assert.Equal(t, "logistics", lg.ID)
	require.Len(t, lg.Layers, 1)
	fleet, ok := lg.Layers[0].Facts["fleet"].(map[string]any)
	require.True(t, ok, "nested mapping normalized")
	assert.Equal(t, 40, fleet["trucks"])

	require.Len(t, lg.Actions, 1)
	assert.Equal(t, "About 40k.", lg.Actions[0].Responses[trust.BucketHigh])
	assert.Equal(t, [2]float64{1, 2}, lg.Actions[0].DelaySeconds)
	assert.Equal(t, "logistics", tbl.Overrides["depot-7"])
}

func TestLoadTableErrors(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadTable(writeTable(t, "sectors:\n  - name: NoID\n"))
	assert.Error(t, err)

	_, err = LoadTable(writeTable(t, "sectors:\n  - id: generic\n"))
	assert.Error(t, err)

	_, err = LoadTable(writeTable(t, "sectors:\n  - id: a\n  - id: a\n"))
	assert.Error(t, err)
}

func TestProviderFromFileMergesOverBuiltins(t *testing.T) {
	p, err := NewProviderFromFile(writeTable(t, tableYAML))
	require.NoError(t, err)

	assert.Equal(t, "logistics", p.Config("transport").ID)
	assert.Equal(t, "logistics", p.ForScenario("depot-7", "Retail").ID)
	assert.Equal(t, []string{"footfall"}, p.Config("retail").Vocabulary, "loaded sector replaces built-in")
	assert.Equal(t, "technology", p.Config("tech").ID)
	assert.Equal(t, "education", p.Config("business-school").ID)
}

package sector

import (
	"log"
	"sort"
	"strings"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/signals"
)

// #region provider-struct

// Provider resolves scenarios and sectors to configs. Built once at process
// start and shared by every session; lookups never mutate it.
type Provider struct {
	scenarios map[string]*Config // scenario id → config
	sectors   map[string]*Config // normalized sector name/alias → config
	generic   *Config
}

// #endregion provider-struct

// #region constructor

// NewProvider indexes sector configs by id, name and aliases, and
// scenario overrides by scenario id. overrides maps scenario id → sector id.
// A nil generic uses GenericConfig().
func NewProvider(configs []*Config, overrides map[string]string, generic *Config) *Provider {
	p := &Provider{
		scenarios: make(map[string]*Config),
		sectors:   make(map[string]*Config),
		generic:   generic,
	}
	if p.generic == nil {
		p.generic = GenericConfig()
	}
	byID := make(map[string]*Config, len(configs))
	for _, c := range configs {
		if c == nil {
			continue
		}
		byID[c.ID] = c
		for _, key := range append([]string{c.ID, c.Name}, c.Aliases...) {
			if k := normalizeKey(key); k != "" {
				p.sectors[k] = c
			}
		}
	}
	for scenarioID, sectorID := range overrides {
		c, ok := byID[sectorID]
		if !ok {
			log.Printf("[SECTOR] override %s → %s: unknown sector, ignored", scenarioID, sectorID)
			continue
		}
		p.scenarios[normalizeKey(scenarioID)] = c
	}
	return p
}

// NewDefaultProvider uses the built-in table.
func NewDefaultProvider() *Provider {
	return NewProvider(BuiltinConfigs(), BuiltinOverrides(), nil)
}

// #endregion constructor

// #region lookup

// Config resolves key as a scenario id first, then as a sector name, then
// falls back to the generic config. Never returns nil.
func (p *Provider) Config(key string) *Config {
	k := normalizeKey(key)
	if c, ok := p.scenarios[k]; ok {
		return c
	}
	if c, ok := p.sectors[k]; ok {
		return c
	}
	return p.generic
}

// ForScenario applies the scenario override, then the scenario's sector
// field, then the generic fallback.
func (p *Provider) ForScenario(scenarioID, sectorName string) *Config {
	if c, ok := p.scenarios[normalizeKey(scenarioID)]; ok {
		return c
	}
	if c, ok := p.sectors[normalizeKey(sectorName)]; ok {
		return c
	}
	return p.generic
}

// Generic returns the fallback config.
func (p *Provider) Generic() *Config {
	return p.generic
}

// Sectors lists distinct configured sectors (excluding generic), by id.
func (p *Provider) Sectors() []*Config {
	seen := make(map[*Config]bool)
	var out []*Config
	for _, c := range p.sectors {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// #endregion lookup

// #region helpers

// normalizeKey lowercases, folds accents and squashes separators so
// "Santé", "sante" and "SANTE" resolve alike.
func normalizeKey(s string) string {
	return strings.ReplaceAll(signals.Normalize(strings.ReplaceAll(s, "_", " ")), " ", "-")
}

// #endregion helpers

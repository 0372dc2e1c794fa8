package sector

import (
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/discovery"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/layers"
)

// #region config

// Config is the read-only template bundle for one sector. Sessions copy
// Layers before use; nothing in a Config is mutated after construction.
type Config struct {
	ID                   string             `json:"id" yaml:"id"`
	Name                 string             `json:"name" yaml:"name"`
	Aliases              []string           `json:"aliases,omitempty" yaml:"aliases"`
	Layers               []layers.Layer     `json:"layers" yaml:"layers"`
	Actions              []discovery.Action `json:"actions" yaml:"actions"`
	BudgetRanges         []string           `json:"budget_ranges" yaml:"budget_ranges"`
	DecisionTimelines    []string           `json:"decision_timelines" yaml:"decision_timelines"`
	StakeholderHierarchy []string           `json:"stakeholder_hierarchy" yaml:"stakeholder_hierarchy"`
	Vocabulary           []string           `json:"vocabulary" yaml:"vocabulary"`
}

// LayerTemplates returns deep copies of the layer templates.
func (c *Config) LayerTemplates() []layers.Layer {
	out := make([]layers.Layer, len(c.Layers))
	for i, l := range c.Layers {
		out[i] = l.Clone()
	}
	return out
}

// #endregion config

// #region ids

// GenericID identifies the fallback config.
const GenericID = "generic"

// #endregion ids

package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/layers"
)

// #region errors
var (
	// ErrInvalidScenario wraps every scenario validation failure.
	ErrInvalidScenario = errors.New("invalid scenario")
	// ErrSessionEnded is returned for events after termination or Close.
	ErrSessionEnded = errors.New("session ended")
)

// #endregion errors

// #region kind
// Kind is the conversation kind.
type Kind string

const (
	KindColdCall    Kind = "cold-call"
	KindAppointment Kind = "rdv"
)

// ParseKind accepts the canonical names and a few spellings.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cold-call", "cold_call", "coldcall", "cold":
		return KindColdCall, true
	case "rdv", "appointment", "meeting":
		return KindAppointment, true
	}
	return "", false
}

// #endregion kind

// #region scenario
// Scenario is the company description a session is played against.
type Scenario struct {
	ID          string   `json:"id" yaml:"id"`
	CompanyName string   `json:"company_name" yaml:"company_name"`
	Sector      string   `json:"sector" yaml:"sector"`
	CompanySize string   `json:"company_size" yaml:"company_size"`
	PainPoints  []string `json:"pain_points" yaml:"pain_points"`
	Objectives  []string `json:"objectives" yaml:"objectives"`
	BudgetHint  string   `json:"budget_hint" yaml:"budget_hint"`
	Kind        Kind     `json:"kind" yaml:"kind"`
}

// Validate reports missing identity fields and unknown kinds.
func (s Scenario) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidScenario)
	}
	if strings.TrimSpace(s.CompanyName) == "" {
		return fmt.Errorf("%w: %s: missing company name", ErrInvalidScenario, s.ID)
	}
	if s.Kind != KindColdCall && s.Kind != KindAppointment {
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidScenario, s.ID, s.Kind)
	}
	return nil
}

// #endregion scenario

// #region scenario-layers
// Scenario layer ids.
const (
	LayerProfile    = "scenario-profile"
	LayerPainPoints = "scenario-pain-points"
	LayerBudget     = "scenario-budget"
	LayerObjectives = "scenario-objectives"
)

// Layers turns the scenario description into disclosable layers. Empty
// fields produce no layer. Levels sit after the sector's own layers of the
// same depth so scenario facts win on key collisions.
func (s Scenario) Layers() []layers.Layer {
	profile := map[string]any{"companyName": s.CompanyName}
	if s.Sector != "" {
		profile["sector"] = s.Sector
	}
	if s.CompanySize != "" {
		profile["companySize"] = s.CompanySize
	}
	out := []layers.Layer{{
		ID: LayerProfile, Level: 0, Category: layers.CategoryBusiness,
		UnlockThreshold: 0, Facts: profile,
	}}
	if len(s.PainPoints) > 0 {
		out = append(out, layers.Layer{
			ID: LayerPainPoints, Level: 2, Category: layers.CategoryBusiness,
			UnlockThreshold: 30,
			Facts:           map[string]any{"painPoints": append([]string(nil), s.PainPoints...)},
		})
	}
	if s.BudgetHint != "" {
		out = append(out, layers.Layer{
			ID: LayerBudget, Level: 3, Category: layers.CategoryFinancial,
			UnlockThreshold: 50,
			Facts:           map[string]any{"budgetHint": s.BudgetHint},
		})
	}
	if len(s.Objectives) > 0 {
		out = append(out, layers.Layer{
			ID: LayerObjectives, Level: 4, Category: layers.CategoryStrategic,
			UnlockThreshold: 70,
			Facts:           map[string]any{"objectives": append([]string(nil), s.Objectives...)},
		})
	}
	return out
}

// #endregion scenario-layers

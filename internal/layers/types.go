package layers

// #region category
// Category classifies the kind of facts a layer carries.
type Category string

const (
	CategoryBusiness  Category = "business"
	CategoryTechnical Category = "technical"
	CategoryFinancial Category = "financial"
	CategoryStrategic Category = "strategic"
)

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBusiness, CategoryTechnical, CategoryFinancial, CategoryStrategic:
		return true
	}
	return false
}

// #endregion category

// #region layer
// Layer is a bundle of facts unlocked by trust and, optionally, by triggers.
// Templates live in sector tables; sessions hold deep copies.
type Layer struct {
	ID              string         `json:"id" yaml:"id"`
	Level           int            `json:"level" yaml:"level"`
	Category        Category       `json:"category" yaml:"category"`
	Facts           map[string]any `json:"facts" yaml:"facts"`
	UnlockThreshold int            `json:"unlock_threshold" yaml:"unlock_threshold"`
	UnlockTriggers  []string       `json:"unlock_triggers,omitempty" yaml:"unlock_triggers"`
	Revealed        bool           `json:"revealed" yaml:"-"`
}

// Clone returns a deep copy of the layer.
func (l Layer) Clone() Layer {
	out := l
	out.Facts = CopyFacts(l.Facts)
	if l.UnlockTriggers != nil {
		out.UnlockTriggers = append([]string(nil), l.UnlockTriggers...)
	}
	return out
}

// #endregion layer

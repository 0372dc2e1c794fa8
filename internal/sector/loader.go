package sector

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/layers"
)

// #region table-file

// Table is the on-disk shape of a sector table file.
type Table struct {
	Sectors   []*Config         `yaml:"sectors"`
	Overrides map[string]string `yaml:"overrides"`
}

// LoadTable reads a YAML sector table. Layer facts are normalized so nested
// mappings come back as map[string]any.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sector table: %w", err)
	}
	defer f.Close()

	var t Table
	if err := yaml.NewDecoder(f).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode sector table %s: %w", path, err)
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("sector table %s: %w", path, err)
	}
	for _, c := range t.Sectors {
		for i := range c.Layers {
			c.Layers[i].Facts = layers.Normalize(c.Layers[i].Facts)
			if !c.Layers[i].Category.Valid() {
				log.Printf("[SECTOR] %s layer %s: unknown category %q", c.ID, c.Layers[i].ID, c.Layers[i].Category)
			}
		}
	}
	return &t, nil
}

func (t *Table) validate() error {
	seen := make(map[string]bool)
	for i, c := range t.Sectors {
		if c == nil || c.ID == "" {
			return fmt.Errorf("sector %d: missing id", i)
		}
		if c.ID == GenericID {
			return fmt.Errorf("sector id %q is reserved", GenericID)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate sector id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// #endregion table-file

// #region merge

// Merge layers t over the built-in table: a loaded sector replaces the
// built-in one with the same id, new ids are appended, overrides are unioned
// with t winning.
func Merge(builtin []*Config, overrides map[string]string, t *Table) ([]*Config, map[string]string) {
	configs := append([]*Config(nil), builtin...)
	merged := make(map[string]string, len(overrides))
	for k, v := range overrides {
		merged[k] = v
	}
	if t == nil {
		return configs, merged
	}
	pos := make(map[string]int, len(configs))
	for i, c := range configs {
		pos[c.ID] = i
	}
	for _, c := range t.Sectors {
		if i, ok := pos[c.ID]; ok {
			configs[i] = c
			continue
		}
		pos[c.ID] = len(configs)
		configs = append(configs, c)
	}
	for k, v := range t.Overrides {
		merged[k] = v
	}
	return configs, merged
}

// NewProviderFromFile builds a provider from the built-in table merged with
// the file at path. An empty path yields the default provider.
func NewProviderFromFile(path string) (*Provider, error) {
	if path == "" {
		return NewDefaultProvider(), nil
	}
	t, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	configs, overrides := Merge(BuiltinConfigs(), BuiltinOverrides(), t)
	log.Printf("[SECTOR] loaded %d sector(s) from %s", len(t.Sectors), path)
	return NewProvider(configs, overrides, nil), nil
}

// #endregion merge

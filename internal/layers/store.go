package layers

import (
	"sort"
	"strings"
)

// #region store-struct

// Store holds one session's layers and the facts revealed so far.
// Not safe for concurrent use; the owning session serializes access.
type Store struct {
	layers   []Layer // ascending Level, stable on template order
	revealed map[string]any
	ids      []string
	idSet    map[string]bool
}

// #endregion store-struct

// #region constructor

// NewStore deep-copies templates into a fresh per-session store.
func NewStore(templates []Layer) *Store {
	ls := make([]Layer, len(templates))
	for i, t := range templates {
		ls[i] = t.Clone()
		ls[i].Revealed = false
	}
	sort.SliceStable(ls, func(i, j int) bool { return ls[i].Level < ls[j].Level })
	return &Store{
		layers:   ls,
		revealed: make(map[string]any),
		idSet:    make(map[string]bool),
	}
}

// #endregion constructor

// #region unlock

// Unlock reveals every unrevealed layer whose threshold is met by trustLevel
// and whose trigger rule is satisfied by triggerLog. Layers are visited in
// ascending level so facts merge deterministically, later keys winning.
// Returns copies of the layers revealed by this call.
func (s *Store) Unlock(trustLevel int, triggerLog []string) []Layer {
	var newly []Layer
	for i := range s.layers {
		l := &s.layers[i]
		if l.Revealed {
			continue
		}
		if l.UnlockThreshold > trustLevel {
			continue
		}
		if !triggersSatisfied(l.UnlockTriggers, triggerLog) {
			continue
		}
		l.Revealed = true
		for k, v := range l.Facts {
			s.revealed[k] = copyValue(v)
		}
		s.ids = append(s.ids, l.ID)
		s.idSet[l.ID] = true
		newly = append(newly, l.Clone())
	}
	return newly
}

// triggersSatisfied: an empty rule always passes; otherwise any rule trigger
// must appear, case-insensitively, as a substring of a logged name.
func triggersSatisfied(rule []string, triggerLog []string) bool {
	if len(rule) == 0 {
		return true
	}
	for _, want := range rule {
		w := strings.ToLower(strings.TrimSpace(want))
		if w == "" {
			continue
		}
		for _, got := range triggerLog {
			if strings.Contains(strings.ToLower(got), w) {
				return true
			}
		}
	}
	return false
}

// #endregion unlock

// #region queries

// Information returns a deep copy of the accumulated revealed facts.
func (s *Store) Information() map[string]any {
	return CopyFacts(s.revealed)
}

// RevealedIDs returns layer ids in reveal order.
func (s *Store) RevealedIDs() []string {
	return append([]string(nil), s.ids...)
}

// IsRevealed reports whether the layer id has been disclosed.
func (s *Store) IsRevealed(id string) bool {
	return s.idSet[id]
}

// Revealed returns copies of the revealed layers in reveal order.
func (s *Store) Revealed() []Layer {
	out := make([]Layer, 0, len(s.ids))
	for _, id := range s.ids {
		for _, l := range s.layers {
			if l.ID == id {
				out = append(out, l.Clone())
				break
			}
		}
	}
	return out
}

// Pending returns copies of layers not yet revealed, ascending level.
func (s *Store) Pending() []Layer {
	var out []Layer
	for _, l := range s.layers {
		if !l.Revealed {
			out = append(out, l.Clone())
		}
	}
	return out
}

// NextUnlockThreshold returns the smallest threshold among unrevealed layers
// that lies strictly above trustLevel, or nil when none does.
func (s *Store) NextUnlockThreshold(trustLevel int) *int {
	var next *int
	for _, l := range s.layers {
		if l.Revealed || l.UnlockThreshold <= trustLevel {
			continue
		}
		if next == nil || l.UnlockThreshold < *next {
			v := l.UnlockThreshold
			next = &v
		}
	}
	return next
}

// Len returns the total number of layers in the store.
func (s *Store) Len() int {
	return len(s.layers)
}

// #endregion queries

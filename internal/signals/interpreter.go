package signals

import (
	"strings"
	"unicode"
)

// #region interpreter

// KeywordInterpreter detects signals via keyword families. No model call.
// Built once per sector and shared read-only across sessions.
type KeywordInterpreter struct {
	rules []Rule
}

// NewKeywordInterpreter builds an interpreter from rules plus a
// sector_knowledge rule over vocabulary (skipped when vocabulary is empty).
func NewKeywordInterpreter(rules []Rule, vocabulary []string) *KeywordInterpreter {
	compiled := make([]Rule, 0, len(rules)+1)
	for _, r := range rules {
		compiled = append(compiled, compileRule(r))
	}
	if len(vocabulary) > 0 {
		compiled = append(compiled, compileRule(Rule{
			Name:     SectorKnowledge,
			Delta:    Deltas[SectorKnowledge],
			Keywords: vocabulary,
		}))
	}
	return &KeywordInterpreter{rules: compiled}
}

// NewDefaultInterpreter uses DefaultRules and the given sector vocabulary.
func NewDefaultInterpreter(vocabulary []string) *KeywordInterpreter {
	return NewKeywordInterpreter(DefaultRules(), vocabulary)
}

func compileRule(r Rule) Rule {
	kws := make([]string, 0, len(r.Keywords))
	for _, kw := range r.Keywords {
		if n := Normalize(kw); n != "" {
			kws = append(kws, n)
		}
	}
	return Rule{Name: r.Name, Delta: r.Delta, Keywords: kws}
}

// #endregion interpreter

// #region interpret

// Interpret returns the signals matched by a user turn, each at most once,
// in rule order. Turns from any other speaker produce nothing.
func (k *KeywordInterpreter) Interpret(text string, speaker Speaker) []Signal {
	if speaker != SpeakerUser {
		return nil
	}
	padded := " " + Normalize(text) + " "
	if strings.TrimSpace(padded) == "" {
		return nil
	}
	var out []Signal
	for _, r := range k.rules {
		if ContainsAny(padded, r.Keywords) {
			out = append(out, Signal{Name: r.Name, TrustDelta: r.Delta})
		}
	}
	return out
}

// #endregion interpret

// #region helpers

// Normalize lowercases text, folds a few common accents, and replaces
// punctuation with single spaces so keyword matches land on word boundaries.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	space := true
	for _, r := range strings.ToLower(text) {
		r = foldAccent(r)
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-':
			b.WriteRune(r)
			space = false
		case r == '’':
			b.WriteRune('\'')
			space = false
		default:
			if !space {
				b.WriteRune(' ')
				space = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// ContainsAny reports whether padded (normalized text wrapped in spaces)
// contains any normalized keyword as a whole-word phrase.
func ContainsAny(padded string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(padded, " "+kw+" ") {
			return true
		}
	}
	return false
}

// MatchAny normalizes text and keywords and reports the first keyword found.
func MatchAny(text string, keywords []string) (string, bool) {
	padded := " " + Normalize(text) + " "
	for _, kw := range keywords {
		n := Normalize(kw)
		if n != "" && strings.Contains(padded, " "+n+" ") {
			return kw, true
		}
	}
	return "", false
}

func foldAccent(r rune) rune {
	switch r {
	case 'à', 'â', 'ä':
		return 'a'
	case 'é', 'è', 'ê', 'ë':
		return 'e'
	case 'î', 'ï':
		return 'i'
	case 'ô', 'ö':
		return 'o'
	case 'ù', 'û', 'ü':
		return 'u'
	case 'ç':
		return 'c'
	}
	return r
}

// #endregion helpers

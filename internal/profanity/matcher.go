package profanity

import (
	"regexp"
	"strings"
)

// MatchMode selects how a term's pattern is tested against normalized text.
type MatchMode int

const (
	// MatchSubstring looks for the pattern anywhere in the fenceless
	// projection. Used for aggressive roots: "cazz" catches the bare word
	// and every suffixed variant without enumerating inflections.
	MatchSubstring MatchMode = iota

	// MatchExactBoundary requires the pattern to end at a word boundary
	// in the fenced projection. Used for short high-collision words:
	// "figa" must not fire on "figata" or "figura".
	MatchExactBoundary
)

// Term is one entry of the banned-term list.
type Term struct {
	Pattern string
	Mode    MatchMode
}

// Matcher evaluates text against an immutable term list. It holds no mutable
// state after construction and is safe for concurrent use.
type Matcher struct {
	roots []string // substring terms, pre-normalized
	exact []string // exact-boundary terms, pre-normalized, Fence-suffixed

	// dictionary pass: every term pattern, for exact whole-word lookup
	dict map[string]struct{}

	// obfuscation pass: tolerant patterns for the highest-severity roots
	obfuscated []*regexp.Regexp
}

// NewMatcher builds a Matcher from the given term list. Term patterns are
// themselves normalized so the list may contain accented or mixed-case
// entries. Terms that normalize to nothing are dropped.
func NewMatcher(terms []Term) *Matcher {
	m := &Matcher{dict: make(map[string]struct{}, len(terms))}
	for _, t := range terms {
		n := Normalize(t.Pattern)
		if n.Fenceless == "" {
			continue
		}
		p := n.Fenceless
		m.dict[p] = struct{}{}
		switch t.Mode {
		case MatchExactBoundary:
			m.exact = append(m.exact, p+string(Fence))
		default:
			m.roots = append(m.roots, p)
		}
	}
	// tolerant patterns only for severe roots actually present in the
	// configured list, so an alternate vocabulary is not shadowed by the
	// built-in one
	for _, root := range severeRoots {
		if _, ok := m.dict[root]; !ok {
			continue
		}
		if re := obfuscationPattern(root); re != nil {
			m.obfuscated = append(m.obfuscated, re)
		}
	}
	return m
}

// IsProfane reports whether raw contains a banned term. It is total: any
// input, including empty or malformed text, yields a boolean and never an
// error. Empty and whitespace-only input return false immediately.
//
// The core check tests every configured term against the appropriate
// projection and short-circuits on the first hit. Two auxiliary passes (an
// exact-dictionary lookup over fenced tokens and obfuscation-tolerant
// patterns on the raw text) run only when the core check found nothing, so
// they can add detections but never mask one.
func (m *Matcher) IsProfane(raw string) bool {
	n := Normalize(raw)
	if n.Fenced == "" {
		return false
	}

	for _, e := range m.exact {
		if strings.Contains(n.Fenced, e) {
			return true
		}
	}
	for _, r := range m.roots {
		if strings.Contains(n.Fenceless, r) {
			return true
		}
	}

	if m.dictionaryHit(n.Fenced) {
		return true
	}
	return m.obfuscationHit(strings.ToLower(raw))
}

// dictionaryHit splits the fenced projection into words and checks each for
// exact membership in the term set.
func (m *Matcher) dictionaryHit(fenced string) bool {
	for _, word := range strings.Split(fenced, string(Fence)) {
		if word == "" {
			continue
		}
		if _, ok := m.dict[word]; ok {
			return true
		}
	}
	return false
}

func (m *Matcher) obfuscationHit(lower string) bool {
	for _, re := range m.obfuscated {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// lookalikes maps each letter to the characters an evader may substitute for
// it. Kept deliberately small: a handful of visual stand-ins per letter.
var lookalikes = map[rune]string{
	'a': "a4@àá",
	'c': "c(",
	'e': "e3èé",
	'i': "i1!ìí",
	'o': "o0ò",
	's': "s5$",
	't': "t7+",
	'u': "uùú",
	'z': "z2",
}

// separators tolerated between the letters of a severe root, catching
// spacing and character-insertion tricks ("c a z z", "c.a.z.z").
const separators = `[\s.\-_*'"]*`

// obfuscationPattern compiles a tolerant pattern for one root: each letter
// becomes a class of its look-alikes, joined by optional separator runs.
func obfuscationPattern(root string) *regexp.Regexp {
	parts := make([]string, 0, len(root))
	for _, r := range root {
		alts, ok := lookalikes[r]
		if !ok {
			alts = string(r)
		}
		parts = append(parts, "["+regexp.QuoteMeta(alts)+"]")
	}
	if len(parts) == 0 {
		return nil
	}
	// Leading anchor only: a match must start at a word boundary so the
	// separator classes cannot begin mid-word, but it may run on into a
	// suffix ("c@zzone" is as banned as "c@zzo").
	re, err := regexp.Compile(`\b` + strings.Join(parts, separators))
	if err != nil {
		return nil
	}
	return re
}

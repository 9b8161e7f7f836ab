// Package profanity screens user-submitted text against a curated term list.
// Matching is purely lexical: input is canonicalized (case folding, diacritic
// stripping, leet substitution, punctuation removal) and then tested for term
// containment, so accented or digit-obfuscated spellings of a banned word are
// caught while substrings of legitimate words are not.
package profanity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fence is the word-boundary marker used in the fenced normalized form.
// User-supplied '#' characters are stripped as punctuation before fences are
// inserted, so a fence in normalized text always means a real word boundary.
const Fence = '#'

// Normalized holds the two projections of an input string used by the matcher.
type Normalized struct {
	// Fenced has every word boundary marked with Fence and a trailing
	// Fence appended, so an exact-boundary term "figa" can be tested as
	// "figa#" even at the very end of the input.
	Fenced string

	// Fenceless is the same text with boundaries removed entirely, used
	// for permissive root matching across word breaks.
	Fenceless string
}

// diacriticStripper decomposes and drops combining marks, mapping accented
// letters onto their base form ("perché" -> "perche").
var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// punctuation stripped before fencing. Matches the set the matcher was tuned
// against; anything else outside [a-z0-9] falls out at the fencing step.
const punctuation = ".,/#!$%^&*;:{}=-_`~()"

// Normalize canonicalizes raw text for matching. It is deterministic, pure
// and total: blank input yields empty projections, never an error.
//
// Pipeline order is fixed: lowercase, strip diacritics, leet substitution,
// strip punctuation, collapse whitespace runs into a single Fence, drop
// everything outside [a-z0-9], append a trailing Fence.
func Normalize(raw string) Normalized {
	if strings.TrimSpace(raw) == "" {
		return Normalized{}
	}

	s := strings.ToLower(raw)

	if stripped, _, err := transform.String(diacriticStripper, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s) + 1)
	inSpace := false
	for _, r := range s {
		r = leetFold(r)
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if strings.ContainsRune(punctuation, r) {
			continue
		}
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteRune(Fence)
		}
		inSpace = false
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return Normalized{}
	}
	b.WriteRune(Fence)

	fenced := b.String()
	return Normalized{
		Fenced:    fenced,
		Fenceless: strings.ReplaceAll(fenced, string(Fence), ""),
	}
}

// leetFold maps digits commonly used as letter look-alikes to their letter.
// Applied exactly once per rune, after the leet pass a digit result is never
// re-substituted, so folding cannot expand pathologically.
func leetFold(r rune) rune {
	switch r {
	case '0':
		return 'o'
	case '3':
		return 'e'
	case '4':
		return 'a'
	case '7':
		return 't'
	case '1':
		return 'i'
	}
	return r
}

package profanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultMatcher(t *testing.T) *Matcher {
	t.Helper()
	m := NewMatcher(DefaultTerms())
	require.NotNil(t, m)
	return m
}

func TestIsProfane_CleanText(t *testing.T) {
	m := newDefaultMatcher(t)

	for _, text := range []string{
		"this is fine",
		"che bella serata a tutti",
		"auguri agli sposi!",
		"viva gli sposi, siete bellissimi",
	} {
		assert.False(t, m.IsProfane(text), "clean text flagged: %q", text)
	}
}

func TestIsProfane_EmptyAndBlank(t *testing.T) {
	m := newDefaultMatcher(t)
	assert.False(t, m.IsProfane(""))
	assert.False(t, m.IsProfane("   "))
	assert.False(t, m.IsProfane("!!! ... ???"))
}

func TestIsProfane_RootMatchesSuffixedVariants(t *testing.T) {
	m := newDefaultMatcher(t)

	// the root catches the bare word and any inflection
	assert.True(t, m.IsProfane("cazzo"))
	assert.True(t, m.IsProfane("cazzata"))
	assert.True(t, m.IsProfane("che cazzone"))
	assert.True(t, m.IsProfane("CAZZO"))
}

func TestIsProfane_ExactBoundaryDoesNotFireInsideWords(t *testing.T) {
	m := newDefaultMatcher(t)

	// "figa" is exact-boundary: longer legitimate words sharing the prefix
	// must pass
	assert.True(t, m.IsProfane("che figa"))
	assert.True(t, m.IsProfane("figa"))
	assert.False(t, m.IsProfane("che figata di serata"))
	assert.False(t, m.IsProfane("una bella figura"))

	// same for "merda" vs words merely containing the letters
	assert.True(t, m.IsProfane("che merda"))
	assert.False(t, m.IsProfane("il meridiano di Greenwich"))
}

func TestIsProfane_ExactBoundaryAtEndOfText(t *testing.T) {
	m := newDefaultMatcher(t)
	// the trailing fence makes boundary terms match at the very end
	assert.True(t, m.IsProfane("sei uno stronzo"))
	assert.True(t, m.IsProfane("stronzo"))
}

func TestIsProfane_Leetspeak(t *testing.T) {
	m := newDefaultMatcher(t)

	// digit substitutions on three letters of an aggressive root
	assert.True(t, m.IsProfane("c4zz0"))
	assert.True(t, m.IsProfane("v4ff4nculo"))
	assert.True(t, m.IsProfane("put74na"))
}

func TestIsProfane_Diacritics(t *testing.T) {
	m := newDefaultMatcher(t)
	assert.True(t, m.IsProfane("cazzò"))
	assert.True(t, m.IsProfane("puttàna"))
}

func TestIsProfane_PunctuationInsertion(t *testing.T) {
	m := newDefaultMatcher(t)
	// punctuation is stripped before matching, so split-up spellings of a
	// root still collapse into a hit
	assert.True(t, m.IsProfane("caz.zo"))
	assert.True(t, m.IsProfane("caz-zo"))
}

func TestIsProfane_RootMatchesAcrossWordBreaks(t *testing.T) {
	m := newDefaultMatcher(t)
	// the fenceless projection removes boundaries entirely: a root split
	// by a space is still found
	assert.True(t, m.IsProfane("caz zo"))

	// removing boundaries also concatenates innocent neighbors; roots
	// trade that precision for recall on split-up spellings
	assert.True(t, m.IsProfane("cane grosso"))
}

func TestIsProfane_ObfuscationLayer(t *testing.T) {
	m := newDefaultMatcher(t)

	// '@' is not in the fixed leet table; the tolerant pattern pass
	// catches it for the severe roots
	assert.True(t, m.IsProfane("c@zzo"))
	assert.True(t, m.IsProfane("c a z z o"))

	// suffixed variants of an obfuscated root are matched too
	assert.True(t, m.IsProfane("c@zzone"))

	// a match cannot start mid-word
	assert.False(t, m.IsProfane("carta zoppa"))
}

func TestIsProfane_CustomTermList(t *testing.T) {
	m := NewMatcher(ParseTermList([]string{"brutt", "male#"}))

	assert.True(t, m.IsProfane("bruttissimo"))
	assert.True(t, m.IsProfane("che male"))
	assert.False(t, m.IsProfane("maledetto")) // "male" is exact-boundary
	assert.False(t, m.IsProfane("tutto bene"))
}

func TestParseTermList(t *testing.T) {
	terms := ParseTermList([]string{"radice", "esatta#", "", "  "})
	require.Len(t, terms, 2)
	assert.Equal(t, Term{Pattern: "radice", Mode: MatchSubstring}, terms[0])
	assert.Equal(t, Term{Pattern: "esatta", Mode: MatchExactBoundary}, terms[1])
}

func TestIsProfane_NormalizationStable(t *testing.T) {
	m := newDefaultMatcher(t)
	// matching already-normalized text gives the same verdict
	for _, text := range []string{"c4zz0 in giro", "serata tranquilla"} {
		n := Normalize(text)
		assert.Equal(t, m.IsProfane(text), m.IsProfane(n.Fenceless), "verdict changed after normalization of %q", text)
	}
}

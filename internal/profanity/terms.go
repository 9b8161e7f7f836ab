package profanity

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// The default list targets Italian. Entries use a compact notation: a word
// ending in '#' is an exact-boundary term (blocks "figa" but not "figata" or
// "figura"); everything else is an aggressive root matched permissively, so
// conjugations and plurals are caught without listing every form.
var defaultWords = []string{
	// blasphemy, matched permissively
	"diobo",
	"dioca",
	"diopor",
	"diomer",
	"diocan",
	"diamma",
	"diofa",
	"diogu",
	"porcod",
	"gesucr",
	"madonnac",

	// sexual and vulgar roots
	"cazz",
	"fott",
	"culatt",
	"puttan",
	"troi",
	"bordel",
	"succhia",
	"fellat",
	"segh",
	"coion",
	"cogl",
	"pomp",

	// exact words only: short terms that collide with innocent words
	"figa#",
	"fighe#",
	"fighetta#",
	"merda#", // keeps "meridiano" and friends clean
	"stronzo#",
	"stronza#",

	// slurs and hate speech roots
	"bastard",
	"idiot",
	"vaffanc",
	"rompic",
	"testadic",
	"defic",
	"negro",
	"froc",
	"zingar",
	"terron",
	"ebreo",
	"razzis",
	"omofob",
	"nazis",
	"fascist",
}

// severeRoots get the extra obfuscation-tolerant pass: look-alike letter
// classes with separators allowed between letters.
var severeRoots = []string{
	"cazz",
	"diocan",
	"porcod",
	"puttan",
	"vaffanc",
	"negro",
	"froc",
}

// ParseTermList converts the '#'-suffix notation into Terms.
func ParseTermList(words []string) []Term {
	terms := make([]Term, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if exact, ok := strings.CutSuffix(w, string(Fence)); ok {
			terms = append(terms, Term{Pattern: exact, Mode: MatchExactBoundary})
			continue
		}
		terms = append(terms, Term{Pattern: w, Mode: MatchSubstring})
	}
	return terms
}

// DefaultTerms returns the built-in term list.
func DefaultTerms() []Term {
	return ParseTermList(defaultWords)
}

// LoadTermsFile reads a JSON array of words in the same notation as the
// built-in list. It lets deployments swap the vocabulary without a rebuild.
func LoadTermsFile(path string) ([]Term, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read terms file: %w", err)
	}
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("parse terms file %s: %w", path, err)
	}
	return ParseTermList(words), nil
}

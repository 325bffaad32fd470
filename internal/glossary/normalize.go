package glossary

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultWildcard is the wildcard character used in usage structures when no
// other is configured.
const DefaultWildcard = '*'

// DefaultStopwords are the words removed from input before lookup when no
// other predicate is configured.
var DefaultStopwords = []string{"the", "a", "an", "of"}

// DefaultNormalize trims s, strips combining marks (so "café" and "cafe" look
// up the same definition) and case-folds the result.
func DefaultNormalize(s string) string {
	s = strings.TrimSpace(s)

	// transformers and casers hold state; build fresh ones for every call
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, s)
	if err == nil {
		s = stripped
	}

	return cases.Fold().String(s)
}

// DefaultInvalidChar rejects every character that is not a letter, a digit,
// whitespace, a hyphen, or an apostrophe.
func DefaultInvalidChar(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return false
	}
	return r != '-' && r != '\''
}

// Stopwords returns a predicate that reports whether a word is one of the
// given words. Both the candidate and the stopwords are compared after being
// passed through normalize; if normalize is nil, DefaultNormalize is used.
func Stopwords(normalize func(string) string, words ...string) func(string) bool {
	if normalize == nil {
		normalize = DefaultNormalize
	}

	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[normalize(w)] = true
	}

	return func(s string) bool {
		return set[normalize(s)]
	}
}

// ExtraInvalidChars returns a predicate that rejects every character rejected
// by pred as well as every character in chars.
func ExtraInvalidChars(pred func(rune) bool, chars string) func(rune) bool {
	if chars == "" {
		return pred
	}
	return func(r rune) bool {
		return strings.ContainsRune(chars, r) || pred(r)
	}
}

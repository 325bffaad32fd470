package glossary

import (
	"fmt"
	"strings"

	"github.com/dekarrin/tqinterp/internal/tqerrors"
)

// Token is a single word of player input. Orig is the word exactly as it was
// typed and is used in messages back to the player; Lookup is the normalized
// form used to find its definition.
type Token struct {
	Orig   string
	Lookup string
}

func (t Token) String() string {
	return fmt.Sprintf("%q(%s)", t.Orig, t.Lookup)
}

// Tokenize splits player input into Tokens. Characters the glossary considers
// invalid are stripped, the remainder is split on whitespace, and stopwords
// are removed.
//
// The returned error will have a tqerrors Kind of EmptyInput if input is
// empty, NoValidCharacters if nothing but whitespace remains after invalid
// characters are stripped, and NoValidWords if every word is a stopword.
func (g *Glossary) Tokenize(input string) ([]Token, error) {
	if input == "" {
		return nil, tqerrors.New(tqerrors.EmptyInput, "Speak up, please.", "")
	}

	stripped := strings.Map(func(r rune) rune {
		if g.IsInvalidChar(r) {
			return -1
		}
		return r
	}, input)

	if strings.TrimSpace(stripped) == "" {
		return nil, tqerrors.New(tqerrors.NoValidCharacters, "Try using actual words.", "")
	}

	var tokens []Token
	for _, w := range strings.Fields(stripped) {
		if g.IsInvalidWord(w) {
			continue
		}
		tokens = append(tokens, Token{Orig: w, Lookup: g.normalize(w)})
	}

	if len(tokens) == 0 {
		return nil, tqerrors.New(tqerrors.NoValidWords, "I'm pretty sure that isn't a sentence.", "")
	}

	return tokens, nil
}

// Package glossary holds the word lookup table used to turn player input into
// Nodes. A Glossary maps every known word to the ID of a Definition, and every
// Definition ID to the Definition itself. Synonyms are simply several words
// registered to the same ID.
//
// A Glossary is built once at startup and is not safe for concurrent use;
// callers that modify it after startup must ensure no lookup is in progress.
package glossary

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dekarrin/tqinterp/internal/node"
	"github.com/dekarrin/tqinterp/internal/tqerrors"
)

// Options are the glossary-level predicates. Any that are left unset take
// their default value.
type Options struct {
	// Wildcard is the character that marks a wildcard slot in a usage
	// structure. It can never appear in a word. Defaults to DefaultWildcard.
	Wildcard rune

	// Normalize converts a typed word into the form that is looked up.
	// Defaults to DefaultNormalize.
	Normalize func(string) string

	// InvalidChar reports characters that are stripped from input before it
	// is split into words. The wildcard is always treated as invalid
	// regardless of this predicate. Defaults to DefaultInvalidChar.
	InvalidChar func(rune) bool

	// InvalidWord reports words that are removed from input before lookup.
	// Defaults to a predicate matching DefaultStopwords.
	InvalidWord func(string) bool
}

// Glossary is a table of word definitions. The zero value is not ready for
// use; create one with New.
type Glossary struct {
	words map[string]string
	defs  map[string]Definition

	// order holds definition IDs in the order they were added.
	order []string

	wildcard    rune
	normalize   func(string) string
	invalidChar func(rune) bool
	invalidWord func(string) bool
}

// New creates a new, empty Glossary with the given options.
func New(opts Options) *Glossary {
	g := &Glossary{
		words:       make(map[string]string),
		defs:        make(map[string]Definition),
		wildcard:    opts.Wildcard,
		normalize:   opts.Normalize,
		invalidChar: opts.InvalidChar,
		invalidWord: opts.InvalidWord,
	}

	if g.wildcard == 0 {
		g.wildcard = DefaultWildcard
	}
	if g.normalize == nil {
		g.normalize = DefaultNormalize
	}
	if g.invalidChar == nil {
		g.invalidChar = DefaultInvalidChar
	}
	if g.invalidWord == nil {
		g.invalidWord = Stopwords(g.normalize, DefaultStopwords...)
	}

	return g
}

// Wildcard returns the wildcard character of the glossary.
func (g *Glossary) Wildcard() rune {
	return g.wildcard
}

// Normalize returns the lookup form of s.
func (g *Glossary) Normalize(s string) string {
	return g.normalize(s)
}

// IsInvalidChar returns whether r is stripped from input. The wildcard
// character is always invalid.
func (g *Glossary) IsInvalidChar(r rune) bool {
	return r == g.wildcard || g.invalidChar(r)
}

// IsInvalidWord returns whether s is removed from input before lookup.
func (g *Glossary) IsInvalidWord(s string) bool {
	return g.invalidWord(s)
}

// AddDef registers a new Definition. It is an error if a definition with the
// same ID already exists.
//
// If def is a *VerbDef, its usages are compiled against the words registered
// so far; every literal in a usage structure must already resolve to a
// particle or a preposition.
func (g *Glossary) AddDef(def Definition) error {
	id := def.ID()
	if id == "" {
		return tqerrors.New(tqerrors.InvalidWord, "definition ID cannot be empty", "")
	}
	if _, ok := g.defs[id]; ok {
		return tqerrors.Newf(tqerrors.DuplicateDefinitionID, "a definition with ID %q already exists", id)
	}

	switch d := def.(type) {
	case *VerbDef:
		if len(d.specs) < 1 {
			return tqerrors.Newf(tqerrors.InvalidUsage, "verb %q must have at least one usage", id)
		}
		usages := make([]node.Usage, len(d.specs))
		for i := range d.specs {
			u, err := g.compileUsage(d.specs[i])
			if err != nil {
				return tqerrors.WrapInterpreterf(err, "verb %q: usage %d: %s", id, i, tqerrors.GameMessage(err))
			}
			usages[i] = u
		}
		d.usages = usages
	case *CommandDef:
		if d.action == nil {
			return tqerrors.Newf(tqerrors.InvalidUsage, "command %q has no action", id)
		}
	}

	g.defs[id] = def
	g.order = append(g.order, id)
	return nil
}

// AddWords registers each of the given words as referring to the definition
// with the given ID. The definition must already have been added with AddDef.
//
// A word that is already registered may be moved to another definition only if
// that definition is of the same category.
func (g *Glossary) AddWords(id string, words ...string) error {
	def, ok := g.defs[id]
	if !ok {
		return tqerrors.Newf(tqerrors.DanglingWordRegistration, "no definition with ID %q exists", id)
	}

	for _, w := range words {
		lookup, err := g.validWord(w)
		if err != nil {
			return err
		}

		if existingID, ok := g.words[lookup]; ok && existingID != id {
			existing := g.defs[existingID]
			if existing.Category() != def.Category() {
				return tqerrors.Newf(tqerrors.CategoryCollision, "word %q is already a %s (%q) and cannot also be a %s (%q)", w, existing.Category(), existingID, def.Category(), id)
			}
		}

		g.words[lookup] = id
	}

	return nil
}

// Register adds def and then registers the given words to it. If no words are
// given, the definition ID itself is registered as its only word.
func (g *Glossary) Register(def Definition, words ...string) error {
	if err := g.AddDef(def); err != nil {
		return err
	}
	if len(words) == 0 {
		words = []string{def.ID()}
	}
	return g.AddWords(def.ID(), words...)
}

// validWord checks that w could ever be produced by Tokenize and returns its
// lookup form.
func (g *Glossary) validWord(w string) (string, error) {
	for _, ch := range w {
		if unicode.IsSpace(ch) {
			return "", tqerrors.Newf(tqerrors.InvalidWord, "word %q contains whitespace", w)
		}
		if g.IsInvalidChar(ch) {
			return "", tqerrors.Newf(tqerrors.InvalidWord, "word %q contains invalid character %q", w, ch)
		}
	}

	lookup := g.normalize(w)
	if lookup == "" {
		return "", tqerrors.Newf(tqerrors.InvalidWord, "word %q is empty after normalization", w)
	}
	if g.invalidWord(w) {
		return "", tqerrors.Newf(tqerrors.InvalidWord, "word %q is always removed from input", w)
	}
	return lookup, nil
}

func (g *Glossary) compileUsage(spec UsageSpec) (node.Usage, error) {
	u := node.Usage{
		Name:   spec.Name,
		Flags:  spec.Flags,
		Action: spec.Action,
	}

	if u.Action == nil {
		return u, tqerrors.New(tqerrors.InvalidUsage, "usage has no action", "")
	}

	wild := string(g.wildcard)
	var argIdx int
	for _, part := range strings.Fields(spec.Structure) {
		if part == wild {
			if argIdx >= len(spec.Args) {
				return u, tqerrors.Newf(tqerrors.InvalidUsage, "wildcard %d has no declared argument type", argIdx+1)
			}
			arg := spec.Args[argIdx]
			if arg == node.TagNone || arg == node.TagUnknown {
				return u, tqerrors.Newf(tqerrors.InvalidUsage, "wildcard %d has argument type %s", argIdx+1, arg)
			}
			u.Structure = append(u.Structure, node.Slot{Wildcard: true, Arg: arg})
			argIdx++
			continue
		}

		lit, err := g.resolveLiteral(part)
		if err != nil {
			return u, err
		}
		u.Structure = append(u.Structure, node.Slot{Literal: lit})
	}

	if argIdx > 2 {
		return u, tqerrors.Newf(tqerrors.InvalidUsage, "usage %q has %d wildcards but at most 2 are allowed", spec.Structure, argIdx)
	}
	if argIdx < len(spec.Args) {
		return u, tqerrors.Newf(tqerrors.InvalidUsage, "usage %q declares %d argument types but has %d wildcards", spec.Structure, len(spec.Args), argIdx)
	}

	return u, nil
}

func (g *Glossary) resolveLiteral(part string) (string, error) {
	if strings.ContainsRune(part, g.wildcard) {
		return "", tqerrors.Newf(tqerrors.InvalidSyntaxLiteral, "literal %q contains the wildcard character", part)
	}

	def, ok := g.Lookup(part)
	if !ok {
		return "", tqerrors.Newf(tqerrors.InvalidSyntaxLiteral, "literal %q is not a registered word", part)
	}

	switch d := def.(type) {
	case *ParticleDef:
		return d.Canonical(), nil
	case *DirectionDef:
		if !d.IsDirection {
			return d.ID(), nil
		}
	}
	return "", tqerrors.Newf(tqerrors.InvalidSyntaxLiteral, "literal %q is a %s, not a particle", part, def.Category())
}

// Lookup returns the Definition that word refers to. The word is normalized
// before it is looked up.
func (g *Glossary) Lookup(word string) (Definition, bool) {
	id, ok := g.words[g.normalize(word)]
	if !ok {
		return nil, false
	}
	def, ok := g.defs[id]
	return def, ok
}

// Definition returns the Definition with the given ID.
func (g *Glossary) Definition(id string) (Definition, bool) {
	def, ok := g.defs[id]
	return def, ok
}

// Definitions returns every registered Definition in the order it was added.
func (g *Glossary) Definitions() []Definition {
	defs := make([]Definition, len(g.order))
	for i := range g.order {
		defs[i] = g.defs[g.order[i]]
	}
	return defs
}

// WordsFor returns all words registered to the definition with the given ID in
// their normalized form, sorted alphabetically.
func (g *Glossary) WordsFor(id string) []string {
	var words []string
	for w, wID := range g.words {
		if wID == id {
			words = append(words, w)
		}
	}
	sort.Strings(words)
	return words
}

// ConvertToNodes looks up every token and creates its Node. A token whose word
// is not registered becomes an UnknownNode.
func (g *Glossary) ConvertToNodes(tokens []Token) []node.Node {
	nodes := make([]node.Node, len(tokens))
	for i, tok := range tokens {
		id, ok := g.words[tok.Lookup]
		if !ok {
			nodes[i] = node.NewUnknown(tok.Orig)
			continue
		}
		def, ok := g.defs[id]
		if !ok {
			nodes[i] = node.NewUnknown(tok.Orig)
			continue
		}
		nodes[i] = def.CreateNode(tok.Orig)
	}
	return nodes
}

// Parse tokenizes input and converts the tokens to Nodes.
func (g *Glossary) Parse(input string) ([]node.Node, error) {
	tokens, err := g.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return g.ConvertToNodes(tokens), nil
}

package glossary

import (
	"testing"

	"github.com/dekarrin/tqinterp/internal/node"
	"github.com/dekarrin/tqinterp/internal/tqerrors"
	"github.com/stretchr/testify/assert"
)

func noop(direct, indirect node.Node) {}

func Test_Glossary_Tokenize(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		expect     []Token
		expectKind tqerrors.Kind
	}{
		{
			name:       "empty input",
			input:      "",
			expectKind: tqerrors.EmptyInput,
		},
		{
			name:       "whitespace only",
			input:      "   \t ",
			expectKind: tqerrors.NoValidCharacters,
		},
		{
			name:       "only invalid characters",
			input:      "!?!.",
			expectKind: tqerrors.NoValidCharacters,
		},
		{
			name:       "only stopwords",
			input:      "the a an",
			expectKind: tqerrors.NoValidWords,
		},
		{
			name:  "single word",
			input: "look",
			expect: []Token{
				{Orig: "look", Lookup: "look"},
			},
		},
		{
			name:  "case is kept in orig and folded in lookup",
			input: "Take THE Lamp!",
			expect: []Token{
				{Orig: "Take", Lookup: "take"},
				{Orig: "Lamp", Lookup: "lamp"},
			},
		},
		{
			name:  "invalid characters are stripped without splitting",
			input: "ta,ke l.amp",
			expect: []Token{
				{Orig: "take", Lookup: "take"},
				{Orig: "lamp", Lookup: "lamp"},
			},
		},
		{
			name:  "hyphens and apostrophes are kept",
			input: "troll's x-ray",
			expect: []Token{
				{Orig: "troll's", Lookup: "troll's"},
				{Orig: "x-ray", Lookup: "x-ray"},
			},
		},
		{
			name:  "wildcard is always stripped",
			input: "take *lamp",
			expect: []Token{
				{Orig: "take", Lookup: "take"},
				{Orig: "lamp", Lookup: "lamp"},
			},
		},
		{
			name:  "marks are removed for lookup",
			input: "Café",
			expect: []Token{
				{Orig: "Café", Lookup: "cafe"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			g := New(Options{})

			actual, err := g.Tokenize(tc.input)
			if tc.expectKind != tqerrors.Unspecified {
				assert.ErrorIs(err, tc.expectKind)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Glossary_Register_errors(t *testing.T) {
	testCases := []struct {
		name       string
		setup      func(g *Glossary) error
		expectKind tqerrors.Kind
	}{
		{
			name: "duplicate definition ID",
			setup: func(g *Glossary) error {
				if err := g.Register(Noun("lamp")); err != nil {
					return err
				}
				return g.AddDef(Adjective("lamp"))
			},
			expectKind: tqerrors.DuplicateDefinitionID,
		},
		{
			name: "words for missing definition",
			setup: func(g *Glossary) error {
				return g.AddWords("lamp", "lantern")
			},
			expectKind: tqerrors.DanglingWordRegistration,
		},
		{
			name: "word shared across categories",
			setup: func(g *Glossary) error {
				if err := g.Register(Noun("light"), "light"); err != nil {
					return err
				}
				return g.Register(Adjective("bright"), "light")
			},
			expectKind: tqerrors.CategoryCollision,
		},
		{
			name: "word with whitespace",
			setup: func(g *Glossary) error {
				return g.Register(Noun("lamp"), "brass lamp")
			},
			expectKind: tqerrors.InvalidWord,
		},
		{
			name: "word with invalid character",
			setup: func(g *Glossary) error {
				return g.Register(Command("help", func() {}), "?")
			},
			expectKind: tqerrors.InvalidWord,
		},
		{
			name: "word is a stopword",
			setup: func(g *Glossary) error {
				return g.Register(Noun("the"))
			},
			expectKind: tqerrors.InvalidWord,
		},
		{
			name: "literal is not registered",
			setup: func(g *Glossary) error {
				return g.Register(Verb("look", UsageSpec{Structure: "at *", Args: []node.Tag{node.TagNoun}, Action: noop}))
			},
			expectKind: tqerrors.InvalidSyntaxLiteral,
		},
		{
			name: "literal is not particle-like",
			setup: func(g *Glossary) error {
				if err := g.Register(Noun("lamp")); err != nil {
					return err
				}
				return g.Register(Verb("look", UsageSpec{Structure: "lamp *", Args: []node.Tag{node.TagNoun}, Action: noop}))
			},
			expectKind: tqerrors.InvalidSyntaxLiteral,
		},
		{
			name: "literal is a direction",
			setup: func(g *Glossary) error {
				if err := g.Register(Direction("north"), "north"); err != nil {
					return err
				}
				return g.Register(Verb("go", UsageSpec{Structure: "north", Action: noop}))
			},
			expectKind: tqerrors.InvalidSyntaxLiteral,
		},
		{
			name: "verb without usages",
			setup: func(g *Glossary) error {
				return g.Register(Verb("look"))
			},
			expectKind: tqerrors.InvalidUsage,
		},
		{
			name: "usage without action",
			setup: func(g *Glossary) error {
				return g.Register(Verb("look", UsageSpec{}))
			},
			expectKind: tqerrors.InvalidUsage,
		},
		{
			name: "wildcard without argument type",
			setup: func(g *Glossary) error {
				return g.Register(Verb("take", UsageSpec{Structure: "*", Action: noop}))
			},
			expectKind: tqerrors.InvalidUsage,
		},
		{
			name: "too many argument types",
			setup: func(g *Glossary) error {
				return g.Register(Verb("take", UsageSpec{Structure: "*", Args: []node.Tag{node.TagNoun, node.TagNoun}, Action: noop}))
			},
			expectKind: tqerrors.InvalidUsage,
		},
		{
			name: "three wildcards",
			setup: func(g *Glossary) error {
				return g.Register(Verb("take", UsageSpec{Structure: "* * *", Args: []node.Tag{node.TagNoun, node.TagNoun, node.TagNoun}, Action: noop}))
			},
			expectKind: tqerrors.InvalidUsage,
		},
		{
			name: "command without action",
			setup: func(g *Glossary) error {
				return g.Register(Command("quit", nil))
			},
			expectKind: tqerrors.InvalidUsage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			g := New(Options{})

			err := tc.setup(g)

			assert.ErrorIs(err, tc.expectKind)
		})
	}
}

func Test_Glossary_Register_synonymsOfSameCategory(t *testing.T) {
	assert := assert.New(t)
	g := New(Options{})

	assert.NoError(g.Register(Noun("lamp"), "lamp", "lantern"))
	assert.NoError(g.Register(Noun("torch"), "torch", "lantern"))

	def, ok := g.Lookup("LANTERN")
	assert.True(ok)
	assert.Equal("torch", def.ID())
	assert.Equal([]string{"lamp"}, g.WordsFor("lamp"))
}

func Test_Glossary_Register_compilesUsages(t *testing.T) {
	assert := assert.New(t)
	g := New(Options{})

	assert.NoError(g.Register(ParticleNamed("with", "using"), "with", "using"))
	assert.NoError(g.Register(Preposition("under"), "under", "beneath"))

	verb := Verb("hit",
		UsageSpec{Structure: "* with *", Args: []node.Tag{node.TagNoun, node.TagNoun}, Action: noop},
		UsageSpec{Structure: "beneath *", Args: []node.Tag{node.TagNoun}, Flags: node.SwapArgs, Action: noop},
	)
	if !assert.NoError(g.Register(verb)) {
		return
	}

	usages := verb.Usages()
	if !assert.Len(usages, 2) {
		return
	}
	assert.Equal([]node.Slot{
		{Wildcard: true, Arg: node.TagNoun},
		{Literal: "using"},
		{Wildcard: true, Arg: node.TagNoun},
	}, usages[0].Structure)
	assert.Equal("<noun> using <noun>", usages[0].String())
	assert.Equal([]node.Slot{
		{Literal: "under"},
		{Wildcard: true, Arg: node.TagNoun},
	}, usages[1].Structure)
	assert.True(usages[1].Flags.Has(node.SwapArgs))
}

func Test_Glossary_Definitions_inOrder(t *testing.T) {
	assert := assert.New(t)
	g := New(Options{})

	assert.NoError(g.Register(Particle("at")))
	assert.NoError(g.Register(Noun("lamp")))
	assert.NoError(g.Register(Command("quit", func() {}), "quit", "exit"))

	var ids []string
	for _, d := range g.Definitions() {
		ids = append(ids, d.ID())
	}

	assert.Equal([]string{"at", "lamp", "quit"}, ids)
	assert.Equal([]string{"exit", "quit"}, g.WordsFor("quit"))
}

func Test_Glossary_Parse(t *testing.T) {
	assert := assert.New(t)
	g := New(Options{})

	assert.NoError(g.Register(Particle("at")))
	assert.NoError(g.Register(Noun("lamp"), "lamp", "lantern"))
	assert.NoError(g.Register(Adjective("brass")))
	assert.NoError(g.Register(Direction("north"), "north", "n"))
	assert.NoError(g.Register(Verb("look", UsageSpec{Structure: "at *", Args: []node.Tag{node.TagNoun}, Action: noop})))

	nodes, err := g.Parse("Look at the brass Lantern N zorp")
	if !assert.NoError(err) {
		return
	}

	var tags []node.Tag
	var words []string
	var ids []string
	for _, n := range nodes {
		tags = append(tags, n.Tag())
		words = append(words, n.OrigWord())
		ids = append(ids, n.DefinitionID())
	}

	assert.Equal([]node.Tag{node.TagVerb, node.TagParticle, node.TagAdjective, node.TagNoun, node.TagDirection, node.TagUnknown}, tags)
	assert.Equal([]string{"Look", "at", "brass", "Lantern", "N", "zorp"}, words)
	assert.Equal([]string{"look", "at", "brass", "lamp", "north", ""}, ids)
}

func Test_Glossary_customOptions(t *testing.T) {
	assert := assert.New(t)
	g := New(Options{
		Wildcard:    '%',
		InvalidChar: ExtraInvalidChars(DefaultInvalidChar, "-"),
		InvalidWord: Stopwords(nil, "please"),
	})

	assert.NoError(g.Register(Noun("lamp")))
	assert.NoError(g.Register(Verb("take", UsageSpec{Structure: "%", Args: []node.Tag{node.TagNoun}, Action: noop})))

	tokens, err := g.Tokenize("please take the la-mp")
	if !assert.NoError(err) {
		return
	}

	// "the" is only a stopword by default
	assert.Equal([]Token{
		{Orig: "take", Lookup: "take"},
		{Orig: "the", Lookup: "the"},
		{Orig: "lamp", Lookup: "lamp"},
	}, tokens)
	assert.Equal('%', g.Wildcard())
}

package glossfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/tqinterp/internal/node"
	"github.com/dekarrin/tqinterp/internal/sentence"
	"github.com/dekarrin/tqinterp/internal/tqerrors"
	"github.com/stretchr/testify/assert"
)

const glossaryHeader = `
format = "TUNA"
type = "GLOSSARY"
`

const wordsFile = glossaryHeader + wordsBody

const wordsBody = `
[[particle]]
id = "at"

[[particle]]
id = "with"
words = ["with", "using"]

[[noun]]
id = "lamp"
words = ["lamp", "lantern"]

[[noun]]
id = "troll"

[[adjective]]
id = "brass"
`

const verbsFile = glossaryHeader + verbsBody

const verbsBody = `
[[command]]
id = "wait"
words = ["wait", "z"]
say = "Time passes."

[[verb]]
id = "look"

  [[verb.usage]]
  say = "You look around."

  [[verb.usage]]
  structure = "at *"
  args = ["noun"]
  say = "You look at {direct}."

[[verb]]
id = "attack"
words = ["attack", "hit"]

  [[verb.usage]]
  structure = "with * *"
  args = ["noun", "noun"]
  flags = ["swap-args"]
  action = "fight"
`

func writeFiles(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func Test_Load_glossaryFile(t *testing.T) {
	assert := assert.New(t)
	dir := writeFiles(t, map[string]string{
		"all.tqg": glossaryHeader + wordsBody + verbsBody,
	})
	out := &bytes.Buffer{}
	var fought []string
	binder := Narrator{
		Out: out,
		Actions: map[string]node.Action{
			"fight": func(direct, indirect node.Node) {
				fought = append(fought, direct.OrigWord()+" with "+indirect.OrigWord())
			},
		},
	}

	g, err := Load(filepath.Join(dir, "all.tqg"), binder)
	if !assert.NoError(err) {
		return
	}

	def, ok := g.Lookup("hit")
	if !assert.True(ok) {
		return
	}
	assert.Equal("attack", def.ID())

	nodes, err := g.Parse("hit using lantern troll")
	if !assert.NoError(err) {
		return
	}
	verb := nodes[0].(*node.VerbNode)
	usage := verb.Usages()[0]
	assert.True(usage.Flags.Has(node.SwapArgs))
	assert.Equal("fight", usage.Name)
	usage.Action(nodes[3], nodes[2])
	assert.Equal([]string{"troll with lantern"}, fought)

	look, _ := g.Lookup("look")
	lookUsages := look.CreateNode("look").(*node.VerbNode).Usages()
	assert.Equal("look", lookUsages[0].Name)
	lookUsages[1].Action(node.NewNoun("lamp", "lamp"), nil)
	assert.Equal("You look at the lamp.\n", out.String())
}

func Test_Load_manifest(t *testing.T) {
	assert := assert.New(t)
	dir := writeFiles(t, map[string]string{
		"manifest.tqm": `
format = "TUNA"
type = "MANIFEST"
files = ["words.tqg", "", "more.tqm"]
`,
		"more.tqm": `
format = "TUNA"
type = "MANIFEST"
files = ["verbs.tqg", "manifest.tqm"]
`,
		"words.tqg": wordsFile,
		"verbs.tqg": verbsFile,
	})
	binder := Narrator{Actions: map[string]node.Action{"fight": func(direct, indirect node.Node) {}}}

	g, err := Load(filepath.Join(dir, "manifest.tqm"), binder)
	if !assert.NoError(err) {
		return
	}

	var ids []string
	for _, d := range g.Definitions() {
		ids = append(ids, d.ID())
	}
	assert.Equal([]string{"at", "with", "lamp", "troll", "brass", "wait", "look", "attack"}, ids)
}

func Test_Load_errors(t *testing.T) {
	testCases := []struct {
		name      string
		files     map[string]string
		expectErr error
		expectKnd tqerrors.Kind
	}{
		{
			name: "empty manifest",
			files: map[string]string{
				"main.tqg": `
format = "TUNA"
type = "MANIFEST"
files = []
`,
			},
			expectErr: ErrManifestEmpty,
		},
		{
			name: "manifest only including itself",
			files: map[string]string{
				"main.tqg": `
format = "TUNA"
type = "MANIFEST"
files = ["main.tqg"]
`,
			},
			expectErr: ErrManifestEmpty,
		},
		{
			name: "not a TUNA file",
			files: map[string]string{
				"main.tqg": `
format = "JSON"
type = "GLOSSARY"
`,
			},
		},
		{
			name: "unknown type",
			files: map[string]string{
				"main.tqg": `
format = "TUNA"
type = "WORLD"
`,
			},
		},
		{
			name: "settings in two files",
			files: map[string]string{
				"main.tqg": `
format = "TUNA"
type = "MANIFEST"
files = ["a.tqg", "b.tqg"]
`,
				"a.tqg": `
format = "TUNA"
type = "GLOSSARY"
[settings]
wildcard = "%"
`,
				"b.tqg": `
format = "TUNA"
type = "GLOSSARY"
[settings]
stopwords = ["the"]
`,
			},
		},
		{
			name: "wildcard too long",
			files: map[string]string{
				"main.tqg": `
format = "TUNA"
type = "GLOSSARY"
[settings]
wildcard = "**"
`,
			},
		},
		{
			name: "unbound action without narration",
			files: map[string]string{
				"main.tqg": `
format = "TUNA"
type = "GLOSSARY"
[[command]]
id = "quit"
`,
			},
			expectErr: ErrUnboundAction,
		},
		{
			name: "bad argument type",
			files: map[string]string{
				"main.tqg": `
format = "TUNA"
type = "GLOSSARY"
[[verb]]
id = "take"
  [[verb.usage]]
  structure = "*"
  args = ["thing"]
  say = "Taken."
`,
			},
		},
		{
			name: "bad flag",
			files: map[string]string{
				"main.tqg": `
format = "TUNA"
type = "GLOSSARY"
[[noun]]
id = "lamp"
[[verb]]
id = "take"
  [[verb.usage]]
  structure = "*"
  args = ["noun"]
  flags = ["loud"]
  say = "Taken."
`,
			},
		},
		{
			name: "registration error keeps its kind",
			files: map[string]string{
				"main.tqg": `
format = "TUNA"
type = "GLOSSARY"
[[noun]]
id = "lamp"
[[adjective]]
id = "shiny"
words = ["lamp"]
`,
			},
			expectKnd: tqerrors.CategoryCollision,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			dir := writeFiles(t, tc.files)

			_, err := Load(filepath.Join(dir, "main.tqg"), Narrator{})

			if !assert.Error(err) {
				return
			}
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
			}
			if tc.expectKnd != tqerrors.Unspecified {
				assert.ErrorIs(err, tc.expectKnd)
			}
		})
	}
}

func Test_LoadBytes_nilBinder(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadBytes([]byte(wordsFile), nil)

	assert.Error(err)
}

func Test_LoadBytes_settings(t *testing.T) {
	assert := assert.New(t)
	data := []byte(`
format = "TUNA"
type = "GLOSSARY"

[settings]
wildcard = "%"
stopwords = ["please"]
invalid_chars = "-"

[[noun]]
id = "lamp"

[[verb]]
id = "take"
  [[verb.usage]]
  structure = "%"
  args = ["noun"]
  say = "Taken."
`)

	g, err := LoadBytes(data, Narrator{})
	if !assert.NoError(err) {
		return
	}

	assert.Equal('%', g.Wildcard())
	assert.True(g.IsInvalidWord("please"))
	assert.False(g.IsInvalidWord("the"))
	assert.True(g.IsInvalidChar('-'))
}

func Test_ScanFileInfo(t *testing.T) {
	assert := assert.New(t)

	info, err := ScanFileInfo([]byte(verbsFile))

	assert.NoError(err)
	assert.Equal(FileInfo{Format: "TUNA", Type: "GLOSSARY"}, info)
}

func Test_LoadManifestFile(t *testing.T) {
	assert := assert.New(t)
	dir := writeFiles(t, map[string]string{
		"m.tqm": `
format = "TUNA"
type = "MANIFEST"
files = ["a.tqg", "  ", "b.tqg"]
`,
	})

	files, err := LoadManifestFile(filepath.Join(dir, "m.tqm"))

	assert.NoError(err)
	assert.Equal([]string{"a.tqg", "b.tqg"}, files)
}

func Test_Describe(t *testing.T) {
	brassLamp := node.NewNoun("lamp", "lamp")
	brassLamp.AddModifier(node.NewAdjective("brass", "brass"), true)

	testCases := []struct {
		name   string
		input  node.Node
		expect string
	}{
		{
			name:   "nil",
			input:  nil,
			expect: "nothing",
		},
		{
			name:   "noun",
			input:  node.NewNoun("key", "key"),
			expect: "the key",
		},
		{
			name:   "noun with modifier",
			input:  brassLamp,
			expect: "the brass lamp",
		},
		{
			name:   "noun group of two",
			input:  node.NewNounGroup("lamp and key", []*node.NounNode{node.NewNoun("lamp", "lamp"), node.NewNoun("key", "key")}),
			expect: "the lamp and the key",
		},
		{
			name: "noun group of three",
			input: node.NewNounGroup("lamp and key and sword", []*node.NounNode{
				node.NewNoun("lamp", "lamp"), node.NewNoun("key", "key"), node.NewNoun("sword", "sword"),
			}),
			expect: "the lamp, the key, and the sword",
		},
		{
			name:   "direction",
			input:  node.NewDirection("north", "north"),
			expect: "north",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := Describe(tc.input)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Describe_assembledModifiers(t *testing.T) {
	testCases := []struct {
		name   string
		input  []node.Node
		expect string
	}{
		{
			name: "two before",
			input: []node.Node{
				node.NewAdjective("big", "big"), node.NewAdjective("brass", "brass"), node.NewNoun("lamp", "lamp"),
			},
			expect: "the big brass lamp",
		},
		{
			name: "three before",
			input: []node.Node{
				node.NewAdjective("old", "old"), node.NewAdjective("rusty", "rusty"), node.NewAdjective("iron", "iron"), node.NewNoun("key", "key"),
			},
			expect: "the old rusty iron key",
		},
		{
			name: "before and after",
			input: []node.Node{
				node.NewAdjective("big", "big"), node.NewAdjective("brass", "brass"), node.NewNoun("lamp", "lamp"),
				node.NewAdjective("shiny", "shiny"), node.NewAdjective("new", "new"),
			},
			expect: "the big brass lamp shiny new",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			s := sentence.Assemble(tc.input)
			if !assert.Equal(1, s.Len()) {
				return
			}

			actual := Describe(s.At(0))

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Narrator_templates(t *testing.T) {
	assert := assert.New(t)
	out := &bytes.Buffer{}
	nr := Narrator{Out: out}

	usage, err := nr.BindUsage("put", "put", "You {verb} {direct} on {indirect}.")
	if !assert.NoError(err) {
		return
	}
	cmd, err := nr.BindCommand("wait", "wait", "You {verb}.")
	if !assert.NoError(err) {
		return
	}

	usage(node.NewNoun("lamp", "lamp"), node.NewNoun("table", "table"))
	cmd()

	assert.Equal("You put the lamp on the table.\nYou wait.\n", out.String())
}

func Test_Narrator_namedCallbackWins(t *testing.T) {
	assert := assert.New(t)
	out := &bytes.Buffer{}
	called := false
	nr := Narrator{Out: out, Commands: map[string]node.CommandAction{"bye": func() { called = true }}}

	cmd, err := nr.BindCommand("quit", "bye", "Goodbye.")
	if !assert.NoError(err) {
		return
	}
	cmd()

	assert.True(called)
	assert.Empty(out.String())
}

package glossfile

type topLevelManifest struct {
	Format string   `toml:"format"`
	Type   string   `toml:"type"`
	Files  []string `toml:"files"`
}

// topLevelGlossary is the top-level structure containing all keys in a
// complete TUNA 'GLOSSARY' type file.
type topLevelGlossary struct {
	Format       string         `toml:"format"`
	Type         string         `toml:"type"`
	Settings     settings       `toml:"settings"`
	Particles    []wordEntry    `toml:"particle"`
	Prepositions []wordEntry    `toml:"preposition"`
	Directions   []wordEntry    `toml:"direction"`
	Conjunctions []wordEntry    `toml:"conjunction"`
	Nouns        []wordEntry    `toml:"noun"`
	Adjectives   []wordEntry    `toml:"adjective"`
	Commands     []commandEntry `toml:"command"`
	Verbs        []verbEntry    `toml:"verb"`
}

type settings struct {
	// Wildcard must be a single character if set.
	Wildcard string `toml:"wildcard"`

	// Stopwords replaces the default stopwords if non-empty.
	Stopwords []string `toml:"stopwords"`

	// InvalidChars are rejected in addition to the default invalid
	// characters.
	InvalidChars string `toml:"invalid_chars"`
}

func (s settings) empty() bool {
	return s.Wildcard == "" && len(s.Stopwords) == 0 && s.InvalidChars == ""
}

type wordEntry struct {
	ID    string   `toml:"id"`
	Words []string `toml:"words"`

	// Canonical is only read for particles.
	Canonical string `toml:"canonical"`
}

type commandEntry struct {
	ID     string   `toml:"id"`
	Words  []string `toml:"words"`
	Action string   `toml:"action"`
	Say    string   `toml:"say"`
}

type verbEntry struct {
	ID     string       `toml:"id"`
	Words  []string     `toml:"words"`
	Usages []usageEntry `toml:"usage"`
}

type usageEntry struct {
	Structure string   `toml:"structure"`
	Args      []string `toml:"args"`
	Flags     []string `toml:"flags"`
	Action    string   `toml:"action"`
	Say       string   `toml:"say"`
}

// merge appends all entries of other to tg. Settings may only be given by one
// file.
func (tg *topLevelGlossary) merge(other topLevelGlossary) bool {
	if !other.Settings.empty() {
		if !tg.Settings.empty() {
			return false
		}
		tg.Settings = other.Settings
	}

	tg.Particles = append(tg.Particles, other.Particles...)
	tg.Prepositions = append(tg.Prepositions, other.Prepositions...)
	tg.Directions = append(tg.Directions, other.Directions...)
	tg.Conjunctions = append(tg.Conjunctions, other.Conjunctions...)
	tg.Nouns = append(tg.Nouns, other.Nouns...)
	tg.Adjectives = append(tg.Adjectives, other.Adjectives...)
	tg.Commands = append(tg.Commands, other.Commands...)
	tg.Verbs = append(tg.Verbs, other.Verbs...)
	return true
}

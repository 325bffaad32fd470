package glossfile

import (
	"fmt"
	"unicode/utf8"

	"github.com/dekarrin/tqinterp/internal/glossary"
	"github.com/dekarrin/tqinterp/internal/node"
)

// buildGlossary creates a glossary from the unmarshaled data. Definitions are
// registered by category so that the particles and prepositions that verb
// usage structures refer to always exist before any verb is added.
func buildGlossary(tg topLevelGlossary, binder Binder) (*glossary.Glossary, error) {
	if binder == nil {
		return nil, fmt.Errorf("no action binder was provided")
	}

	opts, err := parseSettings(tg.Settings)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	g := glossary.New(opts)

	for i, p := range tg.Particles {
		if err := g.Register(glossary.ParticleNamed(p.ID, p.Canonical), p.Words...); err != nil {
			return nil, fmt.Errorf("particle %d (%q): %w", i, p.ID, err)
		}
	}
	for i, p := range tg.Prepositions {
		if err := g.Register(glossary.Preposition(p.ID), p.Words...); err != nil {
			return nil, fmt.Errorf("preposition %d (%q): %w", i, p.ID, err)
		}
	}
	for i, d := range tg.Directions {
		if err := g.Register(glossary.Direction(d.ID), d.Words...); err != nil {
			return nil, fmt.Errorf("direction %d (%q): %w", i, d.ID, err)
		}
	}
	for i, c := range tg.Conjunctions {
		if err := g.Register(glossary.Conjunction(c.ID), c.Words...); err != nil {
			return nil, fmt.Errorf("conjunction %d (%q): %w", i, c.ID, err)
		}
	}
	for i, n := range tg.Nouns {
		if err := g.Register(glossary.Noun(n.ID), n.Words...); err != nil {
			return nil, fmt.Errorf("noun %d (%q): %w", i, n.ID, err)
		}
	}
	for i, a := range tg.Adjectives {
		if err := g.Register(glossary.Adjective(a.ID), a.Words...); err != nil {
			return nil, fmt.Errorf("adjective %d (%q): %w", i, a.ID, err)
		}
	}

	for i, c := range tg.Commands {
		actionName := c.Action
		if actionName == "" {
			actionName = c.ID
		}
		action, err := binder.BindCommand(c.ID, actionName, c.Say)
		if err != nil {
			return nil, fmt.Errorf("command %d (%q): action %q: %w", i, c.ID, actionName, err)
		}
		if err := g.Register(glossary.Command(c.ID, action), c.Words...); err != nil {
			return nil, fmt.Errorf("command %d (%q): %w", i, c.ID, err)
		}
	}

	for i, v := range tg.Verbs {
		specs := make([]glossary.UsageSpec, len(v.Usages))
		for j, u := range v.Usages {
			spec, err := parseUsage(v.ID, u, binder)
			if err != nil {
				return nil, fmt.Errorf("verb %d (%q): usage %d: %w", i, v.ID, j, err)
			}
			specs[j] = spec
		}
		if err := g.Register(glossary.Verb(v.ID, specs...), v.Words...); err != nil {
			return nil, fmt.Errorf("verb %d (%q): %w", i, v.ID, err)
		}
	}

	return g, nil
}

func parseSettings(s settings) (glossary.Options, error) {
	var opts glossary.Options

	if s.Wildcard != "" {
		if utf8.RuneCountInString(s.Wildcard) != 1 {
			return opts, fmt.Errorf("wildcard: must be exactly one character but was %q", s.Wildcard)
		}
		opts.Wildcard, _ = utf8.DecodeRuneInString(s.Wildcard)
	}

	if len(s.Stopwords) > 0 {
		opts.InvalidWord = glossary.Stopwords(nil, s.Stopwords...)
	}

	if s.InvalidChars != "" {
		opts.InvalidChar = glossary.ExtraInvalidChars(glossary.DefaultInvalidChar, s.InvalidChars)
	}

	return opts, nil
}

func parseUsage(verbID string, u usageEntry, binder Binder) (glossary.UsageSpec, error) {
	spec := glossary.UsageSpec{
		Name:      u.Action,
		Structure: u.Structure,
	}

	for i, a := range u.Args {
		tag, err := node.ParseTag(a)
		if err != nil {
			return spec, fmt.Errorf("args[%d]: %w", i, err)
		}
		spec.Args = append(spec.Args, tag)
	}

	for i, f := range u.Flags {
		flag, err := node.ParseUsageFlag(f)
		if err != nil {
			return spec, fmt.Errorf("flags[%d]: %w", i, err)
		}
		spec.Flags |= flag
	}

	actionName := u.Action
	if actionName == "" {
		actionName = verbID
		spec.Name = verbID
	}
	action, err := binder.BindUsage(verbID, actionName, u.Say)
	if err != nil {
		return spec, fmt.Errorf("action %q: %w", actionName, err)
	}
	spec.Action = action

	return spec, nil
}

// Package node contains the typed lexical units that a line of player input is
// converted into once its words have been looked up in a glossary.
//
// Node is a closed set of variants; only the types declared in this package
// implement it. Code that examines a Node should use a type switch over the
// concrete types and treat any unhandled type as a programming error.
package node

import (
	"fmt"
	"strings"
)

// Tag identifies the variant of a Node. It is also used to declare the type of
// argument that a wildcard slot in a Usage accepts.
type Tag int

const (
	TagNone Tag = iota
	TagVerb
	TagNoun
	TagNounGroup
	TagAdjective
	TagParticle
	TagConjunction
	TagCommand
	TagDirection
	TagPreposition
	TagUnknown
)

var tagNames = map[Tag]string{
	TagNone:        "none",
	TagVerb:        "verb",
	TagNoun:        "noun",
	TagNounGroup:   "noun-group",
	TagAdjective:   "adjective",
	TagParticle:    "particle",
	TagConjunction: "conjunction",
	TagCommand:     "command",
	TagDirection:   "direction",
	TagPreposition: "preposition",
	TagUnknown:     "unknown",
}

// String returns the name of the tag as it is written in glossary files.
func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// ParseTag parses the name of a Tag. Matching is case-insensitive. TagNone and
// TagUnknown cannot be parsed.
func ParseTag(s string) (Tag, error) {
	check := strings.ToLower(strings.TrimSpace(s))
	for t, name := range tagNames {
		if t == TagNone || t == TagUnknown {
			continue
		}
		if name == check {
			return t, nil
		}
	}
	return TagNone, fmt.Errorf("not a valid node type: %q", s)
}

// Modifier returns whether nodes with the Tag are absorbed into adjacent nouns
// during sentence assembly.
func (t Tag) Modifier() bool {
	return t == TagAdjective
}

// ParticleLike returns whether nodes with the Tag can match a literal slot of
// a Usage structure.
func (t Tag) ParticleLike() bool {
	return t == TagParticle || t == TagPreposition
}

// Node is a single lexical unit of a sentence. Every Node records the word as
// the player typed it and the ID of the glossary definition that produced it.
type Node interface {
	// Tag returns the variant of the Node.
	Tag() Tag

	// OrigWord returns the word exactly as it was typed by the player. For
	// composite nodes this is the typed words joined by spaces.
	OrigWord() string

	// DefinitionID returns the canonical ID of the definition that created
	// the Node. It is empty for UnknownNodes and NounGroupNodes.
	DefinitionID() string

	String() string

	isNode()
}

type base struct {
	orig string
	id   string
}

func (b base) OrigWord() string     { return b.orig }
func (b base) DefinitionID() string { return b.id }
func (b base) isNode()              {}

// VerbNode is a verb that can be resolved against its registered usages.
type VerbNode struct {
	base
	usages []Usage
}

// NewVerb creates a VerbNode. usages must not be empty.
func NewVerb(orig, id string, usages []Usage) *VerbNode {
	return &VerbNode{base: base{orig: orig, id: id}, usages: usages}
}

func (n *VerbNode) Tag() Tag { return TagVerb }

// Usages returns the usages of the verb in declaration order. The returned
// slice must not be modified.
func (n *VerbNode) Usages() []Usage { return n.usages }

func (n *VerbNode) String() string {
	return fmt.Sprintf("Verb(%q)", n.orig)
}

// NounNode is a noun along with the modifiers that describe it.
type NounNode struct {
	base
	modifiers []Node

	// preceding is how many of the modifiers came before the noun in the
	// input. They are always first in modifiers.
	preceding int
}

// NewNoun creates a NounNode with no modifiers.
func NewNoun(orig, id string) *NounNode {
	return &NounNode{base: base{orig: orig, id: id}}
}

func (n *NounNode) Tag() Tag { return TagNoun }

// Modifiers returns the nodes that describe the noun, in the order they were
// absorbed: the ones before the noun nearest first, then the ones after it
// nearest first.
func (n *NounNode) Modifiers() []Node { return n.modifiers }

// Preceding returns the modifiers that came before the noun, nearest first.
func (n *NounNode) Preceding() []Node { return n.modifiers[:n.preceding] }

// Following returns the modifiers that came after the noun, nearest first.
func (n *NounNode) Following() []Node { return n.modifiers[n.preceding:] }

// AddModifier adds m to the modifiers of the noun. before gives whether m came
// before the noun in the input. It is only called during sentence assembly,
// and each side is filled nearest first.
func (n *NounNode) AddModifier(m Node, before bool) {
	if !before {
		n.modifiers = append(n.modifiers, m)
		return
	}
	n.modifiers = append(n.modifiers, nil)
	copy(n.modifiers[n.preceding+1:], n.modifiers[n.preceding:])
	n.modifiers[n.preceding] = m
	n.preceding++
}

func (n *NounNode) String() string {
	if len(n.modifiers) == 0 {
		return fmt.Sprintf("Noun(%q)", n.orig)
	}
	mods := make([]string, len(n.modifiers))
	for i := range n.modifiers {
		mods[i] = fmt.Sprintf("%q", n.modifiers[i].OrigWord())
	}
	return fmt.Sprintf("Noun(%q, mods=[%s])", n.orig, strings.Join(mods, ", "))
}

// NounGroupNode is two or more nouns joined by conjunctions and treated as a
// single argument.
type NounGroupNode struct {
	base
	nouns []*NounNode
}

// NewNounGroup creates a NounGroupNode from the given nouns. orig should be
// every word that the group replaces, conjunctions included.
func NewNounGroup(orig string, nouns []*NounNode) *NounGroupNode {
	copied := make([]*NounNode, len(nouns))
	copy(copied, nouns)
	return &NounGroupNode{base: base{orig: orig}, nouns: copied}
}

func (n *NounGroupNode) Tag() Tag { return TagNounGroup }

// Nouns returns the nouns in the group in the order they were typed. The
// returned slice must not be modified.
func (n *NounGroupNode) Nouns() []*NounNode { return n.nouns }

func (n *NounGroupNode) String() string {
	parts := make([]string, len(n.nouns))
	for i := range n.nouns {
		parts[i] = n.nouns[i].String()
	}
	return "NounGroup[" + strings.Join(parts, ", ") + "]"
}

// AdjectiveNode is a word that modifies a noun.
type AdjectiveNode struct {
	base
}

func NewAdjective(orig, id string) *AdjectiveNode {
	return &AdjectiveNode{base: base{orig: orig, id: id}}
}

func (n *AdjectiveNode) Tag() Tag { return TagAdjective }
func (n *AdjectiveNode) String() string {
	return fmt.Sprintf("Adjective(%q)", n.orig)
}

// ParticleNode is a small structural word that is matched by literal slots in
// verb usages.
type ParticleNode struct {
	base
	canonical string
}

// NewParticle creates a ParticleNode. If canonical is empty, the definition ID
// is used as the canonical name.
func NewParticle(orig, id, canonical string) *ParticleNode {
	if canonical == "" {
		canonical = id
	}
	return &ParticleNode{base: base{orig: orig, id: id}, canonical: canonical}
}

func (n *ParticleNode) Tag() Tag { return TagParticle }

// Canonical returns the canonical syntax name of the particle.
func (n *ParticleNode) Canonical() string { return n.canonical }

func (n *ParticleNode) String() string {
	return fmt.Sprintf("Particle(%q)", n.orig)
}

// ConjunctionNode joins nouns into groups.
type ConjunctionNode struct {
	base
}

func NewConjunction(orig, id string) *ConjunctionNode {
	return &ConjunctionNode{base: base{orig: orig, id: id}}
}

func (n *ConjunctionNode) Tag() Tag { return TagConjunction }
func (n *ConjunctionNode) String() string {
	return fmt.Sprintf("Conjunction(%q)", n.orig)
}

// CommandNode is a word that performs an action by itself with no arguments.
type CommandNode struct {
	base
	action CommandAction
}

func NewCommand(orig, id string, action CommandAction) *CommandNode {
	return &CommandNode{base: base{orig: orig, id: id}, action: action}
}

func (n *CommandNode) Tag() Tag { return TagCommand }

// Action returns the callback of the command.
func (n *CommandNode) Action() CommandAction { return n.action }

func (n *CommandNode) String() string {
	return fmt.Sprintf("Command(%q)", n.orig)
}

// DirectionNode is a compass direction or similar.
type DirectionNode struct {
	base
}

func NewDirection(orig, id string) *DirectionNode {
	return &DirectionNode{base: base{orig: orig, id: id}}
}

func (n *DirectionNode) Tag() Tag { return TagDirection }
func (n *DirectionNode) String() string {
	return fmt.Sprintf("Direction(%q)", n.orig)
}

// PrepositionNode is a positional word. Unlike a DirectionNode it is
// particle-like and can match literal slots.
type PrepositionNode struct {
	base
}

func NewPreposition(orig, id string) *PrepositionNode {
	return &PrepositionNode{base: base{orig: orig, id: id}}
}

func (n *PrepositionNode) Tag() Tag { return TagPreposition }
func (n *PrepositionNode) String() string {
	return fmt.Sprintf("Preposition(%q)", n.orig)
}

// UnknownNode is a word that is not in the glossary.
type UnknownNode struct {
	base
}

func NewUnknown(orig string) *UnknownNode {
	return &UnknownNode{base: base{orig: orig}}
}

func (n *UnknownNode) Tag() Tag { return TagUnknown }
func (n *UnknownNode) String() string {
	return fmt.Sprintf("Unknown(%q)", n.orig)
}

// Canonical returns the name that a literal slot is compared against for the
// given node, and whether the node can be compared against a literal at all.
func Canonical(n Node) (string, bool) {
	switch v := n.(type) {
	case *ParticleNode:
		return v.Canonical(), true
	case *PrepositionNode:
		return v.DefinitionID(), true
	default:
		return "", false
	}
}

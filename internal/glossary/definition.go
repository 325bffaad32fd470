package glossary

import (
	"github.com/dekarrin/tqinterp/internal/node"
)

// Definition is the registered meaning behind a canonical word ID. It acts as
// a factory for the Nodes of every word registered to it.
type Definition interface {
	// ID returns the canonical ID of the definition.
	ID() string

	// Category returns the Tag of the nodes that the Definition creates.
	// Words may only be shared between definitions of the same Category.
	Category() node.Tag

	// CreateNode creates a new Node for a word that resolves to this
	// definition. origWord is the word as the player typed it.
	CreateNode(origWord string) node.Node
}

// UsageSpec declares one usage of a verb before it is registered.
//
// Structure is a space-separated list of literal words and wildcard
// characters, such as "at *" or "* with *". Each literal must be a word that
// resolves to a particle-like definition at the time the verb is registered.
// Args gives the node type accepted by each wildcard, in order.
type UsageSpec struct {
	Name      string
	Structure string
	Args      []node.Tag
	Flags     node.UsageFlags
	Action    node.Action
}

// VerbDef defines a verb and the ways it can be used. Its usages are compiled
// against the glossary when it is added with AddDef.
type VerbDef struct {
	id     string
	specs  []UsageSpec
	usages []node.Usage
}

// Verb creates a new VerbDef with the given usages. At least one usage must be
// given for the definition to be registered.
func Verb(id string, usages ...UsageSpec) *VerbDef {
	specs := make([]UsageSpec, len(usages))
	copy(specs, usages)
	return &VerbDef{id: id, specs: specs}
}

func (d *VerbDef) ID() string         { return d.id }
func (d *VerbDef) Category() node.Tag { return node.TagVerb }

// Usages returns the compiled usages of the verb. It is empty until the verb
// has been registered.
func (d *VerbDef) Usages() []node.Usage {
	return d.usages
}

func (d *VerbDef) CreateNode(origWord string) node.Node {
	return node.NewVerb(origWord, d.id, d.usages)
}

// CommandDef defines a word that performs an action by itself.
type CommandDef struct {
	id     string
	action node.CommandAction
}

func Command(id string, action node.CommandAction) *CommandDef {
	return &CommandDef{id: id, action: action}
}

func (d *CommandDef) ID() string         { return d.id }
func (d *CommandDef) Category() node.Tag { return node.TagCommand }
func (d *CommandDef) CreateNode(origWord string) node.Node {
	return node.NewCommand(origWord, d.id, d.action)
}

// ConjunctionDef defines a word that joins nouns into groups.
type ConjunctionDef struct {
	id string
}

func Conjunction(id string) *ConjunctionDef {
	return &ConjunctionDef{id: id}
}

func (d *ConjunctionDef) ID() string         { return d.id }
func (d *ConjunctionDef) Category() node.Tag { return node.TagConjunction }
func (d *ConjunctionDef) CreateNode(origWord string) node.Node {
	return node.NewConjunction(origWord, d.id)
}

// DirectionDef defines a positional word. If IsDirection is set it creates
// DirectionNodes, otherwise it creates PrepositionNodes.
type DirectionDef struct {
	id          string
	IsDirection bool
}

// Direction creates a DirectionDef for a direction word such as "north".
func Direction(id string) *DirectionDef {
	return &DirectionDef{id: id, IsDirection: true}
}

// Preposition creates a DirectionDef for a preposition such as "under".
func Preposition(id string) *DirectionDef {
	return &DirectionDef{id: id}
}

func (d *DirectionDef) ID() string { return d.id }
func (d *DirectionDef) Category() node.Tag {
	if d.IsDirection {
		return node.TagDirection
	}
	return node.TagPreposition
}
func (d *DirectionDef) CreateNode(origWord string) node.Node {
	if d.IsDirection {
		return node.NewDirection(origWord, d.id)
	}
	return node.NewPreposition(origWord, d.id)
}

// NounDef defines a noun.
type NounDef struct {
	id string
}

func Noun(id string) *NounDef {
	return &NounDef{id: id}
}

func (d *NounDef) ID() string         { return d.id }
func (d *NounDef) Category() node.Tag { return node.TagNoun }
func (d *NounDef) CreateNode(origWord string) node.Node {
	return node.NewNoun(origWord, d.id)
}

// AdjectiveDef defines a word that modifies nouns.
type AdjectiveDef struct {
	id string
}

func Adjective(id string) *AdjectiveDef {
	return &AdjectiveDef{id: id}
}

func (d *AdjectiveDef) ID() string         { return d.id }
func (d *AdjectiveDef) Category() node.Tag { return node.TagAdjective }
func (d *AdjectiveDef) CreateNode(origWord string) node.Node {
	return node.NewAdjective(origWord, d.id)
}

// ParticleDef defines a structural word used in verb usage structures.
type ParticleDef struct {
	id        string
	canonical string
}

// Particle creates a ParticleDef whose canonical name is its ID.
func Particle(id string) *ParticleDef {
	return &ParticleDef{id: id, canonical: id}
}

// ParticleNamed creates a ParticleDef with a canonical name different from its
// ID.
func ParticleNamed(id, canonical string) *ParticleDef {
	if canonical == "" {
		canonical = id
	}
	return &ParticleDef{id: id, canonical: canonical}
}

func (d *ParticleDef) ID() string         { return d.id }
func (d *ParticleDef) Category() node.Tag { return node.TagParticle }

// Canonical returns the canonical syntax name of the particle.
func (d *ParticleDef) Canonical() string { return d.canonical }

func (d *ParticleDef) CreateNode(origWord string) node.Node {
	return node.NewParticle(origWord, d.id, d.canonical)
}

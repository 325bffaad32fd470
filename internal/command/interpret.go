package command

import (
	"fmt"

	"github.com/dekarrin/tqinterp/internal/glossary"
	"github.com/dekarrin/tqinterp/internal/node"
	"github.com/dekarrin/tqinterp/internal/sentence"
	"github.com/dekarrin/tqinterp/internal/tqerrors"
)

// Interpreter turns lines of player input into action invocations using the
// words of a Glossary.
//
// Interpreter does no locking. If the Glossary is modified while a line is
// being interpreted, or if Interpret is called concurrently while actions
// share state, the caller must synchronize.
type Interpreter struct {
	gloss *glossary.Glossary
}

// NewInterpreter creates an Interpreter that looks words up in g.
func NewInterpreter(g *glossary.Glossary) *Interpreter {
	return &Interpreter{gloss: g}
}

// Glossary returns the glossary the Interpreter looks words up in.
func (in *Interpreter) Glossary() *glossary.Glossary {
	return in.gloss
}

// Interpret tokenizes, looks up and assembles input, then runs the resulting
// sentence. It returns a Dispatch for every action invoked, in order. If the
// line cannot be fully interpreted, the dispatches made before the problem was
// found are returned along with an error whose tqerrors.GameMessage is
// suitable for showing to the player.
func (in *Interpreter) Interpret(input string) ([]Dispatch, error) {
	nodes, err := in.gloss.Parse(input)
	if err != nil {
		return nil, err
	}

	return Run(sentence.Assemble(nodes))
}

// Run walks s from left to right. Standalone conjunctions are skipped,
// commands are invoked immediately, and verbs are resolved against the nodes
// that follow them; interpretation continues after the nodes consumed by the
// selected usage. Any other node stops interpretation with an error.
func Run(s sentence.Sentence) ([]Dispatch, error) {
	var dispatches []Dispatch

	i := 0
	for i < s.Len() {
		switch n := s.At(i).(type) {
		case *node.ConjunctionNode:
			i++
		case *node.CommandNode:
			n.Action()()
			dispatches = append(dispatches, Dispatch{
				ID:      n.DefinitionID(),
				Word:    n.OrigWord(),
				Command: true,
				Usage:   -1,
			})
			i++
		case *node.VerbNode:
			res, err := Resolve(n, s.From(i+1))
			if err != nil {
				return dispatches, err
			}
			dispatches = append(dispatches, res.Invoke()...)
			i += 1 + res.Consumed
		case *node.UnknownNode:
			return dispatches, tqerrors.Newf(tqerrors.UnknownWord, "I don't understand the word %q.", n.OrigWord())
		case *node.NounNode, *node.NounGroupNode, *node.AdjectiveNode, *node.ParticleNode, *node.DirectionNode, *node.PrepositionNode:
			return dispatches, tqerrors.Newf(tqerrors.UnexpectedWord, "You lost me at %q.", n.OrigWord())
		default:
			panic(fmt.Sprintf("unhandled node type %T", n))
		}
	}

	return dispatches, nil
}

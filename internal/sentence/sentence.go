// Package sentence groups a flat sequence of Nodes into the structure that the
// interpreter walks: adjectives are folded into the nouns they describe, and
// nouns joined by conjunctions are folded into noun groups.
package sentence

import (
	"strings"

	"github.com/dekarrin/tqinterp/internal/node"
)

// Sentence is an assembled, read-only sequence of Nodes.
type Sentence struct {
	nodes []node.Node
}

// Assemble runs modifier collection followed by noun-group collection on
// nodes and returns the resulting Sentence. The given slice is not modified,
// but NounNodes in it will have their modifiers filled in.
func Assemble(nodes []node.Node) Sentence {
	grouped := CollectNounGroups(CollectModifiers(nodes))
	return Sentence{nodes: grouped}
}

// Len returns the number of top-level nodes in the sentence.
func (s Sentence) Len() int {
	return len(s.nodes)
}

// At returns the node at index i.
func (s Sentence) At(i int) node.Node {
	return s.nodes[i]
}

// Nodes returns a copy of the top-level nodes of the sentence.
func (s Sentence) Nodes() []node.Node {
	cp := make([]node.Node, len(s.nodes))
	copy(cp, s.nodes)
	return cp
}

// From returns a copy of the nodes from index i to the end of the sentence.
func (s Sentence) From(i int) []node.Node {
	if i >= len(s.nodes) {
		return nil
	}
	cp := make([]node.Node, len(s.nodes)-i)
	copy(cp, s.nodes[i:])
	return cp
}

func (s Sentence) String() string {
	parts := make([]string, len(s.nodes))
	for i := range s.nodes {
		parts[i] = s.nodes[i].String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// CollectModifiers folds every run of modifiers adjacent to a noun into that
// noun. Nouns are processed in order; each one first takes the modifiers
// immediately before it, nearest first, then the ones immediately after it,
// nearest first. A modifier taken by one noun cannot be taken by another.
// Taken modifiers are removed from the returned sequence.
func CollectModifiers(nodes []node.Node) []node.Node {
	taken := make([]bool, len(nodes))

	for i := range nodes {
		noun, ok := nodes[i].(*node.NounNode)
		if !ok {
			continue
		}

		for l := i - 1; l >= 0 && !taken[l] && nodes[l].Tag().Modifier(); l-- {
			noun.AddModifier(nodes[l], true)
			taken[l] = true
		}
		for r := i + 1; r < len(nodes) && !taken[r] && nodes[r].Tag().Modifier(); r++ {
			noun.AddModifier(nodes[r], false)
			taken[r] = true
		}
	}

	out := make([]node.Node, 0, len(nodes))
	for i := range nodes {
		if !taken[i] {
			out = append(out, nodes[i])
		}
	}
	return out
}

// CollectNounGroups replaces every maximal chain of the form
// Noun (Conjunction Noun)+ with a single NounGroupNode. A lone noun is left as
// it is, and a conjunction that is not followed by a noun ends the chain and
// stays in the sequence.
func CollectNounGroups(nodes []node.Node) []node.Node {
	out := make([]node.Node, 0, len(nodes))

	i := 0
	for i < len(nodes) {
		first, ok := nodes[i].(*node.NounNode)
		if !ok {
			out = append(out, nodes[i])
			i++
			continue
		}

		group := []*node.NounNode{first}
		words := []string{first.OrigWord()}
		end := i
		for end+2 < len(nodes) {
			conj, isConj := nodes[end+1].(*node.ConjunctionNode)
			next, isNoun := nodes[end+2].(*node.NounNode)
			if !isConj || !isNoun {
				break
			}
			group = append(group, next)
			words = append(words, conj.OrigWord(), next.OrigWord())
			end += 2
		}

		if len(group) < 2 {
			out = append(out, first)
		} else {
			out = append(out, node.NewNounGroup(strings.Join(words, " "), group))
		}
		i = end + 1
	}

	return out
}

package command

import (
	"strings"

	"github.com/dekarrin/tqinterp/internal/node"
	"github.com/dekarrin/tqinterp/internal/tqerrors"
)

// Resolution is a verb usage selected for a verb along with the nodes it
// consumed.
type Resolution struct {
	Verb *node.VerbNode

	// UsageIndex is the index of the selected usage in the verb's usages.
	UsageIndex int

	Usage node.Usage

	// Args holds the nodes that filled the usage's wildcard slots, in
	// structure order.
	Args []node.Node

	// Consumed is the number of nodes after the verb that the usage matched.
	Consumed int
}

type candidate struct {
	usage  node.Usage
	cursor int
	args   []node.Node
	dead   bool
	done   bool
}

func (c *candidate) walking() bool {
	return !c.dead && !c.done
}

// Resolve selects the usage of verb that matches the longest prefix of tail.
//
// Every usage starts as a candidate. The tail is walked one node at a time and
// each candidate still walking is checked against the node: a literal slot
// needs a particle-like node with the same canonical name and a wildcard slot
// needs a node of the declared argument type. A candidate that fails a check
// is discarded for good. A candidate whose every slot has been filled is
// complete. Walking stops when the tail runs out or no candidate is still
// walking.
//
// The complete candidate that consumed the most nodes is selected, with ties
// going to the usage declared first. A usage with no slots completes without
// consuming anything and so is only selected when nothing longer completes.
//
// If nothing completes, the returned error has a tqerrors Kind of
// NoMatchingUsage if every candidate was discarded at the first node of the
// tail, and IncompleteVerbUsage otherwise.
func Resolve(verb *node.VerbNode, tail []node.Node) (Resolution, error) {
	usages := verb.Usages()
	cands := make([]candidate, len(usages))

	best := -1
	bestConsumed := -1
	var bestArgs []node.Node

	complete := func(idx, consumed int) {
		if consumed > bestConsumed {
			best = idx
			bestConsumed = consumed
			bestArgs = cands[idx].args
		}
	}

	for i := range usages {
		cands[i] = candidate{usage: usages[i]}
		if len(usages[i].Structure) == 0 {
			cands[i].done = true
			complete(i, 0)
		}
	}

	var advanced bool
	for pos, n := range tail {
		stillWalking := false

		for i := range cands {
			c := &cands[i]
			if !c.walking() {
				continue
			}

			slot := c.usage.Structure[c.cursor]
			if !c.usage.Accepts(slot, n) {
				c.dead = true
				continue
			}

			advanced = true
			if slot.Wildcard {
				c.args = append(c.args, n)
			}
			c.cursor++

			if c.cursor == len(c.usage.Structure) {
				c.done = true
				complete(i, pos+1)
			} else {
				stillWalking = true
			}
		}

		if !stillWalking {
			break
		}
	}

	if best >= 0 {
		return Resolution{
			Verb:       verb,
			UsageIndex: best,
			Usage:      usages[best],
			Args:       bestArgs,
			Consumed:   bestConsumed,
		}, nil
	}

	if len(tail) > 0 && !advanced {
		return Resolution{}, tqerrors.Newf(tqerrors.NoMatchingUsage, "I don't know how to %s %q.", verb.OrigWord(), tail[0].OrigWord())
	}

	// name the words of the candidate that got furthest so the player knows
	// where the sentence fell short. A discarded candidate's cursor still
	// counts the nodes it matched before it was discarded.
	furthest := -1
	for i := range cands {
		if furthest < 0 || cands[i].cursor > cands[furthest].cursor {
			furthest = i
		}
	}
	said := []string{verb.OrigWord()}
	if furthest >= 0 {
		for _, n := range tail[:cands[furthest].cursor] {
			said = append(said, n.OrigWord())
		}
	}

	return Resolution{}, tqerrors.Newf(tqerrors.IncompleteVerbUsage, "What do you want to %s?", strings.Join(said, " "))
}

// Bind returns the direct and indirect objects of the resolution. The first
// wildcard node is the direct object and the second is the indirect object,
// unless the usage has the SwapArgs flag, in which case they are reversed.
// Either may be nil.
func (r Resolution) Bind() (direct, indirect node.Node) {
	if len(r.Args) > 0 {
		direct = r.Args[0]
	}
	if len(r.Args) > 1 {
		indirect = r.Args[1]
	}
	if r.Usage.Flags.Has(node.SwapArgs) {
		direct, indirect = indirect, direct
	}
	return direct, indirect
}

// Invoke calls the action of the selected usage and returns a Dispatch for
// every call made.
//
// If the usage has the MakeSingular flag and the direct object is a noun
// group, the action is called once per noun in the group with the indirect
// object held fixed. Otherwise, if the indirect object is a noun group, it is
// expanded in the same way with the direct object held fixed. Only one
// argument is ever expanded.
func (r Resolution) Invoke() []Dispatch {
	direct, indirect := r.Bind()

	var calls [][2]node.Node
	if r.Usage.Flags.Has(node.MakeSingular) {
		if group, ok := direct.(*node.NounGroupNode); ok {
			for _, n := range group.Nouns() {
				calls = append(calls, [2]node.Node{n, indirect})
			}
		} else if group, ok := indirect.(*node.NounGroupNode); ok {
			for _, n := range group.Nouns() {
				calls = append(calls, [2]node.Node{direct, n})
			}
		}
	}
	if calls == nil {
		calls = [][2]node.Node{{direct, indirect}}
	}

	dispatches := make([]Dispatch, len(calls))
	for i, args := range calls {
		r.Usage.Action(args[0], args[1])
		dispatches[i] = Dispatch{
			ID:        r.Verb.DefinitionID(),
			Word:      r.Verb.OrigWord(),
			Usage:     r.UsageIndex,
			Structure: r.Usage.String(),
			Direct:    args[0],
			Indirect:  args[1],
			Expanded:  len(calls) > 1,
		}
	}
	return dispatches
}

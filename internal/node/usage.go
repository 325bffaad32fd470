package node

import (
	"fmt"
	"strings"
)

// Action is the callback of a verb usage. direct and indirect are the nodes
// bound to the usage's wildcard slots; either may be nil if the usage does not
// have that argument.
type Action func(direct, indirect Node)

// CommandAction is the callback of a command. It takes no arguments.
type CommandAction func()

// UsageFlags modify how a Usage binds its arguments.
type UsageFlags uint8

const (
	// SwapArgs binds the first wildcard to the indirect object and the second
	// to the direct object.
	SwapArgs UsageFlags = 1 << iota

	// MakeSingular allows a single noun to fill a noun-group slot, and
	// invokes the action once per noun when a noun group is bound.
	MakeSingular
)

var flagNames = []struct {
	flag UsageFlags
	name string
}{
	{SwapArgs, "swap-args"},
	{MakeSingular, "make-singular"},
}

// Has returns whether all flags in f2 are set in f.
func (f UsageFlags) Has(f2 UsageFlags) bool {
	return f&f2 == f2
}

func (f UsageFlags) String() string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseUsageFlag parses a single flag name as it is written in glossary files.
func ParseUsageFlag(s string) (UsageFlags, error) {
	check := strings.ToLower(strings.TrimSpace(s))
	for _, fn := range flagNames {
		if fn.name == check {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("not a valid usage flag: %q", s)
}

// Slot is a single position in a Usage structure. It is either a literal,
// which must be matched by a particle-like node whose canonical name is
// Literal, or a wildcard, which must be matched by a node with Tag Arg.
type Slot struct {
	Literal  string
	Wildcard bool
	Arg      Tag
}

func (s Slot) String() string {
	if s.Wildcard {
		return "<" + s.Arg.String() + ">"
	}
	return s.Literal
}

// Usage is one valid argument pattern of a verb.
type Usage struct {
	// Name is an informational label for the usage, usually the name of the
	// action it was bound to.
	Name string

	Structure []Slot
	Flags     UsageFlags
	Action    Action
}

// Wildcards returns the number of wildcard slots in the usage.
func (u Usage) Wildcards() int {
	var count int
	for i := range u.Structure {
		if u.Structure[i].Wildcard {
			count++
		}
	}
	return count
}

// Accepts returns whether n can fill s. Literal slots accept particle-like
// nodes with a matching canonical name; wildcard slots accept nodes with the
// declared argument tag, and if MakeSingular is set on the usage a noun-group
// slot also accepts a single noun.
func (u Usage) Accepts(s Slot, n Node) bool {
	if !s.Wildcard {
		canon, ok := Canonical(n)
		return ok && canon == s.Literal
	}

	t := n.Tag()
	if t == s.Arg {
		return true
	}
	return s.Arg == TagNounGroup && t == TagNoun && u.Flags.Has(MakeSingular)
}

// String gives the usage structure in human-readable form, such as
// "at <noun-group>". A usage with no arguments is given as "(none)".
func (u Usage) String() string {
	if len(u.Structure) == 0 {
		return "(none)"
	}
	parts := make([]string, len(u.Structure))
	for i := range u.Structure {
		parts[i] = u.Structure[i].String()
	}
	return strings.Join(parts, " ")
}

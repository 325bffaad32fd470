// Package command resolves verbs against their registered usages and walks
// assembled sentences, invoking the action of every verb and command found.
package command

import (
	"fmt"

	"github.com/dekarrin/tqinterp/internal/node"
)

// Dispatch is a record of a single action invocation made while interpreting
// a sentence.
type Dispatch struct {

	// ID is the definition ID of the verb or command that was invoked.
	ID string

	// Word is the verb or command as the player typed it.
	Word string

	// Command is whether the invocation was of a command rather than a verb.
	Command bool

	// Usage is the index of the verb usage that was selected. It is -1 for
	// commands.
	Usage int

	// Structure is the human-readable structure of the selected usage, such
	// as "at <noun-group>".
	Structure string

	// Direct is the direct object the action was called with. It may be nil.
	Direct node.Node

	// Indirect is the indirect object the action was called with. It may be
	// nil.
	Indirect node.Node

	// Expanded is whether this invocation is one of several made for the
	// nouns of a single noun group.
	Expanded bool
}

func (d Dispatch) String() string {
	if d.Command {
		return fmt.Sprintf("%s()", d.ID)
	}
	return fmt.Sprintf("%s[%d](%v, %v)", d.ID, d.Usage, d.Direct, d.Indirect)
}

// Reader is a type that can be used for getting command input.
type Reader interface {
	// ReadCommand reads a single line of user input. It will block until one
	// is ready. If there is an error or output is at end (EOF), the returned
	// string will be empty, otherwise it will always be non-empty.
	//
	// When error is io.EOF, string will always be empty. If EOF was encountered
	// on a call but some input was received, the input will be returned and
	// error will be nil, and the next call to ReadCommand will return "",
	// io.EOF.
	ReadCommand() (string, error)

	// Close performs any operations required to clean the resources created by
	// the Reader. It should be called at least once when the Reader is no
	// longer needed.
	Close() error
}

package glossfile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/tqinterp/internal/node"
	"github.com/dekarrin/tqinterp/internal/util"
)

// ErrUnboundAction is returned by a Narrator when asked to bind an action it
// has no callback for and that has no narration to fall back on.
var ErrUnboundAction = errors.New("no callback is bound to the action and it has no 'say' narration")

// Narrator is a Binder that looks actions up by name and falls back to
// printing the narration template of an entry to Out when no callback has
// been given for its action.
//
// The template placeholders {verb}, {direct} and {indirect} are replaced with
// the verb ID and a description of each object.
type Narrator struct {
	Out io.Writer

	// Actions holds the callbacks for verb usages, keyed by action name.
	Actions map[string]node.Action

	// Commands holds the callbacks for commands, keyed by action name.
	Commands map[string]node.CommandAction
}

func (nr Narrator) BindUsage(verbID, action, say string) (node.Action, error) {
	if a, ok := nr.Actions[action]; ok {
		return a, nil
	}
	if say == "" {
		return nil, ErrUnboundAction
	}

	return func(direct, indirect node.Node) {
		r := strings.NewReplacer(
			"{verb}", verbID,
			"{direct}", Describe(direct),
			"{indirect}", Describe(indirect),
		)
		nr.say(r.Replace(say))
	}, nil
}

func (nr Narrator) BindCommand(commandID, action, say string) (node.CommandAction, error) {
	if a, ok := nr.Commands[action]; ok {
		return a, nil
	}
	if say == "" {
		return nil, ErrUnboundAction
	}

	return func() {
		nr.say(strings.ReplaceAll(say, "{verb}", commandID))
	}, nil
}

func (nr Narrator) say(msg string) {
	if nr.Out == nil {
		return
	}
	fmt.Fprintln(nr.Out, msg)
}

// Describe gives the text a narration uses for an object: the words of a noun
// with its modifiers and a definite article, or an English list of such for a
// noun group. A nil node is described as "nothing".
func Describe(n node.Node) string {
	switch v := n.(type) {
	case nil:
		return "nothing"
	case *node.NounNode:
		return util.ArticleFor(nounText(v), true) + " " + nounText(v)
	case *node.NounGroupNode:
		items := make([]string, len(v.Nouns()))
		for i, noun := range v.Nouns() {
			items[i] = util.ArticleFor(nounText(noun), true) + " " + nounText(noun)
		}
		return util.MakeTextList(items, false)
	default:
		return n.OrigWord()
	}
}

// nounText gives the noun with its modifiers in the order the player typed
// them.
func nounText(n *node.NounNode) string {
	words := make([]string, 0, len(n.Modifiers())+1)
	before := n.Preceding()
	for i := len(before) - 1; i >= 0; i-- {
		words = append(words, before[i].OrigWord())
	}
	words = append(words, n.OrigWord())
	for _, m := range n.Following() {
		words = append(words, m.OrigWord())
	}
	return strings.Join(words, " ")
}

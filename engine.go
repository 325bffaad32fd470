// Package tqinterp contains a CLI-driven engine that reads lines of player
// input and interprets them against a glossary until the user quits.
package tqinterp

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/tqinterp/internal/command"
	"github.com/dekarrin/tqinterp/internal/glossary"
	"github.com/dekarrin/tqinterp/internal/glossfile"
	"github.com/dekarrin/tqinterp/internal/input"
	"github.com/dekarrin/tqinterp/internal/node"
	"github.com/dekarrin/tqinterp/internal/tqerrors"
)

// DefaultGlossary is the glossary used when no glossary file is given.
//
//go:embed default.tqg
var DefaultGlossary []byte

const consoleOutputWidth = 80

// Engine contains the things needed to run an interpreter session from an
// interactive shell attached to an input stream and an output stream.
type Engine struct {
	interp      *command.Interpreter
	in          command.Reader
	out         *bufio.Writer
	narration   *strings.Builder
	forceDirect bool
	running     bool
}

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and a
// buffered writer on the output stream.
//
// If nil is given for the input stream, stdin is used. If nil is given for the
// output stream, stdout is used. If glossaryPath is empty, DefaultGlossary is
// used.
//
// The glossary commands with the actions "quit" and "help" end the session and
// list the known verbs and commands respectively. Every other action is
// narrated from its 'say' template.
func New(inputStream io.Reader, outputStream io.Writer, glossaryPath string, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	eng := &Engine{
		out:         bufio.NewWriter(outputStream),
		narration:   &strings.Builder{},
		forceDirect: forceDirectInput,
	}

	binder := glossfile.Narrator{
		Out: wrappingWriter{eng.narration},
		Commands: map[string]node.CommandAction{
			"quit": eng.quit,
			"help": eng.help,
		},
	}

	var gloss *glossary.Glossary
	var err error
	if glossaryPath == "" {
		gloss, err = glossfile.LoadBytes(DefaultGlossary, binder)
	} else {
		gloss, err = glossfile.Load(glossaryPath, binder)
	}
	if err != nil {
		return nil, fmt.Errorf("loading glossary: %w", err)
	}
	eng.interp = command.NewInterpreter(gloss)

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	if useReadline {
		eng.in, err = input.NewInteractiveReader("> ", eng.knownWords)
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}

	return nil
}

// RunUntilQuit begins reading lines from the input stream and interpreting them
// until a command bound to the "quit" action is given or input ends.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "Welcome to the TQ Interpreter\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "=============================\n"
	introMsg += "\n"
	introMsg += "Type HELP for a list of things to try.\n"

	if err := eng.write(introMsg); err != nil {
		return err
	}

	eng.running = true
	defer func() {
		eng.running = false
	}()

	for eng.running {
		line, err := eng.in.ReadCommand()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("get user command: %w", err)
		}

		if err := eng.Execute(line); err != nil {
			return err
		}
	}

	return eng.write("Goodbye\n")
}

// Execute interprets a single line of input and writes everything it produced
// to the output stream: the narration of every action invoked, followed by the
// game message of the error that stopped interpretation, if there was one.
func (eng *Engine) Execute(line string) error {
	eng.narration.Reset()
	_, interpErr := eng.interp.Interpret(line)

	output := eng.narration.String()

	if interpErr != nil {
		consoleMessage := tqerrors.GameMessage(interpErr)
		output += rosed.Edit(consoleMessage).Wrap(consoleOutputWidth).String() + "\n"
	}

	return eng.write(output)
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

// wrappingWriter wraps each message written to it to the console width. Every
// call to Write must be a complete message.
type wrappingWriter struct {
	w io.Writer
}

func (ww wrappingWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	wrapped := rosed.Edit(msg).Wrap(consoleOutputWidth).String() + "\n"
	if _, err := io.WriteString(ww.w, wrapped); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (eng *Engine) quit() {
	eng.running = false
}

func (eng *Engine) help() {
	fmt.Fprint(eng.narration, HelpText(eng.interp.Glossary()))
}

// knownWords gives every word in the glossary for tab completion.
func (eng *Engine) knownWords() []string {
	g := eng.interp.Glossary()

	var words []string
	for _, def := range g.Definitions() {
		words = append(words, g.WordsFor(def.ID())...)
	}
	return words
}

// HelpText gives a listing of every command and verb in g along with the
// words that invoke it and, for verbs, the structure of each usage.
func HelpText(g *glossary.Glossary) string {
	var entries [][2]string

	for _, def := range g.Definitions() {
		words := strings.ToUpper(strings.Join(g.WordsFor(def.ID()), "/"))

		switch d := def.(type) {
		case *glossary.CommandDef:
			entries = append(entries, [2]string{words, "(command)"})
		case *glossary.VerbDef:
			var forms []string
			for _, u := range d.Usages() {
				if len(u.Structure) == 0 {
					forms = append(forms, d.ID())
				} else {
					forms = append(forms, d.ID()+" "+u.String())
				}
			}
			entries = append(entries, [2]string{words, strings.Join(forms, ", ")})
		}
	}

	if len(entries) == 0 {
		return "There is nothing you can do.\n"
	}

	return rosed.
		Edit("").
		WithOptions(rosed.Options{ParagraphSeparator: "\n"}).
		InsertDefinitionsTable(0, entries, consoleOutputWidth).
		Insert(0, "Here are the things you can do:\n").
		String() + "\n"
}

// Package input contains the readers that supply lines of player input to the
// interpreter, either from a terminal or from any other stream.
package input

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"
)

// DirectReader implements command.Reader and reads lines from any generic
// input stream directly. It does not sanitize the input of control and escape
// sequences.
//
// DirectReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// Create a new DirectReader and initialize a buffered reader on the provided
// reader.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{
		r: bufio.NewReader(r),
	}
}

// Close cleans up resources associated with the DirectReader. It currently
// holds none but callers should still treat it as needing Close.
func (dr *DirectReader) Close() error {
	return nil
}

// ReadCommand reads the next line. The returned string will only be empty if
// there is an error reading input, otherwise this function is blocked on until
// a line containing non-space characters is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dr *DirectReader) ReadCommand() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && dr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// AllowBlank sets whether blank lines are returned. By default they are
// skipped.
func (dr *DirectReader) AllowBlank(allow bool) {
	dr.blanksAllowed = allow
}

// InteractiveReader implements command.Reader and reads lines from stdin using
// a go implementation of the GNU Readline library. This keeps input clear of
// all typing and editing escape sequences, and enables command history and tab
// completion of known words. This should in general only be used when directly
// connected to a TTY.
//
// InteractiveReader should not be used directly; instead, create one with
// [NewInteractiveReader].
type InteractiveReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// Create a new InteractiveReader and initialize readline. If words is not nil,
// it is called on every completion request to get the words that may be
// completed. The returned InteractiveReader must have Close() called on it
// before disposal to properly teardown readline resources.
func NewInteractiveReader(prompt string, words func() []string) (*InteractiveReader, error) {
	cfg := &readline.Config{
		Prompt: prompt,
	}
	if words != nil {
		cfg.AutoComplete = WordCompleter(words)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{
		rl:     rl,
		prompt: prompt,
	}, nil
}

// Close cleans up readline resources.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadCommand reads the next line from stdin. The returned string will only be
// empty if there is an error, otherwise this function is blocked on until a
// line consisting of more than empty or whitespace-only input is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (ir *InteractiveReader) ReadCommand() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && ir.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// AllowBlank sets whether blank lines are returned. By default they are
// skipped.
func (ir *InteractiveReader) AllowBlank(allow bool) {
	ir.blanksAllowed = allow
}

// SetPrompt updates the prompt to the given text.
func (ir *InteractiveReader) SetPrompt(p string) {
	ir.rl.SetPrompt(p)
	ir.prompt = p
}

// GetPrompt gets the current prompt.
func (ir *InteractiveReader) GetPrompt() string {
	return ir.prompt
}

// WordCompleter is a readline.AutoCompleter that completes the word under the
// cursor from the words returned by the function.
type WordCompleter func() []string

// Do returns the suffixes of every known word that starts with the partial
// word ending at pos, along with the length of that partial word.
func (wc WordCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	start := pos
	for start > 0 && line[start-1] != ' ' {
		start--
	}
	partial := strings.ToLower(string(line[start:pos]))

	words := wc()
	sort.Strings(words)
	for _, w := range words {
		if strings.HasPrefix(w, partial) && len(w) > len(partial) {
			newLine = append(newLine, []rune(w[len(partial):]+" "))
		}
	}

	return newLine, len([]rune(partial))
}

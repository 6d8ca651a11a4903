// Package input contains identifiers used in getting grammar rules typed in
// from the CLI or other sources of line input.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/rg2nfa/internal/grammar"
)

const (
	DefaultPrompt             = "rule> "
	DefaultContinuationPrompt = "    | "
)

// LineReader reads lines of text one at a time.
type LineReader interface {
	// ReadLine reads the next line. At end of input, the returned error is
	// io.EOF.
	ReadLine() (string, error)

	// AllowBlank sets whether ReadLine returns blank lines or skips them.
	AllowBlank(allow bool)

	// SetPrompt sets the text shown to the user before a line is read.
	SetPrompt(p string)

	Close() error
}

// DirectLineReader implements LineReader and reads lines from any generic
// input stream directly. It can be used generically with any io.Reader but
// does not sanitize the input of control and escape sequences.
//
// DirectLineReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectLineReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveLineReader implements LineReader and reads lines from stdin using
// a go implementation of the GNU Readline library. This keeps input clear of
// all typing and editing escape sequences and enables the use of history. This
// should in general probably only be used when directly connecting to a TTY
// for input.
//
// InteractiveLineReader should not be used directly; instead, create one with
// [NewInteractiveReader].
type InteractiveLineReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewDirectReader creates a new DirectLineReader and initializes a buffered
// reader on the provided reader.
func NewDirectReader(r io.Reader) *DirectLineReader {
	return &DirectLineReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates a new InteractiveLineReader and initializes
// readline. The returned InteractiveLineReader must have Close() called on it
// before disposal to properly teardown readline resources.
func NewInteractiveReader() (*InteractiveLineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: DefaultPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveLineReader{
		rl:     rl,
		prompt: DefaultPrompt,
	}, nil
}

// Close cleans up resources associated with the DirectLineReader.
func (dlr *DirectLineReader) Close() error {
	return nil
}

// Close cleans up readline resources and other resources associated with the
// InteractiveLineReader.
func (ilr *InteractiveLineReader) Close() error {
	return ilr.rl.Close()
}

// ReadLine reads the next line of input. Unless blank lines are allowed, this
// function blocks until a line containing non-space characters is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dlr *DirectLineReader) ReadLine() (string, error) {
	for {
		line, err := dlr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line != "" || dlr.blanksAllowed {
			return line, nil
		}
	}
}

// ReadLine reads the next line from stdin. Unless blank lines are allowed,
// this function blocks until a line containing non-space characters is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (ilr *InteractiveLineReader) ReadLine() (string, error) {
	for {
		line, err := ilr.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line != "" || ilr.blanksAllowed {
			return line, nil
		}
	}
}

// AllowBlank sets whether blank output is allowed. By default it is not.
func (dlr *DirectLineReader) AllowBlank(allow bool) {
	dlr.blanksAllowed = allow
}

// AllowBlank sets whether blank output is allowed. By default it is not.
func (ilr *InteractiveLineReader) AllowBlank(allow bool) {
	ilr.blanksAllowed = allow
}

// SetPrompt does nothing; a DirectLineReader shows no prompt.
func (dlr *DirectLineReader) SetPrompt(p string) {}

// SetPrompt updates the prompt to the given text.
func (ilr *InteractiveLineReader) SetPrompt(p string) {
	ilr.prompt = p
	ilr.rl.SetPrompt(p)
}

// GetPrompt gets the current prompt.
func (ilr *InteractiveLineReader) GetPrompt() string {
	return ilr.prompt
}

// ReadGrammarText reads grammar rules from lr until a blank line or the end of
// input, and returns them as one block of text. While a rule is continued onto
// the next line, the continuation prompt is shown instead of the normal one
// and a blank line does not end entry.
func ReadGrammarText(lr LineReader) (string, error) {
	var lines []string
	var continuing bool

	lr.AllowBlank(true)
	defer lr.AllowBlank(false)

	for {
		if continuing {
			lr.SetPrompt(DefaultContinuationPrompt)
		} else {
			lr.SetPrompt(DefaultPrompt)
		}

		line, err := lr.ReadLine()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		}

		if line == "" {
			if continuing {
				continue
			}
			break
		}

		lines = append(lines, line)
		continuing = strings.HasSuffix(line, grammar.Continuation)
	}

	lr.SetPrompt(DefaultPrompt)

	if len(lines) < 1 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

package rg2nfa

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/rg2nfa/internal/input"
	"github.com/dekarrin/rg2nfa/internal/rgerr"
	"github.com/dekarrin/rosed"
)

// Session reads a grammar typed in at a console, converts it, and writes its
// table to a file. A grammar that fails to convert is reported and the user is
// asked for another one.
type Session struct {
	conv        Converter
	in          input.LineReader
	out         *bufio.Writer
	forceDirect bool
	running     bool
}

// NewSession creates a new Session ready to operate on the given input and
// output streams. It will immediately open a buffered reader on the input
// stream and a buffered writer on the output stream.
//
// If nil is given for the input stream, stdin is used. If nil is given for the
// output stream, stdout is used. Readline is used for input only when both
// streams are the standard ones and forceDirectInput is false.
func NewSession(conv Converter, inputStream io.Reader, outputStream io.Writer, forceDirectInput bool) (*Session, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	sess := &Session{
		conv:        conv,
		out:         bufio.NewWriter(outputStream),
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	if useReadline {
		var err error
		sess.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		sess.in = input.NewDirectReader(inputStream)
	}

	return sess, nil
}

// Close closes all resources associated with the Session, including any
// readline-related resources created for interactive mode.
func (sess *Session) Close() error {
	if sess.running {
		return fmt.Errorf("cannot close a running session")
	}

	err := sess.in.Close()
	if err != nil {
		return fmt.Errorf("close line reader: %w", err)
	}

	return nil
}

// Run reads grammars until one converts successfully, then prints a summary
// of the conversion and writes the table to outPath. If the input ends or a
// blank line is entered before any rule, Run returns without writing anything.
// If that happens after a grammar failed to convert, the returned error wraps
// the last conversion error.
func (sess *Session) Run(outPath string) error {
	introMsg := "rg2nfa: enter grammar rules, then a blank line to convert\n"
	if sess.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "==========================================================\n"

	if err := sess.write(introMsg); err != nil {
		return err
	}

	sess.running = true
	defer func() {
		sess.running = false
	}()

	var lastErr error
	for {
		src, err := input.ReadGrammarText(sess.in)
		if err != nil {
			return fmt.Errorf("read grammar: %w", err)
		}
		if src == "" {
			if lastErr != nil {
				return fmt.Errorf("no grammar was converted: %w", lastErr)
			}
			return sess.write("No grammar entered\n")
		}

		res, err := sess.conv.ConvertString(src)
		if err != nil {
			lastErr = err
			msg := "ERROR: " + rgerr.Detail(err)
			msg = rosed.Edit(msg).Wrap(sess.conv.Config().Width).String()
			if err := sess.write(msg + "\nPlease enter the grammar again.\n"); err != nil {
				return err
			}
			continue
		}

		if err := sess.write(sess.conv.Describe(res) + "\n"); err != nil {
			return err
		}

		if err := sess.conv.WriteTable(outPath, res.Table); err != nil {
			return err
		}

		return sess.write("Wrote table to " + outPath + "\n")
	}
}

func (sess *Session) write(s string) error {
	if _, err := sess.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := sess.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

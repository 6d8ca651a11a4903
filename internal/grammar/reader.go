package grammar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/rg2nfa/internal/rgerr"
)

// Continuation is the text that, when it ends a physical line, continues the
// rule onto the next line.
const Continuation = "|"

// MaxLineLength is the longest physical line, in bytes, that ReadRules
// accepts.
const MaxLineLength = 1 << 20

// LineJoiner accumulates physical lines into logical rule lines. A line whose
// trimmed text ends in Continuation is held and the next line is appended to
// it.
//
// The zero value is ready to use.
type LineJoiner struct {
	accum     strings.Builder
	startLine int
	lineNum   int
}

// Feed gives the next physical line to the joiner. If it completes a logical
// line, that line and the physical line number it started on are returned with
// ok set to true. Blank lines that are not part of a continuation are skipped.
func (lj *LineJoiner) Feed(line string) (logical string, startLine int, ok bool) {
	lj.lineNum++
	line = strings.TrimRight(line, " \t\r\n")

	if lj.accum.Len() == 0 {
		if strings.TrimSpace(line) == "" {
			return "", 0, false
		}
		lj.startLine = lj.lineNum
	}

	lj.accum.WriteString(line)
	if strings.HasSuffix(line, Continuation) {
		lj.accum.WriteRune(' ')
		return "", 0, false
	}

	return lj.take()
}

// Pending returns whether a continued line has been started but not finished.
func (lj *LineJoiner) Pending() bool {
	return lj.accum.Len() > 0
}

// Flush returns any held logical line as-is, even though it ended in a
// continuation. It is meant to be called at the end of input.
func (lj *LineJoiner) Flush() (logical string, startLine int, ok bool) {
	if lj.accum.Len() == 0 {
		return "", 0, false
	}
	return lj.take()
}

func (lj *LineJoiner) take() (string, int, bool) {
	logical := strings.TrimSpace(lj.accum.String())
	start := lj.startLine
	lj.accum.Reset()
	lj.startLine = 0
	return logical, start, true
}

// ReadRules reads all logical rule lines from r and classifies each one. The
// first line that cannot be classified stops reading and its error, caused by
// rgerr.ErrMalformedRule, is returned. Errors reading from r are caused by
// rgerr.ErrInputAccess.
//
// A physical line longer than MaxLineLength gives an error caused by
// rgerr.ErrMalformedRule.
//
// Reading an input with no rules is not an error here; Resolve reports it.
func ReadRules(r io.Reader) ([]RuleMatch, error) {
	var matches []RuleMatch
	var joiner LineJoiner

	classifyLine := func(logical string, lineNum int) error {
		m, err := Classify(logical)
		if err != nil {
			return rgerr.New(fmt.Sprintf("line %d", lineNum), err)
		}
		m.Line = lineNum
		matches = append(matches, m)
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

	physLines := 0
	for sc.Scan() {
		physLines++
		logical, lineNum, ok := joiner.Feed(sc.Text())
		if !ok {
			continue
		}
		if err := classifyLine(logical, lineNum); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			msg := fmt.Sprintf("line %d: longer than %d bytes", physLines+1, MaxLineLength)
			return nil, rgerr.New(msg, rgerr.ErrMalformedRule, err)
		}
		return nil, rgerr.New("read rules", rgerr.ErrInputAccess, err)
	}

	if logical, lineNum, ok := joiner.Flush(); ok {
		if err := classifyLine(logical, lineNum); err != nil {
			return nil, err
		}
	}

	return matches, nil
}

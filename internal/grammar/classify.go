package grammar

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dekarrin/rg2nfa/internal/rgerr"
)

// Shape is the production shape a rule line was found to have.
type Shape int

const (
	// ShapeNone is the shape of a line that matches no rule pattern.
	ShapeNone Shape = iota

	// ShapeLeft is the shape of a rule whose alternatives are an optional
	// non-terminal reference followed by a single terminal.
	ShapeLeft

	// ShapeRight is the shape of a rule whose alternatives are a single
	// terminal optionally followed by a non-terminal reference.
	ShapeRight

	// ShapeBoth is the shape of a rule that matches both patterns; every one
	// of its alternatives is a lone terminal or the epsilon marker.
	ShapeBoth
)

func (s Shape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeLeft:
		return "left-linear"
	case ShapeRight:
		return "right-linear"
	case ShapeBoth:
		return "left- or right-linear"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Fits returns whether a rule of shape s may appear in a grammar whose
// construction follows shape other. ShapeBoth fits either.
func (s Shape) Fits(other Shape) bool {
	if s == ShapeBoth || other == ShapeBoth {
		return s != ShapeNone && other != ShapeNone
	}
	return s == other && s != ShapeNone
}

const (
	patNonTerm  = `<\w+>`
	patTerminal = `[^\s<>|]+`
	patLeftAlt  = `(?:` + patNonTerm + `\s+)?` + patTerminal
	patRightAlt = patTerminal + `(?:\s+` + patNonTerm + `)?`
	patHead     = `^\s*<(\w+)>\s*->\s*`
)

var (
	leftLinearRegex  = regexp.MustCompile(patHead + `(` + patLeftAlt + `(?:\s*\|\s*` + patLeftAlt + `)*)\s*$`)
	rightLinearRegex = regexp.MustCompile(patHead + `(` + patRightAlt + `(?:\s*\|\s*` + patRightAlt + `)*)\s*$`)
)

// RuleMatch is a single logical rule line that has been matched against the
// rule patterns but not yet added to a Grammar.
type RuleMatch struct {
	// Line is the 1-indexed number of the physical line the rule began on. It
	// is 0 if the rule did not come from a numbered source.
	Line int

	// Text is the full logical line, after continuation joining.
	Text string

	// NonTerminal is the name of the non-terminal on the left-hand side,
	// without angle brackets.
	NonTerminal string

	// Alternatives are the raw '|'-separated right-hand sides, trimmed.
	Alternatives []string

	// Shape is which rule patterns the line matched.
	Shape Shape
}

func (rm RuleMatch) String() string {
	return fmt.Sprintf("<%s> -> %s", rm.NonTerminal, strings.Join(rm.Alternatives, " | "))
}

// Classify matches a single logical rule line against the left-linear and the
// right-linear rule patterns. If it matches neither, an error caused by
// rgerr.ErrMalformedRule is returned. A line that matches both is given
// ShapeBoth; deciding what such a line means for the grammar is left to
// Resolve.
func Classify(line string) (RuleMatch, error) {
	leftMatch := leftLinearRegex.FindStringSubmatch(line)
	rightMatch := rightLinearRegex.FindStringSubmatch(line)

	var m []string
	shape := ShapeNone

	if leftMatch != nil && rightMatch != nil {
		shape = ShapeBoth
		m = leftMatch
	} else if leftMatch != nil {
		shape = ShapeLeft
		m = leftMatch
	} else if rightMatch != nil {
		shape = ShapeRight
		m = rightMatch
	} else {
		return RuleMatch{}, rgerr.New(fmt.Sprintf("%q", strings.TrimSpace(line)), rgerr.ErrMalformedRule)
	}

	alts := strings.Split(m[2], "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	return RuleMatch{
		Text:         line,
		NonTerminal:  m[1],
		Alternatives: alts,
		Shape:        shape,
	}, nil
}

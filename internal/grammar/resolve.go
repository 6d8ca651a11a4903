package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rg2nfa/internal/rgerr"
)

// DualPolicy is what to do with a grammar that mixes left-linear and
// right-linear rules.
type DualPolicy int

const (
	// DualReject fails resolution with rgerr.ErrInconsistentGrammarType.
	DualReject DualPolicy = iota

	// DualAsRight accepts the grammar and builds it with right-linear
	// construction.
	DualAsRight

	// DualAsLeft accepts the grammar and builds it with left-linear
	// construction.
	DualAsLeft
)

func (dp DualPolicy) String() string {
	switch dp {
	case DualReject:
		return "reject"
	case DualAsRight:
		return "right"
	case DualAsLeft:
		return "left"
	default:
		return fmt.Sprintf("DualPolicy(%d)", int(dp))
	}
}

// Construction returns the shape that a Dual grammar is built as under the
// policy. It is ShapeNone for DualReject.
func (dp DualPolicy) Construction() Shape {
	switch dp {
	case DualAsRight:
		return ShapeRight
	case DualAsLeft:
		return ShapeLeft
	default:
		return ShapeNone
	}
}

// ParseDualPolicy parses the name of a DualPolicy as given by its String
// method. Case is ignored.
func ParseDualPolicy(s string) (DualPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case DualReject.String():
		return DualReject, nil
	case DualAsRight.String():
		return DualAsRight, nil
	case DualAsLeft.String():
		return DualAsLeft, nil
	default:
		return DualReject, fmt.Errorf("dual policy not one of 'reject', 'right', or 'left': %q", s)
	}
}

// Resolve decides the Linearity of the grammar made up of the given rules.
//
// Rules of ShapeBoth do not decide anything on their own. If there are no
// rules at all, the returned error is caused by rgerr.ErrUnknownGrammarType.
// If every rule is ShapeBoth, the grammar is LeftLinear. Otherwise the rules
// of ShapeLeft and ShapeRight must agree; if they do not, the grammar is Dual
// when policy allows it, and when it does not the returned error is caused by
// rgerr.ErrInconsistentGrammarType and names the first rule that disagrees
// with the rules before it.
func Resolve(matches []RuleMatch, policy DualPolicy) (Linearity, error) {
	if len(matches) < 1 {
		return Unknown, rgerr.New("", rgerr.ErrUnknownGrammarType)
	}

	var first *RuleMatch
	var conflict *RuleMatch

	for i := range matches {
		m := &matches[i]

		switch m.Shape {
		case ShapeLeft, ShapeRight:
			if first == nil {
				first = m
			} else if m.Shape != first.Shape && conflict == nil {
				conflict = m
			}
		case ShapeBoth:
			// neutral
		default:
			return Unknown, rgerr.New(describeRule(*m), rgerr.ErrMalformedRule)
		}
	}

	if first == nil {
		return LeftLinear, nil
	}

	if conflict != nil {
		if policy == DualReject {
			msg := fmt.Sprintf("%s is %s but %s is %s", describeRule(*conflict), conflict.Shape, describeRule(*first), first.Shape)
			return Unknown, rgerr.New(msg, rgerr.ErrInconsistentGrammarType)
		}
		return Dual, nil
	}

	if first.Shape == ShapeLeft {
		return LeftLinear, nil
	}
	return RightLinear, nil
}

func describeRule(m RuleMatch) string {
	text := strings.TrimSpace(m.Text)
	if text == "" {
		text = m.String()
	}

	if m.Line > 0 {
		return fmt.Sprintf("line %d (%q)", m.Line, text)
	}
	return fmt.Sprintf("rule %q", text)
}

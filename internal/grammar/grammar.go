// Package grammar reads regular grammars written in linear form and holds them
// in a model ordered the way the rules were first seen.
//
// Reading happens in two phases. ReadRules joins continued lines and matches
// every logical rule against the left- and right-linear rule patterns, tagging
// each with its Shape. Resolve then looks at all of the tagged rules at once
// and decides the Linearity of the grammar. Build finally creates the
// immutable Grammar from the rules and the decided Linearity. Parse performs
// all three.
package grammar

import (
	"fmt"
	"io"
	"strings"
)

// Linearity is the classification of a grammar as a whole.
type Linearity int

const (
	// Unknown is the Linearity of a grammar that has not been classified.
	Unknown Linearity = iota

	// LeftLinear grammars have every non-terminal reference at the start of
	// its production.
	LeftLinear

	// RightLinear grammars have every non-terminal reference at the end of its
	// production.
	RightLinear

	// Dual grammars mix left- and right-linear rules. They are only produced
	// when a DualPolicy other than DualReject is used.
	Dual
)

func (lin Linearity) String() string {
	switch lin {
	case Unknown:
		return "unknown"
	case LeftLinear:
		return "left-linear"
	case RightLinear:
		return "right-linear"
	case Dual:
		return "dual"
	default:
		return fmt.Sprintf("Linearity(%d)", int(lin))
	}
}

// Production is a single alternative of a rule, as the sequence of symbols it
// was written with. Non-terminal references keep their angle brackets.
type Production []string

// Copy returns a deep copy of p.
func (p Production) Copy() Production {
	cp := make(Production, len(p))
	copy(cp, p)
	return cp
}

// IsEpsilon returns whether p is the empty alternative.
func (p Production) IsEpsilon() bool {
	return len(p) == 1 && IsEpsilon(p[0])
}

func (p Production) String() string {
	return strings.Join(p, " ")
}

// Grammar is a regular grammar in linear form. The zero value is an empty
// grammar of Unknown linearity; use Build or Parse to create one with rules.
//
// A Grammar is not modified after it is built.
type Grammar struct {
	rules        map[string][]Production
	nonTerminals []string
	terminals    []string
	linearity    Linearity
	construction Shape
}

// Parse reads every rule in r and returns the Grammar they make up. If the
// rules are a mix of left- and right-linear rules, policy determines whether
// that is an error.
func Parse(r io.Reader, policy DualPolicy) (Grammar, error) {
	matches, err := ReadRules(r)
	if err != nil {
		return Grammar{}, err
	}

	lin, err := Resolve(matches, policy)
	if err != nil {
		return Grammar{}, err
	}

	return Build(matches, lin, policy), nil
}

// MustParse is like Parse but panics on error. It uses DualReject. It is
// intended for use with grammars known to be valid, such as in tests.
func MustParse(s string) Grammar {
	g, err := Parse(strings.NewReader(s), DualReject)
	if err != nil {
		panic(err.Error())
	}
	return g
}

// Build creates a Grammar from already-resolved rule matches. The policy is
// only consulted when lin is Dual, to decide which construction the grammar
// uses.
func Build(matches []RuleMatch, lin Linearity, policy DualPolicy) Grammar {
	g := Grammar{
		rules:     map[string][]Production{},
		linearity: lin,
	}

	switch lin {
	case LeftLinear:
		g.construction = ShapeLeft
	case RightLinear:
		g.construction = ShapeRight
	case Dual:
		g.construction = policy.Construction()
	}

	for i := range matches {
		g.addRule(matches[i].NonTerminal, matches[i].Alternatives)
	}

	return g
}

func (g *Grammar) addRule(nonTerminal string, alternatives []string) {
	if _, ok := g.rules[nonTerminal]; !ok {
		g.nonTerminals = append(g.nonTerminals, nonTerminal)
		g.rules[nonTerminal] = nil
	}

	for _, alt := range alternatives {
		prod := Production(strings.Fields(alt))
		if len(prod) < 1 {
			continue
		}

		for _, sym := range prod {
			if IsTerminal(sym) && g.TerminalIndex(sym) < 0 {
				g.terminals = append(g.terminals, sym)
			}
		}

		g.rules[nonTerminal] = append(g.rules[nonTerminal], prod)
	}
}

// Linearity returns the classification of the grammar.
func (g Grammar) Linearity() Linearity {
	return g.linearity
}

// Construction returns the rule shape the grammar is built as. For left- and
// right-linear grammars this follows directly from the linearity; for Dual
// grammars it is the shape chosen by the DualPolicy. It is ShapeNone for an
// unclassified grammar.
func (g Grammar) Construction() Shape {
	return g.construction
}

// NonTerminals returns the names of all non-terminals that have rules, in the
// order they were first seen. The first is the start symbol.
func (g Grammar) NonTerminals() []string {
	nts := make([]string, len(g.nonTerminals))
	copy(nts, g.nonTerminals)
	return nts
}

// Terminals returns all terminals used in any production, in the order they
// were first seen. The epsilon marker is never included.
func (g Grammar) Terminals() []string {
	ts := make([]string, len(g.terminals))
	copy(ts, g.terminals)
	return ts
}

// StartSymbol returns the name of the first non-terminal seen. It is the empty
// string for an empty grammar.
func (g Grammar) StartSymbol() string {
	if len(g.nonTerminals) < 1 {
		return ""
	}
	return g.nonTerminals[0]
}

// Productions returns copies of the productions of the given non-terminal in
// the order they were added. It returns nil if the non-terminal has no rule.
func (g Grammar) Productions(nonTerminal string) []Production {
	prods, ok := g.rules[nonTerminal]
	if !ok {
		return nil
	}

	cp := make([]Production, len(prods))
	for i := range prods {
		cp[i] = prods[i].Copy()
	}
	return cp
}

// NonTerminalIndex returns the position of the named non-terminal in
// NonTerminals, or -1 if it has no rule in the grammar.
func (g Grammar) NonTerminalIndex(name string) int {
	for i := range g.nonTerminals {
		if g.nonTerminals[i] == name {
			return i
		}
	}
	return -1
}

// TerminalIndex returns the position of the terminal in Terminals, or -1 if it
// is not used in the grammar.
func (g Grammar) TerminalIndex(sym string) int {
	for i := range g.terminals {
		if g.terminals[i] == sym {
			return i
		}
	}
	return -1
}

// ProductionCount returns the total number of productions across all rules.
func (g Grammar) ProductionCount() int {
	var count int
	for _, prods := range g.rules {
		count += len(prods)
	}
	return count
}

// String gives the grammar in the same notation it is read in, one rule per
// line in the order the non-terminals were first seen.
func (g Grammar) String() string {
	var sb strings.Builder

	for i, nt := range g.nonTerminals {
		sb.WriteRune('<')
		sb.WriteString(nt)
		sb.WriteString("> -> ")

		prods := g.rules[nt]
		for j := range prods {
			sb.WriteString(prods[j].String())
			if j+1 < len(prods) {
				sb.WriteString(" | ")
			}
		}

		if i+1 < len(g.nonTerminals) {
			sb.WriteRune('\n')
		}
	}

	return sb.String()
}

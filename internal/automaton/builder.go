package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rg2nfa/internal/grammar"
	"github.com/dekarrin/rg2nfa/internal/rgerr"
)

// DefaultStatePrefix is prepended to the number of a state to give its name.
const DefaultStatePrefix = "q"

// UndeclaredPolicy is what to do with a production that refers to a
// non-terminal that has no rule of its own.
type UndeclaredPolicy int

const (
	// UndeclaredDrop leaves the production out of the automaton and records it
	// in the list of dropped productions.
	UndeclaredDrop UndeclaredPolicy = iota

	// UndeclaredReject fails the build with rgerr.ErrUndeclaredNonTerminal.
	UndeclaredReject
)

func (up UndeclaredPolicy) String() string {
	switch up {
	case UndeclaredDrop:
		return "drop"
	case UndeclaredReject:
		return "reject"
	default:
		return fmt.Sprintf("UndeclaredPolicy(%d)", int(up))
	}
}

// ParseUndeclaredPolicy parses the name of an UndeclaredPolicy as given by its
// String method. Case is ignored.
func ParseUndeclaredPolicy(s string) (UndeclaredPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case UndeclaredDrop.String():
		return UndeclaredDrop, nil
	case UndeclaredReject.String():
		return UndeclaredReject, nil
	default:
		return UndeclaredDrop, fmt.Errorf("undeclared policy not one of 'drop' or 'reject': %q", s)
	}
}

// DropReason is why a production was left out of an automaton.
type DropReason int

const (
	// DropUndeclared is for productions that refer to a non-terminal with no
	// rule of its own.
	DropUndeclared DropReason = iota

	// DropShape is for productions whose shape does not fit the construction
	// used for the grammar. Only Dual grammars can have them.
	DropShape
)

func (dr DropReason) String() string {
	switch dr {
	case DropUndeclared:
		return "undeclared non-terminal"
	case DropShape:
		return "shape does not fit construction"
	default:
		return fmt.Sprintf("DropReason(%d)", int(dr))
	}
}

// Dropped is a production that was left out of an automaton.
type Dropped struct {
	NonTerminal string
	Production  grammar.Production
	Reason      DropReason
}

func (d Dropped) String() string {
	return fmt.Sprintf("<%s> -> %s (%s)", d.NonTerminal, d.Production, d.Reason)
}

// StateAssignment maps the non-terminals of a grammar onto automaton states.
// State i is for the i-th non-terminal in first-seen order, and state n, where
// n is the number of non-terminals, is a synthetic state with no non-terminal.
type StateAssignment struct {
	// Names holds the name of every state, indexed by state number.
	Names []string

	// Synthetic is the number of the synthetic state.
	Synthetic int

	// Accepting is the number of the single accepting state.
	Accepting int

	// Start is the number of the state the automaton starts in.
	Start int

	// Orientation is the order the states are laid out in.
	Orientation Orientation

	// Construction is the rule shape used to create transitions.
	Construction grammar.Shape

	nonTerminals map[string]int
}

// AssignStates creates the states for g. There is one state per non-terminal
// plus the synthetic state, named with prefix followed by the state number.
//
// Right-linear construction accepts in the synthetic state, starts in state 0
// and is laid out Forward. Left-linear construction accepts in state 0 (the
// start symbol), starts in the synthetic state and is laid out in Reverse.
func AssignStates(g grammar.Grammar, prefix string) StateAssignment {
	nts := g.NonTerminals()
	n := len(nts)

	sa := StateAssignment{
		Names:        make([]string, n+1),
		Synthetic:    n,
		Construction: g.Construction(),
		nonTerminals: make(map[string]int, n),
	}

	for i := 0; i <= n; i++ {
		sa.Names[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	for i := range nts {
		sa.nonTerminals[nts[i]] = i
	}

	if sa.Construction == grammar.ShapeLeft {
		sa.Accepting = 0
		sa.Start = n
		sa.Orientation = Reverse
	} else {
		sa.Accepting = n
		sa.Start = 0
		sa.Orientation = Forward
	}

	return sa
}

// StateOf returns the number of the state assigned to the named non-terminal.
// If the non-terminal has no rule in the grammar, ok will be false.
func (sa StateAssignment) StateOf(nonTerminal string) (state int, ok bool) {
	state, ok = sa.nonTerminals[nonTerminal]
	return state, ok
}

// Len returns the number of states.
func (sa StateAssignment) Len() int {
	return len(sa.Names)
}

// NewNFA creates an NFA holding the assigned states and no transitions.
func (sa StateAssignment) NewNFA() NFA {
	var nfa NFA
	for i := range sa.Names {
		nfa.AddState(sa.Names[i], i == sa.Accepting)
	}
	if len(sa.Names) > 0 {
		nfa.Start = sa.Names[sa.Start]
	}
	return nfa
}

// edge is a transition between numbered states, before it is added to an NFA.
type edge struct {
	from  int
	input string
	to    int
}

// BuildTransitions walks every production of g and creates the NFA for it
// using the states in sa.
//
// For right-linear construction, a production's leading symbol labels a move
// from the state of its non-terminal to the state of the referenced
// non-terminal, or to the synthetic state if there is no reference. For
// left-linear construction, a production's trailing symbol labels a move from
// the state of the referenced non-terminal, or from the synthetic start state
// if there is no reference, to the state of its non-terminal. An epsilon label
// gives an epsilon move.
//
// Productions that refer to a non-terminal with no rule are handled according
// to policy. Productions that do not fit the construction are always dropped.
// All dropped productions are returned in the order they were encountered.
func BuildTransitions(g grammar.Grammar, sa StateAssignment, policy UndeclaredPolicy) (NFA, []Dropped, error) {
	nfa := sa.NewNFA()
	var dropped []Dropped

	for i, nt := range g.NonTerminals() {
		for _, prod := range g.Productions(nt) {
			var e edge
			var ok bool
			var undeclared string

			if sa.Construction == grammar.ShapeLeft {
				e, ok, undeclared = leftEdge(sa, i, prod)
			} else {
				e, ok, undeclared = rightEdge(sa, i, prod)
			}

			if !ok {
				drop := Dropped{NonTerminal: nt, Production: prod, Reason: DropShape}
				if undeclared != "" {
					if policy == UndeclaredReject {
						msg := fmt.Sprintf("<%s> -> %s refers to <%s>", nt, prod, undeclared)
						return NFA{}, nil, rgerr.New(msg, rgerr.ErrUndeclaredNonTerminal)
					}
					drop.Reason = DropUndeclared
				}
				dropped = append(dropped, drop)
				continue
			}

			nfa.AddTransition(sa.Names[e.from], e.input, sa.Names[e.to])
		}
	}

	return nfa, dropped, nil
}

// rightEdge gives the move for a production of non-terminal state i under
// right-linear construction. If the production has no move, ok is false, and
// if that is because of a reference to an undeclared non-terminal, its name is
// returned as undeclared.
func rightEdge(sa StateAssignment, i int, prod grammar.Production) (e edge, ok bool, undeclared string) {
	label, labelOK := inputFor(prod[0])
	if !labelOK {
		return edge{}, false, ""
	}

	switch len(prod) {
	case 1:
		return edge{from: i, input: label, to: sa.Synthetic}, true, ""
	case 2:
		refName, isRef := grammar.NonTerminalName(prod[1])
		if !isRef {
			return edge{}, false, ""
		}
		target, declared := sa.StateOf(refName)
		if !declared {
			return edge{}, false, refName
		}
		return edge{from: i, input: label, to: target}, true, ""
	default:
		return edge{}, false, ""
	}
}

// leftEdge is like rightEdge but for left-linear construction.
func leftEdge(sa StateAssignment, i int, prod grammar.Production) (e edge, ok bool, undeclared string) {
	label, labelOK := inputFor(prod[len(prod)-1])
	if !labelOK {
		return edge{}, false, ""
	}

	switch len(prod) {
	case 1:
		return edge{from: sa.Synthetic, input: label, to: i}, true, ""
	case 2:
		refName, isRef := grammar.NonTerminalName(prod[0])
		if !isRef {
			return edge{}, false, ""
		}
		source, declared := sa.StateOf(refName)
		if !declared {
			return edge{}, false, refName
		}
		return edge{from: source, input: label, to: i}, true, ""
	default:
		return edge{}, false, ""
	}
}

// inputFor gives the NFA input for a production symbol used as a transition
// label. The epsilon marker gives the empty input. Non-terminals cannot be
// labels.
func inputFor(sym string) (input string, ok bool) {
	if grammar.IsEpsilon(sym) {
		return "", true
	}
	if grammar.IsTerminal(sym) {
		return sym, true
	}
	return "", false
}

// Options are the settings used by Build.
type Options struct {
	// StatePrefix is prepended to state numbers to name them. If empty,
	// DefaultStatePrefix is used.
	StatePrefix string

	// Undeclared is the policy for references to non-terminals that have no
	// rule.
	Undeclared UndeclaredPolicy
}

// Result is everything produced by converting a grammar into an automaton.
type Result struct {
	Grammar grammar.Grammar
	States  StateAssignment
	NFA     NFA
	Dropped []Dropped
	Table   Table
}

// Build converts g into an NFA and lays it out as a Table. The grammar must
// have been classified; an Unknown grammar gives an error caused by
// rgerr.ErrUnknownGrammarType.
func Build(g grammar.Grammar, opts Options) (Result, error) {
	if g.Construction() == grammar.ShapeNone {
		return Result{}, rgerr.New("build automaton", rgerr.ErrUnknownGrammarType)
	}

	prefix := opts.StatePrefix
	if prefix == "" {
		prefix = DefaultStatePrefix
	}

	sa := AssignStates(g, prefix)

	nfa, dropped, err := BuildTransitions(g, sa, opts.Undeclared)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Grammar: g,
		States:  sa,
		NFA:     nfa,
		Dropped: dropped,
		Table:   NewTable(nfa, sa, g.Terminals()),
	}, nil
}

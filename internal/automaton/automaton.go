// Package automaton builds non-deterministic finite automata from regular
// grammars in linear form and lays them out as transition tables.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/rg2nfa/internal/grammar"
	"github.com/dekarrin/rg2nfa/internal/util"
)

// Orientation is the order in which the states of an automaton are laid out
// when it is read left to right as input is consumed.
type Orientation int

const (
	// Forward lays states out in their natural numbering, q0 first.
	Forward Orientation = iota

	// Reverse lays states out in reverse numbering, with the highest-numbered
	// state first. Left-linear constructions use it because they are traversed
	// from the synthetic state back toward the start symbol.
	Reverse
)

func (o Orientation) String() string {
	switch o {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Order returns the indexes 0 through n-1 in the order given by the
// orientation.
func (o Orientation) Order(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if o == Reverse {
		return util.Reversed(idx)
	}
	return idx
}

// FATransition is a single move of an automaton on an input symbol. An empty
// input denotes an epsilon move.
type FATransition struct {
	input string
	next  string
}

func (t FATransition) String() string {
	inp := t.input
	if inp == "" {
		inp = grammar.Epsilon
	}
	return fmt.Sprintf("=(%s)=> %s", inp, t.next)
}

// NFAState is a single state of an NFA.
type NFAState struct {
	name        string
	transitions map[string][]FATransition
	accepting   bool
}

// Copy returns a duplicate of the state that shares no mutable data with it.
func (ns NFAState) Copy() NFAState {
	copied := NFAState{
		name:        ns.name,
		accepting:   ns.accepting,
		transitions: make(map[string][]FATransition, len(ns.transitions)),
	}

	for k := range ns.transitions {
		trans := make([]FATransition, len(ns.transitions[k]))
		copy(trans, ns.transitions[k])
		copied.transitions[k] = trans
	}

	return copied
}

func (ns NFAState) String() string {
	var moves strings.Builder

	inputs := util.OrderedKeys(ns.transitions)

	for i, input := range inputs {
		var tStrings []string

		for _, t := range ns.transitions[input] {
			tStrings = append(tStrings, t.String())
		}

		sort.Strings(tStrings)

		for tIdx, t := range tStrings {
			moves.WriteString(t)
			if tIdx+1 < len(tStrings) || i+1 < len(inputs) {
				moves.WriteRune(',')
				moves.WriteRune(' ')
			}
		}
	}

	str := fmt.Sprintf("(%s [%s])", ns.name, moves.String())

	if ns.accepting {
		str = "(" + str + ")"
	}

	return str
}

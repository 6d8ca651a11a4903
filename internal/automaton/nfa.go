package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rg2nfa/internal/util"
)

// NFA is a non-deterministic finite automaton with named states. States keep
// the order they were added in, and the targets of the transitions on each
// input keep the order they were added in.
type NFA struct {
	states map[string]NFAState
	order  []string
	Start  string
}

// AcceptingStates returns the names of all accepting states.
func (nfa NFA) AcceptingStates() util.StringSet {
	accepting := util.NewStringSet()
	for _, name := range nfa.order {
		if nfa.states[name].accepting {
			accepting.Add(name)
		}
	}

	return accepting
}

// Copy returns a duplicate of this NFA.
func (nfa NFA) Copy() NFA {
	copied := NFA{
		Start:  nfa.Start,
		states: make(map[string]NFAState, len(nfa.states)),
		order:  make([]string, len(nfa.order)),
	}

	copy(copied.order, nfa.order)
	for k := range nfa.states {
		copied.states[k] = nfa.states[k].Copy()
	}

	return copied
}

// States returns the names of all states in the order they were added.
func (nfa NFA) States() []string {
	names := make([]string, len(nfa.order))
	copy(names, nfa.order)
	return names
}

// HasState returns whether the NFA has a state with the given name.
func (nfa NFA) HasState(state string) bool {
	_, ok := nfa.states[state]
	return ok
}

// IsAccepting returns whether the given state exists and is accepting.
func (nfa NFA) IsAccepting(state string) bool {
	return nfa.states[state].accepting
}

// InputSymbols returns the set of all input symbols processed by some
// transition in the NFA. An epsilon move is included as the empty string.
func (nfa NFA) InputSymbols() util.StringSet {
	symbols := util.NewStringSet()
	for sName := range nfa.states {
		st := nfa.states[sName]

		for a := range st.transitions {
			symbols.Add(a)
		}
	}

	return symbols
}

// HasEpsilonMoves returns whether any state has an epsilon move.
func (nfa NFA) HasEpsilonMoves() bool {
	return nfa.InputSymbols().Has("")
}

// Next returns the targets of the transitions from the given state on input,
// in the order they were added. It returns nil if there are none.
func (nfa NFA) Next(fromState string, input string) []string {
	st, ok := nfa.states[fromState]
	if !ok {
		return nil
	}

	var next []string
	for _, t := range st.transitions[input] {
		next = append(next, t.next)
	}
	return next
}

// TransitionCount returns the number of transitions in the NFA, counting each
// target of a non-deterministic move separately.
func (nfa NFA) TransitionCount() int {
	var count int
	for _, st := range nfa.states {
		for _, trans := range st.transitions {
			count += len(trans)
		}
	}
	return count
}

func (nfa NFA) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<START: %q, STATES:", nfa.Start))

	for i := range nfa.order {
		sb.WriteString("\n\t")
		sb.WriteString(nfa.states[nfa.order[i]].String())

		if i+1 < len(nfa.order) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}

	sb.WriteRune('>')

	return sb.String()
}

// AddState adds a new state to the NFA. If a state with that name already
// exists, this has no effect.
func (nfa *NFA) AddState(state string, accepting bool) {
	if _, ok := nfa.states[state]; ok {
		return
	}

	newState := NFAState{
		name:        state,
		transitions: make(map[string][]FATransition),
		accepting:   accepting,
	}

	if nfa.states == nil {
		nfa.states = map[string]NFAState{}
	}

	nfa.states[state] = newState
	nfa.order = append(nfa.order, state)
}

// AddTransition adds a move from fromState to toState on input. Use the empty
// string as input for an epsilon move. Both states must already exist or
// AddTransition panics. Adding a transition that already exists adds it again;
// Next will then give the target twice.
func (nfa *NFA) AddTransition(fromState string, input string, toState string) {
	curFromState, ok := nfa.states[fromState]

	if !ok {
		panic(fmt.Sprintf("add transition from non-existent state %q", fromState))
	}
	if _, ok := nfa.states[toState]; !ok {
		panic(fmt.Sprintf("add transition to non-existent state %q", toState))
	}

	curInputTransitions, ok := curFromState.transitions[input]
	if !ok {
		curInputTransitions = make([]FATransition, 0)
	}

	newTransition := FATransition{
		input: input,
		next:  toState,
	}

	curInputTransitions = append(curInputTransitions, newTransition)

	curFromState.transitions[input] = curInputTransitions
	nfa.states[fromState] = curFromState
}

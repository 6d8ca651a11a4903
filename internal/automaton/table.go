package automaton

import (
	"github.com/dekarrin/rg2nfa/internal/grammar"
)

// Table is the transition table of an automaton, laid out in the order it is
// meant to be read in. It has one column per state and one row per input
// symbol. Each cell holds the targets of the transitions from the column's
// state on the row's symbol, in the order they were added; a cell with no
// targets means there is no transition.
//
// If the automaton has epsilon moves, they are in a final row whose symbol is
// grammar.Epsilon.
type Table struct {
	Orientation Orientation

	// States are the names of the states, in column order.
	States []string

	// Accepting holds whether the state in the same position of States is an
	// accepting state.
	Accepting []bool

	// Symbols are the input symbols, in row order.
	Symbols []string

	// Cells is indexed by row and then by column.
	Cells [][][]string
}

// NewTable lays out nfa as a Table. Columns follow the orientation of sa and
// rows follow the order of terminals. Every cell is allocated before any
// transition is read, so the dimensions depend only on the number of states
// and terminals.
func NewTable(nfa NFA, sa StateAssignment, terminals []string) Table {
	symbols := make([]string, len(terminals))
	copy(symbols, terminals)

	inputs := make([]string, len(terminals))
	copy(inputs, terminals)

	if nfa.HasEpsilonMoves() {
		symbols = append(symbols, grammar.Epsilon)
		inputs = append(inputs, "")
	}

	order := sa.Orientation.Order(sa.Len())

	t := Table{
		Orientation: sa.Orientation,
		States:      make([]string, len(order)),
		Accepting:   make([]bool, len(order)),
		Symbols:     symbols,
		Cells:       make([][][]string, len(symbols)),
	}

	for col, stateNum := range order {
		t.States[col] = sa.Names[stateNum]
		t.Accepting[col] = stateNum == sa.Accepting
	}

	for row := range t.Cells {
		t.Cells[row] = make([][]string, len(order))
	}

	for row := range inputs {
		for col := range t.States {
			t.Cells[row][col] = nfa.Next(t.States[col], inputs[row])
		}
	}

	return t
}

// Cell returns the targets of the transitions on symbol from state. It returns
// nil if either is not in the table or if there are no such transitions.
func (t Table) Cell(symbol, state string) []string {
	row := indexOf(t.Symbols, symbol)
	col := indexOf(t.States, state)
	if row < 0 || col < 0 {
		return nil
	}
	return t.Cells[row][col]
}

// AcceptingStates returns the names of the accepting states in column order.
func (t Table) AcceptingStates() []string {
	var acc []string
	for i := range t.States {
		if t.Accepting[i] {
			acc = append(acc, t.States[i])
		}
	}
	return acc
}

// Equal returns whether o is a Table or *Table with the same layout and
// contents as t.
func (t Table) Equal(o any) bool {
	other, ok := o.(Table)
	if !ok {
		otherPtr, ok := o.(*Table)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if t.Orientation != other.Orientation {
		return false
	}
	if !equalStrings(t.States, other.States) || !equalStrings(t.Symbols, other.Symbols) {
		return false
	}
	if len(t.Accepting) != len(other.Accepting) {
		return false
	}
	for i := range t.Accepting {
		if t.Accepting[i] != other.Accepting[i] {
			return false
		}
	}
	if len(t.Cells) != len(other.Cells) {
		return false
	}
	for row := range t.Cells {
		if len(t.Cells[row]) != len(other.Cells[row]) {
			return false
		}
		for col := range t.Cells[row] {
			if !equalStrings(t.Cells[row][col], other.Cells[row][col]) {
				return false
			}
		}
	}

	return true
}

func indexOf(sl []string, s string) int {
	for i := range sl {
		if sl[i] == s {
			return i
		}
	}
	return -1
}

func equalStrings(sl1, sl2 []string) bool {
	if len(sl1) != len(sl2) {
		return false
	}
	for i := range sl1 {
		if sl1[i] != sl2[i] {
			return false
		}
	}
	return true
}

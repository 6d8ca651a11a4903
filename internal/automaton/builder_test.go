package automaton

import (
	"strings"
	"testing"

	"github.com/dekarrin/rg2nfa/internal/grammar"
	"github.com/dekarrin/rg2nfa/internal/rgerr"
	"github.com/stretchr/testify/assert"
)

func Test_AssignStates(t *testing.T) {
	testCases := []struct {
		name              string
		grammar           string
		policy            grammar.DualPolicy
		expectNames       []string
		expectAccepting   int
		expectStart       int
		expectOrientation Orientation
	}{
		{
			name:              "right-linear accepts in the synthetic state",
			grammar:           "<S> -> a <A> | b\n<A> -> a <A> | b",
			expectNames:       []string{"q0", "q1", "q2"},
			expectAccepting:   2,
			expectStart:       0,
			expectOrientation: Forward,
		},
		{
			name:              "left-linear accepts in state 0",
			grammar:           "<S> -> <A> a\n<A> -> b",
			expectNames:       []string{"q0", "q1", "q2"},
			expectAccepting:   0,
			expectStart:       2,
			expectOrientation: Reverse,
		},
		{
			name:              "single non-terminal",
			grammar:           "<S> -> <S> a | b | c",
			expectNames:       []string{"q0", "q1"},
			expectAccepting:   0,
			expectStart:       1,
			expectOrientation: Reverse,
		},
		{
			name:              "dual built as right",
			grammar:           "<S> -> a <A>\n<A> -> <S> b | c\n<B> -> d",
			policy:            grammar.DualAsRight,
			expectNames:       []string{"q0", "q1", "q2", "q3"},
			expectAccepting:   3,
			expectStart:       0,
			expectOrientation: Forward,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g, err := grammar.Parse(strings.NewReader(tc.grammar), tc.policy)
			if !assert.NoError(err) {
				return
			}

			actual := AssignStates(g, "q")

			assert.Equal(tc.expectNames, actual.Names)
			assert.Equal(len(g.NonTerminals()), actual.Synthetic)
			assert.Equal(tc.expectAccepting, actual.Accepting)
			assert.Equal(tc.expectStart, actual.Start)
			assert.Equal(tc.expectOrientation, actual.Orientation)

			for i, nt := range g.NonTerminals() {
				st, ok := actual.StateOf(nt)
				assert.True(ok)
				assert.Equal(i, st)
			}
			_, ok := actual.StateOf("nope")
			assert.False(ok)
		})
	}
}

func Test_Build(t *testing.T) {
	testCases := []struct {
		name            string
		grammar         string
		policy          grammar.DualPolicy
		expectStates    []string
		expectAccepting []string
		expectSymbols   []string
		expectCells     map[[2]string][]string
		expectDropped   []DropReason
	}{
		{
			name:            "right-linear scenario",
			grammar:         "<S> -> a <A> | b\n<A> -> a <A> | b",
			expectStates:    []string{"q0", "q1", "q2"},
			expectAccepting: []string{"q2"},
			expectSymbols:   []string{"a", "b"},
			expectCells: map[[2]string][]string{
				{"a", "q0"}: {"q1"},
				{"b", "q0"}: {"q2"},
				{"a", "q1"}: {"q1"},
				{"b", "q1"}: {"q2"},
				{"a", "q2"}: nil,
				{"b", "q2"}: nil,
			},
		},
		{
			name:            "left-linear scenario",
			grammar:         "<S> -> <A> a\n<A> -> b",
			expectStates:    []string{"q2", "q1", "q0"},
			expectAccepting: []string{"q0"},
			expectSymbols:   []string{"a", "b"},
			expectCells: map[[2]string][]string{
				{"a", "q1"}: {"q0"},
				{"b", "q2"}: {"q1"},
				{"a", "q2"}: nil,
				{"a", "q0"}: nil,
				{"b", "q1"}: nil,
				{"b", "q0"}: nil,
			},
		},
		{
			name:            "undeclared reference is dropped",
			grammar:         "<S> -> a <X> | b",
			expectStates:    []string{"q0", "q1"},
			expectAccepting: []string{"q1"},
			expectSymbols:   []string{"a", "b"},
			expectCells: map[[2]string][]string{
				{"a", "q0"}: nil,
				{"b", "q0"}: {"q1"},
			},
			expectDropped: []DropReason{DropUndeclared},
		},
		{
			name:            "non-deterministic targets keep production order",
			grammar:         "<S> -> a <A> | a <S> | b\n<A> -> b",
			expectStates:    []string{"q0", "q1", "q2"},
			expectAccepting: []string{"q2"},
			expectSymbols:   []string{"a", "b"},
			expectCells: map[[2]string][]string{
				{"a", "q0"}: {"q1", "q0"},
				{"b", "q0"}: {"q2"},
				{"b", "q1"}: {"q2"},
			},
		},
		{
			name:            "left-linear non-determinism from a shared source",
			grammar:         "<S> -> <A> a | <S> a\n<A> -> <A> a | b",
			expectStates:    []string{"q2", "q1", "q0"},
			expectAccepting: []string{"q0"},
			expectSymbols:   []string{"a", "b"},
			expectCells: map[[2]string][]string{
				{"a", "q1"}: {"q0", "q1"},
				{"a", "q0"}: {"q0"},
				{"b", "q2"}: {"q1"},
			},
		},
		{
			name:            "right-linear epsilon gives an epsilon row",
			grammar:         "<S> -> a <S> | ε",
			expectStates:    []string{"q0", "q1"},
			expectAccepting: []string{"q1"},
			expectSymbols:   []string{"a", "ε"},
			expectCells: map[[2]string][]string{
				{"a", "q0"}: {"q0"},
				{"ε", "q0"}: {"q1"},
				{"ε", "q1"}: nil,
			},
		},
		{
			name:            "left-linear epsilon leaves the start state",
			grammar:         "<S> -> <S> a | ε",
			expectStates:    []string{"q1", "q0"},
			expectAccepting: []string{"q0"},
			expectSymbols:   []string{"a", "ε"},
			expectCells: map[[2]string][]string{
				{"a", "q0"}: {"q0"},
				{"ε", "q1"}: {"q0"},
			},
		},
		{
			name:            "dual as right drops left-shaped productions",
			grammar:         "<S> -> a <A>\n<A> -> <S> b | c",
			policy:          grammar.DualAsRight,
			expectStates:    []string{"q0", "q1", "q2"},
			expectAccepting: []string{"q2"},
			expectSymbols:   []string{"a", "b", "c"},
			expectCells: map[[2]string][]string{
				{"a", "q0"}: {"q1"},
				{"c", "q1"}: {"q2"},
				{"b", "q0"}: nil,
				{"b", "q1"}: nil,
			},
			expectDropped: []DropReason{DropShape},
		},
		{
			name:            "dual as left drops right-shaped productions",
			grammar:         "<S> -> a <A>\n<A> -> <S> b | c",
			policy:          grammar.DualAsLeft,
			expectStates:    []string{"q2", "q1", "q0"},
			expectAccepting: []string{"q0"},
			expectSymbols:   []string{"a", "b", "c"},
			expectCells: map[[2]string][]string{
				{"b", "q0"}: {"q1"},
				{"c", "q2"}: {"q1"},
				{"a", "q1"}: nil,
			},
			expectDropped: []DropReason{DropShape},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g, err := grammar.Parse(strings.NewReader(tc.grammar), tc.policy)
			if !assert.NoError(err) {
				return
			}

			actual, err := Build(g, Options{})
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expectStates, actual.Table.States)
			assert.Equal(tc.expectAccepting, actual.Table.AcceptingStates())
			assert.Equal(tc.expectSymbols, actual.Table.Symbols)
			for key, expect := range tc.expectCells {
				assert.Equal(expect, actual.Table.Cell(key[0], key[1]), "cell (%s, %s)", key[0], key[1])
			}

			var actualDropped []DropReason
			for _, d := range actual.Dropped {
				actualDropped = append(actualDropped, d.Reason)
			}
			assert.Equal(tc.expectDropped, actualDropped)
		})
	}
}

func Test_Build_TableDimensions(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse("<S> -> a <A> | b <B>\n<A> -> c\n<B> -> a <S> | d")

	actual, err := Build(g, Options{})
	if !assert.NoError(err) {
		return
	}

	assert.Len(actual.Table.States, len(g.NonTerminals())+1)
	assert.Len(actual.Table.Cells, len(g.Terminals()))
	for _, row := range actual.Table.Cells {
		assert.Len(row, len(g.NonTerminals())+1)
	}
}

func Test_Build_EveryProductionGivesOneTransition(t *testing.T) {
	testCases := []struct {
		name    string
		grammar string
	}{
		{name: "right", grammar: "<S> -> a <A> | a <A> | b\n<A> -> a <S> | b <X> | ε"},
		{name: "left", grammar: "<S> -> <A> a | <A> a | b\n<A> -> <S> a | <X> b | c"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := grammar.MustParse(tc.grammar)

			actual, err := Build(g, Options{})
			if !assert.NoError(err) {
				return
			}

			var cellEntries int
			for _, row := range actual.Table.Cells {
				for _, cell := range row {
					cellEntries += len(cell)
				}
			}

			assert.Equal(g.ProductionCount(), cellEntries+len(actual.Dropped))
			assert.Equal(g.ProductionCount(), actual.NFA.TransitionCount()+len(actual.Dropped))
			assert.Len(actual.Dropped, 1)
		})
	}
}

func Test_Build_IsRepeatable(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse("<S> -> a <A> | b <S> | ε\n<A> -> a <A> | b <S> | c")

	first, err := Build(g, Options{})
	if !assert.NoError(err) {
		return
	}
	second, err := Build(g, Options{})
	if !assert.NoError(err) {
		return
	}

	assert.True(first.Table.Equal(second.Table))
	assert.Equal(first.NFA.String(), second.NFA.String())
}

func Test_Build_UndeclaredReject(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse("<S> -> a <X>")

	_, err := Build(g, Options{Undeclared: UndeclaredReject})

	assert.ErrorIs(err, rgerr.ErrUndeclaredNonTerminal)
	assert.Contains(err.Error(), "<X>")
}

func Test_Build_Unclassified(t *testing.T) {
	assert := assert.New(t)

	_, err := Build(grammar.Grammar{}, Options{})

	assert.ErrorIs(err, rgerr.ErrUnknownGrammarType)
}

func Test_Build_StatePrefix(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse("<S> -> a <S> | b")

	actual, err := Build(g, Options{StatePrefix: "s"})
	if !assert.NoError(err) {
		return
	}

	assert.Equal([]string{"s0", "s1"}, actual.Table.States)
	assert.Equal([]string{"s0"}, actual.Table.Cell("a", "s0"))
	assert.Equal("s0", actual.NFA.Start)
}

func Test_ParseUndeclaredPolicy(t *testing.T) {
	assert := assert.New(t)

	p, err := ParseUndeclaredPolicy("REJECT")
	assert.NoError(err)
	assert.Equal(UndeclaredReject, p)

	p, err = ParseUndeclaredPolicy("drop")
	assert.NoError(err)
	assert.Equal(UndeclaredDrop, p)

	_, err = ParseUndeclaredPolicy("ignore")
	assert.Error(err)
}

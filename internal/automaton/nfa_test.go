package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NFA_AddTransition(t *testing.T) {
	assert := assert.New(t)

	var nfa NFA
	nfa.AddState("q0", false)
	nfa.AddState("q1", true)
	nfa.AddState("q0", true)

	nfa.AddTransition("q0", "a", "q1")
	nfa.AddTransition("q0", "a", "q0")
	nfa.AddTransition("q0", "a", "q1")
	nfa.AddTransition("q1", "", "q0")

	assert.Equal([]string{"q0", "q1"}, nfa.States())
	assert.False(nfa.IsAccepting("q0"), "re-adding a state should not change it")
	assert.True(nfa.IsAccepting("q1"))
	assert.Equal([]string{"q1", "q0", "q1"}, nfa.Next("q0", "a"))
	assert.Equal([]string{"q0"}, nfa.Next("q1", ""))
	assert.Nil(nfa.Next("q1", "a"))
	assert.Nil(nfa.Next("q9", "a"))
	assert.Equal(4, nfa.TransitionCount())
	assert.True(nfa.HasEpsilonMoves())
	assert.ElementsMatch([]string{"", "a"}, nfa.InputSymbols().Elements())
	assert.ElementsMatch([]string{"q1"}, nfa.AcceptingStates().Elements())
}

func Test_NFA_AddTransition_MissingState(t *testing.T) {
	var nfa NFA
	nfa.AddState("q0", false)

	assert.Panics(t, func() { nfa.AddTransition("q0", "a", "q1") })
	assert.Panics(t, func() { nfa.AddTransition("q1", "a", "q0") })
}

func Test_NFA_Copy(t *testing.T) {
	assert := assert.New(t)

	var nfa NFA
	nfa.AddState("q0", false)
	nfa.AddState("q1", true)
	nfa.AddTransition("q0", "a", "q1")
	nfa.Start = "q0"

	copied := nfa.Copy()
	copied.AddTransition("q0", "a", "q0")

	assert.Equal([]string{"q1"}, nfa.Next("q0", "a"))
	assert.Equal([]string{"q1", "q0"}, copied.Next("q0", "a"))
	assert.Equal("q0", copied.Start)
}

func Test_NFA_String(t *testing.T) {
	assert := assert.New(t)

	var nfa NFA
	nfa.AddState("q0", false)
	nfa.AddState("q1", true)
	nfa.AddTransition("q0", "b", "q1")
	nfa.AddTransition("q0", "", "q1")
	nfa.Start = "q0"

	expect := "<START: \"q0\", STATES:\n\t(q0 [=(ε)=> q1, =(b)=> q1]),\n\t((q1 []))\n>"

	assert.Equal(expect, nfa.String())
}

func Test_Orientation_Order(t *testing.T) {
	testCases := []struct {
		name   string
		o      Orientation
		n      int
		expect []int
	}{
		{name: "forward", o: Forward, n: 3, expect: []int{0, 1, 2}},
		{name: "reverse", o: Reverse, n: 3, expect: []int{2, 1, 0}},
		{name: "empty", o: Reverse, n: 0, expect: []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.o.Order(tc.n))
		})
	}
}

package grammar

import "strings"

// Epsilon is the marker that denotes the empty alternative.
const Epsilon = "ε"

// IsNonTerminal returns whether sym is written in non-terminal notation, that
// is, wrapped in angle brackets.
func IsNonTerminal(sym string) bool {
	return len(sym) > 2 && strings.HasPrefix(sym, "<") && strings.HasSuffix(sym, ">")
}

// NonTerminalName returns the name of the non-terminal sym refers to, without
// its angle brackets. If sym is not in non-terminal notation, ok will be false.
func NonTerminalName(sym string) (name string, ok bool) {
	if !IsNonTerminal(sym) {
		return "", false
	}
	return sym[1 : len(sym)-1], true
}

// IsEpsilon returns whether sym is the epsilon marker.
func IsEpsilon(sym string) bool {
	return sym == Epsilon
}

// IsTerminal returns whether sym is a terminal, which is any non-empty symbol
// that is neither a non-terminal nor the epsilon marker.
func IsTerminal(sym string) bool {
	return sym != "" && !IsNonTerminal(sym) && !IsEpsilon(sym)
}

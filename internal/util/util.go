// Package util holds small helpers shared by the rest of rg2nfa.
package util

import (
	"sort"
	"strings"
)

// MakeTextList gives a nice list of the given items, joined with commas and a
// final "and". If quoted is true, each item is surrounded with double quotes.
func MakeTextList(items []string, quoted bool) string {
	if len(items) < 1 {
		return ""
	}

	withQuotes := make([]string, len(items))
	for i := range items {
		if quoted {
			withQuotes[i] = "\"" + items[i] + "\""
		} else {
			withQuotes[i] = items[i]
		}
	}

	if len(withQuotes) == 1 {
		return withQuotes[0]
	} else if len(withQuotes) == 2 {
		return withQuotes[0] + " and " + withQuotes[1]
	}

	// if its more than two, use an oxford comma
	withQuotes[len(withQuotes)-1] = "and " + withQuotes[len(withQuotes)-1]
	return strings.Join(withQuotes, ", ")
}

// OrderedKeys returns the keys of m, ordered a particular way. The order is
// guaranteed to be the same on every run.
//
// As of this writing, the order is alphabetical, but this function does not
// guarantee this will always be the case.
func OrderedKeys[V any](m map[string]V) []string {
	var keys []string
	var idx int

	keys = make([]string, len(m))
	idx = 0

	for k := range m {
		keys[idx] = k
		idx++
	}

	sort.Strings(keys)

	return keys
}

// Reversed returns a copy of sl with its elements in reverse order.
func Reversed[E any](sl []E) []E {
	rev := make([]E, len(sl))
	for i := range sl {
		rev[len(sl)-1-i] = sl[i]
	}
	return rev
}

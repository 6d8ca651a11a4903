// Package version contains information on the current version of the program.
// It is split from the main program for easy use.
package version

// Current is the string representing the current version of rg2nfa.
const Current = "1.1.0"

// ServerCurrent is the string representing the current version of the rg2nfa
// conversion server.
const ServerCurrent = "0.2.0"

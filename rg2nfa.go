// Package rg2nfa converts regular grammars in linear form into transition
// tables of equivalent non-deterministic finite automata.
//
// A Converter runs the whole pipeline: the grammar is read and classified as
// left- or right-linear, an NFA is built from it, and the NFA's transition
// table is written as delimited text.
package rg2nfa

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/rg2nfa/internal/automaton"
	"github.com/dekarrin/rg2nfa/internal/config"
	"github.com/dekarrin/rg2nfa/internal/grammar"
	"github.com/dekarrin/rg2nfa/internal/nfatable"
	"github.com/dekarrin/rg2nfa/internal/rgerr"
	"github.com/dekarrin/rg2nfa/internal/util"
	"github.com/dekarrin/rosed"
)

// Converter turns grammars into automaton tables using a fixed set of
// settings. It holds no state between conversions and may be used from
// multiple goroutines at once.
type Converter struct {
	cfg config.Config
}

// New creates a Converter that uses the given settings. Unset values in cfg
// are given their defaults before it is validated.
func New(cfg config.Config) (Converter, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return Converter{}, fmt.Errorf("invalid config: %w", err)
	}

	return Converter{cfg: cfg}, nil
}

// Config returns the settings used by the Converter.
func (c Converter) Config() config.Config {
	return c.cfg
}

// ReadGrammarFile reads the grammar in the file at path. If the file cannot be
// opened or read, the returned error is caused by rgerr.ErrInputAccess. The
// file is closed before ReadGrammarFile returns.
func (c Converter) ReadGrammarFile(path string) (grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return grammar.Grammar{}, rgerr.Input(path, err)
	}
	defer f.Close()

	g, err := c.ReadGrammar(f)
	if err != nil {
		return grammar.Grammar{}, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// ReadGrammar reads a grammar from r. The whole of r is read before the
// grammar is classified.
func (c Converter) ReadGrammar(r io.Reader) (grammar.Grammar, error) {
	return grammar.Parse(r, c.cfg.Dual)
}

// Convert builds the automaton for g.
func (c Converter) Convert(g grammar.Grammar) (automaton.Result, error) {
	return automaton.Build(g, c.cfg.AutomatonOptions())
}

// ConvertString reads the grammar in src and builds its automaton.
func (c Converter) ConvertString(src string) (automaton.Result, error) {
	g, err := c.ReadGrammar(strings.NewReader(src))
	if err != nil {
		return automaton.Result{}, err
	}
	return c.Convert(g)
}

// ConvertFile reads the grammar in the file at inPath, builds its automaton,
// and writes the automaton's table to outPath. The output file is only created
// once conversion has succeeded, and if writing it fails no partial file is
// left behind.
func (c Converter) ConvertFile(inPath, outPath string) (automaton.Result, error) {
	g, err := c.ReadGrammarFile(inPath)
	if err != nil {
		return automaton.Result{}, err
	}

	res, err := c.Convert(g)
	if err != nil {
		return automaton.Result{}, fmt.Errorf("%s: %w", inPath, err)
	}

	if err := c.WriteTable(outPath, res.Table); err != nil {
		return automaton.Result{}, err
	}

	return res, nil
}

// WriteTable writes t to the file at path in the configured output format.
func (c Converter) WriteTable(path string, t automaton.Table) error {
	return nfatable.WriteFile(path, t, c.cfg.Format)
}

// MarshalTable returns t as it would be written by WriteTable.
func (c Converter) MarshalTable(t automaton.Table) ([]byte, error) {
	return nfatable.Marshal(t, c.cfg.Format)
}

// Describe gives a human-readable summary of a conversion: the grammar as it
// was read, its classification, its symbol sets, any productions that were
// dropped, and the transition table.
func (c Converter) Describe(res automaton.Result) string {
	g := res.Grammar
	sa := res.States

	var nts []string
	for _, nt := range g.NonTerminals() {
		nts = append(nts, "<"+nt+">")
	}

	data := [][]string{
		{"Property", "Value"},
		{"Linearity", g.Linearity().String()},
		{"Built As", g.Construction().String()},
		{"Non-Terminals", util.MakeTextList(nts, false)},
		{"Terminals", util.MakeTextList(g.Terminals(), false)},
		{"Productions", fmt.Sprintf("%d", g.ProductionCount())},
		{"Start State", sa.Names[sa.Start]},
		{"Accepting State", sa.Names[sa.Accepting]},
	}

	var sb strings.Builder

	sb.WriteString("GRAMMAR\n")
	sb.WriteString(g.String())
	sb.WriteString("\n\n")
	sb.WriteString(rosed.Edit("").
		InsertTableOpts(0, data, c.cfg.Width, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String())

	if len(res.Dropped) > 0 {
		sb.WriteString("\n\nDROPPED PRODUCTIONS")
		for _, d := range res.Dropped {
			sb.WriteRune('\n')
			sb.WriteString(rosed.Edit(d.String()).Wrap(c.cfg.Width).String())
		}
	}

	sb.WriteString("\n\nTRANSITIONS\n")
	sb.WriteString(nfatable.Render(res.Table, c.cfg.Width))

	return sb.String()
}

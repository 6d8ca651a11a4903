// Package nfatable writes automaton transition tables as delimited text. The
// output has two header rows, the first holding the acceptance marker of every
// state and the second holding the state names, followed by one row per input
// symbol. Every row begins with a leading field that is empty for the header
// rows and holds the symbol for the others.
//
// No escaping is performed, so a field that contains the delimiter is an
// error.
package nfatable

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dekarrin/rg2nfa/internal/automaton"
	"github.com/dekarrin/rg2nfa/internal/rgerr"
	"github.com/dekarrin/rosed"
)

const (
	DefaultDelimiter       = ";"
	DefaultAcceptMarker    = "F"
	DefaultTargetSeparator = ","
)

// Format is the layout of the text written for a table.
type Format struct {
	// Delimiter separates the fields of a row.
	Delimiter string

	// AcceptMarker is written in the first header row for accepting states.
	AcceptMarker string

	// TargetSeparator joins the targets within a single cell.
	TargetSeparator string
}

// DefaultFormat returns the Format with every field at its default.
func DefaultFormat() Format {
	return Format{
		Delimiter:       DefaultDelimiter,
		AcceptMarker:    DefaultAcceptMarker,
		TargetSeparator: DefaultTargetSeparator,
	}
}

// FillDefaults returns a copy of f with every empty field set to its default.
func (f Format) FillDefaults() Format {
	newF := f

	if newF.Delimiter == "" {
		newF.Delimiter = DefaultDelimiter
	}
	if newF.AcceptMarker == "" {
		newF.AcceptMarker = DefaultAcceptMarker
	}
	if newF.TargetSeparator == "" {
		newF.TargetSeparator = DefaultTargetSeparator
	}

	return newF
}

// Validate returns an error if f cannot produce output that can be read back
// unambiguously.
func (f Format) Validate() error {
	if f.Delimiter == "" {
		return fmt.Errorf("delimiter: must not be empty")
	}
	if strings.ContainsAny(f.Delimiter, "\r\n") {
		return fmt.Errorf("delimiter: must not contain a line break")
	}
	if f.TargetSeparator == "" {
		return fmt.Errorf("target separator: must not be empty")
	}
	if strings.Contains(f.TargetSeparator, f.Delimiter) || strings.Contains(f.Delimiter, f.TargetSeparator) {
		return fmt.Errorf("target separator: must not overlap with delimiter %q", f.Delimiter)
	}
	if strings.Contains(f.AcceptMarker, f.Delimiter) {
		return fmt.Errorf("accept marker: must not contain delimiter %q", f.Delimiter)
	}
	return nil
}

// Rows gives the fields of every row that Write would output for t, in order.
func Rows(t automaton.Table, f Format) ([][]string, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}

	if err := checkFields(t, f.Delimiter); err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(t.Symbols)+2)

	accRow := make([]string, len(t.States)+1)
	nameRow := make([]string, len(t.States)+1)
	for col := range t.States {
		if t.Accepting[col] {
			accRow[col+1] = f.AcceptMarker
		}
		nameRow[col+1] = t.States[col]
	}
	rows = append(rows, accRow, nameRow)

	for row := range t.Symbols {
		fields := make([]string, len(t.States)+1)
		fields[0] = t.Symbols[row]
		for col := range t.Cells[row] {
			fields[col+1] = strings.Join(t.Cells[row][col], f.TargetSeparator)
		}
		rows = append(rows, fields)
	}

	return rows, nil
}

func checkFields(t automaton.Table, delim string) error {
	for _, s := range t.States {
		if strings.Contains(s, delim) {
			return rgerr.Newf([]error{rgerr.ErrDelimiterInField}, "state %q", s)
		}
	}
	for _, s := range t.Symbols {
		if strings.Contains(s, delim) {
			return rgerr.Newf([]error{rgerr.ErrDelimiterInField}, "symbol %q", s)
		}
	}
	return nil
}

// Write writes t to w in format f. Each row, including the last, is terminated
// by a newline.
func Write(w io.Writer, t automaton.Table, f Format) error {
	rows, err := Rows(t, f)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, fields := range rows {
		if _, err := bw.WriteString(strings.Join(fields, f.Delimiter)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Marshal returns the bytes that Write would output for t.
func Marshal(t automaton.Table, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes t to the file at path in format f. The table is first
// written to a temporary file in the same directory which is then renamed to
// path, so if WriteFile fails there is no partial output and any existing file
// at path is unchanged.
//
// Failures to create or write the file give an error caused by
// rgerr.ErrOutputAccess. Problems with the table or format themselves are
// detected before any file is created.
func WriteFile(path string, t automaton.Table, f Format) (err error) {
	data, err := Marshal(t, f)
	if err != nil {
		return err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return rgerr.Output(path, err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return rgerr.Output(path, err)
	}
	if err = tmp.Close(); err != nil {
		return rgerr.Output(path, err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return rgerr.Output(path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return rgerr.Output(path, err)
	}

	return nil
}

// Render gives t as a text table suitable for display on a console of the
// given width. Accepting states are marked with an asterisk and epsilon moves
// are shown like any other symbol.
func Render(t automaton.Table, width int) string {
	data := make([][]string, 0, len(t.Symbols)+1)

	header := make([]string, len(t.States)+1)
	for col := range t.States {
		header[col+1] = t.States[col]
		if t.Accepting[col] {
			header[col+1] = "*" + header[col+1]
		}
	}
	data = append(data, header)

	for row := range t.Symbols {
		fields := make([]string, len(t.States)+1)
		fields[0] = t.Symbols[row]
		for col := range t.Cells[row] {
			fields[col+1] = strings.Join(t.Cells[row][col], ", ")
		}
		data = append(data, fields)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, width, rosed.Options{
			TableBorders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

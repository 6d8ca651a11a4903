package automaton

import (
	"fmt"

	"github.com/dekarrin/rezi"
)

// This file contains the binary encoding of Tables.

// MarshalBinary converts t into a slice of bytes that can be decoded with
// UnmarshalBinary.
func (t Table) MarshalBinary() ([]byte, error) {
	if len(t.Accepting) != len(t.States) {
		return nil, fmt.Errorf("table has %d states but %d acceptance markers", len(t.States), len(t.Accepting))
	}
	if len(t.Cells) != len(t.Symbols) {
		return nil, fmt.Errorf("table has %d symbols but %d rows", len(t.Symbols), len(t.Cells))
	}

	var data []byte

	data = append(data, rezi.EncInt(int(t.Orientation))...)

	data = append(data, rezi.EncInt(len(t.States))...)
	for i := range t.States {
		data = append(data, rezi.EncString(t.States[i])...)
		data = append(data, rezi.EncBool(t.Accepting[i])...)
	}

	data = append(data, rezi.EncInt(len(t.Symbols))...)
	for i := range t.Symbols {
		data = append(data, rezi.EncString(t.Symbols[i])...)
	}

	for row := range t.Cells {
		if len(t.Cells[row]) != len(t.States) {
			return nil, fmt.Errorf("row %d has %d cells but table has %d states", row, len(t.Cells[row]), len(t.States))
		}
		for col := range t.Cells[row] {
			cell := t.Cells[row][col]
			data = append(data, rezi.EncInt(len(cell))...)
			for i := range cell {
				data = append(data, rezi.EncString(cell[i])...)
			}
		}
	}

	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into t.
// All data in t is replaced.
func (t *Table) UnmarshalBinary(data []byte) error {
	var decoded Table
	var n int
	var err error

	var orient int
	orient, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("orientation: %w", err)
	}
	data = data[n:]
	decoded.Orientation = Orientation(orient)

	var stateCount int
	stateCount, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("state count: %w", err)
	}
	data = data[n:]
	if stateCount < 0 {
		return fmt.Errorf("state count < 0")
	}

	decoded.States = make([]string, stateCount)
	decoded.Accepting = make([]bool, stateCount)
	for i := 0; i < stateCount; i++ {
		decoded.States[i], n, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("state %d: %w", i, err)
		}
		data = data[n:]

		decoded.Accepting[i], n, err = rezi.DecBool(data)
		if err != nil {
			return fmt.Errorf("state %d acceptance: %w", i, err)
		}
		data = data[n:]
	}

	var symCount int
	symCount, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("symbol count: %w", err)
	}
	data = data[n:]
	if symCount < 0 {
		return fmt.Errorf("symbol count < 0")
	}

	decoded.Symbols = make([]string, symCount)
	for i := 0; i < symCount; i++ {
		decoded.Symbols[i], n, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("symbol %d: %w", i, err)
		}
		data = data[n:]
	}

	decoded.Cells = make([][][]string, symCount)
	for row := 0; row < symCount; row++ {
		decoded.Cells[row] = make([][]string, stateCount)
		for col := 0; col < stateCount; col++ {
			var targetCount int
			targetCount, n, err = rezi.DecInt(data)
			if err != nil {
				return fmt.Errorf("cell (%d, %d): %w", row, col, err)
			}
			data = data[n:]
			if targetCount < 0 {
				return fmt.Errorf("cell (%d, %d): target count < 0", row, col)
			}

			var cell []string
			for i := 0; i < targetCount; i++ {
				var target string
				target, n, err = rezi.DecString(data)
				if err != nil {
					return fmt.Errorf("cell (%d, %d) target %d: %w", row, col, i, err)
				}
				data = data[n:]
				cell = append(cell, target)
			}
			decoded.Cells[row][col] = cell
		}
	}

	*t = decoded
	return nil
}

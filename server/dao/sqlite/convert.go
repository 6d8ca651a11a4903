package sqlite

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/rg2nfa/internal/automaton"
	"github.com/google/uuid"
)

// This file holds the conversions between Go values and the values stored in
// columns.

func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = u
	return nil
}

func convertToDB_Time(t time.Time) int64 {
	return t.Unix()
}

func convertFromDB_Time(i int64, target *time.Time) error {
	*target = time.Unix(i, 0)
	return nil
}

// tables are stored as base64 text of their binary encoding.
func convertToDB_Table(t automaton.Table) (string, error) {
	// EncBinary panics on a marshal error, so check for one first.
	if _, err := t.MarshalBinary(); err != nil {
		return "", err
	}
	data := rezi.EncBinary(t)
	return base64.StdEncoding.EncodeToString(data), nil
}

func convertFromDB_Table(s string, target *automaton.Table) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}

	var t automaton.Table
	n, err := rezi.DecBinary(data, &t)
	if err != nil {
		return err
	}
	if n != len(data) {
		return fmt.Errorf("%d trailing bytes after table", len(data)-n)
	}

	*target = t
	return nil
}

func convertToDB_StringList(sl []string) string {
	return strings.Join(sl, "\n")
}

func convertFromDB_StringList(s string, target *[]string) error {
	if s == "" {
		*target = nil
		return nil
	}
	*target = strings.Split(s, "\n")
	return nil
}

// Package dao provides data access objects for use in the rg2nfa server.
package dao

import (
	"context"
	"time"

	"github.com/dekarrin/rg2nfa/internal/automaton"
	"github.com/google/uuid"
)

// Store holds all the repositories.
type Store interface {
	Conversions() ConversionRepository
	Close() error
}

type ConversionRepository interface {
	// Create creates a new Conversion. All attributes except for
	// auto-generated fields are taken from the provided Conversion.
	Create(ctx context.Context, conv Conversion) (Conversion, error)

	GetByID(ctx context.Context, id uuid.UUID) (Conversion, error)

	// GetAll returns every Conversion, oldest first.
	GetAll(ctx context.Context) ([]Conversion, error)

	Delete(ctx context.Context, id uuid.UUID) (Conversion, error)

	Close() error
}

// Conversion is a grammar that was converted into an automaton, along with
// the result.
type Conversion struct {
	ID   uuid.UUID
	Name string

	// Grammar is the source text of the grammar as it was submitted.
	Grammar string

	// Linearity is the classification of the grammar.
	Linearity string

	// Table is the transition table of the automaton.
	Table automaton.Table

	// Dropped holds a description of every production that was left out of
	// the automaton.
	Dropped []string

	Created time.Time
}

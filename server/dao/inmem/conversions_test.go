package inmem

import (
	"context"
	"testing"

	"github.com/dekarrin/rg2nfa/internal/automaton"
	"github.com/dekarrin/rg2nfa/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testTable() automaton.Table {
	return automaton.Table{
		Orientation: automaton.Forward,
		States:      []string{"q0", "q1"},
		Accepting:   []bool{false, true},
		Symbols:     []string{"a"},
		Cells:       [][][]string{{{"q1"}, nil}},
	}
}

func Test_Conversions_CreateAndGet(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	repo := NewConversionsRepository()

	created, err := repo.Create(ctx, dao.Conversion{
		Name:      "simple",
		Grammar:   "<S> ::= a\n",
		Linearity: "right-linear",
		Table:     testTable(),
		Dropped:   []string{"<S> ::= <X> (undeclared)"},
	})
	if !assert.NoError(err) {
		return
	}

	assert.NotEqual(uuid.Nil, created.ID)
	assert.False(created.Created.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created.Name, got.Name)
	assert.Equal(created.Grammar, got.Grammar)
	assert.Equal(created.Linearity, got.Linearity)
	assert.Equal(created.Dropped, got.Dropped)
	assert.True(testTable().Equal(got.Table))
}

func Test_Conversions_GetAll_OldestFirst(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	repo := NewConversionsRepository()

	names := []string{"first", "second", "third"}
	for _, n := range names {
		_, err := repo.Create(ctx, dao.Conversion{Name: n, Table: testTable()})
		if !assert.NoError(err) {
			return
		}
	}

	all, err := repo.GetAll(ctx)
	if !assert.NoError(err) {
		return
	}

	var actual []string
	for _, c := range all {
		actual = append(actual, c.Name)
	}
	assert.Equal(names, actual)
}

func Test_Conversions_Delete(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	repo := NewConversionsRepository()

	keep, _ := repo.Create(ctx, dao.Conversion{Name: "keep", Table: testTable()})
	gone, _ := repo.Create(ctx, dao.Conversion{Name: "gone", Table: testTable()})

	deleted, err := repo.Delete(ctx, gone.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("gone", deleted.Name)

	_, err = repo.GetByID(ctx, gone.ID)
	assert.ErrorIs(err, dao.ErrNotFound)

	_, err = repo.Delete(ctx, gone.ID)
	assert.ErrorIs(err, dao.ErrNotFound)

	all, _ := repo.GetAll(ctx)
	if assert.Len(all, 1) {
		assert.Equal(keep.ID, all[0].ID)
	}
}

func Test_Conversions_GetByID_NotFound(t *testing.T) {
	repo := NewConversionsRepository()

	_, err := repo.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, dao.ErrNotFound)
}

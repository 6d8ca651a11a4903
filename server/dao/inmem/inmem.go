// Package inmem has a dao.Store that keeps everything in memory. Nothing in it
// survives the process.
package inmem

import (
	"github.com/dekarrin/rg2nfa/server/dao"
)

type store struct {
	convs *InMemoryConversionsRepository
}

func NewDatastore() dao.Store {
	return &store{
		convs: NewConversionsRepository(),
	}
}

func (s *store) Conversions() dao.ConversionRepository {
	return s.convs
}

func (s *store) Close() error {
	return s.convs.Close()
}

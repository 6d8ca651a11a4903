package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/rg2nfa/server/dao"
	"github.com/google/uuid"
)

func NewConversionsRepository() *InMemoryConversionsRepository {
	return &InMemoryConversionsRepository{
		convs: make(map[uuid.UUID]dao.Conversion),
	}
}

// InMemoryConversionsRepository is a dao.ConversionRepository that is safe
// for concurrent use.
type InMemoryConversionsRepository struct {
	mtx   sync.RWMutex
	convs map[uuid.UUID]dao.Conversion

	// order holds IDs in the order they were created.
	order []uuid.UUID
}

func (imcr *InMemoryConversionsRepository) Close() error {
	return nil
}

func (imcr *InMemoryConversionsRepository) Create(ctx context.Context, c dao.Conversion) (dao.Conversion, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Conversion{}, fmt.Errorf("could not generate ID: %w", err)
	}

	imcr.mtx.Lock()
	defer imcr.mtx.Unlock()

	if _, ok := imcr.convs[newUUID]; ok {
		return dao.Conversion{}, dao.ErrConstraintViolation
	}

	c.ID = newUUID
	c.Created = time.Now()
	c.Dropped = copyStrings(c.Dropped)

	imcr.convs[c.ID] = c
	imcr.order = append(imcr.order, c.ID)

	return c, nil
}

func (imcr *InMemoryConversionsRepository) GetAll(ctx context.Context) ([]dao.Conversion, error) {
	imcr.mtx.RLock()
	defer imcr.mtx.RUnlock()

	all := make([]dao.Conversion, len(imcr.order))
	for i := range imcr.order {
		all[i] = imcr.convs[imcr.order[i]]
	}

	return all, nil
}

func (imcr *InMemoryConversionsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Conversion, error) {
	imcr.mtx.RLock()
	defer imcr.mtx.RUnlock()

	c, ok := imcr.convs[id]
	if !ok {
		return dao.Conversion{}, dao.ErrNotFound
	}

	return c, nil
}

func (imcr *InMemoryConversionsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Conversion, error) {
	imcr.mtx.Lock()
	defer imcr.mtx.Unlock()

	c, ok := imcr.convs[id]
	if !ok {
		return dao.Conversion{}, dao.ErrNotFound
	}

	for i := range imcr.order {
		if imcr.order[i] == id {
			imcr.order = append(imcr.order[:i], imcr.order[i+1:]...)
			break
		}
	}
	delete(imcr.convs, id)

	return c, nil
}

func copyStrings(sl []string) []string {
	if sl == nil {
		return nil
	}
	cp := make([]string, len(sl))
	copy(cp, sl)
	return cp
}

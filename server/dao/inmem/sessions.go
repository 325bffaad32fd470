package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/tqinterp/internal/util"
	"github.com/dekarrin/tqinterp/server/dao"
	"github.com/google/uuid"
)

func NewSessionsRepository() *InMemorySessionsRepository {
	return &InMemorySessionsRepository{
		seshes: make(map[uuid.UUID]dao.Session),
	}
}

type InMemorySessionsRepository struct {
	mtx    sync.RWMutex
	seshes map[uuid.UUID]dao.Session
}

func (imsr *InMemorySessionsRepository) Close() error {
	return nil
}

func (imsr *InMemorySessionsRepository) Create(ctx context.Context, s dao.Session) (dao.Session, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Session{}, fmt.Errorf("could not generate ID: %w", err)
	}

	imsr.mtx.Lock()
	defer imsr.mtx.Unlock()

	s.ID = newUUID
	s.Created = time.Now()
	if s.LastActive.IsZero() {
		s.LastActive = s.Created
	}

	imsr.seshes[s.ID] = s

	return s, nil
}

func (imsr *InMemorySessionsRepository) GetAll(ctx context.Context) ([]dao.Session, error) {
	imsr.mtx.RLock()
	defer imsr.mtx.RUnlock()

	all := make([]dao.Session, 0, len(imsr.seshes))
	for k := range imsr.seshes {
		all = append(all, imsr.seshes[k])
	}

	all = util.SortBy(all, func(l, r dao.Session) bool {
		return l.ID.String() < r.ID.String()
	})

	return all, nil
}

func (imsr *InMemorySessionsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	imsr.mtx.RLock()
	defer imsr.mtx.RUnlock()

	s, ok := imsr.seshes[id]
	if !ok {
		return dao.Session{}, dao.ErrNotFound
	}

	return s, nil
}

func (imsr *InMemorySessionsRepository) Update(ctx context.Context, id uuid.UUID, s dao.Session) (dao.Session, error) {
	imsr.mtx.Lock()
	defer imsr.mtx.Unlock()

	if _, ok := imsr.seshes[id]; !ok {
		return dao.Session{}, dao.ErrNotFound
	}

	// check for conflicts on this table only
	// (inmem does not support enforcement of foreign keys)
	if s.ID != id {
		if _, ok := imsr.seshes[s.ID]; ok {
			return dao.Session{}, dao.ErrConstraintViolation
		}
		delete(imsr.seshes, id)
	}

	imsr.seshes[s.ID] = s

	return s, nil
}

func (imsr *InMemorySessionsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	imsr.mtx.Lock()
	defer imsr.mtx.Unlock()

	s, ok := imsr.seshes[id]
	if !ok {
		return dao.Session{}, dao.ErrNotFound
	}

	delete(imsr.seshes, id)

	return s, nil
}

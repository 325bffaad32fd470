package inmem

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/tqinterp/internal/util"
	"github.com/dekarrin/tqinterp/server/dao"
	"github.com/google/uuid"
)

// NewCommandsRepository creates a new Commands repo. If seshRepo is provided,
// Create checks that the session of a new command exists.
func NewCommandsRepository(seshRepo dao.SessionRepository) *InMemoryCommandsRepository {
	return &InMemoryCommandsRepository{
		seshRepo:      seshRepo,
		coms:          make(map[uuid.UUID]dao.Command),
		bySeshIDIndex: make(map[uuid.UUID][]uuid.UUID),
	}
}

type InMemoryCommandsRepository struct {
	mtx           sync.RWMutex
	coms          map[uuid.UUID]dao.Command
	seshRepo      dao.SessionRepository
	bySeshIDIndex map[uuid.UUID][]uuid.UUID
}

func (imcr *InMemoryCommandsRepository) Close() error {
	return nil
}

func (imcr *InMemoryCommandsRepository) Create(ctx context.Context, c dao.Command) (dao.Command, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Command{}, fmt.Errorf("could not generate ID: %w", err)
	}

	if imcr.seshRepo != nil {
		_, err := imcr.seshRepo.GetByID(ctx, c.SessionID)
		if err != nil {
			if errors.Is(err, dao.ErrNotFound) {
				return dao.Command{}, dao.ErrConstraintViolation
			}
			return dao.Command{}, err
		}
	}

	imcr.mtx.Lock()
	defer imcr.mtx.Unlock()

	c.ID = newUUID
	c.Created = time.Now()

	imcr.coms[c.ID] = c

	seshComs := imcr.bySeshIDIndex[c.SessionID]
	seshComs = append(seshComs, c.ID)
	imcr.bySeshIDIndex[c.SessionID] = seshComs

	return c, nil
}

// GetAllBySession returns the commands of the session in the order they were
// created. A session with no commands gives an empty slice.
func (imcr *InMemoryCommandsRepository) GetAllBySession(ctx context.Context, id uuid.UUID) ([]dao.Command, error) {
	imcr.mtx.RLock()
	defer imcr.mtx.RUnlock()

	bySesh := imcr.bySeshIDIndex[id]

	all := make([]dao.Command, len(bySesh))
	for i := range bySesh {
		all[i] = imcr.coms[bySesh[i]]
	}

	return all, nil
}

func (imcr *InMemoryCommandsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Command, error) {
	imcr.mtx.RLock()
	defer imcr.mtx.RUnlock()

	c, ok := imcr.coms[id]
	if !ok {
		return dao.Command{}, dao.ErrNotFound
	}

	return c, nil
}

func (imcr *InMemoryCommandsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Command, error) {
	imcr.mtx.Lock()
	defer imcr.mtx.Unlock()

	c, ok := imcr.coms[id]
	if !ok {
		return dao.Command{}, dao.ErrNotFound
	}

	bySesh := imcr.bySeshIDIndex[c.SessionID]
	updated := util.SliceRemove(c.ID, bySesh)
	imcr.bySeshIDIndex[c.SessionID] = updated
	if len(updated) < 1 {
		delete(imcr.bySeshIDIndex, c.SessionID)
	}

	delete(imcr.coms, c.ID)

	return c, nil
}

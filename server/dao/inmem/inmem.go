// Package inmem provides a dao.Store that keeps everything in memory. Its data
// is lost when the server shuts down.
package inmem

import (
	"fmt"

	"github.com/dekarrin/tqinterp/server/dao"
)

type store struct {
	seshes *InMemorySessionsRepository
	coms   *InMemoryCommandsRepository
}

func NewDatastore() dao.Store {
	seshes := NewSessionsRepository()
	return &store{
		seshes: seshes,
		coms:   NewCommandsRepository(seshes),
	}
}

func (s *store) Sessions() dao.SessionRepository {
	return s.seshes
}

func (s *store) Commands() dao.CommandRepository {
	return s.coms
}

func (s *store) Close() error {
	var err error

	if nextErr := s.seshes.Close(); nextErr != nil {
		err = nextErr
	}
	if nextErr := s.coms.Close(); nextErr != nil {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		} else {
			err = nextErr
		}
	}

	return err
}

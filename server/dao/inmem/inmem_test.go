package inmem

import (
	"context"
	"testing"

	"github.com/dekarrin/tqinterp/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_Sessions_lifecycle(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := NewDatastore()
	defer store.Close()

	created, err := store.Sessions().Create(ctx, dao.Session{})
	if !assert.NoError(err) {
		return
	}
	assert.NotEqual(uuid.Nil, created.ID)
	assert.Equal(created.Created, created.LastActive)

	got, err := store.Sessions().GetByID(ctx, created.ID)
	assert.NoError(err)
	assert.Equal(created, got)

	all, err := store.Sessions().GetAll(ctx)
	assert.NoError(err)
	assert.Len(all, 1)

	deleted, err := store.Sessions().Delete(ctx, created.ID)
	assert.NoError(err)
	assert.Equal(created.ID, deleted.ID)

	_, err = store.Sessions().GetByID(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_Commands_bySession(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := NewDatastore()
	defer store.Close()

	s1, _ := store.Sessions().Create(ctx, dao.Session{})
	s2, _ := store.Sessions().Create(ctx, dao.Session{})

	inputs := []string{"look", "take lamp", "go north"}
	for _, in := range inputs {
		_, err := store.Commands().Create(ctx, dao.Command{SessionID: s1.ID, Input: in})
		if !assert.NoError(err) {
			return
		}
	}
	other, err := store.Commands().Create(ctx, dao.Command{SessionID: s2.ID, Input: "wait"})
	if !assert.NoError(err) {
		return
	}

	coms, err := store.Commands().GetAllBySession(ctx, s1.ID)
	assert.NoError(err)
	var actual []string
	for _, c := range coms {
		actual = append(actual, c.Input)
	}
	assert.Equal(inputs, actual)

	_, err = store.Commands().Delete(ctx, other.ID)
	assert.NoError(err)
	coms, err = store.Commands().GetAllBySession(ctx, s2.ID)
	assert.NoError(err)
	assert.NotNil(coms)
	assert.Empty(coms)
}

func Test_Commands_Create_missingSession(t *testing.T) {
	assert := assert.New(t)
	store := NewDatastore()

	_, err := store.Commands().Create(context.Background(), dao.Command{SessionID: uuid.New(), Input: "look"})

	assert.ErrorIs(err, dao.ErrConstraintViolation)
}

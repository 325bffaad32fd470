package tunas

import (
	"context"
	"strings"
	"testing"

	"github.com/dekarrin/tqinterp"
	"github.com/dekarrin/tqinterp/internal/glossary"
	"github.com/dekarrin/tqinterp/internal/glossfile"
	"github.com/dekarrin/tqinterp/server/dao/inmem"
	"github.com/dekarrin/tqinterp/server/serr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func loadDefaultGlossary(binder glossfile.Binder) (*glossary.Glossary, error) {
	return glossfile.LoadBytes(tqinterp.DefaultGlossary, binder)
}

func newTestService(t *testing.T) *Service {
	svc, err := New(inmem.NewDatastore(), loadDefaultGlossary)
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}

func Test_Service_RunCommand(t *testing.T) {
	testCases := []struct {
		name            string
		input           string
		expectOutput    string
		expectKind      string
		expectDispatchN int
	}{
		{
			name:            "take the lamp",
			input:           "take the lamp",
			expectOutput:    "You take the lamp.\n",
			expectDispatchN: 1,
		},
		{
			name:            "expanded group",
			input:           "take the brass lamp and the key from the table",
			expectOutput:    "You take the brass lamp from the table.\nYou take the key from the table.\n",
			expectDispatchN: 2,
		},
		{
			name:            "command",
			input:           "z",
			expectOutput:    "Time passes.\n",
			expectDispatchN: 1,
		},
		{
			name:            "quit only narrates",
			input:           "quit",
			expectOutput:    "Your session stays open. Come back any time.\n",
			expectDispatchN: 1,
		},
		{
			name:            "partial then error",
			input:           "look then zorp",
			expectOutput:    "You look around. Nothing seems out of place.\nI don't understand the word \"zorp\".\n",
			expectKind:      "UnknownWord",
			expectDispatchN: 1,
		},
		{
			name:         "empty input",
			input:        "",
			expectOutput: "Speak up, please.\n",
			expectKind:   "EmptyInput",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			ctx := context.Background()
			svc := newTestService(t)
			sesh, err := svc.CreateSession(ctx)
			if !assert.NoError(err) {
				return
			}

			c, err := svc.RunCommand(ctx, sesh.ID, tc.input)
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.input, c.Input)
			assert.Equal(tc.expectOutput, c.Output)
			assert.Equal(tc.expectKind, c.ErrorKind)
			assert.Len(c.Dispatches, tc.expectDispatchN)
		})
	}
}

func Test_Service_RunCommand_errors(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	svc := newTestService(t)
	sesh, _ := svc.CreateSession(ctx)

	_, err := svc.RunCommand(ctx, sesh.ID, strings.Repeat("a", MaxInputLength+1))
	assert.ErrorIs(err, serr.ErrBadArgument)

	_, err = svc.RunCommand(ctx, uuid.New(), "look")
	assert.ErrorIs(err, serr.ErrNotFound)
}

func Test_Service_GetCommand(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	svc := newTestService(t)
	mine, _ := svc.CreateSession(ctx)
	theirs, _ := svc.CreateSession(ctx)

	c, err := svc.RunCommand(ctx, mine.ID, "look at the door")
	if !assert.NoError(err) {
		return
	}

	got, err := svc.GetCommand(ctx, mine.ID, c.ID.String())
	assert.NoError(err)
	assert.Equal(c.ID, got.ID)
	if assert.Len(got.Dispatches, 1) {
		assert.Equal("look", got.Dispatches[0].ID)
		assert.Equal("at <noun-group>", got.Dispatches[0].Structure)
		if assert.NotNil(got.Dispatches[0].Direct) {
			assert.Equal("the door", got.Dispatches[0].Direct.Text)
		}
	}

	_, err = svc.GetCommand(ctx, theirs.ID, c.ID.String())
	assert.ErrorIs(err, serr.ErrPermissions)

	_, err = svc.GetCommand(ctx, mine.ID, "not-a-uuid")
	assert.ErrorIs(err, serr.ErrBadArgument)

	_, err = svc.GetCommand(ctx, mine.ID, uuid.New().String())
	assert.ErrorIs(err, serr.ErrNotFound)

	all, err := svc.GetAllCommands(ctx, mine.ID)
	assert.NoError(err)
	assert.Len(all, 1)
}

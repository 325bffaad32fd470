// Package tunas has services for interacting with the interpreter server
// backend decoupled from the API that accesses it.
package tunas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dekarrin/tqinterp"
	"github.com/dekarrin/tqinterp/internal/command"
	"github.com/dekarrin/tqinterp/internal/glossary"
	"github.com/dekarrin/tqinterp/internal/glossfile"
	"github.com/dekarrin/tqinterp/internal/node"
	"github.com/dekarrin/tqinterp/internal/tqerrors"
	"github.com/dekarrin/tqinterp/server/dao"
	"github.com/dekarrin/tqinterp/server/serr"
	"github.com/google/uuid"
)

// MaxInputLength is the maximum number of characters accepted in a single
// line of input.
const MaxInputLength = 1024

// Service is a service for interacting with the interpreter server backend. It
// performs the actions requested and makes calls to server persistence to
// preserve the backend state.
//
// The zero-value of Service is not ready to be used; create one with New.
type Service struct {

	// DB is the persistence store of the service.
	DB dao.Store

	// mtx serializes interpretation; actions write to the shared narration
	// buffer.
	mtx       sync.Mutex
	interp    *command.Interpreter
	narration *strings.Builder
}

// GlossaryLoader registers a glossary, binding the actions it names with
// binder.
type GlossaryLoader func(binder glossfile.Binder) (*glossary.Glossary, error)

// New creates a Service that stores data in db and interprets input using the
// glossary given by load. The "quit" action narrates that the session stays
// open, and "help" lists the glossary's commands and verbs.
func New(db dao.Store, load GlossaryLoader) (*Service, error) {
	svc := &Service{
		DB:        db,
		narration: &strings.Builder{},
	}

	binder := glossfile.Narrator{
		Out: svc.narration,
		Commands: map[string]node.CommandAction{
			"quit": func() {
				fmt.Fprintln(svc.narration, "Your session stays open. Come back any time.")
			},
			"help": func() {
				fmt.Fprint(svc.narration, tqinterp.HelpText(svc.interp.Glossary()))
			},
		},
	}

	gloss, err := load(binder)
	if err != nil {
		return nil, fmt.Errorf("load glossary: %w", err)
	}
	svc.interp = command.NewInterpreter(gloss)

	return svc, nil
}

// Glossary returns the glossary that input is interpreted against.
func (svc *Service) Glossary() *glossary.Glossary {
	return svc.interp.Glossary()
}

// CreateSession creates a new session.
func (svc *Service) CreateSession(ctx context.Context) (dao.Session, error) {
	sesh, err := svc.DB.Sessions().Create(ctx, dao.Session{})
	if err != nil {
		return dao.Session{}, serr.WrapDB("could not create session", err)
	}
	return sesh, nil
}

// GetSession returns the session with the given ID.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no session with that ID
// exists, it will match serr.ErrNotFound. If the error occured due to an
// unexpected problem with the DB, it will match serr.ErrDB. Finally, if the ID
// is not valid, it will match serr.ErrBadArgument.
func (svc *Service) GetSession(ctx context.Context, id string) (dao.Session, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Session{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	sesh, err := svc.DB.Sessions().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Session{}, serr.ErrNotFound
		}
		return dao.Session{}, serr.WrapDB("could not get session", err)
	}

	return sesh, nil
}

// RunCommand interprets a line of input for the session and stores the
// result. A line that cannot be interpreted is not an error; the returned
// Command has its ErrorKind set and the game message in its Output.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the session does not exist,
// it will match serr.ErrNotFound. If the error occured due to an unexpected
// problem with the DB, it will match serr.ErrDB. Finally, if the input is too
// long, it will match serr.ErrBadArgument.
func (svc *Service) RunCommand(ctx context.Context, sessionID uuid.UUID, input string) (dao.Command, error) {
	if utf8.RuneCountInString(input) > MaxInputLength {
		return dao.Command{}, serr.New(fmt.Sprintf("input cannot be longer than %d characters", MaxInputLength), serr.ErrBadArgument)
	}

	sesh, err := svc.DB.Sessions().GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Command{}, serr.ErrNotFound
		}
		return dao.Command{}, serr.WrapDB("could not get session", err)
	}

	c := svc.interpret(input)
	c.SessionID = sesh.ID

	c, err = svc.DB.Commands().Create(ctx, c)
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return dao.Command{}, serr.New("session no longer exists", serr.ErrNotFound)
		}
		return dao.Command{}, serr.WrapDB("could not store command", err)
	}

	sesh.LastActive = time.Now()
	if _, err := svc.DB.Sessions().Update(ctx, sesh.ID, sesh); err != nil {
		return c, serr.WrapDB("could not update session", err)
	}

	return c, nil
}

func (svc *Service) interpret(input string) dao.Command {
	svc.mtx.Lock()
	defer svc.mtx.Unlock()

	svc.narration.Reset()
	dispatches, interpErr := svc.interp.Interpret(input)

	c := dao.Command{
		Input:      input,
		Output:     svc.narration.String(),
		Dispatches: traceOf(dispatches),
	}
	if interpErr != nil {
		c.ErrorKind = tqerrors.KindOf(interpErr).String()
		c.Output += tqerrors.GameMessage(interpErr) + "\n"
	}
	return c
}

// GetCommand returns the command with the given ID. It must belong to the
// session with ID sessionID.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no command with that ID
// exists, it will match serr.ErrNotFound. If it belongs to another session, it
// will match serr.ErrPermissions. If the error occured due to an unexpected
// problem with the DB, it will match serr.ErrDB. Finally, if the ID is not
// valid, it will match serr.ErrBadArgument.
func (svc *Service) GetCommand(ctx context.Context, sessionID uuid.UUID, id string) (dao.Command, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Command{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	c, err := svc.DB.Commands().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Command{}, serr.ErrNotFound
		}
		return dao.Command{}, serr.WrapDB("could not get command", err)
	}

	if c.SessionID != sessionID {
		return dao.Command{}, serr.New("command belongs to another session", serr.ErrPermissions)
	}

	return c, nil
}

// GetAllCommands returns every command of the session in the order they were
// run.
func (svc *Service) GetAllCommands(ctx context.Context, sessionID uuid.UUID) ([]dao.Command, error) {
	coms, err := svc.DB.Commands().GetAllBySession(ctx, sessionID)
	if err != nil {
		return nil, serr.WrapDB("could not get commands", err)
	}
	return coms, nil
}

func traceOf(dispatches []command.Dispatch) dao.Trace {
	trace := make(dao.Trace, len(dispatches))
	for i, d := range dispatches {
		trace[i] = dao.Dispatch{
			ID:        d.ID,
			Word:      d.Word,
			Command:   d.Command,
			Usage:     d.Usage,
			Structure: d.Structure,
			Direct:    objectOf(d.Direct),
			Indirect:  objectOf(d.Indirect),
			Expanded:  d.Expanded,
		}
	}
	return trace
}

func objectOf(n node.Node) *dao.Object {
	if n == nil {
		return nil
	}
	return &dao.Object{
		Tag:  n.Tag().String(),
		ID:   n.DefinitionID(),
		Text: glossfile.Describe(n),
	}
}

// Package dao provides data access objects for use in the interpreter server.
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// Store holds all the repositories.
type Store interface {
	Sessions() SessionRepository
	Commands() CommandRepository
	Close() error
}

type SessionRepository interface {

	// Create creates a new Session. All attributes except for auto-generated
	// fields are taken from the provided Session.
	Create(ctx context.Context, s Session) (Session, error)
	GetByID(ctx context.Context, id uuid.UUID) (Session, error)
	GetAll(ctx context.Context) ([]Session, error)
	Update(ctx context.Context, id uuid.UUID, s Session) (Session, error)
	Delete(ctx context.Context, id uuid.UUID) (Session, error)
	Close() error
}

type CommandRepository interface {

	// Create creates a new Command. All attributes except for auto-generated
	// fields are taken from the provided Command. The session it refers to
	// must exist.
	Create(ctx context.Context, c Command) (Command, error)
	GetByID(ctx context.Context, id uuid.UUID) (Command, error)

	// GetAllBySession returns every Command of the session in the order they
	// were created.
	GetAllBySession(ctx context.Context, sessionID uuid.UUID) ([]Command, error)
	Delete(ctx context.Context, id uuid.UUID) (Command, error)
	Close() error
}

// Session is a single client's conversation with the interpreter.
type Session struct {
	ID         uuid.UUID
	Created    time.Time
	LastActive time.Time
}

// Command is a line of input sent by a client along with everything that
// interpreting it produced.
type Command struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Input     string
	Output    string

	// ErrorKind is the name of the kind of error that stopped
	// interpretation, or empty if the line was fully interpreted.
	ErrorKind  string
	Dispatches Trace
	Created    time.Time
}

// Object is a stored copy of a node passed to an action.
type Object struct {
	Tag  string
	ID   string
	Text string
}

func (o Object) MarshalBinary() ([]byte, error) {
	var enc []byte
	enc = append(enc, rezi.EncString(o.Tag)...)
	enc = append(enc, rezi.EncString(o.ID)...)
	enc = append(enc, rezi.EncString(o.Text)...)
	return enc, nil
}

func (o *Object) UnmarshalBinary(data []byte) error {
	var err error
	var n int

	o.Tag, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("tag: %w", err)
	}
	data = data[n:]

	o.ID, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	data = data[n:]

	o.Text, _, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("text: %w", err)
	}

	return nil
}

// Dispatch is a stored record of a single action invocation.
type Dispatch struct {
	ID        string
	Word      string
	Command   bool
	Usage     int
	Structure string

	// Direct and Indirect are nil if no object was passed.
	Direct   *Object
	Indirect *Object
	Expanded bool
}

func (d Dispatch) MarshalBinary() ([]byte, error) {
	var enc []byte
	enc = append(enc, rezi.EncString(d.ID)...)
	enc = append(enc, rezi.EncString(d.Word)...)
	enc = append(enc, rezi.EncBool(d.Command)...)
	enc = append(enc, rezi.EncInt(d.Usage)...)
	enc = append(enc, rezi.EncString(d.Structure)...)
	enc = append(enc, encOptionalObject(d.Direct)...)
	enc = append(enc, encOptionalObject(d.Indirect)...)
	enc = append(enc, rezi.EncBool(d.Expanded)...)
	return enc, nil
}

func (d *Dispatch) UnmarshalBinary(data []byte) error {
	var err error
	var n int

	d.ID, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	data = data[n:]

	d.Word, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("word: %w", err)
	}
	data = data[n:]

	d.Command, n, err = rezi.DecBool(data)
	if err != nil {
		return fmt.Errorf("command: %w", err)
	}
	data = data[n:]

	d.Usage, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("usage: %w", err)
	}
	data = data[n:]

	d.Structure, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("structure: %w", err)
	}
	data = data[n:]

	d.Direct, n, err = decOptionalObject(data)
	if err != nil {
		return fmt.Errorf("direct: %w", err)
	}
	data = data[n:]

	d.Indirect, n, err = decOptionalObject(data)
	if err != nil {
		return fmt.Errorf("indirect: %w", err)
	}
	data = data[n:]

	d.Expanded, _, err = rezi.DecBool(data)
	if err != nil {
		return fmt.Errorf("expanded: %w", err)
	}

	return nil
}

// Trace is the ordered list of actions invoked for a Command.
type Trace []Dispatch

func (t Trace) MarshalBinary() ([]byte, error) {
	enc := rezi.EncInt(len(t))
	for i := range t {
		enc = append(enc, rezi.EncBinary(t[i])...)
	}
	return enc, nil
}

func (t *Trace) UnmarshalBinary(data []byte) error {
	count, n, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	data = data[n:]

	decoded := make(Trace, count)
	for i := 0; i < count; i++ {
		n, err = rezi.DecBinary(data, &decoded[i])
		if err != nil {
			return fmt.Errorf("dispatch %d: %w", i, err)
		}
		data = data[n:]
	}

	*t = decoded
	return nil
}

func encOptionalObject(o *Object) []byte {
	if o == nil {
		return rezi.EncBool(false)
	}
	return append(rezi.EncBool(true), rezi.EncBinary(*o)...)
}

func decOptionalObject(data []byte) (*Object, int, error) {
	present, n, err := rezi.DecBool(data)
	if err != nil {
		return nil, 0, err
	}
	if !present {
		return nil, n, nil
	}

	var o Object
	objN, err := rezi.DecBinary(data[n:], &o)
	if err != nil {
		return nil, 0, err
	}
	return &o, n + objN, nil
}

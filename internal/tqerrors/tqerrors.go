// Package tqerrors contains the errors produced while interpreting player
// input and while registering glossary content. Every error created here has
// both a human-readable message meant to be shown in-game and a more technical
// message returned by Error().
package tqerrors

import (
	"errors"
	"fmt"
)

// Kind is the category of an interpreter or registration error. Kind
// implements error so that a Kind can be given directly as the target of a
// call to errors.Is:
//
//	if errors.Is(err, tqerrors.NoMatchingUsage) { ... }
type Kind int

const (
	// Unspecified is the Kind of any error that was not created with an
	// explicit kind.
	Unspecified Kind = iota

	// tokenization
	EmptyInput
	NoValidCharacters
	NoValidWords

	// glossary registration
	DuplicateDefinitionID
	DanglingWordRegistration
	CategoryCollision
	InvalidSyntaxLiteral
	InvalidWord
	InvalidUsage

	// sentence interpretation
	UnknownWord
	UnexpectedWord
	NoMatchingUsage
	IncompleteVerbUsage
)

var kindNames = map[Kind]string{
	Unspecified:              "Unspecified",
	EmptyInput:               "EmptyInput",
	NoValidCharacters:        "NoValidCharacters",
	NoValidWords:             "NoValidWords",
	DuplicateDefinitionID:    "DuplicateDefinitionId",
	DanglingWordRegistration: "DanglingWordRegistration",
	CategoryCollision:        "CategoryCollision",
	InvalidSyntaxLiteral:     "InvalidSyntaxLiteral",
	InvalidWord:              "InvalidWord",
	InvalidUsage:             "InvalidUsage",
	UnknownWord:              "UnknownWord",
	UnexpectedWord:           "UnexpectedWord",
	NoMatchingUsage:          "NoMatchingUsage",
	IncompleteVerbUsage:      "IncompleteVerbUsage",
}

// String returns the name of the Kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error returns the name of the Kind, so that it can be used as a sentinel.
func (k Kind) Error() string {
	return k.String()
}

// Registration returns whether k is one of the kinds that can only occur while
// building a glossary. Such errors are configuration errors and should abort
// startup.
func (k Kind) Registration() bool {
	return k >= DuplicateDefinitionID && k <= InvalidUsage
}

// interpreterError is an error caused by attempting to interpret input or to
// register glossary content. Either the input could not be understood or the
// configuration given is not consistent.
//
// interpreterError includes a human-readable message to show to an operator as
// well as a typical more technical "error message" style message.
type interpreterError struct {
	kind  Kind
	msg   string
	human string
	wrap  error
}

func (e *interpreterError) Error() string {
	return e.msg
}

// GameMessage shows the message that should be displayed in-game to describe
// the error.
func (e *interpreterError) GameMessage() string {
	return e.human
}

// Unwrap gives the error that the interpreterError wraps, if it wraps one.
func (e *interpreterError) Unwrap() error {
	return e.wrap
}

// Is returns whether target is the Kind of e.
func (e *interpreterError) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return k == e.kind
	}
	return false
}

// Interpreter returns a new error that has both the message to show the player
// and the technical description of the error. Its Kind is Unspecified.
func Interpreter(game, technical string) error {
	return New(Unspecified, game, technical)
}

// Interpreterf returns a new error that has a message to show to the player
// and an automatically generated Error() description. The arguments given are
// the format string and the arguments to the format string.
func Interpreterf(gameFormat string, a ...interface{}) error {
	gameMessage := fmt.Sprintf(gameFormat, a...)
	return Interpreter(gameMessage, "")
}

// New returns a new error of the given Kind that has both the message to show
// the player and the technical description of the error. If technical is empty,
// one is generated from the kind and the game message.
func New(kind Kind, game, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("%s: %s", kind, game)
	}
	return &interpreterError{
		kind:  kind,
		msg:   technical,
		human: game,
	}
}

// Newf returns a new error of the given Kind whose game message is built from
// the format string and its arguments.
func Newf(kind Kind, gameFormat string, a ...interface{}) error {
	return New(kind, fmt.Sprintf(gameFormat, a...), "")
}

// WrapInterpreter returns a new error that has both the message to show the
// player and the technical description of the error, and that wraps the given
// error. The returned error has the Kind of e if e has one.
func WrapInterpreter(e error, game, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("%s: %s", KindOf(e), game)
	}
	return &interpreterError{
		kind:  KindOf(e),
		msg:   technical,
		human: game,
		wrap:  e,
	}
}

// WrapInterpreterf returns a new error that has both the message to show the
// player and an automatically generated Error() description, and that wraps
// the given error. The arguments given are the error to wrap, then the format
// followed by its arguments.
func WrapInterpreterf(e error, gameFormat string, a ...interface{}) error {
	gameMessage := fmt.Sprintf(gameFormat, a...)
	return WrapInterpreter(e, gameMessage, "")
}

// KindOf returns the Kind of err. If err is nil or was not created by this
// package, Unspecified is returned.
func KindOf(err error) Kind {
	for err != nil {
		switch e := err.(type) {
		case *interpreterError:
			return e.kind
		case Kind:
			return e
		}

		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return Unspecified
}

// GameMessage gets the message to display to the console for the given error.
// If it is one of the types defined in tqerrors, the special game message is
// returned (if it exists), even if it is wrapped by another error. Otherwise,
// err.Error() is returned.
func GameMessage(err error) string {
	var intErr *interpreterError
	if errors.As(err, &intErr) {
		return intErr.GameMessage()
	}
	return err.Error()
}

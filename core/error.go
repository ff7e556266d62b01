package core

import (
	"errors"
	"strconv"
)

// Code is the signed result code a console backend reports on failure.
// Codes are always negative; non-negative results mean success.
type Code int

const (
	// CodeNoPendingChar means a healthy input backend has nothing ready
	CodeNoPendingChar Code = -1
	// CodeIO is a generic hardware or transport failure
	CodeIO Code = -5
	// CodeNotSupported means the backend does not implement the request
	CodeNotSupported Code = -95
	// CodeNoValidConsole means no active console could serve the request
	CodeNoValidConsole Code = -128
)

// String returns a short name for well-known codes and the number otherwise
func (c Code) String() string {
	switch c {
	case CodeNoPendingChar:
		return "no pending char"
	case CodeIO:
		return "i/o error"
	case CodeNotSupported:
		return "not supported"
	case CodeNoValidConsole:
		return "no valid console"
	default:
		return "code " + strconv.Itoa(int(c))
	}
}

// Error describes a failure reported by, or on behalf of, a console. Errors
// compare equal under errors.Is when their codes match, so a backend may
// return its own *Error carrying CodeNoPendingChar and still be treated as
// "nothing pending".
type Error struct {
	// Console is the name of the console that reported the error, if known.
	Console string

	// Code is the negative result code.
	Code Code

	// Message is an optional human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code.String()
	}
	if e.Console == "" {
		return msg
	}
	return e.Console + ": " + msg
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	// ErrNoValidConsole is returned when no active console with the required
	// capability exists.
	ErrNoValidConsole = &Error{Code: CodeNoValidConsole}

	// ErrNoPendingChar is returned by input backends that have no character
	// ready. It drives the retry loop of the input dispatcher.
	ErrNoPendingChar = &Error{Code: CodeNoPendingChar}

	// ErrNotSupported is returned by backends asked for something they cannot do.
	ErrNotSupported = &Error{Code: CodeNotSupported}
)

// Result normalises a backend return value. A nil error with a negative
// value is turned into an *Error carrying that value as its code.
func Result(n int, err error) (int, error) {
	if err != nil {
		return n, err
	}
	if n < 0 {
		return n, &Error{Code: Code(n)}
	}
	return n, nil
}

// CodeOf returns the result code carried by err. Errors that do not wrap an
// *Error map to CodeIO; a nil error has code 0.
func CodeOf(err error) Code {
	if err == nil {
		return 0
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return CodeIO
}

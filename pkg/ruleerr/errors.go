// Package ruleerr is the engine's closed error taxonomy. It mirrors the
// teacher's udferr.UDFError shape (a kind plus a message, with an unwrap
// helper) rather than ad hoc fmt.Errorf strings, so callers can switch on
// Kind() instead of parsing messages.
package ruleerr

import "fmt"

// Kind identifies which of the engine's error categories an error belongs
// to. Compile-time kinds (Syntax, InvalidExpression) are returned
// synchronously from build(); runtime kinds terminate a verdict stream.
type Kind int16

const (
	// Syntax means the grammar did not accept the input.
	Syntax Kind = iota
	// InvalidExpression means parsing succeeded but validation failed.
	InvalidExpression
	// UnresolvedVariable means a runtime variable lookup missed.
	UnresolvedVariable
	// DivisionByZero means a runtime arithmetic division by zero.
	DivisionByZero
	// UnsupportedOperator means an operator reached evaluation that a
	// correct parser should never have produced.
	UnsupportedOperator
	// UpstreamError means the source stream itself errored.
	UpstreamError
	// Unknown is the fallback for errors that don't carry a Kind.
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "SyntaxError"
	case InvalidExpression:
		return "InvalidExpression"
	case UnresolvedVariable:
		return "UnresolvedVariable"
	case DivisionByZero:
		return "DivisionByZero"
	case UnsupportedOperator:
		return "UnsupportedOperator"
	case UpstreamError:
		return "UpstreamError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type for every engine failure. Location is
// best-effort (character offset into the source text) and may be empty for
// runtime errors that have no textual position.
type Error struct {
	kind     Kind
	message  string
	location string
}

// New builds an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, message: msg}
}

// Newf builds an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// WithLocation attaches a source location to the error and returns it.
func (e *Error) WithLocation(loc string) *Error {
	e.location = loc
	return e
}

func (e *Error) Error() string {
	if e.location != "" {
		return fmt.Sprintf("%s at %s: %s", e.kind, e.location, e.message)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

// Kind returns the error's category.
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the error's message without the kind prefix.
func (e *Error) Message() string {
	return e.message
}

// FromError extracts Kind/Message from err, defaulting to Unknown if err
// does not carry them. Mirrors the teacher's udferr.FromError.
func FromError(err error) (*Error, bool) {
	if err == nil {
		return nil, true
	}
	if se, ok := err.(interface {
		Kind() Kind
		Message() string
	}); ok {
		return &Error{kind: se.Kind(), message: se.Message()}, true
	}
	return &Error{kind: Unknown, message: err.Error()}, false
}

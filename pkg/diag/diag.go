package diag

import (
	"fmt"

	"github.com/minhtribui153/xlang/pkg/source"
)

// Kind names a diagnostic category as shown to the user.
type Kind string

const (
	IllegalCharacter Kind = "IllegalCharacterError"
	InvalidSyntax    Kind = "InvalidSyntaxError"
	IllegalOperation Kind = "IllegalOperationError"
	Runtime          Kind = "RuntimeError"
	InvalidType      Kind = "InvalidTypeError"
	Overflow         Kind = "OverflowError"
	ZeroDivision     Kind = "ZeroDivisionError"
	NotSupported     Kind = "NotSupportedError"
)

// Frame is one activation in a traceback chain.
type Frame interface {
	FrameName() string
	FrameParent() Frame
	EntryPosition() source.Position
}

// Error is a located language error.
//
// Overwritable marks a generic parser message that a caller holding a more
// precise diagnostic may replace.
type Error struct {
	Kind         Kind
	Message      string
	Span         source.Span
	Frame        Frame
	Overwritable bool
}

// New constructs an overwritable error of the given kind.
func New(kind Kind, span source.Span, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Message: msg, Span: span, Overwritable: true}
}

// Fixed marks the error as non-overwritable.
func (e *Error) Fixed() *Error {
	e.Overwritable = false
	return e
}

// In attaches the frame the error was raised in.
func (e *Error) In(frame Frame) *Error {
	e.Frame = frame
	return e
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Span.Start, e.Kind, e.Message)
}

// HasTraceback reports whether the error was raised below the root frame.
func (e *Error) HasTraceback() bool {
	return e.Frame != nil && e.Frame.FrameParent() != nil
}

package diag

import (
	"errors"
	"fmt"

	"depyler/internal/source"
)

// Error is a code-carrying generator error. Position information is
// attached by the caller that knows the enclosing statement.
type Error struct {
	Code    Code
	Message string
	Span    source.Span
}

func (e *Error) Error() string {
	return e.Code.String() + ": " + e.Message
}

// New builds a diagnostic error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// UnknownMethod reports a method missing from a receiver family's
// whitelist, e.g. "Unknown list method: foo".
func UnknownMethod(family, name string) *Error {
	return New(GenUnknownMethod, "Unknown %s method: %s", family, name)
}

// Arity reports a recognised method called with the wrong argument
// count, phrased at the Python level.
func Arity(method string, want string, got int) *Error {
	return New(GenArityMismatch, "%s() takes %s arguments (%d given)", method, want, got)
}

// Unsupported reports a recognised construct whose semantics are not
// implementable yet.
func Unsupported(format string, args ...any) *Error {
	return New(GenUnsupported, format, args...)
}

// Internal reports a violated generator invariant.
func Internal(format string, args ...any) *Error {
	return New(GenInternal, format, args...)
}

// CodeOf extracts the diagnostic code from an error chain.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return UnknownCode
}

// WithSpan returns a copy of the error annotated with a source span.
func (e *Error) WithSpan(sp source.Span) *Error {
	out := *e
	out.Span = sp
	return &out
}

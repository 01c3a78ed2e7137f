package diagnose

import (
	"fmt"
	"strconv"
	"strings"
)

// fallbackMessage is used when an Error is built without
// a message.
const fallbackMessage = "diagnose.Error"

// Error is a template failure annotated with the template
// file and, when known, the 1-based line it originates
// from. It is immutable once built.
type Error struct {
	message string
	path    string
	line    int
	cause   error
}

// Option configures an Error built by New.
type Option func(*Error)

// WithMessage sets the message. An empty message is kept
// as is.
func WithMessage(msg string) Option {
	return func(er *Error) {
		er.message = msg
	}
}

// WithPath sets the template file the error refers to.
func WithPath(path string) Option {
	return func(er *Error) {
		er.path = path
	}
}

// WithLine sets the 1-based line within the template
// file. Values below 1 mean "unknown".
func WithLine(line int) Option {
	return func(er *Error) {
		er.line = line
	}
}

// WithCause sets the underlying failure.
func WithCause(err error) Option {
	return func(er *Error) {
		er.cause = err
	}
}

// New builds an Error from opts. No line resolution takes
// place. A line given without a path is dropped.
func New(opts ...Option) *Error {
	er := &Error{message: fallbackMessage}

	for _, opt := range opts {
		opt(er)
	}

	if er.path == "" || er.line < 1 {
		er.line = 0
	}

	return er
}

// Wrap converts err into an Error referring to path. An
// Error is returned unchanged. Otherwise the message is
// err's message and the line is resolved from err's trace
// when one is available.
func Wrap(err error, path string) *Error {
	if err == nil {
		return nil
	}

	return wrap(err, path, err.Error())
}

// Wrapf is Wrap with a formatted message in place of
// err's own.
func Wrapf(
	err error,
	path string,
	format string,
	args ...any,
) *Error {
	if err == nil {
		return nil
	}

	return wrap(err, path, fmt.Sprintf(format, args...))
}

func wrap(err error, path string, msg string) *Error {
	if er, ok := err.(*Error); ok { //nolint:errorlint // identity on the error itself, not its chain
		return er
	}

	line, _ := ResolveLine(TraceOf(err), path)

	return New(
		WithMessage(msg),
		WithPath(path),
		WithLine(line),
		WithCause(err),
	)
}

// Error describes the failure, naming the file and line
// when they are known.
func (er *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(er.message)

	switch {
	case er.path != "" && er.line > 0:
		sb.WriteString(" in '")
		sb.WriteString(er.path)
		sb.WriteString("' on line ")
		sb.WriteString(strconv.Itoa(er.line))
	case er.path != "":
		sb.WriteString(" in '")
		sb.WriteString(er.path)
		sb.WriteString("'")
	}

	return sb.String()
}

// Message returns the message without location details.
func (er *Error) Message() string {
	return er.message
}

// Path returns the template file, or "" when unknown.
func (er *Error) Path() string {
	return er.path
}

// Line returns the 1-based line and whether it is known.
func (er *Error) Line() (int, bool) {
	return er.line, er.line > 0
}

// Unwrap returns the underlying failure.
func (er *Error) Unwrap() error {
	return er.cause
}

// ContextLines returns the source window around the
// failing line. See ContextLines.
func (er *Error) ContextLines(radius int) ([]string, error) {
	return ContextLines(er.path, er.line, radius)
}

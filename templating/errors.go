package templating

import (
	"errors"
	"fmt"
)

// ErrUndefined is wrapped by evaluation errors for tags
// naming a variable or field that does not exist.
var ErrUndefined = errors.New("undefined")

// Frame locates a tag within a template.
type Frame struct {
	Name   string
	Line   int
	Column int
	Tag    string
}

// String renders the frame as "<name>:<line>:<col>: in <tag>".
func (fr Frame) String() string {
	return fmt.Sprintf(
		"%s:%d:%d: in %s", fr.Name, fr.Line, fr.Column, fr.Tag,
	)
}

// SyntaxError reports a malformed template. It is raised
// before any tag is evaluated.
type SyntaxError struct {
	Name   string
	Line   int
	Column int
	Msg    string
}

func (se *SyntaxError) Error() string {
	return fmt.Sprintf(
		"%s:%d:%d: syntax error: %s",
		se.Name, se.Line, se.Column, se.Msg,
	)
}

// EvalError reports a failure while evaluating a tag.
type EvalError struct {
	Frame Frame
	Err   error
}

func (ee *EvalError) Error() string {
	return ee.Err.Error()
}

func (ee *EvalError) Unwrap() error {
	return ee.Err
}

// Trace returns the tag's frame followed by the trace of
// the underlying error, if it carries one.
func (ee *EvalError) Trace() []string {
	trace := []string{ee.Frame.String()}

	var inner interface{ Trace() []string }
	if errors.As(ee.Err, &inner) {
		trace = append(trace, inner.Trace()...)
	}

	return trace
}

func undefinedVariable(name string) error {
	return fmt.Errorf("%w variable %q", ErrUndefined, name)
}

func undefinedField(field string, parent string) error {
	return fmt.Errorf(
		"%w field %q in %q", ErrUndefined, field, parent,
	)
}

package view

import (
	"errors"
	"fmt"
	"os"

	"github.com/byte4ever/tmplview/diagnose"
	"github.com/byte4ever/tmplview/locals"
	"github.com/byte4ever/tmplview/templating"
)

// stringName names templates that do not come from a
// file in error messages.
const stringName = "(string)"

// View is a template bound to a set of locals.
type View struct {
	path    string
	content string
	locals  map[string]any
	engine  templating.Engine
}

// Option configures a View.
type Option func(*View)

// WithEngine selects the engine used to render, for
// instance to change the tag delimiters.
func WithEngine(en templating.Engine) Option {
	return func(vw *View) {
		vw.engine = en
	}
}

// New reads the template at path and binds it to vars.
// Read failures are returned as filesystem errors.
func New(
	path string,
	vars map[string]any,
	opts ...Option,
) (*View, error) {
	const errCtx = "loading template"

	content, err := os.ReadFile(path) //nolint:gosec // caller-selected template
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	vw := NewString(string(content), vars, opts...)
	vw.path = path

	return vw, nil
}

// NewString binds template text to vars.
func NewString(
	content string,
	vars map[string]any,
	opts ...Option,
) *View {
	vw := &View{
		content: content,
		locals:  locals.Merge(vars, nil),
	}

	for _, opt := range opts {
		opt(vw)
	}

	return vw
}

// Path returns the template file, or "" for string
// templates.
func (vw *View) Path() string {
	return vw.path
}

// Content returns the template text.
func (vw *View) Content() string {
	return vw.content
}

// Locals returns a copy of the bound locals.
func (vw *View) Locals() map[string]any {
	return locals.Merge(vw.locals, nil)
}

// Render renders the template with the bound locals
// overridden by extra. Failures are *diagnose.Error.
func (vw *View) Render(extra map[string]any) (string, error) {
	out, err := vw.engine.Render(
		vw.name(),
		vw.content,
		locals.Merge(vw.locals, extra),
	)
	if err != nil {
		return "", vw.translate(err)
	}

	return out, nil
}

func (vw *View) name() string {
	if vw.path == "" {
		return stringName
	}

	return vw.path
}

// translate converts an engine failure. Syntax errors
// keep the template name in the message only; other
// failures are wrapped with line resolution against the
// template file.
func (vw *View) translate(err error) *diagnose.Error {
	var se *templating.SyntaxError
	if errors.As(err, &se) {
		return diagnose.New(
			diagnose.WithMessage(fmt.Sprintf(
				"Syntax error in template %s: %s",
				vw.name(), err,
			)),
			diagnose.WithCause(err),
		)
	}

	return diagnose.Wrapf(
		err, vw.path,
		"Error rendering template %s: %s", vw.name(), err,
	)
}

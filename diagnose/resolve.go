package diagnose

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Tracer is implemented by errors that carry a location
// trail. Entries conventionally read
// "<path>:<line>:<detail>".
type Tracer interface {
	Trace() []string
}

var lineField = regexp.MustCompile(`:(\d+):`)

// TraceOf returns the trace of the first error in err's
// chain implementing Tracer, or nil.
func TraceOf(err error) []string {
	var tr Tracer
	if errors.As(err, &tr) {
		return tr.Trace()
	}

	return nil
}

// ResolveLine returns the line number recorded by the
// first trace entry mentioning path. Only that entry is
// considered: when it has no ":<digits>:" field after
// the path, the result is (0, false).
func ResolveLine(
	trace []string,
	path string,
) (int, bool) {
	if path == "" || len(trace) == 0 {
		return 0, false
	}

	for _, entry := range trace {
		idx := strings.Index(entry, path)
		if idx < 0 {
			continue
		}

		match := lineField.FindStringSubmatch(entry[idx:])
		if match == nil {
			return 0, false
		}

		line, err := strconv.Atoi(match[1])
		if err != nil || line < 1 {
			return 0, false
		}

		return line, true
	}

	return 0, false
}

package diagnose

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// DefaultRadius is the number of lines shown on each side
// of the failing line.
const DefaultRadius = 5

const (
	markerLine = "=>"
	markerNone = "  "
)

// ContextLines returns the lines of path surrounding
// line (1-based), radius lines on each side, clipped to
// the file. The target line is prefixed with "=>", the
// others with two spaces.
//
// A missing path, a line below 1 or a file that does not
// exist yield an empty result. Any other filesystem
// failure is returned.
func ContextLines(
	path string,
	line int,
	radius int,
) ([]string, error) {
	const errCtx = "reading context lines"

	if path == "" || line < 1 {
		return nil, nil
	}

	radius = max(radius, 0)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	content, err := os.ReadFile(path) //nolint:gosec // path of the failing template
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	lines := splitLines(string(content))

	start := max(line-radius-1, 0)
	end := min(line+radius-1, len(lines)-1)

	if start > end {
		return nil, nil
	}

	window := make([]string, 0, end-start+1)

	for idx := start; idx <= end; idx++ {
		marker := markerNone
		if idx+1 == line {
			marker = markerLine
		}

		window = append(
			window,
			fmt.Sprintf("%s %d: %s", marker, idx+1, lines[idx]),
		)
	}

	return window, nil
}

// splitLines breaks content into lines on "\n" and
// strips the terminator, including a preceding "\r". A
// trailing newline does not start an extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(
		strings.TrimSuffix(content, "\n"), "\n",
	)

	for idx, ln := range lines {
		lines[idx] = strings.TrimSuffix(ln, "\r")
	}

	return lines
}

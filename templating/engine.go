package templating

import (
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Engine renders templates against a variable map.
type Engine struct {
	StartTag string
	EndTag   string
	// KeepUnknown writes tags naming unknown variables back
	// verbatim instead of failing.
	KeepUnknown bool
}

// tagPos is a tag's text and where it starts.
type tagPos struct {
	text   string
	line   int
	column int
}

// Render evaluates content against vars. The name
// identifies the template in errors and traces.
//
// Processing happens in two steps:
//  1. Scan the template for tags. An opening tag without
//     a closing tag, or an empty tag, is a *SyntaxError.
//  2. Substitute every tag with the value it names. An
//     unknown name is an *EvalError wrapping ErrUndefined
//     unless KeepUnknown is set.
func (en *Engine) Render(
	name string,
	content string,
	vars map[string]any,
) (string, error) {
	startTag, endTag := en.tags()

	positions, err := scanTags(
		name, content, startTag, endTag,
	)
	if err != nil {
		return "", err
	}

	tpl, err := fasttemplate.NewTemplate(
		content, startTag, endTag,
	)
	if err != nil {
		return "", &SyntaxError{
			Name: name, Line: 1, Column: 1, Msg: err.Error(),
		}
	}

	next := 0

	return tpl.ExecuteFuncStringWithErr(
		func(w io.Writer, tag string) (int, error) {
			pos := positions[next]
			next++

			val, err := lookup(vars, strings.TrimSpace(tag))
			if err != nil {
				if en.KeepUnknown {
					return io.WriteString(
						w, startTag+tag+endTag,
					)
				}

				return 0, &EvalError{
					Frame: Frame{
						Name:   name,
						Line:   pos.line,
						Column: pos.column,
						Tag:    startTag + pos.text + endTag,
					},
					Err: err,
				}
			}

			return io.WriteString(w, format(val))
		},
	)
}

// tags returns the configured start/end tags, falling
// back to double-brace defaults.
func (en *Engine) tags() (string, string) {
	startTag := en.StartTag
	if startTag == "" {
		startTag = "{{"
	}

	endTag := en.EndTag
	if endTag == "" {
		endTag = "}}"
	}

	return startTag, endTag
}

// scanTags walks content the same way fasttemplate
// splits it, recording where each tag starts.
func scanTags(
	name string,
	content string,
	startTag string,
	endTag string,
) ([]tagPos, error) {
	var positions []tagPos

	offset := 0

	for {
		idx := strings.Index(content[offset:], startTag)
		if idx < 0 {
			return positions, nil
		}

		tagStart := offset + idx
		line, column := lineColumn(content, tagStart)
		bodyStart := tagStart + len(startTag)

		end := strings.Index(content[bodyStart:], endTag)
		if end < 0 {
			return nil, &SyntaxError{
				Name:   name,
				Line:   line,
				Column: column,
				Msg: fmt.Sprintf(
					"unclosed tag: missing %q", endTag,
				),
			}
		}

		text := content[bodyStart : bodyStart+end]
		if strings.TrimSpace(text) == "" {
			return nil, &SyntaxError{
				Name:   name,
				Line:   line,
				Column: column,
				Msg:    "empty tag",
			}
		}

		positions = append(positions, tagPos{
			text:   text,
			line:   line,
			column: column,
		})

		offset = bodyStart + end + len(endTag)
	}
}

// lineColumn converts a byte offset into a 1-based line
// and column.
func lineColumn(content string, offset int) (int, int) {
	before := content[:offset]
	line := strings.Count(before, "\n") + 1
	column := offset - strings.LastIndex(before, "\n")

	return line, column
}

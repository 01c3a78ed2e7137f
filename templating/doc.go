// Package templating renders templates whose tags name variables, using
// valyala/fasttemplate with configurable delimiters (default "{{" and
// "}}"). Tags may walk into nested values with dotted paths such as
// "user.name" or "items.0".
//
// Malformed templates are reported as *SyntaxError before any evaluation
// happens. Failures during evaluation are reported as *EvalError, which
// records the template name, line and column of the offending tag and
// exposes them as a location trace.
package templating

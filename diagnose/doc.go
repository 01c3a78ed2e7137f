// Package diagnose turns template rendering failures into errors that
// name the template file and, when it can be recovered from the failure's
// location trace, the offending line. Error carries the file, line and
// underlying cause; ResolveLine recovers a line from a trace; ContextLines
// renders an annotated window of source lines around it.
package diagnose

// Package view loads a template from a file or a string, renders it with
// a set of locals through a templating.Engine, and turns any rendering
// failure into a *diagnose.Error naming the template and, when it can be
// resolved, the failing line.
//
// A template file that cannot be read is reported as the underlying
// filesystem error, never as a *diagnose.Error: it fails before any
// template-specific context exists.
package view

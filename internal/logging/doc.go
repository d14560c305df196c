// Package logging provides a unified logging interface for errdemo.
// It abstracts the underlying logging implementation, allowing consistent logging
// across components while supporting multiple backends.
//
// Logs always go to standard error: standard output is reserved for the
// messages the demonstration units print.
package logging

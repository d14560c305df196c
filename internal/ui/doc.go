// Package ui provides theme and color support for errdemo's terminal output.
// It defines color schemes, ANSI escape code accessors and a few lipgloss
// helpers for headers, status words and column padding.
//
// This package is designed to be a shared dependency for packages that need
// color output, reducing coupling between the demonstration units and
// presentation.
package ui

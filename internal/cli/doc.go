// Package cli renders run results for the terminal: the summary table, the
// unit and condition listings, error lines, and the interactive explorer.
package cli

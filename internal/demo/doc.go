// Package demo runs the failure-handling demonstration units.
//
// A Unit pairs one fallible operation with the failure conditions it
// declares. The Runner executes units strictly in order: it attempts the
// operation, lets the first matching Handler print its message, prints the
// unit's no-failure message when nothing went wrong, and always prints the
// cleanup message last. A failure no handler declares propagates out of the
// unit and, unless the runner keeps going, stops the run.
//
// Builtin returns the fixed tour of units shipped with errdemo; Select
// narrows it to a chosen subset.
package demo

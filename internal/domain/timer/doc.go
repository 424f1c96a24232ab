// Package timer contains the stopwatch and countdown state machine.
//
// An Instance holds the mutable state of one timer. ParseCommand turns a
// command line into a Command, Apply drives the state machine with it,
// Compute derives elapsed/paused/total seconds for a Snapshot at a given
// tick, and Render formats the result into the four-line status block.
//
// Everything here is synchronous and free of locking; callers serialize
// access to an Instance.
package timer

// Package console implements the interactive operator shell of timerd.
//
// Each line is either a console command (list, write, read, dump, level)
// or "<endpoint> <command>" as a shorthand for write. Writes and reads go
// through endpoint sessions, so the shell sees exactly what any other
// client of an endpoint would see.
package console

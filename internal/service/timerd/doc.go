// Package timerd wires configuration, the tick source, metrics and the timer
// endpoints together and runs the operator console.
package timerd

// Package endpoint hosts timer instances behind named endpoints.
//
// A Registry owns the endpoints of a process. Each Endpoint serializes
// access to its timer with a mutex and keeps an edge-triggered read gate:
// every write arms it, the first read afterwards returns the status block
// and disarms it. Session wraps an endpoint as an io.ReadWriter.
package endpoint

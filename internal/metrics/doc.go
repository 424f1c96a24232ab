// Package metrics counts timer commands and reads with Prometheus and can
// serve them over HTTP.
package metrics

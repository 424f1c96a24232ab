// Package config defines the timer daemon settings and provides helpers to
// load, validate and save them in YAML format.
//
// The Config type holds the tick rate, log level, status buffer limit,
// optional metrics address and the list of timer endpoints.
package config

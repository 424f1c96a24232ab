// Package version exposes build metadata of timerd.
//
// Version, Commit and BuildTime are injected at build time via Go ldflags.
// Short and Full render them for the CLI, KV for structured logs.
package version

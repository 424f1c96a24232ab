// Package logger wraps zap with a process-wide sugared logger.
//
// Loggers travel in a context.Context: callers enrich them with WithName,
// WithKV or WithFields and log through the *KV helpers. WithLevel pins a
// derived logger to its own level, which lets one endpoint be debugged
// without raising the level of the whole process.
package logger

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// coreWithLevel overrides the level of the wrapped core, so a single endpoint
// can log more or less than the rest of the process.
type coreWithLevel struct {
	zapcore.Core

	// level replaces the wrapped core's own level.
	level zapcore.Level
}

// Enabled ignores the wrapped core's level.
func (c *coreWithLevel) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l)
}

// Check writes straight to the wrapped core when the override allows the entry.
//
//nolint:gocritic // AddCore requires ent to be passed by value.
func (c *coreWithLevel) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(ent.Level) {
		return ce
	}

	return ce.AddCore(ent, c)
}

//nolint:ireturn,nolintlint // zapcore.Core is the required return type.
func (c *coreWithLevel) With(fields []zapcore.Field) zapcore.Core {
	return &coreWithLevel{Core: c.Core.With(fields), level: c.level}
}

// WithLevel returns an option that pins a derived logger to lvl regardless of
// the shared default level.
//
//nolint:ireturn,nolintlint // zap.Option is the required return type.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		if wrapped, ok := core.(*coreWithLevel); ok {
			core = wrapped.Core
		}

		return &coreWithLevel{Core: core, level: lvl}
	})
}

// WithLevelOverride returns l pinned to level.
func WithLevelOverride(l *zap.SugaredLogger, level zapcore.Level) *zap.SugaredLogger {
	return l.WithOptions(WithLevel(level))
}

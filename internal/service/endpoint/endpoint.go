package endpoint

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap/zapcore"

	"github.com/oshokin/timer-endpoints/internal/domain/timer"
	"github.com/oshokin/timer-endpoints/internal/logger"
	"github.com/oshokin/timer-endpoints/internal/tick"
)

// Observer receives the outcome of every command and read.
type Observer interface {
	CommandApplied(endpoint string, cmd timer.Command, err error)
	ReportRead(endpoint string, delivered bool)
}

// readGate is the edge trigger between writes and reads.
type readGate uint8

const (
	// gateConsumed means the last report was already read.
	gateConsumed readGate = iota
	// gateArmed means the next read returns a report.
	gateArmed
)

// arm lets the next read through.
func (g *readGate) arm() {
	*g = gateArmed
}

// consume reports whether the gate was armed and disarms it.
func (g *readGate) consume() bool {
	if *g != gateArmed {
		return false
	}

	*g = gateConsumed

	return true
}

// Endpoint is one addressable timer. All methods are safe for concurrent use;
// writes, reads and snapshots of the same endpoint are serialized.
type Endpoint struct {
	// name is the address of the endpoint.
	name string
	// source supplies the current tick.
	source tick.Source
	// observer is notified about commands and reads.
	observer Observer
	// reportLimit caps the size of a rendered report.
	reportLimit int
	// instance is the timer state owned by this endpoint.
	instance *timer.Instance
	// gate decides whether the next read returns a report.
	gate readGate
	// logLevel pins the level of this endpoint's log entries when set.
	logLevel *zapcore.Level
	// mu serializes access to instance, gate and logLevel.
	mu sync.Mutex
}

// newEndpoint creates an endpoint with a ready timer of the given kind.
func newEndpoint(name string, kind timer.Kind, source tick.Source, observer Observer, reportLimit int) *Endpoint {
	return &Endpoint{
		name:        name,
		source:      source,
		observer:    observer,
		reportLimit: reportLimit,
		instance:    timer.NewInstance(kind),
	}
}

// Name returns the address of the endpoint.
func (e *Endpoint) Name() string {
	return e.name
}

// Kind returns the timer kind of the endpoint.
func (e *Endpoint) Kind() timer.Kind {
	return e.instance.Kind()
}

// Write parses line and applies it to the timer. The returned error tells
// whether the command was rejected; either way the write is consumed and the
// next read is armed.
func (e *Endpoint) Write(ctx context.Context, line string) error {
	cmd := timer.ParseCommand(line)

	e.mu.Lock()
	before := e.instance.State()
	err := timer.Apply(e.instance, cmd, e.source.Now(), e.source.Rate())
	after := e.instance.State()
	e.gate.arm()
	ctx = e.logContext(ctx)
	e.mu.Unlock()

	e.observer.CommandApplied(e.name, cmd, err)

	if err != nil {
		logger.WarnKV(ctx, "Command rejected",
			"endpoint", e.name,
			"command", cmd.Line,
			"state", before.String(),
			"error", err)

		return err
	}

	logger.InfoKV(ctx, "Command applied",
		"endpoint", e.name,
		"command", cmd.Tag.String(),
		"from", before.String(),
		"to", after.String())

	return nil
}

// Read returns the status block if a write (or a session open) happened since
// the last read. Otherwise ok is false.
func (e *Endpoint) Read(ctx context.Context) (report string, ok bool, err error) {
	e.mu.Lock()
	ctx = e.logContext(ctx)

	if !e.gate.consume() {
		e.mu.Unlock()
		e.observer.ReportRead(e.name, false)

		return "", false, nil
	}

	var (
		snap = e.instance.Snapshot()
		now  = e.source.Now()
	)
	e.mu.Unlock()

	report, err = timer.RenderLimit(timer.Compute(snap, now, e.source.Rate()), e.reportLimit)
	if err != nil {
		logger.ErrorKV(ctx, "Failed to render status", "endpoint", e.name, "error", err)

		return "", false, fmt.Errorf("render %s: %w", e.name, err)
	}

	e.observer.ReportRead(e.name, true)
	logger.DebugKV(ctx, "Status delivered", "endpoint", e.name, "state", snap.State.String())

	return report, true, nil
}

// Snapshot returns a copy of the timer state without touching the read gate.
func (e *Endpoint) Snapshot() timer.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.instance.Snapshot()
}

// SetLogLevel pins the level of this endpoint's log entries. A nil level
// restores the process level.
func (e *Endpoint) SetLogLevel(level *zapcore.Level) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if level == nil {
		e.logLevel = nil

		return
	}

	pinned := *level
	e.logLevel = &pinned
}

// logContext applies the level override to the logger in ctx. Callers hold mu.
func (e *Endpoint) logContext(ctx context.Context) context.Context {
	if e.logLevel == nil {
		return ctx
	}

	return logger.ToContext(ctx, logger.WithLevelOverride(logger.FromContext(ctx), *e.logLevel))
}

// arm re-arms the read gate, as opening the endpoint does.
func (e *Endpoint) arm() {
	e.mu.Lock()
	e.gate.arm()
	e.mu.Unlock()
}

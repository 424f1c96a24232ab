package endpoint

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/oshokin/timer-endpoints/internal/logger"
)

// Session is an open handle on an endpoint that behaves like a character
// device: Write takes one command line, Read returns the status block once
// per write and then io.EOF.
//
// A Session is meant for a single caller; the endpoint underneath is shared.
type Session struct {
	// id identifies the session in logs.
	id uuid.UUID
	// ctx carries the session logger for the io methods.
	ctx context.Context //nolint:containedctx // io.ReadWriter methods take no context.
	// endpoint is the timer the session is bound to.
	endpoint *Endpoint
	// pending holds the unread remainder of the current report.
	pending []byte
}

// Open returns a new session on the endpoint and arms its read gate.
func (e *Endpoint) Open(ctx context.Context) *Session {
	id := uuid.New()
	ctx = logger.WithKV(ctx, "session", id.String())

	e.arm()

	logger.DebugKV(ctx, "Session opened", "endpoint", e.name)

	return &Session{
		id:       id,
		ctx:      ctx,
		endpoint: e,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Endpoint returns the endpoint the session is bound to.
func (s *Session) Endpoint() *Endpoint {
	return s.endpoint
}

// Write applies the command line in p. It always consumes the whole buffer:
// rejected commands are only visible in logs, metrics and the next report.
func (s *Session) Write(p []byte) (int, error) {
	//nolint:errcheck // Rejections are reported by the endpoint, not to the writer.
	_ = s.endpoint.Write(s.ctx, string(p))

	s.pending = nil

	return len(p), nil
}

// Read copies the current report into p. A report larger than p is handed out
// over several calls. When nothing is pending, Read returns io.EOF.
func (s *Session) Read(p []byte) (int, error) {
	if len(s.pending) == 0 {
		report, ok, err := s.endpoint.Read(s.ctx)
		if err != nil {
			return 0, err
		}

		if !ok {
			return 0, io.EOF
		}

		s.pending = []byte(report)
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]

	return n, nil
}

// Close releases the session.
func (s *Session) Close() error {
	s.pending = nil

	logger.DebugKV(s.ctx, "Session closed", "endpoint", s.endpoint.name)

	return nil
}

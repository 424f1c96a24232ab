package timer

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects the behaviour of a timer. It is fixed for the timer's lifetime.
type Kind uint8

const (
	// KindStopwatch counts upward from start.
	KindStopwatch Kind = iota + 1
	// KindCountdown counts down from a loaded duration.
	KindCountdown
)

// ErrUnknownKind is returned when a kind name is not recognized.
var ErrUnknownKind = errors.New("unknown timer kind")

// ParseKind converts "stopwatch" or "countdown" into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stopwatch":
		return KindStopwatch, nil
	case "countdown":
		return KindCountdown, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStopwatch:
		return "stopwatch"
	case KindCountdown:
		return "countdown"
	default:
		return "unknown"
	}
}

// MarshalYAML renders the kind by name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// State is the current position of a timer in its state machine.
type State uint8

const (
	// StateReady is the initial state and the target of every reset.
	StateReady State = iota
	// StateLoaded means a countdown has a target duration but is not running.
	StateLoaded
	// StateRunning means the timer is counting.
	StateRunning
	// StatePaused means the timer is suspended and pause time is accumulating.
	StatePaused
)

// String returns the label shown in the status block.
func (s State) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateLoaded:
		return "LOADED"
	case StateRunning:
		return "RUNNING"
	case StatePaused:
		return "PAUSED"
	default:
		return "UNKNOWN"
	}
}

// MarshalYAML renders the state by its label.
func (s State) MarshalYAML() (any, error) {
	return s.String(), nil
}

package timer

import "errors"

var (
	// ErrRejectedTransition is returned when a known command does not apply to the current state.
	ErrRejectedTransition = errors.New("transition rejected")
	// ErrUnknownTag is returned for a command whose tag is not recognized.
	ErrUnknownTag = errors.New("unknown command tag")
	// ErrMalformedValue is returned when the numeric suffix of a command cannot be parsed,
	// or when load carries no value at all.
	ErrMalformedValue = errors.New("malformed command value")
	// ErrLoadOverflow is returned when a loaded duration does not fit into the tick counter.
	ErrLoadOverflow = errors.New("loaded duration overflows tick counter")
	// ErrReportTooLarge is returned when a rendered status block exceeds its buffer limit.
	ErrReportTooLarge = errors.New("status report exceeds buffer limit")
)

package timer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Tag identifies the command carried by a written line.
type Tag rune

const (
	// TagNoOp marks a line whose first character is not a known tag.
	TagNoOp Tag = 0
	// TagStart starts a ready stopwatch or a loaded countdown.
	TagStart Tag = 's'
	// TagReset returns a running, paused or loaded timer to ready.
	TagReset Tag = 'r'
	// TagLoad sets the countdown target in seconds.
	TagLoad Tag = 'l'
	// TagPause suspends a running timer.
	TagPause Tag = 'p'
	// TagContinue resumes a paused timer.
	TagContinue Tag = 'c'
)

// String returns the command name.
func (t Tag) String() string {
	switch t {
	case TagStart:
		return "start"
	case TagReset:
		return "reset"
	case TagLoad:
		return "load"
	case TagPause:
		return "pause"
	case TagContinue:
		return "continue"
	default:
		return "noop"
	}
}

// Command is a parsed command line.
type Command struct {
	// Line is the written text without its line terminator.
	Line string
	// Tag is the recognized command, or TagNoOp.
	Tag Tag
	// Value is the numeric suffix; only meaningful when HasValue is set.
	Value uint64
	// HasValue reports whether a numeric suffix was present and parsed.
	HasValue bool
	// Err is set when the suffix is present but is not an unsigned decimal.
	Err error
}

// ParseCommand parses one command line. Everything from the first line feed on
// is dropped, as is a trailing carriage return. Whitespace between the tag and
// the value is tolerated.
func ParseCommand(line string) Command {
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	line = strings.TrimSuffix(line, "\r")

	cmd := Command{Line: line}

	first, size := utf8.DecodeRuneInString(line)
	if size == 0 {
		return cmd
	}

	switch tag := Tag(first); tag {
	case TagStart, TagReset, TagLoad, TagPause, TagContinue:
		cmd.Tag = tag
	}

	rest := strings.TrimLeft(line[size:], " \t")
	if rest == "" {
		return cmd
	}

	value, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		cmd.Err = fmt.Errorf("%w: %q", ErrMalformedValue, rest)

		return cmd
	}

	cmd.Value = value
	cmd.HasValue = true

	return cmd
}

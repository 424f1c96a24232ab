package timer

import (
	"fmt"

	"github.com/oshokin/timer-endpoints/internal/tick"
)

// Apply runs cmd against the instance at tick now. A nil result means the
// transition was accepted. Any error means the command was rejected and the
// instance is left untouched.
func Apply(inst *Instance, cmd Command, now tick.Tick, rate tick.Rate) error {
	if cmd.Err != nil {
		return cmd.Err
	}

	if cmd.Tag == TagNoOp {
		return fmt.Errorf("%w: %q", ErrUnknownTag, cmd.Line)
	}

	switch inst.state {
	case StateReady:
		return inst.onReady(cmd, now, rate)
	case StateLoaded:
		return inst.onLoaded(cmd, now)
	case StateRunning:
		return inst.onRunning(cmd, now)
	case StatePaused:
		return inst.onPaused(cmd, now)
	default:
		return inst.reject(cmd)
	}
}

func (i *Instance) onReady(cmd Command, now tick.Tick, rate tick.Rate) error {
	switch {
	case cmd.Tag == TagStart:
		i.start(now)

		return nil
	case cmd.Tag == TagLoad && i.kind == KindCountdown:
		if !cmd.HasValue {
			return fmt.Errorf("%w: load needs a duration in seconds", ErrMalformedValue)
		}

		if cmd.Value > uint64(tick.MaxTick)/uint64(rate) {
			return fmt.Errorf("%w: %d seconds at %d ticks/s", ErrLoadOverflow, cmd.Value, rate)
		}

		i.loadedSeconds = cmd.Value
		i.hasLoaded = true
		i.state = StateLoaded

		return nil
	default:
		return i.reject(cmd)
	}
}

func (i *Instance) onLoaded(cmd Command, now tick.Tick) error {
	switch cmd.Tag {
	case TagStart:
		i.start(now)

		return nil
	case TagReset:
		i.clear()

		return nil
	default:
		return i.reject(cmd)
	}
}

func (i *Instance) onRunning(cmd Command, now tick.Tick) error {
	switch cmd.Tag {
	case TagPause:
		i.pauseStartTick = now
		i.hasPauseStart = true
		i.state = StatePaused

		return nil
	case TagReset:
		i.clear()

		return nil
	default:
		return i.reject(cmd)
	}
}

func (i *Instance) onPaused(cmd Command, now tick.Tick) error {
	switch cmd.Tag {
	case TagContinue:
		i.pauseAccumTicks += tick.Since(now, i.pauseStartTick)
		i.pauseStartTick = 0
		i.hasPauseStart = false
		i.state = StateRunning

		return nil
	case TagReset:
		i.clear()

		return nil
	default:
		return i.reject(cmd)
	}
}

func (i *Instance) start(now tick.Tick) {
	i.startTick = now
	i.hasStart = true
	i.state = StateRunning
}

func (i *Instance) reject(cmd Command) error {
	return fmt.Errorf("%w: %s %s in state %s", ErrRejectedTransition, i.kind, cmd.Tag, i.state)
}

package timer

import "github.com/oshokin/timer-endpoints/internal/tick"

// Instance is the mutable state of one timer.
type Instance struct {
	// kind never changes after construction.
	kind Kind
	// state is the current state machine position.
	state State
	// startTick is when the current run period began; valid if hasStart.
	startTick tick.Tick
	hasStart  bool
	// pauseStartTick is when the current pause began; valid if hasPauseStart.
	pauseStartTick tick.Tick
	hasPauseStart  bool
	// pauseAccumTicks is the sum of completed pauses since the last reset.
	pauseAccumTicks int64
	// loadedSeconds is the countdown target; valid if hasLoaded.
	loadedSeconds uint64
	hasLoaded     bool
}

// NewInstance returns a timer of the given kind in StateReady.
func NewInstance(kind Kind) *Instance {
	return &Instance{
		kind:  kind,
		state: StateReady,
	}
}

// Kind returns the timer kind.
func (i *Instance) Kind() Kind {
	return i.kind
}

// State returns the current state.
func (i *Instance) State() State {
	return i.state
}

// Snapshot returns a copy of the timer state with optional fields as pointers.
func (i *Instance) Snapshot() Snapshot {
	snap := Snapshot{
		Kind:            i.kind,
		State:           i.state,
		PauseAccumTicks: i.pauseAccumTicks,
	}

	if i.hasStart {
		start := i.startTick
		snap.StartTick = &start
	}

	if i.hasPauseStart {
		pauseStart := i.pauseStartTick
		snap.PauseStartTick = &pauseStart
	}

	if i.hasLoaded {
		loaded := i.loadedSeconds
		snap.LoadedSeconds = &loaded
	}

	return snap
}

// clear returns the instance to StateReady and drops every optional field.
func (i *Instance) clear() {
	*i = Instance{
		kind:  i.kind,
		state: StateReady,
	}
}

// Snapshot is an immutable view of an Instance.
type Snapshot struct {
	Kind            Kind       `yaml:"kind"`
	State           State      `yaml:"state"`
	StartTick       *tick.Tick `yaml:"start_tick,omitempty"`
	PauseStartTick  *tick.Tick `yaml:"pause_start_tick,omitempty"`
	PauseAccumTicks int64      `yaml:"pause_accum_ticks"`
	LoadedSeconds   *uint64    `yaml:"loaded_seconds,omitempty"`
}

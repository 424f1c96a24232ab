package timer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/timer-endpoints/internal/tick"
)

const testRate tick.Rate = 100

// apply is a test helper that parses and applies a command line.
func apply(t *testing.T, inst *Instance, line string, now tick.Tick) error {
	t.Helper()

	return Apply(inst, ParseCommand(line), now, testRate)
}

// mustApply fails the test if the command is rejected.
func mustApply(t *testing.T, inst *Instance, line string, now tick.Tick) {
	t.Helper()

	require.NoError(t, apply(t, inst, line, now), "command %q", line)
}

// marshalSnapshot serializes the instance state for byte comparison.
func marshalSnapshot(t *testing.T, inst *Instance) []byte {
	t.Helper()

	data, err := yaml.Marshal(inst.Snapshot())
	require.NoError(t, err)

	return data
}

// TestApplyStopwatchTransitions walks the full stopwatch transition table.
func TestApplyStopwatchTransitions(t *testing.T) {
	t.Parallel()

	inst := NewInstance(KindStopwatch)
	require.Equal(t, StateReady, inst.State())
	require.Equal(t, KindStopwatch, inst.Kind())

	mustApply(t, inst, "s", 10)
	require.Equal(t, StateRunning, inst.State())

	snap := inst.Snapshot()
	require.NotNil(t, snap.StartTick)
	require.Equal(t, tick.Tick(10), *snap.StartTick)
	require.Nil(t, snap.PauseStartTick)

	mustApply(t, inst, "p", 50)
	require.Equal(t, StatePaused, inst.State())
	require.Equal(t, tick.Tick(50), *inst.Snapshot().PauseStartTick)

	mustApply(t, inst, "c", 80)
	require.Equal(t, StateRunning, inst.State())
	require.Nil(t, inst.Snapshot().PauseStartTick)
	require.Equal(t, int64(30), inst.Snapshot().PauseAccumTicks)

	mustApply(t, inst, "r", 90)
	require.Equal(t, Snapshot{Kind: KindStopwatch, State: StateReady}, inst.Snapshot())

	// Paused --reset--> Ready.
	mustApply(t, inst, "s", 100)
	mustApply(t, inst, "p", 110)
	mustApply(t, inst, "r", 120)
	require.Equal(t, Snapshot{Kind: KindStopwatch, State: StateReady}, inst.Snapshot())
}

// TestApplyCountdownTransitions walks the countdown-specific transitions.
func TestApplyCountdownTransitions(t *testing.T) {
	t.Parallel()

	inst := NewInstance(KindCountdown)

	mustApply(t, inst, "l10", 0)
	require.Equal(t, StateLoaded, inst.State())
	require.Equal(t, uint64(10), *inst.Snapshot().LoadedSeconds)

	mustApply(t, inst, "r", 5)
	require.Equal(t, Snapshot{Kind: KindCountdown, State: StateReady}, inst.Snapshot())

	mustApply(t, inst, "l7", 10)
	mustApply(t, inst, "s", 20)
	require.Equal(t, StateRunning, inst.State())
	require.Equal(t, tick.Tick(20), *inst.Snapshot().StartTick)
	require.Equal(t, uint64(7), *inst.Snapshot().LoadedSeconds)

	mustApply(t, inst, "p", 30)
	mustApply(t, inst, "c", 45)
	require.Equal(t, int64(15), inst.Snapshot().PauseAccumTicks)

	// A countdown can also start without a loaded value.
	other := NewInstance(KindCountdown)
	mustApply(t, other, "s", 0)
	require.Equal(t, StateRunning, other.State())
}

// TestApplyRejections lists (kind, state, command) pairs that must be rejected
// and checks that the serialized state does not change.
func TestApplyRejections(t *testing.T) {
	t.Parallel()

	type setup struct {
		kind  Kind
		lines []string
	}

	cases := map[string]struct {
		setup setup
		line  string
		want  error
	}{
		"stopwatch ready reset":       {setup{KindStopwatch, nil}, "r", ErrRejectedTransition},
		"stopwatch ready pause":       {setup{KindStopwatch, nil}, "p", ErrRejectedTransition},
		"stopwatch ready continue":    {setup{KindStopwatch, nil}, "c", ErrRejectedTransition},
		"stopwatch ready load":        {setup{KindStopwatch, nil}, "l10", ErrRejectedTransition},
		"stopwatch running start":     {setup{KindStopwatch, []string{"s"}}, "s", ErrRejectedTransition},
		"stopwatch running continue":  {setup{KindStopwatch, []string{"s"}}, "c", ErrRejectedTransition},
		"stopwatch paused pause":      {setup{KindStopwatch, []string{"s", "p"}}, "p", ErrRejectedTransition},
		"stopwatch paused start":      {setup{KindStopwatch, []string{"s", "p"}}, "s", ErrRejectedTransition},
		"countdown loaded load":       {setup{KindCountdown, []string{"l5"}}, "l9", ErrRejectedTransition},
		"countdown loaded pause":      {setup{KindCountdown, []string{"l5"}}, "p", ErrRejectedTransition},
		"countdown running load":      {setup{KindCountdown, []string{"l5", "s"}}, "l9", ErrRejectedTransition},
		"countdown paused start":      {setup{KindCountdown, []string{"l5", "s", "p"}}, "s", ErrRejectedTransition},
		"unknown tag ready":           {setup{KindStopwatch, nil}, "x", ErrUnknownTag},
		"unknown tag running":         {setup{KindCountdown, []string{"l5", "s"}}, "z9", ErrUnknownTag},
		"empty line":                  {setup{KindCountdown, nil}, "", ErrUnknownTag},
		"malformed load":              {setup{KindCountdown, nil}, "lten", ErrMalformedValue},
		"load without value":          {setup{KindCountdown, nil}, "l", ErrMalformedValue},
		"malformed start":             {setup{KindStopwatch, nil}, "s1x", ErrMalformedValue},
		"load overflowing tick count": {setup{KindCountdown, nil}, "l92233720368547759", ErrLoadOverflow},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			inst := NewInstance(tc.setup.kind)
			for i, line := range tc.setup.lines {
				mustApply(t, inst, line, tick.Tick(10*(i+1)))
			}

			before := marshalSnapshot(t, inst)
			snapBefore := inst.Snapshot()

			err := apply(t, inst, tc.line, 1000)
			require.ErrorIs(t, err, tc.want)

			require.Equal(t, before, marshalSnapshot(t, inst))
			require.Empty(t, cmp.Diff(snapBefore, inst.Snapshot()))
		})
	}
}

// TestResetFromEveryState ensures reset always lands in a clean ready state.
func TestResetFromEveryState(t *testing.T) {
	t.Parallel()

	paths := map[string]struct {
		kind  Kind
		lines []string
	}{
		"stopwatch running":    {KindStopwatch, []string{"s"}},
		"stopwatch paused":     {KindStopwatch, []string{"s", "p"}},
		"stopwatch resumed":    {KindStopwatch, []string{"s", "p", "c"}},
		"countdown loaded":     {KindCountdown, []string{"l30"}},
		"countdown running":    {KindCountdown, []string{"l30", "s"}},
		"countdown paused":     {KindCountdown, []string{"l30", "s", "p"}},
		"countdown re-running": {KindCountdown, []string{"l30", "s", "p", "c", "p", "c"}},
	}

	for name, path := range paths {
		inst := NewInstance(path.kind)
		for i, line := range path.lines {
			mustApply(t, inst, line, tick.Tick(100*(i+1)))
		}

		mustApply(t, inst, "r", 10_000)
		require.Equal(t, Snapshot{Kind: path.kind, State: StateReady}, inst.Snapshot(), name)
	}
}

// TestPauseAccumulationIsExact checks that pause time is the sum of each pause/continue pair.
func TestPauseAccumulationIsExact(t *testing.T) {
	t.Parallel()

	inst := NewInstance(KindStopwatch)
	mustApply(t, inst, "s", 0)

	pairs := [][2]tick.Tick{
		{10, 17},
		{40, 140},
		{141, 142},
		{500, 1_234},
	}

	var want int64
	for _, pair := range pairs {
		mustApply(t, inst, "p", pair[0])
		mustApply(t, inst, "c", pair[1])

		want += int64(pair[1] - pair[0])
	}

	require.Equal(t, want, inst.Snapshot().PauseAccumTicks)
}

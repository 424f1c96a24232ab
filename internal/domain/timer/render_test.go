package timer

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRenderLayout verifies the four-line block and its field order.
func TestRenderLayout(t *testing.T) {
	t.Parallel()

	text, err := Render(Report{
		State:          StateRunning,
		ElapsedSeconds: 5,
		PausedSeconds:  2,
		TotalSeconds:   3,
	})
	require.NoError(t, err)
	require.Equal(t, "State:\t\tRUNNING\nCounter in s:\t\t5\nPaused in s:\t\t2\nTotal in s:\t\t3\n", text)

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	require.Len(t, lines, 4)
}

// TestStateLabels checks the label of every state.
func TestStateLabels(t *testing.T) {
	t.Parallel()

	cases := map[State]string{
		StateReady:   "READY",
		StateLoaded:  "LOADED",
		StateRunning: "RUNNING",
		StatePaused:  "PAUSED",
	}
	for state, label := range cases {
		text, err := Render(Report{State: state})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(text, "State:\t\t"+label+"\n"), text)
	}
}

// TestRenderFitsDefaultLimit ensures extreme values still fit the default buffer.
func TestRenderFitsDefaultLimit(t *testing.T) {
	t.Parallel()

	text, err := Render(Report{
		State:          StatePaused,
		ElapsedSeconds: math.MinInt64,
		PausedSeconds:  math.MaxInt64,
		TotalSeconds:   math.MinInt64,
	})
	require.NoError(t, err)
	require.LessOrEqual(t, len(text), MaxReportBytes)
}

// TestRenderLimitFailsLoudly ensures an oversized block is an error, not a truncation.
func TestRenderLimitFailsLoudly(t *testing.T) {
	t.Parallel()

	text, err := RenderLimit(Report{State: StateReady}, 16)
	require.ErrorIs(t, err, ErrReportTooLarge)
	require.Empty(t, text)
}

// TestKindParse checks kind names used in configuration.
func TestKindParse(t *testing.T) {
	t.Parallel()

	kind, err := ParseKind("Stopwatch")
	require.NoError(t, err)
	require.Equal(t, KindStopwatch, kind)

	kind, err = ParseKind(" countdown ")
	require.NoError(t, err)
	require.Equal(t, KindCountdown, kind)

	_, err = ParseKind("hourglass")
	require.ErrorIs(t, err, ErrUnknownKind)
}

package timer

import "github.com/oshokin/timer-endpoints/internal/tick"

// Report is the time accounting of a timer at one tick.
type Report struct {
	// State is the timer state at the time of the report.
	State State
	// ElapsedSeconds is the counted time: time since start for a stopwatch,
	// time remaining for a countdown. The countdown value goes negative after expiry.
	ElapsedSeconds int64
	// PausedSeconds is the accumulated pause time, including a pause in progress.
	PausedSeconds int64
	// TotalSeconds is elapsed minus pauses for a stopwatch and remaining plus
	// pauses for a countdown, never below zero for the latter.
	TotalSeconds int64
}

// Compute derives the report for snap at tick now.
func Compute(snap Snapshot, now tick.Tick, rate tick.Rate) Report {
	pauseTicks := snap.PauseAccumTicks
	if snap.State == StatePaused && snap.PauseStartTick != nil {
		pauseTicks += tick.Since(now, *snap.PauseStartTick)
	}

	var sinceStart int64
	if snap.StartTick != nil {
		sinceStart = tick.Since(now, *snap.StartTick)
	}

	report := Report{
		State:         snap.State,
		PausedSeconds: rate.Seconds(pauseTicks),
	}

	if snap.Kind == KindCountdown {
		var remaining int64
		if snap.LoadedSeconds != nil {
			remaining = int64(*snap.LoadedSeconds)*int64(rate) - sinceStart
		}

		report.ElapsedSeconds = rate.Seconds(remaining)
		report.TotalSeconds = max(0, rate.Seconds(remaining+pauseTicks))

		return report
	}

	report.ElapsedSeconds = rate.Seconds(sinceStart)
	report.TotalSeconds = rate.Seconds(sinceStart - pauseTicks)

	return report
}

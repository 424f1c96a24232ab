// Package tick provides the monotonic tick counter that timers measure against.
//
// A Source hands out non-decreasing Tick readings together with a fixed Rate
// (ticks per second). ClockSource derives ticks from a clock.Clock so tests can
// drive time with a mock clock.
package tick

package tick

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/oshokin/timer-endpoints/internal/logger"
)

// Tick is a single reading of the monotonic tick counter.
type Tick uint64

// Rate is the number of ticks per second.
type Rate uint64

// MaxRate is the finest supported resolution: one tick per nanosecond.
const MaxRate Rate = Rate(time.Second)

// MaxTick is the last tick a source hands out. Readings saturate here so that
// differences between ticks always fit into int64.
const MaxTick Tick = math.MaxInt64

// Source is a monotonic tick counter with a fixed rate.
type Source interface {
	// Now returns the current tick. Successive calls never go backwards.
	Now() Tick
	// Rate returns the number of ticks per second.
	Rate() Rate
}

// ErrInvalidRate is returned when a rate is zero or finer than MaxRate.
var ErrInvalidRate = errors.New("tick rate must be between 1 and 1e9")

// Validate reports whether the rate can drive a Source.
func (r Rate) Validate() error {
	if r == 0 || r > MaxRate {
		return fmt.Errorf("%w: got %d", ErrInvalidRate, r)
	}

	return nil
}

// Seconds converts a tick count to whole seconds, truncating toward zero.
func (r Rate) Seconds(ticks int64) int64 {
	return ticks / int64(r)
}

// Since returns now minus start as a signed tick count.
func Since(now, start Tick) int64 {
	return int64(now) - int64(start)
}

// ClockSource counts ticks elapsed since its creation on a clock.Clock.
type ClockSource struct {
	// clock supplies wall time; clock.New() in production, clock.NewMock() in tests.
	clock clock.Clock
	// epoch is the clock reading that maps to tick zero.
	epoch time.Time
	// rate is the number of ticks per second.
	rate Rate
	// last is the highest tick handed out so far.
	last atomic.Uint64
	// saturated guards the one-time saturation warning.
	saturated sync.Once
}

// NewClockSource creates a source whose tick zero is the current time of c.
func NewClockSource(c clock.Clock, rate Rate) (*ClockSource, error) {
	if err := rate.Validate(); err != nil {
		return nil, err
	}

	return &ClockSource{
		clock: c,
		epoch: c.Now(),
		rate:  rate,
	}, nil
}

// Rate returns the number of ticks per second.
func (s *ClockSource) Rate() Rate {
	return s.rate
}

// Ceiling returns the uptime after which the source stops advancing.
func (s *ClockSource) Ceiling() time.Duration {
	seconds := uint64(MaxTick) / uint64(s.rate)
	if seconds > uint64(math.MaxInt64/int64(time.Second)) {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(seconds) * time.Second
}

// Now returns the current tick. The reading never decreases, even if the
// underlying clock is stepped back, and saturates at MaxTick.
func (s *ClockSource) Now() Tick {
	current := s.ticksSinceEpoch()

	for {
		prev := s.last.Load()
		if uint64(current) <= prev {
			return Tick(prev)
		}

		if s.last.CompareAndSwap(prev, uint64(current)) {
			return current
		}
	}
}

func (s *ClockSource) ticksSinceEpoch() Tick {
	elapsed := s.clock.Now().Sub(s.epoch)
	if elapsed <= 0 {
		return 0
	}

	var (
		seconds  = uint64(elapsed / time.Second)
		fraction = uint64(elapsed % time.Second)
		rate     = uint64(s.rate)
	)

	if seconds >= (uint64(MaxTick)-rate)/rate {
		s.saturated.Do(func() {
			logger.WarnKV(context.Background(), "Tick source saturated",
				"rate", rate,
				"ceiling", s.Ceiling().String())
		})

		return MaxTick
	}

	// fraction < 1e9 and rate <= 1e9, so the product fits into uint64.
	return Tick(seconds*rate + fraction*rate/uint64(time.Second))
}

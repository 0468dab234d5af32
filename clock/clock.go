// Package clock supplies the frame loop with the current time.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock is a source of monotonic time
type Clock interface {
	Now() time.Time
}

// Real reads the system clock
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// Manual only moves when advanced, so a frame loop driven by it steps
// transitions deterministically; safe for use from several goroutines
type Manual struct {
	start   time.Time
	elapsed atomic.Int64 // nanoseconds since start
}

// NewManual returns a clock stopped at start
func NewManual(start time.Time) *Manual {
	return &Manual{start: start}
}

func (m *Manual) Now() time.Time {
	return m.start.Add(time.Duration(m.elapsed.Load()))
}

// Advance moves the clock forward by d and returns the new time
// Negative d is ignored; the clock never runs backwards
func (m *Manual) Advance(d time.Duration) time.Time {
	if d < 0 {
		d = 0
	}
	return m.start.Add(time.Duration(m.elapsed.Add(int64(d))))
}

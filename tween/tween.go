// Package tween interpolates tile positions toward layout targets over time.
package tween

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/tilecast/entity"
	"github.com/lixenwraith/tilecast/vmath"
)

var (
	// ErrInvalidArgument marks a rejected transition request; nothing was mutated
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCountMismatch is an ErrInvalidArgument where targets and tiles differ in length
	ErrCountMismatch = fmt.Errorf("%w: target count does not match tile count", ErrInvalidArgument)
)

// motion is one tile's active interpolation, all three axes share its timing
type motion struct {
	from     vmath.Vec3F
	to       vmath.Vec3F
	start    time.Time
	duration time.Duration
}

// Engine owns every active motion and writes tile positions on Update
// Not safe for concurrent use; drive it from the render loop only
type Engine struct {
	easing  vmath.EasingFunc
	motions map[*entity.Tile]*motion
}

// NewEngine creates an engine using the given easing, nil selects ExpoInOut
func NewEngine(easing vmath.EasingFunc) *Engine {
	if easing == nil {
		easing = vmath.ExpoInOut
	}
	return &Engine{
		easing:  easing,
		motions: make(map[*entity.Tile]*motion),
	}
}

// Start moves every tile i toward targets[i] over d, beginning at now
// Each tile departs from its current position, so interrupting a running
// transition never jumps; the superseded motion is dropped
func (e *Engine) Start(tiles []*entity.Tile, targets []vmath.Vec3F, d time.Duration, now time.Time) error {
	if len(tiles) != len(targets) {
		return fmt.Errorf("%w: %d targets for %d tiles", ErrCountMismatch, len(targets), len(tiles))
	}
	for i, t := range tiles {
		if t == nil {
			return fmt.Errorf("%w: tile %d is nil", ErrInvalidArgument, i)
		}
	}
	if d < 0 {
		d = 0
	}

	for i, t := range tiles {
		e.motions[t] = &motion{
			from:     t.Position,
			to:       targets[i],
			start:    now,
			duration: d,
		}
	}
	return nil
}

// Update advances every motion to now and retires the finished ones
// Finished tiles land exactly on their target; returns the number still running
func (e *Engine) Update(now time.Time) int {
	for t, m := range e.motions {
		elapsed := now.Sub(m.start)
		if m.duration <= 0 || elapsed >= m.duration {
			t.Position = m.to
			delete(e.motions, t)
			continue
		}
		if elapsed < 0 {
			elapsed = 0
		}
		p := e.easing(float64(elapsed) / float64(m.duration))
		t.Position = vmath.V3FLerp(m.from, m.to, p)
	}
	return len(e.motions)
}

// Active returns the number of running motions
func (e *Engine) Active() int {
	return len(e.motions)
}

// Busy reports whether any tile is still moving
func (e *Engine) Busy() bool {
	return len(e.motions) > 0
}

// Reset drops every motion without touching tile positions
func (e *Engine) Reset() {
	clear(e.motions)
}

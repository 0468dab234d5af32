// Package scene owns the live tile set, its layout targets and the transition
// engine. It replaces process-wide render state with one controller that the
// frame loop drives.
package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lixenwraith/tilecast/entity"
	"github.com/lixenwraith/tilecast/layout"
	"github.com/lixenwraith/tilecast/tween"
	"github.com/lixenwraith/tilecast/vmath"
)

// ErrStaleLoad is returned when a load older than the displayed one arrives
var ErrStaleLoad = errors.New("stale load")

// DefaultDuration is the layout switch duration used by buttons and loads
const DefaultDuration = 2000 * time.Millisecond

// Options configures a Controller
type Options struct {
	Params        layout.Params
	Classifier    entity.Classifier
	DefaultLayout layout.Name
	Duration      time.Duration
	Easing        vmath.EasingFunc
	// Handles creates each tile's visual representation; may be nil
	Handles entity.HandleFactory
}

// DefaultOptions returns the stock layouts, tiers and timing
func DefaultOptions() Options {
	return Options{
		Params:        layout.DefaultParams(),
		Classifier:    entity.DefaultClassifier(),
		DefaultLayout: layout.Table,
		Duration:      DefaultDuration,
		Easing:        vmath.ExpoInOut,
	}
}

// Controller is the single owner of scene state
// Methods must be called from the frame loop goroutine
type Controller struct {
	opts    Options
	store   *entity.Store
	targets layout.Targets
	engine  *tween.Engine
	active  layout.Name
}

// New creates an empty scene
func New(opts Options) *Controller {
	if opts.DefaultLayout == "" {
		opts.DefaultLayout = layout.Table
	}
	return &Controller{
		opts:    opts,
		store:   entity.NewStore(),
		targets: layout.Compute(0, opts.Params),
		engine:  tween.NewEngine(opts.Easing),
		active:  opts.DefaultLayout,
	}
}

// Load replaces every tile with one per entity, recomputes all layout targets
// and starts the default transition
// The old tiles are released and their motions discarded before anything moves
func (c *Controller) Load(gen uint64, entities []entity.Entity, now time.Time) error {
	snap := entity.NewSnapshot(gen, entities, c.opts.Classifier, c.opts.Handles)
	targets := layout.Compute(snap.Len(), c.opts.Params)
	if err := targets.Validate(snap.Len()); err != nil {
		return fmt.Errorf("computing targets: %w", err)
	}

	if !c.store.Swap(snap) {
		return fmt.Errorf("%w: generation %d behind %d", ErrStaleLoad, gen, c.store.Current().Gen())
	}
	c.engine.Reset()
	c.targets = targets
	slog.Info("Scene loaded", "gen", gen, "tiles", snap.Len())

	return c.Transition(c.opts.DefaultLayout, c.opts.Duration, now)
}

// Transition moves every tile toward the named layout over d
// Unknown names and target/tile mismatches fail without mutating anything
func (c *Controller) Transition(name layout.Name, d time.Duration, now time.Time) error {
	pos, err := c.targets.Positions(name)
	if err != nil {
		return fmt.Errorf("%w: %w", tween.ErrInvalidArgument, err)
	}
	snap := c.store.Current()
	if err := c.engine.Start(snap.Tiles(), pos, d, now); err != nil {
		return err
	}
	c.active = name
	slog.Debug("Transition started", "layout", name, "tiles", snap.Len(), "duration", d)
	return nil
}

// SwitchTo runs Transition with the configured duration
func (c *Controller) SwitchTo(name layout.Name, now time.Time) error {
	return c.Transition(name, c.opts.Duration, now)
}

// Tick advances all motions to now; returns the count still running
func (c *Controller) Tick(now time.Time) int {
	return c.engine.Update(now)
}

// Snapshot returns the displayed tile generation
func (c *Controller) Snapshot() *entity.Snapshot {
	return c.store.Current()
}

// Layout returns the most recently requested layout
func (c *Controller) Layout() layout.Name {
	return c.active
}

// Targets returns the read-only target set for the displayed tiles
func (c *Controller) Targets() layout.Targets {
	return c.targets
}

// Busy reports whether a transition is running
func (c *Controller) Busy() bool {
	return c.engine.Busy()
}

// Close releases every tile
func (c *Controller) Close() {
	c.engine.Reset()
	c.store.Clear()
	c.targets = layout.Compute(0, c.opts.Params)
}

package app

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tilecast/audio"
	"github.com/lixenwraith/tilecast/clock"
	"github.com/lixenwraith/tilecast/config"
	"github.com/lixenwraith/tilecast/entity"
	"github.com/lixenwraith/tilecast/layout"
	"github.com/lixenwraith/tilecast/loader"
	"github.com/lixenwraith/tilecast/render"
)

const (
	screenW = 120
	screenH = 40
	sheet   = "Name,Worth\nAlice,\"$50,000\"\nBob,$150000\nCarol,$250000\n"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type harness struct {
	app    *App
	screen tcell.SimulationScreen
	cues   *audio.Recorder
	clock  *clock.Manual
	fail   atomic.Bool
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(screenW, screenH)
	t.Cleanup(s.Fini)

	cfg := config.Default()
	cfg.FPS = 60
	if mutate != nil {
		mutate(&cfg)
	}

	h := &harness{screen: s, cues: &audio.Recorder{}, clock: clock.NewManual(t0)}
	h.app = New(Options{
		Config: cfg,
		Screen: s,
		Source: loader.SourceFunc(func(context.Context) (string, error) {
			if h.fail.Load() {
				return "", errors.New("503 Service Unavailable")
			}
			return sheet, nil
		}),
		Player: h.cues,
		Clock:  h.clock,
	})
	t.Cleanup(h.app.Close)
	return h
}

// awaitGen reads load results until generation gen arrives and applies it
func (h *harness) awaitGen(t *testing.T, gen uint64) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case res := <-h.app.loader.Results():
			h.app.applyResult(res)
			if res.Gen == gen {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for load %d", gen)
		}
	}
}

func (h *harness) load(t *testing.T) {
	t.Helper()
	h.app.startLoad(context.Background())
	h.awaitGen(t, h.app.loader.Latest())
}

func rowText(s tcell.Screen, y int) string {
	var b strings.Builder
	w, _ := s.Size()
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestLoadEndToEnd(t *testing.T) {
	h := newHarness(t, nil)

	h.load(t)
	h.clock.Advance(2 * time.Second)
	h.app.frame()

	snap := h.app.scene.Snapshot()
	require.Equal(t, 3, snap.Len())
	want := layout.TablePositions(3, layout.DefaultParams())
	tiers := []entity.Tier{entity.TierLow, entity.TierMid, entity.TierHigh}
	for i, tile := range snap.Tiles() {
		assert.Equal(t, want[i], tile.Position, tile.Entity.Name)
		assert.Equal(t, tiers[i], tile.Tier, tile.Entity.Name)
	}
	assert.Equal(t, 50000.0, snap.Tile(0).Entity.Attribute)
	assert.Equal(t, 3, h.app.sprites.Live())

	status := rowText(h.screen, screenH-1)
	assert.Contains(t, status, "3 tiles")
	assert.Contains(t, status, "layout Table")
	assert.NotContains(t, status, "loading")
	assert.Equal(t, []audio.Cue{audio.CueLoaded}, h.cues.Cues())
}

func TestLoadFailureKeepsTiles(t *testing.T) {
	h := newHarness(t, nil)
	h.load(t)

	h.fail.Store(true)
	h.load(t)
	h.app.frame()

	assert.Equal(t, uint64(1), h.app.scene.Snapshot().Gen())
	assert.Equal(t, 3, h.app.scene.Snapshot().Len())
	assert.Contains(t, rowText(h.screen, screenH-1), "load failed: 503 Service Unavailable")
	assert.Equal(t, []audio.Cue{audio.CueLoaded, audio.CueFailed}, h.cues.Cues())

	// A later success clears the error
	h.fail.Store(false)
	h.load(t)
	h.app.frame()
	assert.NotContains(t, rowText(h.screen, screenH-1), "load failed")
	assert.Equal(t, 3, h.app.sprites.Live())
}

func TestStaleResultIgnored(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	h.app.startLoad(ctx)
	h.app.startLoad(ctx)
	h.app.applyResult(loader.Result{Gen: 1, Entities: []entity.Entity{{Name: "Old"}}})

	assert.Zero(t, h.app.scene.Snapshot().Len())
	assert.True(t, h.app.loading)
	assert.Empty(t, h.cues.Cues())

	h.awaitGen(t, 2)
	assert.Equal(t, uint64(2), h.app.scene.Snapshot().Gen())
	assert.False(t, h.app.loading)
}

func TestKeyActions(t *testing.T) {
	h := newHarness(t, nil)
	h.load(t)
	ctx := context.Background()

	tests := []struct {
		r    rune
		want layout.Name
	}{
		{'s', layout.Sphere},
		{'H', layout.Helix},
		{'4', layout.Grid},
		{'1', layout.Table},
	}
	for _, tt := range tests {
		assert.False(t, h.app.handleEvent(ctx, key(tt.r)))
		assert.Equal(t, tt.want, h.app.scene.Layout(), string(tt.r))
	}
	assert.Equal(t, []audio.Cue{audio.CueLoaded, audio.CueSwitch, audio.CueSwitch, audio.CueSwitch, audio.CueSwitch}, h.cues.Cues())

	assert.False(t, h.app.handleEvent(ctx, key('x')))
	assert.Len(t, h.cues.Cues(), 5)

	assert.True(t, h.app.handleEvent(ctx, key('q')))
	assert.True(t, h.app.handleEvent(ctx, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, h.app.handleEvent(ctx, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)))
}

func TestLayoutSwitchCompletes(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.TransitionMS = 500 })
	h.load(t)
	h.clock.Advance(time.Second)
	h.app.frame()

	h.app.handleEvent(context.Background(), key('g'))
	h.clock.Advance(250 * time.Millisecond)
	h.app.frame()
	assert.True(t, h.app.scene.Busy())

	h.clock.Advance(250 * time.Millisecond)
	h.app.frame()
	assert.False(t, h.app.scene.Busy())
	want := layout.GridPositions(3, layout.DefaultParams())
	for i, tile := range h.app.scene.Snapshot().Tiles() {
		assert.Equal(t, want[i], tile.Position)
	}
}

func TestConfiguredEasing(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Easing = "linear" })
	h.load(t)

	// Tiles start at the origin; linear easing puts them halfway at half time
	h.clock.Advance(time.Second)
	h.app.frame()
	want := layout.TablePositions(3, layout.DefaultParams())
	for i, tile := range h.app.scene.Snapshot().Tiles() {
		assert.InDelta(t, want[i].X/2, tile.Position.X, 1e-9)
		assert.InDelta(t, want[i].Y/2, tile.Position.Y, 1e-9)
	}
}

func TestMouseButtons(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	buttons := render.Buttons(screenH)
	sphere, load := buttons[2], buttons[0]

	press := tcell.NewEventMouse(sphere.X+1, sphere.Y, tcell.Button1, tcell.ModNone)
	assert.False(t, h.app.handleEvent(ctx, press))
	assert.Equal(t, layout.Sphere, h.app.scene.Layout())

	// Holding the button does not repeat the action
	h.app.handleEvent(ctx, tcell.NewEventMouse(sphere.X+2, sphere.Y, tcell.Button1, tcell.ModNone))
	assert.Equal(t, []audio.Cue{audio.CueSwitch}, h.cues.Cues())

	h.app.handleEvent(ctx, tcell.NewEventMouse(sphere.X+2, sphere.Y, tcell.ButtonNone, tcell.ModNone))
	h.app.handleEvent(ctx, tcell.NewEventMouse(load.X, load.Y, tcell.Button1, tcell.ModNone))
	assert.True(t, h.app.loading)

	// Clicks outside the bar do nothing
	h.app.handleEvent(ctx, tcell.NewEventMouse(load.X, load.Y, tcell.ButtonNone, tcell.ModNone))
	h.app.handleEvent(ctx, tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone))
	assert.Equal(t, []audio.Cue{audio.CueSwitch}, h.cues.Cues())

	quit := buttons[len(buttons)-1]
	h.app.handleEvent(ctx, tcell.NewEventMouse(5, 5, tcell.ButtonNone, tcell.ModNone))
	assert.True(t, h.app.handleEvent(ctx, tcell.NewEventMouse(quit.X, quit.Y, tcell.Button1, tcell.ModNone)))
}

func TestResizeEvent(t *testing.T) {
	h := newHarness(t, nil)
	h.app.handleEvent(context.Background(), tcell.NewEventResize(200, 60))

	cols, rows := h.app.renderer.Camera().Viewport()
	assert.Equal(t, 200, cols)
	assert.Equal(t, 60-render.HUDRows, rows)
}

func TestRunEndToEnd(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.LoadOnStart = true })

	done := make(chan error, 1)
	go func() { done <- h.app.Run(context.Background()) }()

	require.Eventually(t, func() bool {
		return strings.Contains(rowText(h.screen, screenH-1), "3 tiles")
	}, 2*time.Second, 10*time.Millisecond)

	h.clock.Advance(3 * time.Second)
	cam := render.NewCamera(screenW, screenH-render.HUDRows)
	colors := []tcell.Color{tcell.ColorRed, tcell.ColorOrange, tcell.ColorGreen}
	for i, pos := range layout.TablePositions(3, layout.DefaultParams()) {
		x, y, ok := cam.Cell(pos)
		require.True(t, ok)
		assert.Eventually(t, func() bool {
			_, _, style, _ := h.screen.GetContent(x, y)
			_, bg, _ := style.Decompose()
			return bg == colors[i]
		}, 2*time.Second, 10*time.Millisecond)
	}

	h.screen.InjectKey(tcell.KeyRune, 's', tcell.ModNone)
	require.Eventually(t, func() bool {
		cues := h.cues.Cues()
		return len(cues) == 2 && cues[1] == audio.CueSwitch
	}, 2*time.Second, 10*time.Millisecond)

	h.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.app.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSheetSource(t *testing.T) {
	src := SheetSource(config.Default())
	assert.Contains(t, src.URL(), "/export?format=csv")
}

// Package app wires the scene, loader, renderer and audio cues into a frame
// loop driven by terminal input.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/tilecast/audio"
	"github.com/lixenwraith/tilecast/clock"
	"github.com/lixenwraith/tilecast/config"
	"github.com/lixenwraith/tilecast/loader"
	"github.com/lixenwraith/tilecast/render"
	"github.com/lixenwraith/tilecast/scene"
)

// errQuit ends the frame loop on a user request
var errQuit = errors.New("quit requested")

// Options supplies the app's collaborators
// Nil Source, Player and Clock fall back to the sheet fetcher, silence and the wall clock
type Options struct {
	Config  config.Config
	Screen  tcell.Screen
	Source  loader.Source
	Player  audio.Player
	Clock   clock.Clock
	Palette *render.Palette
}

// App is the interactive viewer
// All scene and HUD state is owned by the frame loop goroutine
type App struct {
	cfg      config.Config
	screen   tcell.Screen
	renderer *render.Renderer
	sprites  *render.Sprites
	scene    *scene.Controller
	loader   *loader.Loader
	player   audio.Player
	clock    clock.Clock

	loading   bool
	lastErr   error
	mouseDown bool
}

// New builds an app on an initialized screen
func New(opts Options) *App {
	palette := render.DefaultPalette()
	if opts.Palette != nil {
		palette = *opts.Palette
	}
	src := opts.Source
	if src == nil {
		src = SheetSource(opts.Config)
	}
	player := opts.Player
	if player == nil {
		player = audio.Silent{}
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}

	sprites := render.NewSprites(palette)
	w, h := opts.Screen.Size()

	cfg := opts.Config
	return &App{
		cfg:      cfg,
		screen:   opts.Screen,
		renderer: render.NewRenderer(palette, w, h),
		sprites:  sprites,
		scene: scene.New(scene.Options{
			Params:        cfg.Layout,
			Classifier:    cfg.Tiers,
			DefaultLayout: cfg.StartLayout(),
			Duration:      cfg.TransitionDuration(),
			Easing:        cfg.EasingFunc(),
			Handles:       sprites.Factory(),
		}),
		loader: loader.New(src),
		player: player,
		clock:  clk,
	}
}

// SheetSource creates the HTTP fetcher described by cfg
func SheetSource(cfg config.Config) *loader.Fetcher {
	opts := loader.DefaultFetchOptions()
	opts.Retries = cfg.HTTP.Retries
	opts.Timeout = cfg.HTTPTimeout()
	if cfg.HTTP.UserAgent != "" {
		opts.UserAgent = cfg.HTTP.UserAgent
	}
	return loader.NewFetcher(cfg.SheetURL, opts)
}

// Run drives input and frames until the user quits or ctx is cancelled
// The screen stays initialized on return; the caller finalizes it
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.screen.EnableMouse(tcell.MouseButtonEvents)
	a.screen.HideCursor()

	events := make(chan tcell.Event, 64)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.pollInput(gctx, events)
		return nil
	})
	g.Go(func() error {
		defer a.screen.PostEvent(tcell.NewEventInterrupt(nil)) // unblock PollEvent
		defer cancel()
		return a.loop(gctx, events)
	})

	err := g.Wait()
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pollInput forwards screen events until ctx ends or the screen is finalized
func (a *App) pollInput(ctx context.Context, out chan<- tcell.Event) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(a.cfg.FrameInterval())
	defer ticker.Stop()

	if a.cfg.LoadOnStart {
		a.startLoad(ctx)
	}
	a.frame()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if a.handleEvent(ctx, ev) {
				return errQuit
			}
		case res := <-a.loader.Results():
			a.applyResult(res)
		case <-ticker.C:
			a.frame()
		}
	}
}

// handleEvent applies one input event; returns true on quit
func (a *App) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if act, ok := render.KeyAction(ev.Rune()); ok {
				return a.dispatch(ctx, act)
			}
		}
	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		edge := pressed && !a.mouseDown // act on the press, not on hold or release
		a.mouseDown = pressed
		if !edge {
			break
		}
		x, y := ev.Position()
		_, h := a.screen.Size()
		if act, ok := render.HitTest(render.Buttons(h), x, y); ok {
			return a.dispatch(ctx, act)
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		a.renderer.Resize(w, h)
		a.screen.Sync()
	}
	return false
}

// dispatch performs a decoded action; returns true on quit
func (a *App) dispatch(ctx context.Context, act render.Action) bool {
	switch act.Kind {
	case render.ActionQuit:
		return true
	case render.ActionLoad:
		a.startLoad(ctx)
	case render.ActionLayout:
		if err := a.scene.SwitchTo(act.Layout, a.clock.Now()); err != nil {
			slog.Warn("Layout switch failed", "layout", act.Layout, "error", err)
			return false
		}
		a.player.Play(audio.CueSwitch)
	}
	return false
}

func (a *App) startLoad(ctx context.Context) {
	a.loading = true
	a.loader.Trigger(ctx)
}

// applyResult installs a finished load; superseded generations are ignored
// A failed load keeps the current tiles and surfaces the error on the status line
func (a *App) applyResult(res loader.Result) {
	if a.loader.Stale(res.Gen) {
		return
	}
	a.loading = false
	if res.Err != nil {
		a.lastErr = res.Err
		a.player.Play(audio.CueFailed)
		return
	}
	if err := a.scene.Load(res.Gen, res.Entities, a.clock.Now()); err != nil {
		slog.Warn("Scene load rejected", "gen", res.Gen, "error", err)
		a.lastErr = err
		a.player.Play(audio.CueFailed)
		return
	}
	a.lastErr = nil
	a.player.Play(audio.CueLoaded)
}

// frame advances motions and redraws
func (a *App) frame() {
	a.scene.Tick(a.clock.Now())
	a.renderer.Draw(a.screen, a.view())
}

func (a *App) view() render.View {
	snap := a.scene.Snapshot()
	return render.View{
		Tiles:   snap.Tiles(),
		Layout:  a.scene.Layout(),
		Gen:     snap.Gen(),
		Loading: a.loading,
		Err:     a.lastErr,
	}
}

// Close stops loads and releases the scene and audio device
// Must not run concurrently with Run
func (a *App) Close() {
	a.loader.Close()
	a.scene.Close()
	a.player.Close()
}

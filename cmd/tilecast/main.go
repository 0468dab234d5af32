package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tilecast/app"
	"github.com/lixenwraith/tilecast/audio"
	"github.com/lixenwraith/tilecast/config"
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	logger := setupLogging(*debugFlag, levelFlag.value)
	if logger != nil {
		defer logger.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err == nil {
		err = applyFlags(&cfg, *urlFlag, *fpsFlag, *loadFlag, *muteFlag)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tilecast: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	// Restore the terminal before anything is printed, panics included
	defer func() {
		r := recover()
		screen.Fini()
		if r != nil {
			fmt.Fprintf(os.Stderr, "\n\x1b[31mTILECAST CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	a := app.New(app.Options{
		Config: cfg,
		Screen: screen,
		Player: newPlayer(cfg),
	})
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting", "url", cfg.SheetURL, "fps", cfg.FPS, "layout", cfg.DefaultLayout)
	if err := a.Run(ctx); err != nil {
		slog.Error("Run failed", "error", err)
		screen.Fini()
		fmt.Fprintf(os.Stderr, "tilecast: %v\n", err)
		return 1
	}
	return 0
}

// applyFlags overlays non-zero command line values and revalidates
func applyFlags(cfg *config.Config, url string, fps int, load, mute bool) error {
	if url != "" {
		cfg.SheetURL = url
	}
	if fps > 0 {
		cfg.FPS = fps
	}
	if load {
		cfg.LoadOnStart = true
	}
	if mute {
		cfg.Mute = true
	}
	return cfg.Validate()
}

// newPlayer opens the audio device unless muted; failures fall back to silence
func newPlayer(cfg config.Config) audio.Player {
	if cfg.Mute {
		return audio.Silent{}
	}
	return audio.OpenPlayer(cfg.Volume)
}

// Package loader fetches the sheet export and turns it into entities.
//
// Loads run off the render loop. Each Trigger supersedes every earlier one:
// the in-flight fetch is cancelled and only the newest generation's Result is
// ever delivered.
package loader

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/tilecast/entity"
)

// Source produces raw sheet text
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context) (string, error)

func (f SourceFunc) Fetch(ctx context.Context) (string, error) { return f(ctx) }

// Result is the outcome of one load generation
// Exactly one of Entities or Err is meaningful
type Result struct {
	Gen      uint64
	Entities []entity.Entity
	Err      error
}

// Loader runs superseding asynchronous loads
type Loader struct {
	src     Source
	gen     atomic.Uint64
	results chan Result

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	closed  bool
	deliver sync.Mutex
}

// New creates a loader reading from src
func New(src Source) *Loader {
	return &Loader{
		src:     src,
		results: make(chan Result, 1),
	}
}

// Results delivers the newest completed load; older generations are never sent
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Latest returns the generation of the most recent Trigger
func (l *Loader) Latest() uint64 {
	return l.gen.Load()
}

// Stale reports whether gen has been superseded
func (l *Loader) Stale(gen uint64) bool {
	return gen != l.gen.Load()
}

// Trigger starts a new load and returns its generation
// The previous in-flight load, if any, is cancelled
func (l *Loader) Trigger(ctx context.Context) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return l.gen.Load()
	}

	gen := l.gen.Add(1)
	if l.cancel != nil {
		l.cancel()
	}
	cctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer cancel()
		l.run(cctx, gen)
	}()
	slog.Info("Load started", "gen", gen)
	return gen
}

func (l *Loader) run(ctx context.Context, gen uint64) {
	text, err := l.src.Fetch(ctx)
	res := Result{Gen: gen}
	if err != nil {
		res.Err = err
	} else {
		res.Entities = ParseRows(text)
	}
	l.publish(res)
}

// publish hands res to the consumer unless a newer load has been triggered
// A pending undelivered result is replaced
func (l *Loader) publish(res Result) {
	l.deliver.Lock()
	defer l.deliver.Unlock()

	if l.Stale(res.Gen) {
		slog.Debug("Dropping superseded load", "gen", res.Gen, "latest", l.gen.Load())
		return
	}
	if res.Err != nil {
		slog.Warn("Load failed", "gen", res.Gen, "error", res.Err)
	} else {
		slog.Info("Load finished", "gen", res.Gen, "entities", len(res.Entities))
	}

	select {
	case <-l.results:
	default:
	}
	l.results <- res
}

// Close cancels any in-flight load and waits for its goroutine
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
	}
	l.mu.Unlock()
	l.wg.Wait()
}

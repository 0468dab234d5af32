package entity

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/tilecast/vmath"
)

// Snapshot is one generation of entities and their tiles
// The tile slice is fixed at construction; only tile positions change afterwards
type Snapshot struct {
	gen   uint64
	tiles []*Tile
}

// NewSnapshot builds one tile per entity in row order
// Tiles start at origin; factory may be nil
func NewSnapshot(gen uint64, entities []Entity, c Classifier, factory HandleFactory) *Snapshot {
	s := &Snapshot{gen: gen, tiles: make([]*Tile, len(entities))}
	for i, e := range entities {
		t := &Tile{
			Index:    i,
			Entity:   e,
			Tier:     c.Classify(e.Attribute),
			Position: vmath.Vec3F{},
		}
		if factory != nil {
			t.handle = factory(t)
		}
		s.tiles[i] = t
	}
	return s
}

// Gen is the load generation that produced this snapshot
func (s *Snapshot) Gen() uint64 {
	if s == nil {
		return 0
	}
	return s.gen
}

// Len returns the tile count
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tiles)
}

// Tiles returns the tiles in entity order; the slice must not be modified
func (s *Snapshot) Tiles() []*Tile {
	if s == nil {
		return nil
	}
	return s.tiles
}

// Tile returns tile i or nil when out of range
func (s *Snapshot) Tile(i int) *Tile {
	if s == nil || i < 0 || i >= len(s.tiles) {
		return nil
	}
	return s.tiles[i]
}

// release frees every tile handle
func (s *Snapshot) release() {
	if s == nil {
		return
	}
	for _, t := range s.tiles {
		t.Release()
	}
}

// Store holds the current snapshot and swaps it as a unit
type Store struct {
	mu      sync.Mutex // serializes Swap so releases happen in order
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store holding an empty snapshot
func NewStore() *Store {
	s := &Store{}
	s.current.Store(&Snapshot{})
	return s
}

// Current returns the live snapshot; never nil
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Swap installs next and releases the previous snapshot's handles
// A next snapshot older than the current one is rejected and released instead
func (s *Store) Swap(next *Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	if next == nil || next.Gen() < prev.Gen() {
		next.release()
		return false
	}
	s.current.Store(next)
	if prev != next {
		prev.release()
	}
	return true
}

// Clear drops every tile and releases their handles
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current.Swap(&Snapshot{gen: s.current.Load().Gen()})
	prev.release()
}

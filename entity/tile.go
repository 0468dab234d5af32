package entity

import (
	"sync"

	"github.com/lixenwraith/tilecast/vmath"
)

// Handle is the visual representation owned by a tile
// Release frees it; it is called exactly once per handle
type Handle interface {
	Release()
}

// HandleFactory creates the representation for a freshly built tile
type HandleFactory func(t *Tile) Handle

// Tile binds one entity to a mutable position and its visual handle
// Position is written only by the transition engine and read by the renderer
type Tile struct {
	Index    int
	Entity   Entity
	Tier     Tier
	Position vmath.Vec3F

	handle      Handle
	releaseOnce sync.Once
}

// Handle returns the owned visual representation, nil if none was attached
func (t *Tile) Handle() Handle {
	return t.handle
}

// Release frees the visual handle; repeated calls are no-ops
func (t *Tile) Release() {
	t.releaseOnce.Do(func() {
		if t.handle != nil {
			t.handle.Release()
			t.handle = nil
		}
	})
}

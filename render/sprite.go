package render

import (
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tilecast/entity"
)

// Sprite is a tile's visual representation: its precomputed labels and style
// Sprites are tracked by a Sprites registry until released
type Sprite struct {
	Name  string
	Value string
	Style tcell.Style

	owner *Sprites
	id    uint64
}

// Release unregisters the sprite from its registry
func (s *Sprite) Release() {
	if s.owner != nil {
		s.owner.remove(s.id)
		s.owner = nil
	}
}

// Sprites owns every live sprite
type Sprites struct {
	mu      sync.Mutex
	palette Palette
	next    uint64
	live    map[uint64]*Sprite
}

// NewSprites creates an empty registry drawing with palette
func NewSprites(palette Palette) *Sprites {
	return &Sprites{palette: palette, live: make(map[uint64]*Sprite)}
}

// Factory returns the handle factory the scene attaches to new tiles
func (r *Sprites) Factory() entity.HandleFactory {
	return func(t *entity.Tile) entity.Handle {
		return r.New(t)
	}
}

// New builds and registers the sprite for t
func (r *Sprites) New(t *entity.Tile) *Sprite {
	s := buildSprite(t, r.palette)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	s.id = r.next
	s.owner = r
	r.live[s.id] = s
	return s
}

// Live returns the number of unreleased sprites
func (r *Sprites) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

func (r *Sprites) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, id)
}

// buildSprite formats labels for t without registering
func buildSprite(t *entity.Tile, p Palette) *Sprite {
	return &Sprite{
		Name:  t.Entity.Name,
		Value: formatAttribute(t.Entity.Attribute),
		Style: p.TileStyle(t.Tier),
	}
}

// formatAttribute renders a currency value such as "$150,000"
func formatAttribute(v float64) string {
	if v < 0 {
		return "-$" + humanize.Commaf(-v)
	}
	return "$" + humanize.Commaf(v)
}

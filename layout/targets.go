package layout

import (
	"fmt"

	"github.com/lixenwraith/tilecast/vmath"
)

// Targets is the per-layout set of positions for one tile count
// Built once per data load and never mutated afterwards
type Targets struct {
	n   int
	pos map[Name][]vmath.Vec3F
}

// Compute runs every generator for n tiles
func Compute(n int, p Params) Targets {
	if n < 0 {
		n = 0
	}
	t := Targets{n: n, pos: make(map[Name][]vmath.Vec3F, len(Generators))}
	for name, gen := range Generators {
		t.pos[name] = gen(n, p)
	}
	return t
}

// Len is the tile count the set was computed for
func (t Targets) Len() int {
	return t.n
}

// Positions returns the target slice for a layout; callers must not modify it
func (t Targets) Positions(name Name) ([]vmath.Vec3F, error) {
	pos, ok := t.pos[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, string(name))
	}
	return pos, nil
}

// Validate checks that every layout holds exactly n positions
func (t Targets) Validate(n int) error {
	for _, name := range Names {
		pos, ok := t.pos[name]
		if !ok {
			return fmt.Errorf("%w: %q missing", ErrUnknownLayout, string(name))
		}
		if len(pos) != n {
			return fmt.Errorf("layout %s: %d targets for %d tiles", name, len(pos), n)
		}
	}
	return nil
}

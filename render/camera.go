package render

import (
	"math"

	"github.com/lixenwraith/tilecast/vmath"
)

// Camera is a perspective eye on the +Z axis looking at the origin
// World Y is up; screen rows grow downward
type Camera struct {
	FOV      float64 // vertical field of view, degrees
	Distance float64 // eye position on +Z
	Near     float64
	Far      float64

	cols, rows int
	focal      float64 // 1/tan(fov/2)
}

// projected is a tile's screen-space footprint
type projected struct {
	cx, cy float64 // center in cells
	sx, sy float64 // cells per world unit, horizontal and vertical
	depth  float64 // distance in front of the eye
}

// NewCamera creates the default camera: 40° FOV, eye at z=3000, clip 1..10000
func NewCamera(cols, rows int) *Camera {
	c := &Camera{FOV: 40, Distance: 3000, Near: 1, Far: 10000}
	c.Resize(cols, rows)
	return c
}

// Resize updates the viewport in cells
func (c *Camera) Resize(cols, rows int) {
	c.cols = max(cols, 1)
	c.rows = max(rows, 1)
	c.focal = 1 / math.Tan(c.FOV*math.Pi/360)
}

// Viewport returns the projected area in cells
func (c *Camera) Viewport() (cols, rows int) {
	return c.cols, c.rows
}

// Project maps a world point to cell coordinates
// ok is false when the point is outside the near/far clip range
// Terminal cells are twice as tall as wide, so one vertical cell spans two horizontal
func (c *Camera) Project(p vmath.Vec3F) (projected, bool) {
	depth := c.Distance - p.Z
	if depth < c.Near || depth > c.Far {
		return projected{}, false
	}
	// cells per world unit at this depth
	sy := c.focal / depth * float64(c.rows) / 2
	sx := sy * 2
	return projected{
		cx:    float64(c.cols)/2 + p.X*sx,
		cy:    float64(c.rows)/2 - p.Y*sy,
		sx:    sx,
		sy:    sy,
		depth: depth,
	}, true
}

// Cell returns the cell holding p's projected center
func (c *Camera) Cell(p vmath.Vec3F) (x, y int, ok bool) {
	pr, ok := c.Project(p)
	if !ok {
		return 0, 0, false
	}
	return int(math.Floor(pr.cx)), int(math.Floor(pr.cy)), true
}

package layout

import (
	"math"

	"github.com/lixenwraith/tilecast/vmath"
)

// Generator produces exactly n positions, index i for tile i
type Generator func(n int, p Params) []vmath.Vec3F

// Generators maps every layout name to its generator
var Generators = map[Name]Generator{
	Table:  TablePositions,
	Sphere: SpherePositions,
	Helix:  HelixPositions,
	Grid:   GridPositions,
}

// TablePositions places tiles in rows of TableCols on the z=0 plane
// Rows past TableRows keep descending; nothing is clamped
func TablePositions(n int, p Params) []vmath.Vec3F {
	out := make([]vmath.Vec3F, n)
	cols := float64(p.TableCols)
	rows := float64(p.TableRows)
	for i := range out {
		row := i / p.TableCols
		col := i % p.TableCols
		out[i] = vmath.Vec3F{
			X: (float64(col) - cols/2) * p.TableSpacing,
			Y: (rows/2 - float64(row)) * p.TableSpacing,
			Z: 0,
		}
	}
	return out
}

// SpherePositions spreads tiles over a sphere of SphereRadius
// phi walks the polar angle uniformly in cos, theta winds sqrt(n·π) times faster
func SpherePositions(n int, p Params) []vmath.Vec3F {
	if n <= 0 {
		return []vmath.Vec3F{}
	}
	out := make([]vmath.Vec3F, n)
	l := float64(n)
	wind := math.Sqrt(l * math.Pi)
	for i := range out {
		phi := math.Acos(-1 + 2*float64(i)/l)
		theta := wind * phi
		out[i] = vmath.FromSpherical(p.SphereRadius, phi, theta)
	}
	return out
}

// HelixPositions winds tiles down two strands half a turn apart
// Even indices take strand A, odd indices strand B
func HelixPositions(n int, p Params) []vmath.Vec3F {
	out := make([]vmath.Vec3F, n)
	for i := range out {
		theta := float64(i) * p.HelixStep
		if i%2 != 0 {
			theta += math.Pi
		}
		out[i] = vmath.Vec3F{
			X: p.HelixRadius * math.Sin(theta),
			Y: -(float64(i) * p.HelixSpacing) + p.HelixYOffset,
			Z: p.HelixRadius * math.Cos(theta),
		}
	}
	return out
}

// GridPositions fills a GridCols × GridRows × GridLayers lattice
// Counts beyond the lattice continue on further layers
func GridPositions(n int, p Params) []vmath.Vec3F {
	out := make([]vmath.Vec3F, n)
	cols := float64(p.GridCols)
	rows := float64(p.GridRows)
	layers := float64(p.GridLayers)
	perLayer := p.GridCols * p.GridRows
	for i := range out {
		col := i % p.GridCols
		row := (i / p.GridCols) % p.GridRows
		layer := i / perLayer
		out[i] = vmath.Vec3F{
			X: (float64(col) - cols/2) * p.GridSpacing,
			Y: (rows/2 - float64(row)) * p.GridSpacing,
			Z: (float64(layer) - layers/2) * p.GridSpacing,
		}
	}
	return out
}

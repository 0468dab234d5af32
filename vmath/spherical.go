package vmath

import "math"

// FromSpherical converts (radius, polar phi, azimuth theta) to Cartesian
// Y is the polar axis; theta is measured from +Z toward +X
func FromSpherical(radius, phi, theta float64) Vec3F {
	sinPhi := math.Sin(phi) * radius
	return Vec3F{
		X: sinPhi * math.Sin(theta),
		Y: math.Cos(phi) * radius,
		Z: sinPhi * math.Cos(theta),
	}
}

package vmath

// Vec3F is a float64 3D vector in world units
// Tile positions and layout targets are stored in this form
type Vec3F struct {
	X, Y, Z float64
}

// V3FLerp interpolates each axis independently, t=0 yields a, t=1 yields b
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{
		X: LerpF(a.X, b.X, t),
		Y: LerpF(a.Y, b.Y, t),
		Z: LerpF(a.Z, b.Z, t),
	}
}

// LerpF performs linear interpolation between a and b
func LerpF(a, b, t float64) float64 {
	return a + (b-a)*t
}

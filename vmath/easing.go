package vmath

import "math"

// EasingFunc maps normalized elapsed time [0,1] to progress [0,1]
type EasingFunc func(t float64) float64

// Linear is the identity curve
func Linear(t float64) float64 {
	return clamp01(t)
}

// ExpoInOut accelerates exponentially into the midpoint and decelerates out of it
// Endpoints are exact: ExpoInOut(0) == 0, ExpoInOut(1) == 1
func ExpoInOut(t float64) float64 {
	t = clamp01(t)
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	}
	t *= 2
	if t < 1 {
		return 0.5 * math.Pow(1024, t-1)
	}
	return 0.5 * (2 - math.Pow(2, -10*(t-1)))
}

// QuadOut decelerates to zero velocity
func QuadOut(t float64) float64 {
	t = clamp01(t)
	return t * (2 - t)
}

// Easings names every selectable curve
var Easings = map[string]EasingFunc{
	"expo_in_out": ExpoInOut,
	"quad_out":    QuadOut,
	"linear":      Linear,
}

// EasingByName looks up a curve in Easings
func EasingByName(name string) (EasingFunc, bool) {
	f, ok := Easings[name]
	return f, ok
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

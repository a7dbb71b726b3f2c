package convert

import "math"

// DegreesToRadians converts an angle measured in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RadiansToDegrees converts an angle measured in radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// NormalizeHeading folds a heading into [0, 360), wrapping negative and
// over-range inputs the way a compass rose does.
func NormalizeHeading(deg float64) float64 {
	h := math.Mod(deg, 360.0)
	if h < 0 {
		h += 360.0
	}
	return h
}

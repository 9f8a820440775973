package noise

import "math"

// Sphere maps texture coordinates (u, v) in [0, 1] onto the unit sphere
// using the equirectangular layout: θ = 2πu around the axis, φ = πv from
// the north pole. Sampling noise at the returned point wraps seamlessly
// at u = 0/1 and pinches cleanly at the poles.
func Sphere(u, v float64) (x, y, z float64) {
	sinT, cosT := math.Sincos(u * 2 * math.Pi)
	sinP, cosP := math.Sincos(v * math.Pi)
	return sinP * cosT, sinP * sinT, cosP
}

// Cylinder maps (u, v) onto a unit cylinder of height 2. It wraps around
// u like Sphere but keeps rows evenly spaced along z, which is what the
// banded gas-giant painter wants.
func Cylinder(u, v float64) (x, y, z float64) {
	sinT, cosT := math.Sincos(u * 2 * math.Pi)
	return cosT, sinT, v*2 - 1
}

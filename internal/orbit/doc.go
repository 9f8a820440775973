// Package orbit converts simulated time into body positions using
// two-body Keplerian elements.
//
// The pipeline for a single body is:
//
//   - elapsed days since [J2000]
//   - mean anomaly from the epoch anomaly and the orbital period
//   - eccentric anomaly via [SolveKepler] (Newton-Raphson, 10 iterations max)
//   - true anomaly and orbital-plane radius
//   - rotation into the ecliptic by ω, i and Ω
//
// [ComputePosition] returns heliocentric ecliptic coordinates in AU.
// [ScaleForDisplay] compresses those into scene units with a log scale and
// swaps the y and z axes so that y is "up" in the scene.
//
// Every function is pure. Nothing is cached and nothing is mutated, so any
// number of goroutines may call into the package at once.
//
//	el := orbit.Planets()["earth"]
//	p := orbit.ComputePosition(el, time.Now())
//	scene := orbit.ScaleForDisplay(p, orbit.DefaultScaleFactor)
package orbit

package orbit

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultScaleFactor is the display scale used when callers pass a
	// non-positive one.
	DefaultScaleFactor = 6.0

	// MinSeparation is the smallest scene radius a non-central body is
	// placed at.
	MinSeparation = 6.0
)

var (
	xAxis = r3.Vec{X: 1}
	zAxis = r3.Vec{Z: 1}
)

// Solution holds every intermediate of one solve. Angles in degrees,
// distances in AU.
type Solution struct {
	Days             float64
	MeanAnomaly      float64
	EccentricAnomaly float64
	TrueAnomaly      float64
	Radius           float64
	Position         r3.Vec
}

// Solve runs the full pipeline for one body at time t. Bodies with a
// non-positive semimajor axis sit at the origin.
func Solve(el Elements, t time.Time) Solution {
	return SolveAt(el, DaysSinceJ2000(t))
}

// SolveAt is Solve for a day offset from J2000. It covers spans that a
// time.Duration cannot hold.
func SolveAt(el Elements, days float64) Solution {
	el = el.Normalized()
	s := Solution{Days: days}
	if el.SemimajorAxis <= 0 {
		return s
	}

	s.MeanAnomaly = MeanAnomaly(el.MeanAnomalyAtEpoch, el.OrbitalPeriod, s.Days)
	s.EccentricAnomaly = SolveKepler(s.MeanAnomaly, el.Eccentricity)
	s.TrueAnomaly = TrueAnomaly(s.EccentricAnomaly, el.Eccentricity)
	s.Radius = Radius(el.SemimajorAxis, el.Eccentricity, s.TrueAnomaly)

	plane := OrbitalPlane(el.SemimajorAxis, el.Eccentricity, s.TrueAnomaly)
	s.Position = ToEcliptic(plane, el.Inclination, el.LongitudeOfAscendingNode, el.ArgumentOfPerihelion)
	return s
}

// ComputePosition returns heliocentric ecliptic coordinates in AU.
func ComputePosition(el Elements, t time.Time) r3.Vec {
	return Solve(el, t).Position
}

// Distance returns the heliocentric distance in AU.
func Distance(el Elements, t time.Time) float64 {
	return Solve(el, t).Radius
}

// OrbitalPlane places a body at true anomaly v (degrees) in its own
// orbital plane, perihelion along +x.
func OrbitalPlane(a, e, v float64) r3.Vec {
	r := Radius(a, e, v)
	sinV, cosV := math.Sincos(unit.AngleFromDeg(v).Rad())
	return r3.Vec{X: r * cosV, Y: r * sinV}
}

// ToEcliptic rotates an orbital-plane vector into the ecliptic frame:
// Rz(Ω)·Rx(i)·Rz(ω). All angles in degrees.
func ToEcliptic(p r3.Vec, inclination, node, perihelion float64) r3.Vec {
	p = r3.NewRotation(unit.AngleFromDeg(perihelion).Rad(), zAxis).Rotate(p)
	p = r3.NewRotation(unit.AngleFromDeg(inclination).Rad(), xAxis).Rotate(p)
	return r3.NewRotation(unit.AngleFromDeg(node).Rad(), zAxis).Rotate(p)
}

// ScaleForDisplay maps an ecliptic position to scene units. The distance d
// becomes ln(5d+1)·2·scale, floored at MinSeparation, and the ecliptic y
// and z axes are swapped. The origin stays at the origin.
func ScaleForDisplay(p r3.Vec, scale float64) r3.Vec {
	if scale <= 0 || math.IsNaN(scale) {
		scale = DefaultScaleFactor
	}
	d := r3.Norm(p)
	if d == 0 {
		return r3.Vec{}
	}
	scaled := math.Log(d*5+1) * scale * 2
	k := math.Max(scaled, MinSeparation) / d
	return r3.Vec{X: p.X * k, Y: p.Z * k, Z: p.Y * k}
}

// AllPositions solves and scales every body in the table.
func AllPositions(table Table, t time.Time, scale float64) map[string]r3.Vec {
	out := make(map[string]r3.Vec, len(table))
	for id, el := range table {
		out[id] = ScaleForDisplay(ComputePosition(el, t), scale)
	}
	return out
}

// PositionOf looks id up and returns its ecliptic position. An unknown id
// is logged and yields the zero vector so a frame can still be drawn.
func PositionOf(table Table, id string, t time.Time) r3.Vec {
	el, ok := table[id]
	if !ok {
		log.Error("no orbital elements", "body", id, "err", ErrUnknownBody)
		return r3.Vec{}
	}
	return ComputePosition(el, t)
}

// Trace samples one full orbit starting at t0. Points are ecliptic
// positions in AU, evenly spaced in time.
func Trace(el Elements, t0 time.Time, samples int) []r3.Vec {
	if samples < 2 {
		samples = 2
	}
	d0 := DaysSinceJ2000(t0)
	period := el.PeriodDays()
	if period <= 0 {
		return []r3.Vec{SolveAt(el, d0).Position}
	}
	step := period / float64(samples)
	pts := make([]r3.Vec, samples)
	for i := range pts {
		pts[i] = SolveAt(el, d0+float64(i)*step).Position
	}
	return pts
}

// SatelliteOffset is a circular scene-space orbit of the given radius in
// the scene's horizontal (x, z) plane, phase zero at J2000.
func SatelliteOffset(radius, periodDays, days float64) r3.Vec {
	if periodDays <= 0 {
		return r3.Vec{X: radius}
	}
	theta := 2 * math.Pi * days / periodDays
	sin, cos := math.Sincos(theta)
	return r3.Vec{X: radius * cos, Z: radius * sin}
}

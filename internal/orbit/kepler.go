package orbit

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
)

const (
	// DaysPerYear converts orbital periods in years to days.
	DaysPerYear = 365.25

	// KeplerTolerance is the residual |E - e·sinE - M| (radians) at which
	// the Newton-Raphson solve stops.
	KeplerTolerance = 1e-6

	// KeplerMaxIterations caps the solve. Hitting the cap is not an error.
	KeplerMaxIterations = 10
)

// J2000 is the reference epoch, 2000-01-01T12:00:00 UTC.
var J2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// DaysSinceJ2000 returns the signed number of days between J2000 and t.
func DaysSinceJ2000(t time.Time) float64 {
	// julian.TimeToJD reads the wall clock fields as UTC.
	return julian.TimeToJD(t.UTC()) - base.J2000
}

// MeanAnomaly advances the epoch mean anomaly by days of mean motion and
// returns the result in [0, 360) degrees. A non-positive period has no
// mean motion.
func MeanAnomaly(atEpoch, periodYears, days float64) float64 {
	motion := 0.0
	if periodYears > 0 {
		motion = 360 / (periodYears * DaysPerYear)
	}
	return normDeg(atEpoch + motion*days)
}

// SolveKepler solves E - e·sin(E) = M for the eccentric anomaly E. Both
// anomalies are in degrees. The Newton-Raphson iteration starts at E = M
// and runs at most KeplerMaxIterations times.
func SolveKepler(meanAnomaly, e float64) float64 {
	E, _ := solveKepler(unit.AngleFromDeg(meanAnomaly).Rad(), e)
	return unit.Angle(E).Deg()
}

// solveKepler works in radians and also reports how many Newton steps
// were taken.
func solveKepler(m, e float64) (E float64, steps int) {
	E = m
	for steps < KeplerMaxIterations {
		delta := E - e*math.Sin(E) - m
		if math.Abs(delta) < KeplerTolerance {
			break
		}
		E -= delta / (1 - e*math.Cos(E))
		steps++
	}
	return E, steps
}

// TrueAnomaly converts an eccentric anomaly (degrees) into the true
// anomaly in [0, 360) degrees.
func TrueAnomaly(eccentricAnomaly, e float64) float64 {
	sinE, cosE := math.Sincos(unit.AngleFromDeg(eccentricAnomaly).Rad())
	v := math.Atan2(math.Sqrt(1-e*e)*sinE, cosE-e)
	return normDeg(unit.Angle(v).Deg())
}

// Radius is the heliocentric distance for true anomaly v (degrees).
func Radius(a, e, v float64) float64 {
	return a * (1 - e*e) / (1 + e*math.Cos(unit.AngleFromDeg(v).Rad()))
}

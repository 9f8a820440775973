package orbit

import (
	"fmt"
	"math"
	"sort"

	"github.com/soniakeys/unit"
)

// MaxEccentricity is the largest eccentricity Normalized lets through.
// Anything at or above 1 is not an ellipse.
const MaxEccentricity = 0.999

// Elements is a classical Keplerian element set referred to J2000.
// Angles are in degrees, the semimajor axis in AU and the period in
// Earth years.
type Elements struct {
	SemimajorAxis            float64 `yaml:"semimajor_axis" json:"semimajorAxis"`
	Eccentricity             float64 `yaml:"eccentricity" json:"eccentricity"`
	Inclination              float64 `yaml:"inclination" json:"inclination"`
	LongitudeOfAscendingNode float64 `yaml:"longitude_of_ascending_node" json:"longitudeOfAscendingNode"`
	ArgumentOfPerihelion     float64 `yaml:"argument_of_perihelion" json:"argumentOfPerihelion"`
	MeanAnomalyAtEpoch       float64 `yaml:"mean_anomaly_at_epoch" json:"meanAnomalyAtEpoch"`
	OrbitalPeriod            float64 `yaml:"orbital_period" json:"orbitalPeriod"`
}

// Normalized returns a copy that is safe to feed through the solver:
// angles reduced to [0, 360) and eccentricity clamped to
// [0, MaxEccentricity]. A non-positive period is left alone; MeanAnomaly
// treats it as a body that never moves.
func (el Elements) Normalized() Elements {
	el.Inclination = normDeg(el.Inclination)
	el.LongitudeOfAscendingNode = normDeg(el.LongitudeOfAscendingNode)
	el.ArgumentOfPerihelion = normDeg(el.ArgumentOfPerihelion)
	el.MeanAnomalyAtEpoch = normDeg(el.MeanAnomalyAtEpoch)

	switch {
	case math.IsNaN(el.Eccentricity) || el.Eccentricity < 0:
		el.Eccentricity = 0
	case el.Eccentricity > MaxEccentricity:
		el.Eccentricity = MaxEccentricity
	}
	return el
}

// Validate rejects element sets that do not describe a bound orbit. The
// solver itself never calls it; it is meant for tables read from files.
func (el Elements) Validate() error {
	vals := []float64{
		el.SemimajorAxis, el.Eccentricity, el.Inclination,
		el.LongitudeOfAscendingNode, el.ArgumentOfPerihelion,
		el.MeanAnomalyAtEpoch, el.OrbitalPeriod,
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value", ErrInvalidElements)
		}
	}
	if el.SemimajorAxis <= 0 {
		return fmt.Errorf("%w: semimajor axis %g must be positive", ErrInvalidElements, el.SemimajorAxis)
	}
	if el.Eccentricity < 0 || el.Eccentricity >= 1 {
		return fmt.Errorf("%w: eccentricity %g outside [0,1)", ErrInvalidElements, el.Eccentricity)
	}
	if el.OrbitalPeriod <= 0 {
		return fmt.Errorf("%w: orbital period %g must be positive", ErrInvalidElements, el.OrbitalPeriod)
	}
	return nil
}

// PeriodDays returns the orbital period in days.
func (el Elements) PeriodDays() float64 {
	return el.OrbitalPeriod * DaysPerYear
}

// Table maps body ids to their elements.
type Table map[string]Elements

// IDs returns the table keys ordered by semimajor axis, innermost first.
func (t Table) IDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ai, aj := t[ids[i]].SemimajorAxis, t[ids[j]].SemimajorAxis
		if ai != aj {
			return ai < aj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Merge returns a new table holding t overlaid with other.
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t)+len(other))
	for id, el := range t {
		out[id] = el
	}
	for id, el := range other {
		out[id] = el
	}
	return out
}

var planets = Table{
	"mercury": {SemimajorAxis: 0.387, Eccentricity: 0.206, Inclination: 7.0, LongitudeOfAscendingNode: 48.3, ArgumentOfPerihelion: 29.1, MeanAnomalyAtEpoch: 174.8, OrbitalPeriod: 0.241},
	"venus":   {SemimajorAxis: 0.723, Eccentricity: 0.007, Inclination: 3.4, LongitudeOfAscendingNode: 76.7, ArgumentOfPerihelion: 54.9, MeanAnomalyAtEpoch: 50.4, OrbitalPeriod: 0.615},
	"earth":   {SemimajorAxis: 1.0, Eccentricity: 0.017, Inclination: 0.0, LongitudeOfAscendingNode: 174.9, ArgumentOfPerihelion: 288.1, MeanAnomalyAtEpoch: 357.5, OrbitalPeriod: 1.0},
	"mars":    {SemimajorAxis: 1.524, Eccentricity: 0.093, Inclination: 1.8, LongitudeOfAscendingNode: 49.6, ArgumentOfPerihelion: 286.5, MeanAnomalyAtEpoch: 19.4, OrbitalPeriod: 1.881},
	"jupiter": {SemimajorAxis: 5.203, Eccentricity: 0.048, Inclination: 1.3, LongitudeOfAscendingNode: 100.5, ArgumentOfPerihelion: 273.9, MeanAnomalyAtEpoch: 20.0, OrbitalPeriod: 11.86},
	"saturn":  {SemimajorAxis: 9.537, Eccentricity: 0.056, Inclination: 2.5, LongitudeOfAscendingNode: 113.7, ArgumentOfPerihelion: 339.4, MeanAnomalyAtEpoch: 317.0, OrbitalPeriod: 29.46},
	"uranus":  {SemimajorAxis: 19.191, Eccentricity: 0.046, Inclination: 0.8, LongitudeOfAscendingNode: 74.0, ArgumentOfPerihelion: 96.7, MeanAnomalyAtEpoch: 142.0, OrbitalPeriod: 84.01},
	"neptune": {SemimajorAxis: 30.069, Eccentricity: 0.01, Inclination: 1.8, LongitudeOfAscendingNode: 131.8, ArgumentOfPerihelion: 273.2, MeanAnomalyAtEpoch: 267.0, OrbitalPeriod: 164.8},
}

// Planets returns a copy of the builtin eight-planet table.
func Planets() Table {
	return Table{}.Merge(planets)
}

func normDeg(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	d := unit.PMod(deg, 360)
	if d >= 360 {
		// tiny negative inputs round up to exactly one turn
		return 0
	}
	return d
}

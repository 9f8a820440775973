package orbit_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/orbit"
)

func deg2rad(d float64) float64 { return d * math.Pi / 180 }

// angDiff is the absolute separation of two angles in degrees.
func angDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

var _ = Describe("Kepler solver", func() {
	It("converges below tolerance for e < 0.9", func() {
		for e := 0.0; e < 0.9; e += 0.05 {
			for m := 0.0; m < 360; m += 7.5 {
				E := deg2rad(orbit.SolveKepler(m, e))
				residual := E - e*math.Sin(E) - deg2rad(m)
				Expect(math.Abs(residual)).To(BeNumerically("<", orbit.KeplerTolerance),
					"e=%.2f M=%.1f", e, m)
			}
		}
	})

	It("returns the mean anomaly unchanged for a circle", func() {
		for m := 0.0; m < 360; m += 13 {
			Expect(orbit.SolveKepler(m, 0)).To(BeNumerically("~", m, 1e-9))
		}
	})

	It("gives true anomaly equal to mean anomaly on circular orbits", func() {
		el := orbit.Planets()["venus"]
		el.Eccentricity = 0
		t := orbit.J2000
		for i := 0; i < 40; i++ {
			s := orbit.Solve(el, t)
			Expect(angDiff(s.TrueAnomaly, s.MeanAnomaly)).To(BeNumerically("<", 1e-6))
			t = t.Add(17*24*time.Hour + 5*time.Hour)
		}
	})

	It("normalises mean anomaly into [0,360)", func() {
		Expect(orbit.MeanAnomaly(-10, 1, 0)).To(BeNumerically("~", 350, 1e-9))
		Expect(angDiff(orbit.MeanAnomaly(350, 1, orbit.DaysPerYear/36), 0)).To(BeNumerically("<", 1e-9))
		Expect(orbit.MeanAnomaly(42, 0, 1000)).To(Equal(42.0))
	})

	It("keeps the true anomaly within [0,360)", func() {
		for E := -720.0; E < 720; E += 33 {
			v := orbit.TrueAnomaly(E, 0.3)
			Expect(v).To(BeNumerically(">=", 0))
			Expect(v).To(BeNumerically("<", 360))
		}
	})
})

var _ = Describe("Epoch", func() {
	It("counts days from J2000", func() {
		Expect(orbit.DaysSinceJ2000(orbit.J2000)).To(BeNumerically("~", 0, 1e-9))
		Expect(orbit.DaysSinceJ2000(orbit.J2000.Add(36 * time.Hour))).To(BeNumerically("~", 1.5, 1e-6))
		Expect(orbit.DaysSinceJ2000(orbit.J2000.Add(-48 * time.Hour))).To(BeNumerically("~", -2, 1e-6))
	})

	It("ignores the time zone of the input", func() {
		tz := time.FixedZone("UTC+5", 5*3600)
		Expect(orbit.DaysSinceJ2000(orbit.J2000.In(tz))).To(BeNumerically("~", 0, 1e-9))
	})
})

package orbit_test

import (
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/orbit"
)

func closeVec(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}

var _ = Describe("ComputePosition", func() {
	planets := orbit.Planets()

	It("solves Earth at J2000", func() {
		s := orbit.Solve(planets["earth"], orbit.J2000)
		Expect(s.Days).To(BeNumerically("~", 0, 1e-9))
		Expect(s.MeanAnomaly).To(BeNumerically("~", 357.5, 1e-9))
		Expect(s.EccentricAnomaly).NotTo(Equal(357.5))
		Expect(angDiff(s.EccentricAnomaly, 357.5)).To(BeNumerically("<", 1))
		Expect(s.Radius).To(BeNumerically(">=", 0.983))
		Expect(s.Radius).To(BeNumerically("<=", 1.017))
		Expect(r3.Norm(s.Position)).To(BeNumerically("~", s.Radius, 1e-9))
	})

	It("repeats after one orbital period", func() {
		t := time.Date(2024, time.March, 3, 7, 30, 0, 0, time.UTC)
		for id, el := range planets {
			later := t.Add(time.Duration(el.PeriodDays() * float64(24*time.Hour)))
			Expect(closeVec(orbit.ComputePosition(el, t), orbit.ComputePosition(el, later), 1e-6)).
				To(BeTrue(), id)
		}
	})

	It("stays between perihelion and aphelion", func() {
		for id, el := range planets {
			lo, hi := el.SemimajorAxis*(1-el.Eccentricity), el.SemimajorAxis*(1+el.Eccentricity)
			t := orbit.J2000
			for i := 0; i < 50; i++ {
				d := orbit.Distance(el, t)
				Expect(d).To(BeNumerically(">=", lo-1e-9), id)
				Expect(d).To(BeNumerically("<=", hi+1e-9), id)
				t = t.Add(97 * 24 * time.Hour)
			}
		}
	})

	It("matches the classical orbital-to-ecliptic matrix", func() {
		p := r3.Vec{X: 0.8, Y: -0.4}
		i, node, peri := 7.0, 48.3, 29.1
		ci, si := math.Cos(deg2rad(i)), math.Sin(deg2rad(i))
		cO, sO := math.Cos(deg2rad(node)), math.Sin(deg2rad(node))
		cw, sw := math.Cos(deg2rad(peri)), math.Sin(deg2rad(peri))
		want := r3.Vec{
			X: p.X*(cw*cO-sw*sO*ci) + p.Y*(-sw*cO-cw*sO*ci),
			Y: p.X*(cw*sO+sw*cO*ci) + p.Y*(-sw*sO+cw*cO*ci),
			Z: p.X*sw*si + p.Y*cw*si,
		}
		Expect(closeVec(orbit.ToEcliptic(p, i, node, peri), want, 1e-12)).To(BeTrue())
	})

	It("places a central body at the origin", func() {
		Expect(orbit.ComputePosition(orbit.Elements{}, time.Now())).To(Equal(r3.Vec{}))
	})

	It("tolerates out-of-range angles and eccentricity", func() {
		el := planets["mars"]
		wrapped := el
		wrapped.Inclination += 720
		wrapped.ArgumentOfPerihelion -= 360
		t := time.Date(2031, time.July, 1, 0, 0, 0, 0, time.UTC)
		Expect(closeVec(orbit.ComputePosition(el, t), orbit.ComputePosition(wrapped, t), 1e-9)).To(BeTrue())

		wild := el
		wild.Eccentricity = 3
		p := orbit.ComputePosition(wild, t)
		Expect(math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z)).To(BeFalse())
	})
})

var _ = Describe("ScaleForDisplay", func() {
	It("floors tiny distances at the minimum separation", func() {
		p := orbit.ScaleForDisplay(r3.Vec{X: 1e-9}, 6)
		Expect(r3.Norm(p)).To(BeNumerically("~", orbit.MinSeparation, 1e-9))
	})

	It("keeps the origin at the origin", func() {
		Expect(orbit.ScaleForDisplay(r3.Vec{}, 6)).To(Equal(r3.Vec{}))
	})

	It("applies the log scale and swaps y and z", func() {
		p := orbit.ScaleForDisplay(r3.Vec{Y: 2}, 6)
		want := math.Log(2*5+1) * 6 * 2
		Expect(p.X).To(BeNumerically("~", 0, 1e-12))
		Expect(p.Y).To(BeNumerically("~", 0, 1e-12))
		Expect(p.Z).To(BeNumerically("~", want, 1e-9))

		q := orbit.ScaleForDisplay(r3.Vec{Z: 2}, 6)
		Expect(q.Y).To(BeNumerically("~", want, 1e-9))
	})

	It("falls back to the default scale", func() {
		v := r3.Vec{X: 3, Y: 1, Z: 0.2}
		Expect(orbit.ScaleForDisplay(v, 0)).To(Equal(orbit.ScaleForDisplay(v, orbit.DefaultScaleFactor)))
	})

	It("never puts a planet inside the minimum separation", func() {
		for id, p := range orbit.AllPositions(orbit.Planets(), time.Now(), 6) {
			Expect(r3.Norm(p)).To(BeNumerically(">=", orbit.MinSeparation-1e-9), id)
		}
	})

	It("preserves the ordering of distances", func() {
		prev := 0.0
		for d := 0.01; d < 40; d *= 1.7 {
			r := r3.Norm(orbit.ScaleForDisplay(r3.Vec{X: d}, 6))
			Expect(r).To(BeNumerically(">=", prev))
			prev = r
		}
	})
})

var _ = Describe("Lookups", func() {
	It("returns the zero vector for unknown bodies", func() {
		Expect(orbit.PositionOf(orbit.Planets(), "pluto", time.Now())).To(Equal(r3.Vec{}))
	})

	It("finds known bodies", func() {
		t := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
		table := orbit.Planets()
		Expect(orbit.PositionOf(table, "saturn", t)).To(Equal(orbit.ComputePosition(table["saturn"], t)))
	})

	It("orders ids by distance from the sun", func() {
		Expect(orbit.Planets().IDs()).To(Equal([]string{
			"mercury", "venus", "earth", "mars", "jupiter", "saturn", "uranus", "neptune",
		}))
	})

	It("returns an independent copy of the builtin table", func() {
		a := orbit.Planets()
		a["earth"] = orbit.Elements{}
		Expect(orbit.Planets()["earth"].SemimajorAxis).To(Equal(1.0))
	})
})

var _ = Describe("Elements", func() {
	It("accepts the builtin planets", func() {
		for id, el := range orbit.Planets() {
			Expect(el.Validate()).To(Succeed(), id)
		}
	})

	DescribeTable("rejects unbound or degenerate orbits",
		func(el orbit.Elements) {
			err := el.Validate()
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, orbit.ErrInvalidElements)).To(BeTrue())
		},
		Entry("zero axis", orbit.Elements{Eccentricity: 0.1, OrbitalPeriod: 1}),
		Entry("parabolic", orbit.Elements{SemimajorAxis: 1, Eccentricity: 1, OrbitalPeriod: 1}),
		Entry("negative e", orbit.Elements{SemimajorAxis: 1, Eccentricity: -0.1, OrbitalPeriod: 1}),
		Entry("no period", orbit.Elements{SemimajorAxis: 1}),
		Entry("nan", orbit.Elements{SemimajorAxis: math.NaN(), OrbitalPeriod: 1}),
	)

	It("normalises angles and clamps eccentricity", func() {
		n := orbit.Elements{Inclination: -30, MeanAnomalyAtEpoch: 725, Eccentricity: 1.5}.Normalized()
		Expect(n.Inclination).To(BeNumerically("~", 330, 1e-9))
		Expect(n.MeanAnomalyAtEpoch).To(BeNumerically("~", 5, 1e-9))
		Expect(n.Eccentricity).To(Equal(orbit.MaxEccentricity))
	})
})

var _ = Describe("Trace and satellites", func() {
	It("samples a closed orbit", func() {
		el := orbit.Planets()["mercury"]
		pts := orbit.Trace(el, orbit.J2000, 64)
		Expect(pts).To(HaveLen(64))
		Expect(closeVec(pts[0], orbit.ComputePosition(el, orbit.J2000), 1e-12)).To(BeTrue())
	})

	It("samples orbits longer than a time.Duration span", func() {
		sedna := orbit.Elements{
			SemimajorAxis: 67.8, Eccentricity: 0.44, Inclination: 11.9,
			LongitudeOfAscendingNode: 144.5, ArgumentOfPerihelion: 311.3,
			MeanAnomalyAtEpoch: 358, OrbitalPeriod: 558,
		}
		Expect(sedna.Validate()).To(Succeed())

		const n = 8
		pts := orbit.Trace(sedna, orbit.J2000, n)
		Expect(pts).To(HaveLen(n))
		for i, p := range pts {
			shifted := sedna
			shifted.MeanAnomalyAtEpoch += 360 * float64(i) / n
			Expect(closeVec(p, orbit.ComputePosition(shifted, orbit.J2000), 1e-6)).
				To(BeTrue(), "sample %d", i)
		}
		Expect(closeVec(pts[n-1], pts[n-2], 1)).To(BeFalse())
	})

	It("solves by day offset like by time", func() {
		el := orbit.Planets()["mars"]
		t := time.Date(2031, time.July, 9, 3, 0, 0, 0, time.UTC)
		a, b := orbit.Solve(el, t), orbit.SolveAt(el, orbit.DaysSinceJ2000(t))
		Expect(a).To(Equal(b))
	})

	It("keeps moons on a fixed radius", func() {
		for d := 0.0; d < 60; d += 3.3 {
			Expect(r3.Norm(orbit.SatelliteOffset(3, 27.32, d))).To(BeNumerically("~", 3, 1e-12))
		}
	})
})

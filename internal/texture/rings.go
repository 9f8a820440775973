package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orrery/internal/noise"
)

const (
	ringInner     = 0.3
	ringOuter     = 0.47
	ringStep      = 0.5
	ringParticles = 120
)

// ringGaps are the divisions as fractions of the ring width, the widest
// being the Cassini division.
var ringGaps = []float64{0.7, 0.77, 0.82, 0.905}

func inGap(nr, tolerance float64) bool {
	for _, g := range ringGaps {
		if math.Abs(nr-g) < tolerance {
			return true
		}
	}
	return false
}

func paintRings(s *surface, req Request, base colorful.Color) {
	s.clear()

	res := s.size()
	c := res / 2
	inner, outer := res*ringInner, res*ringOuter
	d := req.Detail

	for r := inner; r <= outer; r += ringStep {
		nr := (r - inner) / (outer - inner)
		if inGap(nr, 0.01) {
			continue
		}
		opacity := 0.8 + math.Sin(nr*math.Pi*15)*0.15

		switch {
		case nr < 0.3:
			s.strokeCircle(c, c, r, 1, withAlpha(scale(base, 0.7), opacity))
		case nr > 0.8:
			s.strokeCircle(c, c, r, 1, withAlpha(scale(base, 1.3), opacity))
		default:
			for a := 0.0; a < math.Pi*2; a += math.Pi / 360 {
				x, y := polar(c, c, r, a)
				sin, cos := math.Sincos(a)
				n := noise.Fractal(cos*d, sin*d, nr*d, 3, 0.5)
				s.blend(int(x), int(y), offsetHSL(base, 0, 0, (n-0.5)*0.25), opacity)
			}
		}
	}

	for i := 0; i < ringParticles; i++ {
		angle := s.random() * math.Pi * 2
		r := inner + s.random()*(outer-inner)
		if inGap((r-inner)/(outer-inner), 0.015) {
			continue
		}
		size := s.px(s.random()*3 + 1)
		x, y := polar(c, c, r, angle)
		col := offsetHSL(base, 0, 0, s.random()*0.5-0.2)
		s.fillCircle(x, y, size, solid(withAlpha(col, 0.95)))
	}

	s.fillCircle(c, c, outer, radial(c, c, inner, c, c, outer,
		stop{0, rgba(255, 240, 220, 0.1)},
		stop{0.5, rgba(255, 220, 180, 0.05)},
		stop{1, transparent},
	))
}

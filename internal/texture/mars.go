package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orrery/internal/noise"
)

var (
	marsRed   = mustHex("#c1440e")
	marsDark  = mustHex("#6b2308")
	marsDust  = mustHex("#e07a26")
	marsPolar = mustHex("#f0f0f0")
)

func paintMars(s *surface, req Request) {
	d := req.Detail
	s.shade(func(_, _ int, u, v float64) (colorful.Color, bool) {
		x, y, z := s.sphere(u, v)
		base := noise.Fractal(x*d, y*d, z*d, 8, 0.55)
		crater := noise.Fractal(x*d*3, y*d*3, z*d*3, 4, 0.8)
		dust := noise.Fractal(x*d*2, y*d*2, z*d*2, 6, 0.4)
		lat := math.Abs(z)

		if lat > 0.85 {
			c := marsPolar
			if lat < 0.9 {
				c = c.BlendRgb(marsDust, (0.9-lat)*10)
			}
			return c, true
		}

		var c colorful.Color
		switch {
		case crater > 0.7:
			c = offsetHSL(marsDust, 0, -0.1, 0.1)
		case crater < 0.3:
			c = marsDark
		case base > 0.6:
			c = offsetHSL(marsDust, 0, 0.1, 0.1)
		default:
			c = marsRed.BlendRgb(marsDust, dust*0.5)
		}
		return offsetHSL(c, 0, 0, lat*0.3), true
	})

	res := s.size()

	// Olympus Mons
	ox, oy := res*0.3, res*0.4
	s.fillCircle(ox, oy, res*0.12, radial(ox, oy, 0, ox, oy, res*0.12,
		stop{0, rgba(230, 180, 100, 0.7)},
		stop{0.3, rgba(210, 140, 60, 0.5)},
		stop{0.7, rgba(180, 90, 40, 0.3)},
		stop{1, transparent},
	))

	// Valles Marineris
	s.fillEllipse(res*0.6, res*0.5, res*0.3, res*0.05, math.Pi*0.2, solid(rgba(100, 30, 10, 0.6)))
}

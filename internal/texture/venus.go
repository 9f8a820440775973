package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orrery/internal/noise"
)

var (
	venusBase   = mustHex("#e0c48f")
	venusDark   = mustHex("#a89466")
	venusBright = mustHex("#f0d8a0")
)

func paintVenus(s *surface, req Request) {
	d := req.Detail
	s.shade(func(_, _ int, u, v float64) (colorful.Color, bool) {
		x, y, z := s.sphere(u, v)
		base := noise.Fractal(x*d, y*d, z*d, 6, 0.6)
		swirl := noise.Fractal(x*d*0.5, y*d*0.5, z*d*0.5, 3, 0.7)
		fine := noise.Fractal(x*d*4, y*d*4, z*d*4, 2, 0.5)
		cloud := base*0.5 + swirl*0.3 + fine*0.2

		c := venusBase
		switch {
		case cloud > 0.6:
			c = c.BlendRgb(venusBright, (cloud-0.6)*2)
		case cloud < 0.4:
			c = c.BlendRgb(venusDark, (0.4-cloud)*2)
		}
		// faint zonal banding
		return offsetHSL(c, 0, 0, math.Sin(v*math.Pi*8)*0.05), true
	})

	res := s.size()
	for i := 0; i < 6; i++ {
		x := s.random() * res
		y := s.random() * res
		size := s.random()*res*0.2 + res*0.1
		g := radial(x, y, 0, x, y, size,
			stop{0, rgba(240, 230, 180, 0.15)},
			stop{0.5, rgba(220, 200, 140, 0.1)},
			stop{1, transparent},
		)
		s.fillEllipse(x, y, size, size*0.4, s.random()*math.Pi, g)
	}
}

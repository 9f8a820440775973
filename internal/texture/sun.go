package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orrery/internal/noise"
)

const (
	sunFlares = 12

	// corona inner and outer radii as fractions of the resolution
	coronaInner = 0.45
	coronaOuter = 0.75
)

var (
	sunCore  = mustHex("#fffdf8")
	sunInner = mustHex("#fff5e0")
	sunOuter = mustHex("#ff7700")
	sunLimb  = mustHex("#ff4400")
	sunEdge  = mustHex("#ff2200")
)

func paintSun(s *surface, req Request, base colorful.Color) {
	res := s.size()
	c := res / 2

	s.fillRect(radial(c, c, 0, c, c, res/2,
		stop{0, opaque(sunCore)},
		stop{0.2, opaque(sunInner)},
		stop{0.5, opaque(base)},
		stop{0.8, opaque(sunOuter)},
		stop{0.95, opaque(sunLimb)},
		stop{1, opaque(sunEdge)},
	))

	d := req.Detail
	t := req.TimeSeed
	s.shade(func(x, y int, u, v float64) (colorful.Color, bool) {
		nx, ny := u-0.5, v-0.5
		r := math.Hypot(nx, ny) * 2
		if r > 1 {
			return colorful.Color{}, false
		}

		// project the disc onto a hemisphere facing the viewer
		theta := math.Atan2(ny, nx)
		phi := math.Acos(r)
		px := math.Sin(phi) * math.Cos(theta)
		py := math.Sin(phi) * math.Sin(theta)
		pz := math.Cos(phi)

		n1 := noise.Fractal(px*d+t, py*d, pz*d, 4, 0.5)
		n2 := noise.Fractal(px*d*2, py*d*2+t, pz*d*3, 2, 0.7)
		n3 := noise.Fractal(px*d*4, py*d*4, pz*d*5, 2, 0.8)
		plasma := n1*0.5 + n2*0.3 + n3*0.2

		col := s.at(x, y)
		switch {
		case plasma > 0.7:
			col = offsetHSL(col, 0, -0.3, 0.3)
		case plasma < 0.3:
			col = offsetHSL(col, 0.05, 0.3, -0.1)
		}
		return col, true
	})

	for i := 0; i < sunFlares; i++ {
		angle := s.random() * math.Pi * 2
		x, y := polar(c, c, res*0.35+s.random()*res*0.15, angle)

		g := radial(x, y, 0, x, y, res*0.2,
			stop{0, rgba(255, 250, 220, 0.9)},
			stop{0.3, rgba(255, 200, 100, 0.7)},
			stop{0.6, rgba(255, 140, 60, 0.5)},
			stop{1, transparent},
		)
		if s.random() > 0.5 {
			sweep := s.random()*math.Pi/2 + math.Pi/4
			start := s.random() * math.Pi * 2
			s.fillSector(x, y, res*0.15, start, sweep, g)
		} else {
			rx := res*0.1 + s.random()*res*0.08
			ry := res*0.05 + s.random()*res*0.04
			s.fillEllipse(x, y, rx, ry, s.random()*math.Pi*2, g)
		}
	}

	s.fillCircle(c, c, res*coronaOuter, radial(c, c, res*coronaInner, c, c, res*coronaOuter,
		stop{0, rgba(255, 220, 120, 0.4)},
		stop{0.3, rgba(255, 180, 80, 0.25)},
		stop{0.6, rgba(255, 150, 50, 0.15)},
		stop{1, transparent},
	))
}

package texture

import (
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orrery/internal/noise"
)

func paintRocky(s *surface, req Request, base colorful.Color) {
	d := req.Detail
	s.shade(func(_, _ int, u, v float64) (colorful.Color, bool) {
		x, y, z := s.sphere(u, v)
		n := noise.Fractal(x*d, y*d, z*d, 6, 0.5)
		c := offsetHSL(base, 0, 0, (n-0.5)*req.NoiseIntensity*2)

		// thin contour of slightly darker ground
		ridge := noise.Fractal(x*d*2, y*d*2, z*d*2, 3, 0.7)
		if ridge > 0.7 && ridge < 0.75 {
			c = offsetHSL(c, 0, 0, -0.2)
		}
		return c, true
	})

	res := s.size()
	dark := opaque(scale(base, 0.7))
	light := opaque(scale(base, 1.2))
	for i := 0; i < 15; i++ {
		x := s.random() * res
		y := s.random() * res
		size := s.random()*(res/10) + res/30

		s.fillCircle(x, y, size, solid(dark))

		hx, hy := x-size/4, y-size/4
		s.fillCircle(hx, hy, size/2, radial(hx, hy, 0, hx, hy, size/2,
			stop{0, light},
			stop{1, transparent},
		))
	}
}

// crateredStyle parameterises the airless, ray-cratered bodies.
type crateredStyle struct {
	base, dark, light, rim colorful.Color
	ray                    [3]uint8

	craters int

	// rays are cast from craters wider than raySize·res, and of those
	// only when a draw exceeds rayOdds
	raySize float64
	rayOdds float64

	// ray length is size·(rand·rayLenSpan + rayLenMin)
	rayLenMin  float64
	rayLenSpan float64

	maria bool
}

var (
	moonStyle = crateredStyle{
		base:       mustHex("#c8c8c8"),
		dark:       mustHex("#505050"),
		light:      mustHex("#e0e0e0"),
		rim:        mustHex("#d0d0d0"),
		ray:        [3]uint8{220, 220, 220},
		craters:    35,
		raySize:    0.05,
		rayOdds:    0.7,
		rayLenMin:  6,
		rayLenSpan: 8,
		maria:      true,
	}

	mercuryStyle = crateredStyle{
		base:       mustHex("#a59784"),
		dark:       mustHex("#6e6259"),
		light:      mustHex("#cfc0b3"),
		rim:        mustHex("#d7c9b8"),
		ray:        [3]uint8{215, 201, 184},
		craters:    25,
		raySize:    0.06,
		rayLenMin:  4,
		rayLenSpan: 6,
	}
)

func paintMoon(s *surface, req Request) { paintCratered(s, req, moonStyle) }

func paintMercury(s *surface, req Request) { paintCratered(s, req, mercuryStyle) }

func paintCratered(s *surface, req Request, st crateredStyle) {
	d := req.Detail
	s.shade(func(_, _ int, u, v float64) (colorful.Color, bool) {
		x, y, z := s.sphere(u, v)
		large := noise.Fractal(x*d*0.5, y*d*0.5, z*d*0.5, 4, 0.5)
		medium := noise.Fractal(x*d*2, y*d*2, z*d*2, 5, 0.6)
		small := noise.Fractal(x*d*6, y*d*6, z*d*6, 3, 0.7)

		switch {
		case medium > 0.7 && small > 0.6:
			return st.rim, true
		case medium < 0.3 && small < 0.4:
			return st.dark, true
		case large > 0.6:
			return st.light, true
		}
		combined := large*0.4 + medium*0.4 + small*0.2
		return offsetHSL(st.base, 0, 0, (combined-0.5)*0.2), true
	})

	res := s.size()
	for i := 0; i < st.craters; i++ {
		x := s.random() * res
		y := s.random() * res
		size := s.random()*(res*0.1) + res*0.02

		s.fillCircle(x, y, size, solid(opaque(st.dark)))
		s.strokeCircle(x, y, size*0.9, size*0.15, opaque(st.rim))

		if size > res*st.raySize && (st.rayOdds == 0 || s.random() > st.rayOdds) {
			castRays(s, x, y, size, st)
		}
	}

	if st.maria {
		mare := solid(rgba(80, 80, 80, 0.4))
		for _, m := range [][3]float64{{0.3, 0.3, 0.15}, {0.6, 0.4, 0.12}, {0.5, 0.7, 0.1}} {
			s.fillCircle(res*m[0], res*m[1], res*m[2], mare)
		}
	}
}

// castRays draws tapered ejecta streaks fading outward from a crater.
func castRays(s *surface, cx, cy, size float64, st crateredStyle) {
	count := int(s.random()*8) + 6
	length := size * (s.random()*st.rayLenSpan + st.rayLenMin)
	width := size * 0.4
	r, g, b := st.ray[0], st.ray[1], st.ray[2]

	for i := 0; i < count; i++ {
		angle := float64(i)*(2*math.Pi/float64(count)) + s.random()*0.5
		ex, ey := polar(cx, cy, size+length*0.5, angle)

		grad := linear(cx, cy, ex, ey,
			stop{0, rgba(r, g, b, 0.7)},
			stop{0.5, rgba(r, g, b, 0.3)},
			stop{1, transparent},
		)
		ray(s.dc, cx, cy, ex, ey, size, width, angle)
		s.dc.SetFillStyle(grad)
		s.dc.Fill()
	}
}

func ray(dc *gg.Context, cx, cy, ex, ey, size, width, angle float64) {
	dc.MoveTo(polar(cx, cy, size, angle-0.2))
	dc.LineTo(polar(ex, ey, width, angle+0.1))
	dc.LineTo(polar(ex, ey, width, angle-0.1))
	dc.LineTo(polar(cx, cy, size, angle+0.2))
	dc.ClosePath()
}

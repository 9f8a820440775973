package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orrery/internal/noise"
)

const (
	jupiterBands = 12
	iceBands     = 8

	// maxStorms bounds the spots seeded during the band pass.
	maxStorms = 48
)

type storm struct {
	x, y, size float64
}

// bandCount picks Jupiter-like banding for warm bases and the calmer ice
// giant pattern otherwise.
func bandCount(base colorful.Color) int {
	if base.R > base.B {
		return jupiterBands
	}
	return iceBands
}

func bandOf(v float64, bands int) int {
	return int(v*float64(bands)) % bands
}

func paintGas(s *surface, req Request, base colorful.Color) {
	storms := gasBands(s, req, base)
	warm := base.R > base.B

	for _, st := range storms {
		c := rgba(255, 255, 255, 0.8)
		if warm {
			c = rgba(196, 116, 48, 0.8)
		}
		s.fillEllipse(st.x, st.y, st.size, st.size*0.6, 0, solid(c))
	}

	res := s.size()
	for i := 0; i < 5; i++ {
		x := s.random() * res
		y := s.random() * res
		radius := s.random()*(res/3) + res/10

		inner, outer := rgba(220, 255, 255, 0.4), rgba(50, 120, 220, 0.15)
		if warm {
			inner, outer = rgba(255, 200, 100, 0.4), rgba(180, 100, 40, 0.15)
		}
		g := radial(x, y, 0, x, y, radius,
			stop{0, inner},
			stop{0.7, outer},
			stop{1, transparent},
		)
		s.fillEllipse(x, y, radius, radius*0.6, s.random()*math.Pi, g)
	}

	c := res * 0.3
	s.fillRect(radial(c, c, 0, c, c, res*0.6,
		stop{0, rgba(255, 255, 255, 0.15)},
		stop{0.5, rgba(255, 255, 255, 0.05)},
		stop{1, rgba(255, 255, 255, 0)},
	))
}

// gasBands paints the banded, turbulent atmosphere and returns the storm
// spots seeded along the way.
func gasBands(s *surface, req Request, base colorful.Color) []storm {
	bands := bandCount(base)
	baseHue, _, _ := base.Hsl()
	baseHue /= 360
	d := req.Detail

	var storms []storm
	s.shade(func(x, y int, u, v float64) (colorful.Color, bool) {
		band := bandOf(v, bands)
		px, py, pz := noise.Cylinder(u, v)

		n1 := noise.Fractal(px*d, py*d, pz*d, 4, 0.5)
		n2 := noise.Fractal(px*d*2, py*d*2, pz*d*3, 2, 0.7)
		n3 := noise.Fractal(px*d*4, py*d*4, pz*d*5, 2, 0.8)
		turbulence := (n1*0.5 + n2*0.3 + n3*0.2) * req.NoiseIntensity * 1.5

		offset := math.Sin(float64(band)/float64(bands)*math.Pi*2) * 0.15
		hue := baseHue + offset + turbulence*0.08
		sat := 0.7 + float64(band%2)*0.2 + turbulence*0.15
		light := 0.55 + offset*0.5 + turbulence*0.15

		if len(storms) < maxStorms && n2 > 0.85 && s.random() > 0.97 {
			storms = append(storms, storm{
				x:    float64(x),
				y:    float64(y),
				size: s.px(s.random()*20 + 10),
			})
		}
		return hsl(hue, sat, light), true
	})
	return storms
}

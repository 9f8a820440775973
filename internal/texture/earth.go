package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orrery/internal/noise"
)

const (
	// landBias is subtracted from the blended elevation field; anything
	// left above zero is land.
	landBias = 0.52

	mountainLine = 0.12
	polarCap     = 0.8
	cloudCover   = 0.62
)

var (
	earthOcean   = mustHex("#1a4da8")
	earthShallow = mustHex("#4ac7e7")
	earthLand    = mustHex("#2d8a4f")
	earthDesert  = mustHex("#d9c27e")
	earthSnow    = mustHex("#ffffff")
	earthCloud   = mustHex("#f8f8f8")
)

func paintEarth(s *surface, req Request) {
	d := req.Detail
	s.shade(func(_, _ int, u, v float64) (colorful.Color, bool) {
		x, y, z := s.sphere(u, v)
		continent := noise.Fractal(x*2, y*2, z*2, 8, 0.65)
		detail := noise.Fractal(x*d*3, y*d*3, z*d*3, 4, 0.5)
		climate := noise.Fractal(x*3+100, y*3+100, z*3+100, 3, 0.7)
		height := continent*0.7 + detail*0.3 - landBias
		lat := math.Abs(z)

		var c colorful.Color
		switch {
		case lat > polarCap:
			c = earthSnow.BlendRgb(earthLand, math.Max(0, 0.7-lat))
		case height > 0:
			switch {
			case lat < 0.3 && climate > 0.5:
				c = earthDesert
			case lat > 0.5 && lat < 0.7:
				c = offsetHSL(earthLand, 0.05, 0.2, -0.1)
			default:
				c = earthLand
			}
			if height > mountainLine {
				c = c.BlendRgb(earthSnow, math.Min((height-mountainLine)*3, 0.8))
			}
			if detail < 0.4 {
				c = offsetHSL(c, 0.05, 0.3, -0.1)
			}
		default:
			depth := math.Abs(height) * 2
			c = offsetHSL(earthOcean, 0, 0.1, depth*0.15-0.15)
			if height > -0.1 {
				c = c.BlendRgb(earthShallow, 0.3)
			}
		}

		cloud := noise.Fractal(x*5+100, y*5+100, z*5+100, 4, 0.6)
		if cloud > cloudCover {
			c = c.BlendRgb(earthCloud, math.Min((cloud-cloudCover)*3, 0.7))
		}
		return c, true
	})

	res := s.size()
	s.fillRect(radial(res*0.6, res*0.4, 0, res*0.6, res*0.4, res*0.2,
		stop{0, rgba(255, 255, 255, 0.2)},
		stop{0.5, rgba(255, 255, 255, 0.1)},
		stop{1, rgba(255, 255, 255, 0)},
	))
}

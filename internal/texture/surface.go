package texture

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/exp/rand"

	"github.com/san-kum/orrery/internal/noise"
)

// referenceResolution is the size fixed pixel dimensions (storm radii,
// ring particles) are tuned for.
const referenceResolution = 1024.0

// surface is a square premultiplied canvas with a vector context on top
// and the per-request random generator.
type surface struct {
	img *image.RGBA
	dc  *gg.Context
	res int
	rng *rand.Rand
}

func newSurface(res int, seed uint64) *surface {
	img := image.NewRGBA(image.Rect(0, 0, res, res))
	return &surface{
		img: img,
		dc:  gg.NewContextForRGBA(img),
		res: res,
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (s *surface) size() float64 { return float64(s.res) }

// px converts a length given at the reference resolution.
func (s *surface) px(v float64) float64 { return v * s.size() / referenceResolution }

func (s *surface) random() float64 { return s.rng.Float64() }

func (s *surface) fill(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

func (s *surface) clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// shade visits every pixel in row-major order. fn receives pixel
// coordinates and texture coordinates u, v in [0, 1) and returns the new
// opaque color, or false to leave the pixel untouched.
func (s *surface) shade(fn func(x, y int, u, v float64) (colorful.Color, bool)) {
	n := s.size()
	for y := 0; y < s.res; y++ {
		v := float64(y) / n
		for x := 0; x < s.res; x++ {
			c, ok := fn(x, y, float64(x)/n, v)
			if !ok {
				continue
			}
			s.img.SetRGBA(x, y, rgbaOf(opaque(c)))
		}
	}
}

// sphere maps pixel texture coordinates onto the unit sphere.
func (s *surface) sphere(u, v float64) (x, y, z float64) {
	return noise.Sphere(u, v)
}

// at returns the straight color currently stored at (x, y).
func (s *surface) at(x, y int) colorful.Color {
	c := color.NRGBAModel.Convert(s.img.RGBAAt(x, y)).(color.NRGBA)
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// blend composites c with alpha a over one pixel.
func (s *surface) blend(x, y int, c colorful.Color, a float64) {
	if x < 0 || y < 0 || x >= s.res || y >= s.res {
		return
	}
	src := image.NewUniform(withAlpha(c, a))
	r := image.Rect(x, y, x+1, y+1)
	draw.Draw(s.img, r, src, image.Point{}, draw.Over)
}

func (s *surface) fillRect(p gg.Pattern) {
	s.dc.DrawRectangle(0, 0, s.size(), s.size())
	s.dc.SetFillStyle(p)
	s.dc.Fill()
}

func (s *surface) fillCircle(x, y, r float64, p gg.Pattern) {
	s.dc.DrawCircle(x, y, r)
	s.dc.SetFillStyle(p)
	s.dc.Fill()
}

// fillEllipse fills an ellipse rotated by rot radians about its center.
func (s *surface) fillEllipse(x, y, rx, ry, rot float64, p gg.Pattern) {
	s.dc.Push()
	s.dc.RotateAbout(rot, x, y)
	s.dc.DrawEllipse(x, y, rx, ry)
	s.dc.SetFillStyle(p)
	s.dc.Fill()
	s.dc.Pop()
}

// fillSector fills the chord-closed arc from a0 sweeping by sweep radians.
func (s *surface) fillSector(x, y, r, a0, sweep float64, p gg.Pattern) {
	s.dc.DrawArc(x, y, r, a0, a0+sweep)
	s.dc.ClosePath()
	s.dc.SetFillStyle(p)
	s.dc.Fill()
}

func (s *surface) strokeCircle(x, y, r, width float64, c color.Color) {
	s.dc.DrawCircle(x, y, r)
	s.dc.SetLineWidth(width)
	s.dc.SetColor(c)
	s.dc.Stroke()
}

// stop is one gradient color stop.
type stop struct {
	at float64
	c  color.Color
}

func radial(x0, y0, r0, x1, y1, r1 float64, stops ...stop) gg.Gradient {
	g := gg.NewRadialGradient(x0, y0, r0, x1, y1, r1)
	for _, st := range stops {
		g.AddColorStop(st.at, st.c)
	}
	return g
}

func linear(x0, y0, x1, y1 float64, stops ...stop) gg.Gradient {
	g := gg.NewLinearGradient(x0, y0, x1, y1)
	for _, st := range stops {
		g.AddColorStop(st.at, st.c)
	}
	return g
}

func solid(c color.Color) gg.Pattern { return gg.NewSolidPattern(c) }

func rgbaOf(c color.NRGBA) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// unpremultiply copies the canvas into a straight-alpha image.
func (s *surface) unpremultiply() *image.NRGBA {
	out := image.NewNRGBA(s.img.Bounds())
	draw.Draw(out, out.Bounds(), s.img, image.Point{}, draw.Src)
	return out
}

func polar(cx, cy, r, angle float64) (x, y float64) {
	sin, cos := math.Sincos(angle)
	return cx + cos*r, cy + sin*r
}

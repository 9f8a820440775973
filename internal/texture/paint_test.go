package texture

import (
	"image"
	"image/color"
	"math"
	"slices"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

// countRuns counts runs of identical color down column x.
func countRuns(img *image.RGBA, x int) int {
	runs := 0
	var prev color.RGBA
	for y := 0; y < img.Bounds().Dy(); y++ {
		c := img.RGBAAt(x, y)
		if y == 0 || c != prev {
			runs++
		}
		prev = c
	}
	return runs
}

func TestGasBandCount(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		bands int
	}{
		{"jupiter", "#f0b578", 12},
		{"neptune", "#4b70dd", 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := mustHex(tt.base)
			if got := bandCount(base); got != tt.bands {
				t.Fatalf("expected %d bands, got %d", tt.bands, got)
			}

			req := DefaultRequest()
			req.Type = Gas
			req.NoiseIntensity = 0
			s := newSurface(96, 1)
			gasBands(s, req, base)

			if got := countRuns(s.img, 10); got != tt.bands {
				t.Errorf("expected %d horizontal bands, got %d", tt.bands, got)
			}
		})
	}
}

func TestBandOf(t *testing.T) {
	if got := bandOf(0, 12); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := bandOf(0.999, 12); got != 11 {
		t.Errorf("expected 11, got %d", got)
	}
	if got := bandOf(0.5, 8); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
}

func TestAdjustmentFor(t *testing.T) {
	tests := []struct {
		typ  Type
		want Adjustment
	}{
		{Sun, Adjustment{0.2, 0.1}},
		{Gas, Adjustment{0.15, 0.25}},
		{Earth, Adjustment{0.12, 0.3}},
		{Mars, Adjustment{0.15, 0.35}},
		{Rocky, Adjustment{0.1, 0.2}},
		{Rings, Adjustment{0.1, 0.2}},
	}
	for _, tt := range tests {
		if got := AdjustmentFor(tt.typ); got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.typ, tt.want, got)
		}
	}
}

func TestAdjustmentApply(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	copy(img.Pix, []uint8{100, 128, 250, 77, 0, 10, 20, 0})

	Adjustment{Brightness: 0.1, Contrast: 0.2}.Apply(img)

	factor := 259 * 1.2 / (255 * 0.8)
	want := func(v float64) uint8 {
		b := storeByte(v * 1.1)
		return storeByte(factor*(float64(b)-128) + 128)
	}
	expected := []uint8{want(100), want(128), want(250), 77, want(0), want(10), want(20), 0}
	for i := range expected {
		if img.Pix[i] != expected[i] {
			t.Errorf("byte %d: expected %d, got %d", i, expected[i], img.Pix[i])
		}
	}
	if img.Pix[2] != 255 {
		t.Errorf("expected bright channel to clip at 255, got %d", img.Pix[2])
	}
	if img.Pix[4] != 0 {
		t.Errorf("expected black to stay 0, got %d", img.Pix[4])
	}
}

func TestZeroAdjustmentIsIdentity(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	orig := append([]uint8(nil), img.Pix...)
	Adjustment{}.Apply(img)

	// factor is 259/255, so values far from mid-grey shift by up to two
	for i := range orig {
		if d := int(img.Pix[i]) - int(orig[i]); d < -2 || d > 2 {
			t.Errorf("byte %d moved from %d to %d", i, orig[i], img.Pix[i])
		}
	}
}

func TestOffsetHSL(t *testing.T) {
	red := colorful.Color{R: 1}
	h, s, l := offsetHSL(red, 0.5, 0, 0).Hsl()
	if math.Abs(h-180) > 1e-6 || math.Abs(s-1) > 1e-6 || math.Abs(l-0.5) > 1e-6 {
		t.Errorf("expected cyan (180,1,0.5), got (%g,%g,%g)", h, s, l)
	}

	// lightness clamps instead of wrapping
	if c := offsetHSL(red, 0, 0, 2); c.R < 0.999 || c.G < 0.999 || c.B < 0.999 {
		t.Errorf("expected white, got %v", c)
	}

	// hue wraps in both directions
	h1, _, _ := offsetHSL(red, -0.25, 0, 0).Hsl()
	if math.Abs(h1-270) > 1e-6 {
		t.Errorf("expected hue 270, got %g", h1)
	}
}

func TestToByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{2, 255},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := toByte(tt.in); got != tt.want {
			t.Errorf("toByte(%g): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#ff8000")
	if err != nil {
		t.Fatal(err)
	}
	if got := opaque(c); got != (color.NRGBA{R: 255, G: 128, A: 255}) {
		t.Errorf("unexpected color %v", got)
	}
	if _, err := parseColor("#fff"); err != nil {
		t.Errorf("expected short hex to parse, got %v", err)
	}
	if _, err := parseColor("red"); err == nil {
		t.Error("expected error for a color name")
	}
}

// rowMean averages the color channels of row y.
func rowMean(img *image.RGBA, y int) float64 {
	sum := 0.0
	w := img.Bounds().Dx()
	for x := 0; x < w; x++ {
		c := img.RGBAAt(x, y)
		sum += float64(c.R) + float64(c.G) + float64(c.B)
	}
	return sum / float64(3*w)
}

func TestEarthPolesAndSurface(t *testing.T) {
	req := DefaultRequest()
	req.Type = Earth
	s := newSurface(64, 1)
	paintEarth(s, req)

	// rows 0..12 and 51..63 lie beyond |z| > 0.8
	for _, y := range []int{0, 4, 8, 56, 63} {
		for x := 0; x < 64; x++ {
			c := s.img.RGBAAt(x, y)
			if c.R < 245 || c.G < 245 || c.B < 245 {
				t.Fatalf("expected polar snow at (%d,%d), got %v", x, y, c)
			}
		}
	}
	if pole, eq := rowMean(s.img, 2), rowMean(s.img, 32); pole < eq+30 {
		t.Errorf("expected poles well above the equator, got %.1f and %.1f", pole, eq)
	}

	var land, ocean int
	for y := 16; y < 48; y++ {
		for x := 0; x < 64; x++ {
			c := s.img.RGBAAt(x, y)
			switch {
			case c.G > c.B:
				land++
			case c.B > c.G:
				ocean++
			}
		}
	}
	if land == 0 || ocean == 0 {
		t.Errorf("expected both land and ocean, got %d land and %d ocean pixels", land, ocean)
	}
}

func TestMarsCapsAndFeatures(t *testing.T) {
	req := DefaultRequest()
	req.Type = Mars
	s := newSurface(64, 1)
	paintMars(s, req)

	polar := color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 255}
	for _, y := range []int{0, 5, 58, 63} {
		for x := 0; x < 64; x++ {
			if c := s.img.RGBAAt(x, y); c != polar {
				t.Fatalf("expected ice cap at (%d,%d), got %v", x, y, c)
			}
		}
	}
	if pole, mid := rowMean(s.img, 0), rowMean(s.img, 32); pole < mid+40 {
		t.Errorf("expected caps brighter than mid latitudes, got %.1f and %.1f", pole, mid)
	}

	// Olympus Mons is a pale tan dome, Valles Marineris a dark red gash
	mons := s.img.RGBAAt(19, 25)
	valles := s.img.RGBAAt(38, 32)
	if mons.B < 55 || mons.G < 110 {
		t.Errorf("expected a pale summit, got %v", mons)
	}
	if valles.B > 50 || valles.G > 125 {
		t.Errorf("expected a dark canyon, got %v", valles)
	}
	if mons.G <= valles.G {
		t.Errorf("expected the summit above the canyon, got %v and %v", mons, valles)
	}
}

func TestCrateredStyles(t *testing.T) {
	if moonStyle.craters <= mercuryStyle.craters {
		t.Errorf("expected more lunar craters, got %d and %d", moonStyle.craters, mercuryStyle.craters)
	}
	if !moonStyle.maria || mercuryStyle.maria {
		t.Error("expected maria on the moon only")
	}

	// with the same draws the lunar rays reach further
	reach := func(st crateredStyle) float64 {
		s := newSurface(128, 5)
		castRays(s, 64, 64, 4, st)
		far := 0.0
		for y := 0; y < 128; y++ {
			for x := 0; x < 128; x++ {
				if s.img.RGBAAt(x, y).A == 0 {
					continue
				}
				far = math.Max(far, math.Hypot(float64(x)+0.5-64, float64(y)+0.5-64))
			}
		}
		return far
	}
	moon, mercury := reach(moonStyle), reach(mercuryStyle)
	if mercury == 0 {
		t.Fatal("expected rays to be drawn")
	}
	if moon <= mercury+2 {
		t.Errorf("expected longer lunar rays, got reach %.1f and %.1f", moon, mercury)
	}
}

func TestMariaDarkenTheNearSide(t *testing.T) {
	grey := mustHex("#808080")
	st := crateredStyle{base: grey, dark: grey, light: grey, rim: grey}
	req := DefaultRequest()

	plain := newSurface(64, 1)
	paintCratered(plain, req, st)
	st.maria = true
	maria := newSurface(64, 1)
	paintCratered(maria, req, st)

	// first mare is centered at (0.3, 0.3)
	in, out := maria.img.RGBAAt(19, 19), plain.img.RGBAAt(19, 19)
	if in.R >= out.R {
		t.Errorf("expected the mare to darken the ground, got %v over %v", in, out)
	}
	if a, b := maria.img.RGBAAt(60, 4), plain.img.RGBAAt(60, 4); a != b {
		t.Errorf("expected ground away from the maria untouched, got %v and %v", a, b)
	}
}

func TestVenusBanding(t *testing.T) {
	req := DefaultRequest()
	req.Type = Venus
	// a vanishing detail flattens the cloud noise so only the bands vary
	req.Detail = 1e-9
	s := newSurface(64, 1)
	paintVenus(s, req)

	// sin(8πv) peaks at rows 4, 20, 36, 52 and bottoms out 8 rows later
	for _, peak := range []int{4, 20, 36, 52} {
		hi, lo := rowMean(s.img, peak), rowMean(s.img, peak+8)
		if hi < lo+10 {
			t.Errorf("expected row %d (%.1f) well above row %d (%.1f)", peak, hi, peak+8, lo)
		}
	}
}

func TestGasScanlinePeriod(t *testing.T) {
	req := DefaultRequest()
	req.Type = Gas
	req.BaseColor = "#f0b578"
	req.NoiseIntensity = 0
	req.Resolution = 96
	req.Seed = 3
	img, err := Generate(req)
	if err != nil {
		t.Fatal(err)
	}

	// median over columns of the largest channel step from the row above
	step := func(y int) int {
		diffs := make([]int, 96)
		for x := range diffs {
			a, b := img.NRGBAAt(x, y-1), img.NRGBAAt(x, y)
			d := 0
			for _, p := range [][2]uint8{{a.R, b.R}, {a.G, b.G}, {a.B, b.B}} {
				if v := int(p[0]) - int(p[1]); v > d {
					d = v
				} else if -v > d {
					d = -v
				}
			}
			diffs[x] = d
		}
		slices.Sort(diffs)
		return diffs[len(diffs)/2]
	}

	minEdge, maxFlat := math.MaxInt, 0
	for y := 1; y < 96; y++ {
		if bandOf(float64(y)/96, jupiterBands) != bandOf(float64(y-1)/96, jupiterBands) {
			minEdge = min(minEdge, step(y))
		} else {
			maxFlat = max(maxFlat, step(y))
		}
	}
	if minEdge <= maxFlat {
		t.Errorf("expected sharp band edges, got weakest edge %d against %d inside bands", minEdge, maxFlat)
	}
}

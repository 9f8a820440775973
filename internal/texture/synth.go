package texture

import (
	"fmt"
	"image"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"
)

// Adjustment is the final brightness/contrast pass. Both are fractions:
// Brightness 0.1 scales channels by 1.1, Contrast is mapped through the
// usual 259(c+1)/(255(1-c)) factor.
type Adjustment struct {
	Brightness float64
	Contrast   float64
}

var adjustments = map[Type]Adjustment{
	Sun:   {Brightness: 0.2, Contrast: 0.1},
	Gas:   {Brightness: 0.15, Contrast: 0.25},
	Earth: {Brightness: 0.12, Contrast: 0.3},
	Mars:  {Brightness: 0.15, Contrast: 0.35},
}

var defaultAdjustment = Adjustment{Brightness: 0.1, Contrast: 0.2}

// AdjustmentFor returns the post-process coefficients for t.
func AdjustmentFor(t Type) Adjustment {
	if a, ok := adjustments[t]; ok {
		return a
	}
	return defaultAdjustment
}

// Generate paints the texture described by req. Zero-valued fields other
// than NoiseIntensity take their defaults.
func Generate(req Request) (*image.NRGBA, error) {
	req = req.withDefaults()
	if req.Resolution < 1 || req.Resolution > MaxResolution {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrResolution, req.Resolution, MaxResolution)
	}
	base, err := parseColor(req.BaseColor)
	if err != nil {
		return nil, err
	}
	if _, err := ParseType(string(req.Type)); err != nil {
		return nil, err
	}

	s := newSurface(req.Resolution, req.Seed)
	s.fill(opaque(base))

	switch req.Type {
	case Rocky:
		if req.Moon {
			paintMoon(s, req)
		} else {
			paintRocky(s, req, base)
		}
	case Gas:
		paintGas(s, req, base)
	case Sun:
		paintSun(s, req, base)
	case Rings:
		paintRings(s, req, base)
	case Earth:
		paintEarth(s, req)
	case Mars:
		paintMars(s, req)
	case Venus:
		paintVenus(s, req)
	case Mercury:
		paintMercury(s, req)
	}

	img := s.unpremultiply()
	AdjustmentFor(req.Type).Apply(img)
	return img, nil
}

// Synthesize is Generate for render loops: it never fails. Errors are
// logged and replaced by a blank image, zero-sized when the resolution
// itself was unusable and fully transparent otherwise.
func Synthesize(req Request) *image.NRGBA {
	img, err := Generate(req)
	if err == nil {
		return img
	}
	log.Error("texture synthesis failed", "type", req.Type, "resolution", req.Resolution, "err", err)

	res := req.withDefaults().Resolution
	if res < 1 || res > MaxResolution {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	return image.NewNRGBA(image.Rect(0, 0, res, res))
}

// Apply brightens then contrasts the color channels in place. Alpha is
// left alone. Each step stores its result as a byte before the next
// runs.
func (a Adjustment) Apply(img *image.NRGBA) {
	factor := (259 * (a.Contrast + 1)) / (255 * (1 - a.Contrast))
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := img.PixOffset(b.Min.X, y)
		row := img.Pix[start : start+4*b.Dx()]
		for i := 0; i < len(row); i += 4 {
			for c := i; c < i+3; c++ {
				v := storeByte(float64(row[c]) * (1 + a.Brightness))
				row[c] = storeByte(factor*(float64(v)-128) + 128)
			}
		}
	}
}

// BaseColorOf parses a #rgb or #rrggbb string.
func BaseColorOf(hex string) (colorful.Color, error) {
	return parseColor(hex)
}

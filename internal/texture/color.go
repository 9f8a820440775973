package texture

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

func parseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrBaseColor, hex)
	}
	return c, nil
}

func mustHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// hsl builds a color from hue in turns, wrapping it, and clamping
// saturation and lightness to [0, 1].
func hsl(h, s, l float64) colorful.Color {
	h -= math.Floor(h)
	return colorful.Hsl(h*360, clamp01(s), clamp01(l))
}

// offsetHSL shifts a color in HSL space. dh is in turns.
func offsetHSL(c colorful.Color, dh, ds, dl float64) colorful.Color {
	h, s, l := c.Clamped().Hsl()
	return hsl(h/360+dh, s+ds, l+dl)
}

// scale multiplies every channel; the result may leave gamut and is
// clamped when it is drawn.
func scale(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

func opaque(c colorful.Color) color.NRGBA {
	return withAlpha(c, 1)
}

func withAlpha(c colorful.Color, a float64) color.NRGBA {
	c = c.Clamped()
	return color.NRGBA{R: toByte(c.R), G: toByte(c.G), B: toByte(c.B), A: toByte(a)}
}

func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: toByte(a)}
}

func toByte(v float64) uint8 {
	return storeByte(clamp01(v) * 255)
}

// storeByte rounds to the nearest byte value, ties to even, and clamps.
func storeByte(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.RoundToEven(v))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

var transparent = color.NRGBA{}

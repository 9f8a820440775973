package export

import (
	"fmt"
	"math"
	"strings"
)

type Point struct{ X, Y float64 }

// Orbit is one closed path plus an optional marker for the body's
// current position.
type Orbit struct {
	ID     string
	Color  string
	Points []Point
	Body   *Point
	Radius float64
}

// OrbitsToSVG draws every orbit into a size×size square centred on the
// origin. All orbits share one scale so their relative sizes are kept.
func OrbitsToSVG(orbits []Orbit, size int) string {
	if size <= 0 {
		size = 800
	}
	extent := 0.0
	for _, o := range orbits {
		for _, p := range o.Points {
			extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Y)))
		}
		if o.Body != nil {
			extent = math.Max(extent, math.Max(math.Abs(o.Body.X), math.Abs(o.Body.Y)))
		}
	}
	if extent == 0 {
		extent = 1
	}
	half := float64(size) / 2
	k := half / (extent * 1.1)
	project := func(p Point) (float64, float64) {
		// SVG y grows downwards
		return half + p.X*k, half - p.Y*k
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<circle cx="%.1f" cy="%.1f" r="4" fill="#ffdd20"/>
`, size, size, size, size, half, half))

	for _, o := range orbits {
		color := o.Color
		if color == "" {
			color = "#888888"
		}
		if len(o.Points) >= 2 {
			sb.WriteString(fmt.Sprintf(`<path id="%s" fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.6" d="M`, o.ID, color))
			for i, p := range o.Points {
				x, y := project(p)
				if i == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString(" Z\"/>\n")
		}
		if o.Body != nil {
			r := o.Radius
			if r <= 0 {
				r = 3
			}
			x, y := project(*o.Body)
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>
`, x, y, r, color, o.ID))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

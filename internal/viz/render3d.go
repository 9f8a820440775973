package viz

import (
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	xAxis = r3.Vec{X: 1}
	yAxis = r3.Vec{Y: 1}
)

// Camera orbits the scene origin. Scene space has y up and the
// ecliptic in the x/z plane.
type Camera struct {
	Distance   float64
	Near       float64
	Tilt, Spin float64
	Zoom       float64
}

// NewCamera frames a scene of the given radius, tilted so the ecliptic
// reads as a flattened ellipse.
func NewCamera(extent float64) *Camera {
	if !(extent > 0) {
		extent = 1
	}
	return &Camera{Distance: 50, Near: 0.1, Tilt: math.Pi / 3, Zoom: 0.9 / extent}
}

func (c *Camera) RotateX(a float64) { c.Tilt = math.Max(0, math.Min(math.Pi/2, c.Tilt+a)) }
func (c *Camera) RotateY(a float64) { c.Spin += a }
func (c *Camera) ZoomIn()           { c.Zoom *= 1.2 }
func (c *Camera) ZoomOut()          { c.Zoom /= 1.2 }

// TopDown looks straight down the y axis.
func (c *Camera) TopDown() { c.Tilt = math.Pi / 2 }

// RotatePoint applies spin about the vertical axis, then tilt about x.
func (c *Camera) RotatePoint(p r3.Vec) r3.Vec {
	p = r3.NewRotation(c.Spin, yAxis).Rotate(p)
	return r3.NewRotation(c.Tilt, xAxis).Rotate(p)
}

// Project converts scene coordinates to canvas sub-pixels.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p r3.Vec, sw, sh int) (int, int, float64, bool) {
	rot := r3.Scale(c.Zoom, c.RotatePoint(p))
	dist := c.Distance
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	half := math.Min(float64(sw), float64(sh)) / 2
	sx := int(math.Round(rot.X*scale*half)) + sw/2
	sy := int(math.Round(-rot.Y*scale*half)) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Segment struct {
	Start, End r3.Vec
	Color      lipgloss.Color
}

// Marker is a body drawn as a disc with a label.
type Marker struct {
	Position r3.Vec
	Radius   int
	Color    lipgloss.Color
	Label    string
}

// Scene is everything drawn in one frame.
type Scene struct {
	Segments []Segment
	Markers  []Marker
}

func (s *Scene) AddPath(pts []r3.Vec, closed bool, color lipgloss.Color) {
	for i := 1; i < len(pts); i++ {
		s.Segments = append(s.Segments, Segment{pts[i-1], pts[i], color})
	}
	if closed && len(pts) > 2 {
		s.Segments = append(s.Segments, Segment{pts[len(pts)-1], pts[0], color})
	}
}

func (s *Scene) AddMarker(m Marker) { s.Markers = append(s.Markers, m) }

func (s *Scene) Clear() {
	s.Segments = s.Segments[:0]
	s.Markers = s.Markers[:0]
}

type projected struct {
	x1, y1, x2, y2 int
	depth          float64
	color          lipgloss.Color
}

// Render3D draws the scene far to near so closer bodies cover farther
// ones. Paths go first, markers and labels on top.
func Render3D(c *Canvas, s *Scene, cam *Camera) {
	if c == nil || s == nil || cam == nil {
		return
	}
	cw, ch := c.PixelSize()
	segs := make([]projected, 0, len(s.Segments))
	for _, e := range s.Segments {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			segs = append(segs, projected{x1, y1, x2, y2, (d1 + d2) / 2, e.Color})
		}
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].depth < segs[j].depth })
	for _, e := range segs {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2, e.color)
	}

	type placed struct {
		Marker
		x, y  int
		depth float64
	}
	marks := make([]placed, 0, len(s.Markers))
	for _, m := range s.Markers {
		x, y, d, ok := cam.Project(m.Position, cw, ch)
		if ok {
			marks = append(marks, placed{m, x, y, d})
		}
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].depth < marks[j].depth })
	for _, m := range marks {
		c.FillDisc(m.x, m.y, m.Radius, m.Color)
	}
	for _, m := range marks {
		if m.Label != "" {
			c.Label(m.x+2*m.Radius+2, m.y, m.Label, m.Color)
		}
	}
}

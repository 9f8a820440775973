package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/catalog"
	"github.com/san-kum/orrery/internal/clock"
	"github.com/san-kum/orrery/internal/orbit"
)

const (
	canvasWidth     = 72
	canvasHeight    = 28
	statsWidth      = 44
	historyCapacity = 120
	traceSamples    = 180
	satelliteSides  = 32
)

type TickMsg time.Time

// Options configure the live view.
type Options struct {
	Clock    *clock.Clock
	Table    orbit.Table
	Scale    float64
	Interval time.Duration
	Theme    string

	// Now is the wall clock used by the reset key. Defaults to time.Now.
	Now func() time.Time
}

// Model is the bubbletea model of the live orrery.
type Model struct {
	clock    *clock.Clock
	table    orbit.Table
	scale    float64
	interval time.Duration
	now      func() time.Time

	canvas *Canvas
	camera *Camera
	scene  *Scene
	traces map[string][]r3.Vec
	ids    []string

	selected int
	history  []float64
	theme    Theme
	styles   Styles
	showHelp bool
	frame    int
}

func NewModel(opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.New(time.Now())
	}
	if opts.Table == nil {
		opts.Table = orbit.Planets()
	}
	if !(opts.Scale > 0) {
		opts.Scale = orbit.DefaultScaleFactor
	}
	if opts.Interval <= 0 {
		opts.Interval = 100 * time.Millisecond
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	theme := GetTheme(opts.Theme)

	m := Model{
		clock:    opts.Clock,
		table:    opts.Table,
		scale:    opts.Scale,
		interval: opts.Interval,
		now:      opts.Now,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		scene:    &Scene{},
		traces:   make(map[string][]r3.Vec, len(opts.Table)),
		history:  make([]float64, 0, historyCapacity),
		theme:    theme,
		styles:   NewStyles(theme),
	}

	extent := 0.0
	for id, el := range opts.Table {
		if el.SemimajorAxis <= 0 {
			continue
		}
		pts := orbit.Trace(el, orbit.J2000, traceSamples)
		for i, p := range pts {
			pts[i] = orbit.ScaleForDisplay(p, m.scale)
			extent = math.Max(extent, r3.Norm(pts[i]))
		}
		m.traces[id] = pts
	}
	positions := catalog.ScenePositions(m.table, m.clock.Now(), m.scale)
	for _, p := range positions {
		extent = math.Max(extent, r3.Norm(p))
	}
	m.ids = catalog.SortedIDs(positions)
	m.camera = NewCamera(extent)
	m.selectID("earth")
	m.record()
	m.draw()
	return m
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles keys and advances the clock on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.clock.Toggle()
		case "+", "=":
			m.clock.Faster()
		case "-", "_":
			m.clock.Slower()
		case "]":
			m.skip(30)
		case "[":
			m.skip(-30)
		case ".":
			m.skip(1)
		case ",":
			m.skip(-1)
		case "n":
			m.clock.Reset(m.now())
			m.history = m.history[:0]
			m.record()
		case "left", "h":
			m.camera.RotateY(-0.1)
		case "right", "l":
			m.camera.RotateY(0.1)
		case "up", "k":
			m.camera.RotateX(0.1)
		case "down", "j":
			m.camera.RotateX(-0.1)
		case "z":
			m.camera.ZoomIn()
		case "x":
			m.camera.ZoomOut()
		case "v":
			m.camera.TopDown()
		case "tab":
			m.cycle(1)
		case "shift+tab":
			m.cycle(-1)
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = NewStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
		m.draw()
		return m, nil
	case tea.WindowSizeMsg:
		w := msg.Width - statsWidth - 6
		h := msg.Height - 4
		if w >= 20 && h >= 8 {
			m.canvas = NewCanvas(w, h)
		}
		m.draw()
		return m, nil
	case TickMsg:
		if m.clock.Playing() {
			m.clock.Step()
			m.record()
		}
		m.frame++
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

// Selected is the id of the highlighted body.
func (m Model) Selected() string {
	if len(m.ids) == 0 {
		return ""
	}
	return m.ids[m.selected]
}

func (m Model) Theme() Theme { return m.theme }

func (m *Model) selectID(id string) {
	for i, v := range m.ids {
		if v == id {
			m.selected = i
			return
		}
	}
}

func (m *Model) cycle(dir int) {
	if len(m.ids) == 0 {
		return
	}
	m.selected = (m.selected + dir + len(m.ids)) % len(m.ids)
	m.history = m.history[:0]
	m.record()
}

func (m *Model) skip(days float64) {
	m.clock.Skip(days)
	m.record()
}

// record appends the selected body's heliocentric distance.
func (m *Model) record() {
	el, ok := m.table[m.Selected()]
	if !ok {
		return
	}
	if len(m.history) == historyCapacity {
		copy(m.history, m.history[1:])
		m.history = m.history[:historyCapacity-1]
	}
	m.history = append(m.history, orbit.Distance(el, m.clock.Now()))
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.scene.Clear()
	sel := m.Selected()
	positions := catalog.ScenePositions(m.table, m.clock.Now(), m.scale)

	for id, pts := range m.traces {
		color := m.theme.Orbit
		if id == sel {
			color = m.theme.Accent
		}
		m.scene.AddPath(pts, true, color)
	}
	for _, b := range catalog.Bodies() {
		if b.Parent == "" {
			continue
		}
		center := positions[b.Parent]
		ring := make([]r3.Vec, satelliteSides)
		for i := range ring {
			off := orbit.SatelliteOffset(b.OrbitRadius, satelliteSides, float64(i))
			ring[i] = r3.Add(center, off)
		}
		m.scene.AddPath(ring, true, m.theme.Orbit)
	}

	for _, id := range m.ids {
		mk := Marker{Position: positions[id], Radius: 1, Color: m.theme.Secondary}
		if b, ok := catalog.Lookup(id); ok {
			mk.Radius = markerRadius(b.Radius)
			if !b.BlackHole {
				mk.Color = m.theme.BodyColor(b.Color)
			}
		}
		if id == sel {
			mk.Color = m.theme.Accent
			mk.Label = displayName(id)
		}
		m.scene.AddMarker(mk)
	}
	Render3D(m.canvas, m.scene, m.camera)
}

func markerRadius(r float64) int {
	switch {
	case r >= 5:
		return 3
	case r >= 2:
		return 2
	case r >= 1:
		return 1
	}
	return 0
}

func displayName(id string) string {
	if b, ok := catalog.Lookup(id); ok {
		return b.Name
	}
	return id
}

func (m Model) View() string {
	s := m.styles
	view := s.Panel.Render(m.canvas.Render())

	var b strings.Builder
	b.WriteString(GradientText("ORRERY", m.theme.Primary, m.theme.Secondary))
	b.WriteString("\n\n")

	st := m.clock.State()
	status := s.Paused.Render("❚❚ paused")
	if st.Playing {
		status = s.Playing.Render(AnimatedSpinner(m.frame) + " playing")
	}
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("date  "), s.Value.Render(st.Time.Format("2006-01-02 15:04 MST")))
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("speed "), s.Value.Render(fmt.Sprintf("%gh/step", st.Speed)))
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("state "), status)
	b.WriteString(Separator(statsWidth-4, m.theme.Muted))
	b.WriteString("\n")

	sel := m.Selected()
	b.WriteString(s.Selected.Render(displayName(sel)))
	b.WriteString("\n")
	if body, ok := catalog.Lookup(sel); ok {
		b.WriteString(s.Muted.Width(statsWidth - 4).Render(body.Description))
		b.WriteString("\n")
	}
	if el, ok := m.table[sel]; ok {
		sol := orbit.Solve(el, st.Time)
		fmt.Fprintf(&b, "%s %s\n", s.Label.Render("r     "), s.Value.Render(fmt.Sprintf("%.4f AU", sol.Radius)))
		fmt.Fprintf(&b, "%s %s\n", s.Label.Render("period"), s.Value.Render(fmt.Sprintf("%.2f yr", el.OrbitalPeriod)))
		fmt.Fprintf(&b, "%s %s\n", s.Label.Render("orbit "), ProgressBar(sol.MeanAnomaly/360, statsWidth-12, m.theme.Accent))
		if len(m.history) > 1 {
			chart := asciigraph.Plot(m.history,
				asciigraph.Height(5),
				asciigraph.Width(statsWidth-12),
				asciigraph.Precision(3),
				asciigraph.Caption("distance (AU)"))
			b.WriteString("\n" + chart + "\n")
		}
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(s.KeyHint.Render(strings.Join([]string{
			"space  play/pause",
			"+ -    speed",
			"[ ]    -/+ 30 days",
			", .    -/+ 1 day",
			"n      now",
			"arrows rotate   z/x zoom   v top",
			"tab    next body",
			"t      theme (" + m.theme.Name + ")",
			"q      quit",
		}, "\n")))
	} else {
		b.WriteString(s.KeyHint.Render("? help  q quit"))
	}

	stats := lipgloss.NewStyle().Width(statsWidth).PaddingLeft(2).Render(b.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, view, stats)
}

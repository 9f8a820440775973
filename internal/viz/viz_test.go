package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/clock"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0)
	c.Set(1, 3)
	if got := c.Grid[0][0]; got != brailleBlank|0x1|0x80 {
		t.Errorf("expected %U, got %U", brailleBlank|0x81, got)
	}
	c.Unset(0, 0)
	if got := c.Grid[0][0]; got != brailleBlank|0x80 {
		t.Errorf("expected %U, got %U", brailleBlank|0x80, got)
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 8)

	if lines := strings.Count(c.String(), "\n"); lines != 2 {
		t.Errorf("expected 2 lines, got %d", lines)
	}
}

func TestCanvasLabel(t *testing.T) {
	c := NewCanvas(6, 1)
	c.Label(2, 0, "Earth!!", "#ffffff")
	if got := string(c.Grid[0]); got != string(rune(brailleBlank))+"Earth" {
		t.Errorf("expected label clipped to the canvas, got %q", got)
	}
	c.Set(2, 0)
	if c.Grid[0][1] != 'E' {
		t.Error("expected label cells to ignore sub-pixels")
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 3, 0, "#ff0000")
	for col := 0; col < 2; col++ {
		if c.Grid[0][col] != brailleBlank|0x1|0x8 {
			t.Errorf("expected top row lit in cell %d, got %U", col, c.Grid[0][col])
		}
		if c.Colors[0][col] != "#ff0000" {
			t.Errorf("expected cell %d colored", col)
		}
	}
	if c.Grid[0][2] != brailleBlank {
		t.Error("expected line to stop at its end point")
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera(20)
	x, y, _, ok := cam.Project(r3.Vec{}, 100, 80)
	if !ok || x != 50 || y != 40 {
		t.Errorf("expected origin at the centre, got (%d,%d) %v", x, y, ok)
	}
	x, _, _, ok = cam.Project(r3.Vec{X: 10}, 100, 80)
	if !ok || x <= 50 {
		t.Errorf("expected +x right of centre, got %d", x)
	}
	if _, _, _, ok := cam.Project(r3.Vec{X: 100}, 100, 80); ok {
		t.Error("expected a point beyond the extent to be off screen")
	}
}

func TestCameraTopDown(t *testing.T) {
	cam := NewCamera(10)
	cam.TopDown()
	// +z in the ecliptic points down the screen when looking from above
	_, y, _, _ := cam.Project(r3.Vec{Z: 5}, 100, 100)
	if y <= 50 {
		t.Errorf("expected +z below centre, got %d", y)
	}

	cam.RotateX(1)
	if cam.Tilt != math.Pi/2 {
		t.Errorf("expected tilt clamped at %g, got %g", math.Pi/2, cam.Tilt)
	}
	cam.RotateX(-10)
	if cam.Tilt != 0 {
		t.Errorf("expected tilt clamped at 0, got %g", cam.Tilt)
	}
}

func TestRender3DMarker(t *testing.T) {
	c := NewCanvas(10, 5)
	s := &Scene{}
	s.AddMarker(Marker{Position: r3.Vec{}, Radius: 1, Color: "#ffff00", Label: "Sun"})
	Render3D(c, s, NewCamera(10))

	if c.Grid[2][5] == brailleBlank {
		t.Error("expected the centre cell to be lit")
	}
	if !strings.Contains(c.String(), "Sun") {
		t.Error("expected the label to be drawn")
	}
}

func TestScenePath(t *testing.T) {
	s := &Scene{}
	s.AddPath([]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}, true, "#fff")
	if len(s.Segments) != 3 {
		t.Errorf("expected 3 segments for a closed triangle, got %d", len(s.Segments))
	}
	s.AddPath([]r3.Vec{{X: 1}, {Y: 1}}, false, "#fff")
	if len(s.Segments) != 4 {
		t.Errorf("expected 4 segments, got %d", len(s.Segments))
	}
	s.Clear()
	if len(s.Segments) != 0 {
		t.Error("expected Clear to drop segments")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "deep-space" {
		t.Error("expected unknown themes to fall back to deep-space")
	}
	if NextTheme("mono").Name != Themes[0].Name {
		t.Error("expected NextTheme to wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("expected one name per theme")
	}
	if got := ThemeMono.BodyColor("#ff0000"); got != ThemeMono.Primary {
		t.Errorf("expected mono to override body colors, got %s", got)
	}
	if got := ThemeDeepSpace.BodyColor("#ff0000"); got != "#ff0000" {
		t.Errorf("expected catalog color, got %s", got)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		fraction float64
		filled   int
	}{
		{0.5, 5},
		{2, 10},
		{-1, 0},
	}
	for _, tt := range tests {
		got := strings.Count(ProgressBar(tt.fraction, 10, "#fff"), "█")
		if got != tt.filled {
			t.Errorf("fraction %g: expected %d filled, got %d", tt.fraction, tt.filled, got)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 1}, 4); got != "▁█" {
		t.Errorf("expected ▁█, got %q", got)
	}
	if got := Sparkline([]float64{5, 0, 1}, 2); got != "▁█" {
		t.Errorf("expected the tail to be kept, got %q", got)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("expected flat line, got %q", got)
	}
}

func TestGradientText(t *testing.T) {
	if GradientText("", "#000000", "#ffffff") != "" {
		t.Error("expected empty output for empty text")
	}
	out := GradientText("ORRERY", "#000000", "not-a-color")
	for _, r := range "ORY" {
		if !strings.ContainsRune(out, r) {
			t.Errorf("expected %c in output", r)
		}
	}
}

var epoch = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestModel() (Model, *clock.Clock) {
	c := clock.New(epoch)
	m := NewModel(Options{
		Clock:    c,
		Interval: time.Millisecond,
		Now:      func() time.Time { return epoch.AddDate(1, 0, 0) },
	})
	return m, c
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelDefaults(t *testing.T) {
	m, c := newTestModel()
	if m.Selected() != "earth" {
		t.Errorf("expected earth selected, got %s", m.Selected())
	}
	if c.Playing() {
		t.Error("expected the clock to start paused")
	}
	if len(m.traces) != 8 {
		t.Errorf("expected 8 planet orbits, got %d", len(m.traces))
	}
	if !strings.Contains(m.View(), "Earth") {
		t.Error("expected the view to name the selected body")
	}
}

func TestModelKeys(t *testing.T) {
	m, c := newTestModel()

	m = update(m, key(" "))
	if !c.Playing() {
		t.Error("expected space to start playback")
	}
	m = update(m, key("]"))
	if want := epoch.AddDate(0, 0, 30); !c.Now().Equal(want) {
		t.Errorf("expected %v, got %v", want, c.Now())
	}
	m = update(m, key(","))
	if want := epoch.AddDate(0, 0, 29); !c.Now().Equal(want) {
		t.Errorf("expected %v, got %v", want, c.Now())
	}
	m = update(m, key("+"))
	if c.Speed() != 72 {
		t.Errorf("expected speed 72, got %g", c.Speed())
	}
	m = update(m, key("n"))
	if want := epoch.AddDate(1, 0, 0); !c.Now().Equal(want) {
		t.Errorf("expected reset to now, got %v", c.Now())
	}
	m = update(m, key("tab"))
	if m.Selected() != "mars" {
		t.Errorf("expected mars after earth, got %s", m.Selected())
	}
	m = update(m, key("t"))
	if m.Theme().Name != "solar" {
		t.Errorf("expected solar theme, got %s", m.Theme().Name)
	}
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("expected q to quit")
	}
}

func TestModelTick(t *testing.T) {
	m, c := newTestModel()

	m = update(m, TickMsg(time.Now()))
	if !c.Now().Equal(epoch) {
		t.Error("expected a paused tick to hold the clock")
	}

	c.SetPlaying(true)
	before := len(m.history)
	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("expected a follow-up tick")
	}
	if want := epoch.Add(24 * time.Hour); !c.Now().Equal(want) {
		t.Errorf("expected %v, got %v", want, c.Now())
	}
	if len(m.history) != before+1 {
		t.Errorf("expected one more distance sample, got %d", len(m.history)-before)
	}
}

func TestModelHistoryCapped(t *testing.T) {
	m, _ := newTestModel()
	for i := 0; i < historyCapacity+10; i++ {
		m = update(m, key("."))
	}
	if len(m.history) != historyCapacity {
		t.Errorf("expected %d samples, got %d", historyCapacity, len(m.history))
	}
}

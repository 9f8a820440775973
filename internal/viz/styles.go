package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	KeyHint  lipgloss.Style
	Playing  lipgloss.Style
	Paused   lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label:    lipgloss.NewStyle().Foreground(t.Muted),
		Value:    lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		KeyHint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Playing:  lipgloss.NewStyle().Bold(true).Foreground(t.Playing),
		Paused:   lipgloss.NewStyle().Bold(true).Foreground(t.Paused),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Orbit).
			Padding(0, 1),
	}
}

// GradientText colors each rune of text along a blend from start to end.
// Unparseable colors fall back to white.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, b := parseColor(start), parseColor(end)

	var sb strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := lipgloss.Color(a.BlendRgb(b, t).Clamped().Hex())
		sb.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(r)))
	}
	return sb.String()
}

func parseColor(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return col
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func AnimatedSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

// ProgressBar renders fraction of width as filled cells. Fractions
// outside [0,1] are clamped.
func ProgressBar(fraction float64, width int, color lipgloss.Color) string {
	if width < 1 {
		return ""
	}
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline maps the last width values onto block heights.
func Sparkline(values []float64, width int) string {
	if width < 1 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	out := make([]rune, len(values))
	for i, v := range values {
		idx := int((v - lo) / span * float64(len(sparkChars)-1))
		out[i] = sparkChars[max(0, min(len(sparkChars)-1, idx))]
	}
	return string(out)
}

func Separator(width int, color lipgloss.Color) string {
	if width < 7 {
		return strings.Repeat("─", max(0, width))
	}
	mid := width / 2
	line := strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3)
	return lipgloss.NewStyle().Foreground(color).Render(line)
}

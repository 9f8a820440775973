package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the live view. Orbit paths use Orbit,
// the selected body uses Accent.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Orbit      lipgloss.Color
	Playing    lipgloss.Color
	Paused     lipgloss.Color
	// BodyColors replaces each body's catalog color when set.
	BodyColors bool
}

var (
	ThemeDeepSpace = Theme{
		Name:       "deep-space",
		Primary:    lipgloss.Color("#8ab4f8"),
		Secondary:  lipgloss.Color("#c58af9"),
		Accent:     lipgloss.Color("#fdd663"),
		Background: lipgloss.Color("#05060f"),
		Text:       lipgloss.Color("#e8eaed"),
		Muted:      lipgloss.Color("#5f6368"),
		Orbit:      lipgloss.Color("#3c4a6b"),
		Playing:    lipgloss.Color("#81c995"),
		Paused:     lipgloss.Color("#fcad70"),
	}

	ThemeSolar = Theme{
		Name:       "solar",
		Primary:    lipgloss.Color("#ffb347"),
		Secondary:  lipgloss.Color("#ff6b35"),
		Accent:     lipgloss.Color("#fff3b0"),
		Background: lipgloss.Color("#1a0f00"),
		Text:       lipgloss.Color("#fff5e6"),
		Muted:      lipgloss.Color("#8c6a4a"),
		Orbit:      lipgloss.Color("#6b4423"),
		Playing:    lipgloss.Color("#ffd166"),
		Paused:     lipgloss.Color("#ef476f"),
	}

	ThemeAurora = Theme{
		Name:       "aurora",
		Primary:    lipgloss.Color("#00f5d4"),
		Secondary:  lipgloss.Color("#9b5de5"),
		Accent:     lipgloss.Color("#fee440"),
		Background: lipgloss.Color("#001219"),
		Text:       lipgloss.Color("#e0fbfc"),
		Muted:      lipgloss.Color("#4a7c85"),
		Orbit:      lipgloss.Color("#005f73"),
		Playing:    lipgloss.Color("#00f5d4"),
		Paused:     lipgloss.Color("#f15bb5"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"),
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Orbit:      lipgloss.Color("#006600"),
		Playing:    lipgloss.Color("#88ff88"),
		Paused:     lipgloss.Color("#ffff00"),
		BodyColors: true,
	}

	ThemeMono = Theme{
		Name:       "mono",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#ffffff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Orbit:      lipgloss.Color("#555555"),
		Playing:    lipgloss.Color("#ffffff"),
		Paused:     lipgloss.Color("#888888"),
		BodyColors: true,
	}

	Themes = []Theme{
		ThemeDeepSpace,
		ThemeSolar,
		ThemeAurora,
		ThemeRetroGreen,
		ThemeMono,
	}
)

// GetTheme returns the named theme, or deep-space if there is none.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDeepSpace
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// BodyColor is the color a body is drawn with under t.
func (t Theme) BodyColor(hex string) lipgloss.Color {
	if t.BodyColors || hex == "" {
		return t.Primary
	}
	return lipgloss.Color(hex)
}

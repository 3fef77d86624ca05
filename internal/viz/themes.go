package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the chrome around the grid. Cells always use the
// simulator's palette.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Border  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
	Alert   lipgloss.Color
}

// Available themes
var (
	ThemeRetroGreen = Theme{
		Name:    "retro",
		Title:   lipgloss.Color("#00ff00"), // Green phosphor
		Border:  lipgloss.Color("#005500"),
		Text:    lipgloss.Color("#00cc00"),
		Muted:   lipgloss.Color("#007700"),
		Accent:  lipgloss.Color("#88ff88"),
		Running: lipgloss.Color("#88ff88"),
		Paused:  lipgloss.Color("#ffff00"),
		Alert:   lipgloss.Color("#ff0000"),
	}

	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Title:   lipgloss.Color("#ff00ff"), // Magenta
		Border:  lipgloss.Color("#444466"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Accent:  lipgloss.Color("#00ffff"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffaa00"),
		Alert:   lipgloss.Color("#ff4444"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Title:   lipgloss.Color("#ffffff"),
		Border:  lipgloss.Color("#444444"),
		Text:    lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#888888"),
		Accent:  lipgloss.Color("#0088ff"),
		Running: lipgloss.Color("#00ff00"),
		Paused:  lipgloss.Color("#ffaa00"),
		Alert:   lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Title:   lipgloss.Color("#00a8cc"), // Ocean blue
		Border:  lipgloss.Color("#0077be"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Accent:  lipgloss.Color("#ffd700"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffcc00"),
		Alert:   lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Title:   lipgloss.Color("#ff6b6b"), // Coral
		Border:  lipgloss.Color("#8b6b8c"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Running: lipgloss.Color("#5fd068"),
		Paused:  lipgloss.Color("#ffc048"),
		Alert:   lipgloss.Color("#ff4757"),
	}

	// All available themes
	Themes = []Theme{
		ThemeRetroGreen,
		ThemeCyberpunk,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
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

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

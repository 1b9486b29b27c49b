package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/cells"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Bar colors by cell tag.
	Bar     lipgloss.Color
	Active  lipgloss.Color
	Special lipgloss.Color
	Done    lipgloss.Color
}

// TagColor returns the bar color for a cell tag.
func (t Theme) TagColor(tag cells.Tag) lipgloss.Color {
	switch tag {
	case cells.Active:
		return t.Active
	case cells.Special:
		return t.Special
	case cells.Done:
		return t.Done
	}
	return t.Bar
}

// Available themes
var (
	ThemeDefault = Theme{
		Name:    "default",
		Primary: lipgloss.Color("#00cccc"),
		Accent:  lipgloss.Color("#ff88ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff4444"),
		Bar:     lipgloss.Color("#5f87d7"),
		Active:  lipgloss.Color("#ff5f5f"),
		Special: lipgloss.Color("#ffd75f"),
		Done:    lipgloss.Color("#5fd75f"),
	}

	ThemeLight = Theme{
		Name:    "light",
		Primary: lipgloss.Color("#005f87"),
		Accent:  lipgloss.Color("#875f00"),
		Text:    lipgloss.Color("#1c1c1c"),
		Muted:   lipgloss.Color("#8a8a8a"),
		Success: lipgloss.Color("#008700"),
		Warning: lipgloss.Color("#af5f00"),
		Error:   lipgloss.Color("#af0000"),
		Bar:     lipgloss.Color("#4e4e4e"),
		Active:  lipgloss.Color("#d70000"),
		Special: lipgloss.Color("#d78700"),
		Done:    lipgloss.Color("#00875f"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"), // Green phosphor
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
		Bar:     lipgloss.Color("#008800"),
		Active:  lipgloss.Color("#ccffcc"),
		Special: lipgloss.Color("#ffff00"),
		Done:    lipgloss.Color("#00ff00"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#0077be"), // Ocean blue
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
		Error:   lipgloss.Color("#ff4444"),
		Bar:     lipgloss.Color("#00a8cc"),
		Active:  lipgloss.Color("#ff6b6b"),
		Special: lipgloss.Color("#ffd700"),
		Done:    lipgloss.Color("#00ff88"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Primary: lipgloss.Color("#ff6b6b"), // Coral
		Accent:  lipgloss.Color("#ff9ff3"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Success: lipgloss.Color("#5fd068"),
		Warning: lipgloss.Color("#ffc048"),
		Error:   lipgloss.Color("#ff4757"),
		Bar:     lipgloss.Color("#feca57"),
		Active:  lipgloss.Color("#ff4757"),
		Special: lipgloss.Color("#ff9ff3"),
		Done:    lipgloss.Color("#5fd068"),
	}

	// Default theme
	CurrentTheme = ThemeDefault

	// All available themes
	Themes = []Theme{
		ThemeDefault,
		ThemeLight,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	SetTheme(names[0])
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

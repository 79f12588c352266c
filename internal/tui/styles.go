package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	QuestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	TileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Width(8).
			Align(lipgloss.Center)

	CursorTileStyle = TileStyle.
			BorderForeground(lipgloss.Color("#FAFAFA"))

	TierStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// paletteColors maps the table palette names to terminal colours.
var paletteColors = map[string]lipgloss.Color{
	"red":    lipgloss.Color("#FF6B6B"),
	"green":  lipgloss.Color("#96CEB4"),
	"blue":   lipgloss.Color("#5DADE2"),
	"yellow": lipgloss.Color("#FFEAA7"),
	"orange": lipgloss.Color("#F5A623"),
	"pink":   lipgloss.Color("#F78FB3"),
	"purple": lipgloss.Color("#7D56F4"),
}

// tableTileStyle returns the tile style for a table, filled with the
// table's colour when selected.
func tableTileStyle(color string, selected, cursor bool) lipgloss.Style {
	style := TileStyle
	if cursor {
		style = CursorTileStyle
	}
	c, ok := paletteColors[color]
	if !ok {
		return style
	}
	if selected {
		return style.Background(c).Foreground(lipgloss.Color("#1A1A1A")).Bold(true)
	}
	return style.Foreground(c)
}

// ApplyTheme sets the colour profile for the named theme. "plain" strips
// colour entirely.
func ApplyTheme(theme string) {
	if theme == "plain" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

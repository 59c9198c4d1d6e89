package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	// Colors
	Primary    = lipgloss.Color("#7C3AED") // Purple
	Secondary  = lipgloss.Color("#06B6D4") // Cyan
	Success    = lipgloss.Color("#10B981") // Green
	Warning    = lipgloss.Color("#F59E0B") // Amber
	Error      = lipgloss.Color("#EF4444") // Red
	Muted      = lipgloss.Color("#6B7280") // Gray
	Background = lipgloss.Color("#FDFDFD") // Paper
	Foreground = lipgloss.Color("#1F2937") // Ink
	Border     = lipgloss.Color("#E5E7EB") // Gray border

	// Title bar
	TitleBar = lipgloss.NewStyle().
		Foreground(Background).
		Background(Primary).
		Padding(0, 1).
		Bold(true)

	// Status bar at bottom
	StatusBar = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 1)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted)

	HelpKey = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	// Muted text style
	MutedText = lipgloss.NewStyle().
		Foreground(Muted)

	SecondaryText = lipgloss.NewStyle().
		Foreground(Secondary)

	// Error message
	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true).
			Padding(0, 1)

	// Input field
	InputLabel = lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true)

	// List styles
	ListItem = lipgloss.NewStyle().
			Foreground(Foreground).
			Padding(0, 2)

	ListItemSelected = lipgloss.NewStyle().
				Foreground(Background).
				Background(Primary).
				Padding(0, 2).
				Bold(true)

	ListItemDimmed = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 2)

	// Reader styles
	ReaderContent = lipgloss.NewStyle().
			Foreground(Foreground).
			Padding(1, 2)

	ReaderHeader = lipgloss.NewStyle().
			Foreground(Background).
			Background(Primary).
			Padding(0, 1).
			Bold(true)

	ReaderHeading = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	ReaderProgress = lipgloss.NewStyle().
			Foreground(Secondary).
			Align(lipgloss.Right)

	// Search match decoration
	SearchMark = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1F2937")).
			Background(Warning)

	// Dialog/Modal styles
	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	// Book info styles
	BookTitle = lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true)

	BookMeta = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)
)

// HighlightMarks maps highlight color tags to their decoration styles.
var HighlightMarks = map[string]lipgloss.Style{
	"yellow": lipgloss.NewStyle().Foreground(lipgloss.Color("#1F2937")).Background(lipgloss.Color("#FDE68A")),
	"green":  lipgloss.NewStyle().Foreground(lipgloss.Color("#1F2937")).Background(lipgloss.Color("#A7F3D0")),
	"blue":   lipgloss.NewStyle().Foreground(lipgloss.Color("#1F2937")).Background(lipgloss.Color("#BFDBFE")),
	"red":    lipgloss.NewStyle().Foreground(lipgloss.Color("#1F2937")).Background(lipgloss.Color("#FECACA")),
}

// HighlightMark returns the decoration style for a color tag.
func HighlightMark(color string) lipgloss.Style {
	if s, ok := HighlightMarks[color]; ok {
		return s
	}
	return HighlightMarks["yellow"]
}

// TruncateText shortens a string to fit within width display cells,
// appending an ellipsis when it was cut.
func TruncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// Dimensions returns styled content with proper dimensions
func Dimensions(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Height(height)
}

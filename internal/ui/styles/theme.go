package styles

import "github.com/charmbracelet/lipgloss"

// Theme represents a color scheme for the reading surface
type Theme struct {
	Name        string
	Description string

	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color

	Selection     lipgloss.Color
	SelectionText lipgloss.Color
}

// Built-in themes
var (
	// LightTheme is the default paper-like theme
	LightTheme = Theme{
		Name:          "light",
		Description:   "Light theme (default)",
		Primary:       lipgloss.Color("#7C3AED"),
		Secondary:     lipgloss.Color("#0891B2"),
		Background:    lipgloss.Color("#FDFDFD"),
		Foreground:    lipgloss.Color("#1F2937"),
		Success:       lipgloss.Color("#059669"),
		Warning:       lipgloss.Color("#D97706"),
		Error:         lipgloss.Color("#DC2626"),
		Muted:         lipgloss.Color("#9CA3AF"),
		Border:        lipgloss.Color("#E5E7EB"),
		Selection:     lipgloss.Color("#7C3AED"),
		SelectionText: lipgloss.Color("#FFFFFF"),
	}

	// SepiaTheme mimics aged paper
	SepiaTheme = Theme{
		Name:          "sepia",
		Description:   "Warm sepia tones",
		Primary:       lipgloss.Color("#92400E"),
		Secondary:     lipgloss.Color("#B45309"),
		Background:    lipgloss.Color("#F5EDDC"),
		Foreground:    lipgloss.Color("#44403C"),
		Success:       lipgloss.Color("#4D7C0F"),
		Warning:       lipgloss.Color("#B45309"),
		Error:         lipgloss.Color("#B91C1C"),
		Muted:         lipgloss.Color("#A8A29E"),
		Border:        lipgloss.Color("#E7DCC3"),
		Selection:     lipgloss.Color("#92400E"),
		SelectionText: lipgloss.Color("#F5EDDC"),
	}

	// DarkTheme is a high-contrast dark scheme
	DarkTheme = Theme{
		Name:          "dark",
		Description:   "Dark theme",
		Primary:       lipgloss.Color("#8B5CF6"),
		Secondary:     lipgloss.Color("#06B6D4"),
		Background:    lipgloss.Color("#1F2937"),
		Foreground:    lipgloss.Color("#F9FAFB"),
		Success:       lipgloss.Color("#10B981"),
		Warning:       lipgloss.Color("#F59E0B"),
		Error:         lipgloss.Color("#EF4444"),
		Muted:         lipgloss.Color("#6B7280"),
		Border:        lipgloss.Color("#374151"),
		Selection:     lipgloss.Color("#8B5CF6"),
		SelectionText: lipgloss.Color("#F9FAFB"),
	}

	// ForestTheme uses muted greens
	ForestTheme = Theme{
		Name:          "forest",
		Description:   "Muted forest greens",
		Primary:       lipgloss.Color("#34D399"),
		Secondary:     lipgloss.Color("#6EE7B7"),
		Background:    lipgloss.Color("#1A2E22"),
		Foreground:    lipgloss.Color("#D1FAE5"),
		Success:       lipgloss.Color("#34D399"),
		Warning:       lipgloss.Color("#FBBF24"),
		Error:         lipgloss.Color("#F87171"),
		Muted:         lipgloss.Color("#4B6455"),
		Border:        lipgloss.Color("#2B4435"),
		Selection:     lipgloss.Color("#34D399"),
		SelectionText: lipgloss.Color("#1A2E22"),
	}

	// MidnightTheme is a deep blue night scheme
	MidnightTheme = Theme{
		Name:          "midnight",
		Description:   "Deep blue night mode",
		Primary:       lipgloss.Color("#60A5FA"),
		Secondary:     lipgloss.Color("#93C5FD"),
		Background:    lipgloss.Color("#0B1120"),
		Foreground:    lipgloss.Color("#CBD5E1"),
		Success:       lipgloss.Color("#4ADE80"),
		Warning:       lipgloss.Color("#FACC15"),
		Error:         lipgloss.Color("#F87171"),
		Muted:         lipgloss.Color("#475569"),
		Border:        lipgloss.Color("#1E293B"),
		Selection:     lipgloss.Color("#60A5FA"),
		SelectionText: lipgloss.Color("#0B1120"),
	}

	// BuiltinThemes is a list of all available built-in themes
	BuiltinThemes = []Theme{
		LightTheme,
		SepiaTheme,
		DarkTheme,
		ForestTheme,
		MidnightTheme,
	}

	currentTheme = LightTheme
)

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	for _, t := range BuiltinThemes {
		if t.Name == name {
			return t
		}
	}
	return LightTheme
}

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetCurrentTheme sets the active theme by name
func SetCurrentTheme(name string) {
	currentTheme = GetTheme(name)
	ApplyTheme(currentTheme)
}

// NextTheme cycles to the next theme and returns its name
func NextTheme() string {
	for i, t := range BuiltinThemes {
		if t.Name == currentTheme.Name {
			next := BuiltinThemes[(i+1)%len(BuiltinThemes)]
			SetCurrentTheme(next.Name)
			return next.Name
		}
	}
	return currentTheme.Name
}

// ApplyTheme updates all global styles to use the given theme's colors
func ApplyTheme(theme Theme) {
	Primary = theme.Primary
	Secondary = theme.Secondary
	Success = theme.Success
	Warning = theme.Warning
	Error = theme.Error
	Muted = theme.Muted
	Background = theme.Background
	Foreground = theme.Foreground
	Border = theme.Border

	TitleBar = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	StatusBar = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 1)

	Help = lipgloss.NewStyle().
		Foreground(theme.Muted)

	HelpKey = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	MutedText = lipgloss.NewStyle().
		Foreground(theme.Muted)

	SecondaryText = lipgloss.NewStyle().
		Foreground(theme.Secondary)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(theme.Success).
		Bold(true).
		Padding(0, 1)

	InputLabel = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Bold(true)

	ListItem = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Padding(0, 2)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Selection).
		Padding(0, 2).
		Bold(true)

	ListItemDimmed = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 2)

	ReaderContent = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Padding(1, 2)

	ReaderHeader = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	ReaderHeading = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	ReaderProgress = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Align(lipgloss.Right)

	SearchMark = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1F2937")).
		Background(theme.Warning)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		MarginBottom(1)

	BookTitle = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Bold(true)

	BookMeta = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Italic(true)
}

// init applies the default theme on package load
func init() {
	ApplyTheme(LightTheme)
}

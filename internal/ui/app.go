package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zenreader/zen-t/internal/config"
	"github.com/zenreader/zen-t/internal/library"
	"github.com/zenreader/zen-t/internal/llm"
	"github.com/zenreader/zen-t/internal/ui/styles"
	"github.com/zenreader/zen-t/internal/ui/views"
)

// App is the main application model
type App struct {
	config *config.Config
	store  *library.Store
	ai     *llm.Client
	keys   KeyMap

	// Current view state
	currentView views.ViewType

	// Window dimensions
	width  int
	height int

	// View models
	libraryView views.View
	readerView  views.View

	// Error/status message
	err       error
	statusMsg string
	showHelp  bool
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, store *library.Store, ai *llm.Client) *App {
	app := &App{
		config:      cfg,
		store:       store,
		ai:          ai,
		keys:        DefaultKeyMap(),
		currentView: views.ViewLibrary,
		width:       80,
		height:      24,
	}

	app.libraryView = views.NewLibraryView(store, ai)
	app.readerView = views.NewReaderView(store, ai, cfg.Settings, cfg.Gestures, cfg.MeasureSchedule())

	return app
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.getCurrentView().Init(),
		tea.SetWindowTitle("zen-t"),
	)
}

// capturing reports whether the current view is routing keystrokes
// into a text input.
func (a *App) capturing() bool {
	switch a.currentView {
	case views.ViewLibrary:
		return a.libraryView.(*views.LibraryView).Capturing()
	case views.ViewReader:
		return a.readerView.(*views.ReaderView).Capturing()
	}
	return false
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Propagate to all views
		a.libraryView.SetSize(msg.Width, msg.Height)
		a.readerView.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		a.statusMsg = ""
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.capturing() {
			switch {
			case key.Matches(msg, a.keys.Quit) && a.currentView == views.ViewLibrary:
				if a.showHelp {
					a.showHelp = false
					return a, nil
				}
				return a, tea.Quit

			case key.Matches(msg, a.keys.Help):
				a.showHelp = !a.showHelp
				return a, nil
			}
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

	case views.OpenBookMsg:
		a.readerView.(*views.ReaderView).SetBook(msg.Book)
		return a.switchView(views.ViewReader)

	case views.CloseBookMsg:
		return a.switchView(views.ViewLibrary)

	case views.SettingsChangedMsg:
		a.config.Settings = msg.Settings
		cfg := a.config
		return a, func() tea.Msg {
			if err := cfg.Save(); err != nil {
				return views.ErrorMsg{Err: err}
			}
			return nil
		}

	case views.ErrorMsg:
		// Record the error and let the current view leave its busy state
		a.err = msg.Err

	case views.ClearErrorMsg:
		a.err = nil
		return a, nil

	case views.StatusMsg:
		a.statusMsg = msg.Text
		return a, nil

	case views.BookChangedMsg:
		// Keep the library list fresh even while the reader is open
		var cmd tea.Cmd
		a.libraryView, cmd = a.libraryView.Update(msg)
		if a.currentView == views.ViewLibrary {
			return a, cmd
		}
		cmds = append(cmds, cmd)
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.currentView {
	case views.ViewLibrary:
		a.libraryView, cmd = a.libraryView.Update(msg)
	case views.ViewReader:
		a.readerView, cmd = a.readerView.Update(msg)
	}
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// View implements tea.Model
func (a *App) View() string {
	var content string
	switch a.currentView {
	case views.ViewLibrary:
		content = a.libraryView.View()
	case views.ViewReader:
		content = a.readerView.View()
	default:
		content = "Unknown view"
	}

	if a.err != nil {
		errorBar := styles.ErrorStyle.Render("Error: " + a.err.Error())
		content = lipgloss.JoinVertical(lipgloss.Left, content, errorBar)
	} else if a.statusMsg != "" {
		statusBar := styles.SuccessStyle.Render(a.statusMsg)
		content = lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
	}

	if a.showHelp {
		content = a.renderHelp()
	}

	return content
}

// switchView changes the current view and initializes it
func (a *App) switchView(view views.ViewType) (*App, tea.Cmd) {
	a.currentView = view
	a.err = nil
	a.statusMsg = ""

	return a, a.getCurrentView().Init()
}

// getCurrentView returns the current view model
func (a *App) getCurrentView() views.View {
	switch a.currentView {
	case views.ViewReader:
		return a.readerView
	default:
		return a.libraryView
	}
}

// renderHelp renders the help overlay
func (a *App) renderHelp() string {
	help := styles.Dialog.Width(62).Render(
		styles.DialogTitle.Render("Keyboard Shortcuts") + "\n\n" +
			styles.HelpKey.Render("Library") + "\n" +
			"  j/↓     Move down\n" +
			"  k/↑     Move up\n" +
			"  Enter   Open book\n" +
			"  i       Import a file (md, txt, epub, pdf, docx)\n" +
			"  P       Paste text as a new book\n" +
			"  y       Generate book from a transcript file\n" +
			"  r       Restructure selected book with AI\n" +
			"  e       Export selected book as EPUB\n" +
			"  d/x     Delete selected book\n\n" +
			styles.HelpKey.Render("Reader") + "\n" +
			"  →/l/Spc Next page\n" +
			"  ←/h     Previous page\n" +
			"  n/]     Next chapter (n cycles matches while searching)\n" +
			"  p/[     Previous chapter\n" +
			"  g/G     First/Last page of chapter\n" +
			"  t       Contents\n" +
			"  /       Search in chapter\n" +
			"  v       Select text to highlight\n" +
			"  H       Highlights\n" +
			"  N       Book notes\n" +
			"  a       Ask AI about the chapter\n" +
			"  T       Cycle theme\n" +
			"  +/-     Text size\n" +
			"  F       Toggle font family\n\n" +
			styles.HelpKey.Render("General") + "\n" +
			"  q       Quit/Back\n" +
			"  Esc     Back\n" +
			"  ?       Toggle help\n",
	)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		help,
	)
}

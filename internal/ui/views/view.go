package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zenreader/zen-t/pkg/models"
)

// ViewType represents different screens in the application
type ViewType int

const (
	ViewLibrary ViewType = iota
	ViewReader
)

// String returns the name of the view
func (v ViewType) String() string {
	switch v {
	case ViewLibrary:
		return "Library"
	case ViewReader:
		return "Reader"
	default:
		return "Unknown"
	}
}

// View is the interface that all views must implement
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Message types for inter-view communication

// OpenBookMsg is sent when a book is selected to read
type OpenBookMsg struct {
	Book *models.Book
}

// CloseBookMsg is sent when the reader returns to the library
type CloseBookMsg struct{}

// BookChangedMsg is sent when a book record was mutated and persisted,
// so the library list refreshes.
type BookChangedMsg struct{}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the current error
type ClearErrorMsg struct{}

// StatusMsg shows a transient status line
type StatusMsg struct {
	Text string
}

// SettingsChangedMsg is sent when reader settings change so they can
// be written back to the config file.
type SettingsChangedMsg struct {
	Settings models.ReaderSettings
}

// Helper functions to create messages

// SendError creates an error message command
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// ClearError creates a command to clear errors
func ClearError() tea.Cmd {
	return func() tea.Msg {
		return ClearErrorMsg{}
	}
}

// SendStatus creates a status message command
func SendStatus(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}

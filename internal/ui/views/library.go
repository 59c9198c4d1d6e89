package views

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zenreader/zen-t/internal/epub"
	"github.com/zenreader/zen-t/internal/importer"
	"github.com/zenreader/zen-t/internal/library"
	"github.com/zenreader/zen-t/internal/llm"
	"github.com/zenreader/zen-t/internal/ui/styles"
	"github.com/zenreader/zen-t/pkg/models"
)

// libraryMode tracks what the library view is currently doing
type libraryMode int

const (
	libraryList libraryMode = iota
	libraryInput
	libraryBusy
	libraryConfirmDelete
)

// inputKind distinguishes what the text input is collecting
type inputKind int

const (
	inputImportPath inputKind = iota
	inputPasteTitle
	inputPasteText
	inputTranscriptPath
	inputExportPath
)

// Messages for async library operations

type booksLoadedMsg struct {
	books []*models.Book
}

type bookAddedMsg struct {
	book *models.Book
}

type exportDoneMsg struct {
	path string
}

// LibraryView shows the stored books and handles imports
type LibraryView struct {
	store     *library.Store
	ai        *llm.Client
	generator *epub.Generator

	mode  libraryMode
	kind  inputKind
	input textinput.Model

	books    []*models.Book
	cursor   int
	busyText string

	// pasted title carried between the two paste inputs
	pasteTitle string

	width  int
	height int
}

// NewLibraryView creates the library view
func NewLibraryView(store *library.Store, ai *llm.Client) *LibraryView {
	ti := textinput.New()
	ti.CharLimit = 4096
	ti.Width = 60

	return &LibraryView{
		store:     store,
		ai:        ai,
		generator: epub.NewGenerator(),
		input:     ti,
		width:     80,
		height:    24,
	}
}

// Init implements View
func (v *LibraryView) Init() tea.Cmd {
	return v.loadBooks()
}

// SetSize implements View
func (v *LibraryView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.input.Width = width - 10
}

func (v *LibraryView) loadBooks() tea.Cmd {
	return func() tea.Msg {
		books, err := v.store.All()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return booksLoadedMsg{books: books}
	}
}

func (v *LibraryView) importFile(path string) tea.Cmd {
	return func() tea.Msg {
		book, err := importer.ImportFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if err := v.store.Put(book); err != nil {
			return ErrorMsg{Err: err}
		}
		return bookAddedMsg{book: book}
	}
}

func (v *LibraryView) addPastedText(title, text string) tea.Cmd {
	return func() tea.Msg {
		book, err := importer.NewBookFromText(title, text)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if err := v.store.Put(book); err != nil {
			return ErrorMsg{Err: err}
		}
		return bookAddedMsg{book: book}
	}
}

func (v *LibraryView) generateFromTranscript(path string) tea.Cmd {
	return func() tea.Msg {
		transcript, err := importer.ExtractText(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		book, err := v.ai.GenerateFromTranscript(context.Background(), transcript, "")
		if err != nil {
			return ErrorMsg{Err: err}
		}
		book.FileName = filepath.Base(path)
		if err := v.store.Put(book); err != nil {
			return ErrorMsg{Err: err}
		}
		return bookAddedMsg{book: book}
	}
}

func (v *LibraryView) restructureBook(book *models.Book) tea.Cmd {
	return func() tea.Msg {
		generated, err := v.ai.GenerateBook(context.Background(), book.FullContent(), book.Language)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		// Keep the original record; the restructured book is a new one.
		generated.FileName = book.FileName
		if err := v.store.Put(generated); err != nil {
			return ErrorMsg{Err: err}
		}
		return bookAddedMsg{book: generated}
	}
}

func (v *LibraryView) exportBook(book *models.Book, path string) tea.Cmd {
	return func() tea.Msg {
		if err := v.generator.Generate(book, path); err != nil {
			return ErrorMsg{Err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (v *LibraryView) deleteSelected() tea.Cmd {
	book := v.selected()
	if book == nil {
		return nil
	}
	return func() tea.Msg {
		if err := v.store.Delete(book.ID); err != nil {
			return ErrorMsg{Err: err}
		}
		return BookChangedMsg{}
	}
}

func (v *LibraryView) selected() *models.Book {
	if v.cursor < 0 || v.cursor >= len(v.books) {
		return nil
	}
	return v.books[v.cursor]
}

func (v *LibraryView) startInput(kind inputKind, prompt, placeholder string) tea.Cmd {
	v.mode = libraryInput
	v.kind = kind
	v.input.Prompt = prompt
	v.input.Placeholder = placeholder
	v.input.SetValue("")
	return v.input.Focus()
}

// Update implements View
func (v *LibraryView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case booksLoadedMsg:
		v.books = msg.books
		if v.cursor >= len(v.books) {
			v.cursor = len(v.books) - 1
		}
		if v.cursor < 0 {
			v.cursor = 0
		}
		return v, nil

	case bookAddedMsg:
		v.mode = libraryList
		return v, tea.Batch(
			v.loadBooks(),
			SendStatus(fmt.Sprintf("Added %q", msg.book.Title)),
		)

	case exportDoneMsg:
		v.mode = libraryList
		return v, SendStatus("Exported to " + msg.path)

	case BookChangedMsg:
		return v, v.loadBooks()

	case ErrorMsg:
		// A failed async operation must not leave the view stuck busy
		if v.mode == libraryBusy {
			v.mode = libraryList
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	if v.mode == libraryInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// Capturing reports whether keystrokes are going into a text input, so
// global shortcuts must stay out of the way.
func (v *LibraryView) Capturing() bool {
	return v.mode == libraryInput
}

func (v *LibraryView) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch v.mode {
	case libraryInput:
		switch msg.String() {
		case "esc":
			v.mode = libraryList
			v.input.Blur()
			return v, nil
		case "enter":
			return v.submitInput()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd

	case libraryConfirmDelete:
		switch msg.String() {
		case "y", "Y":
			v.mode = libraryList
			return v, v.deleteSelected()
		default:
			v.mode = libraryList
			return v, nil
		}

	case libraryBusy:
		// Ignore keys while a generation runs.
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.books)-1 {
			v.cursor++
		}
	case "g", "home":
		v.cursor = 0
	case "G", "end":
		if len(v.books) > 0 {
			v.cursor = len(v.books) - 1
		}
	case "enter":
		if book := v.selected(); book != nil {
			return v, func() tea.Msg { return OpenBookMsg{Book: book} }
		}
	case "i":
		return v, v.startInput(inputImportPath, "Import file: ", "/path/to/document.md")
	case "P":
		return v, v.startInput(inputPasteTitle, "Title: ", "My pasted text")
	case "y":
		if !v.ai.Configured() {
			return v, SendError(fmt.Errorf("transcript import needs an API key (ZEN_LLM_API_KEY)"))
		}
		return v, v.startInput(inputTranscriptPath, "Transcript file: ", "/path/to/talk.vtt")
	case "r":
		book := v.selected()
		if book == nil {
			break
		}
		if !v.ai.Configured() {
			return v, SendError(fmt.Errorf("restructuring needs an API key (ZEN_LLM_API_KEY)"))
		}
		v.mode = libraryBusy
		v.busyText = fmt.Sprintf("Restructuring %q with AI...", book.Title)
		return v, v.restructureBook(book)
	case "e":
		if book := v.selected(); book != nil {
			def := sanitizeFileName(book.Title) + ".epub"
			cmd := v.startInput(inputExportPath, "Export to: ", def)
			v.input.SetValue(def)
			return v, cmd
		}
	case "d", "x":
		if v.selected() != nil {
			v.mode = libraryConfirmDelete
		}
	}
	return v, nil
}

func (v *LibraryView) submitInput() (View, tea.Cmd) {
	value := strings.TrimSpace(v.input.Value())
	if value == "" {
		v.mode = libraryList
		v.input.Blur()
		return v, nil
	}

	switch v.kind {
	case inputImportPath:
		v.mode = libraryBusy
		v.busyText = "Importing " + filepath.Base(value) + "..."
		v.input.Blur()
		return v, v.importFile(expandHome(value))

	case inputPasteTitle:
		v.pasteTitle = value
		return v, v.startInput(inputPasteText, "Text: ", "Paste or type the content")

	case inputPasteText:
		v.mode = libraryBusy
		v.busyText = "Adding pasted text..."
		v.input.Blur()
		return v, v.addPastedText(v.pasteTitle, value)

	case inputTranscriptPath:
		v.mode = libraryBusy
		v.busyText = "Generating book from transcript..."
		v.input.Blur()
		return v, v.generateFromTranscript(expandHome(value))

	case inputExportPath:
		book := v.selected()
		if book == nil {
			v.mode = libraryList
			return v, nil
		}
		v.mode = libraryBusy
		v.busyText = "Writing EPUB..."
		v.input.Blur()
		return v, v.exportBook(book, expandHome(value))
	}

	v.mode = libraryList
	return v, nil
}

// View implements View
func (v *LibraryView) View() string {
	var b strings.Builder

	title := styles.TitleBar.Render("zen-t library")
	b.WriteString(title)
	b.WriteString("\n\n")

	switch v.mode {
	case libraryBusy:
		b.WriteString(styles.SecondaryText.Render("  " + v.busyText))
		b.WriteString("\n")
		return b.String()

	case libraryInput:
		b.WriteString("  " + v.input.View())
		b.WriteString("\n\n")
		b.WriteString(styles.Help.Render("  Enter to confirm, Esc to cancel"))
		return b.String()
	}

	if len(v.books) == 0 {
		b.WriteString(styles.MutedText.Render("  No books yet."))
		b.WriteString("\n\n")
		b.WriteString(styles.Help.Render("  i import file • P paste text • y transcript • q quit"))
		return b.String()
	}

	maxRows := v.height - 7
	if maxRows < 1 {
		maxRows = 1
	}
	start := 0
	if v.cursor >= maxRows {
		start = v.cursor - maxRows + 1
	}

	for i := start; i < len(v.books) && i < start+maxRows; i++ {
		book := v.books[i]
		line := book.Title
		meta := fmt.Sprintf("%d chapters", len(book.Chapters))
		if book.Source != "" {
			meta += " • " + book.Source
		}
		if n := len(book.Highlights); n > 0 {
			meta += fmt.Sprintf(" • %d highlights", n)
		}
		line = styles.TruncateText(line, v.width-30)
		row := fmt.Sprintf("%s  %s", line, styles.BookMeta.Render(meta))
		if i == v.cursor {
			b.WriteString(styles.ListItemSelected.Render(row))
		} else {
			b.WriteString(styles.ListItem.Render(row))
		}
		b.WriteString("\n")
	}

	if v.mode == libraryConfirmDelete {
		if book := v.selected(); book != nil {
			b.WriteString("\n")
			b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Delete %q? (y/N)", book.Title)))
		}
	}

	b.WriteString("\n")
	help := "Enter read • i import • P paste • y transcript • r restructure • e export • d delete • q quit"
	b.WriteString(styles.Help.Render("  " + styles.TruncateText(help, v.width-4)))

	return lipgloss.NewStyle().Width(v.width).Render(b.String())
}

func sanitizeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, name)
	if name == "" {
		name = "book"
	}
	return name
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

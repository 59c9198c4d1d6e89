package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zenreader/zen-t/internal/library"
	"github.com/zenreader/zen-t/internal/llm"
	"github.com/zenreader/zen-t/internal/reader"
	"github.com/zenreader/zen-t/internal/ui/styles"
	"github.com/zenreader/zen-t/pkg/models"
)

// readerOverlay is the modal panel open on top of the page, if any
type readerOverlay int

const (
	overlayNone readerOverlay = iota
	overlayTOC
	overlayHighlights
	overlayNotes
	overlayAsk
)

// tocEntry is one row of the contents overlay: a chapter, or a heading
// anchor inside one.
type tocEntry struct {
	chapter int
	anchor  string
	label   string
	level   int
}

// ReaderView displays one book as swipeable pages
type ReaderView struct {
	store    *library.Store
	ai       *llm.Client
	annotate *reader.Annotator

	settings models.ReaderSettings
	measurer *reader.Measurer
	swipe    *reader.SwipeTracker

	// Current book
	book    *models.Book
	chapter int

	// Layout: display carries decorations, plain mirrors it without
	// styling so selections and search map back to real text.
	layout     reader.Layout
	plain      reader.Layout
	pageCounts []int
	nav        *reader.Navigator

	// Pending jump applied after the next flow
	pendingAnchor   string
	pendingLastPage bool

	// Search
	searchMode  bool
	searchInput textinput.Model
	query       string

	// Selection mode for creating highlights
	selecting bool
	selAnchor int
	selCursor int

	// Overlays
	overlay       readerOverlay
	overlayCursor int
	tocEntries    []tocEntry
	noteEditing   bool
	noteInput     textinput.Model

	// AI panel
	askInput textinput.Model
	aiBusy   bool
	aiAnswer string

	// Mouse gesture state
	pressX, pressY int

	statusMsg string

	width  int
	height int
}

// Message types

// measureMsg fires one scheduled re-measurement pass
type measureMsg struct {
	generation int
}

type aiAnswerMsg struct {
	text string
}

// NewReaderView creates the reader view
func NewReaderView(store *library.Store, ai *llm.Client, settings models.ReaderSettings, gestures reader.SwipeConfig, schedule []time.Duration) *ReaderView {
	search := textinput.New()
	search.Prompt = "/"
	search.CharLimit = 128

	note := textinput.New()
	note.Prompt = "Note: "
	note.CharLimit = 512

	ask := textinput.New()
	ask.Prompt = "Ask: "
	ask.CharLimit = 512

	return &ReaderView{
		store:       store,
		ai:          ai,
		annotate:    reader.NewAnnotator(store),
		settings:    settings.Clamp(),
		measurer:    reader.NewMeasurer(schedule...),
		swipe:       reader.NewSwipeTracker(gestures),
		searchInput: search,
		noteInput:   note,
		askInput:    ask,
		width:       80,
		height:      24,
	}
}

// SetBook sets the current book to read
func (v *ReaderView) SetBook(book *models.Book) {
	v.book = book
	v.chapter = 0
	v.pageCounts = make([]int, len(book.Chapters))
	for i := range v.pageCounts {
		v.pageCounts[i] = 1
	}
	v.nav = reader.NewNavigator(len(book.Chapters), func(ch int) int {
		if ch >= 0 && ch < len(v.pageCounts) {
			return v.pageCounts[ch]
		}
		return 1
	})
	v.query = ""
	v.searchMode = false
	v.selecting = false
	v.overlay = overlayNone
	v.aiAnswer = ""
	v.statusMsg = ""
	v.pendingAnchor = ""
	v.pendingLastPage = false
}

// Settings returns the current reader settings.
func (v *ReaderView) Settings() models.ReaderSettings {
	return v.settings
}

// Capturing reports whether keystrokes are going into a text input, so
// global shortcuts must stay out of the way.
func (v *ReaderView) Capturing() bool {
	return v.searchMode || v.noteEditing || v.overlay == overlayAsk
}

// Init implements View
func (v *ReaderView) Init() tea.Cmd {
	if v.book == nil {
		return nil
	}
	return v.remeasure()
}

// SetSize implements View
func (v *ReaderView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.searchInput.Width = width - 10
	v.noteInput.Width = width - 10
	v.askInput.Width = width - 10
}

func (v *ReaderView) viewport() reader.Viewport {
	return reader.Viewport{Width: v.width, Height: v.height}
}

func (v *ReaderView) currentChapter() models.Chapter {
	if v.book == nil || v.chapter >= len(v.book.Chapters) {
		return models.Chapter{}
	}
	return v.book.Chapters[v.chapter]
}

func (v *ReaderView) chapterHighlights() []models.Highlight {
	if v.book == nil {
		return nil
	}
	return v.book.HighlightsForChapter(v.currentChapter().ID)
}

// decorate styles one block for display. Styling sequences are
// zero-width, so the decorated flow keeps the plain flow's geometry.
func (v *ReaderView) decorate(b reader.Block) string {
	text := b.PlainText()
	if b.Kind == reader.BlockHeading {
		return styles.ReaderHeading.Render(text)
	}

	highlights := v.chapterHighlights()
	byID := make(map[string]models.Highlight, len(highlights))
	for _, h := range highlights {
		byID[h.ID] = h
	}

	segs := reader.PartitionText(text, v.query, highlights)
	var sb strings.Builder
	for _, s := range segs {
		switch s.Kind {
		case reader.SegmentSearch:
			sb.WriteString(styles.SearchMark.Render(s.Text))
		case reader.SegmentNote:
			st := styles.HighlightMark(byID[s.HighlightID].Color)
			if byID[s.HighlightID].Note != "" {
				st = st.Underline(true)
			}
			sb.WriteString(st.Render(s.Text))
		default:
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

// reflow recomputes the chapter layout synchronously. A zero-area
// viewport leaves the previous layout untouched.
func (v *ReaderView) reflow() {
	if v.book == nil || v.viewport().Zero() {
		return
	}
	content := v.currentChapter().Content
	v.plain = reader.Flow(content, v.viewport(), v.settings, nil)
	v.layout = reader.Flow(content, v.viewport(), v.settings, v.decorate)
	if v.layout.Valid() {
		v.pageCounts[v.chapter] = v.layout.TotalPages
		v.nav.ClampToLayout()
	}
	v.applyPendingJump()
}

func (v *ReaderView) applyPendingJump() {
	if !v.layout.Valid() {
		return
	}
	if v.pendingLastPage {
		v.nav.SetPage(v.layout.TotalPages - 1)
		v.pendingLastPage = false
	}
	if v.pendingAnchor != "" {
		if page, ok := v.layout.PageForAnchor(v.pendingAnchor); ok {
			v.nav.SetPage(page)
		}
		v.pendingAnchor = ""
	}
}

// remeasure reflows now and schedules the settle passes.
func (v *ReaderView) remeasure() tea.Cmd {
	v.reflow()
	passes := v.measurer.Begin()
	cmds := make([]tea.Cmd, len(passes))
	for i, p := range passes {
		pass := p
		cmds[i] = tea.Tick(pass.Delay, func(time.Time) tea.Msg {
			return measureMsg{generation: pass.Generation}
		})
	}
	return tea.Batch(cmds...)
}

// syncChapter reflows after the navigator crossed a chapter boundary.
// Search state is per chapter, so the query clears on the way over.
func (v *ReaderView) syncChapter() tea.Cmd {
	if v.nav.Chapter() == v.chapter {
		return nil
	}
	v.chapter = v.nav.Chapter()
	v.query = ""
	v.measurer.Cancel()
	return v.remeasure()
}

func (v *ReaderView) nextPage() tea.Cmd {
	if v.nav.NextPage() {
		return v.syncChapter()
	}
	return nil
}

func (v *ReaderView) prevPage() tea.Cmd {
	before := v.nav.Chapter()
	if v.nav.PrevPage() {
		if v.nav.Chapter() != before {
			// Land on the previous chapter's real last page once the
			// flow has produced its page count.
			v.pendingLastPage = true
		}
		return v.syncChapter()
	}
	return nil
}

func (v *ReaderView) jumpToChapter(chapter int, anchor string) tea.Cmd {
	v.nav.JumpToChapter(chapter)
	v.pendingAnchor = anchor
	if cmd := v.syncChapter(); cmd != nil {
		return cmd
	}
	v.applyPendingJump()
	return nil
}

// Update implements View
func (v *ReaderView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		v.statusMsg = ""
		return v.handleKey(msg)

	case tea.MouseMsg:
		return v.handleMouse(msg)

	case measureMsg:
		if !v.measurer.Valid(msg.generation) {
			return v, nil
		}
		v.reflow()
		if v.layout.Valid() {
			v.measurer.Observe(v.layout.TotalPages)
		}
		return v, nil

	case aiAnswerMsg:
		v.aiBusy = false
		v.aiAnswer = msg.text
		return v, nil

	case ErrorMsg:
		v.aiBusy = false
		return v, nil
	}

	return v, nil
}

// handleMouse interprets press/release pairs as swipes or taps
func (v *ReaderView) handleMouse(msg tea.MouseMsg) (View, tea.Cmd) {
	if v.overlay != overlayNone || v.searchMode || v.selecting {
		return v, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			v.pressX, v.pressY = msg.X, msg.Y
			v.swipe.Start(msg.X, msg.Y, v.width, time.Now())
		}
	case tea.MouseActionRelease:
		if !v.swipe.Active() {
			return v, nil
		}
		dx := msg.X - v.pressX
		dy := msg.Y - v.pressY
		action := v.swipe.End(msg.X, msg.Y, time.Now())
		if action == reader.SwipeNone && abs(dx) <= 1 && abs(dy) <= 1 {
			action = v.swipe.TapAction(msg.X, v.width)
		}
		switch action {
		case reader.SwipeNextPage:
			return v, v.nextPage()
		case reader.SwipePrevPage:
			return v, v.prevPage()
		}
	}
	return v, nil
}

func (v *ReaderView) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.searchMode {
		return v.updateSearchInput(msg)
	}
	if v.selecting {
		return v.updateSelection(msg)
	}
	switch v.overlay {
	case overlayTOC:
		return v.updateTOC(msg)
	case overlayHighlights:
		return v.updateHighlights(msg)
	case overlayNotes:
		return v.updateNotes(msg)
	case overlayAsk:
		return v.updateAsk(msg)
	}
	return v.handleReaderKey(msg)
}

func (v *ReaderView) handleReaderKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "right", "l", " ", "pgdown":
		return v, v.nextPage()
	case "left", "h", "pgup":
		return v, v.prevPage()
	case "g", "home":
		v.nav.SetPage(0)
	case "G", "end":
		if v.layout.Valid() {
			v.nav.SetPage(v.layout.TotalPages - 1)
		}
	case "n":
		if v.query != "" {
			v.cycleMatch(1)
			return v, nil
		}
		if v.chapter < len(v.book.Chapters)-1 {
			return v, v.jumpToChapter(v.chapter+1, "")
		}
	case "]":
		if v.chapter < len(v.book.Chapters)-1 {
			return v, v.jumpToChapter(v.chapter+1, "")
		}
	case "p", "[":
		if v.chapter > 0 {
			return v, v.jumpToChapter(v.chapter-1, "")
		}
	case "t":
		v.buildTOC()
		v.overlay = overlayTOC
		v.overlayCursor = v.currentTOCIndex()
	case "H":
		v.overlay = overlayHighlights
		v.overlayCursor = 0
	case "N":
		if v.query != "" {
			v.cycleMatch(-1)
			return v, nil
		}
		v.overlay = overlayNotes
		v.noteEditing = false
	case "a":
		v.overlay = overlayAsk
		v.aiAnswer = ""
		return v, v.askInput.Focus()
	case "v":
		if len(v.plain.Page(v.nav.Page())) > 0 {
			v.selecting = true
			v.selAnchor = v.nav.Page() * v.plain.PageHeight
			v.selCursor = v.selAnchor
		}
	case "/":
		v.searchMode = true
		v.searchInput.SetValue(v.query)
		return v, v.searchInput.Focus()
	case "T":
		name := styles.NextTheme()
		v.settings.Theme = name
		return v, v.settingsChanged()
	case "+", "=":
		if v.settings.FontSize < models.MaxFontSize {
			v.settings.FontSize++
			return v, v.settingsChanged()
		}
	case "-":
		if v.settings.FontSize > models.MinFontSize {
			v.settings.FontSize--
			return v, v.settingsChanged()
		}
	case "F":
		if v.settings.FontFamily == models.FontSerif {
			v.settings.FontFamily = models.FontSans
		} else {
			v.settings.FontFamily = models.FontSerif
		}
		return v, v.settingsChanged()
	case "esc", "q":
		if v.query != "" {
			v.query = ""
			v.reflow()
			return v, nil
		}
		v.measurer.Cancel()
		return v, func() tea.Msg { return CloseBookMsg{} }
	}
	return v, nil
}

// settingsChanged reflows for the new typography and notifies the app
// so the preference is persisted.
func (v *ReaderView) settingsChanged() tea.Cmd {
	v.measurer.Cancel()
	settings := v.settings
	return tea.Batch(
		v.remeasure(),
		func() tea.Msg { return SettingsChangedMsg{Settings: settings} },
	)
}

// Search

func (v *ReaderView) updateSearchInput(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.searchMode = false
		v.searchInput.Blur()
		return v, nil
	case "enter":
		v.searchMode = false
		v.searchInput.Blur()
		v.query = strings.TrimSpace(v.searchInput.Value())
		v.reflow()
		if v.query != "" {
			pages := v.matchPages()
			if len(pages) == 0 {
				v.statusMsg = fmt.Sprintf("No matches for %q in this chapter", v.query)
			} else {
				v.nav.SetPage(pages[0])
				v.statusMsg = fmt.Sprintf("%d matching pages, n/N to cycle", len(pages))
			}
		}
		return v, nil
	}
	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	return v, cmd
}

// cycleMatch moves to the next or previous page with a search match
func (v *ReaderView) cycleMatch(dir int) {
	pages := v.matchPages()
	if len(pages) == 0 {
		return
	}
	current := v.nav.Page()
	if dir > 0 {
		for _, p := range pages {
			if p > current {
				v.nav.SetPage(p)
				return
			}
		}
		v.nav.SetPage(pages[0])
		return
	}
	for i := len(pages) - 1; i >= 0; i-- {
		if pages[i] < current {
			v.nav.SetPage(pages[i])
			return
		}
	}
	v.nav.SetPage(pages[len(pages)-1])
}

// matchPages returns the pages of the current chapter containing the
// active query, in order.
func (v *ReaderView) matchPages() []int {
	if v.query == "" || !v.plain.Valid() {
		return nil
	}
	needle := strings.ToLower(v.query)
	var pages []int
	seen := -1
	for i, line := range v.plain.Lines {
		if strings.Contains(strings.ToLower(line), needle) {
			page := i / v.plain.PageHeight
			if page != seen {
				pages = append(pages, page)
				seen = page
			}
		}
	}
	return pages
}

// Selection mode

func (v *ReaderView) updateSelection(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.selecting = false
	case "j", "down":
		if v.selCursor < len(v.plain.Lines)-1 {
			v.selCursor++
		}
	case "k", "up":
		if v.selCursor > 0 {
			v.selCursor--
		}
	case "enter":
		v.selecting = false
		text := v.selectedText()
		if text == "" {
			return v, nil
		}
		h, err := v.annotate.Add(v.book, v.currentChapter().ID, text)
		if err != nil {
			return v, SendError(err)
		}
		v.reflow()
		v.statusMsg = fmt.Sprintf("Highlighted %q", styles.TruncateText(h.Text, 40))
		return v, func() tea.Msg { return BookChangedMsg{} }
	}
	return v, nil
}

func (v *ReaderView) selectionRange() (int, int) {
	lo, hi := v.selAnchor, v.selCursor
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

func (v *ReaderView) selectedText() string {
	lo, hi := v.selectionRange()
	if lo < 0 || hi >= len(v.plain.Lines) {
		return ""
	}
	var parts []string
	for i := lo; i <= hi; i++ {
		line := strings.TrimPrefix(strings.TrimSpace(v.plain.Lines[i]), "• ")
		if line != "" {
			parts = append(parts, line)
		}
	}
	return reader.NormalizeSpace(strings.Join(parts, " "))
}

// Contents overlay

func (v *ReaderView) buildTOC() {
	v.tocEntries = v.tocEntries[:0]
	for i, ch := range v.book.Chapters {
		v.tocEntries = append(v.tocEntries, tocEntry{chapter: i, label: ch.Title})
		for _, h := range reader.ExtractHeadings(ch.Content) {
			v.tocEntries = append(v.tocEntries, tocEntry{
				chapter: i,
				anchor:  h.ID,
				label:   h.Text,
				level:   h.Level,
			})
		}
	}
}

func (v *ReaderView) currentTOCIndex() int {
	for i, e := range v.tocEntries {
		if e.chapter == v.chapter && e.anchor == "" {
			return i
		}
	}
	return 0
}

func (v *ReaderView) updateTOC(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc", "t", "q":
		v.overlay = overlayNone
	case "j", "down":
		if v.overlayCursor < len(v.tocEntries)-1 {
			v.overlayCursor++
		}
	case "k", "up":
		if v.overlayCursor > 0 {
			v.overlayCursor--
		}
	case "g", "home":
		v.overlayCursor = 0
	case "G", "end":
		v.overlayCursor = len(v.tocEntries) - 1
	case "enter":
		v.overlay = overlayNone
		if v.overlayCursor < len(v.tocEntries) {
			e := v.tocEntries[v.overlayCursor]
			return v, v.jumpToChapter(e.chapter, e.anchor)
		}
	}
	return v, nil
}

// Highlights overlay

func (v *ReaderView) updateHighlights(msg tea.KeyMsg) (View, tea.Cmd) {
	hs := v.book.Highlights
	if v.noteEditing {
		switch msg.String() {
		case "esc":
			v.noteEditing = false
			v.noteInput.Blur()
			return v, nil
		case "enter":
			v.noteEditing = false
			v.noteInput.Blur()
			if v.overlayCursor < len(hs) {
				if err := v.annotate.UpdateNote(v.book, hs[v.overlayCursor].ID, strings.TrimSpace(v.noteInput.Value())); err != nil {
					return v, SendError(err)
				}
				v.reflow()
				return v, func() tea.Msg { return BookChangedMsg{} }
			}
			return v, nil
		}
		var cmd tea.Cmd
		v.noteInput, cmd = v.noteInput.Update(msg)
		return v, cmd
	}

	switch msg.String() {
	case "esc", "H", "q":
		v.overlay = overlayNone
	case "j", "down":
		if v.overlayCursor < len(hs)-1 {
			v.overlayCursor++
		}
	case "k", "up":
		if v.overlayCursor > 0 {
			v.overlayCursor--
		}
	case "enter":
		if v.overlayCursor < len(hs) {
			h := hs[v.overlayCursor]
			v.overlay = overlayNone
			if idx := v.book.ChapterIndex(h.ChapterID); idx >= 0 {
				return v, v.jumpToChapter(idx, "")
			}
		}
	case "c":
		if v.overlayCursor < len(hs) {
			h := hs[v.overlayCursor]
			next := nextColor(h.Color)
			if err := v.annotate.SetColor(v.book, h.ID, next); err != nil {
				return v, SendError(err)
			}
			v.reflow()
			return v, func() tea.Msg { return BookChangedMsg{} }
		}
	case "m":
		if v.overlayCursor < len(hs) {
			v.noteEditing = true
			v.noteInput.SetValue(hs[v.overlayCursor].Note)
			return v, v.noteInput.Focus()
		}
	case "d", "x":
		if v.overlayCursor < len(hs) {
			if err := v.annotate.Remove(v.book, hs[v.overlayCursor].ID); err != nil {
				return v, SendError(err)
			}
			if v.overlayCursor >= len(v.book.Highlights) && v.overlayCursor > 0 {
				v.overlayCursor--
			}
			v.reflow()
			return v, func() tea.Msg { return BookChangedMsg{} }
		}
	}
	return v, nil
}

func nextColor(current string) string {
	for i, c := range models.HighlightColors {
		if c == current {
			return models.HighlightColors[(i+1)%len(models.HighlightColors)]
		}
	}
	return models.DefaultHighlightColor
}

// Notes overlay

func (v *ReaderView) updateNotes(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.noteEditing {
		switch msg.String() {
		case "esc":
			v.noteEditing = false
			v.noteInput.Blur()
			return v, nil
		case "enter":
			v.noteEditing = false
			v.noteInput.Blur()
			updated := *v.book
			updated.Notes = strings.TrimSpace(v.noteInput.Value())
			if err := v.store.Put(&updated); err != nil {
				return v, SendError(err)
			}
			v.book.Notes = updated.Notes
			return v, func() tea.Msg { return BookChangedMsg{} }
		}
		var cmd tea.Cmd
		v.noteInput, cmd = v.noteInput.Update(msg)
		return v, cmd
	}

	switch msg.String() {
	case "esc", "N", "q":
		v.overlay = overlayNone
	case "e":
		v.noteEditing = true
		v.noteInput.SetValue(v.book.Notes)
		return v, v.noteInput.Focus()
	}
	return v, nil
}

// AI overlay

func (v *ReaderView) updateAsk(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if v.aiBusy {
			return v, nil
		}
		v.overlay = overlayNone
		v.askInput.Blur()
		return v, nil
	case "enter":
		question := strings.TrimSpace(v.askInput.Value())
		if question == "" || v.aiBusy {
			return v, nil
		}
		v.aiBusy = true
		v.askInput.SetValue("")
		book, chapter := v.book, v.currentChapter()
		ai := v.ai
		return v, func() tea.Msg {
			answer, err := ai.AnswerQuestion(context.Background(), book, chapter, question)
			if err != nil {
				return ErrorMsg{Err: err}
			}
			return aiAnswerMsg{text: answer}
		}
	case "ctrl+s":
		if v.aiBusy {
			return v, nil
		}
		v.aiBusy = true
		book, chapter := v.book, v.currentChapter()
		ai := v.ai
		return v, func() tea.Msg {
			summary, err := ai.SummarizeChapter(context.Background(), chapter, book.Language)
			if err != nil {
				return ErrorMsg{Err: err}
			}
			return aiAnswerMsg{text: summary}
		}
	case "ctrl+b":
		if v.aiBusy {
			return v, nil
		}
		v.aiBusy = true
		book := v.book
		ai := v.ai
		return v, func() tea.Msg {
			summary, err := ai.SummarizeBook(context.Background(), book)
			if err != nil {
				return ErrorMsg{Err: err}
			}
			return aiAnswerMsg{text: summary}
		}
	}
	var cmd tea.Cmd
	v.askInput, cmd = v.askInput.Update(msg)
	return v, cmd
}

// View implements View
func (v *ReaderView) View() string {
	if v.book == nil {
		return styles.ErrorStyle.Render("No book open")
	}

	switch v.overlay {
	case overlayTOC:
		return v.renderTOC()
	case overlayHighlights:
		return v.renderHighlights()
	case overlayNotes:
		return v.renderNotes()
	case overlayAsk:
		return v.renderAsk()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader() + "\n\n")

	if !v.layout.Valid() {
		b.WriteString(styles.MutedText.Render("  Measuring..."))
		return b.String()
	}

	page := v.nav.Page()
	if v.selecting {
		lo, hi := v.selectionRange()
		start := page * v.plain.PageHeight
		for i, line := range v.plain.Page(page) {
			abs := start + i
			if abs >= lo && abs <= hi {
				b.WriteString("  " + styles.ListItemSelected.Render(line) + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	} else {
		for _, line := range v.layout.Page(page) {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n")
	if v.searchMode {
		b.WriteString("  " + v.searchInput.View())
	} else {
		b.WriteString(v.renderFooter())
	}
	return b.String()
}

func (v *ReaderView) renderHeader() string {
	maxTitle := v.width / 3
	if maxTitle < 10 {
		maxTitle = 10
	}
	title := styles.ReaderHeader.Render(" " + styles.TruncateText(v.book.Title, maxTitle) + " ")

	chapterTitle := styles.TruncateText(v.currentChapter().Title, 24)
	chapterPart := styles.Help.Render(fmt.Sprintf(" Ch %d/%d: %s ", v.chapter+1, len(v.book.Chapters), chapterTitle))

	total := v.layout.TotalPages
	if total < 1 {
		total = 1
	}
	chapterProgress := float64(v.nav.Page()+1) / float64(total)
	bookProgress := (float64(v.chapter) + chapterProgress) / float64(len(v.book.Chapters))

	progress := styles.MutedText.Render("Ch:") + renderProgressBar(10, chapterProgress) +
		styles.MutedText.Render(" Book:") + renderProgressBar(10, bookProgress)

	left := title + chapterPart
	gap := v.width - lipgloss.Width(left) - lipgloss.Width(progress)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + progress
}

func (v *ReaderView) renderFooter() string {
	total := v.layout.TotalPages
	if total < 1 {
		total = 1
	}
	pos := fmt.Sprintf("Page %d/%d", v.nav.Page()+1, total)

	var right string
	switch {
	case v.statusMsg != "":
		right = styles.SecondaryText.Render(v.statusMsg)
	case v.selecting:
		right = styles.Help.Render("j/k extend selection • Enter highlight • Esc cancel")
	default:
		right = styles.Help.Render("←/→ pages • t contents • v highlight • / search • a ask • Esc back")
	}

	left := styles.StatusBar.Render(pos)
	gap := v.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

func (v *ReaderView) renderTOC() string {
	var b strings.Builder
	b.WriteString(styles.TitleBar.Render("Contents") + "\n\n")

	maxRows := v.height - 5
	if maxRows < 1 {
		maxRows = 1
	}
	start := 0
	if v.overlayCursor >= maxRows {
		start = v.overlayCursor - maxRows + 1
	}

	for i := start; i < len(v.tocEntries) && i < start+maxRows; i++ {
		e := v.tocEntries[i]
		label := e.label
		if e.anchor != "" {
			label = strings.Repeat("  ", e.level) + label
		}
		label = styles.TruncateText(label, v.width-8)
		if i == v.overlayCursor {
			b.WriteString(styles.ListItemSelected.Render(label))
		} else if e.anchor == "" {
			b.WriteString(styles.ListItem.Render(styles.BookTitle.Render(label)))
		} else {
			b.WriteString(styles.ListItem.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + styles.Help.Render("  Enter jump • Esc close"))
	return b.String()
}

func (v *ReaderView) renderHighlights() string {
	var b strings.Builder
	b.WriteString(styles.TitleBar.Render("Highlights") + "\n\n")

	if len(v.book.Highlights) == 0 {
		b.WriteString(styles.MutedText.Render("  No highlights yet. Press v in the reader to select text."))
		return b.String()
	}

	for i, h := range v.book.Highlights {
		chapterTitle := ""
		if ch, ok := v.book.ChapterByID(h.ChapterID); ok {
			chapterTitle = ch.Title
		}
		mark := styles.HighlightMark(h.Color).Render(" ")
		line := fmt.Sprintf("%s %s", mark, styles.TruncateText(h.Text, v.width-20))
		if i == v.overlayCursor {
			b.WriteString(styles.ListItemSelected.Render(line))
		} else {
			b.WriteString(styles.ListItem.Render(line))
		}
		b.WriteString("\n")
		meta := chapterTitle
		if h.Note != "" {
			meta += " • " + styles.TruncateText(h.Note, v.width-30)
		}
		b.WriteString(styles.ListItemDimmed.Render("  "+meta) + "\n")
	}

	b.WriteString("\n")
	if v.noteEditing {
		b.WriteString("  " + v.noteInput.View())
	} else {
		b.WriteString(styles.Help.Render("  Enter jump • m note • c color • d delete • Esc close"))
	}
	return b.String()
}

func (v *ReaderView) renderNotes() string {
	var b strings.Builder
	b.WriteString(styles.TitleBar.Render("Book notes") + "\n\n")

	if v.noteEditing {
		b.WriteString("  " + v.noteInput.View() + "\n\n")
		b.WriteString(styles.Help.Render("  Enter save • Esc cancel"))
		return b.String()
	}

	if v.book.Notes == "" {
		b.WriteString(styles.MutedText.Render("  No notes for this book."))
	} else {
		b.WriteString(wordwrap.String(v.book.Notes, v.width-4))
	}
	b.WriteString("\n\n" + styles.Help.Render("  e edit • Esc close"))
	return b.String()
}

func (v *ReaderView) renderAsk() string {
	var b strings.Builder
	b.WriteString(styles.TitleBar.Render("Ask about this chapter") + "\n\n")
	b.WriteString("  " + v.askInput.View() + "\n\n")

	if v.aiBusy {
		b.WriteString(styles.SecondaryText.Render("  Thinking..."))
	} else if v.aiAnswer != "" {
		b.WriteString(wordwrap.String(v.aiAnswer, v.width-4))
	}
	b.WriteString("\n\n" + styles.Help.Render("  Enter ask • ^s summarize chapter • ^b summarize book • Esc close"))
	return b.String()
}

// renderProgressBar renders a compact progress bar from block glyphs
func renderProgressBar(width int, progress float64) string {
	if width < 3 {
		width = 3
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			bar.WriteString("█")
		} else {
			bar.WriteString("░")
		}
	}
	return styles.SecondaryText.Render(bar.String())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package reader

import (
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/zenreader/zen-t/pkg/models"
)

// Reading column bounds, in terminal cells.
const (
	columnPadding  = 4  // horizontal padding around the column
	minColumnWidth = 20 // narrowest readable column
	chromeLines    = 5  // header, footer and margins around the page
)

// Viewport is the pixel-equivalent of the reading area: the terminal
// window's dimensions in cells. A zero-area viewport means the reader
// is not yet mounted and no layout may be computed from it.
type Viewport struct {
	Width  int
	Height int
}

// Zero reports whether the viewport has no usable area.
func (v Viewport) Zero() bool {
	return v.Width <= 0 || v.Height <= 0
}

// BlockKind classifies one block-level node of chapter markdown.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockListItem
)

// Block is one block-level text node: the unit the interval matcher
// operates on, so per-render matching cost is bounded by node length
// rather than document length.
type Block struct {
	Kind  BlockKind
	Level int // heading level, 1-3, for BlockHeading
	Text  string
}

// PlainText returns the block's undecorated display text.
func (b Block) PlainText() string {
	if b.Kind == BlockListItem {
		return "• " + b.Text
	}
	return b.Text
}

var listItemRegex = blockListRegex()

func blockListRegex() func(string) (string, bool) {
	return func(line string) (string, bool) {
		trimmed := strings.TrimLeft(line, " \t")
		for _, marker := range []string{"- ", "* ", "+ "} {
			if strings.HasPrefix(trimmed, marker) {
				return strings.TrimSpace(trimmed[len(marker):]), true
			}
		}
		// Ordered list: digits followed by ". "
		i := 0
		for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
			i++
		}
		if i > 0 && i+1 < len(trimmed) && trimmed[i] == '.' && trimmed[i+1] == ' ' {
			return strings.TrimSpace(trimmed[i+2:]), true
		}
		return "", false
	}
}

// Blocks splits chapter markdown into block-level nodes: headings and
// list items are line-scoped, consecutive prose lines merge into one
// paragraph, blank lines separate paragraphs. Blockquote markers are
// stripped and the quoted text treated as a paragraph.
func Blocks(content string) []Block {
	var blocks []Block
	var para []string

	flush := func() {
		if len(para) > 0 {
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: strings.Join(para, " ")})
			para = nil
		}
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if m := headingRegex.FindStringSubmatch(trimmed); m != nil {
			flush()
			blocks = append(blocks, Block{
				Kind:  BlockHeading,
				Level: len(m[1]),
				Text:  strings.TrimSpace(m[2]),
			})
			continue
		}
		if text, ok := listItemRegex(line); ok {
			flush()
			blocks = append(blocks, Block{Kind: BlockListItem, Text: text})
			continue
		}
		trimmed = strings.TrimPrefix(trimmed, "> ")
		para = append(para, trimmed)
	}
	flush()
	return blocks
}

// Anchor ties a heading's slug to the flowed line it starts on.
type Anchor struct {
	ID   string
	Line int
}

// Layout is the result of flowing one chapter into the reading column:
// the wrapped display lines, heading anchors, and the derived page
// geometry. It is ephemeral per-session state, never persisted.
type Layout struct {
	Lines      []string
	Anchors    []Anchor
	PageHeight int
	TotalPages int
}

// Valid reports whether the layout was computed from a usable viewport.
func (l Layout) Valid() bool {
	return l.PageHeight > 0
}

// ClampPage forces a page index into [0, TotalPages-1].
func (l Layout) ClampPage(page int) int {
	if l.TotalPages < 1 {
		return 0
	}
	if page < 0 {
		return 0
	}
	if page >= l.TotalPages {
		return l.TotalPages - 1
	}
	return page
}

// Page returns the display lines of one page.
func (l Layout) Page(page int) []string {
	if !l.Valid() || len(l.Lines) == 0 {
		return nil
	}
	page = l.ClampPage(page)
	start := page * l.PageHeight
	if start >= len(l.Lines) {
		return nil
	}
	end := start + l.PageHeight
	if end > len(l.Lines) {
		end = len(l.Lines)
	}
	return l.Lines[start:end]
}

// PageForAnchor returns the page containing the first heading with the
// given slug. Duplicate slugs resolve to the first occurrence.
func (l Layout) PageForAnchor(id string) (int, bool) {
	for _, a := range l.Anchors {
		if a.ID == id {
			return l.ClampPage(a.Line / l.PageHeight), true
		}
	}
	return 0, false
}

// Decorator transforms a block's plain text into its decorated display
// form. The decorated text must keep the block's visible runes intact
// (styling sequences are zero-width), so the decorated flow wraps at
// the same points the measurement flow did.
type Decorator func(b Block) string

// ColumnWidth computes the reading column width for a viewport and
// font size ordinal. Larger ordinals scale the column down, emulating
// larger glyphs: fewer cells per line, more lines, more pages.
func ColumnWidth(viewportWidth, fontSize int) int {
	base := viewportWidth - columnPadding
	scale := 1.0 + 0.125*float64(fontSize-models.MinFontSize)
	w := int(float64(base) / scale)
	if w < minColumnWidth {
		w = minColumnWidth
	}
	if w > base {
		w = base
	}
	return w
}

// Flow lays one chapter's markdown out in the reading column and
// slices the flowed lines into viewport-height pages. A zero-area
// viewport yields an invalid layout and the caller must keep its
// previous page count (no divide-by-zero, no update). TotalPages is
// always at least 1 for a valid layout, even for empty content.
//
// The serif font family indents paragraph first lines; sans separates
// paragraphs with a blank line instead. Both change flow length, which
// is why a font family switch forces re-measurement.
func Flow(content string, vp Viewport, st models.ReaderSettings, decorate Decorator) Layout {
	if vp.Zero() {
		return Layout{}
	}

	st = st.Clamp()
	column := ColumnWidth(vp.Width, st.FontSize)
	pageHeight := vp.Height - chromeLines
	if pageHeight < 1 {
		pageHeight = 1
	}

	l := Layout{PageHeight: pageHeight}
	serif := st.FontFamily == models.FontSerif

	prevKind := BlockKind(-1)
	for _, b := range Blocks(content) {
		text := b.PlainText()
		if decorate != nil {
			text = decorate(b)
		}

		switch b.Kind {
		case BlockHeading:
			if len(l.Lines) > 0 {
				l.Lines = append(l.Lines, "")
			}
			l.Anchors = append(l.Anchors, Anchor{ID: Slugify(b.Text), Line: len(l.Lines)})
		case BlockParagraph:
			if serif {
				if prevKind == BlockParagraph {
					text = "  " + text
				}
			} else if len(l.Lines) > 0 {
				l.Lines = append(l.Lines, "")
			}
		case BlockListItem:
			if !serif && prevKind != BlockListItem && len(l.Lines) > 0 {
				l.Lines = append(l.Lines, "")
			}
		}

		wrapped := wordwrap.String(text, column)
		l.Lines = append(l.Lines, strings.Split(wrapped, "\n")...)
		if b.Kind == BlockHeading {
			l.Lines = append(l.Lines, "")
		}
		prevKind = b.Kind
	}

	l.TotalPages = (len(l.Lines) + pageHeight - 1) / pageHeight
	if l.TotalPages < 1 {
		l.TotalPages = 1
	}
	return l
}

// DefaultMeasureDelays is the settle schedule for re-measurement after
// the initial synchronous pass.
var DefaultMeasureDelays = []time.Duration{
	100 * time.Millisecond,
	300 * time.Millisecond,
	800 * time.Millisecond,
}

// MeasurePass is one scheduled re-measurement. The generation token
// identifies the chapter/viewport epoch it belongs to; passes from a
// stale generation must be discarded instead of applied.
type MeasurePass struct {
	Generation int
	Delay      time.Duration
}

// Measurer coordinates the staggered re-measurement loop that lets the
// page count converge after content settles. The schedule is a
// pragmatic settle heuristic, not a correctness guarantee; convergence
// is detected by two consecutive equal measurements.
type Measurer struct {
	delays     []time.Duration
	generation int
	lastTotal  int
}

// NewMeasurer returns a measurer with the given settle schedule, or
// the default schedule if none is given.
func NewMeasurer(delays ...time.Duration) *Measurer {
	if len(delays) == 0 {
		delays = DefaultMeasureDelays
	}
	return &Measurer{delays: delays, lastTotal: -1}
}

// Begin starts a new measurement epoch, invalidating any outstanding
// passes, and returns the passes to schedule.
func (m *Measurer) Begin() []MeasurePass {
	m.generation++
	m.lastTotal = -1
	passes := make([]MeasurePass, len(m.delays))
	for i, d := range m.delays {
		passes[i] = MeasurePass{Generation: m.generation, Delay: d}
	}
	return passes
}

// Cancel invalidates all outstanding passes without scheduling new
// ones. Must be called when the chapter changes or the reader is torn
// down, so a stale pass cannot apply its page count to different
// content.
func (m *Measurer) Cancel() {
	m.generation++
}

// Valid reports whether a pass belongs to the current epoch.
func (m *Measurer) Valid(generation int) bool {
	return generation == m.generation
}

// Observe records a measured page count and reports whether it changed
// since the previous observation in this epoch.
func (m *Measurer) Observe(totalPages int) (changed bool) {
	changed = totalPages != m.lastTotal
	m.lastTotal = totalPages
	return changed
}

package reader

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/zenreader/zen-t/pkg/models"
)

func testSettings() models.ReaderSettings {
	return models.DefaultSettings()
}

func TestBlocks(t *testing.T) {
	content := "# Title\n\nFirst line\nsecond line.\n\n- one\n- two\n\n> quoted\n"
	got := Blocks(content)
	want := []Block{
		{Kind: BlockHeading, Level: 1, Text: "Title"},
		{Kind: BlockParagraph, Text: "First line second line."},
		{Kind: BlockListItem, Text: "one"},
		{Kind: BlockListItem, Text: "two"},
		{Kind: BlockParagraph, Text: "quoted"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks() = %+v, want %+v", got, want)
	}
}

func TestBlocksOrderedList(t *testing.T) {
	got := Blocks("1. first\n2. second\n")
	want := []Block{
		{Kind: BlockListItem, Text: "first"},
		{Kind: BlockListItem, Text: "second"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks() = %+v, want %+v", got, want)
	}
}

func TestFlowZeroViewport(t *testing.T) {
	for _, vp := range []Viewport{{}, {Width: 80}, {Height: 24}, {Width: -1, Height: 24}} {
		l := Flow("some text", vp, testSettings(), nil)
		if l.Valid() {
			t.Errorf("Flow(%+v) produced a valid layout", vp)
		}
	}
}

func TestFlowEmptyContent(t *testing.T) {
	l := Flow("", Viewport{Width: 80, Height: 24}, testSettings(), nil)
	if !l.Valid() {
		t.Fatal("expected a valid layout")
	}
	if l.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", l.TotalPages)
	}
}

func TestFlowDeterministic(t *testing.T) {
	content := "## Heading\n\n" + strings.Repeat("lorem ipsum dolor sit amet ", 30)
	vp := Viewport{Width: 72, Height: 20}
	a := Flow(content, vp, testSettings(), nil)
	b := Flow(content, vp, testSettings(), nil)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different layouts")
	}
}

func TestFlowPageCount(t *testing.T) {
	content := strings.Repeat("word ", 400)
	vp := Viewport{Width: 60, Height: 15}
	l := Flow(content, vp, testSettings(), nil)
	wantPages := (len(l.Lines) + l.PageHeight - 1) / l.PageHeight
	if l.TotalPages != wantPages {
		t.Errorf("TotalPages = %d, want %d for %d lines at height %d",
			l.TotalPages, wantPages, len(l.Lines), l.PageHeight)
	}
}

func TestFlowFontSizeIncreasesPages(t *testing.T) {
	content := strings.Repeat("lorem ipsum dolor sit amet ", 40)
	vp := Viewport{Width: 100, Height: 10}

	small := testSettings()
	small.FontSize = models.MinFontSize
	large := testSettings()
	large.FontSize = models.MaxFontSize

	ps := Flow(content, vp, small, nil).TotalPages
	pl := Flow(content, vp, large, nil).TotalPages
	if pl <= ps {
		t.Errorf("larger font should produce more pages: size %d -> %d pages, size %d -> %d pages",
			small.FontSize, ps, large.FontSize, pl)
	}
}

func TestFlowFontFamilyChangesFlow(t *testing.T) {
	content := "One.\n\nTwo.\n"
	vp := Viewport{Width: 80, Height: 24}

	serif := testSettings()
	serif.FontFamily = models.FontSerif
	sans := testSettings()
	sans.FontFamily = models.FontSans

	ls := Flow(content, vp, serif, nil)
	la := Flow(content, vp, sans, nil)
	if len(la.Lines) <= len(ls.Lines) {
		t.Errorf("sans should separate paragraphs with blank lines: serif %d lines, sans %d lines",
			len(ls.Lines), len(la.Lines))
	}
}

func TestFlowAnchors(t *testing.T) {
	content := "## Alpha\n\n" + strings.Repeat("filler text here ", 100) + "\n\n## Beta\n\nmore.\n"
	l := Flow(content, Viewport{Width: 60, Height: 12}, testSettings(), nil)

	if len(l.Anchors) != 2 {
		t.Fatalf("expected 2 anchors, got %d", len(l.Anchors))
	}
	if l.Anchors[0].ID != "alpha" || l.Anchors[1].ID != "beta" {
		t.Errorf("anchor ids = %q, %q", l.Anchors[0].ID, l.Anchors[1].ID)
	}

	pageAlpha, ok := l.PageForAnchor("alpha")
	if !ok || pageAlpha != 0 {
		t.Errorf("PageForAnchor(alpha) = %d, %v", pageAlpha, ok)
	}
	pageBeta, ok := l.PageForAnchor("beta")
	if !ok || pageBeta <= pageAlpha {
		t.Errorf("PageForAnchor(beta) = %d, %v; want a later page", pageBeta, ok)
	}
	if _, ok := l.PageForAnchor("missing"); ok {
		t.Error("found a page for an unknown anchor")
	}
}

func TestFlowDecoratedSameLineCount(t *testing.T) {
	content := "## Head\n\n" + strings.Repeat("steady words flowing along ", 25)
	vp := Viewport{Width: 64, Height: 18}

	plain := Flow(content, vp, testSettings(), nil)
	decorated := Flow(content, vp, testSettings(), func(b Block) string {
		// ANSI styling is zero-width for wrapping.
		return "\x1b[1m" + b.PlainText() + "\x1b[0m"
	})
	if len(decorated.Lines) != len(plain.Lines) {
		t.Errorf("decorated flow has %d lines, plain has %d", len(decorated.Lines), len(plain.Lines))
	}
}

func TestColumnWidth(t *testing.T) {
	if w := ColumnWidth(100, models.MinFontSize); w != 96 {
		t.Errorf("ColumnWidth(100, min) = %d, want 96", w)
	}
	if w := ColumnWidth(25, models.MaxFontSize); w != 20 {
		t.Errorf("narrow viewport should clamp to minimum, got %d", w)
	}
	for size := models.MinFontSize; size <= models.MaxFontSize; size++ {
		if w := ColumnWidth(120, size); w > 116 {
			t.Errorf("ColumnWidth(120, %d) = %d exceeds the padded width", size, w)
		}
	}
}

func TestLayoutClampPage(t *testing.T) {
	l := Layout{PageHeight: 5, TotalPages: 3}
	tests := []struct{ in, want int }{
		{-1, 0}, {0, 0}, {2, 2}, {3, 2}, {99, 2},
	}
	for _, tt := range tests {
		if got := l.ClampPage(tt.in); got != tt.want {
			t.Errorf("ClampPage(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLayoutPage(t *testing.T) {
	l := Layout{
		Lines:      []string{"a", "b", "c", "d", "e"},
		PageHeight: 2,
		TotalPages: 3,
	}
	if got := l.Page(0); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Page(0) = %v", got)
	}
	if got := l.Page(2); !reflect.DeepEqual(got, []string{"e"}) {
		t.Errorf("Page(2) = %v", got)
	}
}

func TestMeasurer(t *testing.T) {
	m := NewMeasurer(10*time.Millisecond, 20*time.Millisecond)

	passes := m.Begin()
	if len(passes) != 2 {
		t.Fatalf("expected 2 passes, got %d", len(passes))
	}
	for _, p := range passes {
		if !m.Valid(p.Generation) {
			t.Errorf("pass generation %d should be valid", p.Generation)
		}
	}

	if !m.Observe(10) {
		t.Error("first observation should report a change")
	}
	if m.Observe(10) {
		t.Error("repeated page count should report convergence")
	}
	if !m.Observe(12) {
		t.Error("changed page count should report a change")
	}

	stale := passes[0].Generation
	m.Cancel()
	if m.Valid(stale) {
		t.Error("cancel should invalidate outstanding passes")
	}

	next := m.Begin()
	if m.Valid(stale) {
		t.Error("a new epoch should invalidate the old one")
	}
	if !m.Valid(next[0].Generation) {
		t.Error("new passes should be valid")
	}
}

func TestMeasurerDefaultSchedule(t *testing.T) {
	m := NewMeasurer()
	passes := m.Begin()
	if len(passes) != len(DefaultMeasureDelays) {
		t.Fatalf("expected %d passes, got %d", len(DefaultMeasureDelays), len(passes))
	}
	for i, p := range passes {
		if p.Delay != DefaultMeasureDelays[i] {
			t.Errorf("pass %d delay = %v, want %v", i, p.Delay, DefaultMeasureDelays[i])
		}
	}
}

// Package reader implements the core reading engine: text interval
// matching for search and highlight decoration, heading anchor
// indexing, column-flow pagination, page/chapter navigation, swipe
// gesture interpretation, and the highlight persistence adapter.
//
// Everything in this package is pure computation over strings and
// coordinates; terminal rendering and persistence live elsewhere.
package reader

import (
	"regexp"
	"sort"
	"strings"

	"github.com/zenreader/zen-t/pkg/models"
)

// SegmentKind classifies one run of a partitioned text node.
type SegmentKind int

const (
	// SegmentLiteral is undecorated text.
	SegmentLiteral SegmentKind = iota
	// SegmentSearch is a case-insensitive match of the active search query.
	SegmentSearch
	// SegmentNote is a match of a stored highlight's text.
	SegmentNote
)

// Segment is one run of a text node after decoration matching. Note
// segments carry the owning highlight's id and its 1-based display
// index among the chapter's highlights.
type Segment struct {
	Kind        SegmentKind
	Text        string
	HighlightID string
	NoteIndex   int
}

// span is a candidate decorated interval before overlap resolution.
type span struct {
	start, end  int
	kind        SegmentKind
	highlightID string
	noteIndex   int
}

// PartitionText splits the text of one rendered node (a paragraph,
// heading, or list item) into literal and decorated segments. The
// search query matches case-insensitively; highlight texts match with
// whitespace runs treated as interchangeable, so a highlight captured
// across a soft line wrap still anchors.
//
// Overlaps are resolved by a left-to-right sweep in start-offset order:
// a candidate is accepted only if it begins at or after the end of the
// previously accepted one. The output is deterministic for a fixed
// (text, query, highlights) input.
func PartitionText(text, query string, highlights []models.Highlight) []Segment {
	if text == "" {
		return nil
	}
	spans := collectSpans(text, query, highlights)
	if len(spans) == 0 {
		return []Segment{{Kind: SegmentLiteral, Text: text}}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})

	var out []Segment
	cursor := 0
	for _, sp := range spans {
		if sp.start < cursor {
			continue
		}
		if sp.start > cursor {
			out = append(out, Segment{Kind: SegmentLiteral, Text: text[cursor:sp.start]})
		}
		out = append(out, Segment{
			Kind:        sp.kind,
			Text:        text[sp.start:sp.end],
			HighlightID: sp.highlightID,
			NoteIndex:   sp.noteIndex,
		})
		cursor = sp.end
	}
	if cursor < len(text) {
		out = append(out, Segment{Kind: SegmentLiteral, Text: text[cursor:]})
	}
	return out
}

// collectSpans gathers all candidate decorated intervals for the node.
func collectSpans(text, query string, highlights []models.Highlight) []span {
	var spans []span

	if q := strings.TrimSpace(query); q != "" {
		lower := strings.ToLower(text)
		needle := strings.ToLower(q)
		offset := 0
		for {
			idx := strings.Index(lower[offset:], needle)
			if idx < 0 {
				break
			}
			start := offset + idx
			spans = append(spans, span{start: start, end: start + len(needle), kind: SegmentSearch})
			offset = start + len(needle)
		}
	}

	for i, h := range highlights {
		if strings.TrimSpace(h.Text) == "" {
			continue
		}
		re := matchPattern(h.Text)
		if re == nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, span{
				start:       loc[0],
				end:         loc[1],
				kind:        SegmentNote,
				highlightID: h.ID,
				noteIndex:   i + 1,
			})
		}
	}
	return spans
}

// matchPattern builds the whitespace-tolerant literal matcher for a
// highlight's stored text: every whitespace run becomes \s+, everything
// else is quoted. Returns nil for text that reduces to nothing.
func matchPattern(text string) *regexp.Regexp {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = regexp.QuoteMeta(f)
	}
	re, err := regexp.Compile(strings.Join(quoted, `\s+`))
	if err != nil {
		return nil
	}
	return re
}

// NormalizeSpace collapses whitespace runs to single spaces and trims
// the ends, matching how highlight texts are compared and stored.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

package models

import (
	"fmt"
	"time"
)

// Book source constants
const (
	SourceUpload  = "upload"
	SourceYouTube = "youtube"
	SourceText    = "text"
)

// Chapter is one titled, ordered content unit of a Book. Content is
// markdown-formatted plain text and is immutable once the book is created
// by its import pipeline.
type Chapter struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// Highlight is a user-created annotation anchored to a literal text span
// within one chapter. Anchoring is by content match, not stored offsets:
// the same text is re-located in the chapter every time it is displayed.
type Highlight struct {
	ID        string    `json:"id"`
	ChapterID string    `json:"chapter_id"`
	Text      string    `json:"text"`
	Note      string    `json:"note"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// Book is a stored book record in the library.
type Book struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Chapters   []Chapter   `json:"chapters"`
	FileName   string      `json:"file_name,omitempty"`
	DateAdded  time.Time   `json:"date_added"`
	Source     string      `json:"source,omitempty"`
	Language   string      `json:"language,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	Highlights []Highlight `json:"highlights,omitempty"`
}

// Validate checks the structural invariants of a book record: a non-empty
// identifier and title, at least one chapter, and chapter order values
// forming a dense 0..N-1 sequence matching array position.
func (b *Book) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("book has no id")
	}
	if b.Title == "" {
		return fmt.Errorf("book %s has no title", b.ID)
	}
	if len(b.Chapters) == 0 {
		return fmt.Errorf("book %q has no chapters", b.Title)
	}
	for i, ch := range b.Chapters {
		if ch.ID == "" {
			return fmt.Errorf("book %q: chapter %d has no id", b.Title, i)
		}
		if ch.Order != i {
			return fmt.Errorf("book %q: chapter %d has order %d", b.Title, i, ch.Order)
		}
	}
	return nil
}

// ChapterIndex returns the position of the chapter with the given id,
// or -1 if the book has no such chapter.
func (b *Book) ChapterIndex(id string) int {
	for i, ch := range b.Chapters {
		if ch.ID == id {
			return i
		}
	}
	return -1
}

// ChapterByID returns the chapter with the given id.
func (b *Book) ChapterByID(id string) (Chapter, bool) {
	if i := b.ChapterIndex(id); i >= 0 {
		return b.Chapters[i], true
	}
	return Chapter{}, false
}

// HighlightsForChapter returns the highlights owned by one chapter, in
// stored order. The 1-based position in this slice is the highlight's
// display index in the reader.
func (b *Book) HighlightsForChapter(chapterID string) []Highlight {
	var out []Highlight
	for _, h := range b.Highlights {
		if h.ChapterID == chapterID {
			out = append(out, h)
		}
	}
	return out
}

// FullContent joins all chapter contents, used for whole-book AI
// operations.
func (b *Book) FullContent() string {
	var out string
	for i, ch := range b.Chapters {
		if i > 0 {
			out += "\n\n"
		}
		out += ch.Content
	}
	return out
}

// Theme names for the reader color schemes.
const (
	ThemeLight    = "light"
	ThemeSepia    = "sepia"
	ThemeDark     = "dark"
	ThemeForest   = "forest"
	ThemeMidnight = "midnight"
)

// Font family constants
const (
	FontSerif = "serif"
	FontSans  = "sans"
)

// Font size bounds. The ordinal scale maps to reading column width:
// larger sizes flow fewer characters per line and so produce more pages.
const (
	MinFontSize     = 1
	MaxFontSize     = 8
	DefaultFontSize = 3
)

// ReaderSettings holds the typography and theme preferences for the
// reading session. Changing any field invalidates the current page
// layout and forces a re-measurement.
type ReaderSettings struct {
	Theme      string `json:"theme" yaml:"theme"`
	FontSize   int    `json:"font_size" yaml:"font_size"`
	FontFamily string `json:"font_family" yaml:"font_family"`
}

// DefaultSettings returns the out-of-the-box reader settings.
func DefaultSettings() ReaderSettings {
	return ReaderSettings{
		Theme:      ThemeLight,
		FontSize:   DefaultFontSize,
		FontFamily: FontSerif,
	}
}

// Clamp returns a copy with all fields forced into their valid ranges.
func (s ReaderSettings) Clamp() ReaderSettings {
	if s.FontSize < MinFontSize {
		s.FontSize = MinFontSize
	}
	if s.FontSize > MaxFontSize {
		s.FontSize = MaxFontSize
	}
	switch s.Theme {
	case ThemeLight, ThemeSepia, ThemeDark, ThemeForest, ThemeMidnight:
	default:
		s.Theme = ThemeLight
	}
	if s.FontFamily != FontSans {
		s.FontFamily = FontSerif
	}
	return s
}

// HighlightColors is the closed set of highlight color tags, in the
// order the reader cycles through them.
var HighlightColors = []string{"yellow", "green", "blue", "red"}

// DefaultHighlightColor is the color assigned to new highlights.
const DefaultHighlightColor = "yellow"

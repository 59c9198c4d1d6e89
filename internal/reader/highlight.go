package reader

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zenreader/zen-t/pkg/models"
)

// BookWriter persists an updated book record. Implemented by the
// library store.
type BookWriter interface {
	Put(book *models.Book) error
}

// NewHighlight builds a highlight for a span of selected text. The
// text is whitespace-normalized before storage so it re-anchors across
// soft line wraps.
func NewHighlight(chapterID, text string) models.Highlight {
	return models.Highlight{
		ID:        uuid.New().String(),
		ChapterID: chapterID,
		Text:      NormalizeSpace(text),
		Color:     models.DefaultHighlightColor,
		CreatedAt: time.Now(),
	}
}

// Annotator applies highlight and note mutations to a book and writes
// the record through to the store. Mutations are prepared on a copy of
// the highlight list and committed to the in-memory book only after
// the write succeeds, so a failed save leaves the book unchanged and a
// retry cannot duplicate the annotation.
type Annotator struct {
	store BookWriter
}

// NewAnnotator returns an annotator writing through the given store.
func NewAnnotator(store BookWriter) *Annotator {
	return &Annotator{store: store}
}

func (a *Annotator) commit(book *models.Book, highlights []models.Highlight) error {
	updated := *book
	updated.Highlights = highlights
	if err := a.store.Put(&updated); err != nil {
		return fmt.Errorf("saving highlights: %w", err)
	}
	book.Highlights = highlights
	return nil
}

// Add appends a new highlight for the selected text and persists the
// book. Empty selections are rejected. Submitting the same selection
// twice returns the existing highlight instead of storing a duplicate.
func (a *Annotator) Add(book *models.Book, chapterID, text string) (models.Highlight, error) {
	h := NewHighlight(chapterID, text)
	if h.Text == "" {
		return models.Highlight{}, fmt.Errorf("empty selection")
	}
	for _, existing := range book.Highlights {
		if existing.ChapterID == chapterID && existing.Text == h.Text {
			return existing, nil
		}
	}
	next := make([]models.Highlight, len(book.Highlights), len(book.Highlights)+1)
	copy(next, book.Highlights)
	next = append(next, h)
	if err := a.commit(book, next); err != nil {
		return models.Highlight{}, err
	}
	return h, nil
}

// UpdateNote replaces the note text of one highlight and persists the
// book.
func (a *Annotator) UpdateNote(book *models.Book, highlightID, note string) error {
	return a.mutate(book, highlightID, func(h *models.Highlight) {
		h.Note = note
	})
}

// SetColor changes one highlight's color tag and persists the book.
func (a *Annotator) SetColor(book *models.Book, highlightID, color string) error {
	valid := false
	for _, c := range models.HighlightColors {
		if c == color {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown highlight color %q", color)
	}
	return a.mutate(book, highlightID, func(h *models.Highlight) {
		h.Color = color
	})
}

// Remove deletes one highlight and persists the book.
func (a *Annotator) Remove(book *models.Book, highlightID string) error {
	next := make([]models.Highlight, 0, len(book.Highlights))
	found := false
	for _, h := range book.Highlights {
		if h.ID == highlightID {
			found = true
			continue
		}
		next = append(next, h)
	}
	if !found {
		return fmt.Errorf("no highlight %s", highlightID)
	}
	return a.commit(book, next)
}

func (a *Annotator) mutate(book *models.Book, highlightID string, fn func(*models.Highlight)) error {
	next := make([]models.Highlight, len(book.Highlights))
	copy(next, book.Highlights)
	for i := range next {
		if next[i].ID == highlightID {
			fn(&next[i])
			return a.commit(book, next)
		}
	}
	return fmt.Errorf("no highlight %s", highlightID)
}

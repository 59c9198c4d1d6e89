package reader

import (
	"errors"
	"testing"
	"time"

	"github.com/zenreader/zen-t/pkg/models"
)

type fakeStore struct {
	puts []models.Book
	err  error
}

func (s *fakeStore) Put(book *models.Book) error {
	if s.err != nil {
		return s.err
	}
	s.puts = append(s.puts, *book)
	return nil
}

func testBook() *models.Book {
	return &models.Book{
		ID:    "b1",
		Title: "Test Book",
		Chapters: []models.Chapter{
			{ID: "c1", Title: "One", Content: "The quick brown fox.", Order: 0},
		},
		DateAdded: time.Now(),
	}
}

func TestAnnotatorAdd(t *testing.T) {
	store := &fakeStore{}
	a := NewAnnotator(store)
	book := testBook()

	h, err := a.Add(book, "c1", "quick   brown")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if h.Text != "quick brown" {
		t.Errorf("highlight text = %q, want normalized %q", h.Text, "quick brown")
	}
	if h.Color != models.DefaultHighlightColor {
		t.Errorf("color = %q, want %q", h.Color, models.DefaultHighlightColor)
	}
	if len(book.Highlights) != 1 {
		t.Fatalf("book has %d highlights, want 1", len(book.Highlights))
	}
	if len(store.puts) != 1 || len(store.puts[0].Highlights) != 1 {
		t.Error("store did not receive the updated record")
	}
}

func TestAnnotatorAddDuplicate(t *testing.T) {
	store := &fakeStore{}
	a := NewAnnotator(store)
	book := testBook()

	first, err := a.Add(book, "c1", "quick brown")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	again, err := a.Add(book, "c1", "quick   brown")
	if err != nil {
		t.Fatalf("duplicate Add: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("duplicate add returned a new highlight %q, want existing %q", again.ID, first.ID)
	}
	if len(book.Highlights) != 1 {
		t.Fatalf("book has %d highlights, want 1", len(book.Highlights))
	}
	if len(store.puts) != 1 {
		t.Errorf("store written %d times, want 1", len(store.puts))
	}
}

func TestAnnotatorAddEmptySelection(t *testing.T) {
	a := NewAnnotator(&fakeStore{})
	book := testBook()
	if _, err := a.Add(book, "c1", "   \n  "); err == nil {
		t.Error("expected an error for an empty selection")
	}
	if len(book.Highlights) != 0 {
		t.Error("book mutated on rejected add")
	}
}

func TestAnnotatorAddStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	a := NewAnnotator(store)
	book := testBook()

	if _, err := a.Add(book, "c1", "quick brown"); err == nil {
		t.Fatal("expected the store error to surface")
	}
	if len(book.Highlights) != 0 {
		t.Error("failed save must leave the book unchanged")
	}

	// Retry after the store recovers: exactly one highlight, no
	// duplicate from the failed attempt.
	store.err = nil
	if _, err := a.Add(book, "c1", "quick brown"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(book.Highlights) != 1 {
		t.Errorf("book has %d highlights after retry, want 1", len(book.Highlights))
	}
}

func TestAnnotatorUpdateNote(t *testing.T) {
	store := &fakeStore{}
	a := NewAnnotator(store)
	book := testBook()

	h, err := a.Add(book, "c1", "quick brown")
	if err != nil {
		t.Fatal(err)
	}
	if err := a.UpdateNote(book, h.ID, "interesting"); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if book.Highlights[0].Note != "interesting" {
		t.Errorf("note = %q", book.Highlights[0].Note)
	}
	if err := a.UpdateNote(book, "missing", "x"); err == nil {
		t.Error("expected an error for an unknown highlight")
	}
}

func TestAnnotatorSetColor(t *testing.T) {
	a := NewAnnotator(&fakeStore{})
	book := testBook()
	h, err := a.Add(book, "c1", "fox")
	if err != nil {
		t.Fatal(err)
	}

	if err := a.SetColor(book, h.ID, "green"); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	if book.Highlights[0].Color != "green" {
		t.Errorf("color = %q", book.Highlights[0].Color)
	}
	if err := a.SetColor(book, h.ID, "chartreuse"); err == nil {
		t.Error("expected an error for an unknown color")
	}
}

func TestAnnotatorRemove(t *testing.T) {
	store := &fakeStore{}
	a := NewAnnotator(store)
	book := testBook()
	h, err := a.Add(book, "c1", "fox")
	if err != nil {
		t.Fatal(err)
	}

	if err := a.Remove(book, h.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(book.Highlights) != 0 {
		t.Errorf("book has %d highlights, want 0", len(book.Highlights))
	}
	if err := a.Remove(book, h.ID); err == nil {
		t.Error("expected an error removing twice")
	}
}

func TestHighlightReanchorsAcrossWrap(t *testing.T) {
	// Selection captured across a soft wrap carries collapsed
	// whitespace; it must still decorate the original text.
	content := "The quick brown\nfox jumps over the lazy dog."
	h := NewHighlight("c1", "brown\nfox jumps")

	segs := PartitionText(content, "", []models.Highlight{h})
	found := false
	for _, s := range segs {
		if s.Kind == SegmentNote && s.HighlightID == h.ID {
			found = true
			if s.Text != "brown\nfox jumps" {
				t.Errorf("anchored span = %q", s.Text)
			}
		}
	}
	if !found {
		t.Error("highlight did not re-anchor in the chapter text")
	}
}

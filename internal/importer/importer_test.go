package importer

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/zenreader/zen-t/pkg/models"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewBookTitleFromHeading(t *testing.T) {
	book, err := NewBook("notes.md", "# My Great Book\n\nSome prose.\n", models.SourceUpload)
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}
	if book.Title != "My Great Book" {
		t.Errorf("title = %q", book.Title)
	}
	if len(book.Chapters) != 1 || book.Chapters[0].Title != "Full Text" || book.Chapters[0].Order != 0 {
		t.Errorf("chapters = %+v", book.Chapters)
	}
	if err := book.Validate(); err != nil {
		t.Errorf("built book fails validation: %v", err)
	}
}

func TestNewBookTitleFromFileName(t *testing.T) {
	book, err := NewBook("/tmp/walden.txt", "I went to the woods.", models.SourceUpload)
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}
	if book.Title != "walden" {
		t.Errorf("title = %q", book.Title)
	}
	if book.FileName != "walden.txt" {
		t.Errorf("file name = %q", book.FileName)
	}
}

func TestNewBookRejectsEmpty(t *testing.T) {
	if _, err := NewBook("empty.txt", "   \n  ", models.SourceUpload); err == nil {
		t.Error("expected an error for empty content")
	}
}

func TestNewBookFromText(t *testing.T) {
	book, err := NewBookFromText("Pasted Notes", "line one\nline two")
	if err != nil {
		t.Fatalf("NewBookFromText: %v", err)
	}
	if book.Title != "Pasted Notes" || book.Source != models.SourceText {
		t.Errorf("book = %+v", book)
	}
	if book.FileName != "" {
		t.Errorf("pasted text should have no file name, got %q", book.FileName)
	}
}

func TestExtractTextPlainFallback(t *testing.T) {
	path := writeTemp(t, "notes.rst", "fallback content")
	got, err := ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "fallback content" {
		t.Errorf("got %q", got)
	}
}

func TestSubtitleExtractSRT(t *testing.T) {
	srt := `1
00:00:01,000 --> 00:00:04,000
Hello there.

2
00:00:04,500 --> 00:00:07,000
General Kenobi!
`
	path := writeTemp(t, "clip.srt", srt)
	got, err := ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	want := "Hello there. General Kenobi!"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSubtitleExtractVTT(t *testing.T) {
	vtt := `WEBVTT

NOTE a comment

00:01.000 --> 00:04.000
<v Narrator>Once upon a time</v>

00:04.000 --> 00:07.000
there was a reader.
`
	path := writeTemp(t, "clip.vtt", vtt)
	got, err := ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	want := "Once upon a time there was a reader."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDocxExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	got, err := ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	want := "First paragraph.\n\nSecond paragraph."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTitleFromContent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"# Title\nbody", "Title"},
		{"intro\n# Later Title\n", "Later Title"},
		{"## Only H2\n", ""},
		{"no headings", ""},
	}
	for _, tt := range tests {
		if got := TitleFromContent(tt.in); got != tt.want {
			t.Errorf("TitleFromContent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

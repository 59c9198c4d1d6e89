package importer

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zenreader/zen-t/pkg/models"
)

// MarkdownFormat implements Format for markdown files. Extraction is
// the identity: the reader renders markdown natively.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
	Register(&TextFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }
func (f *MarkdownFormat) Extract(filename string) (string, error) {
	return readFileString(filename)
}

// TextFormat implements Format for plain text files.
type TextFormat struct{}

func (f *TextFormat) Name() string         { return "Plain text" }
func (f *TextFormat) Extensions() []string { return []string{".txt"} }
func (f *TextFormat) Extract(filename string) (string, error) {
	return readFileString(filename)
}

var titleRegex = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// TitleFromContent returns the first H1 heading, or "" if there is
// none.
func TitleFromContent(markdown string) string {
	if m := titleRegex.FindStringSubmatch(markdown); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// NewBook builds a single-chapter book record from extracted text. The
// title comes from the first H1 heading, falling back to the file name
// without its extension.
func NewBook(fileName, content, source string) (*models.Book, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("document %q contains no text", fileName)
	}

	title := TitleFromContent(content)
	if title == "" {
		base := filepath.Base(fileName)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if title == "" {
		title = "Untitled"
	}

	return &models.Book{
		ID:    uuid.New().String(),
		Title: title,
		Chapters: []models.Chapter{
			{
				ID:      uuid.New().String(),
				Title:   "Full Text",
				Content: content,
				Order:   0,
			},
		},
		FileName:  filepath.Base(fileName),
		DateAdded: time.Now(),
		Source:    source,
	}, nil
}

// ImportFile extracts a document and wraps it as a book.
func ImportFile(path string) (*models.Book, error) {
	content, err := ExtractText(path)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}
	return NewBook(path, content, models.SourceUpload)
}

// NewBookFromText wraps pasted text as a book with the given title.
func NewBookFromText(title, text string) (*models.Book, error) {
	book, err := NewBook(title, text, models.SourceText)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) != "" {
		book.Title = strings.TrimSpace(title)
	}
	book.FileName = ""
	return book, nil
}

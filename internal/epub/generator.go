// Package epub exports book records as EPUB files.
package epub

import (
	"bytes"
	"fmt"

	epub "github.com/go-shiori/go-epub"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/zenreader/zen-t/pkg/models"
)

// Generator converts stored books to EPUB, rendering each chapter's
// markdown to XHTML.
type Generator struct {
	markdown goldmark.Markdown
}

// NewGenerator creates a generator with GFM markdown rendering.
func NewGenerator() *Generator {
	return &Generator{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Generate writes the book as an EPUB to outPath. Each chapter becomes
// one section, in reading order.
func (g *Generator) Generate(book *models.Book, outPath string) error {
	if err := book.Validate(); err != nil {
		return err
	}

	e, err := epub.NewEpub(book.Title)
	if err != nil {
		return fmt.Errorf("failed to create epub: %w", err)
	}
	e.SetAuthor("zen-t")
	if book.Language != "" {
		e.SetLang(book.Language)
	} else {
		e.SetLang("en")
	}

	for _, ch := range book.Chapters {
		var buf bytes.Buffer
		if err := g.markdown.Convert([]byte(ch.Content), &buf); err != nil {
			return fmt.Errorf("rendering chapter %q: %w", ch.Title, err)
		}
		body := "<h1>" + ch.Title + "</h1>\n" + buf.String()
		if _, err := e.AddSection(body, ch.Title, "", ""); err != nil {
			return fmt.Errorf("adding chapter %q: %w", ch.Title, err)
		}
	}

	if err := e.Write(outPath); err != nil {
		return fmt.Errorf("failed to write epub file: %w", err)
	}
	return nil
}

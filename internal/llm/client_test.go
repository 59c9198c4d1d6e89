package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zenreader/zen-t/pkg/models"
)

func completionServer(t *testing.T, handler func(model string) (string, int)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		content, status := handler(req.Model)
		w.WriteHeader(status)
		if status != http.StatusOK {
			json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": content}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
}

func TestGenerateBook(t *testing.T) {
	srv := completionServer(t, func(model string) (string, int) {
		return "TITLE: The Sea\n\n# First Voyage\n\nWaves.\n\n# Second Voyage\n\nMore waves.", http.StatusOK
	})
	defer srv.Close()

	c := NewClient(srv.URL, "key", []string{"pro"}, []string{"flash"}, 5*time.Second)
	book, err := c.GenerateBook(context.Background(), "raw document text", "")
	if err != nil {
		t.Fatalf("GenerateBook: %v", err)
	}
	if book.Title != "The Sea" {
		t.Errorf("title = %q", book.Title)
	}
	if len(book.Chapters) != 2 {
		t.Fatalf("got %d chapters", len(book.Chapters))
	}
	if book.Chapters[0].Title != "First Voyage" || book.Chapters[1].Order != 1 {
		t.Errorf("chapters = %+v", book.Chapters)
	}
	if err := book.Validate(); err != nil {
		t.Errorf("generated book fails validation: %v", err)
	}
}

func TestGenerateBookNoTitleLine(t *testing.T) {
	srv := completionServer(t, func(model string) (string, int) {
		return "Just some restructured prose without headings.", http.StatusOK
	})
	defer srv.Close()

	c := NewClient(srv.URL, "key", []string{"pro"}, nil, 5*time.Second)
	book, err := c.GenerateBook(context.Background(), "raw", "")
	if err != nil {
		t.Fatalf("GenerateBook: %v", err)
	}
	if book.Title != "Untitled" {
		t.Errorf("title = %q", book.Title)
	}
	if len(book.Chapters) != 1 || book.Chapters[0].Title != "Full Text" {
		t.Errorf("chapters = %+v", book.Chapters)
	}
}

func TestGenerateFromTranscript(t *testing.T) {
	srv := completionServer(t, func(model string) (string, int) {
		return "TITLE: A Talk\n\n# Opening\n\nCleaned-up speech.", http.StatusOK
	})
	defer srv.Close()

	c := NewClient(srv.URL, "key", []string{"pro"}, nil, 5*time.Second)
	book, err := c.GenerateFromTranscript(context.Background(), "uh so today we will", "")
	if err != nil {
		t.Fatalf("GenerateFromTranscript: %v", err)
	}
	if book.Title != "A Talk" {
		t.Errorf("title = %q", book.Title)
	}
	if book.Source != models.SourceYouTube {
		t.Errorf("source = %q, want %q", book.Source, models.SourceYouTube)
	}
	if _, err := c.GenerateFromTranscript(context.Background(), "   ", ""); err == nil {
		t.Error("expected an error for an empty transcript")
	}
}

func TestGenerateModelFallback(t *testing.T) {
	var calls []string
	srv := completionServer(t, func(model string) (string, int) {
		calls = append(calls, model)
		if model == "big" {
			return "quota exceeded", http.StatusTooManyRequests
		}
		return "TITLE: Ok\n\ncontent", http.StatusOK
	})
	defer srv.Close()

	c := NewClient(srv.URL, "key", []string{"big", "small"}, nil, 5*time.Second)
	book, err := c.GenerateBook(context.Background(), "raw", "")
	if err != nil {
		t.Fatalf("GenerateBook: %v", err)
	}
	if book.Title != "Ok" {
		t.Errorf("title = %q", book.Title)
	}
	if len(calls) != 2 || calls[0] != "big" || calls[1] != "small" {
		t.Errorf("call order = %v", calls)
	}
}

func TestGenerateAllModelsFail(t *testing.T) {
	srv := completionServer(t, func(model string) (string, int) {
		return "overloaded", http.StatusServiceUnavailable
	})
	defer srv.Close()

	c := NewClient(srv.URL, "key", []string{"a", "b"}, nil, 5*time.Second)
	if _, err := c.GenerateBook(context.Background(), "raw", ""); err == nil {
		t.Error("expected an error when every model fails")
	}
}

func TestUnconfiguredClient(t *testing.T) {
	c := NewClient("", "", nil, nil, 0)
	if c.Configured() {
		t.Error("empty client reports configured")
	}
	if _, err := c.GenerateBook(context.Background(), "raw", ""); err == nil {
		t.Error("expected an error without credentials")
	}
}

func TestAnswerQuestion(t *testing.T) {
	srv := completionServer(t, func(model string) (string, int) {
		return "Because the fox was quick.", http.StatusOK
	})
	defer srv.Close()

	c := NewClient(srv.URL, "key", nil, []string{"flash"}, 5*time.Second)
	book := &models.Book{Title: "Foxes", Chapters: []models.Chapter{{ID: "c1", Title: "One", Content: "The quick brown fox."}}}

	answer, err := c.AnswerQuestion(context.Background(), book, book.Chapters[0], "Why?")
	if err != nil {
		t.Fatalf("AnswerQuestion: %v", err)
	}
	if answer == "" {
		t.Error("empty answer")
	}
	if _, err := c.AnswerQuestion(context.Background(), book, book.Chapters[0], "  "); err == nil {
		t.Error("expected an error for an empty question")
	}
}

func TestSplitChapters(t *testing.T) {
	got := splitChapters("intro text\n\n# One\n\nalpha\n\n# Two\n\nbeta")
	if len(got) != 3 {
		t.Fatalf("got %d chapters", len(got))
	}
	if got[0].title != "Full Text" || got[1].title != "One" || got[2].title != "Two" {
		t.Errorf("titles = %q, %q, %q", got[0].title, got[1].title, got[2].title)
	}
	if !strings.HasPrefix(got[1].content, "# One") {
		t.Errorf("chapter content should keep its heading, got %q", got[1].content)
	}
}

func TestChunkText(t *testing.T) {
	text := strings.Repeat("A sentence here. ", 100)
	chunks := chunkText(text, 300)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	var total int
	for _, ch := range chunks {
		if len(ch) > 300 {
			t.Errorf("chunk exceeds limit: %d chars", len(ch))
		}
		total += len(ch)
	}
	if total == 0 {
		t.Error("chunks lost all content")
	}
}

func TestTruncate(t *testing.T) {
	text := "First sentence. Second sentence. Third one goes on and on."
	got := truncate(text, 40)
	if len(got) > 40 {
		t.Errorf("truncate exceeded limit: %d", len(got))
	}
	if !strings.HasSuffix(got, ".") {
		t.Errorf("expected a sentence boundary cut, got %q", got)
	}
	if truncate("short", 100) != "short" {
		t.Error("short text should pass through")
	}
}

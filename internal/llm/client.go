// Package llm talks to an OpenAI-compatible chat completions endpoint
// for book restructuring, summaries and reading questions.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zenreader/zen-t/pkg/models"
)

// Content limits, in characters. Oversized inputs are truncated or
// chunked rather than rejected.
const (
	maxChapterContext  = 10000
	chunkSize          = 20000
	maxQuestionContext = 15000
	maxDirectSummary   = 100000
)

// Client is the HTTP client for the chat completions backend. Requests
// fall back through a model chain: heavier models first, cheaper ones
// when they fail.
type Client struct {
	endpoint    string
	apiKey      string
	proModels   []string
	flashModels []string
	httpClient  *http.Client
}

// NewClient creates a client for an OpenAI-compatible endpoint.
func NewClient(endpoint, apiKey string, proModels, flashModels []string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		endpoint:    endpoint,
		apiKey:      apiKey,
		proModels:   proModels,
		flashModels: flashModels,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether the client has credentials to work with.
func (c *Client) Configured() bool {
	return c.endpoint != "" && c.apiKey != ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// generate runs one prompt through the model chain, returning the
// first successful completion.
func (c *Client) generate(ctx context.Context, models []string, prompt string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("AI features need an API key (set ZEN_LLM_API_KEY or llm.api_key)")
	}
	if len(models) == 0 {
		return "", fmt.Errorf("no models configured")
	}

	var lastErr error
	for _, model := range models {
		text, err := c.call(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("all models failed: %w", lastErr)
}

func (c *Client) call(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apiError
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("%s: %s", model, errResp.Error.Message)
		}
		return "", fmt.Errorf("%s: HTTP %d", model, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(data, &chat); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", model)
	}
	return chat.Choices[0].Message.Content, nil
}

func languageClause(language string) string {
	if language == "" {
		return ""
	}
	return fmt.Sprintf(" Write all output in %s.", language)
}

// GenerateBook restructures raw document text into a titled,
// chapter-split book. The completion's first line must carry the title
// as "TITLE: ...".
func (c *Client) GenerateBook(ctx context.Context, text, language string) (*models.Book, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text to restructure")
	}

	prompt := "Restructure the following document into a well-organized book in markdown. " +
		"Split it into logical chapters, each starting with a level-1 heading. " +
		"Clean up formatting artifacts but preserve the author's words. " +
		"The very first line of your output must be the book title in the form 'TITLE: <title>'." +
		languageClause(language) +
		"\n\nDocument:\n" + text

	out, err := c.generate(ctx, c.proModels, prompt)
	if err != nil {
		return nil, err
	}
	return parseGeneratedBook(out, language)
}

// GenerateFromTranscript builds a book from a video transcript,
// keeping the spoken content but dropping filler.
func (c *Client) GenerateFromTranscript(ctx context.Context, transcript, language string) (*models.Book, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("no transcript to restructure")
	}

	prompt := "The following is an automatic transcript of a video. " +
		"Rewrite it as a readable book in markdown: fix punctuation, drop filler words, " +
		"and split it into logical chapters, each starting with a level-1 heading. " +
		"The very first line of your output must be the book title in the form 'TITLE: <title>'." +
		languageClause(language) +
		"\n\nTranscript:\n" + transcript

	out, err := c.generate(ctx, c.proModels, prompt)
	if err != nil {
		return nil, err
	}
	book, err := parseGeneratedBook(out, language)
	if err != nil {
		return nil, err
	}
	book.Source = models.SourceYouTube
	return book, nil
}

// parseGeneratedBook splits a completion into a book record: the
// "TITLE:" line names it and level-1 headings delimit chapters.
func parseGeneratedBook(out, language string) (*models.Book, error) {
	out = strings.TrimSpace(out)
	title := "Untitled"
	if line, rest, ok := strings.Cut(out, "\n"); ok || out != "" {
		if t, found := strings.CutPrefix(strings.TrimSpace(line), "TITLE:"); found {
			title = strings.TrimSpace(t)
			out = rest
		}
	}

	content := strings.TrimSpace(out)
	if content == "" {
		return nil, fmt.Errorf("model returned no content")
	}

	book := &models.Book{
		ID:        uuid.New().String(),
		Title:     title,
		DateAdded: time.Now(),
		Source:    models.SourceUpload,
		Language:  language,
	}

	for i, ch := range splitChapters(content) {
		book.Chapters = append(book.Chapters, models.Chapter{
			ID:      uuid.New().String(),
			Title:   ch.title,
			Content: ch.content,
			Order:   i,
		})
	}
	return book, nil
}

type rawChapter struct {
	title   string
	content string
}

// splitChapters cuts generated markdown at level-1 headings. Text
// before the first heading, or heading-free text, becomes a single
// chapter.
func splitChapters(content string) []rawChapter {
	var chapters []rawChapter
	var current *rawChapter

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if t, ok := strings.CutPrefix(trimmed, "# "); ok {
			if current != nil {
				current.content = strings.TrimSpace(current.content)
				chapters = append(chapters, *current)
			}
			current = &rawChapter{title: strings.TrimSpace(t), content: line}
			continue
		}
		if current == nil {
			current = &rawChapter{title: "Full Text"}
		}
		if current.content != "" {
			current.content += "\n"
		}
		current.content += line
	}
	if current != nil {
		current.content = strings.TrimSpace(current.content)
		chapters = append(chapters, *current)
	}
	if len(chapters) == 0 {
		chapters = append(chapters, rawChapter{title: "Full Text", content: content})
	}
	return chapters
}

// SummarizeChapter returns a short summary of one chapter.
func (c *Client) SummarizeChapter(ctx context.Context, chapter models.Chapter, language string) (string, error) {
	content := truncate(chapter.Content, maxChapterContext)
	prompt := fmt.Sprintf(
		"Summarize the following chapter, %q, in a few short paragraphs.%s\n\n%s",
		chapter.Title, languageClause(language), content)
	return c.generate(ctx, c.flashModels, prompt)
}

// SummarizeBook returns a summary of the whole book. Books beyond the
// direct limit are summarized chunk by chunk, then the chunk summaries
// are merged.
func (c *Client) SummarizeBook(ctx context.Context, book *models.Book) (string, error) {
	content := book.FullContent()
	lang := languageClause(book.Language)

	if len(content) <= maxDirectSummary {
		prompt := fmt.Sprintf("Summarize the book %q in a few paragraphs.%s\n\n%s",
			book.Title, lang, content)
		return c.generate(ctx, c.flashModels, prompt)
	}

	var partials []string
	for i, chunk := range chunkText(content, chunkSize) {
		prompt := fmt.Sprintf("Summarize part %d of the book %q.%s\n\n%s",
			i+1, book.Title, lang, chunk)
		part, err := c.generate(ctx, c.flashModels, prompt)
		if err != nil {
			return "", err
		}
		partials = append(partials, part)
	}

	prompt := fmt.Sprintf(
		"The following are summaries of consecutive parts of the book %q. Merge them into one coherent summary.%s\n\n%s",
		book.Title, lang, strings.Join(partials, "\n\n"))
	return c.generate(ctx, c.flashModels, prompt)
}

// AnswerQuestion answers a reading question using the current chapter
// as context.
func (c *Client) AnswerQuestion(ctx context.Context, book *models.Book, chapter models.Chapter, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("empty question")
	}
	content := truncate(chapter.Content, maxQuestionContext)
	prompt := fmt.Sprintf(
		"You are helping someone read the book %q. Using the chapter %q below as context, answer their question concisely.%s\n\nChapter:\n%s\n\nQuestion: %s",
		book.Title, chapter.Title, languageClause(book.Language), content, question)
	return c.generate(ctx, c.flashModels, prompt)
}

// truncate cuts text at a character limit, preferring a sentence or
// word boundary near the cut.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := text[:limit]
	if i := strings.LastIndexAny(cut, ".!?"); i > limit/2 {
		return cut[:i+1]
	}
	if i := strings.LastIndex(cut, " "); i > 0 {
		return cut[:i]
	}
	return cut
}

// chunkText splits text into chunks of roughly the given size, cutting
// at paragraph breaks where possible and sentence ends otherwise.
func chunkText(text string, size int) []string {
	var chunks []string
	for len(text) > size {
		cut := size
		if i := strings.LastIndex(text[:size], "\n\n"); i > size/2 {
			cut = i
		} else if i := strings.LastIndexAny(text[:size], ".!?"); i > size/2 {
			cut = i + 1
		}
		chunks = append(chunks, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

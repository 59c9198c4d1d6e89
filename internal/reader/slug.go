package reader

import (
	"regexp"
	"strings"
)

// Heading is one heading extracted from a chapter's raw markdown. ID is
// the slugified anchor, Text the display title (with any "Chapter N:"
// prefix stripped), Level the markdown heading level (1-3).
type Heading struct {
	ID    string
	Text  string
	Level int
}

var (
	headingRegex       = regexp.MustCompile(`(?m)^(#{1,3})\s+(.+)$`)
	chapterPrefixRegex = regexp.MustCompile(`(?i)^Chapter\s+\d+[:.]?\s*`)
	nonSlugRegex       = regexp.MustCompile(`[^a-z0-9-]+`)
	spaceRunRegex      = regexp.MustCompile(`\s+`)
	hyphenRunRegex     = regexp.MustCompile(`-+`)
)

// Slugify maps heading text to a stable anchor identifier: lowercase,
// trimmed, whitespace runs replaced by a hyphen, everything that is not
// alphanumeric or hyphen stripped, repeated hyphens collapsed. The same
// text always yields the same identifier, and the function is
// idempotent. Collisions between identical headings are not
// deduplicated; navigation lands on the first occurrence.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = spaceRunRegex.ReplaceAllString(s, "-")
	s = nonSlugRegex.ReplaceAllString(s, "")
	s = hyphenRunRegex.ReplaceAllString(s, "-")
	return s
}

// ExtractHeadings scans raw markdown for level 1-3 headings and returns
// them as table-of-contents entries, filtered for display: a lone H1 is
// assumed to duplicate the book title and is dropped, and a leading
// heading titled "Introduction" is dropped as boilerplate. Anchor ids
// use the original heading text so they line up with the rendered
// content's anchors even when the display text is cleaned.
func ExtractHeadings(markdown string) []Heading {
	var all []Heading
	for _, m := range headingRegex.FindAllStringSubmatch(markdown, -1) {
		raw := strings.TrimSpace(m[2])
		all = append(all, Heading{
			ID:    Slugify(raw),
			Text:  chapterPrefixRegex.ReplaceAllString(raw, ""),
			Level: len(m[1]),
		})
	}

	h1Count := 0
	for _, h := range all {
		if h.Level == 1 {
			h1Count++
		}
	}

	out := make([]Heading, 0, len(all))
	for i, h := range all {
		if h.Level == 1 && h1Count == 1 {
			continue
		}
		if i == 0 && strings.EqualFold(h.Text, "introduction") {
			continue
		}
		out = append(out, h)
	}
	return out
}

package reader

import (
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Trimmed  ", "trimmed"},
		{"Chapter 1: The Beginning", "chapter-1-the-beginning"},
		{"What's Next?", "whats-next"},
		{"a  --  b", "a-b"},
		{"Déjà vu", "dj-vu"},
		{"already-a-slug", "already-a-slug"},
	}
	for _, tt := range tests {
		got := Slugify(tt.in)
		if got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := Slugify(got); again != got {
			t.Errorf("Slugify not idempotent: %q -> %q", got, again)
		}
	}
}

func TestExtractHeadings(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     []Heading
	}{
		{
			name:     "lone h1 dropped",
			markdown: "# Book Title\n\n## First\n\ntext\n\n## Second\n",
			want: []Heading{
				{ID: "first", Text: "First", Level: 2},
				{ID: "second", Text: "Second", Level: 2},
			},
		},
		{
			name:     "multiple h1s kept",
			markdown: "# One\n\n# Two\n",
			want: []Heading{
				{ID: "one", Text: "One", Level: 1},
				{ID: "two", Text: "Two", Level: 1},
			},
		},
		{
			name:     "leading introduction dropped",
			markdown: "## Introduction\n\n## Setup\n",
			want: []Heading{
				{ID: "setup", Text: "Setup", Level: 2},
			},
		},
		{
			name:     "chapter prefix stripped from display only",
			markdown: "## Chapter 3: Storms\n\n## Chapter 4. Calm\n",
			want: []Heading{
				{ID: "chapter-3-storms", Text: "Storms", Level: 2},
				{ID: "chapter-4-calm", Text: "Calm", Level: 2},
			},
		},
		{
			name:     "deep headings ignored",
			markdown: "## Kept\n\n#### Too Deep\n",
			want: []Heading{
				{ID: "kept", Text: "Kept", Level: 2},
			},
		},
		{
			name:     "no headings",
			markdown: "just prose\n",
			want:     []Heading{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHeadings(tt.markdown)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractHeadings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

package importer

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// SubtitleFormat implements Format for SRT and WebVTT subtitle files,
// keeping only the cue text.
type SubtitleFormat struct{}

func init() {
	Register(&SubtitleFormat{})
}

func (f *SubtitleFormat) Name() string         { return "Subtitles" }
func (f *SubtitleFormat) Extensions() []string { return []string{".srt", ".vtt"} }

var (
	timestampRegex = regexp.MustCompile(`\d{1,2}:\d{2}(:\d{2})?[.,]\d{3}\s+-->\s+\d{1,2}:\d{2}(:\d{2})?[.,]\d{3}`)
	cueIndexRegex  = regexp.MustCompile(`^\d+$`)
	vttTagRegex    = regexp.MustCompile(`<[^>]+>`)
)

func (f *SubtitleFormat) Extract(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var out strings.Builder
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "",
			line == "WEBVTT",
			strings.HasPrefix(line, "NOTE"),
			strings.HasPrefix(line, "STYLE"),
			cueIndexRegex.MatchString(line),
			timestampRegex.MatchString(line):
			continue
		}
		line = vttTagRegex.ReplaceAllString(line, "")
		if line == "" {
			continue
		}
		if out.Len() > 0 {
			out.WriteString(" ")
		}
		out.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return out.String(), nil
}

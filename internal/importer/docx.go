package importer

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"
)

// DocxFormat implements Format for DOCX files. A DOCX is a zip archive
// whose word/document.xml holds the text as w:t runs inside w:p
// paragraphs.
type DocxFormat struct{}

func init() {
	Register(&DocxFormat{})
}

func (f *DocxFormat) Name() string         { return "Word document" }
func (f *DocxFormat) Extensions() []string { return []string{".docx"} }
func (f *DocxFormat) Extract(filename string) (string, error) {
	archive, err := zip.OpenReader(filename)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		return docxText(xml.NewDecoder(rc))
	}
	return "", fmt.Errorf("%s has no word/document.xml", filename)
}

func docxText(dec *xml.Decoder) (string, error) {
	var out strings.Builder
	var inText bool

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteString("\n\n")
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}
	return strings.TrimSpace(out.String()), nil
}

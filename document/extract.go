package document

import (
	"bytes"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/krishisetu/krishisetu/pkg/logging"
)

// ErrorMarker is embedded in the content of a failed extraction. The
// classifier short-circuits on it.
const ErrorMarker = "[Extraction error]"

// Extraction is the text pulled from one uploaded file. A failed
// extraction carries the error marker in Content rather than an error so
// sibling files in a batch are unaffected.
type Extraction struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Failed reports whether the extraction carries the error marker.
func (e Extraction) Failed() bool {
	return strings.Contains(e.Content, ErrorMarker)
}

// ExtractText pulls plain text out of an uploaded file. Plain text,
// markdown and CSV pass through unchanged; HTML is reduced to its headings
// and paragraphs. Unsupported formats and parse failures yield the error
// marker.
func ExtractText(filename string, raw []byte) Extraction {
	logger := logging.WithComponent("document")

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", ".markdown", ".csv", ".text":
		return Extraction{Filename: filename, Content: string(raw)}
	case ".html", ".htm":
		content, err := extractHTML(raw)
		if err != nil {
			logger.Warn("html extraction failed", "filename", filename, "error", err)
			return failedExtraction(filename, "could not parse HTML")
		}
		return Extraction{Filename: filename, Content: content}
	default:
		logger.Warn("unsupported document format", "filename", filename)
		return failedExtraction(filename, "unsupported format")
	}
}

// ExtractBatch extracts every file in a batch. One file's failure never
// aborts its siblings.
func ExtractBatch(files map[string][]byte) []Extraction {
	names := make([]string, 0, len(files))
	for filename := range files {
		names = append(names, filename)
	}
	sort.Strings(names)

	out := make([]Extraction, 0, len(names))
	for _, filename := range names {
		out = append(out, ExtractText(filename, files[filename]))
	}
	return out
}

func failedExtraction(filename, detail string) Extraction {
	return Extraction{
		Filename: filename,
		Content:  ErrorMarker + ": " + detail,
	}
}

// extractHTML keeps heading and paragraph text, dropping markup, scripts
// and styling.
func extractHTML(raw []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	var parts []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, td, th").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n"), nil
}

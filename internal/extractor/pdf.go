package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageBreakMarker separates the text of consecutive PDF pages in the
// extracted output.
const PageBreakMarker = "\n\n--- Page Break ---\n\n"

// ExtractPDF pulls the text out of a PDF document. Text fragments within a
// page are joined with a single space; pages are joined with
// PageBreakMarker. A document whose pages yield only whitespace fails with
// ErrEmptyDocument.
func ExtractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)

	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF file: %w", err)
	}

	numPages := pdfReader.NumPage()
	pages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, pageText(page))
	}

	return joinPages(pages)
}

// pageText joins a page's text fragments with single spaces.
func pageText(page pdf.Page) string {
	content := page.Content()

	fragments := make([]string, 0, len(content.Text))
	for _, t := range content.Text {
		fragments = append(fragments, t.S)
	}

	return strings.Join(fragments, " ")
}

func joinPages(pages []string) (string, error) {
	empty := true
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			empty = false
			break
		}
	}
	if empty {
		return "", ErrEmptyDocument
	}

	return strings.Join(pages, PageBreakMarker), nil
}

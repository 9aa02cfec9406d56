package extractor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDocument signals a PDF with no extractable text, typically a
// scanned or image-based document.
var ErrEmptyDocument = errors.New("could not extract text from this PDF; it may be a scanned/image-based PDF")

// UploadedFile is a user-supplied file awaiting extraction. It is consumed
// once and discarded; nothing here is retained after Extract returns.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExtractedContent is the normalized text of one upload plus provenance.
// It lives only for the duration of a single analysis request.
type ExtractedContent struct {
	Text           string
	SourceFileName string
	SourceFileType string
}

// IsPDF reports whether a file should take the PDF extraction path: either
// the declared MIME type is PDF or the name ends in .pdf, case-insensitive.
func IsPDF(name, contentType string) bool {
	if contentType == "application/pdf" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}

// Extract converts an uploaded file into plain text. PDFs go through
// page-by-page text extraction; every other accepted type is decoded as
// text verbatim regardless of its internal structure.
func Extract(file UploadedFile) (ExtractedContent, error) {
	var (
		text string
		err  error
	)

	if IsPDF(file.Name, file.ContentType) {
		text, err = ExtractPDF(file.Data)
	} else {
		text, err = ExtractText(file.Data)
	}
	if err != nil {
		return ExtractedContent{}, err
	}

	return ExtractedContent{
		Text:           text,
		SourceFileName: file.Name,
		SourceFileType: file.ContentType,
	}, nil
}

// ExtractText decodes raw bytes as text. UTF-8 passes through untouched;
// BOM-prefixed UTF-16 and common single-byte encodings are converted.
func ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("failed to read file: empty input")
	}

	text, err := decodeText(data)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return text, nil
}

// Package extract converts uploaded documents into plain text.
// Supported formats: PDF, DOCX, plain text / Markdown, and HTML.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned when a document's type cannot be handled.
// Callers during batch ingestion are expected to log and skip it.
var ErrUnsupportedFormat = errors.New("extract: unsupported document format")

// Format enumerates the document types the extractor understands.
type Format string

const (
	FormatUnknown  Format = ""
	FormatPDF      Format = "pdf"
	FormatDocx     Format = "docx"
	FormatText     Format = "txt"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Document is a named byte blob handed to training. It only exists during
// ingestion; nothing is kept after its text has been chunked and indexed.
type Document struct {
	Name string
	Data []byte
}

// DetectFormat infers a document format from the file name's extension.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDocx
	case ".txt":
		return FormatText
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatUnknown
	}
}

// Text extracts plain text from the document, dispatching on its detected
// format. No network or storage side effects.
func Text(doc Document) (string, error) {
	switch DetectFormat(doc.Name) {
	case FormatPDF:
		return pdfText(doc.Data)
	case FormatDocx:
		return docxText(doc.Data)
	case FormatText, FormatMarkdown:
		// Undecodable bytes are dropped rather than failing the document.
		return strings.ToValidUTF8(string(doc.Data), ""), nil
	case FormatHTML:
		return HTMLText(strings.NewReader(string(doc.Data)))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, doc.Name)
	}
}

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Reader failure classes. FailureReason maps them onto the reason strings
// carried by skipped outcomes.
var (
	ErrEmptyDocument = errors.New("document has no pages")
	ErrNoTextLayer   = errors.New("document has no usable text layer")
	ErrEncrypted     = errors.New("document is password protected")
)

// Text layers shorter than this after trimming are presumed image-only.
const minTextLength = 20

type PDFReader interface {
	ExtractFirstPageText(path string) (string, error)
}

type pdfReader struct{}

func NewPDFReader() PDFReader {
	return &pdfReader{}
}

// ExtractFirstPageText pulls the text layer of page 1. It never panics: the
// row reader is known to panic on malformed files, so failures of any kind
// come back as errors.
func (p *pdfReader) ExtractFirstPageText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return "", classifyReadError(err)
	}
	if pageCount == 0 {
		return "", ErrEmptyDocument
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", classifyReadError(err)
	}
	defer f.Close()

	page := reader.Page(1)
	if page.V.IsNull() {
		return "", ErrNoTextLayer
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return "", classifyReadError(err)
	}

	var textBuilder strings.Builder
	for _, row := range rows {
		for i, word := range row.Content {
			if i > 0 {
				textBuilder.WriteString(" ")
			}
			textBuilder.WriteString(word.S)
		}
		textBuilder.WriteString("\n")
	}

	text = textBuilder.String()
	if len(strings.TrimSpace(text)) < minTextLength {
		return "", ErrNoTextLayer
	}
	return text, nil
}

// classifyReadError folds encryption-looking failures into ErrEncrypted.
func classifyReadError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "password") || strings.Contains(msg, "encrypt") {
		return ErrEncrypted
	}
	return err
}

// FailureReason renders a read failure as the reason string carried on a
// skipped outcome. Unclassified errors keep a short diagnostic.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyDocument):
		return "Empty PDF"
	case errors.Is(err, ErrNoTextLayer):
		return "Scanned PDF - unsupported"
	case errors.Is(err, ErrEncrypted):
		return "Encrypted/Password Protected"
	default:
		return "Read Error: " + truncateMessage(err.Error(), 50)
	}
}

func truncateMessage(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

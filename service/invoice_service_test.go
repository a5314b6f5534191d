package service

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ehabahmed2/invfrog/dto"
	"github.com/stretchr/testify/assert"
)

const invoiceText = `
	Acme Corp
	123 Commerce Street
	Invoice Number: INV-999
	Date: 2023-10-25
	Subtotal: 1,000.00
	Total Due: 1,024.50
`

type stubReader struct {
	text string
	err  error
}

func (s *stubReader) ExtractFirstPageText(path string) (string, error) {
	return s.text, s.err
}

func TestClassifyExtractionComplete(t *testing.T) {
	fields := dto.FieldMap{
		dto.FieldInvoiceNumber: "INV-999",
		dto.FieldDate:          "2023-10-25",
		dto.FieldTotalAmount:   "1,024.50",
		dto.FieldVendor:        "",
	}

	status, reason := ClassifyExtraction(fields)

	assert.Equal(t, dto.StatusComplete, status)
	assert.Equal(t, "All fields found", reason)
}

func TestClassifyExtractionPartial(t *testing.T) {
	fields := dto.FieldMap{
		dto.FieldInvoiceNumber: "INV-999",
		dto.FieldDate:          "",
		dto.FieldTotalAmount:   "",
		dto.FieldVendor:        "Acme Corp",
	}

	status, reason := ClassifyExtraction(fields)

	assert.Equal(t, dto.StatusPartial, status)
	assert.Equal(t, "Missing: date, total_amount", reason)
}

func TestClassifyExtractionLowConfidence(t *testing.T) {
	status, reason := ClassifyExtraction(dto.NewFieldMap())

	assert.Equal(t, dto.StatusPartial, status)
	assert.Equal(t, "Low confidence extraction", reason)
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "Empty PDF", FailureReason(ErrEmptyDocument))
	assert.Equal(t, "Scanned PDF - unsupported", FailureReason(ErrNoTextLayer))
	assert.Equal(t, "Encrypted/Password Protected", FailureReason(ErrEncrypted))
	assert.Equal(t, "Read Error: boom", FailureReason(errors.New("boom")))
}

func TestFailureReasonTruncates(t *testing.T) {
	err := errors.New(strings.Repeat("a", 80))

	assert.Equal(t, "Read Error: "+strings.Repeat("a", 50), FailureReason(err))
}

func TestClassifyReadError(t *testing.T) {
	assert.ErrorIs(t, classifyReadError(errors.New("file requires a Password")), ErrEncrypted)
	assert.ErrorIs(t, classifyReadError(errors.New("AES encrypted stream")), ErrEncrypted)

	plain := errors.New("malformed xref table")
	assert.Equal(t, plain, classifyReadError(plain))
}

func TestProcessDocumentComplete(t *testing.T) {
	service := NewInvoiceService(&stubReader{text: invoiceText}, nil)

	outcome := service.ProcessDocument("/tmp/a.pdf", "a.pdf")

	assert.Equal(t, "a.pdf", outcome.OriginalFilename)
	assert.Equal(t, dto.StatusComplete, outcome.Status)
	assert.Equal(t, "All fields found", outcome.Reason)
	assert.Equal(t, "INV-999", outcome.Fields[dto.FieldInvoiceNumber])
	assert.Equal(t, "Acme Corp", outcome.Fields[dto.FieldVendor])
}

func TestProcessDocumentSkipped(t *testing.T) {
	service := NewInvoiceService(&stubReader{err: ErrNoTextLayer}, nil)

	outcome := service.ProcessDocument("/tmp/scan.pdf", "scan.pdf")

	assert.Equal(t, dto.StatusSkipped, outcome.Status)
	assert.Equal(t, "Scanned PDF - unsupported", outcome.Reason)
	assert.NotNil(t, outcome.Fields)
	assert.Empty(t, outcome.Fields)
}

func TestProposeEnrichesOutcome(t *testing.T) {
	service := NewInvoiceService(&stubReader{text: invoiceText}, nil)
	outcome := service.ProcessDocument("/tmp/a.pdf", "a.pdf")

	service.Propose(outcome, dto.SchemeInvoiceNumber, "/out", true)

	assert.Equal(t, "INV_INV-999_20231025.pdf", outcome.ProposedFilename)
	assert.Equal(t, filepath.Join("/out", "2023", "Acme Corp", "INV_INV-999_20231025.pdf"), outcome.TargetPath)
}

func TestProposeSkippedDocument(t *testing.T) {
	service := NewInvoiceService(&stubReader{err: ErrEmptyDocument}, nil)
	outcome := service.ProcessDocument("/tmp/empty.pdf", "empty.pdf")

	service.Propose(outcome, dto.SchemeInvoiceNumber, "/out", false)

	assert.Equal(t, "INV_unknown_empty.pdf", outcome.ProposedFilename)
	assert.Equal(t, filepath.Join("/out", "Unknown_Vendor", "INV_unknown_empty.pdf"), outcome.TargetPath)
}

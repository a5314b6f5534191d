package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ehabahmed2/invfrog/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBatchReader struct {
	texts map[string]string
	errs  map[string]error
}

func (f *fakeBatchReader) ExtractFirstPageText(path string) (string, error) {
	name := filepath.Base(path)
	if err, ok := f.errs[name]; ok {
		return "", err
	}
	return f.texts[name], nil
}

func newTestBatchService(reader PDFReader) *BatchService {
	return NewBatchService(NewInvoiceService(reader, nil), NewReportWriter(nil), nil, nil)
}

func writePDFStubs(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4 stub"), 0o644))
	}
}

func TestBatchRunCopiesAndCounts(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writePDFStubs(t, inputDir, "a.pdf", "b.pdf", "notes.txt")

	reader := &fakeBatchReader{
		texts: map[string]string{"a.pdf": invoiceText},
		errs:  map[string]error{"b.pdf": ErrNoTextLayer},
	}
	service := newTestBatchService(reader)

	summary, err := service.Run(context.Background(), &dto.BatchRequest{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Scheme:    "invoice_number",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Complete)
	assert.Equal(t, 0, summary.Partial)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Copied)
	assert.Equal(t, 0, summary.CopyFailed)

	// Copy, never move.
	assert.FileExists(t, filepath.Join(outputDir, "Acme Corp", "INV_INV-999_20231025.pdf"))
	assert.FileExists(t, filepath.Join(inputDir, "a.pdf"))

	assert.FileExists(t, filepath.Join(outputDir, "skipped_files.csv"))
	assert.FileExists(t, filepath.Join(outputDir, "errors.log"))

	workbooks, err := filepath.Glob(filepath.Join(outputDir, "Invoices_Extracted_*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, workbooks, 1)
	assert.Len(t, summary.Reports, 3)
}

func TestBatchRunDryRun(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writePDFStubs(t, inputDir, "a.pdf")

	service := newTestBatchService(&fakeBatchReader{texts: map[string]string{"a.pdf": invoiceText}})

	summary, err := service.Run(context.Background(), &dto.BatchRequest{
		InputDir:  inputDir,
		OutputDir: outputDir,
		DryRun:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Copied)
	assert.True(t, strings.HasSuffix(summary.Outcomes[0].TargetPath, " (preview)"))
	assert.NoFileExists(t, filepath.Join(outputDir, "Acme Corp", "INV_INV-999_20231025.pdf"))

	previews, err := filepath.Glob(filepath.Join(outputDir, "Preview_*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, previews, 1)

	data, err := os.ReadFile(filepath.Join(outputDir, "preview.csv"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Contains(t, string(data), "INV_INV-999_20231025.pdf")
}

func TestBatchRunCollisionSuffix(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writePDFStubs(t, inputDir, "first.pdf", "second.pdf")

	service := newTestBatchService(&fakeBatchReader{texts: map[string]string{
		"first.pdf":  invoiceText,
		"second.pdf": invoiceText,
	}})

	summary, err := service.Run(context.Background(), &dto.BatchRequest{InputDir: inputDir, OutputDir: outputDir})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Copied)
	assert.FileExists(t, filepath.Join(outputDir, "Acme Corp", "INV_INV-999_20231025.pdf"))
	assert.FileExists(t, filepath.Join(outputDir, "Acme Corp", "INV_INV-999_20231025_1.pdf"))
	assert.Equal(t, filepath.Join(outputDir, "Acme Corp", "INV_INV-999_20231025_1.pdf"), summary.Outcomes[1].TargetPath)
}

func TestBatchRunOrganizeByDate(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writePDFStubs(t, inputDir, "a.pdf")

	service := newTestBatchService(&fakeBatchReader{texts: map[string]string{"a.pdf": invoiceText}})

	_, err := service.Run(context.Background(), &dto.BatchRequest{
		InputDir:       inputDir,
		OutputDir:      outputDir,
		OrganizeByDate: true,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outputDir, "2023", "Acme Corp", "INV_INV-999_20231025.pdf"))
}

func TestBatchRunDefaultsOutputToInput(t *testing.T) {
	inputDir := t.TempDir()
	writePDFStubs(t, inputDir, "a.pdf")

	service := newTestBatchService(&fakeBatchReader{texts: map[string]string{"a.pdf": invoiceText}})

	summary, err := service.Run(context.Background(), &dto.BatchRequest{InputDir: inputDir})
	require.NoError(t, err)

	assert.Equal(t, inputDir, summary.OutputDir)
	assert.FileExists(t, filepath.Join(inputDir, "Acme Corp", "INV_INV-999_20231025.pdf"))
}

func TestBatchRunEmptyDirectory(t *testing.T) {
	service := newTestBatchService(&fakeBatchReader{})

	summary, err := service.Run(context.Background(), &dto.BatchRequest{InputDir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Total)
	assert.Empty(t, summary.Reports)
	assert.NotEmpty(t, summary.RunID)
}

func TestBatchRunMissingInputDirectory(t *testing.T) {
	service := newTestBatchService(&fakeBatchReader{})

	_, err := service.Run(context.Background(), &dto.BatchRequest{
		InputDir: filepath.Join(t.TempDir(), "absent"),
	})

	assert.Error(t, err)
}

func TestBatchRunRejectsUnknownScheme(t *testing.T) {
	inputDir := t.TempDir()
	service := newTestBatchService(&fakeBatchReader{})

	_, err := service.Run(context.Background(), &dto.BatchRequest{InputDir: inputDir, Scheme: "bogus"})

	assert.Error(t, err)
}

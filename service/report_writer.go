package service

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ehabahmed2/invfrog/dto"
)

// Workbook columns, in sheet order.
var reportHeaders = []string{
	"Original_Filename",
	"Proposed_Filename",
	"Target_Path",
	"Invoice_Number",
	"Invoice_Date",
	"Total_Amount",
	"Vendor",
	"Status",
	"Details",
}

// ReportWriter produces the per-run artifacts in the output directory: an
// Excel workbook for every run, preview.csv for dry runs, skipped_files.csv
// and errors.log when documents were skipped. Report failures are logged and
// never fail the batch.
type ReportWriter struct {
	logger *slog.Logger
}

func NewReportWriter(logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{logger: logger}
}

// WriteAll writes the run's reports and returns the paths actually written.
func (w *ReportWriter) WriteAll(outputDir string, outcomes []*dto.ParseOutcome, dryRun bool, startedAt time.Time) []string {
	if len(outcomes) == 0 {
		return nil
	}

	stamp := startedAt.Format("20060102_1504")
	var written []string

	name := fmt.Sprintf("Invoices_Extracted_%s.xlsx", stamp)
	if dryRun {
		name = fmt.Sprintf("Preview_%s.xlsx", stamp)
	}
	workbookPath := filepath.Join(outputDir, name)
	if err := writeWorkbook(workbookPath, outcomes); err != nil {
		w.logger.Error("workbook report failed", "path", workbookPath, "error", err)
	} else {
		written = append(written, workbookPath)
	}

	if dryRun {
		previewPath := filepath.Join(outputDir, "preview.csv")
		if err := writePreviewCSV(previewPath, outcomes); err != nil {
			w.logger.Error("preview report failed", "path", previewPath, "error", err)
		} else {
			written = append(written, previewPath)
		}
	}

	var skipped []*dto.ParseOutcome
	for _, outcome := range outcomes {
		if outcome.Status == dto.StatusSkipped {
			skipped = append(skipped, outcome)
		}
	}
	if len(skipped) > 0 {
		skippedPath := filepath.Join(outputDir, "skipped_files.csv")
		if err := writeSkippedCSV(skippedPath, skipped); err != nil {
			w.logger.Error("skipped report failed", "path", skippedPath, "error", err)
		} else {
			written = append(written, skippedPath)
		}

		logPath := filepath.Join(outputDir, "errors.log")
		if err := appendErrorLog(logPath, skipped, stamp); err != nil {
			w.logger.Error("error log append failed", "path", logPath, "error", err)
		} else {
			written = append(written, logPath)
		}
	}

	return written
}

func writeWorkbook(path string, outcomes []*dto.ParseOutcome) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Invoices"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if index, err := f.GetSheetIndex(sheet); err == nil {
		f.SetActiveSheet(index)
	}
	_ = f.DeleteSheet("Sheet1")

	for col, header := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for row, outcome := range outcomes {
		values := []string{
			outcome.OriginalFilename,
			outcome.ProposedFilename,
			outcome.TargetPath,
			outcome.Fields[dto.FieldInvoiceNumber],
			outcome.Fields[dto.FieldDate],
			outcome.Fields[dto.FieldTotalAmount],
			outcome.Fields[dto.FieldVendor],
			string(outcome.Status),
			outcome.Reason,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "C", 36)
	_ = f.SetColWidth(sheet, "D", "G", 18)
	_ = f.SetColWidth(sheet, "H", "H", 12)
	_ = f.SetColWidth(sheet, "I", "I", 44)

	return f.SaveAs(path)
}

func writePreviewCSV(path string, outcomes []*dto.ParseOutcome) error {
	rows := make([][]string, 0, len(outcomes)+1)
	rows = append(rows, []string{"Original_Filename", "Proposed_Filename", "Target_Path", "Status"})
	for _, outcome := range outcomes {
		rows = append(rows, []string{
			outcome.OriginalFilename,
			outcome.ProposedFilename,
			outcome.TargetPath,
			string(outcome.Status),
		})
	}
	return writeCSV(path, rows)
}

func writeSkippedCSV(path string, skipped []*dto.ParseOutcome) error {
	rows := make([][]string, 0, len(skipped)+1)
	rows = append(rows, []string{"Filename", "Reason"})
	for _, outcome := range skipped {
		rows = append(rows, []string{outcome.OriginalFilename, outcome.Reason})
	}
	return writeCSV(path, rows)
}

// writeCSV writes rows with a UTF-8 BOM so Excel opens the file correctly.
func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString("\uFEFF"); err != nil {
		return err
	}

	cw := csv.NewWriter(f)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// appendErrorLog appends one run section to errors.log, one line per skipped
// document.
func appendErrorLog(path string, skipped []*dto.ParseOutcome, stamp string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "--- Run %s ---\n", stamp); err != nil {
		return err
	}
	for _, outcome := range skipped {
		if _, err := fmt.Fprintf(f, "%s: %s\n", outcome.OriginalFilename, outcome.Reason); err != nil {
			return err
		}
	}
	return nil
}

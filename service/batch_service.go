package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ehabahmed2/invfrog/dto"
	"github.com/ehabahmed2/invfrog/metrics"
	"github.com/ehabahmed2/invfrog/utils/naming"
)

const defaultWorkers = 4

// BatchService runs the pipeline over a directory of PDFs: a parallel parse
// phase, a sequential placement phase, then reports.
type BatchService struct {
	invoices *InvoiceService
	reports  *ReportWriter
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewBatchService(invoices *InvoiceService, reports *ReportWriter, logger *slog.Logger, m *metrics.Metrics) *BatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchService{
		invoices: invoices,
		reports:  reports,
		logger:   logger,
		metrics:  m,
	}
}

// Run executes one batch. One document's failure never aborts the run; only a
// missing input directory, an un-creatable output directory or a canceled
// context do.
func (s *BatchService) Run(ctx context.Context, req *dto.BatchRequest) (*dto.BatchSummary, error) {
	info, err := os.Stat(req.InputDir)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input directory: %s is not a directory", req.InputDir)
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = req.InputDir
	}

	scheme := dto.SchemeInvoiceNumber
	if req.Scheme != "" {
		scheme, err = dto.ParseNamingScheme(req.Scheme)
		if err != nil {
			return nil, err
		}
	}

	workers := req.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	summary := &dto.BatchSummary{
		RunID:          uuid.NewString(),
		InputDir:       req.InputDir,
		OutputDir:      outputDir,
		Scheme:         scheme,
		OrganizeByDate: req.OrganizeByDate,
		DryRun:         req.DryRun,
		StartedAt:      time.Now(),
	}

	files, err := listPDFs(req.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan input directory: %w", err)
	}
	summary.Total = len(files)

	if len(files) == 0 {
		s.logger.Info("no pdf files found", "run_id", summary.RunID, "input_dir", req.InputDir)
		summary.FinishedAt = time.Now()
		return summary, nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BatchRuns.Inc()
	}
	s.logger.Info("batch started",
		"run_id", summary.RunID,
		"input_dir", req.InputDir,
		"output_dir", outputDir,
		"files", len(files),
		"scheme", scheme,
		"dry_run", req.DryRun,
		"workers", workers,
	)

	// Parse phase. Outcomes land in their enumeration slot so report order is
	// independent of worker scheduling.
	outcomes := make([]*dto.ParseOutcome, len(files))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, filename := range files {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome := s.invoices.ProcessDocument(filepath.Join(req.InputDir, filename), filename)
			s.invoices.Propose(outcome, scheme, outputDir, req.OrganizeByDate)
			outcomes[i] = outcome
			s.logger.Debug("document parsed",
				"run_id", summary.RunID,
				"file", filename,
				"status", outcome.Status,
				"reason", outcome.Reason,
			)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// Placement phase, sequential in enumeration order so collision suffixes
	// are deterministic within a run.
	for _, outcome := range outcomes {
		switch outcome.Status {
		case dto.StatusComplete:
			summary.Complete++
		case dto.StatusPartial:
			summary.Partial++
		case dto.StatusSkipped:
			summary.Skipped++
		}

		if req.DryRun {
			outcome.TargetPath += " (preview)"
			continue
		}
		if outcome.Status == dto.StatusSkipped {
			continue
		}

		source := filepath.Join(req.InputDir, outcome.OriginalFilename)
		placed, err := placeFile(source, outcome.TargetPath)
		if err != nil {
			outcome.Reason += "; Copy failed: " + copyFailureDetail(err)
			summary.CopyFailed++
			s.logger.Warn("copy failed",
				"run_id", summary.RunID,
				"file", outcome.OriginalFilename,
				"target", outcome.TargetPath,
				"error", err,
			)
			continue
		}
		outcome.TargetPath = placed
		summary.Copied++
		if s.metrics != nil {
			s.metrics.FilesCopied.Inc()
		}
	}

	if s.reports != nil {
		summary.Reports = s.reports.WriteAll(outputDir, outcomes, req.DryRun, summary.StartedAt)
	}

	summary.Outcomes = outcomes
	summary.FinishedAt = time.Now()
	s.logger.Info("batch complete",
		"run_id", summary.RunID,
		"total", summary.Total,
		"complete", summary.Complete,
		"partial", summary.Partial,
		"skipped", summary.Skipped,
		"copied", summary.Copied,
		"copy_failed", summary.CopyFailed,
		"elapsed_ms", time.Since(summary.StartedAt).Milliseconds(),
	)
	return summary, nil
}

// listPDFs returns the .pdf entries directly under dir, sorted by name (the
// ReadDir contract), extension matched case-insensitively.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// placeFile copies source to the collision-safe variant of target, creating
// parent directories. Returns the path actually written.
func placeFile(source, target string) (string, error) {
	unique := naming.UniquePath(target)
	if err := os.MkdirAll(filepath.Dir(unique), 0o755); err != nil {
		return "", err
	}
	if err := copyFile(source, unique); err != nil {
		return "", err
	}
	return unique, nil
}

// copyFile mirrors contents and permissions; the modification time is carried
// over best-effort. Copy, never move: the source stays untouched.
func copyFile(source, dest string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}

	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	_ = os.Chtimes(dest, time.Now(), info.ModTime())
	return nil
}

// copyFailureDetail renders a placement failure the way the reports carry it.
func copyFailureDetail(err error) string {
	if errors.Is(err, os.ErrPermission) {
		return "Permission denied"
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return "OS error: " + truncateMessage(err.Error(), 50)
	}
	return "Copy error: " + truncateMessage(err.Error(), 50)
}

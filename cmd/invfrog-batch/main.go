package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ehabahmed2/invfrog/config"
	"github.com/ehabahmed2/invfrog/dto"
	"github.com/ehabahmed2/invfrog/metrics"
	"github.com/ehabahmed2/invfrog/service"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		input    = flag.String("input", "", "directory of PDF invoices to process (required)")
		output   = flag.String("output", "", "output directory (defaults to the input directory)")
		scheme   = flag.String("scheme", "", "naming scheme: invoice_number, vendor_name or original_filename")
		organize = flag.Bool("organize", false, "organize copies into per-year folders")
		dryRun   = flag.Bool("dry-run", false, "compute names and reports without copying files")
		workers  = flag.Int("workers", 0, "parallel parse workers (0 uses the configured value)")
		cfgPath  = flag.String("config", "", "optional YAML config file")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	// Validate required flags
	if *input == "" {
		printError("Error: -input is required\n")
		flag.Usage()
		os.Exit(1)
	}

	// Setup logger
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})).With("service", "invfrog-batch")
	slog.SetDefault(logger)

	// Load configuration, flags winning over config values
	cfg := config.LoadConfigFile(*cfgPath)

	schemeValue := cfg.NamingScheme
	if *scheme != "" {
		schemeValue = *scheme
	}
	if _, err := dto.ParseNamingScheme(schemeValue); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	workerCount := cfg.Workers
	if *workers > 0 {
		workerCount = *workers
	}

	// Wire the pipeline
	m := metrics.New()
	invoiceService := service.NewInvoiceService(service.NewPDFReader(), m)
	batchService := service.NewBatchService(invoiceService, service.NewReportWriter(logger), logger, m)

	request := &dto.BatchRequest{
		InputDir:       *input,
		OutputDir:      *output,
		Scheme:         schemeValue,
		OrganizeByDate: *organize || cfg.OrganizeByDate,
		DryRun:         *dryRun,
		Workers:        workerCount,
	}

	summary, err := batchService.Run(context.Background(), request)
	if err != nil {
		logger.Error("batch failed", "error", err)
		os.Exit(1)
	}

	// Log summary
	fmt.Printf("Batch complete!\n")
	fmt.Printf("- Files found: %d\n", summary.Total)
	fmt.Printf("- Complete: %d\n", summary.Complete)
	fmt.Printf("- Partial: %d\n", summary.Partial)
	fmt.Printf("- Skipped: %d\n", summary.Skipped)
	if summary.DryRun {
		fmt.Printf("- Dry run: no files copied\n")
	} else {
		fmt.Printf("- Copied: %d\n", summary.Copied)
		if summary.CopyFailed > 0 {
			fmt.Printf("- Copy failures: %d\n", summary.CopyFailed)
		}
	}
	for _, report := range summary.Reports {
		fmt.Printf("- Report: %s\n", report)
	}
}

package service

import (
	"log"
	"time"

	"github.com/ehabahmed2/invfrog/dto"
	"github.com/ehabahmed2/invfrog/metrics"
	"github.com/ehabahmed2/invfrog/utils"
	"github.com/ehabahmed2/invfrog/utils/naming"
)

// InvoiceService runs the per-document pipeline: read, extract, classify, and
// on request the naming/path enrichment.
type InvoiceService struct {
	reader  PDFReader
	metrics *metrics.Metrics
}

func NewInvoiceService(reader PDFReader, m *metrics.Metrics) *InvoiceService {
	return &InvoiceService{
		reader:  reader,
		metrics: m,
	}
}

// ProcessDocument parses a single file into an outcome. Read failures yield a
// skipped outcome with an empty field map; the method itself never fails.
func (s *InvoiceService) ProcessDocument(path, filename string) *dto.ParseOutcome {
	started := time.Now()
	outcome := &dto.ParseOutcome{
		OriginalFilename: filename,
		Fields:           dto.FieldMap{},
	}

	text, err := s.reader.ExtractFirstPageText(path)
	if err != nil {
		log.Printf("Text extraction failed for %s: %v", filename, err)
		outcome.Status = dto.StatusSkipped
		outcome.Reason = FailureReason(err)
		s.observe(outcome, started)
		return outcome
	}

	outcome.Fields = utils.ExtractInvoiceFields(text)
	outcome.Status, outcome.Reason = ClassifyExtraction(outcome.Fields)
	s.observe(outcome, started)
	return outcome
}

// Propose enriches an outcome with the proposed filename and the destination
// it would get under outputDir. Skipped documents are enriched too so a
// preview can show where they would have gone.
func (s *InvoiceService) Propose(outcome *dto.ParseOutcome, scheme dto.NamingScheme, outputDir string, organizeByDate bool) {
	outcome.ProposedFilename = naming.ProposedFilename(outcome.OriginalFilename, outcome.Fields, scheme)
	outcome.TargetPath = naming.TargetPath(outputDir, outcome.ProposedFilename, outcome.Fields, organizeByDate)
}

func (s *InvoiceService) observe(outcome *dto.ParseOutcome, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.DocumentsProcessed.WithLabelValues(string(outcome.Status)).Inc()
	s.metrics.ExtractDuration.Observe(time.Since(started).Seconds())
}

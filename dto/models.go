package dto

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusComplete Status = "Complete"
	StatusPartial  Status = "Partial"
	StatusSkipped  Status = "Skipped"
)

// NamingScheme selects how output filenames are built. Selected once per batch
// run and applied uniformly to every document in it.
type NamingScheme string

const (
	SchemeInvoiceNumber    NamingScheme = "invoice_number"
	SchemeVendorName       NamingScheme = "vendor_name"
	SchemeOriginalFilename NamingScheme = "original_filename"
)

func ParseNamingScheme(s string) (NamingScheme, error) {
	switch NamingScheme(s) {
	case SchemeInvoiceNumber, SchemeVendorName, SchemeOriginalFilename:
		return NamingScheme(s), nil
	}
	return "", fmt.Errorf("unknown naming scheme: %q", s)
}

// Field keys carried in a FieldMap.
const (
	FieldInvoiceNumber = "invoice_number"
	FieldDate          = "date"
	FieldTotalAmount   = "total_amount"
	FieldVendor        = "vendor"
)

// FieldMap holds extracted field values as raw text. After extraction it
// always carries the four fixed keys; a value may be empty.
type FieldMap map[string]string

func NewFieldMap() FieldMap {
	return FieldMap{
		FieldInvoiceNumber: "",
		FieldDate:          "",
		FieldTotalAmount:   "",
		FieldVendor:        "",
	}
}

// ParseOutcome is the per-document result of the extraction pipeline,
// enriched with the proposed filename and target path by the later stages.
// A document skipped at the read stage carries an empty field map.
type ParseOutcome struct {
	OriginalFilename string   `json:"original_filename"`
	Status           Status   `json:"status"`
	Reason           string   `json:"reason"`
	Fields           FieldMap `json:"fields"`
	ProposedFilename string   `json:"proposed_filename,omitempty"`
	TargetPath       string   `json:"target_path,omitempty"`
}

// BatchSummary aggregates one batch run.
type BatchSummary struct {
	RunID          string          `json:"run_id"`
	InputDir       string          `json:"input_dir"`
	OutputDir      string          `json:"output_dir"`
	Scheme         NamingScheme    `json:"scheme"`
	OrganizeByDate bool            `json:"organize_by_date"`
	DryRun         bool            `json:"dry_run"`
	Total          int             `json:"total"`
	Complete       int             `json:"complete"`
	Partial        int             `json:"partial"`
	Skipped        int             `json:"skipped"`
	Copied         int             `json:"copied"`
	CopyFailed     int             `json:"copy_failed"`
	StartedAt      time.Time       `json:"started_at"`
	FinishedAt     time.Time       `json:"finished_at"`
	Reports        []string        `json:"reports,omitempty"`
	Outcomes       []*ParseOutcome `json:"outcomes"`
}

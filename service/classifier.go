package service

import (
	"strings"

	"github.com/ehabahmed2/invfrog/dto"
)

// Fields counted by the classifier, in reporting order. Vendor is
// informational only and never counts as missing.
var requiredFields = []string{
	dto.FieldInvoiceNumber,
	dto.FieldDate,
	dto.FieldTotalAmount,
}

// ClassifyExtraction grades a field map. A text-bearing document is never
// skipped for missing fields alone; skipping is reserved for read failures.
func ClassifyExtraction(fields dto.FieldMap) (dto.Status, string) {
	var missing []string
	for _, key := range requiredFields {
		if fields[key] == "" {
			missing = append(missing, key)
		}
	}

	switch {
	case len(missing) == 0:
		return dto.StatusComplete, "All fields found"
	case len(missing) < len(requiredFields):
		return dto.StatusPartial, "Missing: " + strings.Join(missing, ", ")
	default:
		return dto.StatusPartial, "Low confidence extraction"
	}
}

package utils

import (
	"regexp"
	"strings"

	"github.com/ehabahmed2/invfrog/dto"
)

// ExtractInvoiceFields runs the per-field heuristics over first-page text and
// returns a map that always carries the four invoice keys. Values are raw
// matched text; normalization for filenames happens later.
func ExtractInvoiceFields(text string) dto.FieldMap {
	// Carriage returns break the line scans below.
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	fields := dto.NewFieldMap()
	fields[dto.FieldInvoiceNumber] = extractInvoiceNumber(text)
	fields[dto.FieldDate] = extractInvoiceDate(text)
	fields[dto.FieldTotalAmount] = extractTotalAmount(lines)
	fields[dto.FieldVendor] = extractVendorName(lines)
	return fields
}

// extractInvoiceNumber tries labeled forms first, then a bare numeric "#".
// A value that is itself a label word means the pattern grabbed the wrong
// token; the next pattern gets a chance.
func extractInvoiceNumber(text string) string {
	patterns := []string{
		`(?i)(?:Invoice\s*(?:No\.?|Number|#)\s*[:\s]*)\s*([A-Za-z0-9\-_/]{2,})`,
		`(?i)#\s*(\d{4,})`,
	}

	for _, pattern := range patterns {
		re := regexp.MustCompile(pattern)
		if matches := re.FindStringSubmatch(text); len(matches) > 1 {
			val := strings.TrimSpace(matches[1])
			switch strings.ToLower(val) {
			case "date", "no", "number":
				continue
			}
			return val
		}
	}

	return ""
}

// extractInvoiceDate tries a labeled numeric date, a bare YYYY-first date,
// then a month-name date. Separators are normalized to "-"; month-name dates
// are kept as matched.
func extractInvoiceDate(text string) string {
	patterns := []string{
		`(?i)(?:Date)[\s:]*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`,
		`(?i)(\d{4}[/\-.]\d{1,2}[/\-.]\d{1,2})`,
		`(?i)([A-Za-z]{3,9}\s+\d{1,2},?\s+\d{4})`,
	}

	separators := strings.NewReplacer("/", "-", ".", "-")

	for _, pattern := range patterns {
		re := regexp.MustCompile(pattern)
		if matches := re.FindStringSubmatch(text); len(matches) > 1 {
			return separators.Replace(matches[1])
		}
	}

	return ""
}

// extractTotalAmount scans for a "total" line that is not a subtotal and takes
// the last amount token on it; a grand total usually trails any breakdown on
// the same line. Lines matching the keyword but carrying no amount are passed
// over.
func extractTotalAmount(lines []string) string {
	amountRe := regexp.MustCompile(`[\d,]+\.\d{2}`)

	for _, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "total") || strings.Contains(lower, "sub") {
			continue
		}
		if amounts := amountRe.FindAllString(line, -1); len(amounts) > 0 {
			return amounts[len(amounts)-1]
		}
	}

	return ""
}

// extractVendorName checks the document header for a line carrying a
// legal-entity keyword. Only the first 5 lines qualify.
func extractVendorName(lines []string) string {
	keywords := []string{"inc", "llc", "ltd", "gmbh", "corp"}

	limit := len(lines)
	if limit > 5 {
		limit = 5
	}

	for _, line := range lines[:limit] {
		lower := strings.ToLower(line)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return strings.TrimSpace(line)
			}
		}
	}

	return ""
}

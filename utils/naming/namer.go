package naming

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ehabahmed2/invfrog/dto"
)

// Recognized date layouts, tried in order. The unpadded reference forms accept
// one- and two-digit day/month, so both "2023-10-25" and "2023-1-5" parse.
var dateLayouts = []string{
	"2006-1-2",
	"1/2/2006",
	"2/1/2006",
	"2006/1/2",
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// DateForFilename renders an extracted date string as an 8-digit YYYYMMDD
// component. Strings matching no recognized layout fall back to their bare
// digits, truncated to 8, provided at least 6 remain; otherwise the component
// is empty.
func DateForFilename(raw string) string {
	if raw == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("20060102")
		}
	}

	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) < 6 {
		return ""
	}
	if len(digits) > 8 {
		digits = digits[:8]
	}
	return digits
}

// ProposedFilename deterministically builds the sanitized output filename for
// one document under the selected scheme. Same inputs, same name.
func ProposedFilename(originalFilename string, fields dto.FieldMap, scheme dto.NamingScheme) string {
	inv := Sanitize(fields[dto.FieldInvoiceNumber])

	vendor := fields[dto.FieldVendor]
	if vendor == "" {
		vendor = "Unknown_Vendor"
	}
	vendor = Sanitize(vendor)

	origBase := strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename))
	date := DateForFilename(fields[dto.FieldDate])

	switch scheme {
	case dto.SchemeInvoiceNumber:
		if inv != "" && inv != DefaultRules.Placeholder {
			return joinName("INV", inv, date)
		}
		return joinName("INV_unknown", Sanitize(origBase))

	case dto.SchemeVendorName:
		return joinName(vendor, "INV", inv, date)

	case dto.SchemeOriginalFilename:
		if date != "" {
			return date + "_" + Sanitize(origBase) + ".pdf"
		}
		return Sanitize(origBase) + ".pdf"
	}

	// Contract violation; schemes are validated at the input boundary.
	return originalFilename
}

// joinName joins the non-empty parts with underscores so a missing component
// never leaves a double underscore behind.
func joinName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "_") + ".pdf"
}

package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ehabahmed2/invfrog/dto"
)

var yearToken = regexp.MustCompile(`20\d{2}`)

// TargetPath computes the destination for a proposed filename without touching
// the filesystem. Folder order is <base>/[<bucket>/]<vendor>/<filename>. The
// time bucket is the first 20xx match in the raw date string, so documents
// group by calendar year.
func TargetPath(baseDir, filename string, fields dto.FieldMap, organizeByDate bool) string {
	segments := make([]string, 0, 3)

	if organizeByDate {
		bucket := "Unknown_Date"
		if year := yearToken.FindString(fields[dto.FieldDate]); year != "" {
			bucket = year
		}
		segments = append(segments, bucket)
	}

	vendor := fields[dto.FieldVendor]
	if vendor == "" {
		vendor = "Unknown_Vendor"
	}
	segments = append(segments, Sanitize(vendor), filename)

	return filepath.Join(append([]string{baseDir}, segments...)...)
}

// UniquePath returns path unchanged if nothing exists there, otherwise the
// first _1, _2, ... suffixed variant that is free. Suffixes increase
// monotonically; each candidate is checked exactly once.
func UniquePath(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", base, counter, ext)
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}

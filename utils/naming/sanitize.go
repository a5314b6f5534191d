// Package naming builds sanitized output filenames and destination paths for
// parsed invoice documents.
package naming

import (
	"regexp"
	"strings"
)

// Rules captures the filename legality constraints applied at the filesystem
// boundary: the characters to replace, the length cap, and the placeholder for
// absent values.
type Rules struct {
	Illegal     *regexp.Regexp
	MaxLength   int
	Placeholder string
}

// DefaultRules matches the common denominator of Windows and POSIX filenames.
var DefaultRules = Rules{
	Illegal:     regexp.MustCompile(`[\\/:*?"<>|]`),
	MaxLength:   200,
	Placeholder: "unknown",
}

// Sanitize applies DefaultRules to a single name component.
func Sanitize(name string) string {
	return DefaultRules.Apply(name)
}

// Apply replaces illegal characters with underscores, trims surrounding
// whitespace and caps the length. Empty input yields the placeholder.
func (r Rules) Apply(name string) string {
	if name == "" {
		return r.Placeholder
	}
	name = r.Illegal.ReplaceAllString(name, "_")
	name = strings.TrimSpace(name)
	if runes := []rune(name); len(runes) > r.MaxLength {
		name = string(runes[:r.MaxLength])
	}
	return name
}

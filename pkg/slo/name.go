package slo

import (
	"regexp"
	"strings"
)

// MaxNameLength is the maximum size of a Nobl9 resource name (RFC 1123 label)
const MaxNameLength = 63

var (
	forbiddenCharsRegex = regexp.MustCompile(`[^a-zA-Z0-9\- ]`)
	whitespaceRegex     = regexp.MustCompile(`\s+`)
	hyphensRegex        = regexp.MustCompile(`-+`)
)

// NormalizeName turns a display name into a name usable as a Nobl9 resource identifier.
// The steps order matters: truncation happens before trimming hyphens.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = forbiddenCharsRegex.ReplaceAllString(name, "")
	name = whitespaceRegex.ReplaceAllString(name, "-")
	name = hyphensRegex.ReplaceAllString(name, "-")
	// only ASCII characters are left at this point
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	return strings.Trim(name, "-")
}

// truncate keeps the first max characters of s
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

package slo

import "strings"

// ResolveTag returns the normalized value of the first tag starting with prefix.
// The default value is returned as is when no tag matches.
func ResolveTag(tags []string, prefix string, defaultValue string) string {
	if prefix == "" {
		return defaultValue
	}
	for _, tag := range tags {
		if !strings.HasPrefix(tag, prefix) {
			continue
		}
		_, value, found := strings.Cut(tag, ":")
		if !found {
			continue
		}
		return NormalizeName(value)
	}
	return defaultValue
}

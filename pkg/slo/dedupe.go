package slo

import "strings"

// Dedupe removes the documents already present earlier in the output
func Dedupe(output string) string {
	chunks := strings.Split(output, DocumentSeparator)
	seen := make(map[string]bool, len(chunks))
	var builder strings.Builder
	for _, chunk := range chunks {
		if chunk == "" || seen[chunk] {
			continue
		}
		seen[chunk] = true
		builder.WriteString(chunk)
		builder.WriteString(DocumentSeparator)
	}
	return builder.String()
}

package slo

import (
	"slices"
	"strings"

	"github.com/appclacks/slo-exporter/pkg/slo/aggregates"
)

type Result struct {
	// Output contains the rendered documents
	Output string
	// Converted is the number of SLOs rendered
	Converted int
	// SkippedNoQuery counts SLOs which are not ratio based
	SkippedNoQuery int
	// SkippedFilter counts SLOs excluded by the include tag
	SkippedFilter int
	// Objectives is the number of objective blocks rendered
	Objectives int
}

func (r *Result) Skipped() int {
	return r.SkippedNoQuery + r.SkippedFilter
}

func (r *Result) Empty() bool {
	return r.Output == ""
}

// Documents returns the number of documents in the output
func (r *Result) Documents() int {
	return strings.Count(r.Output, DocumentSeparator)
}

// Convert renders the documents of every eligible SLO, in the input order.
// An empty result is not an error, callers should check Result.Empty().
func Convert(records []aggregates.RawSLO, templates *TemplateSet, config Configuration) (*Result, error) {
	var builder strings.Builder
	result := &Result{}
	for _, record := range records {
		if record.Query == nil {
			result.SkippedNoQuery++
			continue
		}
		if config.IncludeTag != "" && !slices.Contains(record.Tags, config.IncludeTag) {
			result.SkippedFilter++
			continue
		}
		normalized, err := Extract(record, config)
		if err != nil {
			return nil, err
		}
		documents, err := Render(normalized, templates)
		if err != nil {
			return nil, err
		}
		builder.WriteString(documents)
		result.Converted++
		result.Objectives += len(normalized.Objectives)
	}
	result.Output = builder.String()
	return result, nil
}

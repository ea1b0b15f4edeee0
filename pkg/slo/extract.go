package slo

import (
	"math"
	"strings"

	"github.com/appclacks/slo-exporter/pkg/slo/aggregates"
)

var windowUnits = map[string]string{
	"d": "Day",
	"w": "Week",
	"h": "Hour",
	"m": "Minute",
}

// escapeDescription prevents descriptions from breaking the YAML documents
func escapeDescription(description string) string {
	description = strings.ReplaceAll(description, "\n", " ")
	return strings.ReplaceAll(description, `"`, `\"`)
}

// budgetTarget converts a percentage into a ratio, rounded to remove floating point noise
func budgetTarget(target float64) float64 {
	return math.Round(target/100*1e10) / 1e10
}

// splitTimeframe splits a timeframe (30d) in a count and a unit
func splitTimeframe(timeframe string) (string, string) {
	runes := []rune(timeframe)
	if len(runes) == 0 {
		return "", windowUnits["d"]
	}
	suffix := string(runes[len(runes)-1])
	unit, ok := windowUnits[suffix]
	if !ok {
		unit = windowUnits["d"]
	}
	return string(runes[:len(runes)-1]), unit
}

// Extract builds the normalized representation of a SLO
func Extract(raw aggregates.RawSLO, config Configuration) (*aggregates.NormalizedSLO, error) {
	if len(raw.Thresholds) == 0 {
		return nil, NewMalformedRecord(raw.Name, "no threshold")
	}
	if raw.Query == nil {
		return nil, NewMalformedRecord(raw.Name, "no query")
	}
	if raw.Query.Numerator == "" {
		return nil, NewMalformedRecord(raw.Name, "query numerator is missing")
	}
	if raw.Query.Denominator == "" {
		return nil, NewMalformedRecord(raw.Name, "query denominator is missing")
	}
	id := NormalizeName(raw.Name)
	serviceName := ResolveTag(raw.Tags, config.ServiceTagPrefix, id)
	windowCount, windowUnit := splitTimeframe(raw.Thresholds[0].Timeframe)

	result := &aggregates.NormalizedSLO{
		ID:                id,
		DisplayName:       truncate(raw.Name, MaxNameLength),
		Description:       escapeDescription(raw.Description),
		Datasource:        config.Datasource,
		DatasourceProject: config.DatasourceProject,
		Project:           ResolveTag(raw.Tags, config.ProjectTag, config.Project),
		Kind:              config.Kind,
		ServiceName:       serviceName,
		IsUniqueService:   serviceName != id,
		Good:              raw.Query.Numerator,
		Total:             raw.Query.Denominator,
		Objectives:        make([]aggregates.Objective, 0, len(raw.Thresholds)),
		WindowCount:       windowCount,
		WindowUnit:        windowUnit,
	}
	for i, threshold := range raw.Thresholds {
		result.Objectives = append(result.Objectives, aggregates.Objective{
			BudgetTarget: budgetTarget(threshold.Target),
			DisplayName:  threshold.TargetDisplay,
			Index:        i,
		})
	}
	return result, nil
}

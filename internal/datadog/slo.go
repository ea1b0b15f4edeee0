package datadog

import (
	"strconv"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"
	"github.com/appclacks/slo-exporter/pkg/slo/aggregates"
)

// Threshold, Query, SLO and SLOList follow the Datadog SLO API JSON format

type Threshold struct {
	Target        float64 `json:"target"`
	TargetDisplay string  `json:"target_display"`
	Timeframe     string  `json:"timeframe"`
}

type Query struct {
	Numerator   string `json:"numerator"`
	Denominator string `json:"denominator"`
}

type SLO struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Description *string     `json:"description"`
	Tags        []string    `json:"tags"`
	Thresholds  []Threshold `json:"thresholds"`
	Query       *Query      `json:"query"`
}

type SLOList struct {
	Data []SLO `json:"data"`
}

func targetDisplay(target float64, display string) string {
	if display != "" {
		return display
	}
	return strconv.FormatFloat(target, 'f', -1, 64)
}

func (s SLO) ToRawSLO() aggregates.RawSLO {
	raw := aggregates.RawSLO{
		ID:         s.ID,
		Name:       s.Name,
		Tags:       s.Tags,
		Thresholds: make([]aggregates.Threshold, 0, len(s.Thresholds)),
	}
	if s.Description != nil {
		raw.Description = *s.Description
	}
	for _, threshold := range s.Thresholds {
		raw.Thresholds = append(raw.Thresholds, aggregates.Threshold{
			Target:        threshold.Target,
			TargetDisplay: targetDisplay(threshold.Target, threshold.TargetDisplay),
			Timeframe:     threshold.Timeframe,
		})
	}
	if s.Query != nil {
		raw.Query = &aggregates.Query{
			Numerator:   s.Query.Numerator,
			Denominator: s.Query.Denominator,
		}
	}
	return raw
}

func ToRawSLOs(slos []SLO) []aggregates.RawSLO {
	result := make([]aggregates.RawSLO, 0, len(slos))
	for _, slo := range slos {
		result = append(result, slo.ToRawSLO())
	}
	return result
}

// fromAPI converts a SLO returned by the Datadog client
func fromAPI(slo datadogV1.ServiceLevelObjective) aggregates.RawSLO {
	raw := aggregates.RawSLO{
		ID:          slo.GetId(),
		Name:        slo.Name,
		Description: slo.GetDescription(),
		Tags:        slo.Tags,
		Thresholds:  make([]aggregates.Threshold, 0, len(slo.Thresholds)),
	}
	for _, threshold := range slo.Thresholds {
		raw.Thresholds = append(raw.Thresholds, aggregates.Threshold{
			Target:        threshold.Target,
			TargetDisplay: targetDisplay(threshold.Target, threshold.GetTargetDisplay()),
			Timeframe:     string(threshold.Timeframe),
		})
	}
	if slo.Query != nil {
		raw.Query = &aggregates.Query{
			Numerator:   slo.Query.Numerator,
			Denominator: slo.Query.Denominator,
		}
	}
	return raw
}

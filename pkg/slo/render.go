package slo

import (
	"io"
	"strconv"
	"strings"

	"github.com/appclacks/slo-exporter/pkg/slo/aggregates"
	"github.com/valyala/fasttemplate"
)

const (
	// DocumentSeparator ends every document
	DocumentSeparator = "---\n"
	// ObjectivesHeader is appended to the SLO document before the objectives
	ObjectivesHeader = "  objectives:\n"
)

func sloFields(slo *aggregates.NormalizedSLO) map[string]string {
	return map[string]string{
		"id":                 slo.ID,
		"display_name":       slo.DisplayName,
		"description":        slo.Description,
		"datasource":         slo.Datasource,
		"datasource_project": slo.DatasourceProject,
		"project":            slo.Project,
		"kind":               slo.Kind,
		"service_name":       slo.ServiceName,
		"good":               slo.Good,
		"total":              slo.Total,
		"window_count":       slo.WindowCount,
		"window_unit":        slo.WindowUnit,
	}
}

func objectiveFields(slo *aggregates.NormalizedSLO, objective aggregates.Objective) map[string]string {
	return map[string]string{
		"id":            slo.ID,
		"project":       slo.Project,
		"service_name":  slo.ServiceName,
		"good":          slo.Good,
		"total":         slo.Total,
		"display_name":  objective.DisplayName,
		"budget_target": strconv.FormatFloat(objective.BudgetTarget, 'f', -1, 64),
		"index":         strconv.Itoa(objective.Index),
	}
}

// interpolate replaces every {field} placeholder of the template
func interpolate(name string, template string, fields map[string]string) (string, error) {
	return fasttemplate.ExecuteFuncStringWithErr(template, "{", "}", func(w io.Writer, tag string) (int, error) {
		value, ok := fields[tag]
		if !ok {
			return 0, NewMissingTemplateField(name, tag)
		}
		return io.WriteString(w, value)
	})
}

// Render builds the documents of a SLO: service, SLO with its objectives, time window.
func Render(slo *aggregates.NormalizedSLO, templates *TemplateSet) (string, error) {
	var builder strings.Builder
	fields := sloFields(slo)

	serviceName := serviceTemplate
	service := templates.Service
	if slo.IsUniqueService && templates.UniqueService != "" {
		serviceName = uniqueServiceTemplate
		service = templates.UniqueService
	}
	document, err := interpolate(serviceName, service, fields)
	if err != nil {
		return "", err
	}
	builder.WriteString(document)
	builder.WriteString(DocumentSeparator)

	document, err = interpolate(sloTemplate, templates.SLO, fields)
	if err != nil {
		return "", err
	}
	builder.WriteString(document)
	builder.WriteString(ObjectivesHeader)

	for _, objective := range slo.Objectives {
		document, err = interpolate(objectiveTemplate, templates.Objective, objectiveFields(slo, objective))
		if err != nil {
			return "", err
		}
		builder.WriteString(document)
	}

	document, err = interpolate(timeWindowTemplate, templates.TimeWindow, fields)
	if err != nil {
		return "", err
	}
	builder.WriteString(document)
	builder.WriteString(DocumentSeparator)
	return builder.String(), nil
}

package slo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/appclacks/slo-exporter/pkg/slo/aggregates"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/appclacks/slo-exporter/pkg/slo")

// Source returns the SLOs to convert
type Source interface {
	ListSLOs(ctx context.Context) ([]aggregates.RawSLO, error)
}

type Store interface {
	CreateExport(ctx context.Context, export aggregates.Export) error
	GetExport(ctx context.Context, id string) (*aggregates.Export, error)
	ListExports(ctx context.Context) ([]*aggregates.Export, error)
	DeleteExport(ctx context.Context, id string) error
}

type Service struct {
	logger             *slog.Logger
	templates          *TemplateSet
	config             Configuration
	source             Source
	store              Store
	recordsCounter     *prometheus.CounterVec
	conversionsCounter *prometheus.CounterVec
}

// New creates the service. source and store can be nil if Export and the export history are not used.
func New(logger *slog.Logger, templates *TemplateSet, config Configuration, source Source, store Store, registry prometheus.Registerer) (*Service, error) {
	recordsCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slo_records_total",
			Help: "Count the number of SLOs processed by the converter",
		},
		[]string{"outcome"})
	err := registry.Register(recordsCounter)
	if err != nil {
		return nil, err
	}
	conversionsCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slo_conversions_total",
			Help: "Count the number of conversions",
		},
		[]string{"status"})
	err = registry.Register(conversionsCounter)
	if err != nil {
		return nil, err
	}
	return &Service{
		logger:             logger,
		templates:          templates,
		config:             config,
		source:             source,
		store:              store,
		recordsCounter:     recordsCounter,
		conversionsCounter: conversionsCounter,
	}, nil
}

// Convert converts and deduplicates the records. includeTag overrides the configured include tag if not empty.
func (s *Service) Convert(ctx context.Context, records []aggregates.RawSLO, includeTag string) (*Result, error) {
	_, span := tracer.Start(ctx, "slo.convert", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	config := s.config
	if includeTag != "" {
		config.IncludeTag = includeTag
	}
	span.SetAttributes(attribute.Int("slo.records", len(records)))
	s.logger.Debug(fmt.Sprintf("converting %d SLOs", len(records)))

	result, err := Convert(records, s.templates, config)
	if err != nil {
		s.conversionsCounter.With(prometheus.Labels{"status": "failure"}).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.recordsCounter.With(prometheus.Labels{"outcome": "converted"}).Add(float64(result.Converted))
	s.recordsCounter.With(prometheus.Labels{"outcome": "skipped_no_query"}).Add(float64(result.SkippedNoQuery))
	s.recordsCounter.With(prometheus.Labels{"outcome": "skipped_filter"}).Add(float64(result.SkippedFilter))
	if result.Empty() {
		s.conversionsCounter.With(prometheus.Labels{"status": "empty"}).Inc()
		s.logger.Warn(fmt.Sprintf("no SLO converted (%d skipped without query, %d skipped by tag filter)", result.SkippedNoQuery, result.SkippedFilter))
		return result, nil
	}
	result.Output = Dedupe(result.Output)
	s.conversionsCounter.With(prometheus.Labels{"status": "success"}).Inc()
	span.SetAttributes(attribute.Int("slo.converted", result.Converted), attribute.Int("slo.documents", result.Documents()))
	s.logger.Info(fmt.Sprintf("%d SLOs converted into %d documents, %d skipped", result.Converted, result.Documents(), result.Skipped()))
	return result, nil
}

// Export fetches the SLOs from the source, converts them and saves the result in the store
func (s *Service) Export(ctx context.Context) (*aggregates.Export, error) {
	ctx, span := tracer.Start(ctx, "slo.export", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	if s.source == nil {
		return nil, fmt.Errorf("no SLO source configured")
	}
	records, err := s.source.ListSLOs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fail to list SLOs: %w", err)
	}
	result, err := s.Convert(ctx, records, "")
	if err != nil {
		return nil, err
	}
	if result.Empty() {
		return nil, NewEmptyResult()
	}
	span.SetAttributes(attribute.Int("slo.records", len(records)))
	export := aggregates.Export{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Converted:  result.Converted,
		Skipped:    result.Skipped(),
		Objectives: result.Objectives,
		Documents:  result.Documents(),
		Content:    result.Output,
	}
	if s.store != nil {
		s.logger.Info(fmt.Sprintf("saving export %s", export.ID))
		err = s.store.CreateExport(ctx, export)
		if err != nil {
			return nil, err
		}
	}
	return &export, nil
}

func (s *Service) GetExport(ctx context.Context, id string) (*aggregates.Export, error) {
	return s.store.GetExport(ctx, id)
}

func (s *Service) ListExports(ctx context.Context) ([]*aggregates.Export, error) {
	return s.store.ListExports(ctx)
}

func (s *Service) DeleteExport(ctx context.Context, id string) error {
	s.logger.Info(fmt.Sprintf("deleting export %s", id))
	return s.store.DeleteExport(ctx, id)
}

package handlers

import (
	"context"

	"github.com/appclacks/slo-exporter/pkg/slo"
	"github.com/appclacks/slo-exporter/pkg/slo/aggregates"
)

type SLOService interface {
	Convert(ctx context.Context, records []aggregates.RawSLO, includeTag string) (*slo.Result, error)
	Export(ctx context.Context) (*aggregates.Export, error)
	GetExport(ctx context.Context, id string) (*aggregates.Export, error)
	ListExports(ctx context.Context) ([]*aggregates.Export, error)
	DeleteExport(ctx context.Context, id string) error
}

type Builder struct {
	slo SLOService
}

func NewBuilder(slo SLOService) *Builder {
	return &Builder{
		slo: slo,
	}
}

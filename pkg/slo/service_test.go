package slo_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/appclacks/slo-exporter/pkg/slo"
	"github.com/appclacks/slo-exporter/pkg/slo/aggregates"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) ListSLOs(ctx context.Context) ([]aggregates.RawSLO, error) {
	args := m.Called(ctx)
	return args.Get(0).([]aggregates.RawSLO), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateExport(ctx context.Context, export aggregates.Export) error {
	return m.Called(ctx, export).Error(0)
}

func (m *mockStore) GetExport(ctx context.Context, id string) (*aggregates.Export, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*aggregates.Export), args.Error(1)
}

func (m *mockStore) ListExports(ctx context.Context) ([]*aggregates.Export, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*aggregates.Export), args.Error(1)
}

func (m *mockStore) DeleteExport(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, label string, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == label && pair.GetValue() == value {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestServiceConvert(t *testing.T) {
	reg := prometheus.NewRegistry()
	service, err := slo.New(slog.Default(), testTemplates(), testConfig, nil, nil, reg)
	require.NoError(t, err)

	monitor := ratioSLO("monitor", aggregates.Threshold{Target: 99, Timeframe: "7d"})
	monitor.Query = nil
	tagged := ratioSLO("tagged", aggregates.Threshold{Target: 99, Timeframe: "7d"})
	tagged.Tags = []string{"env:prod"}
	records := []aggregates.RawSLO{
		tagged,
		ratioSLO("untagged", aggregates.Threshold{Target: 99, Timeframe: "7d"}),
		monitor,
	}

	result, err := service.Convert(context.Background(), records, "env:prod")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 2, result.Skipped())
	assert.Equal(t, 2, result.Documents())

	result, err = service.Convert(context.Background(), records, "")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Converted)

	result, err = service.Convert(context.Background(), []aggregates.RawSLO{monitor}, "")
	require.NoError(t, err)
	assert.True(t, result.Empty())

	_, err = service.Convert(context.Background(), []aggregates.RawSLO{ratioSLO("malformed")}, "")
	require.Error(t, err)

	assert.Equal(t, float64(3), counterValue(t, reg, "slo_records_total", "outcome", "converted"))
	assert.Equal(t, float64(3), counterValue(t, reg, "slo_records_total", "outcome", "skipped_no_query"))
	assert.Equal(t, float64(1), counterValue(t, reg, "slo_records_total", "outcome", "skipped_filter"))
	assert.Equal(t, float64(2), counterValue(t, reg, "slo_conversions_total", "status", "success"))
	assert.Equal(t, float64(1), counterValue(t, reg, "slo_conversions_total", "status", "empty"))
	assert.Equal(t, float64(1), counterValue(t, reg, "slo_conversions_total", "status", "failure"))
}

func TestServiceConvertDeduplicates(t *testing.T) {
	config := testConfig
	config.ServiceTagPrefix = "service"
	service, err := slo.New(slog.Default(), testTemplates(), config, nil, nil, prometheus.NewRegistry())
	require.NoError(t, err)
	first := ratioSLO("first", aggregates.Threshold{Target: 99, Timeframe: "7d"})
	first.Tags = []string{"service:shop"}
	second := ratioSLO("second", aggregates.Threshold{Target: 99, Timeframe: "7d"})
	second.Tags = []string{"service:shop"}

	result, err := service.Convert(context.Background(), []aggregates.RawSLO{first, second}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Documents())
}

func TestServiceExport(t *testing.T) {
	source := new(mockSource)
	store := new(mockStore)
	service, err := slo.New(slog.Default(), testTemplates(), testConfig, source, store, prometheus.NewRegistry())
	require.NoError(t, err)

	records := []aggregates.RawSLO{
		ratioSLO("first", aggregates.Threshold{Target: 99, Timeframe: "7d"}, aggregates.Threshold{Target: 99.9, Timeframe: "30d"}),
	}
	source.On("ListSLOs", mock.Anything).Return(records, nil).Once()
	store.On("CreateExport", mock.Anything, mock.MatchedBy(func(export aggregates.Export) bool {
		return export.ID != "" && export.Converted == 1 && export.Objectives == 2 && export.Documents == 2
	})).Return(nil).Once()

	export, err := service.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, export.Converted)
	assert.Equal(t, 0, export.Skipped)
	assert.False(t, export.CreatedAt.IsZero())
	assert.Contains(t, export.Content, "slo first ")
	source.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestServiceExportEmpty(t *testing.T) {
	source := new(mockSource)
	store := new(mockStore)
	service, err := slo.New(slog.Default(), testTemplates(), testConfig, source, store, prometheus.NewRegistry())
	require.NoError(t, err)

	source.On("ListSLOs", mock.Anything).Return([]aggregates.RawSLO{}, nil).Once()
	_, err = service.Export(context.Background())
	require.Error(t, err)
	assert.True(t, slo.IsKind(err, slo.EmptyResult))
	store.AssertNotCalled(t, "CreateExport", mock.Anything, mock.Anything)
}

func TestServiceExportSourceError(t *testing.T) {
	source := new(mockSource)
	service, err := slo.New(slog.Default(), testTemplates(), testConfig, source, nil, prometheus.NewRegistry())
	require.NoError(t, err)

	source.On("ListSLOs", mock.Anything).Return([]aggregates.RawSLO{}, errors.New("forbidden")).Once()
	_, err = service.Export(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
}

func TestServiceDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := slo.New(slog.Default(), testTemplates(), testConfig, nil, nil, reg)
	require.NoError(t, err)
	_, err = slo.New(slog.Default(), testTemplates(), testConfig, nil, nil, reg)
	require.Error(t, err)
}

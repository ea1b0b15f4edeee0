package slo_test

import (
	"strings"
	"testing"

	"github.com/appclacks/slo-exporter/pkg/slo"
	"github.com/appclacks/slo-exporter/pkg/slo/aggregates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertSkipsSLOWithoutQuery(t *testing.T) {
	monitor := ratioSLO("monitor", aggregates.Threshold{Target: 99, Timeframe: "7d"})
	monitor.Query = nil
	records := []aggregates.RawSLO{
		ratioSLO("first", aggregates.Threshold{Target: 99, TargetDisplay: "99", Timeframe: "7d"}),
		monitor,
		ratioSLO("second", aggregates.Threshold{Target: 99.9, TargetDisplay: "99.9", Timeframe: "30d"}),
	}
	result, err := slo.Convert(records, testTemplates(), testConfig)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 1, result.SkippedNoQuery)
	assert.Equal(t, 0, result.SkippedFilter)
	assert.Equal(t, 1, result.Skipped())
	assert.Equal(t, 4, result.Documents())
	assert.False(t, result.Empty())

	expected := `service first default
---
slo first "first" "description"
  objectives:
  - 0 0.99 99 sum:good/sum:total
window 7 Day
---
service second default
---
slo second "second" "description"
  objectives:
  - 0 0.999 99.9 sum:good/sum:total
window 30 Day
---
`
	assert.Equal(t, expected, result.Output)
}

func TestConvertIncludeTag(t *testing.T) {
	tagged := ratioSLO("tagged", aggregates.Threshold{Target: 99, Timeframe: "7d"})
	tagged.Tags = []string{"team:sre", "exporter:nobl9"}
	untagged := ratioSLO("untagged", aggregates.Threshold{Target: 99, Timeframe: "7d"})
	untagged.Tags = []string{"team:sre"}

	config := testConfig
	config.IncludeTag = "exporter:nobl9"
	result, err := slo.Convert([]aggregates.RawSLO{tagged, untagged}, testTemplates(), config)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 1, result.SkippedFilter)
	assert.Contains(t, result.Output, "slo tagged ")
	assert.NotContains(t, result.Output, "untagged")

	result, err = slo.Convert([]aggregates.RawSLO{tagged, untagged}, testTemplates(), testConfig)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Converted)
}

func TestConvertObjectivesCount(t *testing.T) {
	records := []aggregates.RawSLO{
		ratioSLO("one", aggregates.Threshold{Target: 99, Timeframe: "7d"}),
		ratioSLO("three",
			aggregates.Threshold{Target: 99, Timeframe: "7d"},
			aggregates.Threshold{Target: 99.5, Timeframe: "30d"},
			aggregates.Threshold{Target: 99.9, Timeframe: "90d"}),
		ratioSLO("two",
			aggregates.Threshold{Target: 90, Timeframe: "7d"},
			aggregates.Threshold{Target: 95, Timeframe: "7d"}),
	}
	result, err := slo.Convert(records, testTemplates(), testConfig)
	require.NoError(t, err)
	assert.Equal(t, 6, result.Objectives)
	assert.Equal(t, 6, strings.Count(result.Output, "sum:good/sum:total"))
}

func TestConvertMalformedRecordAborts(t *testing.T) {
	records := []aggregates.RawSLO{
		ratioSLO("valid", aggregates.Threshold{Target: 99, Timeframe: "7d"}),
		ratioSLO("no thresholds"),
	}
	result, err := slo.Convert(records, testTemplates(), testConfig)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, slo.IsKind(err, slo.MalformedRecord))
}

func TestConvertMissingTemplateField(t *testing.T) {
	templates := testTemplates()
	templates.TimeWindow = "{window}\n"
	_, err := slo.Convert([]aggregates.RawSLO{
		ratioSLO("valid", aggregates.Threshold{Target: 99, Timeframe: "7d"}),
	}, templates, testConfig)
	require.Error(t, err)
	assert.True(t, slo.IsKind(err, slo.MissingTemplateField))
}

func TestConvertEmpty(t *testing.T) {
	monitor := ratioSLO("monitor", aggregates.Threshold{Target: 99, Timeframe: "7d"})
	monitor.Query = nil
	for _, records := range [][]aggregates.RawSLO{nil, {monitor}} {
		result, err := slo.Convert(records, testTemplates(), testConfig)
		require.NoError(t, err)
		assert.True(t, result.Empty())
		assert.Equal(t, 0, result.Documents())
	}
}

func TestConvertSharedServiceIsDeduplicated(t *testing.T) {
	config := testConfig
	config.ServiceTagPrefix = "service"
	first := ratioSLO("first", aggregates.Threshold{Target: 99, Timeframe: "7d"})
	first.Tags = []string{"service:shop"}
	second := ratioSLO("second", aggregates.Threshold{Target: 99, Timeframe: "7d"})
	second.Tags = []string{"service:shop"}

	result, err := slo.Convert([]aggregates.RawSLO{first, second}, testTemplates(), config)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(result.Output, "unique service shop\n"))

	deduplicated := slo.Dedupe(result.Output)
	assert.Equal(t, 1, strings.Count(deduplicated, "unique service shop\n"))
	assert.Equal(t, 3, strings.Count(deduplicated, slo.DocumentSeparator))
}

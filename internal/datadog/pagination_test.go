package datadog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakePages(total int) (pageFunc, *[]int64) {
	offsets := []int64{}
	return func(_ context.Context, offset int64, limit int64) ([]datadogV1.ServiceLevelObjective, error) {
		offsets = append(offsets, offset)
		page := []datadogV1.ServiceLevelObjective{}
		for i := offset; i < offset+limit && i < int64(total); i++ {
			page = append(page, datadogV1.ServiceLevelObjective{Name: fmt.Sprintf("slo-%d", i)})
		}
		return page, nil
	}, &offsets
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		name    string
		total   int
		offsets []int64
	}{
		{name: "empty", total: 0, offsets: []int64{0}},
		{name: "single page", total: 3, offsets: []int64{0}},
		{name: "exact pages", total: 4, offsets: []int64{0, 2, 4}},
		{name: "partial last page", total: 5, offsets: []int64{0, 2, 4}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pageSize := int64(2)
			if c.name == "single page" {
				pageSize = 10
			}
			fetch, offsets := fakePages(c.total)
			result, err := paginate(context.Background(), slog.Default(), pageSize, fetch)
			require.NoError(t, err)
			require.Len(t, result, c.total)
			for i, slo := range result {
				assert.Equal(t, fmt.Sprintf("slo-%d", i), slo.Name)
			}
			assert.Equal(t, c.offsets, *offsets)
		})
	}
}

func TestPaginateError(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, offset int64, limit int64) ([]datadogV1.ServiceLevelObjective, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("rate limited")
		}
		return make([]datadogV1.ServiceLevelObjective, limit), nil
	}
	_, err := paginate(context.Background(), slog.Default(), 2, fetch)
	require.ErrorContains(t, err, "rate limited")
	assert.Equal(t, 2, calls)
}

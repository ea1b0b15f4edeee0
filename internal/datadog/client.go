package datadog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"
	"github.com/appclacks/slo-exporter/internal/validator"
	"github.com/appclacks/slo-exporter/pkg/slo/aggregates"
)

const defaultPageSize = 1000

type Client struct {
	logger *slog.Logger
	config Configuration
	slos   *datadogV1.ServiceLevelObjectivesApi
	auth   *datadogV1.AuthenticationApi
}

// Validation reports which credentials are accepted by Datadog
type Validation struct {
	APIKey bool
	AppKey bool
}

func New(logger *slog.Logger, config Configuration) (*Client, error) {
	err := validator.Validator.Struct(config)
	if err != nil {
		return nil, err
	}
	if config.PageSize == 0 {
		config.PageSize = defaultPageSize
	}
	apiClient := datadog.NewAPIClient(datadog.NewConfiguration())
	return &Client{
		logger: logger,
		config: config,
		slos:   datadogV1.NewServiceLevelObjectivesApi(apiClient),
		auth:   datadogV1.NewAuthenticationApi(apiClient),
	}, nil
}

func (c *Client) authContext(ctx context.Context) context.Context {
	ctx = context.WithValue(
		ctx,
		datadog.ContextAPIKeys,
		map[string]datadog.APIKey{
			"apiKeyAuth": {Key: c.config.APIKey},
			"appKeyAuth": {Key: c.config.AppKey},
		})
	return context.WithValue(
		ctx,
		datadog.ContextServerVariables,
		map[string]string{"site": c.config.Site})
}

func (c *Client) listPage(ctx context.Context, offset int64, limit int64) ([]datadogV1.ServiceLevelObjective, error) {
	params := datadogV1.NewListSLOsOptionalParameters().WithLimit(limit).WithOffset(offset)
	if len(c.config.IDs) > 0 {
		params = params.WithIds(strings.Join(c.config.IDs, ","))
	}
	response, _, err := c.slos.ListSLOs(c.authContext(ctx), *params)
	if err != nil {
		return nil, fmt.Errorf("fail to list Datadog SLOs: %w", err)
	}
	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("datadog returned errors: %s", strings.Join(response.Errors, ", "))
	}
	return response.Data, nil
}

type pageFunc func(ctx context.Context, offset int64, limit int64) ([]datadogV1.ServiceLevelObjective, error)

// paginate calls fetch until a page shorter than pageSize is returned
func paginate(ctx context.Context, logger *slog.Logger, pageSize int64, fetch pageFunc) ([]aggregates.RawSLO, error) {
	result := []aggregates.RawSLO{}
	var offset int64
	for {
		logger.Debug(fmt.Sprintf("listing Datadog SLOs from offset %d", offset))
		page, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}
		for _, slo := range page {
			result = append(result, fromAPI(slo))
		}
		if int64(len(page)) < pageSize {
			return result, nil
		}
		offset += pageSize
	}
}

// ListSLOs returns every SLO visible with the configured credentials
func (c *Client) ListSLOs(ctx context.Context) ([]aggregates.RawSLO, error) {
	result, err := paginate(ctx, c.logger, c.config.PageSize, c.listPage)
	if err != nil {
		return nil, err
	}
	c.logger.Info(fmt.Sprintf("%d SLOs retrieved from Datadog", len(result)))
	return result, nil
}

// Validate checks the API key with the validation endpoint, and the application key by listing one SLO
func (c *Client) Validate(ctx context.Context) Validation {
	result := Validation{}
	response, _, err := c.auth.Validate(c.authContext(ctx))
	if err != nil {
		c.logger.Debug(fmt.Sprintf("API key validation failed: %s", err.Error()))
	} else {
		result.APIKey = response.GetValid()
	}
	_, err = c.listPage(ctx, 0, 1)
	if err != nil {
		c.logger.Debug(fmt.Sprintf("application key validation failed: %s", err.Error()))
	} else {
		result.AppKey = true
	}
	return result
}

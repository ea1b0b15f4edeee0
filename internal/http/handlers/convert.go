package handlers

import (
	"net/http"
	"strconv"

	"github.com/appclacks/slo-exporter/internal/datadog"
	"github.com/appclacks/slo-exporter/pkg/slo"
	"github.com/labstack/echo/v4"
)

const yamlContentType = "application/yaml"

type ConvertInput struct {
	Data       []datadog.SLO `json:"data" validate:"required,dive"`
	IncludeTag string        `json:"include_tag"`
}

func (b *Builder) ConvertSLOs(ec echo.Context) error {
	var payload ConvertInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}
	result, err := b.slo.Convert(ec.Request().Context(), datadog.ToRawSLOs(payload.Data), payload.IncludeTag)
	if err != nil {
		return err
	}
	if result.Empty() {
		return slo.NewEmptyResult()
	}
	ec.Response().Header().Set("X-SLO-Converted", strconv.Itoa(result.Converted))
	ec.Response().Header().Set("X-SLO-Skipped", strconv.Itoa(result.Skipped()))
	return ec.Blob(http.StatusOK, yamlContentType, []byte(result.Output))
}

package handlers

import (
	"net/http"
	"time"

	"github.com/appclacks/slo-exporter/pkg/slo/aggregates"
	"github.com/labstack/echo/v4"
)

type Export struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Converted  int       `json:"converted"`
	Skipped    int       `json:"skipped"`
	Objectives int       `json:"objectives"`
	Documents  int       `json:"documents"`
	Content    string    `json:"content,omitempty"`
}

type ListExportsOutput struct {
	Result []Export `json:"result"`
}

type ExportIDInput struct {
	ID string `param:"id" validate:"required,uuid"`
}

func toExport(export aggregates.Export) Export {
	return Export{
		ID:         export.ID,
		CreatedAt:  export.CreatedAt,
		Converted:  export.Converted,
		Skipped:    export.Skipped,
		Objectives: export.Objectives,
		Documents:  export.Documents,
		Content:    export.Content,
	}
}

func (b *Builder) CreateExport(ec echo.Context) error {
	export, err := b.slo.Export(ec.Request().Context())
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, toExport(*export))
}

func (b *Builder) ListExports(ec echo.Context) error {
	exports, err := b.slo.ListExports(ec.Request().Context())
	if err != nil {
		return err
	}
	result := []Export{}
	for i := range exports {
		result = append(result, toExport(*exports[i]))
	}
	return ec.JSON(http.StatusOK, ListExportsOutput{Result: result})
}

func (b *Builder) GetExport(ec echo.Context) error {
	var payload ExportIDInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}
	export, err := b.slo.GetExport(ec.Request().Context(), payload.ID)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, toExport(*export))
}

func (b *Builder) GetExportContent(ec echo.Context) error {
	var payload ExportIDInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}
	export, err := b.slo.GetExport(ec.Request().Context(), payload.ID)
	if err != nil {
		return err
	}
	return ec.Blob(http.StatusOK, yamlContentType, []byte(export.Content))
}

func (b *Builder) DeleteExport(ec echo.Context) error {
	var payload ExportIDInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}
	err := b.slo.DeleteExport(ec.Request().Context(), payload.ID)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, NewResponse("export deleted"))
}

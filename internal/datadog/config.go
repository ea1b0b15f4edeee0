package datadog

// Configuration the Datadog API configuration
type Configuration struct {
	APIKey string `yaml:"api-key" validate:"required"`
	AppKey string `yaml:"app-key" validate:"required"`
	Site   string `validate:"required"`
	// PageSize is the number of SLOs retrieved per API call
	PageSize int64 `yaml:"page-size" validate:"gte=0,lte=1000"`
	// IDs restricts the export to these SLOs
	IDs []string `yaml:"ids"`
}

package slo

// Configuration contains the Nobl9 settings applied to every converted SLO
type Configuration struct {
	Project           string `validate:"required"`
	Datasource        string `validate:"required"`
	DatasourceProject string `yaml:"datasource-project" validate:"required"`
	Kind              string `validate:"required"`
	// ProjectTag derives the project from a tag (project-tag:value), Project is the fallback
	ProjectTag string `yaml:"project-tag"`
	// ServiceTagPrefix derives the service from a tag, the SLO name is the fallback
	ServiceTagPrefix string `yaml:"service-tag-prefix"`
	// IncludeTag only keeps SLOs carrying this exact tag
	IncludeTag string `yaml:"include-tag"`
	// Templates is a directory containing the templates, embedded templates are used if empty
	Templates string
}

package config

import (
	"fmt"
	"os"

	"github.com/appclacks/slo-exporter/internal/database"
	"github.com/appclacks/slo-exporter/internal/datadog"
	"github.com/appclacks/slo-exporter/internal/http"
	"github.com/appclacks/slo-exporter/internal/tracing"
	"github.com/appclacks/slo-exporter/pkg/slo"
	"gopkg.in/yaml.v3"
)

type Configuration struct {
	HTTP      http.Configuration
	Database  database.Configuration
	Datadog   datadog.Configuration
	Nobl9     slo.Configuration
	Tracing   tracing.Configuration
	Retention slo.RetentionConfiguration
}

// Load reads the configuration file if path is not empty, expands
// the ${VAR} references it contains and fills the missing values from
// the environment
func Load(path string) (Configuration, error) {
	var config Configuration
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("fail to read configuration file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(file))), &config); err != nil {
			return config, fmt.Errorf("fail to parse yaml configuration file: %w", err)
		}
	}
	fromEnv(&config)
	return config, nil
}

func setFromEnv(value *string, keys ...string) {
	if *value != "" {
		return
	}
	for _, key := range keys {
		if env := os.Getenv(key); env != "" {
			*value = env
			return
		}
	}
}

func fromEnv(config *Configuration) {
	setFromEnv(&config.Datadog.APIKey, "DD_API_KEY")
	setFromEnv(&config.Datadog.AppKey, "DD_APP_KEY")
	setFromEnv(&config.Datadog.Site, "DD_SITE")
	setFromEnv(&config.Nobl9.IncludeTag, "DD_TAG")
	setFromEnv(&config.Nobl9.Project, "N9_PROJECT")
	setFromEnv(&config.Nobl9.Datasource, "N9_DS", "N9_DATASOURCE")
	setFromEnv(&config.Nobl9.DatasourceProject, "N9_DS_PROJECT")
	setFromEnv(&config.Nobl9.Kind, "N9_DS_KIND")
}

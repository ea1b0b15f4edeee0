package slo

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed templates/*.yaml
var defaultTemplates embed.FS

const (
	serviceTemplate       = "service.yaml"
	uniqueServiceTemplate = "unique_service.yaml"
	sloTemplate           = "slo.yaml"
	objectiveTemplate     = "objective.yaml"
	thresholdTemplate     = "threshold.yaml"
	timeWindowTemplate    = "timewindow.yaml"
)

// TemplateSet contains the templates used to render the Nobl9 documents.
// It should not be modified once loaded.
type TemplateSet struct {
	Service string
	// UniqueService is optional, Service is used when it's empty
	UniqueService string
	SLO           string
	Objective     string
	TimeWindow    string
}

type readFileFunc func(name string) ([]byte, error)

func loadTemplates(readFile readFileFunc) (*TemplateSet, error) {
	read := func(name string, optional bool) (string, error) {
		content, err := readFile(name)
		if err != nil {
			if optional && errors.Is(err, os.ErrNotExist) {
				return "", nil
			}
			return "", fmt.Errorf("fail to read template %s: %w", name, err)
		}
		return string(content), nil
	}
	var err error
	templates := &TemplateSet{}
	if templates.Service, err = read(serviceTemplate, false); err != nil {
		return nil, err
	}
	if templates.UniqueService, err = read(uniqueServiceTemplate, true); err != nil {
		return nil, err
	}
	if templates.SLO, err = read(sloTemplate, false); err != nil {
		return nil, err
	}
	if templates.Objective, err = read(objectiveTemplate, true); err != nil {
		return nil, err
	}
	if templates.Objective == "" {
		if templates.Objective, err = read(thresholdTemplate, false); err != nil {
			return nil, err
		}
	}
	if templates.TimeWindow, err = read(timeWindowTemplate, false); err != nil {
		return nil, err
	}
	return templates, nil
}

// DefaultTemplates returns the embedded Nobl9 templates
func DefaultTemplates() *TemplateSet {
	templates, err := loadTemplates(func(name string) ([]byte, error) {
		return defaultTemplates.ReadFile("templates/" + name)
	})
	if err != nil {
		panic(err)
	}
	return templates
}

// LoadTemplates loads the templates from a directory
func LoadTemplates(dir string) (*TemplateSet, error) {
	return loadTemplates(func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, name))
	})
}

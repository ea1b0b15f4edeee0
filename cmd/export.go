package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/appclacks/slo-exporter/config"
	"github.com/appclacks/slo-exporter/internal/datadog"
	"github.com/appclacks/slo-exporter/internal/validator"
	"github.com/appclacks/slo-exporter/pkg/slo"
	"github.com/appclacks/slo-exporter/pkg/slo/aggregates"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	input      string
	output     string
	sloIDs     []string
	sloIDsFile string
	allowEmpty bool
	nobl9      slo.Configuration
}

func buildExportCmd(global *globalOptions) *cobra.Command {
	options := &exportOptions{}
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export Datadog SLOs as Nobl9 YAML documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := global.logger(cmd)
			return runExport(cmd, logger, global.configFile, options)
		},
	}
	flags := exportCmd.Flags()
	flags.StringVarP(&options.input, "input", "i", "", "Read the SLOs from a JSON file (Datadog list SLOs format) instead of the Datadog API")
	flags.StringVarP(&options.output, "output", "o", "", "Write the documents to this file instead of stdout")
	flags.StringSliceVar(&options.sloIDs, "slo-id", nil, "Only export these SLO IDs")
	flags.StringVar(&options.sloIDsFile, "slo-ids-file", "", "File containing the SLO IDs to export, one per line")
	flags.BoolVar(&options.allowEmpty, "allow-empty", false, "Do not fail when no SLO is converted")
	flags.StringVar(&options.nobl9.Project, "project", "", "Nobl9 project")
	flags.StringVar(&options.nobl9.Datasource, "datasource", "", "Nobl9 data source name")
	flags.StringVar(&options.nobl9.DatasourceProject, "datasource-project", "", "Nobl9 data source project")
	flags.StringVar(&options.nobl9.Kind, "kind", "", "Nobl9 data source kind")
	flags.StringVar(&options.nobl9.IncludeTag, "include-tag", "", "Only export the SLOs carrying this tag")
	flags.StringVar(&options.nobl9.ServiceTagPrefix, "service-tag-prefix", "", "Tag prefix used to derive the Nobl9 service")
	flags.StringVar(&options.nobl9.ProjectTag, "project-tag", "", "Tag prefix used to derive the Nobl9 project")
	flags.StringVar(&options.nobl9.Templates, "templates", "", "Directory containing custom templates")
	return exportCmd
}

func override(value *string, flag string) {
	if flag != "" {
		*value = flag
	}
}

func (o *exportOptions) apply(configuration *config.Configuration) {
	override(&configuration.Nobl9.Project, o.nobl9.Project)
	override(&configuration.Nobl9.Datasource, o.nobl9.Datasource)
	override(&configuration.Nobl9.DatasourceProject, o.nobl9.DatasourceProject)
	override(&configuration.Nobl9.Kind, o.nobl9.Kind)
	override(&configuration.Nobl9.IncludeTag, o.nobl9.IncludeTag)
	override(&configuration.Nobl9.ServiceTagPrefix, o.nobl9.ServiceTagPrefix)
	override(&configuration.Nobl9.ProjectTag, o.nobl9.ProjectTag)
	override(&configuration.Nobl9.Templates, o.nobl9.Templates)
	if len(o.sloIDs) > 0 {
		configuration.Datadog.IDs = append(configuration.Datadog.IDs, o.sloIDs...)
	}
}

func loadTemplates(configuration slo.Configuration) (*slo.TemplateSet, error) {
	if configuration.Templates == "" {
		return slo.DefaultTemplates(), nil
	}
	return slo.LoadTemplates(configuration.Templates)
}

// readRecords reads the SLOs from the input file if set, or from the Datadog API
func readRecords(ctx context.Context, logger *slog.Logger, input string, configuration datadog.Configuration) ([]aggregates.RawSLO, error) {
	if input == "" {
		client, err := datadog.New(logger, configuration)
		if err != nil {
			return nil, err
		}
		return client.ListSLOs(ctx)
	}
	records, err := datadog.ReadFile(input)
	if err != nil {
		return nil, err
	}
	logger.Debug(fmt.Sprintf("%d SLOs read from %s", len(records), input))
	if len(configuration.IDs) == 0 {
		return records, nil
	}
	result := []aggregates.RawSLO{}
	for _, record := range records {
		if slices.Contains(configuration.IDs, record.ID) {
			result = append(result, record)
		}
	}
	return result, nil
}

func runExport(cmd *cobra.Command, logger *slog.Logger, configFile string, options *exportOptions) error {
	configuration, err := config.Load(configFile)
	if err != nil {
		return err
	}
	options.apply(&configuration)
	if options.sloIDsFile != "" {
		ids, err := datadog.ReadIDs(options.sloIDsFile)
		if err != nil {
			return err
		}
		configuration.Datadog.IDs = append(configuration.Datadog.IDs, ids...)
	}
	if err := validator.Validator.Struct(configuration.Nobl9); err != nil {
		return fmt.Errorf("invalid Nobl9 configuration: %w", err)
	}
	templates, err := loadTemplates(configuration.Nobl9)
	if err != nil {
		return err
	}
	records, err := readRecords(cmd.Context(), logger, options.input, configuration.Datadog)
	if err != nil {
		return err
	}
	service, err := slo.New(logger, templates, configuration.Nobl9, nil, nil, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	result, err := service.Convert(cmd.Context(), records, "")
	if err != nil {
		return err
	}
	if result.Empty() {
		if !options.allowEmpty {
			return slo.NewEmptyResult()
		}
		logger.Warn("nothing to export")
	}
	if options.output == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), result.Output)
		return err
	}
	if err := os.WriteFile(options.output, []byte(result.Output), 0644); err != nil {
		return fmt.Errorf("fail to write output file: %w", err)
	}
	logger.Info(fmt.Sprintf("documents written to %s", options.output))
	return nil
}

package cmd

import (
	"fmt"

	"github.com/appclacks/slo-exporter/config"
	"github.com/appclacks/slo-exporter/internal/datadog"
	"github.com/spf13/cobra"
)

func validity(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

func buildValidateCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the Datadog API and application keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := global.logger(cmd)
			configuration, err := config.Load(global.configFile)
			if err != nil {
				return err
			}
			client, err := datadog.New(logger, configuration.Datadog)
			if err != nil {
				return err
			}
			result := client.Validate(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "API key: %s\n", validity(result.APIKey))
			fmt.Fprintf(out, "Application key: %s\n", validity(result.AppKey))
			if !result.APIKey || !result.AppKey {
				return fmt.Errorf("invalid Datadog credentials")
			}
			return nil
		},
	}
}

package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

type globalOptions struct {
	configFile string
	logLevel   string
	logFormat  string
}

func (o *globalOptions) logger(cmd *cobra.Command) *slog.Logger {
	return buildLogger(cmd.ErrOrStderr(), o.logLevel, o.logFormat)
}

func newRootCmd() *cobra.Command {
	options := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:           "slo-exporter",
		Short:         "Convert Datadog SLOs into Nobl9 configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&options.configFile, "config", "c", "", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&options.logLevel, "log-level", "v", "info", "Logger log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&options.logFormat, "log-format", "text", "Logger logs format (text, json)")

	rootCmd.AddCommand(buildExportCmd(options))
	rootCmd.AddCommand(buildValidateCmd(options))
	rootCmd.AddCommand(buildServerCmd(options))
	return rootCmd
}

func Run() error {
	return newRootCmd().Execute()
}

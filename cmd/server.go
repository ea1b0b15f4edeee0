package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appclacks/slo-exporter/config"
	"github.com/appclacks/slo-exporter/internal/database"
	"github.com/appclacks/slo-exporter/internal/datadog"
	"github.com/appclacks/slo-exporter/internal/http"
	"github.com/appclacks/slo-exporter/internal/http/handlers"
	"github.com/appclacks/slo-exporter/internal/tracing"
	"github.com/appclacks/slo-exporter/internal/validator"
	"github.com/appclacks/slo-exporter/pkg/slo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func buildServerCmd(global *globalOptions) *cobra.Command {
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Runs the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := global.logger(cmd)
			return runServer(cmd.Context(), logger, global.configFile)
		},
	}
	return serverCmd
}

func runServer(ctx context.Context, logger *slog.Logger, configFile string) error {
	if configFile == "" {
		return fmt.Errorf("the server command requires a configuration file")
	}
	configuration, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := validator.Validator.Struct(configuration.Nobl9); err != nil {
		return fmt.Errorf("invalid Nobl9 configuration: %w", err)
	}
	templates, err := loadTemplates(configuration.Nobl9)
	if err != nil {
		return err
	}
	shutdownTracing, err := tracing.Setup(ctx, logger, configuration.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error(fmt.Sprintf("fail to stop tracing: %s", err.Error()))
		}
	}()
	store, err := database.New(logger, configuration.Database)
	if err != nil {
		return err
	}
	defer store.Close()
	client, err := datadog.New(logger, configuration.Datadog)
	if err != nil {
		return err
	}
	registry := prometheus.DefaultRegisterer.(*prometheus.Registry)
	sloService, err := slo.New(logger, templates, configuration.Nobl9, client, store, registry)
	if err != nil {
		return err
	}
	retention, err := slo.NewRetention(logger, store, configuration.Retention, registry)
	if err != nil {
		return err
	}
	handlersBuilder := handlers.NewBuilder(sloService)
	server, err := http.NewServer(logger, configuration.HTTP, registry, handlersBuilder)
	if err != nil {
		return err
	}
	signals := make(chan os.Signal, 1)
	errChan := make(chan error)

	signal.Notify(
		signals,
		syscall.SIGINT,
		syscall.SIGTERM)

	server.Start()
	retention.Start()
	go func() {
		for sig := range signals {
			switch sig {
			case syscall.SIGINT, syscall.SIGTERM:
				logger.Info(fmt.Sprintf("received signal %s, starting shutdown", sig))
				signal.Stop(signals)
				retention.Stop()
				errChan <- server.Stop()
				return
			}
		}
	}()
	return <-errChan
}

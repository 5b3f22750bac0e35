package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qareport/internal/app"
	"qareport/internal/config"
	apperrors "qareport/internal/errors"
	"qareport/internal/infrastructure"
	"qareport/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("Report generation failed", errorAttrs(err)...)
		stop()
		os.Exit(1)
	}
}

// errorAttrs describes err for the final log line, including its AppError type
func errorAttrs(err error) []any {
	attrs := []any{slog.String("error", err.Error())}
	if errType, ok := apperrors.TypeOf(err); ok {
		attrs = append(attrs, slog.String("error_type", string(errType)))
	}
	return attrs
}

// run parses flags, sets up logging and telemetry, then executes one report run
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	flags.SetOutput(stdout)
	configFile := flags.String("config", config.DefaultConfigFile, "path to the report configuration (JSON or YAML)")
	showVersion := flags.Bool("version", false, "print version information and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load runtime config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(ctx, infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("Starting QA report generation",
		slog.String("version", contracts.Version),
		slog.String("config_file", *configFile))

	reportCfg, err := config.LoadReportConfig(*configFile)
	if err != nil {
		return err
	}

	_, err = app.Run(ctx, reportCfg,
		app.WithLogger(logger),
		app.WithTelemetry(providers),
		app.WithStdout(stdout))
	return err
}

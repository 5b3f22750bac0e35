package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"qareport/internal/config"
	"qareport/internal/dataprocessing"
	apperrors "qareport/internal/errors"
	"qareport/internal/exporter"
	"qareport/internal/files"
	"qareport/internal/infrastructure"
	"qareport/internal/validation"
	"qareport/pkg/contracts/domain"
)

// Renderer writes one report file for an aggregated table
type Renderer interface {
	Render(table *domain.Table, analysis domain.Analysis, path string) error
}

// SkippedFile is an input that could not be parsed
type SkippedFile struct {
	Path string
	Err  error
}

// Result describes a completed report run
type Result struct {
	RunID    string
	Inputs   []string
	Skipped  []SkippedFile
	Tables   []*domain.RawTable
	Table    *domain.Table
	Analysis domain.Analysis
	Reports  []domain.ReportMetadata
}

// Option customizes a run
type Option func(*runner)

// WithLogger sets the logger used for the run
func WithLogger(logger *slog.Logger) Option {
	return func(r *runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTelemetry records spans and metrics on providers
func WithTelemetry(providers *infrastructure.OTelProviders) Option {
	return func(r *runner) {
		r.telemetry = providers
	}
}

// WithStdout sets where skip warnings and the final summary are printed
func WithStdout(w io.Writer) Option {
	return func(r *runner) {
		if w != nil {
			r.stdout = w
		}
	}
}

// WithRenderer replaces the renderer used for format
func WithRenderer(format domain.ReportFormat, renderer Renderer) Option {
	return func(r *runner) {
		r.renderers[format] = renderer
	}
}

type runner struct {
	logger     *slog.Logger
	parser     *dataprocessing.Parser
	aggregator *dataprocessing.Aggregator
	stdout     io.Writer
	telemetry  *infrastructure.OTelProviders
	tracer     trace.Tracer
	metrics    *infrastructure.RunMetrics
	renderers  map[domain.ReportFormat]Renderer
}

func newRunner(opts []Option) (*runner, error) {
	r := &runner{
		logger:    infrastructure.GetLogger(),
		stdout:    os.Stdout,
		renderers: make(map[domain.ReportFormat]Renderer),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.logger = infrastructure.WithComponent(r.logger, "app")
	r.parser = dataprocessing.NewParser(infrastructure.WithComponent(r.logger, "parser"))
	r.aggregator = dataprocessing.NewAggregator(infrastructure.WithComponent(r.logger, "aggregator"))

	exportLogger := infrastructure.WithComponent(r.logger, "exporter")
	defaults := map[domain.ReportFormat]Renderer{
		domain.ReportFormatPDF:   &exporter.PDFRenderer{Compression: true, Logger: exportLogger},
		domain.ReportFormatExcel: &exporter.ExcelRenderer{SheetName: domain.ReportSheetName, Logger: exportLogger},
		domain.ReportFormatCSV:   &exporter.CSVWriter{Logger: exportLogger},
	}
	for format, renderer := range defaults {
		if _, set := r.renderers[format]; !set {
			r.renderers[format] = renderer
		}
	}
	r.tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.ServiceName)

	if r.telemetry != nil {
		r.tracer = r.telemetry.Tracer
		metrics, err := infrastructure.NewRunMetrics(r.telemetry.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create run metrics: %w", err)
		}
		r.metrics = metrics
	}

	return r, nil
}

// Run produces the reports named by cfg. Individual input files that fail
// to parse are skipped with a warning; every other failure ends the run.
// Nothing is written when no input yields data.
func Run(ctx context.Context, cfg *config.ReportConfig, opts ...Option) (*Result, error) {
	if cfg == nil {
		return nil, apperrors.NewConfigError("report configuration is required", nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r, err := newRunner(opts)
	if err != nil {
		return nil, err
	}

	ctx = infrastructure.EnsureRunID(ctx)
	result := &Result{RunID: infrastructure.GetRunID(ctx)}

	ctx, span := r.tracer.Start(ctx, "qareport.run",
		trace.WithAttributes(attribute.String("run_id", result.RunID)))
	defer span.End()

	if err := r.run(ctx, cfg, result); err != nil {
		infrastructure.RecordError(ctx, err)
		return result, err
	}

	return result, nil
}

func (r *runner) run(ctx context.Context, cfg *config.ReportConfig, result *Result) error {
	start := time.Now()

	r.logger.InfoContext(ctx, "Starting report run",
		slog.Int("input_entries", len(cfg.InputFiles)),
		slog.String("output_pdf", cfg.OutputPDF),
		slog.String("output_excel", cfg.OutputExcel))

	inputs, err := files.NewDiscovery(dataprocessing.IsSupported).WithLogger(r.logger).ExpandInputs(cfg.InputFiles)
	if err != nil {
		return apperrors.NewConfigError("failed to expand input files", err)
	}
	result.Inputs = inputs

	validator := validation.NewFileValidator(r.logger)
	if err := validator.ValidateOutputs(inputs, cfg.OutputPDF, cfg.OutputExcel, cfg.OutputCSV, cfg.MetricsFile); err != nil {
		return err
	}

	if err := r.parse(ctx, result); err != nil {
		return err
	}

	if err := r.aggregate(ctx, result); err != nil {
		return err
	}

	outputs := []struct {
		format domain.ReportFormat
		path   string
	}{
		{domain.ReportFormatPDF, cfg.OutputPDF},
		{domain.ReportFormatExcel, cfg.OutputExcel},
		{domain.ReportFormatCSV, cfg.OutputCSV},
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		meta, err := r.render(ctx, out.format, out.path, result)
		if err != nil {
			return err
		}
		result.Reports = append(result.Reports, meta)
	}

	if err := exporter.NewConsoleSummary(r.stdout).Print(result.Analysis, result.Reports); err != nil {
		r.logger.WarnContext(ctx, "Failed to print summary", slog.String("error", err.Error()))
	}

	r.metrics.RecordStage(ctx, "total", time.Since(start))

	if cfg.MetricsFile != "" {
		r.writeMetrics(ctx, cfg.MetricsFile)
	}

	r.logger.InfoContext(ctx, "Report run completed",
		slog.Int("reports", len(result.Reports)),
		slog.Int("skipped_files", len(result.Skipped)),
		slog.Duration("duration", time.Since(start)))

	return nil
}

// parse reads every input in order, collecting failures instead of stopping
func (r *runner) parse(ctx context.Context, result *Result) error {
	ctx, span := r.tracer.Start(ctx, "qareport.parse")
	defer span.End()
	start := time.Now()

	for _, path := range result.Inputs {
		if err := ctx.Err(); err != nil {
			return err
		}

		format := "unknown"
		if f, err := dataprocessing.DetectFormat(path); err == nil {
			format = f.String()
		}

		table, err := r.parser.ParseFile(path)
		if err != nil {
			r.metrics.RecordFile(ctx, format, false)
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Err: err})

			r.logger.WarnContext(ctx, "Skipping input file",
				slog.String("file", path),
				slog.String("error", err.Error()))
			fmt.Fprintf(r.stdout, "Error parsing %s: %v\n", path, err)
			continue
		}

		r.metrics.RecordFile(ctx, format, true)
		result.Tables = append(result.Tables, table)
	}

	span.SetAttributes(
		attribute.Int("files.parsed", len(result.Tables)),
		attribute.Int("files.skipped", len(result.Skipped)))
	r.metrics.RecordStage(ctx, "parse", time.Since(start))

	return nil
}

func (r *runner) aggregate(ctx context.Context, result *Result) error {
	ctx, span := r.tracer.Start(ctx, "qareport.aggregate")
	defer span.End()
	start := time.Now()

	table, analysis, err := r.aggregator.Aggregate(result.Tables)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return err
	}

	result.Table = table
	result.Analysis = analysis

	span.SetAttributes(
		attribute.Int("tests.total", analysis.TotalTests),
		attribute.Int("tests.passed", analysis.PassedTests),
		attribute.Int("tests.failed", analysis.FailedTests))
	r.metrics.RecordRecords(ctx, table.Len())
	r.metrics.RecordStage(ctx, "aggregate", time.Since(start))

	return nil
}

func (r *runner) render(ctx context.Context, format domain.ReportFormat, path string, result *Result) (domain.ReportMetadata, error) {
	ctx, span := r.tracer.Start(ctx, "qareport.render",
		trace.WithAttributes(
			attribute.String("format", string(format)),
			attribute.String("file", path)))
	defer span.End()
	start := time.Now()

	renderer, ok := r.renderers[format]
	if !ok {
		return domain.ReportMetadata{}, apperrors.NewUnsupportedFormatError(string(format))
	}

	if err := renderer.Render(result.Table, result.Analysis, path); err != nil {
		infrastructure.RecordError(ctx, err)
		return domain.ReportMetadata{}, apperrors.NewStorageError(
			fmt.Sprintf("failed to write %s report", format), err).WithContext("file", path)
	}

	elapsed := time.Since(start)
	r.metrics.RecordReport(ctx, string(format))
	r.metrics.RecordStage(ctx, "render_"+string(format), elapsed)

	return domain.ReportMetadata{
		Format:      format,
		FilePath:    path,
		RecordCount: result.Table.Len(),
		RenderTime:  elapsed,
	}, nil
}

// writeMetrics is best effort; the reports already exist at this point
func (r *runner) writeMetrics(ctx context.Context, path string) {
	if err := r.telemetry.WriteMetricsFile(path); err != nil {
		level := slog.LevelWarn
		if errors.Is(err, infrastructure.ErrMetricsDisabled) {
			level = slog.LevelInfo
		}
		r.logger.Log(ctx, level, "Metrics file not written",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return
	}
	r.logger.InfoContext(ctx, "Metrics file written", slog.String("file", path))
}

package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"qareport/internal/config"
	"qareport/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	Logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // UTF-8 BOM so Excel detects the encoding
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	loggerOrDefault(w.Logger).Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	if err := config.EnsureParentDir(filePath); err != nil {
		return err
	}

	return writeReportFile(filePath, func(out io.Writer) error {
		if options.BOMPrefix {
			if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
				return fmt.Errorf("failed to write BOM: %w", err)
			}
		}

		writer := csv.NewWriter(out)

		if len(options.Headers) > 0 {
			if err := writer.Write(options.Headers); err != nil {
				return fmt.Errorf("failed to write headers: %w", err)
			}
		}

		for i, record := range options.Records {
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write record %d: %w", i, err)
			}
		}

		writer.Flush()
		return writer.Error()
	})
}

// Render writes the normalized table as CSV: one header row of the record
// columns, then one row per record with durations in plain seconds.
func (w *CSVWriter) Render(table *domain.Table, _ domain.Analysis, path string) error {
	records := make([][]string, 0, table.Len())
	for _, r := range table.Records {
		records = append(records, []string{
			r.TestCaseID,
			r.TestCaseName,
			r.Status,
			r.ExecutionTime.String(),
			r.ErrorDetails,
		})
	}

	return w.WriteCSV(path, WriteOptions{
		Headers:   domain.Columns(),
		Records:   records,
		BOMPrefix: true,
	})
}

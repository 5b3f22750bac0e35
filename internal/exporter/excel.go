package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"qareport/pkg/contracts/domain"
)

// ExcelRenderer writes the single-sheet Excel report
type ExcelRenderer struct {
	SheetName string
	Logger    *slog.Logger
}

// NewExcelRenderer creates a renderer using the standard sheet name
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{SheetName: domain.ReportSheetName}
}

// Rows returns the sheet content in order: the summary block, a blank
// row, the header and one row per record. Durations stay numeric.
func (e *ExcelRenderer) Rows(table *domain.Table, analysis domain.Analysis) [][]interface{} {
	rows := make([][]interface{}, 0, table.Len()+6)

	for _, line := range analysis.SummaryLines() {
		rows = append(rows, []interface{}{line.Label, line.Value})
	}
	rows = append(rows, nil)

	header := make([]interface{}, 0, len(domain.Columns()))
	for _, col := range domain.Columns() {
		header = append(header, col)
	}
	rows = append(rows, header)

	for _, r := range table.Records {
		var duration interface{} = domain.MissingValue
		if r.ExecutionTime.Present {
			duration = r.ExecutionTime.Seconds
		}
		rows = append(rows, []interface{}{
			r.TestCaseID,
			r.TestCaseName,
			r.Status,
			duration,
			r.ErrorDetails,
		})
	}

	return rows
}

// Render writes the workbook for table and analysis to path
func (e *ExcelRenderer) Render(table *domain.Table, analysis domain.Analysis, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := e.SheetName
	if sheet == "" {
		sheet = domain.ReportSheetName
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, row := range e.Rows(table, analysis) {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := writeReportFile(path, func(w io.Writer) error { return f.Write(w) }); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	loggerOrDefault(e.Logger).Info("Excel report written",
		slog.String("file_path", path),
		slog.String("sheet", sheet),
		slog.Int("record_count", table.Len()))

	return nil
}

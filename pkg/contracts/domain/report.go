package domain

import (
	"fmt"
	"time"
)

// ReportFormat defines the format of a generated report
type ReportFormat string

const (
	ReportFormatPDF   ReportFormat = "pdf"
	ReportFormatExcel ReportFormat = "excel"
	ReportFormatCSV   ReportFormat = "csv"
)

// ReportTitle is printed at the top of the PDF report
const ReportTitle = "QA Test Results Report"

// ReportSheetName is the worksheet name used by the Excel report
const ReportSheetName = "QA Test Results"

// Analysis holds the summary statistics computed over a Table
type Analysis struct {
	TotalTests           int     `json:"total_tests"`
	PassedTests          int     `json:"passed_tests"`
	FailedTests          int     `json:"failed_tests"`
	AverageExecutionTime float64 `json:"average_execution_time"`
}

// SummaryLine is one label/value pair of the report summary block.
// Value is either an int or an already formatted string.
type SummaryLine struct {
	Label string
	Value interface{}
}

// Text renders the line the way it appears in the PDF report
func (l SummaryLine) Text() string {
	return fmt.Sprintf("%s: %v", l.Label, l.Value)
}

// SummaryLines returns the summary block shared by every report format.
// Both renderers consume this so their summaries cannot drift apart.
func (a Analysis) SummaryLines() []SummaryLine {
	return []SummaryLine{
		{Label: "Total Tests", Value: a.TotalTests},
		{Label: "Passed Tests", Value: a.PassedTests},
		{Label: "Failed Tests", Value: a.FailedTests},
		{Label: "Average Execution Time", Value: fmt.Sprintf("%.2f seconds", a.AverageExecutionTime)},
	}
}

// OtherTests counts records whose status is neither Pass nor Fail
func (a Analysis) OtherTests() int {
	return a.TotalTests - a.PassedTests - a.FailedTests
}

// ReportMetadata describes one file produced by a run
type ReportMetadata struct {
	Format      ReportFormat  `json:"format"`
	FilePath    string        `json:"file_path"`
	RecordCount int           `json:"record_count"`
	RenderTime  time.Duration `json:"render_time"`
}

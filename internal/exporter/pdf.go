package exporter

import (
	"fmt"
	"log/slog"

	"github.com/go-pdf/fpdf"

	"qareport/pkg/contracts/domain"
)

// Layout positions in points, measured from the top of a Letter page
const (
	pdfLeft          = 100.0
	pdfTitleY        = 100.0
	pdfSummaryY      = 140.0
	pdfDetailHeaderY = 240.0
	pdfFirstRecordY  = 260.0
	pdfLineStep      = 20.0
	pdfBottomMargin  = 50.0
)

// PDFRenderer writes the fixed-layout PDF report
type PDFRenderer struct {
	// Compression toggles stream compression in the output document
	Compression bool
	Logger      *slog.Logger
}

// NewPDFRenderer creates a renderer with compression enabled
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Compression: true}
}

// RecordLine formats one test case as it appears under "Detailed Results:"
func RecordLine(r domain.TestRecord) string {
	return fmt.Sprintf("%s: %s, %s: %s, %s: %s, %s: %s, %s: %s",
		domain.ColumnTestCaseID, r.TestCaseID,
		domain.ColumnTestCaseName, r.TestCaseName,
		domain.ColumnStatus, r.Status,
		domain.ColumnExecutionTime, r.ExecutionTime.WithUnit(),
		domain.ColumnErrorDetails, r.ErrorDetails)
}

// Build lays out the report document without writing it anywhere
func (p *PDFRenderer) Build(table *domain.Table, analysis domain.Analysis) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(p.Compression)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(domain.ReportTitle, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pdfLeft, pdfTitleY, tr(domain.ReportTitle))

	pdf.SetFont("Helvetica", "", 12)
	y := pdfSummaryY
	for _, line := range analysis.SummaryLines() {
		pdf.Text(pdfLeft, y, tr(line.Text()))
		y += pdfLineStep
	}

	pdf.Text(pdfLeft, pdfDetailHeaderY, tr("Detailed Results:"))

	y = pdfFirstRecordY
	for _, r := range table.Records {
		if y > pageHeight-pdfBottomMargin {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 12)
			y = pdfTitleY
		}
		pdf.Text(pdfLeft, y, tr(RecordLine(r)))
		y += pdfLineStep
	}

	return pdf
}

// Render writes the PDF report for table and analysis to path
func (p *PDFRenderer) Render(table *domain.Table, analysis domain.Analysis, path string) error {
	pdf := p.Build(table, analysis)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build PDF: %w", err)
	}

	if err := writeReportFile(path, pdf.Output); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	loggerOrDefault(p.Logger).Info("PDF report written",
		slog.String("file_path", path),
		slog.Int("record_count", table.Len()),
		slog.Int("page_count", pdf.PageCount()))

	return nil
}

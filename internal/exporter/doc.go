// Package exporter renders an aggregated QA test table into report files.
//
// PDFRenderer: fixed-layout Letter report with the summary block followed by
// one line per test case, breaking onto new pages when the page fills.
//
// ExcelRenderer: single-sheet workbook holding the same summary block, a blank
// row, a header row and then one typed row per test case.
//
// CSVWriter: optional export of the normalized table, with a UTF-8 BOM so the
// file opens cleanly in Excel.
//
// ConsoleSummary: boxed terminal summary printed at the end of a run.
//
// Example usage:
//
//	pdf := exporter.NewPDFRenderer()
//	if err := pdf.Render(table, analysis, "out/report.pdf"); err != nil {
//		return err
//	}
//
//	xlsx := exporter.NewExcelRenderer()
//	err := xlsx.Render(table, analysis, "out/report.xlsx")
package exporter

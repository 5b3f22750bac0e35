// Package dataprocessing turns test-result files into report data.
//
// The package has two halves:
//
// 1. Parser: ParseFile picks a decoder from the file extension (.csv, .json,
// .xls, .xlsx) and returns a RawTable holding every cell as read, with empty
// cells marked missing.
//
// 2. Aggregator: Aggregate concatenates RawTables in input order, normalizes
// them into a Table (execution times parsed to seconds, missing text replaced
// by "N/A") and computes the Analysis totals.
//
// # Usage
//
//	var tables []*domain.RawTable
//	for _, path := range inputs {
//	    t, err := dataprocessing.ParseFile(path)
//	    if err != nil {
//	        slog.Warn("Skipping file", "file", path, "error", err)
//	        continue
//	    }
//	    tables = append(tables, t)
//	}
//	table, analysis, err := dataprocessing.Aggregate(tables)
//
// # Data Flow
//
//	File → ParseFile → RawTable → Combine → Normalize → Table → Summarize → Analysis
//
// RawTables are never modified; Normalize builds new records.
package dataprocessing
